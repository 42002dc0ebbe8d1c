package services

import (
	"math"
	"route-cost-service/internal/domain"
	"slices"
)

const earthRadiusNM = 3440.065

// GreatCircleNM returns the haversine distance between two points in nautical miles,
// rounded to 2 decimal places.
func GreatCircleNM(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusNM*c*100) / 100
}

// DistanceCache holds the pairwise distance matrix for every airport with known coordinates.
//
// Each unordered pair is computed once and stored under both directions, so
// Get(a, b) == Get(b, a) holds exactly. Self pairs are never stored.
type DistanceCache struct {
	codes []string
	nm    map[domain.AirportPair]float64
}

// NewDistanceCache precomputes distances between all airports that have coordinates.
// Airports without coordinates are left out without error.
func NewDistanceCache(airports map[string]domain.Airport) *DistanceCache {
	type located struct {
		code string
		pos  domain.Coordinates
	}

	points := make([]located, 0, len(airports))
	for code, a := range airports {
		pos, ok := a.Position()
		if !ok {
			continue
		}
		points = append(points, located{code: code, pos: pos})
	}
	slices.SortFunc(points, func(a, b located) int {
		if a.code < b.code {
			return -1
		}
		if a.code > b.code {
			return 1
		}
		return 0
	})

	c := &DistanceCache{
		codes: make([]string, 0, len(points)),
		nm:    make(map[domain.AirportPair]float64, len(points)*len(points)),
	}
	for i, from := range points {
		c.codes = append(c.codes, from.code)
		for _, to := range points[i+1:] {
			d := GreatCircleNM(from.pos.Lat, from.pos.Lon, to.pos.Lat, to.pos.Lon)
			c.nm[domain.AirportPair{From: from.code, To: to.code}] = d
			c.nm[domain.AirportPair{From: to.code, To: from.code}] = d
		}
	}

	return c
}

// NewPairDistanceCache computes distances only for the given pairs, once per
// unordered pair. Pairs with an endpoint lacking coordinates are left out.
func NewPairDistanceCache(airports map[string]domain.Airport, pairs []domain.AirportPair) *DistanceCache {
	c := &DistanceCache{nm: make(map[domain.AirportPair]float64, 2*len(pairs))}
	seen := make(map[string]struct{}, len(pairs))

	for _, p := range pairs {
		if p.From == p.To {
			continue
		}
		if _, ok := c.nm[p]; ok {
			continue
		}
		from, ok := airports[p.From].Position()
		if !ok {
			continue
		}
		to, ok := airports[p.To].Position()
		if !ok {
			continue
		}

		d := GreatCircleNM(from.Lat, from.Lon, to.Lat, to.Lon)
		c.nm[p] = d
		c.nm[domain.AirportPair{From: p.To, To: p.From}] = d

		for _, code := range []string{p.From, p.To} {
			if _, ok := seen[code]; !ok {
				seen[code] = struct{}{}
				c.codes = append(c.codes, code)
			}
		}
	}
	slices.Sort(c.codes)

	return c
}

// Get returns the cached distance for an ordered pair.
func (c *DistanceCache) Get(from, to string) (float64, bool) {
	d, ok := c.nm[domain.AirportPair{From: from, To: to}]
	return d, ok
}

// Codes returns the sorted codes of every airport in the matrix.
func (c *DistanceCache) Codes() []string { return slices.Clone(c.codes) }

// Len is the number of ordered pairs held.
func (c *DistanceCache) Len() int { return len(c.nm) }
