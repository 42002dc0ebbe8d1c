package services

import (
	"route-cost-service/internal/domain"
	"slices"
)

// AllPairs returns every ordered pair of distinct airports held by the distance cache,
// sorted by origin then destination.
func AllPairs(distances *DistanceCache) []domain.AirportPair {
	codes := distances.Codes()
	pairs := make([]domain.AirportPair, 0, len(codes)*len(codes))
	for _, from := range codes {
		for _, to := range codes {
			if from == to {
				continue
			}
			pairs = append(pairs, domain.AirportPair{From: from, To: to})
		}
	}
	return pairs
}

// LocalizedPairs picks the airport pairs to process for a single requested leg.
//
// An airport is new when it is not an endpoint of any stored route. Each new
// airport is paired with every other catalog airport in both directions. When
// neither side is new only the requested leg is returned.
func LocalizedPairs(origin, destination string, catalogCodes []string, routed map[string]struct{}) []domain.AirportPair {
	if origin == destination {
		return nil
	}

	newCodes := make([]string, 0, 2)
	for _, code := range []string{origin, destination} {
		if _, ok := routed[code]; !ok {
			newCodes = append(newCodes, code)
		}
	}

	if len(newCodes) == 0 {
		return []domain.AirportPair{{From: origin, To: destination}}
	}

	seen := make(map[domain.AirportPair]struct{}, 2*len(catalogCodes)*len(newCodes))
	pairs := make([]domain.AirportPair, 0, 2*len(catalogCodes)*len(newCodes))
	add := func(p domain.AirportPair) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		pairs = append(pairs, p)
	}

	for _, n := range newCodes {
		for _, code := range catalogCodes {
			if code == n {
				continue
			}
			add(domain.AirportPair{From: n, To: code})
			add(domain.AirportPair{From: code, To: n})
		}
	}

	slices.SortFunc(pairs, func(a, b domain.AirportPair) int {
		if a.From != b.From {
			if a.From < b.From {
				return -1
			}
			return 1
		}
		if a.To < b.To {
			return -1
		}
		if a.To > b.To {
			return 1
		}
		return 0
	})

	return pairs
}

// EnumerateRoutes prices every (pair, aircraft, provider) combination whose dedup key
// is not in existing. It performs no I/O.
//
// Pairs that are self pairs, missing from the distance cache, or zero distance
// apart are skipped. A nil existing set skips nothing.
func EnumerateRoutes(
	snap *Snapshot,
	distances *DistanceCache,
	pairs []domain.AirportPair,
	existing map[domain.RouteKey]struct{},
) []domain.RouteRecord {
	out := make([]domain.RouteRecord, 0)

	for _, pair := range pairs {
		if pair.From == pair.To {
			continue
		}

		dist, ok := distances.Get(pair.From, pair.To)
		if !ok || dist <= 0 {
			continue
		}

		origin, ok := snap.Airports[pair.From]
		if !ok {
			continue
		}
		leg := pair.Leg()

		for _, acID := range snap.AircraftIDs {
			aircraft := snap.Aircraft[acID]

			for _, provider := range snap.ProvidersByAircraft[acID] {
				key := domain.RouteKey{Leg: leg, AircraftID: acID, ProviderID: provider.ID}
				if _, dup := existing[key]; dup {
					continue
				}

				out = append(out, PriceRoute(origin, pair.To, dist, aircraft, provider))
			}
		}
	}

	return out
}
