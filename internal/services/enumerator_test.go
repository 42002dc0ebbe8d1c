package services

import (
	"route-cost-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *Snapshot {
	airports := map[string]domain.Airport{
		"JFK": airportAt("JFK", 40.6413, -73.7781),
		"LHR": airportAt("LHR", 51.4700, -0.4543),
		"SXM": airportAt("SXM", 18.0410, -63.1089),
		"NOC": {Code: "NOC"},
	}
	return &Snapshot{
		Airports: airports,
		Aircraft: map[int64]domain.Aircraft{
			1: widebody(),
			2: {ID: 2, ShortName: "ATR72F", CruiseSpeedKt: 270, MaxPayloadLbs: 19000, FuelBurnGal: 200, MTOWKg: 23000},
			3: {ID: 3, ShortName: "idle"},
		},
		AircraftIDs: []int64{1, 2, 3},
		ProvidersByAircraft: map[int64][]domain.Provider{
			1: {
				{ID: 10, AircraftID: 1, BlockHourRate: 5000, ServiceType: domain.ServiceACMI},
				{ID: 11, AircraftID: 1, BlockHourRate: 9000, ServiceType: domain.ServiceCharter},
			},
			2: {
				{ID: 20, AircraftID: 2, BlockHourRate: 3500, ServiceType: domain.ServiceCharter},
			},
		},
		ExistingKeys:   map[domain.RouteKey]struct{}{},
		RoutedAirports: map[string]struct{}{},
	}
}

func TestAllPairsExcludesSelfAndUnlocatedAirports(t *testing.T) {
	snap := testSnapshot()
	pairs := AllPairs(NewDistanceCache(snap.Airports))

	require.Len(t, pairs, 6)
	for _, p := range pairs {
		assert.NotEqual(t, p.From, p.To)
		assert.NotEqual(t, "NOC", p.From)
		assert.NotEqual(t, "NOC", p.To)
	}
	assert.Equal(t, domain.AirportPair{From: "JFK", To: "LHR"}, pairs[0])
}

func TestEnumerateRoutesCrossProduct(t *testing.T) {
	snap := testSnapshot()
	distances := NewDistanceCache(snap.Airports)

	records := EnumerateRoutes(snap, distances, AllPairs(distances), nil)

	// 6 ordered pairs x 3 (aircraft, provider) combinations.
	require.Len(t, records, 18)

	seen := map[domain.RouteKey]struct{}{}
	for _, r := range records {
		assert.NotEqual(t, r.Origin, r.Destination)
		_, dup := seen[r.Key()]
		assert.False(t, dup, "duplicate key %s", r.Key())
		seen[r.Key()] = struct{}{}

		d, ok := distances.Get(r.Origin, r.Destination)
		require.True(t, ok)
		assert.Equal(t, d, r.DistanceNM)
	}

	first := records[0]
	assert.Equal(t, "JFK - LHR|1|10", first.Key().String())
}

func TestEnumerateRoutesSkipsExistingKeys(t *testing.T) {
	snap := testSnapshot()
	distances := NewDistanceCache(snap.Airports)
	existing := map[domain.RouteKey]struct{}{
		{Leg: "JFK - LHR", AircraftID: 1, ProviderID: 10}: {},
		{Leg: "LHR - JFK", AircraftID: 2, ProviderID: 20}: {},
	}

	records := EnumerateRoutes(snap, distances, AllPairs(distances), existing)

	require.Len(t, records, 16)
	for _, r := range records {
		_, skipped := existing[r.Key()]
		assert.False(t, skipped, "existing key %s was recomputed", r.Key())
	}
}

func TestEnumerateRoutesIgnoresUnusablePairs(t *testing.T) {
	snap := testSnapshot()
	distances := NewDistanceCache(snap.Airports)
	pairs := []domain.AirportPair{
		{From: "JFK", To: "JFK"},
		{From: "JFK", To: "NOC"},
		{From: "ZZZ", To: "JFK"},
		{From: "SXM", To: "JFK"},
	}

	records := EnumerateRoutes(snap, distances, pairs, nil)

	require.Len(t, records, 3)
	for _, r := range records {
		assert.Equal(t, "SXM - JFK", r.Leg())
	}
}

func TestLocalizedPairsNewAirportExpandsBothDirections(t *testing.T) {
	routed := map[string]struct{}{"A": {}, "B": {}}

	pairs := LocalizedPairs("A", "C", []string{"A", "B", "C"}, routed)

	assert.Equal(t, []domain.AirportPair{
		{From: "A", To: "C"},
		{From: "B", To: "C"},
		{From: "C", To: "A"},
		{From: "C", To: "B"},
	}, pairs)
}

func TestLocalizedPairsBothNew(t *testing.T) {
	pairs := LocalizedPairs("A", "B", []string{"A", "B", "C"}, map[string]struct{}{})

	assert.Equal(t, []domain.AirportPair{
		{From: "A", To: "B"},
		{From: "A", To: "C"},
		{From: "B", To: "A"},
		{From: "B", To: "C"},
		{From: "C", To: "A"},
		{From: "C", To: "B"},
	}, pairs)
}

func TestLocalizedPairsKnownAirportsOnlyRequestedLeg(t *testing.T) {
	routed := map[string]struct{}{"A": {}, "B": {}}

	assert.Equal(t, []domain.AirportPair{{From: "B", To: "A"}}, LocalizedPairs("B", "A", []string{"A", "B"}, routed))
	assert.Nil(t, LocalizedPairs("A", "A", []string{"A", "B"}, routed))
}
