package services

type deratingStep struct {
	minAltitudeFt int
	factor        float64
}

// Steps are ordered by descending altitude; the first step at or below the
// departure altitude wins.
var deratingSteps = []deratingStep{
	{minAltitudeFt: 9000, factor: 0.16},
	{minAltitudeFt: 7500, factor: 0.12},
	{minAltitudeFt: 6000, factor: 0.10},
	{minAltitudeFt: 5000, factor: 0.05},
	{minAltitudeFt: 4000, factor: 0.02},
}

// DeratingFactor maps a departure altitude in feet to the fraction of payload lost.
// An unknown altitude is treated as sea level.
func DeratingFactor(altitudeFt *int) float64 {
	if altitudeFt == nil {
		return 0
	}
	for _, s := range deratingSteps {
		if *altitudeFt >= s.minAltitudeFt {
			return s.factor
		}
	}
	return 0
}

// EffectivePayload applies the departure-altitude derating to an aircraft's max payload.
func EffectivePayload(maxPayload float64, altitudeFt *int) float64 {
	return maxPayload * (1 - DeratingFactor(altitudeFt))
}
