package services

import (
	"math"
	"route-cost-service/internal/domain"
)

// OverflightFeeRate is charged per nautical mile on ACMI routes and recorded,
// but not charged, on charter routes.
const OverflightFeeRate = 0.3

const charterRoundingUnit = 500.0

// FlightTime is distance over cruise speed in hours. A non-positive cruise speed yields zero.
func FlightTime(distanceNM, cruiseSpeedKt float64) float64 {
	if cruiseSpeedKt <= 0 {
		return 0
	}
	return distanceNM / cruiseSpeedKt
}

// AdjustedFlightTime rounds a raw flight time up to the next half hour.
// Exact half-hour multiples are returned unchanged.
func AdjustedFlightTime(hours float64) float64 {
	if hours <= 0 {
		return 0
	}
	return math.Ceil(hours*2) / 2
}

// roundHalfUp rounds v to the nearest multiple of unit, ties away from zero for positive v.
func roundHalfUp(v, unit float64) float64 {
	return math.Floor(v/unit+0.5) * unit
}

// PriceRoute computes flight time, derated payload and the cost breakdown for
// flying aircraft from origin to destination under provider's terms.
//
// Charter providers bill one inclusive block-hour figure rounded to the nearest 500.
// ACMI providers bill block hours plus fuel, overflight and airport fees, all keyed
// on the departure airport.
func PriceRoute(
	origin domain.Airport,
	destination string,
	distanceNM float64,
	aircraft domain.Aircraft,
	provider domain.Provider,
) domain.RouteRecord {
	flightTime := FlightTime(distanceNM, aircraft.CruiseSpeedKt)
	adjusted := AdjustedFlightTime(flightTime)

	r := domain.RouteRecord{
		Origin:             origin.Code,
		Destination:        destination,
		DistanceNM:         distanceNM,
		AircraftID:         aircraft.ID,
		ProviderID:         provider.ID,
		FlightTime:         flightTime,
		AdjustedFlightTime: adjusted,
		MaxPayload:         EffectivePayload(aircraft.MaxPayloadLbs, origin.AltitudeFt),
		ServiceType:        provider.ServiceType,
		OverflightFee:      OverflightFeeRate,
	}

	switch provider.ServiceType {
	case domain.ServiceCharter:
		r.BlockHoursCost = roundHalfUp(adjusted*provider.BlockHourRate, charterRoundingUnit)
		r.TotalCost = r.BlockHoursCost
	case domain.ServiceACMI:
		r.BlockHoursCost = adjusted * provider.BlockHourRate
		r.FuelGallons = aircraft.FuelBurnGal * adjusted
		r.FuelCost = origin.FuelCostPerGal * r.FuelGallons
		r.OverflightCost = distanceNM * OverflightFeeRate
		r.AirportFeesCost = aircraft.MTOWKg * origin.AirportFee
		r.TotalCost = r.BlockHoursCost + r.FuelCost + r.OverflightCost + r.AirportFeesCost
	}

	return r
}
