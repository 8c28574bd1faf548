package core

import (
	"math"

	"github.com/quickmart/support-bot/internal/store"
)

const earthRadiusM = 6371000.0

// HaversineDistance returns the great-circle distance between two points
// in meters.
func HaversineDistance(a, b store.Coordinate) float64 {
	phi1 := radians(a.Lat)
	phi2 := radians(b.Lat)
	dPhi := radians(b.Lat - a.Lat)
	dLambda := radians(b.Lon - a.Lon)

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusM * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// FindNearestStore scans all stores and returns a copy of the closest one,
// annotated with its distance in meters rounded to one decimal. Stores
// without a parsed coordinate are skipped; ties keep the first minimum
// encountered. Returns nil when no store has a usable coordinate.
func FindNearestStore(user store.Coordinate, stores []store.Store) *store.ResolvedStore {
	var best *store.ResolvedStore
	var bestDist float64

	for _, s := range stores {
		if s.Coord == nil {
			continue
		}
		dist := HaversineDistance(user, *s.Coord)
		if best == nil || dist < bestDist {
			bestDist = dist
			rounded := math.Round(dist*10) / 10
			best = &store.ResolvedStore{Store: s, DistanceM: &rounded}
		}
	}
	return best
}
