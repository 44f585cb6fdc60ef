package attraction

import (
	"math"
	"sort"

	"backend-panoratravel/internal/shared/geo"
)

// Origin is a lookup point for nearby-attraction ranking.
type Origin struct {
	Lat float64
	Lng float64
}

// RankNearby sorts candidates by great-circle distance from origin and
// returns the nearest k. Candidates without usable coordinates are assigned
// infinite distance so they sort last instead of breaking the ranking. Equal
// distances keep the original input order.
func RankNearby(origin Origin, candidates []Attraction, k int) []Ranked {
	ranked := make([]Ranked, 0, len(candidates))
	for _, c := range candidates {
		d := math.Inf(1)
		if validCoords(c.Lat, c.Lng) {
			d = geo.HaversineKm(origin.Lat, origin.Lng, c.Lat, c.Lng)
		}
		ranked = append(ranked, Ranked{Attraction: c, DistanceKm: d})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	if k > 0 && k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}

// validCoords rejects out-of-range values and the (0,0) null island default
// that unset records carry.
func validCoords(lat, lng float64) bool {
	if lat == 0 && lng == 0 {
		return false
	}
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
