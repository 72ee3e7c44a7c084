// Package venues deduplicates venue candidates against a user's history and
// picks the best remaining one.
package venues

import (
	"regexp"
	"strconv"
	"strings"

	"thenetwork-workers/internal/models"
)

const (
	ratingWeight   = 0.6
	distanceWeight = 0.4
	// maxMiles is the distance at which the distance score reaches zero. It is
	// also assumed when a venue has no usable distance.
	maxMiles = 10.0
)

var firstNumber = regexp.MustCompile(`\d+(?:\.\d+)?|\.\d+`)

// NormalizeVenueName is the key used for used-venue membership.
func NormalizeVenueName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ParseDistanceMiles extracts the first decimal number of s ("3.7 mi" -> 3.7).
func ParseDistanceMiles(s *string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	tok := firstNumber.FindString(*s)
	if tok == "" {
		return 0, false
	}
	miles, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return miles, true
}

// ScoreVenue weighs rating against proximity.
func ScoreVenue(v models.Venue) float64 {
	miles, ok := ParseDistanceMiles(v.Distance)
	if !ok {
		miles = maxMiles
	}
	distanceScore := 1 - miles/maxMiles
	if distanceScore < 0 {
		distanceScore = 0
	}
	return (v.Rating/5)*ratingWeight + distanceScore*distanceWeight
}

// SelectVenue returns the best scoring venue whose normalized name is not in
// used. When every venue was used it returns the highest rated one instead.
// It returns nil only for an empty list. Ties keep input order.
func SelectVenue(candidates []models.Venue, used map[string]struct{}) (*models.Venue, bool) {
	if len(candidates) == 0 {
		return nil, false
	}

	best := -1
	bestScore := 0.0
	for i, v := range candidates {
		if _, seen := used[NormalizeVenueName(v.Name)]; seen {
			continue
		}
		if s := ScoreVenue(v); best == -1 || s > bestScore {
			best, bestScore = i, s
		}
	}
	if best >= 0 {
		v := candidates[best]
		return &v, true
	}

	best = 0
	for i, v := range candidates[1:] {
		if v.Rating > candidates[best].Rating {
			best = i + 1
		}
	}
	v := candidates[best]
	return &v, false
}

// Unused returns up to limit venues whose names are not in used, dropping
// repeated names, in input order. limit <= 0 means no limit.
func Unused(candidates []models.Venue, used map[string]struct{}, limit int) []models.Venue {
	out := []models.Venue{}
	seen := make(map[string]struct{}, len(candidates))
	for _, v := range candidates {
		name := NormalizeVenueName(v.Name)
		if _, ok := used[name]; ok {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, v)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// NameSet builds a used-venue set from raw names.
func NameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n = NormalizeVenueName(n); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}
