package services

import (
	"math"
	"time"

	"safariconnect_server/models"
)

// Factor weights for the compatibility score. Must sum to 1.0.
const (
	weightDateOverlap = 0.35 // Most important
	weightDestination = 0.25 // Very important
	weightInterests   = 0.20 // Important
	weightTravelStyle = 0.10 // Nice to have
	weightAge         = 0.05 // Minor factor
	weightLanguage    = 0.05 // Minor factor
)

// neutralScore is used when a factor has no data to judge on either side
const neutralScore = 50

// compatibleStylePairs lists travel style pairs that score 60 (order-independent)
var compatibleStylePairs = [][2]string{
	{models.TravelStyleBudget, models.TravelStyleAdventure},
	{models.TravelStyleLuxury, models.TravelStyleRelaxation},
	{models.TravelStyleAdventure, models.TravelStyleCultural},
	{models.TravelStyleRelaxation, models.TravelStyleCultural},
}

// CalculateMatchScore computes the weighted 0-100 compatibility score between
// two profiles. Pure and symmetric; missing optional data scores neutral,
// never errors.
func CalculateMatchScore(a, b models.UserProfile) models.MatchScore {
	breakdown := models.MatchBreakdown{
		DateOverlapScore: calculateDateOverlap(a, b),
		DestinationScore: calculateDestinationMatch(a, b),
		InterestScore:    calculateInterestCompatibility(a, b),
		TravelStyleScore: calculateTravelStyleCompatibility(a, b),
		AgeScore:         calculateAgeCompatibility(a, b),
		LanguageScore:    calculateLanguageCompatibility(a, b),
	}

	total := int(math.Round(
		float64(breakdown.DateOverlapScore)*weightDateOverlap +
			float64(breakdown.DestinationScore)*weightDestination +
			float64(breakdown.InterestScore)*weightInterests +
			float64(breakdown.TravelStyleScore)*weightTravelStyle +
			float64(breakdown.AgeScore)*weightAge +
			float64(breakdown.LanguageScore)*weightLanguage))

	return models.MatchScore{Total: total, Breakdown: breakdown}
}

// parsePlanDate accepts full RFC3339 timestamps or plain dates
func parsePlanDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// calculateDateOverlap takes the best overlap score across all plan pairs
// sharing a destination. Plans with unparseable dates are skipped.
func calculateDateOverlap(a, b models.UserProfile) int {
	maxOverlapScore := 0

	for _, plan1 := range a.TravelPlans {
		start1, ok1 := parsePlanDate(plan1.StartDate)
		end1, ok2 := parsePlanDate(plan1.EndDate)
		if !ok1 || !ok2 {
			continue
		}

		for _, plan2 := range b.TravelPlans {
			if plan1.Destination != plan2.Destination {
				continue
			}
			start2, ok3 := parsePlanDate(plan2.StartDate)
			end2, ok4 := parsePlanDate(plan2.EndDate)
			if !ok3 || !ok4 {
				continue
			}

			overlap := minTime(end1, end2).Sub(maxTime(start1, start2))
			if overlap <= 0 {
				continue
			}

			overlapDays := math.Ceil(overlap.Hours() / 24)
			totalDays := math.Max(end1.Sub(start1).Hours()/24, end2.Sub(start2).Hours()/24)
			if totalDays <= 0 {
				continue
			}

			score := int(math.Round(overlapDays / totalDays * 100))
			if score > maxOverlapScore {
				maxOverlapScore = score
			}
		}
	}

	if maxOverlapScore > 100 {
		maxOverlapScore = 100
	}
	return maxOverlapScore
}

// calculateDestinationMatch scores the overlap of planned destinations
func calculateDestinationMatch(a, b models.UserProfile) int {
	dest1 := destinationSet(a.TravelPlans)
	dest2 := destinationSet(b.TravelPlans)
	if len(dest1) == 0 || len(dest2) == 0 {
		return 0
	}

	common := 0
	for d := range dest1 {
		if _, ok := dest2[d]; ok {
			common++
		}
	}
	if common == 0 {
		return 0
	}

	return int(math.Round(float64(common) / math.Max(float64(len(dest1)), float64(len(dest2))) * 100))
}

// calculateInterestCompatibility scores shared interests; no interests on
// either side is neutral rather than a mismatch.
func calculateInterestCompatibility(a, b models.UserProfile) int {
	if len(a.Interests) == 0 || len(b.Interests) == 0 {
		return neutralScore
	}

	common := countCommon(a.Interests, b.Interests)
	return int(math.Round(float64(common) / math.Max(float64(len(a.Interests)), float64(len(b.Interests))) * 100))
}

// calculateTravelStyleCompatibility scores style alignment against a fixed
// compatibility table.
func calculateTravelStyleCompatibility(a, b models.UserProfile) int {
	if a.TravelStyle == b.TravelStyle {
		return 100
	}
	if a.TravelStyle == models.TravelStyleMixed || b.TravelStyle == models.TravelStyleMixed {
		return 75
	}

	for _, pair := range compatibleStylePairs {
		if (pair[0] == a.TravelStyle && pair[1] == b.TravelStyle) ||
			(pair[0] == b.TravelStyle && pair[1] == a.TravelStyle) {
			return 60
		}
	}
	return 30
}

// calculateAgeCompatibility buckets the absolute age difference
func calculateAgeCompatibility(a, b models.UserProfile) int {
	if a.Age == 0 || b.Age == 0 {
		return neutralScore
	}

	ageDiff := a.Age - b.Age
	if ageDiff < 0 {
		ageDiff = -ageDiff
	}

	switch {
	case ageDiff <= 5:
		return 100
	case ageDiff <= 10:
		return 80
	case ageDiff <= 15:
		return 60
	case ageDiff <= 20:
		return 40
	default:
		return 20
	}
}

// calculateLanguageCompatibility is all-or-nothing on a shared language
func calculateLanguageCompatibility(a, b models.UserProfile) int {
	if len(a.Languages) == 0 || len(b.Languages) == 0 {
		return neutralScore
	}
	if countCommon(a.Languages, b.Languages) > 0 {
		return 100
	}
	return 0
}

func destinationSet(plans []models.TravelPlan) map[string]struct{} {
	set := make(map[string]struct{}, len(plans))
	for _, p := range plans {
		if p.Destination != "" {
			set[p.Destination] = struct{}{}
		}
	}
	return set
}

func countCommon(list1, list2 []string) int {
	set := make(map[string]struct{}, len(list1))
	for _, v := range list1 {
		set[v] = struct{}{}
	}
	common := 0
	seen := make(map[string]struct{}, len(list2))
	for _, v := range list2 {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		if _, ok := set[v]; ok {
			common++
		}
	}
	return common
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
