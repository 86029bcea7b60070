package services

import (
	"testing"

	"safariconnect_server/models"
)

func planFor(destination, start, end string) models.TravelPlan {
	return models.TravelPlan{Destination: destination, StartDate: start, EndDate: end}
}

func TestDateOverlapPartialWindow(t *testing.T) {
	// A plans Maasai Mara Jul 1-10, B plans Maasai Mara Jul 5-15.
	// Overlap Jul 5-10 = 5 days, longest plan = 10 days -> 50.
	a := models.UserProfile{TravelPlans: []models.TravelPlan{planFor("Maasai Mara", "2025-07-01", "2025-07-10")}}
	b := models.UserProfile{TravelPlans: []models.TravelPlan{planFor("Maasai Mara", "2025-07-05", "2025-07-15")}}

	score := CalculateMatchScore(a, b)
	if score.Breakdown.DateOverlapScore != 50 {
		t.Fatalf("expected date overlap score 50, got %d", score.Breakdown.DateOverlapScore)
	}
}

func TestDateOverlapNoSharedDestination(t *testing.T) {
	a := models.UserProfile{TravelPlans: []models.TravelPlan{planFor("Serengeti", "2025-07-01", "2025-07-10")}}
	b := models.UserProfile{TravelPlans: []models.TravelPlan{planFor("Maasai Mara", "2025-07-01", "2025-07-10")}}

	score := CalculateMatchScore(a, b)
	if score.Breakdown.DateOverlapScore != 0 {
		t.Fatalf("expected 0 for disjoint destinations, got %d", score.Breakdown.DateOverlapScore)
	}
	if score.Breakdown.DestinationScore != 0 {
		t.Fatalf("expected 0 destination score, got %d", score.Breakdown.DestinationScore)
	}
}

func TestDateOverlapDisjointDates(t *testing.T) {
	a := models.UserProfile{TravelPlans: []models.TravelPlan{planFor("Maasai Mara", "2025-07-01", "2025-07-10")}}
	b := models.UserProfile{TravelPlans: []models.TravelPlan{planFor("Maasai Mara", "2025-08-01", "2025-08-10")}}

	if got := CalculateMatchScore(a, b).Breakdown.DateOverlapScore; got != 0 {
		t.Fatalf("expected 0 for disjoint dates, got %d", got)
	}
}

func TestDateOverlapPicksBestPlanPair(t *testing.T) {
	a := models.UserProfile{TravelPlans: []models.TravelPlan{
		planFor("Maasai Mara", "2025-07-01", "2025-07-10"),
		planFor("Amboseli", "2025-09-01", "2025-09-10"),
	}}
	b := models.UserProfile{TravelPlans: []models.TravelPlan{
		planFor("Maasai Mara", "2025-07-05", "2025-07-15"), // 50
		planFor("Amboseli", "2025-09-01", "2025-09-10"),    // identical window -> 100
	}}

	if got := CalculateMatchScore(a, b).Breakdown.DateOverlapScore; got != 100 {
		t.Fatalf("expected best pair to win with 100, got %d", got)
	}
}

func TestDateOverlapUnparseableDatesSkipped(t *testing.T) {
	a := models.UserProfile{TravelPlans: []models.TravelPlan{planFor("Maasai Mara", "next tuesday", "2025-07-10")}}
	b := models.UserProfile{TravelPlans: []models.TravelPlan{planFor("Maasai Mara", "2025-07-05", "2025-07-15")}}

	if got := CalculateMatchScore(a, b).Breakdown.DateOverlapScore; got != 0 {
		t.Fatalf("expected unparseable plan to be skipped, got %d", got)
	}
}

func TestDestinationMatchPartial(t *testing.T) {
	a := models.UserProfile{TravelPlans: []models.TravelPlan{
		planFor("Maasai Mara", "2025-07-01", "2025-07-10"),
		planFor("Serengeti", "2025-08-01", "2025-08-10"),
	}}
	b := models.UserProfile{TravelPlans: []models.TravelPlan{planFor("Maasai Mara", "2025-07-01", "2025-07-10")}}

	// 1 common destination out of max(2, 1) -> 50
	if got := CalculateMatchScore(a, b).Breakdown.DestinationScore; got != 50 {
		t.Fatalf("expected destination score 50, got %d", got)
	}
}

func TestInterestCompatibility(t *testing.T) {
	tests := []struct {
		name       string
		interests1 []string
		interests2 []string
		want       int
	}{
		{"half shared", []string{"safari", "beach"}, []string{"safari", "hiking"}, 50},
		{"all shared", []string{"safari"}, []string{"safari"}, 100},
		{"none shared", []string{"safari"}, []string{"museums"}, 0},
		{"empty side is neutral", nil, []string{"safari"}, 50},
		{"both empty is neutral", nil, nil, 50},
	}

	for _, tt := range tests {
		a := models.UserProfile{Interests: tt.interests1}
		b := models.UserProfile{Interests: tt.interests2}
		if got := CalculateMatchScore(a, b).Breakdown.InterestScore; got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestTravelStyleCompatibility(t *testing.T) {
	tests := []struct {
		style1, style2 string
		want           int
	}{
		{models.TravelStyleBudget, models.TravelStyleBudget, 100},
		{models.TravelStyleMixed, models.TravelStyleLuxury, 75},
		{models.TravelStyleBudget, models.TravelStyleAdventure, 60},
		{models.TravelStyleAdventure, models.TravelStyleBudget, 60}, // order-independent
		{models.TravelStyleLuxury, models.TravelStyleRelaxation, 60},
		{models.TravelStyleAdventure, models.TravelStyleCultural, 60},
		{models.TravelStyleRelaxation, models.TravelStyleCultural, 60},
		{models.TravelStyleLuxury, models.TravelStyleAdventure, 30},
		{models.TravelStyleBudget, models.TravelStyleRelaxation, 30},
	}

	for _, tt := range tests {
		a := models.UserProfile{TravelStyle: tt.style1}
		b := models.UserProfile{TravelStyle: tt.style2}
		if got := CalculateMatchScore(a, b).Breakdown.TravelStyleScore; got != tt.want {
			t.Errorf("%s vs %s: expected %d, got %d", tt.style1, tt.style2, tt.want, got)
		}
	}
}

func TestAgeCompatibilityBuckets(t *testing.T) {
	tests := []struct {
		age1, age2 int
		want       int
	}{
		{30, 30, 100},
		{30, 35, 100},
		{30, 40, 80},
		{30, 45, 60},
		{30, 50, 40},
		{30, 55, 20},
		{0, 30, 50}, // missing age is neutral
		{30, 0, 50},
	}

	for _, tt := range tests {
		a := models.UserProfile{Age: tt.age1}
		b := models.UserProfile{Age: tt.age2}
		if got := CalculateMatchScore(a, b).Breakdown.AgeScore; got != tt.want {
			t.Errorf("ages %d/%d: expected %d, got %d", tt.age1, tt.age2, tt.want, got)
		}
	}
}

func TestLanguageCompatibility(t *testing.T) {
	tests := []struct {
		langs1, langs2 []string
		want           int
	}{
		{[]string{"en", "sw"}, []string{"sw"}, 100},
		{[]string{"en"}, []string{"fr"}, 0},
		{nil, []string{"en"}, 50},
		{nil, nil, 50},
	}

	for _, tt := range tests {
		a := models.UserProfile{Languages: tt.langs1}
		b := models.UserProfile{Languages: tt.langs2}
		if got := CalculateMatchScore(a, b).Breakdown.LanguageScore; got != tt.want {
			t.Errorf("langs %v/%v: expected %d, got %d", tt.langs1, tt.langs2, tt.want, got)
		}
	}
}

func perfectPair() (models.UserProfile, models.UserProfile) {
	plan := planFor("Maasai Mara", "2025-07-01", "2025-07-10")
	a := models.UserProfile{
		Age: 30, TravelStyle: models.TravelStyleBudget,
		Interests: []string{"safari"}, Languages: []string{"en"},
		TravelPlans: []models.TravelPlan{plan},
	}
	b := a
	return a, b
}

func TestTotalScoreWeighting(t *testing.T) {
	a, b := perfectPair()
	if got := CalculateMatchScore(a, b).Total; got != 100 {
		t.Fatalf("identical profiles should score 100, got %d", got)
	}

	// Disjoint languages cost exactly the 5% language weight
	b.Languages = []string{"fr"}
	if got := CalculateMatchScore(a, b).Total; got != 95 {
		t.Fatalf("expected 95 with no shared language, got %d", got)
	}

	// Neutral interests on top: the 20% weight drops from 100 to 50
	b.Interests = nil
	if got := CalculateMatchScore(a, b).Total; got != 85 {
		t.Fatalf("expected 85 with neutral interests, got %d", got)
	}
}

func TestScoreBoundsAndSymmetry(t *testing.T) {
	profiles := []models.UserProfile{
		{},
		{Age: 22, TravelStyle: models.TravelStyleMixed, Interests: []string{"beach"}},
		{Age: 48, TravelStyle: models.TravelStyleLuxury, Languages: []string{"de"},
			TravelPlans: []models.TravelPlan{planFor("Serengeti", "2025-06-01", "2025-06-20")}},
		{Age: 30, TravelStyle: models.TravelStyleAdventure, Interests: []string{"safari", "hiking"},
			Languages:   []string{"en", "sw"},
			TravelPlans: []models.TravelPlan{planFor("Serengeti", "2025-06-10", "2025-06-15"), planFor("Amboseli", "2025-09-01", "2025-09-05")}},
	}

	for i, a := range profiles {
		for j, b := range profiles {
			forward := CalculateMatchScore(a, b)
			backward := CalculateMatchScore(b, a)

			if forward != backward {
				t.Fatalf("score not symmetric for profiles %d/%d: %+v vs %+v", i, j, forward, backward)
			}

			values := []int{
				forward.Total,
				forward.Breakdown.DateOverlapScore,
				forward.Breakdown.DestinationScore,
				forward.Breakdown.InterestScore,
				forward.Breakdown.TravelStyleScore,
				forward.Breakdown.AgeScore,
				forward.Breakdown.LanguageScore,
			}
			for _, v := range values {
				if v < 0 || v > 100 {
					t.Fatalf("score out of range for profiles %d/%d: %+v", i, j, forward)
				}
			}
		}
	}
}

func TestNoTravelPlansScoresZeroOverlap(t *testing.T) {
	a := models.UserProfile{}
	b := models.UserProfile{TravelPlans: []models.TravelPlan{planFor("Maasai Mara", "2025-07-01", "2025-07-10")}}

	score := CalculateMatchScore(a, b)
	if score.Breakdown.DateOverlapScore != 0 || score.Breakdown.DestinationScore != 0 {
		t.Fatalf("profile without plans should score 0 on overlap and destination: %+v", score.Breakdown)
	}
}
