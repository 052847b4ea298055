package services

import (
	"math"
	"testing"
	"time"

	"expired-leads/models"
)

func newTestScorer() *ScoringEngine {
	return &ScoringEngine{Now: func() time.Time { return fixedNow }}
}

func fptr(f float64) *float64 { return &f }
func sptr(s string) *string    { return &s }

func TestRecencyScoreDecreases(t *testing.T) {
	prev := RecencyScore(0)
	for d := 1; d <= 400; d++ {
		cur := RecencyScore(d)
		if cur > prev {
			t.Fatalf("RecencyScore(%d) = %d > RecencyScore(%d) = %d", d, cur, d-1, prev)
		}
		prev = cur
	}
	if RecencyScore(0) <= RecencyScore(90) {
		t.Errorf("expired today (%d) should beat 90 days stale (%d)", RecencyScore(0), RecencyScore(90))
	}
}

func TestPriceBandScoreIsSinglePeaked(t *testing.T) {
	tests := []struct {
		price float64
		want  int
	}{
		{50_000, 30},
		{200_000, 55},
		{450_000, 80},
		{899_000, 100},
		{1_500_000, 100},
		{2_000_000, 75},
		{8_000_000, 50},
	}
	for _, tt := range tests {
		if got := PriceBandScore(fptr(tt.price)); got != tt.want {
			t.Errorf("PriceBandScore(%.0f) = %d; want %d", tt.price, got, tt.want)
		}
	}
	if got := PriceBandScore(nil); got != 50 {
		t.Errorf("PriceBandScore(nil) = %d; want neutral 50", got)
	}
}

func TestPropertyTypeScore(t *testing.T) {
	house, mobile := models.PropertyHouse, models.PropertyMobile
	if PropertyTypeScore(&house) <= PropertyTypeScore(&mobile) {
		t.Error("house should outscore mobile")
	}
	if got := PropertyTypeScore(nil); got != 50 {
		t.Errorf("PropertyTypeScore(nil) = %d; want 50", got)
	}
	unknown := models.PropertyType("castle")
	if got := PropertyTypeScore(&unknown); got != 50 {
		t.Errorf("PropertyTypeScore(castle) = %d; want 50", got)
	}
}

func TestLocationScore(t *testing.T) {
	if got := LocationScore(sptr("vancouver")); got != 100 {
		t.Errorf("LocationScore(vancouver) = %d; want 100", got)
	}
	if got := LocationScore(sptr("Atlantis")); got != 50 {
		t.Errorf("LocationScore(Atlantis) = %d; want 50", got)
	}
	if got := LocationScore(nil); got != 50 {
		t.Errorf("LocationScore(nil) = %d; want 50", got)
	}
}

func TestContactabilityScore(t *testing.T) {
	name, phone, email, blank := sptr("Pat"), sptr("604-555-0101"), sptr("pat@example.com"), sptr("  ")

	tests := []struct {
		name, phone, email *string
		want               int
	}{
		{nil, nil, nil, 0},
		{blank, blank, blank, 0},
		{name, nil, nil, 40},
		{name, phone, nil, 70},
		{name, phone, email, 100},
	}
	for i, tt := range tests {
		if got := ContactabilityScore(tt.name, tt.phone, tt.email); got != tt.want {
			t.Errorf("case %d: got %d; want %d", i, got, tt.want)
		}
	}
}

func TestScoreFreshVancouverHouse(t *testing.T) {
	e := newTestScorer()
	house := models.PropertyHouse
	in := models.ScoreInput{
		ExpiryDate:   fixedNow,
		Price:        fptr(1_200_000),
		PropertyType: &house,
		City:         sptr("Vancouver"),
		OwnerName:    sptr("Pat"),
		OwnerPhone:   sptr("604-555-0101"),
		OwnerEmail:   sptr("pat@example.com"),
	}
	if got := e.Score(in); got != 100 {
		t.Errorf("Score = %d; want 100", got)
	}
}

func TestScoreWeightsAndRounding(t *testing.T) {
	e := newTestScorer()
	condo := models.PropertyCondo
	in := models.ScoreInput{
		ExpiryDate:   fixedNow.AddDate(0, 0, -20), // recency 75
		Price:        fptr(350_000),               // price 80
		PropertyType: &condo,                      // type 70
		City:         sptr("Surrey"),              // location 70
		OwnerName:    sptr("Pat"),                 // contact 40
	}
	// 75*.30 + 80*.25 + 70*.15 + 70*.15 + 40*.15 = 22.5 + 20 + 10.5 + 10.5 + 6 = 69.5
	if got := e.Score(in); got != 70 {
		t.Errorf("Score = %d; want 70", got)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	e := newTestScorer()
	in := models.ScoreInput{ExpiryDate: fixedNow.AddDate(0, 0, -45), Price: fptr(640_000), City: sptr("Burnaby")}
	first := e.Score(in)
	for i := 0; i < 10; i++ {
		if got := e.Score(in); got != first {
			t.Fatalf("call %d: got %d, first call %d", i, got, first)
		}
	}
}

func TestBreakdownSumsToScore(t *testing.T) {
	e := newTestScorer()
	townhouse := models.PropertyTownhouse
	inputs := []models.ScoreInput{
		{},
		{ExpiryDate: fixedNow.AddDate(0, -3, 0), Price: fptr(99_000)},
		{ExpiryDate: fixedNow.AddDate(0, 0, -8), Price: fptr(2_400_000), PropertyType: &townhouse, City: sptr("Langley"), OwnerEmail: sptr("a@b.c")},
		{ExpiryDate: fixedNow.AddDate(1, 0, 0), City: sptr("Mission"), OwnerName: sptr("x"), OwnerPhone: sptr("y")},
	}

	for i, in := range inputs {
		b := e.Breakdown(in)
		if len(b.Factors) != 5 {
			t.Fatalf("case %d: expected 5 factors, got %d", i, len(b.Factors))
		}
		var sum float64
		weights := 0
		for _, f := range b.Factors {
			sum += f.Contribution
			weights += f.WeightPct
			if f.RawScore < 0 || f.RawScore > 100 {
				t.Errorf("case %d: %s raw score %d out of range", i, f.Name, f.RawScore)
			}
			if want := float64(f.RawScore*f.WeightPct) / 100; f.Contribution != want {
				t.Errorf("case %d: %s contribution %.2f; want %.2f", i, f.Name, f.Contribution, want)
			}
		}
		if weights != 100 {
			t.Errorf("case %d: weights sum to %d", i, weights)
		}
		if math.Abs(sum-float64(b.Total)) > 1 {
			t.Errorf("case %d: contributions %.2f vs total %d", i, sum, b.Total)
		}
		if b.Total != e.Score(in) {
			t.Errorf("case %d: breakdown total %d != score %d", i, b.Total, e.Score(in))
		}
	}
}

func TestDaysSinceIgnoresTimeOfDay(t *testing.T) {
	e := newTestScorer()
	lateYesterday := time.Date(2026, 10, 15, 23, 59, 0, 0, time.UTC)
	if got := e.daysSince(lateYesterday); got != 1 {
		t.Errorf("daysSince(yesterday) = %d; want 1", got)
	}
	if got := e.daysSince(fixedNow.AddDate(0, 0, 3)); got != 0 {
		t.Errorf("future expiry should count as today, got %d", got)
	}
}
