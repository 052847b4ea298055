package services

import (
	"math"
	"strings"
	"time"

	"expired-leads/models"
)

// Factor names as shown in score breakdowns.
const (
	FactorRecency        = "Recency"
	FactorPriceBand      = "Price Band"
	FactorPropertyType   = "Property Type"
	FactorLocation       = "Location"
	FactorContactability = "Contactability"
)

// Weights in percent; they sum to 100.
const (
	weightRecency        = 30
	weightPriceBand      = 25
	weightPropertyType   = 15
	weightLocation       = 15
	weightContactability = 15
)

const neutralScore = 50

var propertyTypeScores = map[models.PropertyType]int{
	models.PropertyHouse:     100,
	models.PropertyTownhouse: 85,
	models.PropertyRowHome:   75,
	models.PropertyCondo:     70,
	models.PropertyMobile:    30,
}

// cityScores reflects resale demand per city, keyed by lower-case name.
var cityScores = map[string]int{
	"vancouver":            100,
	"west vancouver":       100,
	"north vancouver":      90,
	"burnaby":              85,
	"richmond":             85,
	"coquitlam":            80,
	"port moody":           80,
	"new westminster":      75,
	"tsawwassen":           75,
	"surrey":               70,
	"white rock":           70,
	"langley":              70,
	"ladner":               65,
	"north delta":          65,
	"maple ridge":          60,
	"abbotsford":           55,
	"mission":              45,
	"chilliwack":           45,
	"agassiz":              35,
	"harrison hot springs": 35,
}

// ScoringEngine ranks leads from 0 to 100. It has no state besides its clock.
type ScoringEngine struct {
	Now func() time.Time
}

// NewScoringEngine creates an engine that measures recency against time.Now.
func NewScoringEngine() *ScoringEngine {
	return &ScoringEngine{Now: time.Now}
}

// Score returns the lead score for in.
func (e *ScoringEngine) Score(in models.ScoreInput) int {
	return e.Breakdown(in).Total
}

// Breakdown returns every factor with its weight and contribution. Only the
// total is rounded, so contributions sum to the total within half a point.
func (e *ScoringEngine) Breakdown(in models.ScoreInput) models.ScoreBreakdown {
	factors := []models.FactorScore{
		factor(FactorRecency, RecencyScore(e.daysSince(in.ExpiryDate)), weightRecency),
		factor(FactorPriceBand, PriceBandScore(in.Price), weightPriceBand),
		factor(FactorPropertyType, PropertyTypeScore(in.PropertyType), weightPropertyType),
		factor(FactorLocation, LocationScore(in.City), weightLocation),
		factor(FactorContactability, ContactabilityScore(in.OwnerName, in.OwnerPhone, in.OwnerEmail), weightContactability),
	}

	var sum float64
	for _, f := range factors {
		sum += f.Contribution
	}
	total := int(math.Round(sum))
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}
	return models.ScoreBreakdown{Factors: factors, Total: total}
}

func factor(name string, raw, weight int) models.FactorScore {
	return models.FactorScore{
		Name:         name,
		RawScore:     raw,
		WeightPct:    weight,
		Contribution: float64(raw*weight) / 100,
	}
}

// daysSince counts whole calendar days from expiry to now. A future or zero
// expiry date counts as today.
func (e *ScoringEngine) daysSince(expiry time.Time) int {
	if expiry.IsZero() {
		return 0
	}
	now := e.Now()
	days := int(math.Round(startOfDay(now).Sub(startOfDay(expiry.In(now.Location()))).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// RecencyScore decreases with days since the listing expired.
func RecencyScore(days int) int {
	switch {
	case days <= 7:
		return 100
	case days <= 14:
		return 90
	case days <= 30:
		return 75
	case days <= 60:
		return 55
	case days <= 90:
		return 35
	case days <= 180:
		return 20
	default:
		return 10
	}
}

// PriceBandScore peaks between $500k and $1.5M and falls off on both sides.
// An unknown price is neutral.
func PriceBandScore(price *float64) int {
	if price == nil {
		return neutralScore
	}
	p := *price
	switch {
	case p < 150_000:
		return 30
	case p < 300_000:
		return 55
	case p < 500_000:
		return 80
	case p <= 1_500_000:
		return 100
	case p <= 3_000_000:
		return 75
	default:
		return 50
	}
}

// PropertyTypeScore looks up the desirability of a dwelling type.
func PropertyTypeScore(t *models.PropertyType) int {
	if t == nil {
		return neutralScore
	}
	if s, ok := propertyTypeScores[*t]; ok {
		return s
	}
	return neutralScore
}

// LocationScore looks up market demand for a city.
func LocationScore(city *string) int {
	if city == nil {
		return neutralScore
	}
	if s, ok := cityScores[strings.ToLower(strings.TrimSpace(*city))]; ok {
		return s
	}
	return neutralScore
}

// ContactabilityScore rewards each owner contact channel that is present.
func ContactabilityScore(name, phone, email *string) int {
	n := 0
	for _, v := range []*string{name, phone, email} {
		if v != nil && strings.TrimSpace(*v) != "" {
			n++
		}
	}
	switch n {
	case 0:
		return 0
	case 1:
		return 40
	case 2:
		return 70
	default:
		return 100
	}
}
