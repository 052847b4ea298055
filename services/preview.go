package services

import (
	"fmt"
	"sort"
	"strings"

	"expired-leads/models"
	"expired-leads/utils"
)

type PreviewService struct {
	logger *utils.Logger
}

func NewPreviewService(logger *utils.Logger) *PreviewService {
	return &PreviewService{logger: logger}
}

func (s *PreviewService) Generate(candidates []*models.ParsedListing) *models.PreviewReport {
	report := &models.PreviewReport{
		ErrorsByReason: make(map[string]int),
		RowsByCity:     make(map[string]int),
		RowsByType:     make(map[string]int),
	}

	if len(candidates) == 0 {
		return report
	}

	report.TotalRows = len(candidates)
	seen := utils.NewKeySet()
	dupes := utils.NewKeySet()

	var total float64
	var priced int

	for _, c := range candidates {
		if c.Valid {
			report.ValidRows++
		} else {
			report.InvalidRows++
			if c.Error != nil {
				report.ErrorsByReason[*c.Error]++
			}
		}
		if c.City != nil {
			report.RowsByCity[*c.City]++
		} else {
			report.RowsByCity["(unmatched)"]++
		}
		if c.PropertyType != nil {
			report.RowsByType[string(*c.PropertyType)]++
		} else {
			report.RowsByType["(unknown)"]++
		}
		if c.Status == models.StatusCancelProtected {
			report.CancelProtected++
		}
		if c.Price != nil {
			total += *c.Price
			priced++
		}
		// Same MLS number twice in one file: the second import would fail as a duplicate.
		if c.MLSNumber != "" && !seen.Add(c.MLSNumber) && dupes.Add(c.MLSNumber) {
			report.DuplicateMLS = append(report.DuplicateMLS, c.MLSNumber)
		}
	}

	if priced > 0 {
		report.AveragePrice = round2(total / float64(priced))
	}
	if len(report.DuplicateMLS) > 0 {
		s.logger.Warn("[preview] %d MLS numbers appear more than once", len(report.DuplicateMLS))
	}
	return report
}

func (s *PreviewService) Print(r *models.PreviewReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  IMPORT PREVIEW\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Candidates        : \033[1m%d\033[0m\n", r.TotalRows)
	fmt.Printf("  Ready to import   : \033[1;32m%d\033[0m\n", r.ValidRows)
	fmt.Printf("  Need review       : \033[1;31m%d\033[0m\n", r.InvalidRows)
	fmt.Printf("  Cancel protected  : %d\n", r.CancelProtected)
	if r.AveragePrice > 0 {
		fmt.Printf("  Average price     : \033[1;32m$%.2f\033[0m\n", r.AveragePrice)
	}
	fmt.Println()

	if len(r.ErrorsByReason) > 0 {
		fmt.Printf("\033[1;33m  Review Reasons\033[0m\n")
		fmt.Printf("  %s\n", thin)
		for _, kc := range sortedCounts(r.ErrorsByReason) {
			fmt.Printf("  %-30s %d\n", kc.key, kc.count)
		}
		fmt.Println()
	}

	if len(r.DuplicateMLS) > 0 {
		fmt.Printf("\033[1;33m  Repeated MLS Numbers\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s\n\n", strings.Join(r.DuplicateMLS, ", "))
	}

	printBars("Candidates by City", r.RowsByCity, thin)
	printBars("Candidates by Property Type", r.RowsByType, thin)

	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)
}

func printBars(title string, counts map[string]int, thin string) {
	fmt.Printf("\033[1;33m  %s\033[0m\n", title)
	fmt.Printf("  %s\n", thin)
	if len(counts) == 0 {
		fmt.Printf("  No data\n\n")
		return
	}
	for _, kc := range sortedCounts(counts) {
		bar := strings.Repeat("█", kc.count)
		fmt.Printf("  %-30s %s (%d)\n", truncate(kc.key, 28), truncate(bar, 20), kc.count)
	}
	fmt.Println()
}

type keyCount struct {
	key   string
	count int
}

// sortedCounts orders by count descending, then key.
func sortedCounts(m map[string]int) []keyCount {
	out := make([]keyCount, 0, len(m))
	for k, v := range m {
		out = append(out, keyCount{k, v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].key < out[j].key
	})
	return out
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
