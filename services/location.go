package services

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"expired-leads/models"
)

// Gazetteer is the board → city → neighborhood table used to place listings.
// Sequences keep declaration order, which decides ties in fuzzy matching.
type Gazetteer struct {
	Boards []Board `yaml:"boards"`
}

// Board is a real-estate board and the cities it covers.
type Board struct {
	Name   string `yaml:"name"`
	Cities []City `yaml:"cities"`
}

// City lists the neighborhoods (MLS sub-areas) of one city.
type City struct {
	Name          string   `yaml:"name"`
	Neighborhoods []string `yaml:"neighborhoods"`
}

// LoadGazetteer reads a YAML gazetteer from path.
func LoadGazetteer(path string) (*Gazetteer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gazetteer: read %q: %w", path, err)
	}
	var g Gazetteer
	if err := yaml.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("gazetteer: parse %q: %w", path, err)
	}
	if len(g.Boards) == 0 {
		return nil, fmt.Errorf("gazetteer: %q defines no boards", path)
	}
	return &g, nil
}

// LocationResolver maps free-text sub-areas from MLS exports onto the gazetteer.
type LocationResolver struct {
	gazetteer *Gazetteer
}

// NewLocationResolver creates a resolver over g. g must not be mutated afterwards.
func NewLocationResolver(g *Gazetteer) *LocationResolver {
	return &LocationResolver{gazetteer: g}
}

// Resolve returns the location for text, or nil when nothing matches.
//
// Stages, first hit wins:
//  1. exact, case-sensitive neighborhood name
//  2. case-insensitive city name
//  3. case-insensitive substring in either direction against neighborhoods
//
// Within a stage boards and cities are walked in declaration order, so an
// ambiguous fuzzy match goes to whichever entry appears first.
func (r *LocationResolver) Resolve(text string) *models.Location {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	for _, b := range r.gazetteer.Boards {
		for _, c := range b.Cities {
			for _, n := range c.Neighborhoods {
				if n == text {
					return &models.Location{Board: b.Name, City: c.Name, Neighborhood: n}
				}
			}
		}
	}

	for _, b := range r.gazetteer.Boards {
		for _, c := range b.Cities {
			if strings.EqualFold(c.Name, text) {
				return &models.Location{Board: b.Name, City: c.Name, Neighborhood: text}
			}
		}
	}

	lower := strings.ToLower(text)
	for _, b := range r.gazetteer.Boards {
		for _, c := range b.Cities {
			for _, n := range c.Neighborhoods {
				ln := strings.ToLower(n)
				if ln == "" {
					continue
				}
				if strings.Contains(ln, lower) || strings.Contains(lower, ln) {
					return &models.Location{Board: b.Name, City: c.Name, Neighborhood: n}
				}
			}
		}
	}

	return nil
}
