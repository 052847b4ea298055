package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"expired-leads/models"
	"expired-leads/utils"
)

const (
	errMissingAddress = "Missing address"
	errNoLocation     = "Could not match location"
)

// Column aliases, highest priority first. Exports from different boards and
// MLS front-ends name the same field differently.
var (
	mlsColumns       = []string{"ML #", "MLS #", "MLS", "MLS Number", "ML Number"}
	addressColumns   = []string{"Address", "Street Address", "Addr", "Full Address"}
	subAreaColumns   = []string{"S/A", "Sub Area", "SubArea", "Sub-Area", "Neighborhood", "Neighbourhood", "Area"}
	priceColumns     = []string{"Price", "List Price", "LP", "Original Price"}
	domColumns       = []string{"DOM", "Days On Market", "CDOM"}
	bedroomColumns   = []string{"Tot BR", "Bedrooms", "Beds", "BR"}
	yearBuiltColumns = []string{"Yr Blt", "Year Built", "YrBlt"}
	lotSizeColumns   = []string{"Lot Sz (Sq.Ft.)", "Lot Size", "LotSz", "Lot SqFt"}
	dwellingColumns  = []string{"TypeDwel", "Type Dwelling", "Dwelling Type", "Dwel Type"}
	propTypeColumns  = []string{"Property Type", "Prop Type", "Style", "Type"}
	statusColumns    = []string{"Status", "Listing Status", "St"}
	ownerNameColumns = []string{"Owner Name", "Owner", "Seller Name"}
	ownerPhoneCols   = []string{"Owner Phone", "Seller Phone"}
	ownerEmailCols   = []string{"Owner Email", "Seller Email"}
)

// dwellingCodes maps MLS dwelling-type codes to property types. A code matches
// when it equals or starts with a key, case-insensitively.
var dwellingCodes = []struct {
	codes []string
	ptype models.PropertyType
}{
	{[]string{"HOUSE", "DETACH"}, models.PropertyHouse},
	{[]string{"TWNHS", "TOWNHOUSE"}, models.PropertyTownhouse},
	{[]string{"ROW", "ROWHOME"}, models.PropertyRowHome},
	{[]string{"CONDO", "APT", "APARTMENT"}, models.PropertyCondo},
	{[]string{"MOBILE", "MANUF"}, models.PropertyMobile},
}

// Normalizer turns rows from heterogeneous MLS exports into ParsedListings.
type Normalizer struct {
	resolver *LocationResolver
	logger   *utils.Logger
	// Now stamps cancel-protected dates.
	Now func() time.Time
}

// NewNormalizer creates a Normalizer that places rows with resolver.
func NewNormalizer(resolver *LocationResolver, logger *utils.Logger) *Normalizer {
	return &Normalizer{resolver: resolver, logger: logger, Now: time.Now}
}

// ReadRows decodes CSV text into rows keyed by the header line. Short rows
// are padded with empty values and surplus cells are ignored.
func ReadRows(r io.Reader) ([]models.RawImportRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv: missing header row")
		}
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	var rows []models.RawImportRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row %d: %w", len(rows)+2, err)
		}
		row := make(models.RawImportRow, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseCSV reads an MLS export and normalizes every row.
func (n *Normalizer) ParseCSV(rawText string) ([]*models.ParsedListing, error) {
	rows, err := ReadRows(strings.NewReader(rawText))
	if err != nil {
		return nil, err
	}
	return n.Parse(rows), nil
}

// Parse normalizes rows independently. Rows carrying nothing that identifies
// a listing are dropped; every other row is returned, flagged when it needs
// review.
func (n *Normalizer) Parse(rows []models.RawImportRow) []*models.ParsedListing {
	result := make([]*models.ParsedListing, 0, len(rows))
	invalid := 0

	for _, row := range rows {
		p := n.parseRow(row)
		if p == nil {
			continue
		}
		if !p.Valid {
			invalid++
		}
		result = append(result, p)
	}

	if n.logger != nil {
		n.logger.Info("[normalizer] Parsed %d rows → %d candidates (%d need review, dropped %d)",
			len(rows), len(result), invalid, len(rows)-len(result))
	}
	return result
}

func (n *Normalizer) parseRow(row models.RawImportRow) *models.ParsedListing {
	mls := field(row, mlsColumns...)
	address := normaliseText(field(row, addressColumns...))
	subArea := normaliseText(field(row, subAreaColumns...))

	if mls == "" && address == "" {
		return nil
	}

	loc := n.resolver.Resolve(subArea)
	if address == "" && loc == nil {
		// Without an address or a place there is nothing to correct by hand.
		return nil
	}

	p := &models.ParsedListing{
		MLSNumber:    mls,
		Address:      address,
		Neighborhood: subArea,
		Price:        parsePrice(field(row, priceColumns...)),
		DaysOnMarket: parseInt(field(row, domColumns...)),
		Bedrooms:     parseInt(field(row, bedroomColumns...)),
		YearBuilt:    parseInt(field(row, yearBuiltColumns...)),
		LotSize:      parseNumber(field(row, lotSizeColumns...)),
		PropertyType: MapPropertyType(field(row, dwellingColumns...), field(row, propTypeColumns...)),
		Status:       MapListingStatus(field(row, statusColumns...)),
		OwnerName:    optional(field(row, ownerNameColumns...)),
		OwnerPhone:   optional(field(row, ownerPhoneCols...)),
		OwnerEmail:   optional(field(row, ownerEmailCols...)),
	}

	if p.Status == models.StatusCancelProtected {
		today := startOfDay(n.Now())
		p.CancelProtectedDate = &today
	}

	if loc != nil {
		p.Neighborhood = loc.Neighborhood
		p.City = &loc.City
		p.Board = &loc.Board
	}

	switch {
	case address == "":
		p.Error = strPtr(errMissingAddress)
	case loc == nil:
		p.Error = strPtr(errNoLocation)
	default:
		p.Valid = true
	}
	return p
}

// MapPropertyType classifies a listing from its dwelling-type code, falling
// back to keywords in the free-text property type. It returns nil rather than
// guessing.
func MapPropertyType(dwellingCode, freeText string) *models.PropertyType {
	code := strings.ToUpper(strings.TrimSpace(dwellingCode))
	if code != "" {
		for _, dc := range dwellingCodes {
			for _, c := range dc.codes {
				if code == c || strings.HasPrefix(code, c) {
					t := dc.ptype
					return &t
				}
			}
		}
	}

	text := strings.ToLower(freeText)
	var t models.PropertyType
	switch {
	case text == "":
		return nil
	case strings.Contains(text, "detached"):
		t = models.PropertyHouse
	case strings.Contains(text, "attached"), strings.Contains(text, "townhouse"),
		strings.Contains(text, "town house"):
		t = models.PropertyTownhouse
	case strings.Contains(text, "row home"), strings.Contains(text, "rowhome"),
		strings.Contains(text, "row house"):
		t = models.PropertyRowHome
	case strings.Contains(text, "condo"), strings.Contains(text, "apartment"):
		t = models.PropertyCondo
	case strings.Contains(text, "mobile"), strings.Contains(text, "manufactured"):
		t = models.PropertyMobile
	case strings.Contains(text, "single family"), strings.Contains(text, "house"):
		t = models.PropertyHouse
	default:
		return nil
	}
	return &t
}

// MapListingStatus maps an MLS status code. Anything that is not clearly
// terminated or cancel-protected is treated as expired.
func MapListingStatus(code string) models.ListingStatus {
	c := strings.ToUpper(strings.TrimSpace(code))
	c = strings.NewReplacer("-", " ", "_", " ").Replace(c)
	switch c {
	case "T", "TERMINATED":
		return models.StatusTerminated
	case "C", "CP", "CANCEL", "CANCEL PROTECTED", "CANCELPROTECTED":
		return models.StatusCancelProtected
	default:
		return models.StatusExpired
	}
}

// field returns the first non-empty value among the given column aliases.
func field(row models.RawImportRow, aliases ...string) string {
	for _, a := range aliases {
		if v := strings.TrimSpace(row[a]); v != "" {
			return v
		}
	}
	return ""
}

func parsePrice(raw string) *float64 {
	return parseNumber(strings.ReplaceAll(raw, "$", ""))
}

// parseNumber returns nil for anything that is not a finite number. Zero is
// a real value and is kept.
func parseNumber(raw string) *float64 {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func parseInt(raw string) *int {
	f := parseNumber(raw)
	if f == nil || *f > math.MaxInt32 || *f < math.MinInt32 {
		return nil
	}
	i := int(math.Trunc(*f))
	return &i
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strPtr(s string) *string { return &s }

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
