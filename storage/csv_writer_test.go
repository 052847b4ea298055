package storage

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expired-leads/models"
)

func TestCSVWriterPreviewRows(t *testing.T) {
	var buf bytes.Buffer
	w, err := newCSVWriter(&buf, nil)
	require.NoError(t, err)

	price := 899000.0
	beds := 2
	condo := models.PropertyCondo
	city, board := "Vancouver", "Greater Vancouver"
	cp := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	reason := "Could not match location"

	require.NoError(t, w.WritePreview([]*models.ParsedListing{
		{
			MLSNumber: "R123", Address: "1 Main St", Neighborhood: "Kitsilano",
			City: &city, Board: &board, Price: &price, Bedrooms: &beds,
			PropertyType: &condo, Status: models.StatusCancelProtected,
			CancelProtectedDate: &cp, Valid: true,
		},
		{MLSNumber: "R124", Address: "2 Side Rd", Neighborhood: "Atlantis", Status: models.StatusExpired, Error: &reason},
	}))
	require.NoError(t, w.Close())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, previewHeader, records[0])
	assert.Equal(t, []string{
		"R123", "1 Main St", "Kitsilano", "Vancouver", "Greater Vancouver", "899000", "",
		"2", "", "", "condo", "cancel_protected", "2026-10-16", "true", "",
	}, records[1])
	assert.Equal(t, "false", records[2][13])
	assert.Equal(t, reason, records[2][14])
	assert.Equal(t, "", records[2][3], "unresolved city should be blank")
}

func TestNewCSVWriterCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preview.csv")

	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "mls_number,address")
}
