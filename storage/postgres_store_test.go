package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expired-leads/models"
)

func TestListQueryFilters(t *testing.T) {
	query, args, err := listQuery(models.ListingFilter{
		UserID:   "agent-1",
		Stage:    "new",
		City:     "Vancouver",
		MinScore: 60,
		Limit:    25,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM listings")
	assert.Contains(t, query, "user_id = $1")
	assert.Contains(t, query, "stage = $2")
	assert.Contains(t, query, "lower(city) = lower($3)")
	assert.Contains(t, query, "score >= $4")
	assert.Contains(t, query, "ORDER BY score DESC, created_at")
	assert.Contains(t, query, "LIMIT 25")
	assert.Equal(t, []interface{}{"agent-1", "new", "Vancouver", 60}, args)
}

func TestListQueryNoFilters(t *testing.T) {
	query, args, err := listQuery(models.ListingFilter{}).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, query, "WHERE")
	assert.NotContains(t, query, "LIMIT")
	assert.Empty(t, args)
}

func TestAddressQueryIsCaseInsensitive(t *testing.T) {
	query, args, err := addressQuery("1 Main St", "Vancouver", "agent-1").ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "lower(address) = lower($2)")
	assert.Contains(t, query, "lower(city) = lower($3)")
	assert.Equal(t, []interface{}{"agent-1", "1 Main St", "Vancouver"}, args)
}

func TestInsertQueryBindsEveryColumn(t *testing.T) {
	condo := models.PropertyCondo
	l := &models.Listing{
		ID: "id-1", UserID: "agent-1", MLSNumber: "R1", Address: "1 Main St",
		PropertyType: &condo, ListingStatus: models.StatusExpired,
		Status: models.LifecycleExpired, ExpiryDate: time.Now(), Stage: models.StageNew,
	}

	query, args, err := insertQuery(l).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "INSERT INTO listings")
	assert.Len(t, args, len(listingColumns))

	pt, ok := args[12].(*string)
	require.True(t, ok, "property_type should bind as *string")
	assert.Equal(t, "condo", *pt)
}

func TestUpdateQueryTargetsID(t *testing.T) {
	query, args, err := updateQuery(&models.Listing{ID: "id-9", Score: 80}, time.Now()).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "UPDATE listings SET")
	assert.Contains(t, query, "WHERE id = $")
	assert.Equal(t, "id-9", args[len(args)-1])
}
