package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"expired-leads/models"
	"expired-leads/utils"
)

const listingsTable = "listings"

var listingColumns = []string{
	"id", "user_id", "mls_number", "address", "neighborhood", "city", "board",
	"price", "days_on_market", "bedrooms", "year_built", "lot_size", "property_type",
	"listing_status", "cancel_protected_date", "status", "expiry_date",
	"owner_name", "owner_phone", "owner_email", "score", "stage",
	"latitude", "longitude", "created_at", "updated_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresStore persists listings to PostgreSQL.
type PostgresStore struct {
	db     *sql.DB
	logger *utils.Logger
}

var _ ListingStore = (*PostgresStore)(nil)

// NewPostgresStore opens a connection to PostgreSQL, retrying the ping with
// back-off, runs schema migrations and returns a ready-to-use store.
func NewPostgresStore(ctx context.Context, dsn string, retry *utils.RetryConfig, logger *utils.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres-ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	ps := &PostgresStore{db: db, logger: logger}
	if err := ps.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	logger.Info("[store] Connected to PostgreSQL")
	return ps, nil
}

func (ps *PostgresStore) migrate(ctx context.Context) error {
	_, err := ps.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS listings (
			id                    UUID          PRIMARY KEY,
			user_id               TEXT          NOT NULL,
			mls_number            TEXT          NOT NULL DEFAULT '',
			address               TEXT          NOT NULL,
			neighborhood          TEXT          NOT NULL DEFAULT '',
			city                  TEXT,
			board                 TEXT,
			price                 NUMERIC(14,2),
			days_on_market        INTEGER,
			bedrooms              INTEGER,
			year_built            INTEGER,
			lot_size              NUMERIC(14,2),
			property_type         VARCHAR(20),
			listing_status        VARCHAR(20)   NOT NULL DEFAULT 'expired',
			cancel_protected_date DATE,
			status                VARCHAR(20)   NOT NULL DEFAULT 'expired',
			expiry_date           DATE          NOT NULL,
			owner_name            TEXT,
			owner_phone           TEXT,
			owner_email           TEXT,
			score                 INTEGER       NOT NULL DEFAULT 0,
			stage                 VARCHAR(30)   NOT NULL DEFAULT 'new',
			latitude              DOUBLE PRECISION NOT NULL DEFAULT 0,
			longitude             DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at            TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
			updated_at            TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_listings_owner_mls     ON listings(user_id, mls_number);
		CREATE INDEX IF NOT EXISTS idx_listings_owner_address ON listings(user_id, lower(address), lower(city));
		CREATE INDEX IF NOT EXISTS idx_listings_score         ON listings(score);
		CREATE INDEX IF NOT EXISTS idx_listings_stage         ON listings(stage);
	`)
	return err
}

func (ps *PostgresStore) FindByMLSAndOwner(ctx context.Context, mls, ownerID string) (*models.Listing, error) {
	q := psql.Select(listingColumns...).
		From(listingsTable).
		Where(sq.Eq{"user_id": ownerID, "mls_number": mls}).
		OrderBy("created_at").
		Limit(1)

	found, err := ps.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("postgres: find by mls: %w", err)
	}
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (ps *PostgresStore) FindByAddressAndCity(ctx context.Context, address, city, ownerID string) ([]*models.Listing, error) {
	found, err := ps.query(ctx, addressQuery(address, city, ownerID))
	if err != nil {
		return nil, fmt.Errorf("postgres: find by address: %w", err)
	}
	return found, nil
}

func (ps *PostgresStore) Insert(ctx context.Context, l *models.Listing) (*models.Listing, error) {
	stored := *l
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	query, args, err := insertQuery(&stored).ToSql()
	if err != nil {
		return nil, fmt.Errorf("postgres: build insert: %w", err)
	}
	if _, err := ps.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("postgres: insert: %w", err)
	}
	return &stored, nil
}

func (ps *PostgresStore) Get(ctx context.Context, id string) (*models.Listing, error) {
	q := psql.Select(listingColumns...).From(listingsTable).Where(sq.Eq{"id": id})
	found, err := ps.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("postgres: get: %w", err)
	}
	if len(found) == 0 {
		return nil, ErrNotFound
	}
	return found[0], nil
}

func (ps *PostgresStore) Update(ctx context.Context, l *models.Listing) error {
	query, args, err := updateQuery(l, time.Now()).ToSql()
	if err != nil {
		return fmt.Errorf("postgres: build update: %w", err)
	}
	res, err := ps.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("postgres: update: %w", err)
	}
	return requireRow(res)
}

func (ps *PostgresStore) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete(listingsTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("postgres: build delete: %w", err)
	}
	res, err := ps.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("postgres: delete: %w", err)
	}
	return requireRow(res)
}

func (ps *PostgresStore) List(ctx context.Context, f models.ListingFilter) ([]*models.Listing, error) {
	found, err := ps.query(ctx, listQuery(f))
	if err != nil {
		return nil, fmt.Errorf("postgres: list: %w", err)
	}
	return found, nil
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}

func addressQuery(address, city, ownerID string) sq.SelectBuilder {
	return psql.Select(listingColumns...).
		From(listingsTable).
		Where(sq.Eq{"user_id": ownerID}).
		Where("lower(address) = lower(?)", address).
		Where("lower(city) = lower(?)", city).
		OrderBy("created_at")
}

func listQuery(f models.ListingFilter) sq.SelectBuilder {
	q := psql.Select(listingColumns...).From(listingsTable)
	if f.UserID != "" {
		q = q.Where(sq.Eq{"user_id": f.UserID})
	}
	if f.Status != "" {
		q = q.Where(sq.Eq{"status": string(f.Status)})
	}
	if f.Stage != "" {
		q = q.Where(sq.Eq{"stage": f.Stage})
	}
	if f.City != "" {
		q = q.Where("lower(city) = lower(?)", f.City)
	}
	if f.MinScore > 0 {
		q = q.Where(sq.GtOrEq{"score": f.MinScore})
	}
	q = q.OrderBy("score DESC", "created_at")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	return q
}

func insertQuery(l *models.Listing) sq.InsertBuilder {
	return psql.Insert(listingsTable).
		Columns(listingColumns...).
		Values(
			l.ID, l.UserID, l.MLSNumber, l.Address, l.Neighborhood, l.City, l.Board,
			l.Price, l.DaysOnMarket, l.Bedrooms, l.YearBuilt, l.LotSize, nullableType(l.PropertyType),
			string(l.ListingStatus), l.CancelProtectedDate, string(l.Status), l.ExpiryDate,
			l.OwnerName, l.OwnerPhone, l.OwnerEmail, l.Score, l.Stage,
			l.Latitude, l.Longitude, l.CreatedAt, l.UpdatedAt,
		)
}

func updateQuery(l *models.Listing, now time.Time) sq.UpdateBuilder {
	return psql.Update(listingsTable).
		SetMap(map[string]interface{}{
			"mls_number":            l.MLSNumber,
			"address":               l.Address,
			"neighborhood":          l.Neighborhood,
			"city":                  l.City,
			"board":                 l.Board,
			"price":                 l.Price,
			"days_on_market":        l.DaysOnMarket,
			"bedrooms":              l.Bedrooms,
			"year_built":            l.YearBuilt,
			"lot_size":              l.LotSize,
			"property_type":         nullableType(l.PropertyType),
			"listing_status":        string(l.ListingStatus),
			"cancel_protected_date": l.CancelProtectedDate,
			"status":                string(l.Status),
			"expiry_date":           l.ExpiryDate,
			"owner_name":            l.OwnerName,
			"owner_phone":           l.OwnerPhone,
			"owner_email":           l.OwnerEmail,
			"score":                 l.Score,
			"stage":                 l.Stage,
			"latitude":              l.Latitude,
			"longitude":             l.Longitude,
			"updated_at":            now,
		}).
		Where(sq.Eq{"id": l.ID})
}

func (ps *PostgresStore) query(ctx context.Context, b sq.SelectBuilder) ([]*models.Listing, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	rows, err := ps.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*models.Listing
	for rows.Next() {
		l := &models.Listing{}
		if err := rows.Scan(
			&l.ID, &l.UserID, &l.MLSNumber, &l.Address, &l.Neighborhood, &l.City, &l.Board,
			&l.Price, &l.DaysOnMarket, &l.Bedrooms, &l.YearBuilt, &l.LotSize, &l.PropertyType,
			&l.ListingStatus, &l.CancelProtectedDate, &l.Status, &l.ExpiryDate,
			&l.OwnerName, &l.OwnerPhone, &l.OwnerEmail, &l.Score, &l.Stage,
			&l.Latitude, &l.Longitude, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func nullableType(t *models.PropertyType) *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("postgres: rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
