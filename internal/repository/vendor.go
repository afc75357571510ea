// Package repository provides PostgreSQL persistence for vendors and login audit records.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/atinyakov/VendorDesk/internal/models"
)

// ErrVendorNotFound is returned when no vendor has the requested ID.
var ErrVendorNotFound = errors.New("vendor not found")

const vendorColumns = `id, name, email, phone, address, password_hash, details, created_at, updated_at`

// PostgresVendorRepository implements vendor storage using a PostgreSQL database.
type PostgresVendorRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresVendorRepository creates a new PostgresVendorRepository with the given database connection.
// db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresVendorRepository(db *sql.DB) *PostgresVendorRepository {
	return &PostgresVendorRepository{DB: db}
}

// Create inserts a new vendor and returns it with the identifier and
// timestamps assigned by the database. v.ID is ignored.
func (r *PostgresVendorRepository) Create(ctx context.Context, v *models.Vendor) (*models.Vendor, error) {
	stored := *v
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO vendors (name, email, phone, address, password_hash, details)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, v.Name, v.Email, v.Phone, v.Address, v.PasswordHash, jsonArg(v.Details)).
		Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create vendor: %w", err)
	}
	stored.Password = ""
	return &stored, nil
}

// Update overwrites every mutable field of the vendor with ID v.ID.
// It returns ErrVendorNotFound if no such vendor exists.
func (r *PostgresVendorRepository) Update(ctx context.Context, v *models.Vendor) (*models.Vendor, error) {
	stored := *v
	err := r.DB.QueryRowContext(ctx, `
		UPDATE vendors
		   SET name = $2, email = $3, phone = $4, address = $5,
		       password_hash = $6, details = $7, updated_at = NOW()
		 WHERE id = $1
		RETURNING created_at, updated_at
	`, v.ID, v.Name, v.Email, v.Phone, v.Address, v.PasswordHash, jsonArg(v.Details)).
		Scan(&stored.CreatedAt, &stored.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update vendor %d: %w", v.ID, err)
	}
	stored.Password = ""
	return &stored, nil
}

// GetByID fetches a single vendor. It returns ErrVendorNotFound if no row matches.
func (r *PostgresVendorRepository) GetByID(ctx context.Context, id int64) (*models.Vendor, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE id = $1`, id)
	v, err := scanVendor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get vendor %d: %w", id, err)
	}
	return &v, nil
}

// FindByEmailContaining returns every vendor whose email contains email as a
// case-sensitive substring, ordered by ID.
func (r *PostgresVendorRepository) FindByEmailContaining(ctx context.Context, email string) ([]models.Vendor, error) {
	return r.queryVendors(ctx, `
		SELECT `+vendorColumns+` FROM vendors WHERE strpos(email, $1) > 0 ORDER BY id
	`, email)
}

// FindByEmail returns every vendor whose email equals email exactly, ordered by ID.
func (r *PostgresVendorRepository) FindByEmail(ctx context.Context, email string) ([]models.Vendor, error) {
	return r.queryVendors(ctx, `
		SELECT `+vendorColumns+` FROM vendors WHERE email = $1 ORDER BY id
	`, email)
}

// Search returns vendors matching any of the non-empty criteria in q by
// substring, ordered by ID. An empty query returns every vendor.
func (r *PostgresVendorRepository) Search(ctx context.Context, q models.VendorQuery) ([]models.Vendor, error) {
	var (
		conds []string
		args  []any
	)
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conds = append(conds, fmt.Sprintf("strpos(%s, $%d) > 0", column, len(args)))
	}
	add("name", q.Name)
	add("email", q.Email)
	add("phone", q.Phone)
	add("address", q.Address)

	query := `SELECT ` + vendorColumns + ` FROM vendors`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " OR ")
	}
	query += ` ORDER BY id`

	return r.queryVendors(ctx, query, args...)
}

func (r *PostgresVendorRepository) queryVendors(ctx context.Context, query string, args ...any) ([]models.Vendor, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query vendors: %w", err)
	}
	defer rows.Close()

	vendors := make([]models.Vendor, 0)
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vendors: %w", err)
	}
	return vendors, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVendor(row rowScanner) (models.Vendor, error) {
	var (
		v       models.Vendor
		details []byte
	)
	err := row.Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.Address,
		&v.PasswordHash, &details, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return models.Vendor{}, err
	}
	if len(details) > 0 {
		v.Details = json.RawMessage(details)
	}
	return v, nil
}

// jsonArg passes JSONB values as text; lib/pq would otherwise encode []byte as bytea.
func jsonArg(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
