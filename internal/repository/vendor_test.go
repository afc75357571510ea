package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/atinyakov/VendorDesk/internal/models"
)

var vendorCols = []string{"id", "name", "email", "phone", "address", "password_hash", "details", "created_at", "updated_at"}

func setupVendorMock(t *testing.T) (*PostgresVendorRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresVendorRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestCreate_AssignsID(t *testing.T) {
	repo, mock, cleanup := setupVendorMock(t)
	defer cleanup()

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	in := &models.Vendor{
		Name:         "Acme",
		Email:        "acme@example.com",
		Phone:        "555-0100",
		Address:      "1 Main St",
		Password:     "secret",
		PasswordHash: []byte("hash"),
		Details:      json.RawMessage(`{"tier":"gold"}`),
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO vendors (name, email, phone, address, password_hash, details)`)).
		WithArgs("Acme", "acme@example.com", "555-0100", "1 Main St", []byte("hash"), `{"tier":"gold"}`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	got, err := repo.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 7 {
		t.Errorf("ID = %d; want 7", got.ID)
	}
	if got.Name != "Acme" || got.Email != "acme@example.com" {
		t.Errorf("stored vendor = %+v; fields not preserved", got)
	}
	if got.Password != "" {
		t.Errorf("plaintext password leaked into stored vendor")
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v; want %v", got.CreatedAt, now)
	}
	if in.ID != 0 {
		t.Errorf("input vendor was mutated: ID = %d", in.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCreate_NullDetails(t *testing.T) {
	repo, mock, cleanup := setupVendorMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO vendors`)).
		WithArgs("Acme", "acme@example.com", "", "", []byte("hash"), nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

	_, err := repo.Create(context.Background(), &models.Vendor{Name: "Acme", Email: "acme@example.com", PasswordHash: []byte("hash")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCreate_Error(t *testing.T) {
	repo, mock, cleanup := setupVendorMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO vendors`)).
		WillReturnError(errors.New("insert failed"))

	_, err := repo.Create(context.Background(), &models.Vendor{Name: "Acme"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUpdate_OverwritesFields(t *testing.T) {
	repo, mock, cleanup := setupVendorMock(t)
	defer cleanup()

	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE vendors`)).
		WithArgs(int64(3), "Acme Ltd", "sales@acme.com", "555-0199", "2 Side St", []byte("hash"), nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, updated))

	got, err := repo.Update(context.Background(), &models.Vendor{
		ID: 3, Name: "Acme Ltd", Email: "sales@acme.com", Phone: "555-0199", Address: "2 Side St",
		PasswordHash: []byte("hash"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 3 {
		t.Errorf("ID = %d; want 3 (update must not allocate an identifier)", got.ID)
	}
	if got.Name != "Acme Ltd" || !got.UpdatedAt.Equal(updated) {
		t.Errorf("unexpected stored vendor %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, cleanup := setupVendorMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE vendors`)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), &models.Vendor{ID: 99})
	if !errors.Is(err, ErrVendorNotFound) {
		t.Fatalf("err = %v; want ErrVendorNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetByID(t *testing.T) {
	repo, mock, cleanup := setupVendorMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(vendorCols).
			AddRow(int64(5), "Acme", "acme@example.com", "", "", []byte("hash"), []byte(`{"a":1}`), now, now))

	got, err := repo.GetByID(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Acme" || string(got.PasswordHash) != "hash" {
		t.Errorf("unexpected vendor %+v", got)
	}
	if string(got.Details) != `{"a":1}` {
		t.Errorf("Details = %s; want {\"a\":1}", got.Details)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupVendorMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM vendors WHERE id = $1`)).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(vendorCols))

	_, err := repo.GetByID(context.Background(), 404)
	if !errors.Is(err, ErrVendorNotFound) {
		t.Fatalf("err = %v; want ErrVendorNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestFindByEmailContaining_ReturnsAllSubstringMatches(t *testing.T) {
	repo, mock, cleanup := setupVendorMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE strpos(email, $1) > 0 ORDER BY id`)).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows(vendorCols).
			AddRow(int64(1), "A", "a@x.com", "", "", []byte("h1"), nil, now, now).
			AddRow(int64(2), "XA", "xa@x.com", "", "", []byte("h2"), nil, now, now))

	got, err := repo.FindByEmailContaining(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d vendors; want 2", len(got))
	}
	if got[0].Email != "a@x.com" || got[1].Email != "xa@x.com" {
		t.Errorf("unexpected order: %q, %q", got[0].Email, got[1].Email)
	}
	if got[0].Details != nil {
		t.Errorf("NULL details should scan to nil, got %s", got[0].Details)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestFindByEmailContaining_Empty(t *testing.T) {
	repo, mock, cleanup := setupVendorMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE strpos(email, $1) > 0`)).
		WithArgs("nouser@example.com").
		WillReturnRows(sqlmock.NewRows(vendorCols))

	got, err := repo.FindByEmailContaining(context.Background(), "nouser@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %v; want empty non-nil slice", got)
	}
}

func TestFindByEmailContaining_QueryError(t *testing.T) {
	repo, mock, cleanup := setupVendorMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE strpos(email, $1) > 0`)).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.FindByEmailContaining(context.Background(), "a")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestFindByEmail_Exact(t *testing.T) {
	repo, mock, cleanup := setupVendorMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE email = $1 ORDER BY id`)).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows(vendorCols).
			AddRow(int64(1), "A", "a@x.com", "", "", []byte("h1"), nil, now, now))

	got, err := repo.FindByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("unexpected result %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name  string
		query models.VendorQuery
		sql   string
		args  []driver.Value
	}{
		{
			name:  "all criteria",
			query: models.VendorQuery{Name: "Ac", Email: "@x", Phone: "555", Address: "Main"},
			sql:   `FROM vendors WHERE strpos(name, $1) > 0 OR strpos(email, $2) > 0 OR strpos(phone, $3) > 0 OR strpos(address, $4) > 0 ORDER BY id`,
			args:  []driver.Value{"Ac", "@x", "555", "Main"},
		},
		{
			name:  "phone only",
			query: models.VendorQuery{Phone: "555"},
			sql:   `FROM vendors WHERE strpos(phone, $1) > 0 ORDER BY id`,
			args:  []driver.Value{"555"},
		},
		{
			name:  "empty query lists everything",
			query: models.VendorQuery{},
			sql:   `FROM vendors ORDER BY id`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupVendorMock(t)
			defer cleanup()

			now := time.Now()
			exp := mock.ExpectQuery(regexp.QuoteMeta(tt.sql))
			if len(tt.args) > 0 {
				exp = exp.WithArgs(tt.args...)
			}
			exp.WillReturnRows(sqlmock.NewRows(vendorCols).
				AddRow(int64(1), "Acme", "acme@x.com", "555-0100", "1 Main St", []byte("h"), nil, now, now))

			got, err := repo.Search(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != 1 {
				t.Errorf("got %d vendors; want 1", len(got))
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unfulfilled expectations: %v", err)
			}
		})
	}
}
