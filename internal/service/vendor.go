// Package service provides vendor registration, lookup and login business logic,
// delegating persistence to repository interfaces.
package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/atinyakov/VendorDesk/internal/models"
)

// VendorRepository defines the persistence operations
// required by the vendor service.
type VendorRepository interface {
	// Create stores a new vendor and returns it with its assigned identifier.
	Create(ctx context.Context, v *models.Vendor) (*models.Vendor, error)
	// Update overwrites the vendor with identifier v.ID.
	Update(ctx context.Context, v *models.Vendor) (*models.Vendor, error)
	// GetByID fetches a vendor by identifier.
	GetByID(ctx context.Context, id int64) (*models.Vendor, error)
	// FindByEmailContaining returns vendors whose email contains the argument.
	FindByEmailContaining(ctx context.Context, email string) ([]models.Vendor, error)
	// FindByEmail returns vendors whose email equals the argument.
	FindByEmail(ctx context.Context, email string) ([]models.Vendor, error)
	// Search returns vendors matching any non-empty criterion by substring.
	Search(ctx context.Context, q models.VendorQuery) ([]models.Vendor, error)
}

// VendorService implements vendor operations by delegating
// to a VendorRepository. Passwords are hashed with bcrypt before storage.
type VendorService struct {
	repo VendorRepository
	cost int
}

// NewVendorService constructs a VendorService. A non-positive bcryptCost
// selects bcrypt.DefaultCost.
func NewVendorService(repo VendorRepository, bcryptCost int) *VendorService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &VendorService{repo: repo, cost: bcryptCost}
}

// Register hashes the vendor's password, stores the vendor and returns the
// stored record with its newly assigned identifier. Field contents are not validated.
func (s *VendorService) Register(ctx context.Context, v models.Vendor) (*models.Vendor, error) {
	if err := s.hashPassword(&v); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &v)
}

// Save overwrites the vendor with identifier v.ID. A vendor without an
// identifier is registered instead. If v.Password is set it replaces the
// stored hash; otherwise v.PasswordHash is written as given.
func (s *VendorService) Save(ctx context.Context, v models.Vendor) (*models.Vendor, error) {
	if v.ID == 0 {
		return s.Register(ctx, v)
	}
	if v.Password != "" {
		if err := s.hashPassword(&v); err != nil {
			return nil, err
		}
	}
	return s.repo.Update(ctx, &v)
}

// GetByID returns the vendor with the given identifier.
func (s *VendorService) GetByID(ctx context.Context, id int64) (*models.Vendor, error) {
	return s.repo.GetByID(ctx, id)
}

// FindByEmailContaining returns every vendor whose email contains email,
// in store iteration order.
func (s *VendorService) FindByEmailContaining(ctx context.Context, email string) ([]models.Vendor, error) {
	return s.repo.FindByEmailContaining(ctx, email)
}

// FindFirstByEmail returns the first vendor whose email contains email.
// The boolean is false when there is no match.
func (s *VendorService) FindFirstByEmail(ctx context.Context, email string) (*models.Vendor, bool, error) {
	vendors, err := s.repo.FindByEmailContaining(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if len(vendors) == 0 {
		return nil, false, nil
	}
	return &vendors[0], true, nil
}

// FindByEmail returns the vendors registered with exactly this email.
func (s *VendorService) FindByEmail(ctx context.Context, email string) ([]models.Vendor, error) {
	return s.repo.FindByEmail(ctx, email)
}

// Search returns vendors whose name, email, phone or address contains the
// corresponding criterion.
func (s *VendorService) Search(ctx context.Context, q models.VendorQuery) ([]models.Vendor, error) {
	return s.repo.Search(ctx, q)
}

func (s *VendorService) hashPassword(v *models.Vendor) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(v.Password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	v.PasswordHash = hash
	v.Password = ""
	return nil
}
