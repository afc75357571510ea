package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/atinyakov/VendorDesk/internal/models"
)

// ErrStoreUnavailable wraps any vendor store failure seen during login.
var ErrStoreUnavailable = errors.New("vendor store unavailable")

// dummyHash is compared against when no vendor matches so that unknown
// emails cost the same bcrypt work as wrong passwords.
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("vendordesk-no-such-vendor"), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("generate dummy hash: %v", err))
	}
	return h
})

// VendorFinder is the lookup the login flow needs from the vendor store.
type VendorFinder interface {
	FindByEmailContaining(ctx context.Context, email string) ([]models.Vendor, error)
}

// AuditRecorder persists login attempts.
type AuditRecorder interface {
	RecordAttempt(ctx context.Context, a models.LoginAudit) error
}

// AuthFlow authenticates vendor login attempts and selects the view to render.
// It holds no per-request state and is safe for concurrent use.
type AuthFlow struct {
	vendors VendorFinder
	audit   AuditRecorder
	log     *zap.Logger
	now     func() time.Time
	compare func(hash, password []byte) error
}

// NewAuthFlow constructs an AuthFlow. audit may be nil to disable attempt recording.
func NewAuthFlow(vendors VendorFinder, audit AuditRecorder, log *zap.Logger) *AuthFlow {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthFlow{
		vendors: vendors,
		audit:   audit,
		log:     log,
		now:     time.Now,
		compare: bcrypt.CompareHashAndPassword,
	}
}

// Authenticate checks password against the first vendor whose email contains
// email. Unknown emails and wrong passwords produce the same user-facing
// message and view. A store failure yields an Unavailable result together with
// an error wrapping ErrStoreUnavailable.
func (f *AuthFlow) Authenticate(ctx context.Context, email, password string) (models.LoginResult, error) {
	attemptID := uuid.New()
	log := f.log.With(zap.String("attempt_id", attemptID.String()))

	vendors, err := f.vendors.FindByEmailContaining(ctx, email)
	if err != nil {
		log.Error("vendor lookup failed", zap.Error(err))
		f.record(ctx, log, attemptID, email, models.OutcomeUnavailable)
		return models.LoginResult{
			Outcome:      models.OutcomeUnavailable,
			ErrorMessage: models.MsgUnavailable,
			View:         models.ViewLogin,
		}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	if len(vendors) == 0 {
		_ = f.compare(dummyHash(), []byte(password))
		log.Info("vendor login rejected", zap.String("outcome", string(models.OutcomeNotFound)))
		f.record(ctx, log, attemptID, email, models.OutcomeNotFound)
		return failure(models.OutcomeNotFound), nil
	}

	candidate := vendors[0]
	if err := f.compare(candidate.PasswordHash, []byte(password)); err != nil {
		log.Info("vendor login rejected",
			zap.String("outcome", string(models.OutcomePasswordMismatch)),
			zap.Int64("vendor_id", candidate.ID),
		)
		f.record(ctx, log, attemptID, email, models.OutcomePasswordMismatch)
		return failure(models.OutcomePasswordMismatch), nil
	}

	log.Info("vendor logged in", zap.Int64("vendor_id", candidate.ID))
	f.record(ctx, log, attemptID, email, models.OutcomeSuccess)
	return models.LoginResult{
		Outcome:    models.OutcomeSuccess,
		VendorName: candidate.Name,
		View:       models.ViewHome,
	}, nil
}

func failure(outcome models.LoginOutcome) models.LoginResult {
	return models.LoginResult{
		Outcome:      outcome,
		ErrorMessage: models.MsgInvalidCredentials,
		View:         models.ViewLogin,
	}
}

// record stores the attempt. Failures are logged and never change the login result.
func (f *AuthFlow) record(ctx context.Context, log *zap.Logger, id uuid.UUID, email string, outcome models.LoginOutcome) {
	if f.audit == nil {
		return
	}
	err := f.audit.RecordAttempt(ctx, models.LoginAudit{
		AttemptID: id,
		Email:     email,
		Outcome:   outcome,
		CreatedAt: f.now(),
	})
	if err != nil {
		log.Warn("failed to record login attempt", zap.Error(err))
	}
}
