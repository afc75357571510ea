// Package models defines the core data structures for vendors and login attempts.
package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Vendor represents a registered seller or partner account.
type Vendor struct {
	// ID is assigned by the store on registration and never reused.
	ID int64 `json:"id"`
	// Name is the display name shown after a successful login.
	Name string `json:"name"`
	// Email is the lookup key. It is not guaranteed to be unique.
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	// Password is the plaintext credential submitted on registration or save.
	// It is never persisted.
	Password string `json:"password,omitempty"`
	// PasswordHash is the bcrypt hash of the vendor's password.
	PasswordHash []byte `json:"-"`
	// Details holds additional business fields the service treats as opaque.
	Details   json.RawMessage `json:"details,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// VendorQuery holds partial-match criteria for a vendor search.
// Empty fields are ignored.
type VendorQuery struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// IsEmpty reports whether no criteria are set.
func (q VendorQuery) IsEmpty() bool {
	return q.Name == "" && q.Email == "" && q.Phone == "" && q.Address == ""
}

// LoginAttempt is an email and password pair submitted by a caller.
type LoginAttempt struct {
	Email    string
	Password string
}

// LoginOutcome identifies how an authentication attempt ended.
type LoginOutcome string

const (
	// OutcomeSuccess means the password matched the first vendor found.
	OutcomeSuccess LoginOutcome = "success"
	// OutcomeNotFound means no vendor email contains the submitted email.
	OutcomeNotFound LoginOutcome = "not_found"
	// OutcomePasswordMismatch means the password did not match the candidate vendor.
	OutcomePasswordMismatch LoginOutcome = "password_mismatch"
	// OutcomeUnavailable means the vendor store could not be queried.
	OutcomeUnavailable LoginOutcome = "unavailable"
)

// View names selected by the login flow.
const (
	ViewLogin = "login"
	ViewHome  = "home"
)

// User-facing login messages.
const (
	MsgInvalidCredentials = "Invalid email or password!"
	MsgUnavailable        = "Service temporarily unavailable, please try again later."
)

// LoginResult is the outcome of one authentication call plus the view to render.
type LoginResult struct {
	Outcome LoginOutcome
	// VendorName is set on success only.
	VendorName string
	// ErrorMessage is set on every non-success outcome.
	ErrorMessage string
	// View is the name of the presentation to render.
	View string
}

// IsSuccess reports whether the vendor was authenticated.
func (r LoginResult) IsSuccess() bool {
	return r.Outcome == OutcomeSuccess
}

// IsFailure reports whether the credentials were rejected.
// Unavailable is not a failure: the credentials were never checked.
func (r LoginResult) IsFailure() bool {
	return r.Outcome == OutcomeNotFound || r.Outcome == OutcomePasswordMismatch
}

// LoginAudit is a recorded authentication attempt.
type LoginAudit struct {
	AttemptID uuid.UUID
	Email     string
	Outcome   LoginOutcome
	CreatedAt time.Time
}
