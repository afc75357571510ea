package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/atinyakov/VendorDesk/internal/models"
	"github.com/atinyakov/VendorDesk/internal/repository"
)

// VendorService defines the vendor operations required by the VendorHandler.
type VendorService interface {
	Register(ctx context.Context, v models.Vendor) (*models.Vendor, error)
	Save(ctx context.Context, v models.Vendor) (*models.Vendor, error)
	GetByID(ctx context.Context, id int64) (*models.Vendor, error)
	FindByEmailContaining(ctx context.Context, email string) ([]models.Vendor, error)
	Search(ctx context.Context, q models.VendorQuery) ([]models.Vendor, error)
}

// VendorHandler serves the JSON vendor API.
type VendorHandler struct {
	VendorService VendorService
	Log           *zap.Logger
}

// VendorRequest is the JSON payload for registering or saving a vendor.
type VendorRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone"`
	Address  string          `json:"address"`
	Password string          `json:"password"`
	Details  json.RawMessage `json:"details,omitempty"`
}

func (req VendorRequest) vendor() models.Vendor {
	return models.Vendor{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Password: req.Password,
		Details:  req.Details,
	}
}

// Register handles POST /api/vendors and responds 201 with the stored vendor.
func (h *VendorHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req VendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	stored, err := h.VendorService.Register(r.Context(), req.vendor())
	if err != nil {
		h.fail(w, "register vendor", err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

// Save handles PUT /api/vendors/{id}, overwriting every field of the vendor.
// An empty password keeps the stored one.
func (h *VendorHandler) Save(w http.ResponseWriter, r *http.Request) {
	id, ok := vendorID(w, r)
	if !ok {
		return
	}

	var req VendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	v := req.vendor()
	v.ID = id
	if v.Password == "" {
		current, err := h.VendorService.GetByID(r.Context(), id)
		if err != nil {
			h.fail(w, "load vendor", err)
			return
		}
		v.PasswordHash = current.PasswordHash
	}

	stored, err := h.VendorService.Save(r.Context(), v)
	if err != nil {
		h.fail(w, "save vendor", err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

// Get handles GET /api/vendors/{id}.
func (h *VendorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := vendorID(w, r)
	if !ok {
		return
	}

	v, err := h.VendorService.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, "get vendor", err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// List handles GET /api/vendors?email=..., returning vendors whose email
// contains the parameter. Without the parameter every vendor is listed.
func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.VendorService.FindByEmailContaining(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		h.fail(w, "list vendors", err)
		return
	}
	writeJSON(w, http.StatusOK, vendors)
}

// Search handles GET /api/vendors/search?name=&email=&phone=&address=.
func (h *VendorHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	vendors, err := h.VendorService.Search(r.Context(), models.VendorQuery{
		Name:    q.Get("name"),
		Email:   q.Get("email"),
		Phone:   q.Get("phone"),
		Address: q.Get("address"),
	})
	if err != nil {
		h.fail(w, "search vendors", err)
		return
	}
	writeJSON(w, http.StatusOK, vendors)
}

func (h *VendorHandler) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrVendorNotFound):
		http.Error(w, "vendor not found", http.StatusNotFound)
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		http.Error(w, "password too long", http.StatusBadRequest)
	default:
		if h.Log != nil {
			h.Log.Error(op, zap.Error(err))
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func vendorID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid vendor id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
