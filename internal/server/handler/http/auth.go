// Package http provides HTTP handlers for vendor login and the vendor API.
package http

import (
	"context"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/VendorDesk/internal/models"
	"github.com/atinyakov/VendorDesk/internal/view"
)

// Authenticator defines the login operation required by the AuthHandler.
type Authenticator interface {
	// Authenticate checks the credentials and selects the view to render.
	Authenticate(ctx context.Context, email, password string) (models.LoginResult, error)
}

// ViewHeader carries the name of the rendered view so non-browser clients
// can tell the outcome without parsing HTML.
const ViewHeader = "X-View"

const maxLoginFormMemory = 1 << 20

// AuthHandler handles the form-based vendor login.
type AuthHandler struct {
	// Auth performs the underlying authentication.
	Auth Authenticator
	// Views renders the view selected by Auth.
	Views view.Renderer
	// Log receives render failures.
	Log *zap.Logger
}

// LoginPage renders the empty login form.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, models.ViewLogin, map[string]any{})
}

// Stager handles POST /stager. It expects the form fields "email" and
// "password" and renders "home" with vendorName on success, or "login" with
// errorMessage otherwise. A store outage renders "login" with status 503.
func (h *AuthHandler) Stager(w http.ResponseWriter, r *http.Request) {
	if err := parseLoginForm(r); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if !r.PostForm.Has("email") || !r.PostForm.Has("password") {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	res, err := h.Auth.Authenticate(r.Context(), r.PostForm.Get("email"), r.PostForm.Get("password"))
	if err != nil && res.Outcome != models.OutcomeUnavailable {
		h.logger().Error("authenticate", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	data := map[string]any{}
	switch {
	case res.IsSuccess():
		data["vendorName"] = res.VendorName
	case res.Outcome == models.OutcomeUnavailable:
		status = http.StatusServiceUnavailable
		data["errorMessage"] = res.ErrorMessage
	default:
		data["errorMessage"] = res.ErrorMessage
	}

	h.render(w, status, res.View, data)
}

// parseLoginForm fills r.PostForm for both urlencoded and multipart bodies.
func parseLoginForm(r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return r.ParseMultipartForm(maxLoginFormMemory)
	}
	return r.ParseForm()
}

func (h *AuthHandler) render(w http.ResponseWriter, status int, name string, data map[string]any) {
	w.Header().Set(ViewHeader, name)
	if err := h.Views.Render(w, status, name, data); err != nil {
		h.logger().Error("render view", zap.String("view", name), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *AuthHandler) logger() *zap.Logger {
	if h.Log == nil {
		return zap.NewNop()
	}
	return h.Log
}
