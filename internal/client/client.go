// Package client talks to the VendorDesk server on behalf of the CLI.
package client

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/atinyakov/VendorDesk/internal/models"
)

const (
	apiVendors = "/api/vendors"
	apiSearch  = "/api/vendors/search"
	apiStager  = "/stager"

	viewHeader = "X-View"
)

// LoginResponse is what the server answered to a form login.
type LoginResponse struct {
	Status int
	View   string
	Body   string
}

// Success reports whether the server selected the home view.
func (r LoginResponse) Success() bool {
	return r.Status == http.StatusOK && r.View == models.ViewHome
}

// NewHTTPClient returns a client trusting the CA in caFile. An empty caFile
// falls back to the system roots.
func NewHTTPClient(caFile string) (*http.Client, error) {
	if caFile == "" {
		return &http.Client{Timeout: 10 * time.Second}, nil
	}
	caCert, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA cert: %w", err)
	}
	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caCert) {
		return nil, errors.New("failed to parse CA cert")
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			RootCAs:    caPool,
			MinVersion: tls.VersionTLS12,
		},
	}
	return &http.Client{Transport: transport, Timeout: 10 * time.Second}, nil
}

// Register creates a vendor and returns the stored record.
func Register(client *http.Client, baseURL string, v models.Vendor) (*models.Vendor, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode vendor: %w", err)
	}
	resp, err := client.Post(baseURL+apiVendors, "application/json", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("register failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server error: %s", strings.TrimSpace(string(data)))
	}

	var stored models.Vendor
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &stored, nil
}

// Login submits the login form. Credential failures are not errors; they
// come back as a LoginResponse with the login view selected.
func Login(client *http.Client, baseURL, email, password string) (LoginResponse, error) {
	form := url.Values{"email": {email}, "password": {password}}
	resp, err := client.PostForm(baseURL+apiStager, form)
	if err != nil {
		return LoginResponse{}, fmt.Errorf("login failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return LoginResponse{}, fmt.Errorf("failed to read response: %w", err)
	}
	return LoginResponse{
		Status: resp.StatusCode,
		View:   resp.Header.Get(viewHeader),
		Body:   string(data),
	}, nil
}

// Search returns vendors matching any non-empty field of q.
func Search(client *http.Client, baseURL string, q models.VendorQuery) ([]models.Vendor, error) {
	params := url.Values{}
	for k, v := range map[string]string{
		"name":    q.Name,
		"email":   q.Email,
		"phone":   q.Phone,
		"address": q.Address,
	} {
		if v != "" {
			params.Set(k, v)
		}
	}

	target := baseURL + apiSearch
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	resp, err := client.Get(target)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server error: %s", strings.TrimSpace(string(data)))
	}

	var vendors []models.Vendor
	if err := json.NewDecoder(resp.Body).Decode(&vendors); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return vendors, nil
}
