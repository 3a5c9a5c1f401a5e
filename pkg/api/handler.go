package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/tendant/simple-presign/pkg/credentials"
	"github.com/tendant/simple-presign/pkg/presign"
)

// Defaults fill the fields a PresignRequest leaves empty.
type Defaults struct {
	Region        string
	Bucket        string
	Method        string
	ExpirySeconds int64
}

// Handler issues and verifies presigned URLs over HTTP.
type Handler struct {
	signer   *presign.Signer
	verifier *presign.Verifier
	provider aws.CredentialsProvider
	defaults Defaults
	logger   *slog.Logger
}

// NewHandler creates a Handler. Credentials are resolved from provider on every request.
func NewHandler(signer *presign.Signer, verifier *presign.Verifier, provider aws.CredentialsProvider, defaults Defaults, logger *slog.Logger) *Handler {
	if defaults.ExpirySeconds == 0 {
		defaults.ExpirySeconds = presign.DefaultExpirySeconds
	}
	if defaults.Method == "" {
		defaults.Method = http.MethodGet
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		signer:   signer,
		verifier: verifier,
		provider: provider,
		defaults: defaults,
		logger:   logger,
	}
}

// Routes returns the router for presign endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/presign", h.Presign)
	r.Post("/verify", h.Verify)
	return r
}

// PresignRequest represents the request to issue a presigned URL
type PresignRequest struct {
	Bucket         string `json:"bucket,omitempty"`
	Key            string `json:"key"`
	Method         string `json:"method,omitempty"`
	Region         string `json:"region,omitempty"`
	ExpiresSeconds *int64 `json:"expires_seconds,omitempty"`
}

// PresignResponse represents an issued presigned URL
type PresignResponse struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	Bucket    string    `json:"bucket"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// VerifyRequest represents the request to check a presigned URL
type VerifyRequest struct {
	URL    string `json:"url"`
	Method string `json:"method,omitempty"`
}

// VerifyResponse describes a presigned URL whose signature is valid
type VerifyResponse struct {
	Valid       bool      `json:"valid"`
	AccessKeyID string    `json:"access_key_id"`
	Region      string    `json:"region"`
	Bucket      string    `json:"bucket"`
	Key         string    `json:"key"`
	Method      string    `json:"method"`
	SignedAt    time.Time `json:"signed_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ErrorResponse is the JSON error body
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine readable code and a message
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Presign issues a presigned URL for one object
func (h *Handler) Presign(w http.ResponseWriter, r *http.Request) {
	var req PresignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		writeError(w, r, http.StatusBadRequest, "invalid_request", "request body must be JSON")
		return
	}

	expiry := h.defaults.ExpirySeconds
	if req.ExpiresSeconds != nil {
		expiry = *req.ExpiresSeconds
	}

	signingReq := presign.SigningRequest{
		Region:        firstNonEmpty(req.Region, h.defaults.Region),
		Bucket:        firstNonEmpty(req.Bucket, h.defaults.Bucket),
		ObjectKey:     strings.TrimPrefix(req.Key, "/"),
		Method:        strings.ToUpper(firstNonEmpty(req.Method, h.defaults.Method)),
		ExpirySeconds: expiry,
	}

	id, err := credentials.Resolve(r.Context(), h.provider)
	if err != nil {
		h.logger.Error("Failed to resolve credentials", "error", err)
		writeError(w, r, http.StatusInternalServerError, "credentials_unavailable", "signing credentials are not available")
		return
	}
	id.Apply(&signingReq)

	presigned, err := h.signer.Sign(signingReq)
	if err != nil {
		if errors.Is(err, presign.ErrInvalidRequest) || errors.Is(err, presign.ErrEncoding) {
			writeError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		h.logger.Error("Failed to presign URL", "error", err)
		writeError(w, r, http.StatusInternalServerError, "signing_failed", "failed to sign URL")
		return
	}

	resp := PresignResponse{
		ID:        uuid.New().String(),
		URL:       presigned.URL,
		Method:    signingReq.Method,
		Bucket:    signingReq.Bucket,
		Key:       signingReq.ObjectKey,
		ExpiresAt: presigned.ExpiresAt,
	}

	h.logger.Info("Presigned URL issued",
		"id", resp.ID,
		"method", resp.Method,
		"bucket", resp.Bucket,
		"key", resp.Key,
		"expires_at", resp.ExpiresAt,
	)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, resp)
}

// Verify checks a presigned URL and reports what it grants
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "request body must be JSON")
		return
	}

	u, err := url.Parse(req.URL)
	if err != nil || u.Host == "" {
		writeError(w, r, http.StatusBadRequest, "invalid_url", "url must be an absolute URL")
		return
	}

	method := strings.ToUpper(firstNonEmpty(req.Method, http.MethodGet))
	verified, err := h.verifier.Verify(r.Context(), method, u)
	if err != nil {
		if !presign.IsAuthError(err) {
			h.logger.Error("Failed to verify URL", "error", err)
		}
		writeError(w, r, presign.StatusCode(err), "invalid_presigned_url", err.Error())
		return
	}

	render.JSON(w, r, VerifyResponse{
		Valid:       true,
		AccessKeyID: verified.AccessKeyID,
		Region:      verified.Region,
		Bucket:      verified.Bucket,
		Key:         verified.ObjectKey,
		Method:      verified.Method,
		SignedAt:    verified.SignedAt,
		ExpiresAt:   verified.ExpiresAt,
	})
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
