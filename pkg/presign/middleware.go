package presign

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
)

type contextKey string

const (
	// VerifiedRequestContextKey is the context key for the *VerifiedRequest
	VerifiedRequestContextKey contextKey = "presign:verified_request"
)

// ValidateMiddleware returns HTTP middleware that only lets requests with a
// valid presigned URL through. The verified request is stored in the context.
//
// Example:
//
//	r := chi.NewRouter()
//	r.Use(presign.ValidateMiddleware(verifier))
//	r.Get("/*", downloadHandler)
func ValidateMiddleware(v *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			verified, err := v.VerifyRequest(r)
			if err != nil {
				handleValidationError(v.signer.logger, w, err)
				return
			}

			ctx := context.WithValue(r.Context(), VerifiedRequestContextKey, verified)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext returns the verified request stored by ValidateMiddleware, or nil.
func FromContext(ctx context.Context) *VerifiedRequest {
	if v, ok := ctx.Value(VerifiedRequestContextKey).(*VerifiedRequest); ok {
		return v
	}
	return nil
}

// StatusCode maps a verification error to an HTTP status.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrMissingSignature), errors.Is(err, ErrMissingParameter):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUnexpectedParameter),
		errors.Is(err, ErrInvalidExpiration),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrUnsupportedAlgorithm):
		return http.StatusBadRequest
	default:
		return http.StatusForbidden
	}
}

// handleValidationError writes an appropriate HTTP error response based on the validation error
func handleValidationError(logger *slog.Logger, w http.ResponseWriter, err error) {
	if !IsAuthError(err) {
		logger.Error("presigned url validation failed", "err", err)
		http.Error(w, "Authentication failed", http.StatusForbidden)
		return
	}
	http.Error(w, err.Error(), StatusCode(err))
}
