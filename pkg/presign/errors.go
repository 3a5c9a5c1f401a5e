package presign

import "errors"

// Signing errors. Any of them aborts the operation; no URL is returned.
var (
	// ErrInvalidRequest is returned when a SigningRequest fails validation
	ErrInvalidRequest = errors.New("presign: invalid signing request")

	// ErrExpiryOutOfRange is returned when the expiry is not within (0, MaxExpirySeconds]
	ErrExpiryOutOfRange = errors.New("presign: expiry out of range")

	// ErrClockFormatting is returned when the signing instant cannot be formatted
	ErrClockFormatting = errors.New("presign: cannot format signing time")

	// ErrEncoding is returned when a query parameter cannot be percent-encoded
	ErrEncoding = errors.New("presign: cannot encode query parameter")

	// ErrCryptoPrimitive is returned when the HMAC or hash primitive misbehaves
	ErrCryptoPrimitive = errors.New("presign: crypto primitive failure")
)

// Verification errors
var (
	// ErrMissingSignature is returned when X-Amz-Signature is absent
	ErrMissingSignature = errors.New("presign: missing signature parameter")

	// ErrMissingParameter is returned when a required X-Amz-* parameter is absent
	ErrMissingParameter = errors.New("presign: missing required parameter")

	// ErrUnexpectedParameter is returned when the query carries parameters that were never signed
	ErrUnexpectedParameter = errors.New("presign: unexpected query parameter")

	// ErrUnsupportedAlgorithm is returned for any algorithm other than AWS4-HMAC-SHA256
	ErrUnsupportedAlgorithm = errors.New("presign: unsupported signing algorithm")

	// ErrInvalidCredential is returned when X-Amz-Credential is malformed or out of scope
	ErrInvalidCredential = errors.New("presign: invalid credential parameter")

	// ErrInvalidDate is returned when X-Amz-Date cannot be parsed
	ErrInvalidDate = errors.New("presign: invalid date parameter")

	// ErrInvalidExpiration is returned when X-Amz-Expires cannot be parsed or is out of range
	ErrInvalidExpiration = errors.New("presign: invalid expires parameter")

	// ErrExpired is returned when the presigned URL has expired
	ErrExpired = errors.New("presign: URL has expired")

	// ErrHostMismatch is returned when the request host is not a bucket on the configured endpoint
	ErrHostMismatch = errors.New("presign: host does not match endpoint")

	// ErrUnknownAccessKey is returned when the credential store has no secret for the access key
	ErrUnknownAccessKey = errors.New("presign: unknown access key")

	// ErrInvalidSignature is returned when the recomputed signature differs
	ErrInvalidSignature = errors.New("presign: invalid signature")
)

// IsAuthError returns true if the error is a signature validation error
func IsAuthError(err error) bool {
	return errors.Is(err, ErrMissingSignature) ||
		errors.Is(err, ErrMissingParameter) ||
		errors.Is(err, ErrUnexpectedParameter) ||
		errors.Is(err, ErrUnsupportedAlgorithm) ||
		errors.Is(err, ErrInvalidCredential) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidExpiration) ||
		errors.Is(err, ErrExpired) ||
		errors.Is(err, ErrHostMismatch) ||
		errors.Is(err, ErrUnknownAccessKey) ||
		errors.Is(err, ErrInvalidSignature)
}
