package presign

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

var (
	regionPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	bucketPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]{1,61}[a-z0-9]$`)
)

var allowedMethods = map[string]bool{
	"GET":     true,
	"PUT":     true,
	"HEAD":    true,
	"DELETE":  true,
	"POST":    true,
	"PATCH":   true,
	"OPTIONS": true,
}

// SigningRequest describes one object and the identity that grants access to it.
// SessionToken is optional and only set for temporary credentials.
type SigningRequest struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string

	Region    string // e.g. "us-east-1"
	Bucket    string // DNS-compatible bucket name
	ObjectKey string // may contain "/"
	Method    string // e.g. "GET" or "PUT"

	ExpirySeconds int64
}

// Validate checks the request before any signing work is done.
func (r SigningRequest) Validate() error {
	switch {
	case r.AccessKeyID == "":
		return fmt.Errorf("%w: access key ID is required", ErrInvalidRequest)
	case r.SecretAccessKey == "":
		return fmt.Errorf("%w: secret access key is required", ErrInvalidRequest)
	case r.Region == "":
		return fmt.Errorf("%w: region is required", ErrInvalidRequest)
	case r.Bucket == "":
		return fmt.Errorf("%w: bucket is required", ErrInvalidRequest)
	case r.ObjectKey == "":
		return fmt.Errorf("%w: object key is required", ErrInvalidRequest)
	case r.Method == "":
		return fmt.Errorf("%w: method is required", ErrInvalidRequest)
	}

	if !regionPattern.MatchString(r.Region) {
		return fmt.Errorf("%w: invalid region %q", ErrInvalidRequest, r.Region)
	}
	if !bucketPattern.MatchString(r.Bucket) {
		return fmt.Errorf("%w: bucket %q is not DNS-compatible", ErrInvalidRequest, r.Bucket)
	}
	if !allowedMethods[r.Method] {
		return fmt.Errorf("%w: unsupported method %q", ErrInvalidRequest, r.Method)
	}
	if !utf8.ValidString(r.ObjectKey) {
		return fmt.Errorf("%w: object key is not valid UTF-8", ErrInvalidRequest)
	}
	return ValidateExpiry(r.ExpirySeconds)
}

// ValidateExpiry reports whether seconds is an acceptable X-Amz-Expires value.
func ValidateExpiry(seconds int64) error {
	if seconds <= 0 || seconds > MaxExpirySeconds {
		return fmt.Errorf("%w: %w: %d seconds (allowed 1..%d)",
			ErrInvalidRequest, ErrExpiryOutOfRange, seconds, MaxExpirySeconds)
	}
	return nil
}
