package presign

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRequest() SigningRequest {
	return SigningRequest{
		AccessKeyID:     exampleAccessKeyID,
		SecretAccessKey: exampleSecret,
		Region:          "us-east-1",
		Bucket:          "examplebucket",
		ObjectKey:       "test.txt",
		Method:          "GET",
		ExpirySeconds:   86400,
	}
}

func TestSigningRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *SigningRequest)
		wantError bool
	}{
		{"valid", func(r *SigningRequest) {}, false},
		{"missing access key", func(r *SigningRequest) { r.AccessKeyID = "" }, true},
		{"missing secret", func(r *SigningRequest) { r.SecretAccessKey = "" }, true},
		{"missing region", func(r *SigningRequest) { r.Region = "" }, true},
		{"uppercase region", func(r *SigningRequest) { r.Region = "US-EAST-1" }, true},
		{"missing bucket", func(r *SigningRequest) { r.Bucket = "" }, true},
		{"bucket too short", func(r *SigningRequest) { r.Bucket = "ab" }, true},
		{"bucket with underscore", func(r *SigningRequest) { r.Bucket = "my_bucket" }, true},
		{"bucket with dots", func(r *SigningRequest) { r.Bucket = "my.bucket.example" }, false},
		{"missing key", func(r *SigningRequest) { r.ObjectKey = "" }, true},
		{"key with slashes", func(r *SigningRequest) { r.ObjectKey = "a/b/c.txt" }, false},
		{"invalid utf8 key", func(r *SigningRequest) { r.ObjectKey = "\xff" }, true},
		{"missing method", func(r *SigningRequest) { r.Method = "" }, true},
		{"lowercase method", func(r *SigningRequest) { r.Method = "get" }, true},
		{"put", func(r *SigningRequest) { r.Method = "PUT" }, false},
		{"zero expiry", func(r *SigningRequest) { r.ExpirySeconds = 0 }, true},
		{"negative expiry", func(r *SigningRequest) { r.ExpirySeconds = -1 }, true},
		{"max expiry", func(r *SigningRequest) { r.ExpirySeconds = MaxExpirySeconds }, false},
		{"over max expiry", func(r *SigningRequest) { r.ExpirySeconds = MaxExpirySeconds + 1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantError {
				assert.ErrorIs(t, err, ErrInvalidRequest)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateExpiry(t *testing.T) {
	assert.ErrorIs(t, ValidateExpiry(0), ErrExpiryOutOfRange)
	assert.ErrorIs(t, ValidateExpiry(-60), ErrExpiryOutOfRange)
	assert.ErrorIs(t, ValidateExpiry(604801), ErrExpiryOutOfRange)
	assert.NoError(t, ValidateExpiry(1))
	assert.NoError(t, ValidateExpiry(604800))
}
