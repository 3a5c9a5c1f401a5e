package presign

import (
	"context"
	"fmt"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStore map[string]string

func (m mapStore) SecretKey(_ context.Context, accessKeyID string) (string, error) {
	secret, ok := m[accessKeyID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownAccessKey, accessKeyID)
	}
	return secret, nil
}

var testStore = mapStore{exampleAccessKeyID: exampleSecret}

func presignedURL(t *testing.T, req SigningRequest, opts ...Option) *url.URL {
	t.Helper()
	raw, err := newTestSigner(exampleTime, opts...).Presign(req)
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func newTestVerifier(now time.Time, opts ...Option) *Verifier {
	return NewVerifier(testStore, append([]Option{WithClock(FixedClock(now))}, opts...)...)
}

func TestVerify_RoundTrip(t *testing.T) {
	req := validRequest()
	req.ObjectKey = "folder/file.txt"
	u := presignedURL(t, req)

	got, err := newTestVerifier(exampleTime.Add(time.Minute)).Verify(context.Background(), "GET", u)
	require.NoError(t, err)
	assert.Equal(t, exampleAccessKeyID, got.AccessKeyID)
	assert.Equal(t, "examplebucket", got.Bucket)
	assert.Equal(t, "folder/file.txt", got.ObjectKey)
	assert.Equal(t, "us-east-1", got.Region)
	assert.Equal(t, "GET", got.Method)
	assert.True(t, exampleTime.Equal(got.SignedAt))
	assert.True(t, exampleTime.Add(24*time.Hour).Equal(got.ExpiresAt))
}

func TestVerify_RoundTripWithSessionTokenAndRegionalHost(t *testing.T) {
	req := validRequest()
	req.Region = "eu-west-1"
	req.SessionToken = "FwoGZXIvYXdzEBY/token+with=chars"
	u := presignedURL(t, req, WithRegionalHost())

	got, err := newTestVerifier(exampleTime, WithRegionalHost()).Verify(context.Background(), "GET", u)
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", got.Region)

	_, err = newTestVerifier(exampleTime).Verify(context.Background(), "GET", u)
	assert.ErrorIs(t, err, ErrHostMismatch)
}

func TestVerify_Failures(t *testing.T) {
	base := presignedURL(t, validRequest())

	withQuery := func(edit func(raw string) string) *url.URL {
		u := *base
		u.RawQuery = edit(base.RawQuery)
		return &u
	}

	tests := []struct {
		name    string
		method  string
		now     time.Time
		url     *url.URL
		wantErr error
	}{
		{
			name:    "wrong method",
			method:  "PUT",
			url:     base,
			wantErr: ErrInvalidSignature,
		},
		{
			name:   "different key",
			method: "GET",
			url: func() *url.URL {
				u := *base
				u.Path = "/other.txt"
				return &u
			}(),
			wantErr: ErrInvalidSignature,
		},
		{
			name:   "wrong host",
			method: "GET",
			url: func() *url.URL {
				u := *base
				u.Host = "examplebucket.storage.example.com"
				return &u
			}(),
			wantErr: ErrHostMismatch,
		},
		{
			name:   "other bucket",
			method: "GET",
			url: func() *url.URL {
				u := *base
				u.Host = "otherbucket.s3.amazonaws.com"
				return &u
			}(),
			wantErr: ErrInvalidSignature,
		},
		{
			name:    "missing signature",
			method:  "GET",
			url:     withQuery(func(raw string) string { return raw[:strings.Index(raw, "&X-Amz-Signature=")] }),
			wantErr: ErrMissingSignature,
		},
		{
			name:    "tampered signature",
			method:  "GET",
			url:     withQuery(func(raw string) string { return raw[:len(raw)-1] + "0" }),
			wantErr: ErrInvalidSignature,
		},
		{
			name:    "tampered expiry",
			method:  "GET",
			url:     withQuery(func(raw string) string { return strings.Replace(raw, "X-Amz-Expires=86400", "X-Amz-Expires=86399", 1) }),
			wantErr: ErrInvalidSignature,
		},
		{
			name:    "expiry out of range",
			method:  "GET",
			url:     withQuery(func(raw string) string { return strings.Replace(raw, "X-Amz-Expires=86400", "X-Amz-Expires=604801", 1) }),
			wantErr: ErrInvalidExpiration,
		},
		{
			name:    "unexpected parameter",
			method:  "GET",
			url:     withQuery(func(raw string) string { return raw + "&response-content-type=text/html" }),
			wantErr: ErrUnexpectedParameter,
		},
		{
			name:    "missing parameter",
			method:  "GET",
			url:     withQuery(func(raw string) string { return strings.Replace(raw, "X-Amz-SignedHeaders=host&", "", 1) }),
			wantErr: ErrMissingParameter,
		},
		{
			name:    "other algorithm",
			method:  "GET",
			url:     withQuery(func(raw string) string { return strings.Replace(raw, "AWS4-HMAC-SHA256", "AWS4-ECDSA-P256-SHA256", 1) }),
			wantErr: ErrUnsupportedAlgorithm,
		},
		{
			name:    "unknown access key",
			method:  "GET",
			url:     withQuery(func(raw string) string { return strings.Replace(raw, exampleAccessKeyID, "AKIDUNKNOWN", 1) }),
			wantErr: ErrUnknownAccessKey,
		},
		{
			name:    "scope date mismatch",
			method:  "GET",
			url:     withQuery(func(raw string) string { return strings.Replace(raw, "/20130524/", "/20130523/", 1) }),
			wantErr: ErrInvalidCredential,
		},
		{
			name:    "bad service",
			method:  "GET",
			url:     withQuery(func(raw string) string { return strings.Replace(raw, "/s3/aws4_request", "/iam/aws4_request", 1) }),
			wantErr: ErrInvalidCredential,
		},
		{
			name:    "bad date",
			method:  "GET",
			url:     withQuery(func(raw string) string { return strings.Replace(raw, "X-Amz-Date=20130524T000000Z", "X-Amz-Date=2013-05-24", 1) }),
			wantErr: ErrInvalidDate,
		},
		{
			name:    "expired",
			method:  "GET",
			now:     exampleTime.Add(86401 * time.Second),
			url:     base,
			wantErr: ErrExpired,
		},
		{
			name:    "signed in the future",
			method:  "GET",
			now:     exampleTime.Add(-time.Hour),
			url:     base,
			wantErr: ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := tt.now
			if now.IsZero() {
				now = exampleTime.Add(time.Minute)
			}
			got, err := newTestVerifier(now).Verify(context.Background(), tt.method, tt.url)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsAuthError(err))
			assert.Nil(t, got)
		})
	}
}

func TestVerify_LastValidSecond(t *testing.T) {
	u := presignedURL(t, validRequest())
	_, err := newTestVerifier(exampleTime.Add(86400*time.Second)).Verify(context.Background(), "GET", u)
	assert.NoError(t, err)
}

func TestVerifyRequest_UsesHostHeader(t *testing.T) {
	u := presignedURL(t, validRequest())

	r := httptest.NewRequest("GET", u.RequestURI(), nil)
	r.Host = u.Host

	got, err := newTestVerifier(exampleTime).VerifyRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", got.ObjectKey)
}

func TestParseCredential(t *testing.T) {
	akid, date, region, err := parseCredential("AKID/20130524/us-east-1/s3/aws4_request")
	require.NoError(t, err)
	assert.Equal(t, "AKID", akid)
	assert.Equal(t, "20130524", date)
	assert.Equal(t, "us-east-1", region)

	for _, bad := range []string{
		"",
		"AKID/20130524/us-east-1/s3",
		"/20130524/us-east-1/s3/aws4_request",
		"AKID/2013-05-24/us-east-1/s3/aws4_request",
		"AKID/20130524/us-east-1/s3/aws4",
	} {
		_, _, _, err := parseCredential(bad)
		assert.ErrorIs(t, err, ErrInvalidCredential, bad)
	}
}
