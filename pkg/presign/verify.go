package presign

import (
	"context"
	"crypto/hmac"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// maxClockSkew bounds how far in the future X-Amz-Date may be.
const maxClockSkew = 15 * time.Minute

// CredentialStore resolves the secret key for an access key ID.
// Implementations return an error wrapping ErrUnknownAccessKey for unknown IDs.
type CredentialStore interface {
	SecretKey(ctx context.Context, accessKeyID string) (string, error)
}

// VerifiedRequest describes a presigned URL whose signature checked out.
type VerifiedRequest struct {
	AccessKeyID string
	Region      string
	Bucket      string
	ObjectKey   string
	Method      string
	SignedAt    time.Time
	ExpiresAt   time.Time
}

// Verifier recomputes the signature of an incoming presigned URL with the
// same pipeline the Signer uses and compares it in constant time.
type Verifier struct {
	signer *Signer
	store  CredentialStore
}

// NewVerifier creates a Verifier. The options must describe the same endpoint
// the URLs were signed for. WithClock sets the verifier's notion of "now".
func NewVerifier(store CredentialStore, opts ...Option) *Verifier {
	return &Verifier{
		signer: New(opts...),
		store:  store,
	}
}

// VerifyRequest verifies an inbound HTTP request made with a presigned URL.
func (v *Verifier) VerifyRequest(r *http.Request) (*VerifiedRequest, error) {
	u := *r.URL
	if u.Host == "" {
		u.Host = r.Host
	}
	return v.Verify(r.Context(), r.Method, &u)
}

// Verify checks a presigned URL for the given method.
func (v *Verifier) Verify(ctx context.Context, method string, u *url.URL) (*VerifiedRequest, error) {
	values, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed query: %v", ErrUnexpectedParameter, err)
	}

	params := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) != 1 {
			return nil, fmt.Errorf("%w: %s repeated", ErrUnexpectedParameter, k)
		}
		params[k] = vs[0]
	}

	signature, ok := params[AmzSignatureKey]
	if !ok || signature == "" {
		return nil, ErrMissingSignature
	}
	delete(params, AmzSignatureKey)

	for _, k := range []string{AmzAlgorithmKey, AmzContentSHAKey, AmzCredentialKey, AmzDateKey, AmzExpiresKey, AmzSignedHeadersKey} {
		if _, ok := params[k]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingParameter, k)
		}
	}
	for k := range params {
		if !isPresignParam(k) {
			return nil, fmt.Errorf("%w: %s", ErrUnexpectedParameter, k)
		}
	}

	if params[AmzAlgorithmKey] != SigningAlgorithm {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, params[AmzAlgorithmKey])
	}
	if params[AmzSignedHeadersKey] != SignedHeaders || params[AmzContentSHAKey] != UnsignedPayload {
		return nil, fmt.Errorf("%w: signed headers or payload hash differ", ErrInvalidSignature)
	}

	accessKeyID, shortDate, region, err := parseCredential(params[AmzCredentialKey])
	if err != nil {
		return nil, err
	}

	signedAt, err := time.Parse(TimeFormat, params[AmzDateKey])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	ts, err := NewTimestampPair(signedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	if ts.Short != shortDate {
		return nil, fmt.Errorf("%w: scope date %s does not match %s", ErrInvalidCredential, shortDate, ts.Full)
	}

	expires, err := strconv.ParseInt(params[AmzExpiresKey], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpiration, err)
	}
	if err := ValidateExpiry(expires); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpiration, err)
	}

	now := v.signer.clock.Now()
	expiresAt := signedAt.Add(time.Duration(expires) * time.Second)
	if signedAt.After(now.Add(maxClockSkew)) {
		return nil, fmt.Errorf("%w: signed in the future", ErrInvalidDate)
	}
	if now.After(expiresAt) {
		return nil, ErrExpired
	}

	bucket, err := v.bucketFromHost(u.Host, region)
	if err != nil {
		return nil, err
	}

	secret, err := v.store.SecretKey(ctx, accessKeyID)
	if err != nil {
		return nil, err
	}

	req := SigningRequest{
		AccessKeyID:     accessKeyID,
		SecretAccessKey: secret,
		SessionToken:    params[AmzSecurityTokenKey],
		Region:          region,
		Bucket:          bucket,
		ObjectKey:       strings.TrimPrefix(u.Path, "/"),
		Method:          method,
		ExpirySeconds:   expires,
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	r, err := v.signer.sign(req, ts)
	if err != nil {
		return nil, err
	}
	if !hmac.Equal([]byte(signature), []byte(r.signature)) {
		v.signer.logger.Warn("presigned url signature mismatch",
			"access_key_id", accessKeyID,
			"bucket", bucket,
			"key", req.ObjectKey,
			"method", method,
		)
		return nil, ErrInvalidSignature
	}

	return &VerifiedRequest{
		AccessKeyID: accessKeyID,
		Region:      region,
		Bucket:      bucket,
		ObjectKey:   req.ObjectKey,
		Method:      method,
		SignedAt:    signedAt,
		ExpiresAt:   expiresAt,
	}, nil
}

func (v *Verifier) bucketFromHost(host, region string) (string, error) {
	host = strings.ToLower(host)
	if h, port, ok := strings.Cut(host, ":"); ok && port == "443" {
		host = h
	}

	suffix := "." + v.signer.Endpoint(region)
	bucket, ok := strings.CutSuffix(host, suffix)
	if !ok || bucket == "" {
		return "", fmt.Errorf("%w: %s", ErrHostMismatch, host)
	}
	return bucket, nil
}

// parseCredential splits <akid>/<date>/<region>/s3/aws4_request.
func parseCredential(credential string) (accessKeyID, shortDate, region string, err error) {
	parts := strings.Split(credential, "/")
	if len(parts) < 5 {
		return "", "", "", fmt.Errorf("%w: %q", ErrInvalidCredential, credential)
	}

	n := len(parts)
	accessKeyID = strings.Join(parts[:n-4], "/")
	shortDate, region = parts[n-4], parts[n-3]
	if accessKeyID == "" || region == "" || parts[n-2] != ServiceName || parts[n-1] != TerminationString {
		return "", "", "", fmt.Errorf("%w: %q", ErrInvalidCredential, credential)
	}
	if _, perr := time.Parse(ShortTimeFormat, shortDate); perr != nil {
		return "", "", "", fmt.Errorf("%w: scope date: %v", ErrInvalidCredential, perr)
	}
	return accessKeyID, shortDate, region, nil
}

func isPresignParam(k string) bool {
	switch k {
	case AmzAlgorithmKey, AmzContentSHAKey, AmzCredentialKey, AmzDateKey,
		AmzExpiresKey, AmzSignedHeadersKey, AmzSecurityTokenKey:
		return true
	}
	return false
}

// LogValue keeps verified requests readable in structured logs.
func (r *VerifiedRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("access_key_id", r.AccessKeyID),
		slog.String("bucket", r.Bucket),
		slog.String("key", r.ObjectKey),
		slog.String("method", r.Method),
		slog.Time("expires_at", r.ExpiresAt),
	)
}
