package presign

// Signature Version 4 constants for query-string (presigned) S3 requests.
const (
	// SigningAlgorithm identifies the signing scheme in the string-to-sign and X-Amz-Algorithm.
	SigningAlgorithm = "AWS4-HMAC-SHA256"

	// ServiceName is the service component of the credential scope.
	ServiceName = "s3"

	// TerminationString closes the credential scope and the key derivation chain.
	TerminationString = "aws4_request"

	// KeyPrefix is prepended to the secret key for the first derivation step.
	KeyPrefix = "AWS4"

	// UnsignedPayload is the payload placeholder used in the canonical request.
	UnsignedPayload = "UNSIGNED_PAYLOAD"

	// DefaultHost is the endpoint host the bucket is prefixed onto.
	DefaultHost = "s3.amazonaws.com"

	// Scheme is the URL scheme of every presigned URL.
	Scheme = "https://"

	// SignedHeaders is the only header set that is ever signed.
	SignedHeaders = "host"

	// TimeFormat is the X-Amz-Date layout (YYYYMMDDTHHMMSSZ).
	TimeFormat = "20060102T150405Z"

	// ShortTimeFormat is the credential scope date layout (YYYYMMDD).
	ShortTimeFormat = "20060102"

	// DefaultExpirySeconds is applied by callers that leave the expiry unspecified.
	DefaultExpirySeconds int64 = 86400

	// MaxExpirySeconds is the longest validity window S3 accepts (7 days).
	MaxExpirySeconds int64 = 604800
)

// Query parameter names.
const (
	AmzAlgorithmKey     = "X-Amz-Algorithm"
	AmzContentSHAKey    = "X-Amz-Content-Sha256"
	AmzCredentialKey    = "X-Amz-Credential"
	AmzDateKey          = "X-Amz-Date"
	AmzExpiresKey       = "X-Amz-Expires"
	AmzSignedHeadersKey = "X-Amz-SignedHeaders"
	AmzSecurityTokenKey = "X-Amz-Security-Token"
	AmzSignatureKey     = "X-Amz-Signature"
)
