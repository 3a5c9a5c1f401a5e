package presign

import "strings"

// CanonicalURI returns the resource path for objectKey. The key is used as-is,
// so any "/" inside it stays literal.
func CanonicalURI(objectKey string) string {
	return "/" + objectKey
}

// CanonicalRequest builds the newline-joined canonical request:
//
//	METHOD
//	/object/key
//	canonical query string
//	host:<host>
//	(blank line closing the header block)
//	host
//	UNSIGNED_PAYLOAD
//
// host is the virtual host, i.e. "<bucket>.<endpoint>".
func CanonicalRequest(method, uri, canonicalQuery, host string) string {
	var b strings.Builder
	b.Grow(len(method) + len(uri) + len(canonicalQuery) + len(host) + 64)

	b.WriteString(method)
	b.WriteByte('\n')
	b.WriteString(uri)
	b.WriteByte('\n')
	b.WriteString(canonicalQuery)
	b.WriteByte('\n')
	b.WriteString("host:")
	b.WriteString(host)
	b.WriteByte('\n')
	b.WriteByte('\n')
	b.WriteString(SignedHeaders)
	b.WriteByte('\n')
	b.WriteString(UnsignedPayload)
	return b.String()
}

// VirtualHost returns the virtual-hosted-style host for bucket on endpoint.
func VirtualHost(bucket, endpoint string) string {
	return bucket + "." + endpoint
}

// RegionalEndpoint returns the regional S3 endpoint, e.g. s3.eu-west-1.amazonaws.com.
func RegionalEndpoint(region string) string {
	return "s3." + region + ".amazonaws.com"
}
