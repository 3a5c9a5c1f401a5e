package presign

import "strings"

// AssembleURL produces https://{virtualHost}/{objectKey}?{canonicalQuery}&X-Amz-Signature={signature}.
// canonicalQuery must be the exact string that went into the canonical request.
func AssembleURL(virtualHost, objectKey, canonicalQuery, signature string) string {
	var b strings.Builder
	b.Grow(len(Scheme) + len(virtualHost) + len(objectKey) + len(canonicalQuery) + len(signature) + 24)

	b.WriteString(Scheme)
	b.WriteString(virtualHost)
	b.WriteString(CanonicalURI(objectKey))
	b.WriteByte('?')
	b.WriteString(canonicalQuery)
	b.WriteByte('&')
	b.WriteString(AmzSignatureKey)
	b.WriteByte('=')
	b.WriteString(signature)
	return b.String()
}
