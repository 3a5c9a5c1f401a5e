package presign

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// EscapeQueryComponent percent-encodes s for a canonical query string.
// Unreserved characters (A-Z a-z 0-9 - _ . ~) are kept, a space becomes %20
// rather than "+", and an encoded slash is turned back into a literal "/".
func EscapeQueryComponent(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", fmt.Errorf("%w: %q is not valid UTF-8", ErrEncoding, s)
	}
	escaped := strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
	return strings.ReplaceAll(escaped, "%2F", "/"), nil
}

// CanonicalQueryString encodes every pair and joins them as k=v&k=v, sorted
// by encoded key in byte order. Key uniqueness is the caller's concern.
func CanonicalQueryString(params map[string]string) (string, error) {
	type pair struct{ k, v string }

	pairs := make([]pair, 0, len(params))
	for k, v := range params {
		ek, err := EscapeQueryComponent(k)
		if err != nil {
			return "", err
		}
		ev, err := EscapeQueryComponent(v)
		if err != nil {
			return "", fmt.Errorf("value of %q: %w", k, err)
		}
		pairs = append(pairs, pair{ek, ev})
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].k < pairs[j].k })

	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.k)
		b.WriteByte('=')
		b.WriteString(p.v)
	}
	return b.String(), nil
}

// presignParams returns the fixed parameter set that is signed for req.
func presignParams(req SigningRequest, ts TimestampPair) map[string]string {
	params := map[string]string{
		AmzAlgorithmKey:     SigningAlgorithm,
		AmzContentSHAKey:    UnsignedPayload,
		AmzCredentialKey:    req.AccessKeyID + "/" + CredentialScope(ts.Short, req.Region),
		AmzDateKey:          ts.Full,
		AmzExpiresKey:       strconv.FormatInt(req.ExpirySeconds, 10),
		AmzSignedHeadersKey: SignedHeaders,
	}
	if req.SessionToken != "" {
		params[AmzSecurityTokenKey] = req.SessionToken
	}
	return params
}
