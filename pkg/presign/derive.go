package presign

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DeriveSigningKey runs the SigV4 derivation chain:
//
//	kDate    = HMAC-SHA256("AWS4" + secret, shortDate)
//	kRegion  = HMAC-SHA256(kDate, region)
//	kService = HMAC-SHA256(kRegion, "s3")
//	kSigning = HMAC-SHA256(kService, "aws4_request")
//
// Intermediate keys stay raw bytes. The result must not outlive the signing call.
func DeriveSigningKey(secretKey, shortDate, region string) ([]byte, error) {
	return deriveKey(secretKey, shortDate, region, ServiceName)
}

func deriveKey(secretKey, shortDate, region, service string) ([]byte, error) {
	key := []byte(KeyPrefix + secretKey)
	for _, msg := range [...]string{shortDate, region, service, TerminationString} {
		next, err := hmacSHA256(key, msg)
		if err != nil {
			return nil, err
		}
		key = next
	}
	return key, nil
}

// StringToSign joins the algorithm, timestamp, scope and the hex SHA-256 of
// the canonical request with newlines.
func StringToSign(fullTimestamp, scope, canonicalRequest string) string {
	sum := sha256.Sum256([]byte(canonicalRequest))
	return SigningAlgorithm + "\n" + fullTimestamp + "\n" + scope + "\n" + hex.EncodeToString(sum[:])
}

// ComputeSignature returns the lowercase hex HMAC-SHA256 of stringToSign.
func ComputeSignature(signingKey []byte, stringToSign string) (string, error) {
	sig, err := hmacSHA256(signingKey, stringToSign)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sig), nil
}

func hmacSHA256(key []byte, data string) ([]byte, error) {
	h := hmac.New(sha256.New, key)
	if _, err := h.Write([]byte(data)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCryptoPrimitive, err)
	}
	sum := h.Sum(nil)
	if len(sum) != sha256.Size {
		return nil, fmt.Errorf("%w: digest is %d bytes", ErrCryptoPrimitive, len(sum))
	}
	return sum, nil
}
