// Package presign generates and verifies AWS Signature Version 4 presigned
// URLs for single S3 objects.
//
// A presigned URL grants time-limited access to one object without the caller
// holding credentials at request time. The package implements the query-string
// variant of SigV4 that signs only the host header and uses an unsigned payload.
//
// # Signing
//
//	signer := presign.New()
//	url, err := signer.Presign(presign.SigningRequest{
//	    AccessKeyID:     accessKeyID,
//	    SecretAccessKey: secretAccessKey,
//	    Region:          "us-east-1",
//	    Bucket:          "examplebucket",
//	    ObjectKey:       "folder/file.txt",
//	    Method:          "GET",
//	    ExpirySeconds:   presign.DefaultExpirySeconds,
//	})
//	// https://examplebucket.s3.amazonaws.com/folder/file.txt?X-Amz-Algorithm=...&X-Amz-Signature=...
//
// The pipeline is: timestamps from one clock read, canonical query string,
// canonical request, string-to-sign, derived signing key, signature, URL.
// Each stage is exported (CanonicalQueryString, CanonicalRequest,
// StringToSign, DeriveSigningKey, ComputeSignature, AssembleURL) so it can be
// checked against published test vectors.
//
// # Verification
//
//	verifier := presign.NewVerifier(store)
//	info, err := verifier.VerifyRequest(r)
//
// or as middleware:
//
//	r.Use(presign.ValidateMiddleware(verifier))
//
// # Options
//
//	signer := presign.New(
//	    presign.WithRegionalHost(),
//	    presign.WithClock(presign.FixedClock(t)),
//	    presign.WithLogger(logger),
//	)
//
// Derived keys are never cached; each call derives its own key and drops it.
// Signer and Verifier are safe for concurrent use.
package presign
