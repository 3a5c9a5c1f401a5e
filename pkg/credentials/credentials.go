// Package credentials resolves the identity used to sign presigned URLs.
//
// Credentials come from any aws-sdk-go-v2 CredentialsProvider: static keys,
// the default chain (environment, shared config, SSO, IMDS, ...) or a custom
// provider. The resolved secret is copied into a single SigningRequest and
// is never cached here.
package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/tendant/simple-presign/pkg/presign"
)

// ErrNoCredentials is returned when a provider yields an empty identity
var ErrNoCredentials = errors.New("credentials: no credentials available")

// Identity is a resolved access key pair with an optional session token.
type Identity struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// Apply copies the identity into req.
func (id Identity) Apply(req *presign.SigningRequest) {
	req.AccessKeyID = id.AccessKeyID
	req.SecretAccessKey = id.SecretAccessKey
	req.SessionToken = id.SessionToken
}

// Static returns a provider for fixed keys.
func Static(accessKeyID, secretAccessKey, sessionToken string) aws.CredentialsProvider {
	return awscreds.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, sessionToken)
}

// DefaultChain returns the SDK's default credential chain for region.
func DefaultChain(ctx context.Context, region string) (aws.CredentialsProvider, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if cfg.Credentials == nil {
		return nil, ErrNoCredentials
	}
	return cfg.Credentials, nil
}

// Provider picks static keys when both are set and the default chain otherwise.
func Provider(ctx context.Context, region, accessKeyID, secretAccessKey, sessionToken string) (aws.CredentialsProvider, error) {
	if accessKeyID != "" && secretAccessKey != "" {
		return Static(accessKeyID, secretAccessKey, sessionToken), nil
	}
	return DefaultChain(ctx, region)
}

// Resolve retrieves credentials from p.
func Resolve(ctx context.Context, p aws.CredentialsProvider) (Identity, error) {
	if p == nil {
		return Identity{}, ErrNoCredentials
	}

	creds, err := p.Retrieve(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to retrieve credentials: %w", err)
	}
	if !creds.HasKeys() {
		return Identity{}, ErrNoCredentials
	}

	return Identity{
		AccessKeyID:     creds.AccessKeyID,
		SecretAccessKey: creds.SecretAccessKey,
		SessionToken:    creds.SessionToken,
	}, nil
}

// Store serves secrets to a presign.Verifier from one or more providers.
type Store struct {
	providers []aws.CredentialsProvider
}

// NewStore creates a Store backed by the given providers.
func NewStore(providers ...aws.CredentialsProvider) *Store {
	return &Store{providers: providers}
}

// SecretKey implements presign.CredentialStore.
func (s *Store) SecretKey(ctx context.Context, accessKeyID string) (string, error) {
	for _, p := range s.providers {
		id, err := Resolve(ctx, p)
		if err != nil {
			return "", err
		}
		if id.AccessKeyID == accessKeyID {
			return id.SecretAccessKey, nil
		}
	}
	return "", fmt.Errorf("%w: %s", presign.ErrUnknownAccessKey, accessKeyID)
}
