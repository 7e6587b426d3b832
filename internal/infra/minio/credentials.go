package minio

import (
	"sync"
	"time"

	"github.com/minio/minio-go/v7/pkg/credentials"
)

// FetchFunc obtains a fresh set of storage credentials, e.g. from the
// environment, a secrets manager, or a metadata endpoint.
type FetchFunc func() (accessKey, secretKey, sessionToken string, err error)

// RefreshingProvider is a credentials.Provider that re-runs its fetch
// function after a fixed TTL. It replaces ambient process-wide token
// state with an explicit, injectable source that the MinIO client
// consults on every call.
type RefreshingProvider struct {
	fetch FetchFunc
	ttl   time.Duration

	mu     sync.Mutex
	expiry time.Time
}

func NewRefreshingProvider(fetch FetchFunc, ttl time.Duration) *RefreshingProvider {
	return &RefreshingProvider{fetch: fetch, ttl: ttl}
}

// NewCredentials wraps the provider for use with minio-go.
func (p *RefreshingProvider) NewCredentials() *credentials.Credentials {
	return credentials.New(p)
}

func (p *RefreshingProvider) Retrieve() (credentials.Value, error) {
	access, secret, token, err := p.fetch()
	if err != nil {
		return credentials.Value{}, err
	}

	p.mu.Lock()
	p.expiry = time.Now().Add(p.ttl)
	p.mu.Unlock()

	return credentials.Value{
		AccessKeyID:     access,
		SecretAccessKey: secret,
		SessionToken:    token,
		SignerType:      credentials.SignatureV4,
	}, nil
}

func (p *RefreshingProvider) RetrieveWithCredContext(_ *credentials.CredContext) (credentials.Value, error) {
	return p.Retrieve()
}

func (p *RefreshingProvider) IsExpired() bool {
	if p.ttl <= 0 {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return time.Now().After(p.expiry)
}

// StaticFetch adapts fixed keys (the usual env-configured deployment)
// to a FetchFunc.
func StaticFetch(accessKey, secretKey string) FetchFunc {
	return func() (string, string, string, error) {
		return accessKey, secretKey, "", nil
	}
}
