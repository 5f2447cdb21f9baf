package graph

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"

	"github.com/houzhh15/callscribe/cmd/server/internal/config"
)

const (
	tokenExchangeTimeout = 15 * time.Second
	tokenExpirySkew      = 30 * time.Second
	tokenRetryBackoff    = 500 * time.Millisecond
)

// TokenProvider acquires and caches a client-credentials token for the
// platform API. A cached token is reused until it nears expiry; concurrent
// refreshes collapse into a single exchange.
type TokenProvider struct {
	conf *clientcredentials.Config

	mu     sync.Mutex
	cached AccessToken

	group   singleflight.Group
	timeout time.Duration
	now     func() time.Time
}

// NewTokenProvider builds a provider from cfg. The token endpoint is taken
// from cfg.TokenURL when set, discovered from cfg.IssuerURL via OIDC
// discovery otherwise, and finally derived from the tenant id.
func NewTokenProvider(ctx context.Context, cfg config.GraphConfig) (*TokenProvider, error) {
	tokenURL := cfg.TokenURL
	if tokenURL == "" && cfg.IssuerURL != "" {
		discCtx, cancel := context.WithTimeout(ctx, tokenExchangeTimeout)
		defer cancel()
		provider, err := oidc.NewProvider(discCtx, cfg.IssuerURL)
		if err != nil {
			return nil, fmt.Errorf("discover token endpoint: %w", err)
		}
		tokenURL = provider.Endpoint().TokenURL
	}
	if tokenURL == "" {
		if cfg.TenantID == "" {
			return nil, errors.New("token endpoint unknown: set GRAPH_TOKEN_URL, GRAPH_ISSUER_URL or TEAMS_TENANT_ID")
		}
		tokenURL = fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.TenantID)
	}

	return &TokenProvider{
		conf: &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     tokenURL,
			Scopes:       []string{cfg.Scope},
		},
		timeout: tokenExchangeTimeout,
		now:     time.Now,
	}, nil
}

// GetToken returns a valid access token, performing a client-credentials
// exchange only when the cache is empty or expired. Provider rejections are
// fatal (AuthError, no retry); a transient network failure is retried once
// after a short backoff.
func (p *TokenProvider) GetToken(ctx context.Context) (AccessToken, error) {
	p.mu.Lock()
	if p.cached.valid(p.now(), tokenExpirySkew) {
		tok := p.cached
		p.mu.Unlock()
		return tok, nil
	}
	p.mu.Unlock()

	v, err, _ := p.group.Do("token", func() (any, error) {
		tok, err := p.exchange(ctx)
		if err != nil {
			return AccessToken{}, err
		}
		p.mu.Lock()
		p.cached = tok
		p.mu.Unlock()
		return tok, nil
	})
	if err != nil {
		return AccessToken{}, err
	}
	return v.(AccessToken), nil
}

func (p *TokenProvider) exchange(ctx context.Context) (AccessToken, error) {
	tok, err := p.exchangeOnce(ctx)
	if err == nil {
		return tok, nil
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		return AccessToken{}, err
	}

	// transient network failure: one retry after a short backoff
	select {
	case <-ctx.Done():
		return AccessToken{}, &AuthError{Op: "token exchange", Cause: ctx.Err()}
	case <-time.After(tokenRetryBackoff):
	}

	tok, err = p.exchangeOnce(ctx)
	if err != nil && !errors.As(err, &authErr) {
		return AccessToken{}, &AuthError{Op: "token exchange", Cause: err}
	}
	return tok, err
}

func (p *TokenProvider) exchangeOnce(ctx context.Context) (AccessToken, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	tok, err := p.conf.Token(ctx)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			// the provider answered and said no: configuration problem
			return AccessToken{}, &AuthError{Op: "client credentials exchange", Cause: err}
		}
		return AccessToken{}, fmt.Errorf("token endpoint unreachable: %w", err)
	}
	return AccessToken{Value: tok.AccessToken, Expiry: tok.Expiry}, nil
}
