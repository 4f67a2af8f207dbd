package remote

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/rigbudget/internal/localstore"
	"github.com/mmynk/rigbudget/internal/models"
	"github.com/mmynk/rigbudget/internal/syncclient"
	"github.com/mmynk/rigbudget/pkg/api"
)

var _ syncclient.AuthProvider = (*AuthProvider)(nil)

// AuthProvider signs users in against the server and keeps the session
// token in local storage.
type AuthProvider struct {
	client *api.AuthClient
	tokens syncclient.LocalStorage
}

// NewAuthProvider creates an AuthProvider for the server at baseURL.
// httpClient may be nil.
func NewAuthProvider(httpClient connect.HTTPClient, baseURL string, tokens syncclient.LocalStorage) *AuthProvider {
	return &AuthProvider{
		client: api.NewAuthClient(httpClientOrDefault(httpClient), baseURL, api.WithBearerToken(tokenSource(tokens))),
		tokens: tokens,
	}
}

func (p *AuthProvider) SignUp(ctx context.Context, email, password string) (*models.Identity, error) {
	resp, err := p.client.SignUp(ctx, &api.SignUpRequest{Email: email, Password: password})
	if err != nil {
		return nil, wrap(err)
	}
	return p.startSession(resp.User, resp.Token)
}

func (p *AuthProvider) SignIn(ctx context.Context, email, password string) (*models.Identity, error) {
	resp, err := p.client.SignIn(ctx, &api.SignInRequest{Email: email, Password: password})
	if err != nil {
		return nil, wrap(err)
	}
	return p.startSession(resp.User, resp.Token)
}

// SignOut forgets the local token. The server call is advisory since tokens
// are stateless; its failure is logged, not returned.
func (p *AuthProvider) SignOut(ctx context.Context) error {
	if _, ok := p.tokens.Get(localstore.KeySessionToken); ok {
		if _, err := p.client.SignOut(ctx, &api.SignOutRequest{}); err != nil {
			slog.Warn("Server sign-out failed", "error", err)
		}
	}
	if err := p.tokens.Set(localstore.KeySessionToken, ""); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	return nil
}

// CurrentUser returns nil without error when there is no token or the server
// rejects it. A rejected token is discarded.
func (p *AuthProvider) CurrentUser(ctx context.Context) (*models.Identity, error) {
	if _, ok := p.tokens.Get(localstore.KeySessionToken); !ok {
		return nil, nil
	}

	resp, err := p.client.CurrentUser(ctx, &api.CurrentUserRequest{})
	if connect.CodeOf(err) == connect.CodeUnauthenticated {
		if err := p.tokens.Set(localstore.KeySessionToken, ""); err != nil {
			slog.Warn("Failed to clear stale session token", "error", err)
		}
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err)
	}
	return identity(resp.User), nil
}

func (p *AuthProvider) startSession(user *api.User, token string) (*models.Identity, error) {
	if err := p.tokens.Set(localstore.KeySessionToken, token); err != nil {
		return nil, fmt.Errorf("failed to store session token: %w", err)
	}
	return identity(user), nil
}

func identity(u *api.User) *models.Identity {
	if u == nil {
		return nil
	}
	return &models.Identity{ID: u.ID, Email: u.Email}
}
