package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	spotifyclient "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"

	"yogabeats/config"
	"yogabeats/exporter"
)

// Identity is the Spotify account behind a user token.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// UserClient acts on behalf of a user who granted playlist scopes.
type UserClient struct {
	client *spotifyclient.Client
}

func NewUserClient(httpClient *http.Client, opts ...spotifyclient.ClientOption) *UserClient {
	return &UserClient{client: spotifyclient.New(httpClient, opts...)}
}

func (u *UserClient) CurrentUser(ctx context.Context) (*Identity, error) {
	span := sentry.StartSpan(ctx, "spotify.current_user")
	defer span.Finish()

	user, err := u.client.CurrentUser(span.Context())
	if err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusUnauthenticated
		return nil, err
	}

	span.Status = sentry.SpanStatusOK
	return &Identity{ID: user.ID, DisplayName: user.DisplayName}, nil
}

func (u *UserClient) CurrentUserID(ctx context.Context) (string, error) {
	identity, err := u.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	return identity.ID, nil
}

func (u *UserClient) CreatePlaylist(ctx context.Context, ownerID, name, description string, public bool) (exporter.CreatedPlaylist, error) {
	span := sentry.StartSpan(ctx, "spotify.create_playlist")
	span.Description = "Create Spotify playlist"
	span.SetTag("owner_id", ownerID)
	defer span.Finish()

	created, err := u.client.CreatePlaylistForUser(span.Context(), ownerID, name, description, public, false)
	if err != nil {
		log.Errorf("Failed to create Spotify playlist %q for %s: %v", name, ownerID, err)
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return exporter.CreatedPlaylist{}, err
	}

	span.Status = sentry.SpanStatusOK
	return exporter.CreatedPlaylist{
		ID:  string(created.ID),
		URL: created.ExternalURLs["spotify"],
	}, nil
}

func (u *UserClient) AddItems(ctx context.Context, playlistID string, trackIDs []string) error {
	span := sentry.StartSpan(ctx, "spotify.add_items")
	span.SetTag("playlist_id", playlistID)
	span.SetData("tracks_count", len(trackIDs))
	defer span.Finish()

	ids := make([]spotifyclient.ID, 0, len(trackIDs))
	for _, id := range trackIDs {
		ids = append(ids, spotifyclient.ID(id))
	}

	if _, err := u.client.AddTracksToPlaylist(span.Context(), spotifyclient.ID(playlistID), ids...); err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return err
	}

	span.Status = sentry.SpanStatusOK
	return nil
}

// Authenticator runs the authorization-code flow and turns access tokens into
// user clients.
type Authenticator struct {
	auth    *spotifyauth.Authenticator
	timeout time.Duration
}

func NewAuthenticator(cfg config.SpotifyConfig) *Authenticator {
	auth := spotifyauth.New(
		spotifyauth.WithClientID(cfg.ClientID),
		spotifyauth.WithClientSecret(cfg.ClientSecret),
		spotifyauth.WithRedirectURL(cfg.RedirectURI),
		spotifyauth.WithScopes(
			spotifyauth.ScopeUserReadPrivate,
			spotifyauth.ScopePlaylistModifyPrivate,
			spotifyauth.ScopePlaylistModifyPublic,
		),
	)
	return &Authenticator{auth: auth, timeout: cfg.Timeout}
}

func (a *Authenticator) AuthURL(state string) string {
	return a.auth.AuthURL(state)
}

func (a *Authenticator) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if code == "" {
		return nil, errors.New("missing authorization code")
	}
	token, err := a.auth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange auth code: %w", err)
	}
	return token, nil
}

// UserClient wraps an access token the caller already holds. The token is
// not refreshed.
func (a *Authenticator) UserClient(ctx context.Context, accessToken string) (*UserClient, error) {
	if accessToken == "" {
		return nil, errors.New("missing access token")
	}
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	httpClient := oauth2.NewClient(ctx, source)
	httpClient.Timeout = a.timeout
	return NewUserClient(httpClient), nil
}

func (a *Authenticator) Connect(ctx context.Context, accessToken string) (exporter.Service, error) {
	return a.UserClient(ctx, accessToken)
}

// Identify returns the profile behind an access token.
func (a *Authenticator) Identify(ctx context.Context, accessToken string) (*Identity, error) {
	client, err := a.UserClient(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return client.CurrentUser(ctx)
}
