package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	spotifyclient "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"yogabeats/config"
	"yogabeats/playlist"
)

// Catalog searches the Spotify track index with app-level (client credentials) auth.
type Catalog struct {
	client  *spotifyclient.Client
	limiter *rate.Limiter
	market  string
}

func NewCatalog(ctx context.Context, cfg config.SpotifyConfig) (*Catalog, error) {
	if !cfg.HasCredentials() {
		return nil, errors.New("SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET must be set")
	}

	credentials := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}

	base := &http.Client{Timeout: cfg.Timeout}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)

	// fail fast on bad credentials rather than on the first search
	if _, err := credentials.Token(ctx); err != nil {
		sentry.CaptureException(err)
		return nil, fmt.Errorf("failed to get spotify token: %w", err)
	}

	httpClient := credentials.Client(ctx)
	httpClient.Timeout = cfg.Timeout

	return newCatalog(spotifyclient.New(httpClient), cfg.SearchRate, cfg.Market), nil
}

func newCatalog(client *spotifyclient.Client, searchRate float64, market string) *Catalog {
	return &Catalog{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(searchRate), 1),
		market:  market,
	}
}

// SearchTracks returns up to limit track matches for the free-text query,
// in Spotify's relevance order.
func (c *Catalog) SearchTracks(ctx context.Context, query string, limit int) ([]playlist.CatalogMatch, error) {
	span := sentry.StartSpan(ctx, "spotify.search")
	span.Description = "Search Spotify API"
	span.SetTag("query", query)
	defer span.Finish()

	if err := c.limiter.Wait(ctx); err != nil {
		span.Status = sentry.SpanStatusResourceExhausted
		return nil, fmt.Errorf("search rate limiter: %w", err)
	}

	opts := []spotifyclient.RequestOption{spotifyclient.Limit(limit)}
	if c.market != "" {
		opts = append(opts, spotifyclient.Market(c.market))
	}

	results, err := c.client.Search(span.Context(), query, spotifyclient.SearchTypeTrack, opts...)
	if err != nil {
		log.Errorf("Spotify search failed for %q: %v", query, err)
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, err
	}

	matches := []playlist.CatalogMatch{}
	if results.Tracks != nil {
		for _, track := range results.Tracks.Tracks {
			matches = append(matches, toCatalogMatch(track))
		}
	}

	span.Status = sentry.SpanStatusOK
	span.SetData("matches_count", len(matches))
	return matches, nil
}

func toCatalogMatch(track spotifyclient.FullTrack) playlist.CatalogMatch {
	artists := make([]string, 0, len(track.Artists))
	for _, artist := range track.Artists {
		artists = append(artists, artist.Name)
	}

	match := playlist.CatalogMatch{
		ExternalID: string(track.ID),
		Title:      track.Name,
		Artists:    artists,
	}
	if duration := int(track.Duration); duration > 0 {
		match.DurationMS = &duration
	}
	if track.PreviewURL != "" {
		preview := track.PreviewURL
		match.PreviewURL = &preview
	}
	if url, ok := track.ExternalURLs["spotify"]; ok && url != "" {
		match.ExternalURL = &url
	}
	return match
}

// UnavailableCatalog answers every search with Err. It stands in when the
// real catalog could not be built so each track reports service_unavailable.
type UnavailableCatalog struct {
	Err error
}

func (u UnavailableCatalog) SearchTracks(ctx context.Context, query string, limit int) ([]playlist.CatalogMatch, error) {
	return nil, u.Err
}
