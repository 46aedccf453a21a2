package spotify

import (
	"time"

	"yogabeats/config"
)

func testSpotifyConfig() config.SpotifyConfig {
	return config.SpotifyConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURI:  "http://localhost:8080/api/spotify/callback",
		SearchRate:   10,
		Timeout:      5 * time.Second,
	}
}
