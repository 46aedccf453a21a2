package spotify

import (
	"errors"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
)

type SpotifyRequest struct {
	TrackID    string
	PlaylistID string
	AlbumID    string
	ArtistID   string
}

var bareID = regexp.MustCompile(`^[0-9A-Za-z]+$`)

func ParseSpotifyURL(url string) (SpotifyRequest, error) {
	if strings.HasPrefix(url, "https://open.spotify.com/") {
		parts := strings.Split(url, "/")
		if len(parts) < 5 {
			log.Warnf("Invalid Spotify URL format (too few parts): %s", url)
			return SpotifyRequest{}, errors.New("invalid Spotify URL")
		}

		request := SpotifyRequest{}

		// Strip query parameters from ID (e.g., ?si=tracking_id)
		id := strings.Split(parts[4], "?")[0]

		switch parts[3] {
		case "playlist":
			request.PlaylistID = id
		case "album":
			request.AlbumID = id
		case "artist":
			request.ArtistID = id
		case "track":
			request.TrackID = id
		}

		return request, nil
	}

	log.Warnf("URL does not start with https://open.spotify.com/: %s", url)
	return SpotifyRequest{}, errors.New("invalid Spotify URL")
}

// ParseTrackID accepts a bare track id, a spotify:track: URI or an
// open.spotify.com track URL and returns the bare id.
func ParseTrackID(value string) (string, error) {
	value = strings.TrimSpace(value)

	switch {
	case strings.HasPrefix(value, "spotify:track:"):
		value = strings.TrimPrefix(value, "spotify:track:")
	case strings.HasPrefix(value, "https://open.spotify.com/"):
		request, err := ParseSpotifyURL(value)
		if err != nil {
			return "", err
		}
		if request.TrackID == "" {
			return "", errors.New("not a Spotify track URL")
		}
		value = request.TrackID
	}

	if !bareID.MatchString(value) {
		return "", errors.New("invalid Spotify track id")
	}
	return value, nil
}
