// Package exporter creates private playlists on the streaming service from
// resolved track ids.
package exporter

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"yogabeats/playlist"
	"yogabeats/sentryhelper"
)

// MaxItemsPerRequest is Spotify's ceiling for one add-items call.
const MaxItemsPerRequest = 100

type CreatedPlaylist struct {
	ID  string
	URL string
}

// Service is the per-user surface needed to build a playlist.
type Service interface {
	CurrentUserID(ctx context.Context) (string, error)
	CreatePlaylist(ctx context.Context, ownerID, name, description string, public bool) (CreatedPlaylist, error)
	AddItems(ctx context.Context, playlistID string, trackIDs []string) error
}

// Connector turns an opaque bearer credential into a Service.
type Connector interface {
	Connect(ctx context.Context, token string) (Service, error)
}

type Request struct {
	Name        string
	Description string
	ExternalIDs []string
}

type Result struct {
	PlaylistID string `json:"playlist_id"`
	URL        string `json:"playlist_url"`
	TrackCount int    `json:"track_count"`
}

type Exporter struct {
	connector Connector
}

func New(connector Connector) *Exporter {
	return &Exporter{connector: connector}
}

// Export creates a new private playlist and attaches the ids in order, in
// batches of at most MaxItemsPerRequest. Every call creates a new playlist.
func (e *Exporter) Export(ctx context.Context, request Request, token string) (*Result, error) {
	logger := log.WithFields(log.Fields{
		"module": "exporter",
		"method": "Export",
	})

	if strings.TrimSpace(request.Name) == "" {
		return nil, playlist.Validationf("playlist name is required")
	}

	ctx, transaction := sentryhelper.StartRequestTransaction(ctx, "export", map[string]string{
		"tracks_count": fmt.Sprint(len(request.ExternalIDs)),
	})
	defer transaction.Finish()

	fail := func(step string, err error) (*Result, error) {
		logger.Errorf("export failed at %s: %v", step, err)
		sentryhelper.CaptureException(ctx, err)
		return nil, playlist.NewError(playlist.ExportFailed, fmt.Errorf("%s: %w", step, err))
	}

	service, err := e.connector.Connect(ctx, token)
	if err != nil {
		return fail("connect", err)
	}

	ownerID, err := service.CurrentUserID(ctx)
	if err != nil {
		return fail("current user", err)
	}

	created, err := service.CreatePlaylist(ctx, ownerID, request.Name, request.Description, false)
	if err != nil {
		return fail("create playlist", err)
	}
	logger.Infof("created playlist %s for %s", created.ID, ownerID)

	for i, batch := range Batches(request.ExternalIDs, MaxItemsPerRequest) {
		if err := service.AddItems(ctx, created.ID, batch); err != nil {
			return fail(fmt.Sprintf("add items batch %d", i+1), err)
		}
		logger.Debugf("added batch %d (%d tracks) to %s", i+1, len(batch), created.ID)
	}

	return &Result{
		PlaylistID: created.ID,
		URL:        created.URL,
		TrackCount: len(request.ExternalIDs),
	}, nil
}

// Batches splits ids into consecutive chunks of at most size, keeping order.
func Batches(ids []string, size int) [][]string {
	var batches [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[start:end])
	}
	return batches
}
