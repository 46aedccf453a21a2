package playlist

import (
	"context"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
)

// Catalog searches an external track index. Matches come back in the
// catalog's own relevance order.
type Catalog interface {
	SearchTracks(ctx context.Context, query string, limit int) ([]CatalogMatch, error)
}

// Resolver matches single candidates against a Catalog.
type Resolver struct {
	catalog Catalog
}

func NewResolver(catalog Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve issues one search for the candidate's line and accepts the first
// hit as-is. It never fails: catalog errors and empty results come back as
// an UnresolvedTrack.
func (r *Resolver) Resolve(ctx context.Context, candidate TrackCandidate) Outcome {
	logger := log.WithFields(log.Fields{
		"module": "playlist",
		"method": "Resolve",
		"index":  candidate.SequenceIndex,
	})

	span := sentry.StartSpan(ctx, "playlist.resolve_track")
	span.Description = candidate.OriginalLine
	defer span.Finish()

	matches, err := r.catalog.SearchTracks(span.Context(), candidate.OriginalLine, 1)
	if err != nil {
		logger.Warnf("catalog search failed for %q: %v", candidate.OriginalLine, err)
		span.Status = sentry.SpanStatusUnavailable
		return Outcome{Unresolved: &UnresolvedTrack{
			Candidate: candidate,
			Reason:    ServiceUnavailable,
			Error:     err.Error(),
		}}
	}

	if len(matches) == 0 {
		logger.Debugf("no catalog match for %q", candidate.OriginalLine)
		span.Status = sentry.SpanStatusNotFound
		return Outcome{Unresolved: &UnresolvedTrack{
			Candidate: candidate,
			Reason:    NoMatch,
			Error:     "track not found",
		}}
	}

	match := matches[0]
	logger.Tracef("resolved %q to %s (%s)", candidate.OriginalLine, match.ExternalID, match.Title)
	span.Status = sentry.SpanStatusOK

	artists := make([]string, len(match.Artists))
	copy(artists, match.Artists)

	return Outcome{Resolved: &ResolvedTrack{
		Candidate:   candidate,
		ExternalID:  match.ExternalID,
		Title:       match.Title,
		Artists:     artists,
		DurationMS:  match.DurationMS,
		PreviewURL:  match.PreviewURL,
		ExternalURL: match.ExternalURL,
	}}
}
