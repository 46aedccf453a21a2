package playlist

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Orchestrator runs extraction and resolution over a whole generated playlist.
type Orchestrator struct {
	resolver *Resolver
}

func NewOrchestrator(resolver *Resolver) *Orchestrator {
	return &Orchestrator{resolver: resolver}
}

// ResolvePlaylist extracts every candidate from text and resolves them one at
// a time in source order. Per-track failures land in Unresolved; they never
// abort the batch.
func (o *Orchestrator) ResolvePlaylist(ctx context.Context, text string) Result {
	logger := log.WithFields(log.Fields{
		"module": "playlist",
		"method": "ResolvePlaylist",
	})

	candidates := Extract(text)
	result := Result{
		TotalCandidates: len(candidates),
		Resolved:        []ResolvedTrack{},
		Unresolved:      []UnresolvedTrack{},
	}
	if len(candidates) == 0 {
		logger.Debug("no track lines found in playlist text")
		return result
	}

	for _, candidate := range candidates {
		outcome := o.resolver.Resolve(ctx, candidate)
		if outcome.Resolved != nil {
			result.Resolved = append(result.Resolved, *outcome.Resolved)
		} else {
			result.Unresolved = append(result.Unresolved, *outcome.Unresolved)
		}
	}

	result.ReadyForExport = len(result.Resolved) > 0
	logger.Infof("resolved %d of %d tracks", len(result.Resolved), result.TotalCandidates)
	return result
}
