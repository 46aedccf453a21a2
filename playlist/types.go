package playlist

// TrackCandidate is a single "Artist - Title" line pulled from generated text.
type TrackCandidate struct {
	OriginalLine  string `json:"original_line"`
	SequenceIndex int    `json:"sequence_index"`
}

// ResolvedTrack is a candidate matched against the catalog.
type ResolvedTrack struct {
	Candidate   TrackCandidate `json:"candidate"`
	ExternalID  string         `json:"external_id"`
	Title       string         `json:"title"`
	Artists     []string       `json:"artists"`
	DurationMS  *int           `json:"duration_ms,omitempty"`
	PreviewURL  *string        `json:"preview_url,omitempty"`
	ExternalURL *string        `json:"external_url,omitempty"`
}

// UnresolvedTrack is a candidate that could not be matched.
type UnresolvedTrack struct {
	Candidate TrackCandidate `json:"candidate"`
	Reason    ErrorKind      `json:"reason"`
	Error     string         `json:"error,omitempty"`
}

// Outcome holds exactly one of Resolved or Unresolved.
type Outcome struct {
	Resolved   *ResolvedTrack
	Unresolved *UnresolvedTrack
}

// index is the candidate's position in the source text.
func (o Outcome) index() int {
	if o.Resolved != nil {
		return o.Resolved.Candidate.SequenceIndex
	}
	return o.Unresolved.Candidate.SequenceIndex
}

// Result aggregates the outcome of resolving a whole playlist.
type Result struct {
	TotalCandidates int               `json:"total_candidates"`
	Resolved        []ResolvedTrack   `json:"resolved"`
	Unresolved      []UnresolvedTrack `json:"unresolved"`
	ReadyForExport  bool              `json:"ready_for_export"`
}

// TrackIDs returns the external ids of resolved tracks in playlist order.
func (r Result) TrackIDs() []string {
	ids := make([]string, 0, len(r.Resolved))
	for _, track := range r.Resolved {
		ids = append(ids, track.ExternalID)
	}
	return ids
}

func (r Result) FoundCount() int {
	return len(r.Resolved)
}

func (r Result) FailedCount() int {
	return len(r.Unresolved)
}

// CatalogMatch is one ranked search hit from the external catalog.
type CatalogMatch struct {
	ExternalID  string
	Title       string
	Artists     []string
	DurationMS  *int
	PreviewURL  *string
	ExternalURL *string
}
