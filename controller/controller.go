package controller

import (
	"context"
	"errors"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"yogabeats/gemini"
	"yogabeats/helpers"
	"yogabeats/playlist"
	"yogabeats/sentryhelper"
)

// MaxDurationMinutes bounds a single class.
const MaxDurationMinutes = 300

type SourceKind string

const (
	SourcePrimary  SourceKind = "primary"
	SourceFallback SourceKind = "fallback"
)

// Source records which path produced the playlist text. Reason holds the
// generation error message on the fallback path.
type Source struct {
	Kind   SourceKind
	Reason string
}

// Generator produces raw playlist text. Any error, including "disabled",
// sends the controller down the fallback path.
type Generator interface {
	GeneratePlaylist(ctx context.Context, prompt gemini.PlaylistPrompt) (string, error)
}

// PlaylistResolver turns playlist text into resolved tracks.
type PlaylistResolver interface {
	ResolvePlaylist(ctx context.Context, text string) playlist.Result
}

type GenerateRequest struct {
	ClassName        string
	ClassDescription string
	MusicPreferences string
	DurationMinutes  int
}

type Generation struct {
	PlaylistText string
	Resolution   playlist.Result
	Source       Source
}

type Controller struct {
	generator Generator
	resolver  PlaylistResolver
}

// NewController wires the generation and resolution collaborators. A nil
// generator means every request uses the fallback playlist.
func NewController(generator Generator, resolver PlaylistResolver) *Controller {
	return &Controller{
		generator: generator,
		resolver:  resolver,
	}
}

// Generate produces playlist text and resolves it. Only invalid input is an
// error; a failed generation falls back to the static genre playlists.
func (c *Controller) Generate(ctx context.Context, request GenerateRequest) (*Generation, error) {
	logger := log.WithFields(log.Fields{
		"module":    "controller",
		"method":    "Generate",
		"className": request.ClassName,
	})

	if err := validate(request); err != nil {
		return nil, err
	}

	preferences := strings.TrimSpace(request.MusicPreferences)
	if preferences == "" {
		preferences = helpers.DefaultMusicPreferences
	}

	ctx, transaction := sentryhelper.StartRequestTransaction(ctx, "generate", map[string]string{
		"class_name": request.ClassName,
		"duration":   strconv.Itoa(request.DurationMinutes),
	})
	defer transaction.Finish()

	prompt := gemini.PlaylistPrompt{
		ClassName:        strings.TrimSpace(request.ClassName),
		ClassDescription: strings.TrimSpace(request.ClassDescription),
		MusicPreferences: preferences,
		DurationMinutes:  request.DurationMinutes,
	}

	text, source := c.playlistText(ctx, prompt)
	if source.Kind == SourceFallback {
		logger.Warnf("generation failed, using fallback playlist: %s", source.Reason)
		sentryhelper.CaptureMessage(ctx, "playlist generation fell back: "+source.Reason)
	}
	sentryhelper.AddBreadcrumb(ctx, "generate", "playlist text ready", map[string]interface{}{
		"source": string(source.Kind),
	})

	resolution := c.resolver.ResolvePlaylist(ctx, text)
	transaction.SetData("resolved_count", len(resolution.Resolved))
	transaction.SetData("unresolved_count", len(resolution.Unresolved))

	return &Generation{
		PlaylistText: text,
		Resolution:   resolution,
		Source:       source,
	}, nil
}

func (c *Controller) playlistText(ctx context.Context, prompt gemini.PlaylistPrompt) (string, Source) {
	if c.generator == nil {
		return c.fallback(prompt, playlist.NewError(playlist.GenerationError, gemini.ErrDisabled))
	}

	text, err := c.generator.GeneratePlaylist(ctx, prompt)
	if err != nil {
		return c.fallback(prompt, playlist.NewError(playlist.GenerationError, err))
	}
	if strings.TrimSpace(text) == "" {
		return c.fallback(prompt, playlist.NewError(playlist.GenerationError, errors.New("generator returned no text")))
	}
	return text, Source{Kind: SourcePrimary}
}

func (c *Controller) fallback(prompt gemini.PlaylistPrompt, err error) (string, Source) {
	text := helpers.BuildFallbackPlaylist(prompt.MusicPreferences, prompt.DurationMinutes)
	return text, Source{Kind: SourceFallback, Reason: err.Error()}
}

func validate(request GenerateRequest) error {
	if strings.TrimSpace(request.ClassName) == "" {
		return playlist.Validationf("class_name is required")
	}
	if request.DurationMinutes <= 0 {
		return playlist.Validationf("duration must be a positive number of minutes")
	}
	if request.DurationMinutes > MaxDurationMinutes {
		return playlist.Validationf("duration must be at most %d minutes", MaxDurationMinutes)
	}
	return nil
}
