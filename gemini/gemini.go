package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"yogabeats/config"
)

// ErrDisabled is returned when generation is switched off by configuration.
var ErrDisabled = errors.New("gemini generation is disabled")

// PlaylistPrompt carries the class details a playlist is generated for.
type PlaylistPrompt struct {
	ClassName        string
	ClassDescription string
	MusicPreferences string
	DurationMinutes  int
}

// Generator produces playlist text with Gemini.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator returns a Generator, or ErrDisabled when Gemini is not
// configured. Callers treat a disabled generator as a generation failure.
func NewGenerator(ctx context.Context, cfg config.GeminiConfig) (*Generator, error) {
	if !cfg.IsEnabled() {
		return nil, ErrDisabled
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Generator{client: client, model: cfg.Model}, nil
}

// GeneratePlaylist asks the model for a structured playlist. An empty reply
// is an error.
func (g *Generator) GeneratePlaylist(ctx context.Context, prompt PlaylistPrompt) (string, error) {
	logger := log.WithFields(log.Fields{"module": "gemini", "method": "GeneratePlaylist"})

	span := sentry.StartSpan(ctx, "gemini.generate")
	span.Description = "Generate playlist with Gemini"
	span.SetTag("model", g.model)
	span.SetTag("class_name", prompt.ClassName)
	defer span.Finish()

	resp, err := g.client.Models.GenerateContent(span.Context(), g.model, genai.Text(BuildPlaylistRequest(prompt)), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(CuratorPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.7),
	})
	if err != nil {
		logger.Errorf("failed to generate content: %v", err)
		span.Status = sentry.SpanStatusInternalError
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		span.Status = sentry.SpanStatusNotFound
		return "", errors.New("gemini returned an empty playlist")
	}

	span.Status = sentry.SpanStatusOK
	logger.Debugf("generated %d bytes of playlist text", len(text))
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && !part.Thought {
				sb.WriteString(part.Text)
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// BuildPlaylistRequest renders the per-class request sent alongside CuratorPrompt.
func BuildPlaylistRequest(prompt PlaylistPrompt) string {
	classInfo := prompt.ClassName
	if prompt.ClassDescription != "" {
		classInfo = fmt.Sprintf("%s: %s", prompt.ClassName, prompt.ClassDescription)
	}

	return fmt.Sprintf(`Create a complete start-to-finish playlist for this yoga class:

Class Info: %s
Duration: %d minutes
Teacher's Music Preferences: %s

Provide a structured playlist with these sections:
1. WARMUP (first 15%% of class)
2. FLOW/ACTIVE (next 45%% of class)
3. PEAK (next 25%% of class)
4. COOLDOWN/SAVASANA (final 15%% of class)

For each section, provide:
- Duration in minutes
- 3-5 specific track suggestions with Artist - Song Title
- Target BPM range
- Brief energy description

Make the track suggestions as specific as possible based on the music preferences.`,
		classInfo, prompt.DurationMinutes, prompt.MusicPreferences)
}
