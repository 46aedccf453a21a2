package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/genai"

	"yogabeats/config"
	"yogabeats/playlist"
)

func TestNewGeneratorDisabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.GeminiConfig
	}{
		{"flag off", config.GeminiConfig{Enabled: false, APIKey: "key"}},
		{"no key", config.GeminiConfig{Enabled: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator(context.Background(), tt.cfg)
			if !errors.Is(err, ErrDisabled) {
				t.Errorf("NewGenerator() error = %v; want ErrDisabled", err)
			}
		})
	}
}

func TestBuildPlaylistRequest(t *testing.T) {
	got := BuildPlaylistRequest(PlaylistPrompt{
		ClassName:        "Yoga Sculpt",
		ClassDescription: "Fitness yoga with weights",
		MusicPreferences: "90s-00s hip-hop",
		DurationMinutes:  60,
	})
	for _, want := range []string{
		"Class Info: Yoga Sculpt: Fitness yoga with weights",
		"Duration: 60 minutes",
		"Teacher's Music Preferences: 90s-00s hip-hop",
		"first 15% of class",
		"final 15% of class",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("request missing %q:\n%s", want, got)
		}
	}
}

func TestBuildPlaylistRequestWithoutDescription(t *testing.T) {
	got := BuildPlaylistRequest(PlaylistPrompt{ClassName: "Yin", MusicPreferences: "ambient", DurationMinutes: 75})
	if !strings.Contains(got, "Class Info: Yin\n") {
		t.Errorf("expected bare class name, got:\n%s", got)
	}
}

func TestCuratorPromptTemplateExtracts(t *testing.T) {
	// the format example itself uses placeholder lines the extractor accepts
	if got := len(playlist.Extract(CuratorPrompt)); got != 8 {
		t.Errorf("Extract(CuratorPrompt) = %d candidates; want 8", got)
	}
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{Text: "thinking...", Thought: true},
				{Text: "**WARMUP (9 minutes)**\n"},
				{Text: "- Bon Iver - Holocene\n"},
			}}},
			{Content: nil},
		},
	}
	want := "**WARMUP (9 minutes)**\n- Bon Iver - Holocene"
	if got := responseText(resp); got != want {
		t.Errorf("responseText() = %q; want %q", got, want)
	}
	if got := responseText(nil); got != "" {
		t.Errorf("responseText(nil) = %q", got)
	}
}
