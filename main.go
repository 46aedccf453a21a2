package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	sentry "github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	appConfig "yogabeats/config"
	"yogabeats/controller"
	"yogabeats/database"
	"yogabeats/exporter"
	"yogabeats/gemini"
	"yogabeats/handlers"
	"yogabeats/logger"
	"yogabeats/playlist"
	appSentry "yogabeats/sentry"
	"yogabeats/spotify"
)

func main() {
	dotenvErr := godotenv.Load()

	cfg := appConfig.NewConfig()
	logger.Init(cfg.Options.LogLevel)
	if dotenvErr != nil {
		log.Debugf("no .env file loaded: %v", dotenvErr)
	}
	appSentry.Init(cfg.Sentry)

	app := &cli.Command{
		Name:  "yogabeats",
		Usage: "Generate yoga class playlists and export them to Spotify",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServer(ctx, cfg, cfg.Options.Port)
		},
		Commands: []*cli.Command{
			serveCommand(cfg),
			generateCommand(cfg),
			resolveCommand(cfg),
			exportsCommand(cfg),
		},
	}

	err := app.Run(context.Background(), os.Args)
	if err != nil {
		appSentry.ReportError(err)
	}
	sentry.Flush(2 * time.Second)
	if err != nil {
		log.Fatalf("application error: %v", err)
	}
}

type services struct {
	resolver   *playlist.Orchestrator
	controller *controller.Controller
	status     handlers.Status
}

// newServices builds the generation and resolution pipeline. Missing Spotify
// or Gemini credentials degrade the pipeline instead of stopping it.
func newServices(ctx context.Context, cfg *appConfig.ConfigStruct) *services {
	var catalog playlist.Catalog
	spotifyCatalog, err := spotify.NewCatalog(ctx, cfg.Spotify)
	if err != nil {
		log.Warnf("Spotify catalog unavailable, tracks will not resolve: %v", err)
		catalog = spotify.UnavailableCatalog{Err: err}
	} else {
		catalog = spotifyCatalog
	}
	orchestrator := playlist.NewOrchestrator(playlist.NewResolver(catalog))

	// generator stays a nil interface unless Gemini is usable
	var generator controller.Generator
	geminiGenerator, err := gemini.NewGenerator(ctx, cfg.Gemini)
	switch {
	case errors.Is(err, gemini.ErrDisabled):
		log.Info("Gemini disabled, using fallback playlists")
	case err != nil:
		log.Warnf("Gemini unavailable, using fallback playlists: %v", err)
	default:
		generator = geminiGenerator
	}

	return &services{
		resolver:   orchestrator,
		controller: controller.NewController(generator, orchestrator),
		status: handlers.Status{
			GeminiEnabled:     generator != nil,
			SpotifyConfigured: spotifyCatalog != nil,
		},
	}
}

func serveCommand(cfg *appConfig.ConfigStruct) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "Port to listen on",
				Value: cfg.Options.Port,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServer(ctx, cfg, cmd.String("port"))
		},
	}
}

func runServer(ctx context.Context, cfg *appConfig.ConfigStruct, port string) error {
	store, err := database.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer store.Close()

	svc := newServices(ctx, cfg)
	authenticator := spotify.NewAuthenticator(cfg.Spotify)

	manager := &handlers.Manager{
		Generator: svc.controller,
		Resolver:  svc.resolver,
		Exporter:  exporter.New(authenticator),
		Account:   authenticator,
		Store:     store,
		States:    handlers.NewStates(),
		Status:    svc.status,
	}

	router := gin.Default()
	router.Use(appSentry.GetSentryGin())
	manager.Register(router)

	if port == "" {
		port = "8080"
	}
	log.Infof("Starting server on :%s", port)
	return http.ListenAndServe(":"+port, router)
}

func generateCommand(cfg *appConfig.ConfigStruct) *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate and resolve a playlist for one class",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "class",
				Usage:    "Class name",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "description",
				Usage: "Class description",
			},
			&cli.StringFlag{
				Name:  "preferences",
				Usage: "Music preferences",
			},
			&cli.IntFlag{
				Name:  "duration",
				Usage: "Class length in minutes",
				Value: 60,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc := newServices(ctx, cfg)
			generation, err := svc.controller.Generate(ctx, controller.GenerateRequest{
				ClassName:        cmd.String("class"),
				ClassDescription: cmd.String("description"),
				MusicPreferences: cmd.String("preferences"),
				DurationMinutes:  int(cmd.Int("duration")),
			})
			if err != nil {
				return err
			}

			if cmd.Bool("json") {
				return writeJSON(os.Stdout, map[string]interface{}{
					"playlist":        generation.PlaylistText,
					"resolution":      generation.Resolution,
					"source":          generation.Source.Kind,
					"fallback_reason": generation.Source.Reason,
				})
			}

			fmt.Println(generation.PlaylistText)
			fmt.Println()
			if generation.Source.Kind == controller.SourceFallback {
				fmt.Printf("Fallback playlist used: %s\n", generation.Source.Reason)
			}
			printResolution(os.Stdout, generation.Resolution)
			return nil
		},
	}
}

func resolveCommand(cfg *appConfig.ConfigStruct) *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "Resolve the tracks in a playlist text file (or - for stdin)",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.StringArg("path")
			if path == "" {
				return errors.New("a playlist file path is required")
			}

			var text []byte
			var err error
			if path == "-" {
				text, err = io.ReadAll(os.Stdin)
			} else {
				text, err = os.ReadFile(path)
			}
			if err != nil {
				return fmt.Errorf("error reading playlist: %w", err)
			}

			result := newServices(ctx, cfg).resolver.ResolvePlaylist(ctx, string(text))
			if cmd.Bool("json") {
				return writeJSON(os.Stdout, result)
			}
			printResolution(os.Stdout, result)
			return nil
		},
	}
}

func exportsCommand(cfg *appConfig.ConfigStruct) *cli.Command {
	return &cli.Command{
		Name:  "exports",
		Usage: "List recent playlist exports",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of exports to list",
				Value: 20,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			store, err := database.New(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("error opening database: %w", err)
			}
			defer store.Close()

			exports, err := store.ListExports(int(cmd.Int("limit")))
			if err != nil {
				return err
			}
			for _, e := range exports {
				fmt.Printf("%s  %-30s %3d tracks  %s\n", e.CreatedAt.Format(time.DateTime), e.PlaylistName, e.TrackCount, e.ExternalURL)
			}
			return nil
		},
	}
}

func printResolution(w io.Writer, result playlist.Result) {
	fmt.Fprintf(w, "Found %d of %d tracks\n", result.FoundCount(), result.TotalCandidates)
	for _, track := range result.Resolved {
		fmt.Fprintf(w, "  ✓ %s -> %s\n", track.Candidate.OriginalLine, track.ExternalID)
	}
	for _, track := range result.Unresolved {
		fmt.Fprintf(w, "  ✗ %s (%s)\n", track.Candidate.OriginalLine, track.Reason)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
