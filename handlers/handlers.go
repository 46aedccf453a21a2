package handlers

// handlers expose the playlist pipeline over HTTP. They bind and validate
// the request, call into the controller or exporter, and map typed errors
// onto status codes.

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"yogabeats/controller"
	"yogabeats/database"
	"yogabeats/exporter"
	"yogabeats/pages"
	"yogabeats/playlist"
	"yogabeats/sentryhelper"
	"yogabeats/spotify"
)

const defaultPlaylistDescription = "Generated by yogabeats"

type Generator interface {
	Generate(ctx context.Context, request controller.GenerateRequest) (*controller.Generation, error)
}

type Exporter interface {
	Export(ctx context.Context, request exporter.Request, token string) (*exporter.Result, error)
}

// Account covers the user-facing half of the Spotify integration.
type Account interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Identify(ctx context.Context, accessToken string) (*spotify.Identity, error)
}

type Status struct {
	GeminiEnabled     bool
	SpotifyConfigured bool
}

type Manager struct {
	Generator Generator
	Resolver  controller.PlaylistResolver
	Exporter  Exporter
	Account   Account
	Store     *database.Database
	States    *States
	Status    Status
}

type generateRequest struct {
	ClassName        string `json:"class_name" binding:"required"`
	ClassDescription string `json:"class_description"`
	MusicPreferences string `json:"music_preferences"`
	Duration         int    `json:"duration"`
}

type searchRequest struct {
	PlaylistText string `json:"playlist_text" binding:"required"`
}

type createPlaylistRequest struct {
	PlaylistName string   `json:"playlist_name" binding:"required"`
	TrackIDs     []string `json:"track_ids" binding:"required"`
	Description  string   `json:"description"`
}

type classRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description" binding:"required"`
	TypicalDuration *int    `json:"typical_duration"`
	EnergyLevel     *string `json:"energy_level"`
	MusicStyleNotes *string `json:"music_style_notes"`
}

type importRequest struct {
	Text string `json:"text" binding:"required"`
}

// spotifyIntegration is the resolution result plus the derived fields the
// page needs for export.
type spotifyIntegration struct {
	playlist.Result
	TrackIDs    []string `json:"track_ids"`
	FoundCount  int      `json:"found_count"`
	FailedCount int      `json:"failed_count"`
}

func newSpotifyIntegration(result playlist.Result) spotifyIntegration {
	return spotifyIntegration{
		Result:      result,
		TrackIDs:    result.TrackIDs(),
		FoundCount:  result.FoundCount(),
		FailedCount: result.FailedCount(),
	}
}

// Register mounts every route on the router.
func (manager *Manager) Register(router gin.IRouter) {
	router.GET("/", manager.handleIndex)

	api := router.Group("/api")
	api.GET("/health", manager.handleHealth)
	api.GET("/classes", manager.handleListClasses)
	api.POST("/classes", manager.handleCreateClass)
	api.POST("/classes/import", manager.handleImportClasses)
	api.POST("/generate-playlist", manager.handleGeneratePlaylist)
	api.POST("/spotify-search", manager.handleSpotifySearch)
	api.POST("/create-spotify-playlist", manager.handleCreatePlaylist)
	api.GET("/test-spotify", manager.handleTestSpotify)
	api.GET("/spotify/login", manager.handleSpotifyLogin)
	api.GET("/spotify/callback", manager.handleSpotifyCallback)
}

func (manager *Manager) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(pages.Index))
}

func (manager *Manager) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"status":             "healthy",
		"service":            "yogabeats",
		"gemini_enabled":     manager.Status.GeminiEnabled,
		"spotify_configured": manager.Status.SpotifyConfigured,
	})
}

func (manager *Manager) handleListClasses(c *gin.Context) {
	classes, err := manager.Store.SearchClassTypes(c.Query("q"))
	if err != nil {
		manager.storeError(c, "handleListClasses", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"classes": classes,
		"total":   len(classes),
	})
}

func (manager *Manager) handleCreateClass(c *gin.Context) {
	var request classRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, err.Error())
		return
	}

	class, err := manager.Store.CreateClassType(database.ClassType{
		Name:            request.Name,
		Description:     request.Description,
		TypicalDuration: request.TypicalDuration,
		EnergyLevel:     request.EnergyLevel,
		MusicStyleNotes: request.MusicStyleNotes,
	})
	if errors.Is(err, database.ErrDuplicateClass) {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
		return
	}
	if errors.Is(err, database.ErrInvalidClass) {
		badRequest(c, err.Error())
		return
	}
	if err != nil {
		manager.storeError(c, "handleCreateClass", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"class":   class,
	})
}

// handleImportClasses stores every "Name: Description" listing found in a
// block of free text. Classes that already exist are skipped.
func (manager *Manager) handleImportClasses(c *gin.Context) {
	var request importRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, err.Error())
		return
	}

	imported := []database.ClassType{}
	skipped := []string{}
	for _, listing := range playlist.ExtractClassListings(request.Text) {
		class, err := manager.Store.CreateClassType(database.ClassType{
			Name:        listing.Name,
			Description: listing.Description,
		})
		if errors.Is(err, database.ErrDuplicateClass) {
			skipped = append(skipped, listing.Name)
			continue
		}
		if err != nil {
			manager.storeError(c, "handleImportClasses", err)
			return
		}
		imported = append(imported, *class)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"imported": imported,
		"skipped":  skipped,
		"total":    len(imported),
	})
}

func (manager *Manager) handleGeneratePlaylist(c *gin.Context) {
	logger := log.WithFields(log.Fields{
		"module": "handlers",
		"method": "handleGeneratePlaylist",
	})

	var request generateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, err.Error())
		return
	}

	description := strings.TrimSpace(request.ClassDescription)
	if description == "" {
		if class, err := manager.Store.GetClassType(request.ClassName); err == nil {
			description = class.Description
		} else if !errors.Is(err, database.ErrClassNotFound) {
			logger.Warnf("class lookup failed for %s: %v", request.ClassName, err)
		}
	}

	generation, err := manager.Generator.Generate(c.Request.Context(), controller.GenerateRequest{
		ClassName:        request.ClassName,
		ClassDescription: description,
		MusicPreferences: request.MusicPreferences,
		DurationMinutes:  request.Duration,
	})
	if err != nil {
		manager.pipelineError(c, err)
		return
	}

	response := gin.H{
		"success":             true,
		"playlist":            generation.PlaylistText,
		"spotify_integration": newSpotifyIntegration(generation.Resolution),
		"ready_for_export":    generation.Resolution.ReadyForExport,
		"source":              string(generation.Source.Kind),
	}
	if generation.Source.Kind == controller.SourceFallback {
		response["fallback_reason"] = generation.Source.Reason
	}

	logger.Infof("generated playlist for %s: %d/%d tracks found (%s)",
		request.ClassName, generation.Resolution.FoundCount(), generation.Resolution.TotalCandidates, generation.Source.Kind)
	c.JSON(http.StatusOK, response)
}

func (manager *Manager) handleSpotifySearch(c *gin.Context) {
	var request searchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, err.Error())
		return
	}

	result := manager.Resolver.ResolvePlaylist(c.Request.Context(), request.PlaylistText)
	integration := newSpotifyIntegration(result)

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"spotify_integration": integration,
		"ready_for_export":    result.ReadyForExport,
	})
}

func (manager *Manager) handleCreatePlaylist(c *gin.Context) {
	logger := log.WithFields(log.Fields{
		"module": "handlers",
		"method": "handleCreatePlaylist",
	})

	token, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		unauthorized(c)
		return
	}

	var request createPlaylistRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, err.Error())
		return
	}

	ids := make([]string, 0, len(request.TrackIDs))
	for _, value := range request.TrackIDs {
		id, err := spotify.ParseTrackID(value)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		ids = append(ids, id)
	}

	description := strings.TrimSpace(request.Description)
	if description == "" {
		description = defaultPlaylistDescription
	}

	result, err := manager.Exporter.Export(c.Request.Context(), exporter.Request{
		Name:        request.PlaylistName,
		Description: description,
		ExternalIDs: ids,
	}, token)
	if err != nil {
		manager.pipelineError(c, err)
		return
	}

	// The playlist already exists at this point, so a failed log write is
	// reported but does not fail the request.
	if _, err := manager.Store.RecordExport(request.PlaylistName, result.PlaylistID, result.URL, result.TrackCount); err != nil {
		logger.Errorf("failed to record export %s: %v", result.PlaylistID, err)
		sentryhelper.CaptureException(c.Request.Context(), err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"playlist_id":  result.PlaylistID,
		"playlist_url": result.URL,
		"track_count":  result.TrackCount,
	})
}

func (manager *Manager) handleTestSpotify(c *gin.Context) {
	token, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		unauthorized(c)
		return
	}

	identity, err := manager.Account.Identify(c.Request.Context(), token)
	if err != nil {
		log.WithFields(log.Fields{
			"module": "handlers",
			"method": "handleTestSpotify",
		}).Warnf("spotify identity check failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"success":   false,
			"connected": false,
			"error":     err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"connected":    true,
		"user_id":      identity.ID,
		"display_name": identity.DisplayName,
	})
}

func (manager *Manager) handleSpotifyLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, manager.Account.AuthURL(manager.States.Issue()))
}

func (manager *Manager) handleSpotifyCallback(c *gin.Context) {
	if reason := c.Query("error"); reason != "" {
		badRequest(c, "spotify authorization denied: "+reason)
		return
	}
	if !manager.States.Consume(c.Query("state")) {
		badRequest(c, "invalid or expired oauth state")
		return
	}

	token, err := manager.Account.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		log.WithFields(log.Fields{
			"module": "handlers",
			"method": "handleSpotifyCallback",
		}).Errorf("token exchange failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"access_token": token.AccessToken,
		"token_type":   token.Type(),
		"expires_at":   token.Expiry,
	})
}

// pipelineError maps playlist error kinds onto status codes.
func (manager *Manager) pipelineError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case playlist.IsKind(err, playlist.ValidationError):
		status = http.StatusBadRequest
	case playlist.IsKind(err, playlist.ExportFailed):
		status = http.StatusBadGateway
	}

	if status != http.StatusBadRequest {
		log.WithFields(log.Fields{
			"module": "handlers",
			"method": "pipelineError",
			"path":   c.FullPath(),
		}).Errorf("request failed: %v", err)
		sentryhelper.CaptureException(c.Request.Context(), err)
	}

	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

func (manager *Manager) storeError(c *gin.Context, method string, err error) {
	log.WithFields(log.Fields{
		"module": "handlers",
		"method": method,
	}).Errorf("store error: %v", err)
	sentryhelper.CaptureException(c.Request.Context(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": message})
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing bearer token"})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
