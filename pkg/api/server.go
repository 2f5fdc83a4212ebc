// Package api provides the REST API server for jazzgen
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/jcalhoun/jazzgen/pkg/render"
	"github.com/jcalhoun/jazzgen/pkg/solo"
	"github.com/jcalhoun/jazzgen/pkg/songbook"
	"github.com/jcalhoun/jazzgen/pkg/theory"
)

// @title Jazzgen API
// @version 1.0
// @description API for generating jazz solo and comping MIDI files
// @host localhost:8080
// @BasePath /api/v1

// StartServer starts the API server on the specified port
func StartServer(port int) error {
	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/songs", listSongs)
		v1.POST("/generate", handleGenerate)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r.Run(fmt.Sprintf(":%d", port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "jazzgen",
	})
}

// listSongs godoc
// @Summary List built-in songs
// @Description Returns the built-in harmonic forms available for generation
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/v1/songs [get]
func listSongs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"songs": songbook.Names(),
	})
}

// GenerateRequest is the JSON body accepted by the generate endpoint.
type GenerateRequest struct {
	Song        string  `json:"song"`
	Choruses    int     `json:"choruses"`
	Tempo       float64 `json:"tempo"`
	LowestNote  int     `json:"lowest_note"`
	HighestNote int     `json:"highest_note"`
	Fill        string  `json:"fill"`
	Comping     *bool   `json:"comping"`
	TieRepeats  bool    `json:"tie_repeats"`
	Seed        int64   `json:"seed"`
}

// handleGenerate godoc
// @Summary Generate a solo and comping performance
// @Description Generates a jazz performance over a built-in song and returns it as a MIDI file
// @Tags generate
// @Accept json
// @Produce audio/midi
// @Param request body GenerateRequest true "Generation settings"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /api/v1/generate [post]
func handleGenerate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Song == "" {
		req.Song = "giant-steps"
	}
	song, err := songbook.Get(req.Song)
	if err != nil {
		if errors.Is(err, songbook.ErrUnknownSong) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := solo.DefaultConfig()
	if req.Choruses > 0 {
		cfg.Choruses = req.Choruses
	}
	if req.Tempo > 0 {
		cfg.Tempo = req.Tempo
	}
	if req.LowestNote > 0 {
		cfg.LowestNote = theory.Pitch(req.LowestNote)
	}
	if req.HighestNote > 0 {
		cfg.HighestNote = theory.Pitch(req.HighestNote)
	}
	if req.Fill != "" {
		fill, err := solo.ParseFillPolicy(req.Fill)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cfg.Fill = fill
	}
	if req.Comping != nil {
		cfg.WithComping = *req.Comping
	}
	cfg.Seed = req.Seed

	perf, err := solo.Generate(song, cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	data, err := render.MIDI(perf, render.Options{TieRepeats: req.TieRepeats})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := strings.ReplaceAll(strings.ToLower(perf.Name), " ", "-") + ".mid"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "audio/midi", data)
}
