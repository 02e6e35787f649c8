package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jayden-chan/rtiow/pkg/loaders"
	"github.com/jayden-chan/rtiow/pkg/scene"
)

const (
	// DefaultTileSize is the tile edge used for web renders
	DefaultTileSize = 64

	defaultScene    = "cornell"
	minDimension    = 16
	maxDimension    = 2000
	maxSamples      = 10000
	maxPasses       = 100
	maxDepthLimit   = 100
	jsonScenePrefix = "json:"
)

// Server handles web requests for the path tracer
type Server struct {
	port      int
	scenesDir string
	echo      *echo.Echo
}

// NewServer creates a new web server that also serves the JSON scenes in scenesDir
func NewServer(port int, scenesDir string) *Server {
	s := &Server{port: port, scenesDir: scenesDir}

	e := echo.New()
	e.HideBanner = true
	e.Use(corsMiddleware)

	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/scene-config", s.handleSceneConfig)
	e.GET("/api/render", s.handleRender)
	e.GET("/api/image", s.handleImage)
	e.GET("/api/inspect", s.handleInspect)

	s.echo = e
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for active ones, including renders, to finish
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

// RenderRequest represents a render request from the client. Zero width,
// height, samples or depth keep the scene's own setting.
type RenderRequest struct {
	Scene      string `json:"scene"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	MaxSamples int    `json:"maxSamples"`
	MaxPasses  int    `json:"maxPasses"`
	MaxDepth   int    `json:"maxDepth"`
	Seed       int64  `json:"seed"`
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and the scene files in the scenes directory
func (s *Server) handleScenes(c echo.Context) error {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, response)
}

// handleSceneConfig returns the default configuration for a scene with validation limits
func (s *Server) handleSceneConfig(c echo.Context) error {
	sceneName := c.QueryParam("scene")
	if sceneName == "" {
		sceneName = defaultScene
	}

	sceneObj, err := s.loadScene(sceneName)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	config := sceneObj.SamplingConfig
	return c.JSON(http.StatusOK, map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"height":          config.Height,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
			"lights":          len(sceneObj.Lights),
			"primitives":      sceneObj.GetPrimitiveCount(),
		},
		"limits": map[string]interface{}{
			"width":      map[string]int{"min": minDimension, "max": maxDimension},
			"height":     map[string]int{"min": minDimension, "max": maxDimension},
			"maxSamples": map[string]int{"min": 1, "max": maxSamples},
			"maxPasses":  map[string]int{"min": 1, "max": maxPasses},
			"maxDepth":   map[string]int{"min": 1, "max": maxDepthLimit},
		},
	})
}

// parseRenderRequest parses and validates render query parameters
func (s *Server) parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = defaultScene
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, minDimension, maxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, minDimension, maxDimension); err != nil {
		return nil, err
	}
	if req.MaxSamples, err = parseIntParam(values, "maxSamples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxPasses, err = parseIntParam(values, "maxPasses", 7, 1, maxPasses); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "maxDepth", 0, 1, maxDepthLimit); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(values, "seed", 42, 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	if req.Width*req.Height > 800*600 && req.MaxSamples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// loadScene builds a built-in scene or a "json:<name>" scene from the scenes directory
func (s *Server) loadScene(name string) (*scene.Scene, error) {
	if fileName, ok := strings.CutPrefix(name, jsonScenePrefix); ok {
		if fileName == "" || fileName != filepath.Base(fileName) {
			return nil, fmt.Errorf("invalid scene file name %q", fileName)
		}
		return loaders.LoadSceneJSON(filepath.Join(s.scenesDir, fileName+".json"))
	}
	return scene.NewBuiltIn(name)
}

// createScene loads the requested scene, applies the request's overrides and preprocesses it
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := s.loadScene(req.Scene)
	if err != nil {
		return nil, err
	}

	if req.Width > 0 || req.Height > 0 {
		width, height := sceneObj.SamplingConfig.Width, sceneObj.SamplingConfig.Height
		if req.Width > 0 {
			width = req.Width
		}
		if req.Height > 0 {
			height = req.Height
		}
		sceneObj.SetImageSize(width, height)
	}
	if req.MaxSamples > 0 {
		sceneObj.SamplingConfig.SamplesPerPixel = req.MaxSamples
	}
	if req.MaxDepth > 0 {
		sceneObj.SamplingConfig.MaxDepth = req.MaxDepth
	}

	if err := sceneObj.Preprocess(); err != nil {
		return nil, fmt.Errorf("failed to prepare scene %q: %w", req.Scene, err)
	}
	return sceneObj, nil
}
