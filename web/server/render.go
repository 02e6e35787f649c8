package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jayden-chan/rtiow/pkg/core"
	"github.com/jayden-chan/rtiow/pkg/renderer"
	"github.com/jayden-chan/rtiow/pkg/scene"
)

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX       int    `json:"tileX"`
	TileY       int    `json:"tileY"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG of just this tile
	PassNumber  int    `json:"passNumber"`
	TileNumber  int    `json:"tileNumber"`
	TotalTiles  int    `json:"totalTiles"`
	TotalPasses int    `json:"totalPasses"`
}

// SSEEvent is one event queued for the single SSE writer
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "passComplete", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// RenderingPipeline contains the configured scene and raytracer
type RenderingPipeline struct {
	Scene     *scene.Scene
	Raytracer *renderer.ProgressiveRaytracer
}

// handleRender streams a progressive render as Server-Sent Events
func (s *Server) handleRender(c echo.Context) error {
	w := c.Response()
	setSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	ctx := c.Request().Context()
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		writeSSEEvents(ctx, w, sseEventChan)
	}()

	// Closing the channel lets the writer drain queued events before the handler returns
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(c.QueryParams())
	if err != nil {
		sendEvent(ctx, sseEventChan, SSEEvent{Type: "error", Data: fmt.Sprintf("Invalid request: %v", err)})
		return nil
	}

	// The render goroutine may still log after the handler returns, so the console channel is never closed
	consoleChan, webLogger := setupConsoleLogging()
	stopConsole := make(chan struct{})
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		streamConsoleMessages(stopConsole, consoleChan, sseEventChan)
	}()
	defer func() {
		close(stopConsole)
		<-consoleDone
	}()

	pipeline, err := s.setupRenderingPipeline(req, webLogger)
	if err != nil {
		sendEvent(ctx, sseEventChan, SSEEvent{Type: "error", Data: err.Error()})
		return nil
	}

	startTime := time.Now()
	passChan, tileChan, errChan := pipeline.Raytracer.RenderProgressive(ctx, renderer.RenderOptions{TileUpdates: true})
	s.handleRenderingEvents(ctx, sseEventChan, passChan, tileChan, errChan, pipeline.Scene, req, startTime)
	return nil
}

// handleImage renders a scene to completion and returns it as a PNG
func (s *Server) handleImage(c echo.Context) error {
	req, err := s.parseRenderRequest(c.QueryParams())
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	img, stats, err := renderer.RenderImage(c.Request().Context(), sceneObj, s.progressiveConfig(req, sceneObj), core.NopLogger{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	data, err := encodePNG(img)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	c.Response().Header().Set("X-Average-Samples", fmt.Sprintf("%.1f", stats.AverageSamples))
	return c.Blob(http.StatusOK, "image/png", data)
}

func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// setupConsoleLogging creates the console channel and web logger for a render
func setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

// writeSSEEvents is the only goroutine that writes to the response
func writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}
			if ctx.Err() != nil {
				continue // keep draining so senders never block
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				continue
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			// Client disconnected; drain until the handler closes the channel
			for range sseEventChan {
			}
			return
		}
	}
}

// streamConsoleMessages forwards logger output as console events until stop is closed,
// dropping messages when the event queue is full
func streamConsoleMessages(stop <-chan struct{}, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for {
		select {
		case consoleMsg := <-consoleChan:
			data, err := json.Marshal(consoleMsg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}

			select {
			case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			default:
			}

		case <-stop:
			return
		}
	}
}

// sendEvent queues an event unless the client has gone away
func sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, event SSEEvent) {
	select {
	case sseEventChan <- event:
	case <-ctx.Done():
	}
}

func (s *Server) progressiveConfig(req *RenderRequest, sceneObj *scene.Scene) renderer.ProgressiveConfig {
	config := renderer.DefaultProgressiveConfig()
	config.TileSize = DefaultTileSize
	config.MaxSamplesPerPixel = sceneObj.SamplingConfig.SamplesPerPixel
	config.MaxPasses = req.MaxPasses
	config.Seed = req.Seed
	return config
}

// setupRenderingPipeline creates the scene and progressive raytracer for a request
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger core.Logger) (*RenderingPipeline, error) {
	sceneObj, err := s.createScene(req)
	if err != nil {
		return nil, err
	}

	logger.Printf("Scene %q: %d primitives, %d lights, %dx%d\n", req.Scene,
		sceneObj.GetPrimitiveCount(), len(sceneObj.Lights),
		sceneObj.SamplingConfig.Width, sceneObj.SamplingConfig.Height)

	raytracer := renderer.NewProgressiveRaytracer(sceneObj,
		sceneObj.SamplingConfig.Width, sceneObj.SamplingConfig.Height,
		s.progressiveConfig(req, sceneObj), logger)

	return &RenderingPipeline{Scene: sceneObj, Raytracer: raytracer}, nil
}

// handleRenderingEvents turns renderer channel output into SSE events until the render ends
func (s *Server) handleRenderingEvents(ctx context.Context, sseEventChan chan<- SSEEvent,
	passChan <-chan renderer.PassResult, tileChan <-chan renderer.TileCompletionResult, errChan <-chan error,
	sceneObj *scene.Scene, req *RenderRequest, startTime time.Time) {

	for passChan != nil || tileChan != nil || errChan != nil {
		select {
		case passResult, ok := <-passChan:
			if !ok {
				passChan = nil
				continue
			}
			s.handlePassComplete(ctx, sseEventChan, passResult, req, sceneObj, startTime)

		case tileResult, ok := <-tileChan:
			if !ok {
				tileChan = nil
				continue
			}
			s.handleTileUpdate(ctx, sseEventChan, tileResult)

		case err, ok := <-errChan:
			if !ok {
				errChan = nil
				continue
			}
			if err != nil {
				sendEvent(ctx, sseEventChan, SSEEvent{Type: "error", Data: fmt.Sprintf("Rendering failed: %v", err)})
				return
			}

		case <-ctx.Done():
			return
		}
	}

	sendEvent(ctx, sseEventChan, SSEEvent{Type: "complete", Data: "Rendering completed"})
}

// handlePassComplete sends pass statistics
func (s *Server) handlePassComplete(ctx context.Context, sseEventChan chan<- SSEEvent, passResult renderer.PassResult, req *RenderRequest, sceneObj *scene.Scene, startTime time.Time) {
	passUpdate := struct {
		Event            string  `json:"event"`
		PassNumber       int     `json:"passNumber"`
		TotalPasses      int     `json:"totalPasses"`
		IsLast           bool    `json:"isLast"`
		ElapsedMs        int64   `json:"elapsedMs"`
		TotalPixels      int     `json:"totalPixels"`
		TotalSamples     int     `json:"totalSamples"`
		AverageSamples   float64 `json:"averageSamples"`
		MaxSamples       int     `json:"maxSamples"`
		MinSamples       int     `json:"minSamples"`
		MaxSamplesUsed   int     `json:"maxSamplesUsed"`
		PrimitiveCount   int     `json:"primitiveCount"`
		AverageLuminance float64 `json:"averageLuminance"`
	}{
		Event:            "passComplete",
		PassNumber:       passResult.PassNumber,
		TotalPasses:      req.MaxPasses,
		IsLast:           passResult.IsLast,
		ElapsedMs:        time.Since(startTime).Milliseconds(),
		TotalPixels:      passResult.Stats.TotalPixels,
		TotalSamples:     passResult.Stats.TotalSamples,
		AverageSamples:   passResult.Stats.AverageSamples,
		MaxSamples:       passResult.Stats.MaxSamples,
		MinSamples:       passResult.Stats.MinSamples,
		MaxSamplesUsed:   passResult.Stats.MaxSamplesUsed,
		PrimitiveCount:   sceneObj.GetPrimitiveCount(),
		AverageLuminance: renderer.CalculateAverageLuminance(passResult.Image),
	}

	data, err := json.Marshal(passUpdate)
	if err != nil {
		log.Printf("Error marshaling pass update: %v", err)
		return
	}
	sendEvent(ctx, sseEventChan, SSEEvent{Type: "passComplete", Data: string(data)})
}

// handleTileUpdate sends one finished tile as a base64 PNG
func (s *Server) handleTileUpdate(ctx context.Context, sseEventChan chan<- SSEEvent, tileResult renderer.TileCompletionResult) {
	tileData, err := imageToBase64PNG(tileResult.TileImage)
	if err != nil {
		log.Printf("Error encoding tile image (%d, %d): %v", tileResult.TileX, tileResult.TileY, err)
		return
	}

	data, err := json.Marshal(TileUpdate{
		TileX:       tileResult.TileX,
		TileY:       tileResult.TileY,
		ImageData:   tileData,
		PassNumber:  tileResult.PassNumber,
		TileNumber:  tileResult.TileNumber,
		TotalTiles:  tileResult.TotalTiles,
		TotalPasses: tileResult.TotalPasses,
	})
	if err != nil {
		log.Printf("Error marshaling tile update: %v", err)
		return
	}
	sendEvent(ctx, sseEventChan, SSEEvent{Type: "tile", Data: string(data)})
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
