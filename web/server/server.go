package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/df07/go-tile-pathtracer/pkg/log"
	"github.com/df07/go-tile-pathtracer/pkg/preview"
)

var logger = log.New("server")

// DefaultInterval is how often progress events are pushed to clients
const DefaultInterval = 500 * time.Millisecond

// Render is the view of a running render the server needs
type Render interface {
	preview.Source
	Finished() bool
}

// Server streams the preview of a single render over HTTP
type Server struct {
	render   Render
	scene    string
	console  <-chan ConsoleMessage
	started  time.Time
	Interval time.Duration

	// Inspector serves /api/inspect when set
	Inspector *Inspector
}

// Status is the JSON body of /api/status
type Status struct {
	Scene       string  `json:"scene"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Progress    float64 `json:"progress"`
	ActiveTiles int     `json:"activeTiles"`
	Finished    bool    `json:"finished"`
	ElapsedMs   int64   `json:"elapsedMs"`
}

// ProgressUpdate represents a single progressive update sent via SSE
type ProgressUpdate struct {
	Status
	ImageData string `json:"imageData"` // Base64 encoded PNG
}

// NewServer creates a server for render. console may be nil.
func NewServer(render Render, sceneName string, console <-chan ConsoleMessage) *Server {
	return &Server{
		render:   render,
		scene:    sceneName,
		console:  console,
		started:  time.Now(),
		Interval: DefaultInterval,
	}
}

// Handler returns the routes served by s
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/preview.png", s.handlePreview)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/events", s.handleEvents)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{Addr: addr, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() {
		logger.Noticef("serving preview of %q on %s", s.scene, addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down preview server: %w", err)
	}
	return nil
}

func (s *Server) status() Status {
	bounds := s.render.Preview().Bounds()
	return Status{
		Scene:       s.scene,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Progress:    s.render.Progress(),
		ActiveTiles: len(s.render.ActiveTiles()),
		Finished:    s.render.Finished(),
		ElapsedMs:   time.Since(s.started).Milliseconds(),
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.status())
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	if err := preview.Encode(w, preview.Frame(s.render)); err != nil {
		logger.Errorf("encoding preview: %v", err)
		http.Error(w, "failed to encode preview", http.StatusInternalServerError)
	}
}

// handleEvents pushes progress, console and completion events until the
// render finishes or the client goes away. All writes happen on this
// goroutine.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if _, ok := w.(http.Flusher); !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}
	setSSEHeaders(w)

	ctx := r.Context()
	console := s.console
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		// Sample Finished before the frame so the last frame is complete
		finished := s.render.Finished()
		if err := s.sendProgress(w); err != nil {
			logger.Warningf("sending progress: %v", err)
			return
		}
		if finished {
			sendSSEEvent(w, "complete", "Rendering completed")
			return
		}

		if !waitTick(ctx, w, ticker, &console) {
			return
		}
	}
}

// waitTick forwards console messages until the next tick. It returns false
// once the client disconnects. A closed console is set to nil.
func waitTick(ctx context.Context, w http.ResponseWriter, ticker *time.Ticker, console *<-chan ConsoleMessage) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			return true
		case msg, ok := <-*console:
			if !ok {
				*console = nil
				continue
			}
			data, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			if err := sendSSEEvent(w, "console", string(data)); err != nil {
				return false
			}
		}
	}
}

func (s *Server) sendProgress(w http.ResponseWriter) error {
	frame := preview.Frame(s.render)
	imageData, err := imageToBase64PNG(frame)
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}

	data, err := json.Marshal(ProgressUpdate{Status: s.status(), ImageData: imageData})
	if err != nil {
		return err
	}
	return sendSSEEvent(w, "progress", string(data))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, indexHTML, s.scene)
}

func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := preview.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("encoding response: %v", err)
	}
}

func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// sendSSEEvent sends a generic SSE event
func sendSSEEvent(w http.ResponseWriter, event, data string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming not supported")
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%[1]s</title>
<style>
body { background: #222; color: #ddd; font-family: monospace; }
img { image-rendering: pixelated; border: 1px solid #444; }
#console { white-space: pre; max-height: 20em; overflow-y: auto; }
</style>
</head>
<body>
<h3>%[1]s <span id="progress"></span></h3>
<img id="frame" src="/api/preview.png">
<pre id="inspect"></pre>
<div id="console"></div>
<script>
document.getElementById("frame").addEventListener("click", e => {
  const img = e.target;
  const x = Math.floor(e.offsetX * img.naturalWidth / img.clientWidth);
  const y = Math.floor(e.offsetY * img.naturalHeight / img.clientHeight);
  fetch("/api/inspect?x=" + x + "&y=" + y)
    .then(r => r.json())
    .then(info => { document.getElementById("inspect").textContent = JSON.stringify(info, null, 2); });
});
const events = new EventSource("/api/events");
events.addEventListener("progress", e => {
  const u = JSON.parse(e.data);
  document.getElementById("frame").src = "data:image/png;base64," + u.imageData;
  document.getElementById("progress").textContent = (u.progress * 100).toFixed(0) + "%%";
});
events.addEventListener("console", e => {
  const m = JSON.parse(e.data);
  document.getElementById("console").textContent += m.message + "\n";
});
events.addEventListener("complete", () => events.close());
</script>
</body>
</html>
`
