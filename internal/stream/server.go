// Package stream serves the particle field to browsers: the simulation runs
// on the server and every frame is pushed over a websocket as draw ops.
package stream

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/iburimskiy/portfolio-field/internal/field"
	"github.com/iburimskiy/portfolio-field/internal/loop"
	"github.com/iburimskiy/portfolio-field/internal/surface"
)

//go:embed static
var static embed.FS

const (
	writeWait = 2 * time.Second
	// Clients asking for more than this are clamped to bound the O(n²) link pass.
	maxViewportSide = 4096
)

type Options struct {
	Params   field.Params
	Interval time.Duration
	Logger   *zap.Logger
}

// Server hands every websocket connection its own field and frame loop.
type Server struct {
	opts     Options
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients int
}

func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second / 60
	}
	return &Server{
		opts:   opts,
		logger: opts.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 << 10,
		},
	}
}

// Handler routes "/" to the bundled page and "/ws" to the frame stream.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	sub, _ := fs.Sub(static, "static")
	mux.Handle("/", http.FileServer(http.FS(sub)))
	mux.HandleFunc("/ws", s.serveWS)
	return mux
}

// Clients returns the number of connected viewers.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clients
}

type hello struct {
	Type   string  `json:"type"`
	Accent string  `json:"accent"`
	Link   float64 `json:"link"`
}

type inputMsg struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    int     `json:"w"`
	H    int     `json:"h"`
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	log := s.logger.With(zap.String("remote", r.RemoteAddr))
	s.track(1)
	defer s.track(-1)

	a := s.opts.Params.Accent
	if err := conn.WriteJSON(hello{
		Type:   "hello",
		Accent: fmt.Sprintf("#%02x%02x%02x", a.R, a.G, a.B),
		Link:   s.opts.Params.LinkDistance,
	}); err != nil {
		log.Debug("hello failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := surface.NewRecorder()
	var buf []byte
	present := func() error {
		buf = AppendFrame(buf[:0], rec.Ops())
		rec.Reset()
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.BinaryMessage, buf); err != nil {
			// Unblock the reader below.
			cancel()
			_ = conn.Close()
			return err
		}
		return nil
	}

	lp := loop.New(field.New(s.opts.Params, nil), rec, s.opts.Interval, present, log)
	if err := lp.Start(ctx); err != nil {
		log.Error("frame loop did not start", zap.Error(err))
		return
	}
	defer lp.Stop()
	log.Info("viewer connected")

	for {
		var msg inputMsg
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("viewer read failed", zap.Error(err))
			}
			break
		}
		ev, ok := toEvent(msg)
		if !ok {
			log.Debug("ignoring input", zap.String("type", msg.Type))
			continue
		}
		if err := lp.Send(ctx, ev); err != nil {
			break
		}
	}
	log.Info("viewer disconnected", zap.Uint64("frames", lp.Frames()))
}

func toEvent(m inputMsg) (loop.Event, bool) {
	switch m.Type {
	case "pointer":
		return loop.PointerMoved{X: m.X, Y: m.Y}, true
	case "leave":
		return loop.PointerLeft{}, true
	case "resize":
		return loop.Resized{W: clampSide(m.W), H: clampSide(m.H)}, true
	default:
		return nil, false
	}
}

func clampSide(v int) int {
	if v < 0 {
		return 0
	}
	if v > maxViewportSide {
		return maxViewportSide
	}
	return v
}

func (s *Server) track(delta int) {
	s.mu.Lock()
	s.clients += delta
	n := s.clients
	s.mu.Unlock()
	s.logger.Debug("viewers", zap.Int("count", n))
}
