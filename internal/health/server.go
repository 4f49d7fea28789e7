package health

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/j0lvera/relaybot/internal/config"
	"github.com/j0lvera/relaybot/internal/metrics"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const statusText = "Bot is running"

// Server is the liveness and metrics listener.
type Server struct {
	httpServer *http.Server
	log        zerolog.Logger
}

// NewHandler routes GET / to the liveness text and /metrics to m.
func NewHandler(m http.Handler, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = fmt.Fprint(w, statusText)
	})
	if m != nil {
		mux.Handle("GET /metrics", m)
	}
	return Logger(mux, log)
}

func NewServer(addr string, handler http.Handler, log zerolog.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Start binds the listener synchronously so a busy port fails startup, then
// serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("could not listen on %s: %w", s.httpServer.Addr, err)
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("health server stopped")
		}
	}()
	s.log.Info().Str("addr", ln.Addr().String()).Msg("health server is ready")

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("health server is shutting down...")
	return s.httpServer.Shutdown(ctx)
}

type Params struct {
	fx.In

	Config  *config.Config
	Metrics *metrics.Prom
	Logger  zerolog.Logger
}

func New(lc fx.Lifecycle, p Params) *Server {
	srv := NewServer(p.Config.Addr(), NewHandler(p.Metrics.Handler(), p.Logger), p.Logger)

	lc.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				return srv.Start()
			},
			OnStop: func(ctx context.Context) error {
				return srv.Shutdown(ctx)
			},
		},
	)

	return srv
}

func Module() fx.Option {
	return fx.Module(
		"health",
		fx.Provide(
			New,
		),
		fx.Invoke(
			func(*Server) {},
		),
	)
}
