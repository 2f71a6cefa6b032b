package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/coinwarden/signerd/internal/core/application"
)

// Service exposes the bridge over a local HTTP server: websocket commands on
// /ws and prometheus metrics on /metrics.
type Service struct {
	walletSvc *application.WalletService
	signerSvc *application.SignerService
	upgrader  websocket.Upgrader
	server    *http.Server
}

// NewService returns a bridge service listening on addr once started.
func NewService(
	addr string,
	walletSvc *application.WalletService,
	signerSvc *application.SignerService,
) *Service {
	svc := &Service{
		walletSvc: walletSvc,
		signerSvc: signerSvc,
		// The daemon binds to loopback, the origin check adds nothing
		// there and breaks non-browser clients.
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", svc.handleWs)
	mux.Handle("/metrics", promhttp.Handler())
	svc.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return svc
}

// Handler exposes the HTTP routes, mainly for tests.
func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until Stop is called. It blocks.
func (s *Service) Start() error {
	log.Infof("bridge listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains connections and shuts the server down.
func (s *Service) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("bridge shutdown failed, closing anyway")
		s.server.Close()
	}
}

func (s *Service) handleWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	newConnHandler(conn, s.walletSvc, s.signerSvc).serve(r.Context())
}
