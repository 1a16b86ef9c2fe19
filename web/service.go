package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/zeptools/pricequote/svc"
)

const defaultShutdownTimeout = 10 * time.Second

// Service runs the HTTP server. Stop drains in-flight requests up to
// ShutdownTimeout before the listener is torn down.
type Service struct {
	Ctx             context.Context    // Service Context
	cancel          context.CancelFunc // Service Context CancelFunc
	state           int                // internal service state
	done            chan error         // Shutdown Error Channel
	Server          *http.Server
	ShutdownTimeout time.Duration
}

var _ svc.Service = (*Service)(nil)

func (s *Service) Name() string {
	return "WebService"
}

func NewService(parentCtx context.Context, addr string, router http.Handler) *Service {
	svcCtx, svcCancel := context.WithCancel(parentCtx)
	return &Service{
		Ctx:    svcCtx,
		cancel: svcCancel,
		state:  svc.StateREADY,
		done:   make(chan error, 1),
		Server: &http.Server{
			Addr:    addr,
			Handler: router,
		},
		ShutdownTimeout: defaultShutdownTimeout,
	}
}

// Start the server in the background.
// Bootstrapping errors are returned immediately.
// Runtime errors are pushed into Done().
func (s *Service) Start() error {
	if s.state == svc.StateRUNNING {
		return fmt.Errorf("already started")
	}
	if s.state != svc.StateREADY {
		return fmt.Errorf("cannot start. not ready")
	}
	s.state = svc.StateRUNNING

	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("[INFO][Web] listening on %s ...", s.Server.Addr)
		if err := s.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		} else {
			serverErrChan <- nil
		}
	}()

	go func() {
		select {
		case err := <-serverErrChan: // listener died on its own
			s.done <- err
		case <-s.Ctx.Done():
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
			defer shutdownCancel()
			// Shutdown stops accepting new requests immediately;
			// requests already being processed get time to finish
			if err := s.Server.Shutdown(shutdownCtx); err != nil {
				log.Printf("[ERROR][Web] server shutdown failed: %v", err)
			}
			s.done <- <-serverErrChan
			log.Println("[INFO][Web] shutdown complete")
		}
	}()
	return nil
}

func (s *Service) Stop() {
	if s.state != svc.StateRUNNING {
		log.Println("[ERROR][Web] cannot stop. not running")
		return
	}
	s.cancel()
	s.state = svc.StateSTOPPED
	log.Println("[INFO][Web] service stopped")
}

func (s *Service) Done() <-chan error {
	return s.done
}
