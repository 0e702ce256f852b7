package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/flocktogether/flock-backend/internal/entity"
	"github.com/flocktogether/flock-backend/internal/repository"
)

type gameRegistry interface {
	AllGames() []*entity.Game
	GameSnapshot(code string) (*entity.Game, error)
}

type Server struct {
	logger   *slog.Logger
	registry gameRegistry
	archive  repository.ArchiveRepository
}

func New(logger *slog.Logger, registry gameRegistry, archive repository.ArchiveRepository) *Server {
	return &Server{
		logger:   logger,
		registry: registry,
		archive:  archive,
	}
}

func (that *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", that.handleHealth)
	mux.HandleFunc("GET /games", that.handleAllGames)
	mux.HandleFunc("GET /games/{code}", that.handleGameByCode)
	mux.HandleFunc("GET /archive/games/{code}", that.handleArchivedGame)

	return mux
}

// Start - starts the read-only HTTP surface.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
