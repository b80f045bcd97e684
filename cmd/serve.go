package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/leandro-lugaresi/hub"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/traPtitech/pinboard/repository"
	"github.com/traPtitech/pinboard/repository/gorm"
	"github.com/traPtitech/pinboard/service/counter"
	"github.com/traPtitech/pinboard/utils/gormzap"
)

// serveCommand サーバー起動コマンド
func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve pinboard API",
		Run: func(_ *cobra.Command, _ []string) {
			// Logger
			logger := getLogger()
			defer logger.Sync()

			logger.Info(fmt.Sprintf("pinboard %s (revision %s)", Version, Revision))

			// Cloud Profiler
			if c.GCP.Profiler.Enabled {
				if err := initProfiler(&c); err != nil {
					logger.Fatal("failed to setup Cloud Profiler", zap.Error(err))
				}
				logger.Info("cloud profiler started")
			}

			// Session secret
			if err := c.ensureJWTSecret(logger); err != nil {
				logger.Fatal("invalid session config", zap.Error(err))
			}

			// Message Hub
			hub := hub.New()

			// Database
			logger.Info("connecting database...")
			engine, err := c.getDatabase()
			if err != nil {
				logger.Fatal("failed to connect database", zap.Error(err))
			}
			engine.Logger = gormzap.New(logger.Named("gorm"), gormzap.WithSlowThreshold(200*time.Millisecond))
			db, err := engine.DB()
			if err != nil {
				logger.Fatal("failed to get *sql.DB", zap.Error(err))
			}
			defer db.Close()
			logger.Info("database connection was established")

			// FileStorage
			logger.Info("checking file storage...")
			fs, err := c.getFileStorage()
			if err != nil {
				logger.Fatal("failed to setup file storage", zap.Error(err))
			}
			logger.Info("file storage is ok")

			// Repository
			logger.Info("setting up repository...")
			repo, init, err := gorm.NewGormRepository(engine, hub, logger, true)
			if err != nil {
				logger.Fatal("failed to initialize repository", zap.Error(err))
			}
			if init {
				logger.Info("database schema was initialized")
			}
			logger.Info("repository was set up")

			// サーバー作成
			server, err := newServer(hub, engine, repo, fs, logger, &c)
			if err != nil {
				logger.Fatal("failed to create server", zap.Error(err))
			}

			go func() {
				if err := server.Start(fmt.Sprintf(":%d", c.Port)); err != nil {
					logger.Info("shutting down the server")
				}
			}()

			logger.Info("pinboard started",
				zap.Int64("pins", server.PinCounter.Get()),
				zap.Int64("users", server.UserCounter.Get()))
			waitSIGINT()
			logger.Info("pinboard shutting down...")

			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(c.ShutdownTimeout)*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				logger.Warn("abnormal shutdown", zap.Error(err))
			}
			logger.Info("pinboard shutdown")
		},
	}
}

// Server APIサーバー
type Server struct {
	L            *zap.Logger
	Router       *echo.Echo
	Hub          *hub.Hub
	Repo         repository.Repository
	PinCounter   counter.PinCounter
	UserCounter  counter.UserCounter
	EventCounter counter.EventCounter
}

// Start サーバーを起動します
func (s *Server) Start(address string) error {
	return s.Router.Start(address)
}

// Shutdown サーバーを停止します
func (s *Server) Shutdown(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		err := s.Router.Shutdown(ctx)
		s.L.Info("Router shutdown")
		return err
	})
	if err := eg.Wait(); err != nil {
		return err
	}
	// ルーターの停止後はイベントが発行されない
	s.Hub.Close()
	s.L.Info("Hub shutdown")
	return nil
}
