//go:build wireinject
// +build wireinject

package cmd

import (
	"github.com/google/wire"
	"github.com/leandro-lugaresi/hub"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/traPtitech/pinboard/repository"
	"github.com/traPtitech/pinboard/router"
	"github.com/traPtitech/pinboard/router/session"
	v1 "github.com/traPtitech/pinboard/router/v1"
	"github.com/traPtitech/pinboard/service/avatar"
	"github.com/traPtitech/pinboard/service/counter"
	"github.com/traPtitech/pinboard/service/imaging"
	"github.com/traPtitech/pinboard/utils/storage"
)

func newServer(hub *hub.Hub, db *gorm.DB, repo repository.Repository, fs storage.FileStorage, logger *zap.Logger, c *Config) (*Server, error) {
	wire.Build(
		counter.NewPinCounter,
		counter.NewUserCounter,
		counter.NewEventCounter,
		imaging.NewProcessor,
		avatar.NewGenerator,
		session.NewJWTStore,
		router.Setup,
		provideUploader,
		provideImageProcessorConfig,
		provideSessionConfig,
		provideRouterConfig,
		provideV1Config,
		wire.Struct(new(v1.Handlers), "*"),
		wire.Struct(new(Server), "*"),
	)
	return nil, nil
}
