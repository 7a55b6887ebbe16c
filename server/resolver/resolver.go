package resolver

import (
	"github.com/DataDog/datadog-go/statsd"
	"github.com/Luismorlan/socialmux/app_config"
	"github.com/Luismorlan/socialmux/server/auth"
	"github.com/Luismorlan/socialmux/utils/file_store"
	"gorm.io/gorm"
)

// It serves as dependency injection for your app, add any dependencies you require here.
//
// Every operation takes the viewer as an explicit argument; the Resolver
// itself holds no per-request state.
type Resolver struct {
	DB        *gorm.DB
	Config    app_config.AppConfig
	Tokens    *auth.Issuer
	FileStore file_store.FileStore
	Statsd    statsd.ClientInterface
}

func NewResolver(db *gorm.DB, config app_config.AppConfig, tokens *auth.Issuer, fileStore file_store.FileStore, client statsd.ClientInterface) *Resolver {
	if client == nil {
		client = &statsd.NoOpClient{}
	}
	return &Resolver{
		DB:        db,
		Config:    config,
		Tokens:    tokens,
		FileStore: fileStore,
		Statsd:    client,
	}
}
