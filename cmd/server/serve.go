package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Luismorlan/socialmux/app_config"
	"github.com/Luismorlan/socialmux/server"
	"github.com/Luismorlan/socialmux/server/auth"
	"github.com/Luismorlan/socialmux/server/resolver"
	"github.com/Luismorlan/socialmux/utils"
	"github.com/Luismorlan/socialmux/utils/file_store"
	. "github.com/Luismorlan/socialmux/utils/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const (
	uploadsUrlPrefix = "/uploads"
	s3KeyPrefix      = "profile_pictures/"
)

var port int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the api server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().IntVar(&port, "port", 8080, "port to listen on")
}

func runServer(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	config, err := app_config.ParseAppConfig(configPath)
	if err != nil {
		return err
	}

	tracing := os.Getenv("DD_ENABLED") == "true"
	if tracing {
		utils.StartTracer(serviceName)
		defer utils.CloseTracer()
		if err := utils.StartProfiler(serviceName); err != nil {
			Log.WithError(err).Warn("fail to start profiler")
		}
		defer utils.CloseProfiler()
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		return err
	}
	if err := utils.DatabaseSetupAndMigration(db); err != nil {
		return err
	}

	tokenStore, err := newTokenStore(ctx, config, db)
	if err != nil {
		return err
	}
	secret := os.Getenv("JWT_SECRET")
	issuer, err := auth.NewIssuer(secret, time.Duration(config.TOKEN_TTL_HOURS)*time.Hour, tokenStore)
	if err != nil {
		return errors.Wrap(err, "JWT_SECRET")
	}

	fileStore, uploadDir, err := newFileStore(config)
	if err != nil {
		return err
	}
	defer fileStore.CleanUp()

	statsdClient, err := utils.NewDogStatsdClient(os.Getenv("DD_AGENT_STATSD"))
	if err != nil {
		return errors.Wrap(err, "create statsd client")
	}
	defer statsdClient.Close()

	r := resolver.NewResolver(db, config, issuer, fileStore, statsdClient)
	router := server.NewRouter(server.NewHandlers(r), server.RouterOptions{
		ServiceName: serviceName,
		Tracing:     tracing,
		UploadDir:   uploadDir,
	})

	Log.WithField("port", port).Info("api server starts up")
	return router.Run(fmt.Sprintf(":%d", port))
}

func newTokenStore(ctx context.Context, config app_config.AppConfig, db *gorm.DB) (auth.TokenStore, error) {
	if config.TOKEN_STORE == app_config.TokenStoreRedis {
		return auth.GetRedisTokenStore(ctx)
	}
	return auth.NewDBTokenStore(db), nil
}

// newFileStore also returns the folder to serve statically, empty when files
// are served by S3.
func newFileStore(config app_config.AppConfig) (file_store.FileStore, string, error) {
	if config.FILE_STORE == app_config.FileStoreS3 {
		store, err := file_store.NewS3FileStore(os.Getenv("S3_BUCKET"), os.Getenv("S3_REGION"), os.Getenv("S3_URL_PREFIX"))
		if err != nil {
			return nil, "", err
		}
		store.SetCustomizeFileNameFunc(func(fileName string) string {
			return s3KeyPrefix + uuid.New().String() + file_store.GetExtNameWithDot(fileName)
		})
		return store, "", nil
	}
	store, err := file_store.NewLocalFileStore(config.UPLOAD_DIR, uploadsUrlPrefix)
	if err != nil {
		return nil, "", err
	}
	return store, store.FolderName(), nil
}
