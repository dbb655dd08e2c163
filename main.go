package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"movies-service/cmd"
	"movies-service/internal/broadcast"
	"movies-service/internal/data/repository"
	"movies-service/internal/usecase"
	"movies-service/internal/wire"
	"movies-service/pkg/database"
	"movies-service/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.Strings("services", config.App.Services),
		zap.String("store", config.Store.Driver),
	)

	if err := run(config, logger); err != nil {
		logger.Error("Application stopped with error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(config *utils.Config, logger *zap.Logger) error {
	ctx := context.Background()

	repo, closeStore, err := openRepository(ctx, config, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	replay, err := broadcast.ParseReplay(config.Stream.Replay)
	if err != nil {
		return fmt.Errorf("STREAM_REPLAY: %w", err)
	}
	streams := usecase.NewStreams(replay)

	app := wire.Wiring(repo, streams, config, logger)

	return cmd.APIServer(ctx, app.Router, config.App.Port, config.App.ShutdownTimeout, logger, streams.Close)
}

// openRepository connects the backend named by STORE_DRIVER. The returned
// func releases the connection.
func openRepository(ctx context.Context, config *utils.Config, logger *zap.Logger) (*repository.Repository, func(), error) {
	switch config.Store.Driver {
	case "mongo":
		db, err := database.InitMongo(config.Mongo)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		logger.Info("MongoDB connected", zap.String("database", config.Mongo.Database))

		closeFn := func() {
			if err := db.Client().Disconnect(ctx); err != nil {
				logger.Warn("Failed to disconnect MongoDB", zap.Error(err))
			}
		}
		return repository.NewMongoRepository(db, logger), closeFn, nil

	case "postgres":
		db, err := database.InitPostgres(config.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		logger.Info("PostgreSQL connected", zap.String("database", config.Database.Name))

		return repository.NewPostgresRepository(db, logger), db.Close, nil

	case "memory":
		logger.Warn("Using in-memory store, data is lost on restart")
		return repository.NewMemoryRepository(logger), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", config.Store.Driver)
	}
}
