// File: civicportal/main.go
package main

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"civicportal/client"
	"civicportal/config"
	"civicportal/models"
	"civicportal/services/location"
	"civicportal/services/navigation"
	"civicportal/services/session"
	"civicportal/storage"
	"civicportal/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	store := newStore(logger)

	// Seed the language preference on first run.
	if _, err := store.Language(); err != nil {
		if err := store.SaveLanguage(config.AppConfig.DefaultLanguage); err != nil {
			logger.Warn("Failed to persist default language", zap.Error(err))
		}
	}

	navigator := navigation.NavigatorFunc(func(path string) {
		logger.Info("Navigating", zap.String("path", path))
	})

	// The session store and API client reference each other: the client
	// reads the bearer token from durable storage per request, and its 401
	// hook tears the session down no matter which call site tripped it.
	sessions := &session.DefaultService{Store: store}
	api := client.New(
		config.AppConfig.APIBaseURL,
		sessions.TokenProvider(),
		client.WithUnauthorizedHook(func() {
			sessions.ForceLogout()
			navigator.To(navigation.LoginPath)
		}),
		client.WithRateLimit(config.AppConfig.MaxRequestsPerMin),
	)
	sessions.API = api

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(config.AppConfig.RequestTimeout)*time.Second)
	defer cancel()

	if err := api.Health(ctx); err != nil {
		logger.Warn("Backend unreachable, local fallbacks will carry the session", zap.Error(err))
	}
	utils.StartHealthMonitor(60*time.Second, api.Health)

	if err := sessions.RestoreSession(ctx); err != nil {
		logger.Warn("Session restore failed", zap.Error(err))
	}
	logger.Info("Session restored", zap.String("state", sessions.State().String()))

	gate := &navigation.Gate{Sessions: sessions}
	for _, path := range []string{"/citizen/dashboard", "/admin/users"} {
		if route, ok := navigation.Lookup(path); ok {
			decision := gate.Decide(route)
			logger.Info("Gate decision",
				zap.String("path", path),
				zap.String("action", decision.Action.String()),
				zap.String("target", decision.Target))
		}
	}

	cascade := location.New(&location.APISource{API: api}, location.StaticSource{})
	cascade.Init(ctx)
	provinces := cascade.Options(models.LevelProvince)
	logger.Info("Cascade ready", zap.Int("provinces", len(provinces)))
	if len(provinces) > 0 {
		if err := cascade.Select(ctx, models.LevelProvince, provinces[0].ID); err != nil {
			logger.Warn("Province selection failed", zap.Error(err))
		}
		logger.Info("Districts resolved",
			zap.String("province", provinces[0].Name),
			zap.Int("districts", len(cascade.Options(models.LevelDistrict))))
	}
}

// newStore picks the durable storage backend from configuration.
func newStore(logger *zap.Logger) storage.Store {
	if config.AppConfig.StorageBackend == "redis" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisSessionDB,
		})
		store, err := storage.NewRedisStore(rdb, "default", 0)
		if err != nil {
			logger.Fatal("Failed to connect storage redis", zap.Error(err))
		}
		return store
	}

	store, err := storage.NewFileStore(config.AppConfig.StoragePath)
	if err != nil {
		logger.Fatal("Failed to initialize file storage", zap.Error(err))
	}
	return store
}
