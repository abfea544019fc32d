// Package app wires the playback engine and its adapters together and
// manages their lifecycle. Front ends (shell or window) are attached
// by the respective main packages, so this package stays free of UI
// dependencies.
package app

import (
	"log/slog"

	beepdev "github.com/wavedeck/wavedeck/internal/adapter/audio/beep"
	"github.com/wavedeck/wavedeck/internal/adapter/audio/mock"
	"github.com/wavedeck/wavedeck/internal/adapter/eventbus"
	"github.com/wavedeck/wavedeck/internal/adapter/lister"
	"github.com/wavedeck/wavedeck/internal/logger"
	"github.com/wavedeck/wavedeck/internal/ports"
	"github.com/wavedeck/wavedeck/internal/service"
)

// Application holds the wired engine core.
type Application struct {
	logger *slog.Logger

	eventBus ports.EventBus
	device   ports.AudioDevice
	player   *service.Player
}

// Config holds application configuration.
type Config struct {
	// AppID is the unique application identifier.
	AppID string

	// AppName is the display name.
	AppName string

	// UseMockDevice selects the silent in-memory device instead of
	// the speaker, for tests and headless runs.
	UseMockDevice bool

	// LogLevel controls logging verbosity.
	LogLevel slog.Level
}

// DefaultConfig returns the default application configuration. The
// log level honors WAVEDECK_LOG_LEVEL.
func DefaultConfig() Config {
	loggerCfg := logger.DefaultConfig()
	return Config{
		AppID:    "com.wavedeck.app",
		AppName:  "wavedeck",
		LogLevel: loggerCfg.Level,
	}
}

// New creates the application with all dependencies wired.
func New(config Config) (*Application, error) {
	app := &Application{}

	app.logger = logger.New(logger.Config{
		Level:  config.LogLevel,
		Format: "text",
	})
	app.logger.Info("initializing",
		slog.String("app_id", config.AppID),
		slog.Bool("mock_device", config.UseMockDevice))

	syncBus := eventbus.NewSyncEventBus()
	syncBus.SetLogger(app.logger.With(slog.String("component", "eventbus")))
	app.eventBus = syncBus

	if config.UseMockDevice {
		device := mock.NewDevice()
		device.SetLogger(app.logger.With(slog.String("device", "mock")))
		app.device = device
	} else {
		device := beepdev.NewDevice()
		device.SetLogger(app.logger.With(slog.String("device", "beep")))
		app.device = device
	}

	files := lister.NewLister()
	files.SetLogger(app.logger.With(slog.String("component", "lister")))

	app.player = service.NewPlayer(
		app.logger.With(slog.String("component", "player")),
		app.device,
		files,
		app.eventBus,
	)

	return app, nil
}

// Logger returns the root logger.
func (a *Application) Logger() *slog.Logger {
	return a.logger
}

// Player returns the playback engine.
func (a *Application) Player() *service.Player {
	return a.player
}

// EventBus returns the event bus front ends subscribe to.
func (a *Application) EventBus() ports.EventBus {
	return a.eventBus
}

// Shutdown releases everything in reverse dependency order: engine
// first so it lets go of its clip, then the device, then the bus.
func (a *Application) Shutdown() {
	a.logger.Info("shutting down")

	if err := a.player.Shutdown(); err != nil {
		a.logger.Warn("player shutdown failed", slog.Any("error", err))
	}
	if err := a.device.Shutdown(); err != nil {
		a.logger.Warn("device shutdown failed", slog.Any("error", err))
	}
	if err := a.eventBus.Close(); err != nil {
		a.logger.Warn("event bus close failed", slog.Any("error", err))
	}

	a.logger.Info("shutdown complete")
}
