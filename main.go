package main

import (
	"embed"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/wailsapp/wails/v3/pkg/application"

	"github.com/r4mmer/hathor-wallet-core/internal/app"
)

//go:embed all:frontend/dist
var assets embed.FS

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	level := new(slog.LevelVar)
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))
	slog.Info("starting wallet", "version", version, "commit", commit, "date", date)

	svc := app.New(version)

	wails := application.New(application.Options{
		Name:        "Hathor Wallet",
		Description: "Wallet for the Hathor network",
		Services: []application.Service{
			application.NewService(svc),
		},
		Assets: application.AssetOptions{
			Handler: application.BundledAssetFileServer(assets),
		},
	})

	mainWindow := wails.Window.NewWithOptions(application.WebviewWindowOptions{
		Title:  "Hathor Wallet",
		Width:  420,
		Height: 780,
		URL:    "/",
	})

	// Initialize service with app and window references
	svc.Init(wails, mainWindow)
	level.Set(svc.LogLevel())
	svc.Start()

	if err := wails.Run(); err != nil {
		slog.Error("run app", "error", err)
	}
	svc.Shutdown()
}
