package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/krelay/kwrelay-bot/client/bot"
	"github.com/krelay/kwrelay-bot/client/bot/handlers"
	"github.com/krelay/kwrelay-bot/common/i18n"
	"github.com/krelay/kwrelay-bot/common/logger"
	"github.com/krelay/kwrelay-bot/config"
	"github.com/krelay/kwrelay-bot/dialog"
	"github.com/krelay/kwrelay-bot/registry"
	"github.com/krelay/kwrelay-bot/relay"
	"github.com/krelay/kwrelay-bot/storage"
	"github.com/krelay/kwrelay-bot/storage/jsonfile"
	"github.com/krelay/kwrelay-bot/storage/sqlite"
)

func Run(ctx context.Context) {
	if err := config.Init(); err != nil {
		fmt.Println("Failed to load config:", err)
		os.Exit(1)
	}
	ctx = log.WithContext(ctx, logger.New(config.C().Log.Level, config.C().Log.File))
	i18n.Init(config.C().Lang)

	for _, path := range []string{config.C().Registry.Path, config.C().DB.Session} {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				log.FromContext(ctx).Fatalf("Failed to create data directory %s: %s", dir, err)
			}
		}
	}

	store, err := openStore(ctx)
	if err != nil {
		log.FromContext(ctx).Fatalf("Failed to open registry store: %s", err)
	}

	reg := registry.New(bot.Resolver(), store)
	reg.Load(ctx)

	engine := relay.New(reg, bot.Forwarder{}, config.C().Targets, config.C().Workers)
	engine.Run(ctx)

	dialogs := dialog.NewManager(dialog.DefaultTTL)

	bot.Init(ctx, handlers.Deps{
		Registry: reg,
		Relay:    engine,
		Dialog:   dialogs,
		Resolver: bot.Resolver(),
		Admins:   config.C().Admins,
	})

	<-ctx.Done()
	log.FromContext(ctx).Info("Exiting...")
}

func openStore(ctx context.Context) (storage.Store, error) {
	rc := config.C().Registry
	switch rc.Backend {
	case "sqlite":
		return sqlite.Open(ctx, rc.Path)
	default:
		return jsonfile.New(rc.Path), nil
	}
}
