package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"corestudio/internal/config"
	"corestudio/internal/content"
	"corestudio/internal/eventbus"
	"corestudio/internal/locale"
	"corestudio/internal/logging"
	"corestudio/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:            "corestudio",
		Usage:           "Core Studio's site as a full-page terminal presentation",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (TOML)"},
			&cli.StringFlag{Name: "locale", Usage: "show the site in `LANG` (it, en, es) and remember the choice"},
			&cli.StringFlag{Name: "log-level", Usage: "log `LEVEL` (debug, info, warn, error)"},
			&cli.StringFlag{Name: "log-file", Usage: "write logs to `FILE`"},
		},
		Action: run,
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	// The bus exists before the logger, which is configured from the file
	bus := eventbus.New(nil)
	var loaded eventbus.ConfigLoadedEvent
	stopConfig := bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		loaded = e.(eventbus.ConfigLoadedEvent)
	})
	cfg, err := config.NewConfigServiceWithBus(cmd.String("config"), bus).Load()
	stopConfig()
	if err != nil {
		return fmt.Errorf("unable to load configuration: %w", err)
	}
	if v := cmd.String("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v := cmd.String("log-file"); v != "" {
		cfg.Log.File = v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, closeLog, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closeLog()
	log.Info("program started",
		zap.Strings("args", os.Args),
		zap.String("runtime", runtime.Version()))
	log.Info("configuration loaded",
		zap.String("path", loaded.Path),
		zap.Bool("defaults", loaded.Defaults))

	bus.SetLogger(log.Named("bus"))
	unsubscribe := bus.Subscribe(eventbus.EventLocaleChanged, func(e eventbus.DomainEvent) {
		log.Debug("locale changed", zap.String("locale", e.(eventbus.LocaleChangedEvent).Locale))
	})
	defer unsubscribe()

	sw, err := newSwitcher(cmd, cfg, bus, log.Named("locale"))
	if err != nil {
		return err
	}

	data, err := content.Load()
	if err != nil {
		return fmt.Errorf("unable to load content: %w", err)
	}

	model, err := ui.NewModel(bus, cfg, sw, data, log.Named("ui"))
	if err != nil {
		return err
	}
	defer model.Close()

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	log.Info("program ended")
	return nil
}

// newSwitcher picks the starting locale: the command line, then the saved
// cookie, then the configuration, then the environment.
func newSwitcher(cmd *cli.Command, cfg *config.Config, bus eventbus.EventBus, log *zap.Logger) (*locale.Switcher, error) {
	bundle, err := locale.NewBundle()
	if err != nil {
		return nil, fmt.Errorf("unable to load translations: %w", err)
	}

	cookiePath := cfg.UI.LocaleFile
	if cookiePath == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			cookiePath = filepath.Join(dir, "corestudio", "locale.cookie")
		}
	}
	sw := locale.NewSwitcher(bundle, cookiePath, bus, log)

	if code := cmd.String("locale"); code != "" {
		return sw, sw.Set(code)
	}
	if sw.Restore() {
		return sw, nil
	}
	if cfg.UI.Locale != "" {
		return sw, sw.Use(cfg.UI.Locale)
	}
	return sw, sw.Use(locale.Match(os.Getenv("LANG")))
}
