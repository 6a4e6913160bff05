package cli

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tabhost/tabhost/engine/diagnostic"
	"github.com/tabhost/tabhost/engine/extension"
	"github.com/tabhost/tabhost/engine/infra/server"
	"github.com/tabhost/tabhost/engine/registry"
	"github.com/tabhost/tabhost/engine/tab"
	"github.com/tabhost/tabhost/pkg/logger"
)

func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load extension tab contributions and serve the registry API",
		RunE:  runServe,
	}
	cmd.Flags().String("extensions", "", "extensions directory (overrides config)")
	cmd.Flags().Bool("strict", false, "abort startup on the first manifest-level failure")
	cmd.Flags().Bool("watch", false, "reload when extension manifests change")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := setupFromFlags(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("watch") {
		watch, _ := cmd.Flags().GetBool("watch")
		cfg.Extensions.Watch = watch
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := registry.New()
	processor := tab.NewProcessor(tab.WithDefaultProvider(cfg.Extensions.DefaultProvider))
	loader := extension.New(cfg.Extensions.Dir, cfg.LoaderConfig(), reg, processor)

	var mu sync.RWMutex
	var lastDiagnostics []diagnostic.Entry
	load := func(ctx context.Context) error {
		reg.Clear()
		tab.RegisterGroups(reg)
		result, err := loader.Load(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		lastDiagnostics = result.Diagnostics
		mu.Unlock()
		return nil
	}
	if err := load(ctx); err != nil {
		return err
	}

	if cfg.Extensions.Watch {
		watcher, err := extension.NewWatcher(cfg.Extensions.Dir, func() {
			if err := load(ctx); err != nil {
				logger.Error("extension reload failed", "error", err)
			}
		})
		if err != nil {
			return err
		}
		go func() {
			if err := watcher.Start(ctx); err != nil && ctx.Err() == nil {
				logger.Error("extension watcher stopped", "error", err)
			}
		}()
	}

	srv := server.New(server.Config{
		Host:    cfg.Server.Host,
		Port:    cfg.Server.Port,
		Timeout: cfg.Server.Timeout,
	}, reg, func() []diagnostic.Entry {
		mu.RLock()
		defer mu.RUnlock()
		return lastDiagnostics
	})
	return srv.Run(ctx)
}
