package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/pipeline-console/internal/api"
	"github.com/atomicstack/pipeline-console/internal/backend"
	"github.com/atomicstack/pipeline-console/internal/entity"
	"github.com/atomicstack/pipeline-console/internal/logging/events"
	"github.com/atomicstack/pipeline-console/internal/mockplatform"
	"github.com/atomicstack/pipeline-console/internal/notice"
	"github.com/atomicstack/pipeline-console/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	APIURL          string
	APITimeout      time.Duration
	Namespace       string
	RefreshInterval time.Duration
	Width           int
	Height          int
	ShowFooter      bool
	Verbose         bool
	RootMenu        string
	Mock            bool
	Messages        map[string]string
}

const mockListenAddr = "127.0.0.1:0"

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	baseURL := cfg.APIURL
	if cfg.Mock {
		srv, err := mockplatform.Demo().Listen(mockListenAddr)
		if err != nil {
			return fmt.Errorf("start mock platform: %w", err)
		}
		defer srv.Close()
		baseURL = srv.URL
		if cfg.Namespace == "" {
			cfg.Namespace = mockplatform.DemoNamespace
		}
		events.App.Mock(baseURL)
	}
	client, err := api.New(baseURL, api.WithTimeout(cfg.APITimeout))
	if err != nil {
		return fmt.Errorf("build api client: %w", err)
	}
	events.App.Namespace(cfg.Namespace)

	watcher := backend.NewWatcher(client, cfg.Namespace, cfg.RefreshInterval)
	defer watcher.Stop()

	model := ui.NewModel(Options(cfg, client, watcher))
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// Options maps cfg onto the UI model options backed by client and watcher.
func Options(cfg Config, client *api.Client, watcher *backend.Watcher) ui.Options {
	opts := ui.Options{
		Namespace:  cfg.Namespace,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		RootMenu:   cfg.RootMenu,
		Messages:   notice.DefaultMessages().Merge(cfg.Messages),
	}
	if client != nil {
		opts.API = client
		opts.Browser = client
		loaderOpts := []entity.LoaderOption{}
		if watcher != nil {
			opts.Watcher = watcher
			loaderOpts = append(loaderOpts, entity.WithTablesRefresh(watcher.RefreshTables))
		}
		opts.Loader = entity.NewLoader(client, loaderOpts...)
	}
	return opts
}
