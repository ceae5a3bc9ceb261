// Package app implements the application layer for assetd.
package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.trai.ch/assetd/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/assetd/internal/adapters/httpserve" //nolint:depguard // Wired in app layer
	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/assetd/internal/core/ports"
	"go.trai.ch/assetd/internal/engine/chain"
	"go.trai.ch/assetd/internal/engine/invalidator"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	hasher       *fs.Hasher
	cache        ports.ResolutionCache
	watchWindow  time.Duration
	onListen     func(net.Addr)
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	hasher *fs.Hasher,
	cache ports.ResolutionCache,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		hasher:       hasher,
		cache:        cache,
		watchWindow:  fs.DefaultWatchWindow,
	}
}

// WithWatchWindow sets the debounce window of the plugin watcher.
func (a *App) WithWatchWindow(window time.Duration) *App {
	a.watchWindow = window
	return a
}

// WithOnListen registers a callback receiving the bound address once Serve listens.
// This is primarily used for testing with ephemeral ports.
func (a *App) WithOnListen(fn func(net.Addr)) *App {
	a.onListen = fn
	return a
}

// Instance is a fully assembled resolution chain over a plugins directory.
type Instance struct {
	Settings *ports.Settings
	Plugins  *fs.PluginDirectory
	Pipeline *chain.Pipeline
	detach   func()
}

// Close detaches the cache invalidation listener.
func (i *Instance) Close() {
	if i.detach != nil {
		i.detach()
		i.detach = nil
	}
}

// Open loads the configuration at configPath and assembles the resolution chain.
// The plugins directory is scanned once before the chain is returned.
func (a *App) Open(configPath string) (*Instance, error) {
	// 1. Load the settings
	settings, err := a.configLoader.Load(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	// 2. Discover plugins
	plugins := fs.NewPluginDirectory(settings.PluginsDir, a.hasher)
	plugins.SetLogger(a.logger)
	if err := plugins.Scan(); err != nil {
		return nil, zerr.Wrap(err, "failed to scan plugins")
	}

	// 3. Assemble the chain
	opts := []chain.Option{
		chain.WithHasher(a.hasher),
		chain.WithLogger(a.logger),
	}
	if settings.Chain.Cache {
		a.cache.Clear()
		opts = append(opts, chain.WithCache(a.cache))
	}
	if settings.StaticDir != "" {
		opts = append(opts, chain.WithStaticStore(fs.NewDirectory(settings.StaticDir)))
	}

	pipeline, err := chain.Build(settings.Chain, plugins, opts...)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build resolution chain")
	}

	// 4. Invalidate on plugin changes
	listener := invalidator.New(pipeline.Cache(), a.logger)

	return &Instance{
		Settings: settings,
		Plugins:  plugins,
		Pipeline: pipeline,
		detach:   listener.Attach(plugins),
	}, nil
}

// Resolve resolves a single resource path. It returns nil, nil when nothing serves the path.
func (a *App) Resolve(
	ctx context.Context,
	configPath, resourcePath string,
	encodings []string,
) (*domain.Resource, error) {
	inst, err := a.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer inst.Close()

	req, ok := domain.NewResourceRequest(resourcePath, encodings...)
	if !ok {
		return nil, nil
	}
	return inst.Pipeline.Resolve(ctx, req)
}

// URL returns the public, possibly versioned, URL of a resource.
// An empty string means nothing serves the path.
func (a *App) URL(ctx context.Context, configPath, resourcePath string) (string, error) {
	inst, err := a.Open(configPath)
	if err != nil {
		return "", err
	}
	defer inst.Close()

	url, err := inst.Pipeline.ResolveURLPath(ctx, resourcePath)
	if err != nil || url == "" {
		return "", err
	}
	return inst.Settings.Prefix + url, nil
}

// Plugins lists the plugins currently discovered below the configured directory.
func (a *App) Plugins(configPath string) ([]string, error) {
	inst, err := a.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer inst.Close()

	return inst.Plugins.Plugins(), nil
}

// Serve serves the resolution chain over HTTP until ctx is done.
// The plugins directory is watched and rescanned while serving.
func (a *App) Serve(ctx context.Context, configPath string) error {
	inst, err := a.Open(configPath)
	if err != nil {
		return err
	}
	defer inst.Close()

	handler := httpserve.NewHandler(inst.Pipeline, a.logger, inst.Settings.Prefix)
	srv := &http.Server{
		Addr:              inst.Settings.Addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", inst.Settings.Addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to listen"), "addr", inst.Settings.Addr)
	}
	if a.onListen != nil {
		a.onListen(ln.Addr())
	}
	a.logger.Info("serving assets on " + ln.Addr().String() + handler.Prefix())

	g, ctx := errgroup.WithContext(ctx)

	// Server Routine
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return zerr.Wrap(err, "http server failed")
		}
		return nil
	})

	// Shutdown Routine
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	// Watcher Routine
	g.Go(func() error {
		return inst.Plugins.Watch(ctx, a.watchWindow, a.logger)
	})

	return g.Wait()
}
