package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/assetd/internal/adapters/cache"  //nolint:depguard // Wired in app layer
	"go.trai.ch/assetd/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/assetd/internal/adapters/fs"     //nolint:depguard // Wired in app layer
	"go.trai.ch/assetd/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/assetd/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			fs.HasherNodeID,
			cache.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[*fs.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	resolutionCache, err := graft.Dep[ports.ResolutionCache](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, hasher, resolutionCache), nil
}
