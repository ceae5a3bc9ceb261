// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/assetd/internal/adapters/cache"
	_ "go.trai.ch/assetd/internal/adapters/config"
	_ "go.trai.ch/assetd/internal/adapters/fs"
	_ "go.trai.ch/assetd/internal/adapters/logger"
	// Register app nodes.
	_ "go.trai.ch/assetd/internal/app"
)
