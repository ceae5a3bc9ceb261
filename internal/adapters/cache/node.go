package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/assetd/internal/core/ports"
)

// NodeID is the unique identifier for the resolution cache Graft node.
// Hosts that bring their own cache patch this node.
const NodeID graft.ID = "adapter.resolution_cache"

func init() {
	graft.Register(graft.Node[ports.ResolutionCache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ResolutionCache, error) {
			return NewMemoryCache(), nil
		},
	})
}
