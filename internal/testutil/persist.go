package testutil

import (
	"context"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/spaceplace/internal/domain/celestial"
	"github.com/zjrosen/spaceplace/internal/registry"
)

// Persist writes the accumulated fixtures straight through the gateways,
// bypassing the registries. Either gateway may be nil.
func (b *Builder) Persist(
	bodies registry.Gateway[celestial.Body],
	systems registry.Gateway[*celestial.PlanetarySystem],
) {
	b.t.Helper()
	ctx := context.Background()
	if systems != nil {
		require.NoError(b.t, systems.Save(ctx, b.systems), "saving systems to %s", systems.Target())
	}
	if bodies != nil {
		require.NoError(b.t, bodies.Save(ctx, b.bodies), "saving bodies to %s", bodies.Target())
	}
}
