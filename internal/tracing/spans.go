package tracing

// Span attribute keys for registry persistence.
const (
	AttrRegistryName    = "registry.name"
	AttrRegistryTarget  = "registry.target"
	AttrRegistryCount   = "registry.count"
	AttrRegistryOutcome = "registry.outcome"
	AttrRegistryNextID  = "registry.next_id"

	AttrStoreFormat = "store.format"
	AttrStoreCached = "store.cached"
)

// SpanPrefixRegistry prefixes registry persistence span names, e.g.
// "registry.celestial.save".
const SpanPrefixRegistry = "registry."
