// Package registry owns the in-memory catalog collections.
//
// Celestial holds the ordered list of celestial bodies and Planetary holds
// the ordered list of planetary systems. Both keep insertion order until a
// sort reorders the collection in place, and both report "not found" through
// sentinel values (nil, -1, false, or a fixed message) rather than errors.
//
// Persistence goes through the Gateway port. Save and Load catch and log
// every gateway failure at the registry boundary, so callers only see a bool
// or a LoadResult.
//
// Neither registry is safe for concurrent use.
package registry
