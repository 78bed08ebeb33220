// Package pokeapi implements driven.CatalogClient against the public PokeAPI.
//
// Three request shapes are used:
//
//   - GET {base}/pokemon?limit=N&offset=M   one page of summaries
//   - GET {base}/pokemon/{id}               entry detail, followed by
//     GET {species url}                     the entry's colour tag
//   - GET {base}/pokemon?limit=1000         the full name index
//
// Requests are throttled by a token bucket and bounded by a per-request
// timeout. Nothing is retried: a failed call returns an error wrapping
// domain.ErrNetwork or domain.ErrNotFound and no partial data.
package pokeapi
