// Package runner is spec §5's "outer gRPC layer" concurrency model: the
// core itself runs one query at a time, sequentially, but independent
// queries are admitted onto a bounded worker pool, correlated with a UUID,
// rate-limited, and wrapped in a per-query-kind circuit breaker so a
// reliably pathological query (e.g. a runaway quotient) stops being
// scheduled rather than starving well-behaved ones. Cache is the "model
// cache" spec §5 describes: a mutex-guarded (user-id, components-hash) map
// the outer layer looks up and populates before a query.Compile ever runs.
// Neither piece is part of the core's contract (see DESIGN.md); both
// receive their dependencies (the compiled loader, the query closure) by
// parameter, per spec §9's note on avoiding a process-global loader.
package runner
