// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The scoring and ranking primitives here are pure, CPU-bound
// functions with no I/O; the ingestion, retrieval and memory
// services orchestrate them against the driven ports.
package services
