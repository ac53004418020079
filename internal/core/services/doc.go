// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// All manuscript mutations funnel through ProjectService, the single
// owner of the live manuscript and its version history. The review,
// sweep and scan services never mutate documents directly; they ask
// ProjectService to, so no two mutations interleave mid-update.
package services
