// Package health derives readiness information from breaker state.
//
// A breaker guarding a critical dependency doubles as a health signal: a
// closed circuit means the dependency is reachable, half-open means it is
// recovering, open means it is down. This package exposes that mapping as
// composable checkers, an aggregator, and HTTP probe handlers.
package health
