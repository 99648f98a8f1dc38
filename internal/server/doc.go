// Package server implements the optional HTTP endpoint that exposes
// Prometheus metrics and a health probe while a batch run is in progress.
package server
