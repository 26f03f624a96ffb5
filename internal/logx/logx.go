// Package logx carries domain-aware logging helpers built on pslog.
package logx

import (
	"pkt.systems/pslog"

	"github.com/parleychat/parley/schema"
)

// WithSpace annotates the logger with the space slug if present.
func WithSpace(log pslog.Logger, slug schema.Slug) pslog.Logger {
	if slug != "" {
		return log.With("space", slug)
	}
	return log
}

// WithRoute annotates the logger with the serialized route path.
func WithRoute(log pslog.Logger, path string) pslog.Logger {
	if path != "" {
		return log.With("route", path)
	}
	return log
}
