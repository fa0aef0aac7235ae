package skydb

import (
	"go.uber.org/zap"

	"github.com/skynetlabs/go-skydb/pkg/skylink"
)

// Option configures a DB at construction time
type Option func(*DB)

// Logger sets a logger for this DB
func Logger(l *zap.Logger) Option {
	return func(db *DB) {
		if l != nil {
			db.l = l
		}
	}
}

// CallDefaults sets client-level defaults applied to every call made
// through this DB, between the built-in defaults and any call-level
// options
func CallDefaults(opts ...CallOption) Option {
	return func(db *DB) {
		db.callDefaults = opts
	}
}

// CallOptions enumerates every recognized per-call option.
//
// Options merge in three layers: built-in defaults first, then the
// DB's CallDefaults, then the options given at the call site, with
// later layers taking precedence.
type CallOptions struct {
	// CachedDataLink short-circuits reads: when the registry entry
	// still references this content address, the read returns the
	// address alone and skips the download.
	CachedDataLink *skylink.Skylink

	// AllowDeletionSentinel authorizes writing the all-zero deletion
	// sentinel as entry data. Delete operations set it; anything else
	// writing the sentinel by accident is rejected.
	AllowDeletionSentinel bool

	// FileName labels uploaded JSON documents. Empty means
	// "<dataKey>.json".
	FileName string
}

// CallOption mutates one call's options
type CallOption func(*CallOptions)

// WithCachedDataLink supplies the content address the caller already
// holds content for
func WithCachedDataLink(link skylink.Skylink) CallOption {
	return func(o *CallOptions) {
		o.CachedDataLink = &link
	}
}

// WithAllowDeletionSentinel authorizes deletion semantics on an
// entry-data write
func WithAllowDeletionSentinel() CallOption {
	return func(o *CallOptions) {
		o.AllowDeletionSentinel = true
	}
}

// WithFileName labels the uploaded file
func WithFileName(name string) CallOption {
	return func(o *CallOptions) {
		o.FileName = name
	}
}

func (db *DB) mergeCallOptions(opts []CallOption) CallOptions {
	var merged CallOptions // built-in defaults: all zero
	for _, apply := range db.callDefaults {
		apply(&merged)
	}
	for _, apply := range opts {
		apply(&merged)
	}
	return merged
}
