// Package storage provides the local download ledger abstraction.
package storage

import (
	"fmt"
	"strings"
	"time"
)

// Store tracks video IDs that have already been mirrored to local disk.
type Store interface {
	Close() error
	SeenVideo(id string) (bool, error)
	MarkVideo(id string) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	VideoTTL        time.Duration
	CleanupInterval time.Duration
}

const (
	defaultVideoTTL        = 30 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.VideoTTL <= 0 {
		opts.VideoTTL = defaultVideoTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                   { return nil }
func (noopStore) SeenVideo(string) (bool, error) { return false, nil }
func (noopStore) MarkVideo(string) error         { return nil }
