// Package storage provides the key→blob persistence layer for the engine:
// a SQLite primary backend with a plain-file fallback, composed into an
// Adapter whose reads and writes never fail the caller.
package storage

import (
	"log"
)

// Backend is a key→blob store. Load returns (nil, nil) when no data exists
// for the key.
type Backend interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
	Purge(key string) error
	Close() error
}

// Adapter chains a primary backend with a local fallback. The engine only
// sees the adapter and stays unaware of which backend served a request.
type Adapter struct {
	primary  Backend // may be nil when the primary failed to open
	fallback Backend
}

// NewAdapter builds the chain. primary may be nil; fallback must not be.
func NewAdapter(primary, fallback Backend) *Adapter {
	return &Adapter{primary: primary, fallback: fallback}
}

// Initialize reports whether a non-fallback backend is available.
// It never fails the caller.
func (a *Adapter) Initialize() bool {
	return a.primary != nil
}

// Load returns the stored blob for key, or nil when no usable data exists.
// The primary is tried first, then the fallback; errors degrade to nil.
func (a *Adapter) Load(key string) []byte {
	if a.primary != nil {
		data, err := a.primary.Load(key)
		if err == nil && len(data) > 0 {
			return data
		}
		if err != nil {
			log.Printf("storage: primary load failed, trying fallback: %v", err)
		}
	}

	data, err := a.fallback.Load(key)
	if err != nil {
		log.Printf("storage: fallback load failed: %v", err)
		return nil
	}
	return data
}

// Save stores the blob best-effort. The fallback always keeps a copy so a
// later run without the primary still finds the data. Failures are logged
// and swallowed; Save never blocks a mutation.
func (a *Adapter) Save(key string, data []byte) {
	if a.primary != nil {
		if err := a.primary.Save(key, data); err != nil {
			log.Printf("storage: primary save failed: %v", err)
		}
	}
	if err := a.fallback.Save(key, data); err != nil {
		log.Printf("storage: fallback save failed: %v", err)
	}
}

// Purge removes the blob from every backend in the chain
func (a *Adapter) Purge(key string) {
	if a.primary != nil {
		if err := a.primary.Purge(key); err != nil {
			log.Printf("storage: primary purge failed: %v", err)
		}
	}
	if err := a.fallback.Purge(key); err != nil {
		log.Printf("storage: fallback purge failed: %v", err)
	}
}

// Close closes every backend in the chain
func (a *Adapter) Close() {
	if a.primary != nil {
		a.primary.Close()
	}
	a.fallback.Close()
}
