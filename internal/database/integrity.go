package database

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"sync"
)

// IntegrityGuard detects out-of-band tampering of the SQLite store. It keeps
// a keyed HMAC-SHA256 digest of the whole database file next to it and
// recomputes the digest after every committed mutation. Verification runs
// once at startup; a mismatch means the file was altered outside the
// application and the process must refuse to serve.
//
// Recomputing over the full file on every write is the dominant write cost
// at scale. Acceptable for the vocabulary sizes this service targets; do not
// reuse this scheme for large stores.
type IntegrityGuard struct {
	dbPath     string
	digestPath string
	key        []byte
	mu         sync.Mutex
}

func NewIntegrityGuard(dbPath, key string) *IntegrityGuard {
	return &IntegrityGuard{
		dbPath:     dbPath,
		digestPath: dbPath + ".digest",
		key:        []byte(key),
	}
}

// Verify checks the store against the persisted digest.
//   - no store file: trivially passes (fresh install)
//   - store but no digest file: trust-on-first-use, writes the current digest
//   - digest mismatch: returns an error; the caller treats this as fatal
func (g *IntegrityGuard) Verify() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := os.Stat(g.dbPath); os.IsNotExist(err) {
		return nil
	}

	current, err := g.digest()
	if err != nil {
		return fmt.Errorf("failed to compute store digest: %w", err)
	}

	stored, err := os.ReadFile(g.digestPath)
	if os.IsNotExist(err) {
		log.Printf("Integrity guard: no digest for %s, bootstrapping", g.dbPath)
		return g.writeDigest(current)
	}
	if err != nil {
		return fmt.Errorf("failed to read digest file: %w", err)
	}

	if !hmac.Equal([]byte(current), stored) {
		return fmt.Errorf("store digest mismatch for %s: the database file was modified outside the application", g.dbPath)
	}
	return nil
}

// UpdateAfterCommit recomputes and persists the digest. Stores call this at
// the end of every mutating operation.
func (g *IntegrityGuard) UpdateAfterCommit() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := os.Stat(g.dbPath); os.IsNotExist(err) {
		return nil
	}
	current, err := g.digest()
	if err != nil {
		return fmt.Errorf("failed to compute store digest: %w", err)
	}
	return g.writeDigest(current)
}

func (g *IntegrityGuard) digest() (string, error) {
	data, err := os.ReadFile(g.dbPath)
	if err != nil {
		return "", err
	}
	mac := hmac.New(sha256.New, g.key)
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

func (g *IntegrityGuard) writeDigest(digest string) error {
	if err := os.WriteFile(g.digestPath, []byte(digest), 0644); err != nil {
		return fmt.Errorf("failed to write digest file: %w", err)
	}
	return nil
}
