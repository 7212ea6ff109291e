// Package cache persists serialized query results on disk so repeated
// invocations inside the freshness window skip the remote round trip.
//
// Every entry is one JSON file: the serialized payload plus the type tag
// it deserializes into and the time it was stored. Reads fail open: an
// absent, expired or corrupt entry is a miss, never an error.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"taskra/internal/serial"
)

// DefaultTTL is how long an entry stays fresh unless configured otherwise.
const DefaultTTL = 15 * time.Minute

// Entry is the persisted envelope around a serialized payload.
type Entry struct {
	Key      string          `json:"key"`
	TypeTag  string          `json:"type_tag"`
	Payload  json.RawMessage `json:"payload"`
	StoredAt time.Time       `json:"stored_at"`
}

// Part is one (name, value) component of a logical cache key.
type Part struct {
	Name  string
	Value string
}

// Key derives a deterministic, collision-resistant key from the given
// parts. Parts are sorted by name so callers need not agree on order; the
// readable prefix keeps cache directories inspectable while the digest
// carries the collision resistance.
func Key(parts ...Part) string {
	sorted := make([]Part, len(parts))
	copy(sorted, parts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	pieces := make([]string, len(sorted))
	var canonical strings.Builder
	for i, p := range sorted {
		pieces[i] = p.Name + "-" + p.Value
		// Length-prefixed encoding: a value containing the join characters
		// can never collide with a differently split part set.
		fmt.Fprintf(&canonical, "%d:%s=%d:%s;", len(p.Name), p.Name, len(p.Value), p.Value)
	}
	digest := sha256.Sum256([]byte(canonical.String()))
	return sanitize(strings.Join(pieces, "_")) + "-" + hex.EncodeToString(digest[:8])
}

// sanitize keeps the readable key prefix filesystem-safe and short.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('.')
		}
	}
	out := b.String()
	if len(out) > 80 {
		out = out[:80]
	}
	return out
}

// Store is a filesystem-backed cache with a fixed time-to-live.
type Store struct {
	dir string
	ttl time.Duration
	log *zap.Logger

	now func() time.Time // replaced in tests
}

// New opens (creating if needed) a cache store rooted at dir.
func New(dir string, ttl time.Duration, log *zap.Logger) (*Store, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return &Store{dir: dir, ttl: ttl, log: log, now: time.Now}, nil
}

// Put serializes v and atomically replaces any prior entry under key.
// A crashed write leaves at worst an orphaned temp file, never a truncated
// entry visible to readers.
func (s *Store) Put(key, typeTag string, v any) error {
	payload, err := serial.Serialize(v)
	if err != nil {
		return err
	}
	entry := Entry{
		Key:      key,
		TypeTag:  typeTag,
		Payload:  payload,
		StoredAt: s.now().UTC(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create cache temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace cache entry: %w", err)
	}
	return nil
}

// Get returns the deserialized value stored under key, or (nil, false) on
// a miss. Misses cover absent, expired, mistagged and corrupt entries;
// expired and corrupt files are removed on the way out.
func (s *Store) Get(key, typeTag string) (any, bool) {
	path := s.path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Debug("cache miss", zap.String("key", key), zap.String("reason", "absent"))
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		s.log.Debug("cache miss", zap.String("key", key), zap.String("reason", "corrupt"), zap.Error(err))
		os.Remove(path)
		return nil, false
	}
	age := s.now().Sub(entry.StoredAt)
	if age > s.ttl {
		s.log.Debug("cache miss", zap.String("key", key), zap.String("reason", "expired"), zap.Duration("age", age))
		os.Remove(path)
		return nil, false
	}
	if entry.TypeTag != typeTag {
		s.log.Debug("cache miss", zap.String("key", key), zap.String("reason", "type tag mismatch"),
			zap.String("want", typeTag), zap.String("got", entry.TypeTag))
		return nil, false
	}

	v, err := serial.DecodeTagged(entry.TypeTag, entry.Payload)
	if err != nil {
		// Undeserializable payloads degrade to a miss so the caller refetches.
		s.log.Debug("cache miss", zap.String("key", key), zap.String("reason", "undecodable"), zap.Error(err))
		os.Remove(path)
		return nil, false
	}
	s.log.Debug("cache hit", zap.String("key", key), zap.Duration("age", age))
	return v, true
}

// Clear removes every entry in the store.
func (s *Store) Clear() error {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
