package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskra/internal/model"
	"taskra/internal/serial"
)

func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	s, err := New(t.TempDir(), ttl, zap.NewNop())
	require.NoError(t, err)
	return s
}

func sampleProjects() []*model.ProjectSummary {
	return []*model.ProjectSummary{
		{ID: "10001", Key: "DEV", Name: "Development"},
		{ID: "10002", Key: "OPS", Name: "Operations"},
	}
}

func TestKey_Deterministic(t *testing.T) {
	a := Key(Part{"entity", "projects"}, Part{"account", "work"})
	b := Key(Part{"account", "work"}, Part{"entity", "projects"})
	assert.Equal(t, a, b, "part order must not matter")

	c := Key(Part{"entity", "projects"}, Part{"account", "home"})
	assert.NotEqual(t, a, c)
}

func TestKey_DelimiterValuesStayDistinct(t *testing.T) {
	// A value containing the readable join characters must not collide
	// with the same bytes split across two parts.
	a := Key(Part{"a", "x_b-y"})
	b := Key(Part{"a", "x"}, Part{"b", "y"})
	assert.NotEqual(t, a, b)
}

func TestKey_SanitizesUnsafeValues(t *testing.T) {
	k := Key(Part{"jql", `project = "DEV" AND status = "In Progress"`})
	assert.NotContains(t, k, `"`)
	assert.NotContains(t, k, " ")
	assert.NotContains(t, k, "/")
	// Prefix is bounded, digest suffix keeps keys distinct.
	assert.LessOrEqual(t, len(k), 80+1+16)
}

func TestStore_PutGetRoundTrip(t *testing.T) {
	s := newTestStore(t, time.Minute)
	key := Key(Part{"entity", "projects"})

	require.NoError(t, s.Put(key, serial.TagProjects, sampleProjects()))

	v, ok := s.Get(key, serial.TagProjects)
	require.True(t, ok)
	got, isList := v.([]*model.ProjectSummary)
	require.True(t, isList)
	require.Len(t, got, 2)
	assert.Equal(t, "DEV", got[0].Key)
}

func TestStore_MissWhenAbsent(t *testing.T) {
	s := newTestStore(t, time.Minute)
	_, ok := s.Get(Key(Part{"entity", "nothing"}), serial.TagProjects)
	assert.False(t, ok)
}

func TestStore_ExpiryIsAMiss(t *testing.T) {
	s := newTestStore(t, time.Minute)
	key := Key(Part{"entity", "projects"})
	require.NoError(t, s.Put(key, serial.TagProjects, sampleProjects()))

	_, ok := s.Get(key, serial.TagProjects)
	require.True(t, ok, "fresh entry must hit")

	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, ok = s.Get(key, serial.TagProjects)
	assert.False(t, ok, "expired entry must miss")

	// Expired files are cleaned up.
	_, err := os.Stat(s.path(key))
	assert.True(t, os.IsNotExist(err))
}

func TestStore_TypeTagMismatchIsAMiss(t *testing.T) {
	s := newTestStore(t, time.Minute)
	key := Key(Part{"entity", "projects"})
	require.NoError(t, s.Put(key, serial.TagProjects, sampleProjects()))

	_, ok := s.Get(key, serial.TagIssues)
	assert.False(t, ok)

	// The entry itself survives a mistagged read.
	_, ok = s.Get(key, serial.TagProjects)
	assert.True(t, ok)
}

func TestStore_CorruptFileIsAMiss(t *testing.T) {
	s := newTestStore(t, time.Minute)
	key := Key(Part{"entity", "projects"})
	require.NoError(t, os.WriteFile(s.path(key), []byte("{truncated"), 0o644))

	_, ok := s.Get(key, serial.TagProjects)
	assert.False(t, ok)
	_, err := os.Stat(s.path(key))
	assert.True(t, os.IsNotExist(err))
}

func TestStore_UndecodablePayloadIsAMiss(t *testing.T) {
	s := newTestStore(t, time.Minute)
	key := Key(Part{"entity", "projects"})
	// Valid envelope, but the payload fails validation on the way out.
	require.NoError(t, s.Put(key, serial.TagProject, map[string]any{"key": "DEV"}))

	_, ok := s.Get(key, serial.TagProject)
	assert.False(t, ok)
}

func TestStore_PutReplacesAtomically(t *testing.T) {
	s := newTestStore(t, time.Minute)
	key := Key(Part{"entity", "projects"})
	require.NoError(t, s.Put(key, serial.TagProjects, sampleProjects()))
	require.NoError(t, s.Put(key, serial.TagProjects, sampleProjects()[:1]))

	v, ok := s.Get(key, serial.TagProjects)
	require.True(t, ok)
	assert.Len(t, v.([]*model.ProjectSummary), 1)

	// No temp files left behind.
	leftovers, err := filepath.Glob(filepath.Join(s.dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestStore_Clear(t *testing.T) {
	s := newTestStore(t, time.Minute)
	keyA := Key(Part{"entity", "projects"})
	keyB := Key(Part{"entity", "user"}, Part{"who", "me"})
	require.NoError(t, s.Put(keyA, serial.TagProjects, sampleProjects()))
	require.NoError(t, s.Put(keyB, serial.TagUser, &model.User{AccountID: "abc", DisplayName: "Dev One"}))

	require.NoError(t, s.Clear())

	_, ok := s.Get(keyA, serial.TagProjects)
	assert.False(t, ok)
	_, ok = s.Get(keyB, serial.TagUser)
	assert.False(t, ok)
}

func TestNew_ZeroTTLUsesDefault(t *testing.T) {
	s := newTestStore(t, 0)
	assert.Equal(t, DefaultTTL, s.ttl)
}
