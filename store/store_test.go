package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/unlox/core"
)

func newFileStore(t *testing.T) core.Store {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return fs
}

func TestStores_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		store func(t *testing.T) core.Store
	}{
		{name: "memory", store: func(*testing.T) core.Store { return NewMemoryStore() }},
		{name: "file", store: newFileStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := tt.store(t)
			defer s.Close()

			_, err := s.Get(ctx, "unlox/v1/catalog")
			assert.True(t, core.IsStoreNotFound(err), "missing key should be not found, got %v", err)

			require.NoError(t, s.Set(ctx, "unlox/v1/catalog", []byte(`[1,2]`)))
			got, err := s.Get(ctx, "unlox/v1/catalog")
			require.NoError(t, err)
			assert.Equal(t, []byte(`[1,2]`), got)

			require.NoError(t, s.BatchSet(ctx, map[string][]byte{
				"a": []byte("1"),
				"b": []byte("2"),
			}))
			batch, err := s.BatchGet(ctx, []string{"a", "b", "missing"})
			require.NoError(t, err)
			assert.Equal(t, map[string][]byte{"a": []byte("1"), "b": []byte("2")}, batch)

			require.NoError(t, s.Delete(ctx, "a"))
			require.NoError(t, s.Delete(ctx, "a"))
			_, err = s.Get(ctx, "a")
			assert.True(t, core.IsStoreNotFound(err))
		})
	}
}

func TestMemoryStore_TTL(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "k", []byte("v"), 10))
	_, err := s.Get(ctx, "k")
	require.NoError(t, err)

	now = now.Add(11 * time.Second)
	_, err = s.Get(ctx, "k")
	assert.True(t, core.IsStoreNotFound(err))
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	v := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", v))
	v[0] = 'x'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileStore_EmptyDir(t *testing.T) {
	_, err := NewFileStore("")
	assert.True(t, core.IsInvalidInput(err))
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	_, err := NewRedisStore("127.0.0.1:1", 0, "unlox:")
	require.Error(t, err)
	de := core.GetDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, core.ErrorCodeUnavailable, de.Code)
}
