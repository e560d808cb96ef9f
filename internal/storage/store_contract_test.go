package storage

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract exercises the behavior every Store backend must share.
func runStoreContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, "acme", []byte(`{"v":1}`)))
	got, err := s.Get(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, `{"v":1}`, string(got))

	// full replace
	require.NoError(t, s.Put(ctx, "acme", []byte(`{"v":2}`)))
	got, err = s.Get(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, string(got))

	require.NoError(t, s.Put(ctx, "beta", []byte(`{"v":3}`)))
	entries, err := s.List(ctx)
	require.NoError(t, err)
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	sort.Strings(keys)
	assert.Equal(t, []string{"acme", "beta"}, keys)

	require.NoError(t, s.Delete(ctx, "acme"))
	_, err = s.Get(ctx, "acme")
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting twice is fine
	require.NoError(t, s.Delete(ctx, "acme"))
	require.NoError(t, s.Delete(ctx, "never-existed"))
}
