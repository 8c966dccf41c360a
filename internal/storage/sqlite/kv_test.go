package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/job-browser/internal/storage"
)

func TestKVRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv, err := Open(ctx, filepath.Join(t.TempDir(), "nested", "browser.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	_, err = kv.Get(ctx, "jobApplications")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, kv.Set(ctx, "jobApplications", []byte(`[1]`)))
	require.NoError(t, kv.Set(ctx, "jobApplications", []byte(`[1,2]`)))

	got, err := kv.Get(ctx, "jobApplications")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2]`), got)

	require.NoError(t, kv.Delete(ctx, "jobApplications"))
	_, err = kv.Get(ctx, "jobApplications")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestKVSurvivesReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "browser.db")

	kv, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "k", []byte("v")))
	require.NoError(t, kv.Close())

	kv, err = Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), " ")
	assert.Error(t, err)
}
