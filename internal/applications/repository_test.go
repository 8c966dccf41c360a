package applications

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/job-browser/internal/domain"
	"github.com/honeycarbs/job-browser/internal/storage"
)

type failingKV struct {
	storage.KV
	getErr, setErr error
}

func (f failingKV) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.KV.Get(ctx, key)
}

func (f failingKV) Set(ctx context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.KV.Set(ctx, key, value)
}

func app(id string) domain.SavedApplication {
	return domain.SavedApplication{
		ApplicationID: id,
		JobTitle:      "Sushi Chef",
		Company:       "Nobu",
		AppliedDate:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Name:          "Jane",
		CVFile:        &domain.FileMeta{Name: "cv.pdf", Type: "application/pdf", Size: 1024},
	}
}

func TestReadAbsentIsEmpty(t *testing.T) {
	repo := NewRepository(storage.NewMemory(), nil)
	apps := repo.Read(context.Background())
	assert.NotNil(t, apps)
	assert.Empty(t, apps)
}

func TestReadCorruptIsEmpty(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(context.Background(), StorageKey, []byte("{not json")))

	repo := NewRepository(kv, nil)
	assert.Empty(t, repo.Read(context.Background()))
}

func TestReadBackendErrorIsEmpty(t *testing.T) {
	repo := NewRepository(failingKV{KV: storage.NewMemory(), getErr: errors.New("io")}, nil)
	assert.Empty(t, repo.Read(context.Background()))
}

// flakyKV fails the next Get after arm is called
type flakyKV struct {
	storage.KV
	mu   sync.Mutex
	fail bool
}

func (f *flakyKV) arm() {
	f.mu.Lock()
	f.fail = true
	f.mu.Unlock()
}

func (f *flakyKV) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	fail := f.fail
	f.fail = false
	f.mu.Unlock()
	if fail {
		return nil, errTimeout
	}
	return f.KV.Get(ctx, key)
}

var errTimeout = errors.New("i/o timeout")

func TestMutationsKeepDataWhenReadFails(t *testing.T) {
	ctx := context.Background()
	kv := &flakyKV{KV: storage.NewMemory()}
	repo := NewRepository(kv, nil)

	require.NoError(t, repo.Append(ctx, app("a")))
	require.NoError(t, repo.Append(ctx, app("b")))

	kv.arm()
	err := repo.Append(ctx, app("c"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errTimeout)

	kv.arm()
	removed, err := repo.Delete(ctx, "a")
	require.ErrorIs(t, err, errTimeout)
	assert.False(t, removed)

	apps := repo.Read(ctx)
	require.Len(t, apps, 2)
	assert.Equal(t, "a", apps[0].ApplicationID)
	assert.Equal(t, "b", apps[1].ApplicationID)
}

func TestAppendDeleteClear(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	repo := NewRepository(kv, nil)

	require.NoError(t, repo.Append(ctx, app("a")))
	require.NoError(t, repo.Append(ctx, app("b")))

	apps := repo.Read(ctx)
	require.Len(t, apps, 2)
	assert.Equal(t, app("a"), apps[0])
	assert.Equal(t, "b", apps[1].ApplicationID)

	raw, err := kv.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"applicationId":"a"`)
	assert.Contains(t, string(raw), `"cvFile":{"name":"cv.pdf","type":"application/pdf","size":1024}`)

	removed, err := repo.Delete(ctx, "a")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Len(t, repo.Read(ctx), 1)

	require.NoError(t, repo.Clear(ctx))
	assert.Empty(t, repo.Read(ctx))
}

func TestWriteFailureSurfaces(t *testing.T) {
	boom := errors.New("disk full")
	repo := NewRepository(failingKV{KV: storage.NewMemory(), setErr: boom}, nil)

	err := repo.Append(context.Background(), app("a"))
	assert.ErrorIs(t, err, boom)
}

func TestConcurrentAppendsAreNotLost(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storage.NewMemory(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, repo.Append(ctx, app(fmt.Sprintf("app-%d", i))))
		}(i)
	}
	wg.Wait()

	assert.Len(t, repo.Read(ctx), 20)
}
