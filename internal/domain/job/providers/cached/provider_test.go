package cached

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/job-browser/internal/domain"
)

type countingSource struct {
	pageCalls int
	allCalls  int
	err       error
}

func (s *countingSource) Name() string { return "counting" }

func (s *countingSource) FetchPage(_ context.Context, page, size int) (domain.JobPage, error) {
	s.pageCalls++
	if s.err != nil {
		return domain.JobPage{}, s.err
	}
	return domain.JobPage{
		Data: []domain.Job{{ID: "j1", Title: "Sushi Chef", Location: &domain.Location{CountryAndCity: "UAE, Dubai"}}},
		Meta: domain.PageMeta{CurrentPage: page, PerPage: size, Total: 1, LastPage: 1},
	}, nil
}

func (s *countingSource) FetchAll(context.Context) ([]domain.Job, error) {
	s.allCalls++
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Job{{ID: "a"}, {ID: "b"}}, nil
}

func newProvider(t *testing.T, src *countingSource) *Provider {
	t.Helper()
	p, err := NewProvider(src, time.Minute, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestFetchPageServesRepeatsFromCache(t *testing.T) {
	src := &countingSource{}
	p := newProvider(t, src)
	ctx := context.Background()

	first, err := p.FetchPage(ctx, 1, 11)
	require.NoError(t, err)
	second, err := p.FetchPage(ctx, 1, 11)
	require.NoError(t, err)

	assert.Equal(t, 1, src.pageCalls)
	assert.Equal(t, first, second)

	_, err = p.FetchPage(ctx, 2, 11)
	require.NoError(t, err)
	assert.Equal(t, 2, src.pageCalls)
}

func TestFetchAllCachedUntilInvalidated(t *testing.T) {
	src := &countingSource{}
	p := newProvider(t, src)
	ctx := context.Background()

	_, err := p.FetchAll(ctx)
	require.NoError(t, err)
	jobs, err := p.FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
	assert.Equal(t, 1, src.allCalls)

	require.NoError(t, p.Invalidate())
	_, err = p.FetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, src.allCalls)
}

func TestErrorsAreNotCached(t *testing.T) {
	boom := errors.New("down")
	src := &countingSource{err: boom}
	p := newProvider(t, src)

	_, err := p.FetchPage(context.Background(), 1, 11)
	assert.ErrorIs(t, err, boom)
	_, err = p.FetchPage(context.Background(), 1, 11)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, src.pageCalls)
}

func TestNewProviderValidatesArgs(t *testing.T) {
	_, err := NewProvider(nil, time.Minute, nil)
	assert.Error(t, err)
	_, err = NewProvider(&countingSource{}, 0, nil)
	assert.Error(t, err)
}
