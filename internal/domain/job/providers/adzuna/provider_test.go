package adzuna

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/job-browser/pkg/adzuna"
)

type pagedClient struct {
	pages map[int]adzuna.SearchPage
	calls []int
	err   error
}

func (c *pagedClient) SearchPage(_ context.Context, page, perPage int) (adzuna.SearchPage, error) {
	c.calls = append(c.calls, page)
	if c.err != nil {
		return adzuna.SearchPage{}, c.err
	}
	res := c.pages[page]
	res.Page = page
	res.PerPage = perPage
	return res, nil
}

func (c *pagedClient) MaxPageSize() int { return 2 }

func TestFetchPageMapsMeta(t *testing.T) {
	client := &pagedClient{pages: map[int]adzuna.SearchPage{
		1: {Count: 5, Jobs: []adzuna.Job{
			{ID: "1", Title: "Sous Chef", CompanyName: "The Ivy Collection", Location: "London, UK", Area: []string{"UK", "London"}, SalaryMin: 29999.6},
		}},
	}}
	p, err := NewProvider(client)
	require.NoError(t, err)

	page, err := p.FetchPage(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Meta.CurrentPage)
	assert.Equal(t, 2, page.Meta.PerPage)
	assert.Equal(t, 5, page.Meta.Total)
	assert.Equal(t, 3, page.Meta.LastPage)

	require.Len(t, page.Data, 1)
	j := page.Data[0]
	assert.Equal(t, "the-ivy-collection", j.Employer.Slug)
	assert.Equal(t, "The", j.CompanyName())
	assert.EqualValues(t, 30000, j.SalaryFrom)
	require.NotNil(t, j.Location)
	assert.Equal(t, "UK", j.Location.Country)
	assert.Equal(t, "London", j.Location.City)
}

func TestFetchAllWalksPages(t *testing.T) {
	client := &pagedClient{pages: map[int]adzuna.SearchPage{
		1: {Count: 3, Jobs: []adzuna.Job{{ID: "1"}, {ID: "2"}}},
		2: {Count: 3, Jobs: []adzuna.Job{{ID: "3"}}},
	}}
	p, err := NewProvider(client)
	require.NoError(t, err)

	jobs, err := p.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, jobs, 3)
	assert.Equal(t, []int{1, 2}, client.calls)
}

func TestFetchAllPropagatesErrors(t *testing.T) {
	boom := errors.New("quota")
	p, err := NewProvider(&pagedClient{err: boom})
	require.NoError(t, err)

	_, err = p.FetchAll(context.Background())
	assert.ErrorIs(t, err, boom)
}
