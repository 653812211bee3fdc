package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathieu/job-hunter/internal/types"
)

type fakeScraper struct {
	board    string
	listings []types.JobListing
	err      error
	queries  []string
}

func (f *fakeScraper) Board() string { return f.board }

func (f *fakeScraper) Search(_ context.Context, query, _ string) ([]types.JobListing, error) {
	f.queries = append(f.queries, query)
	return f.listings, f.err
}

func listing(url, title string) types.JobListing {
	return types.JobListing{Title: title, Company: "Exemple SARL", URL: url, Board: types.BoardIndeed}
}

func TestAggregator_MergesAndDeduplicates(t *testing.T) {
	a := NewAggregator(nil,
		&fakeScraper{board: "indeed", listings: []types.JobListing{
			listing("https://a.example/1", "Dev Go"),
			listing("https://a.example/2", "Dev backend"),
		}},
		&fakeScraper{board: "linkedin", listings: []types.JobListing{
			listing("https://a.example/2", "Dev backend"), // already seen
			listing("https://a.example/3", "SRE"),
		}},
	)

	got, err := a.SearchAll(context.Background(), []string{"go"}, "Paris")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "https://a.example/1", got[0].URL)
	assert.Equal(t, "https://a.example/2", got[1].URL)
	assert.Equal(t, "https://a.example/3", got[2].URL)
}

func TestAggregator_RunsEveryQueryOnEveryBoard(t *testing.T) {
	first := &fakeScraper{board: "indeed"}
	second := &fakeScraper{board: "glassdoor"}
	a := NewAggregator(nil, first, second)

	_, err := a.SearchAll(context.Background(), []string{"go", "python"}, "Paris")
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "python"}, first.queries)
	assert.Equal(t, []string{"go", "python"}, second.queries)
}

func TestAggregator_SkipsFailedBoard(t *testing.T) {
	failing := &fakeScraper{board: "indeed", err: errors.New("blocked")}
	healthy := &fakeScraper{board: "linkedin", listings: []types.JobListing{
		listing("https://a.example/9", "Dev"),
	}}
	a := NewAggregator(nil, failing, healthy)

	got, err := a.SearchAll(context.Background(), []string{"go"}, "Paris")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestAggregator_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &fakeScraper{board: "indeed"}
	a := NewAggregator(nil, s)

	_, err := a.SearchAll(ctx, []string{"go"}, "Paris")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, s.queries)
}

func TestStubs_ReturnNoListings(t *testing.T) {
	ctx := context.Background()

	li := NewLinkedIn(nil)
	listings, err := li.Search(ctx, "go", "Paris")
	require.NoError(t, err)
	assert.Empty(t, listings)
	assert.Equal(t, types.BoardLinkedIn, li.Board())

	gd := NewGlassdoor(nil)
	listings, err = gd.Search(ctx, "go", "Paris")
	require.NoError(t, err)
	assert.Empty(t, listings)
	assert.Equal(t, types.BoardGlassdoor, gd.Board())
}
