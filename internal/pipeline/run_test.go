package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathieu/job-hunter/internal/applicator"
	"github.com/mathieu/job-hunter/internal/contacts"
	"github.com/mathieu/job-hunter/internal/fetch"
	"github.com/mathieu/job-hunter/internal/letters"
	"github.com/mathieu/job-hunter/internal/mailer"
	"github.com/mathieu/job-hunter/internal/reporter"
	"github.com/mathieu/job-hunter/internal/scraper"
	"github.com/mathieu/job-hunter/internal/store"
	"github.com/mathieu/job-hunter/internal/types"
)

type fakeBoard struct {
	listings []types.JobListing
}

func (f *fakeBoard) Board() string { return types.BoardIndeed }

func (f *fakeBoard) Search(_ context.Context, _, _ string) ([]types.JobListing, error) {
	return f.listings, nil
}

type fakeTransport struct {
	sent []mailer.Message
}

func (f *fakeTransport) Send(_ context.Context, msg mailer.Message) error {
	f.sent = append(f.sent, msg)
	return nil
}

// listingsWithEmails builds n listings whose descriptions carry a contact
// address, so enrichment succeeds without any network access.
func listingsWithEmails(n int) []types.JobListing {
	out := make([]types.JobListing, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, types.JobListing{
			Title:       fmt.Sprintf("Développeur Go %d", i),
			Company:     fmt.Sprintf("Exemple SARL %d", i),
			Location:    "Paris (75)",
			URL:         fmt.Sprintf("https://fr.indeed.com/voir-emploi?jk=%04d", i),
			Board:       types.BoardIndeed,
			Description: fmt.Sprintf("Candidature par email: rh%d@exemple.fr", i),
		})
	}
	return out
}

func newTestDeps(t *testing.T, listings []types.JobListing, transport mailer.Transport, maxPerDay int) Deps {
	t.Helper()

	s, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	gen := letters.NewGenerator("Mathieu Dupont", nil, nil)
	return Deps{
		Store:    s,
		Scrapers: scraper.NewAggregator(nil, &fakeBoard{listings: listings}),
		Contacts: contacts.NewFinder(fetch.NewClient(fetch.Options{}), nil, nil),
		Applicator: applicator.New(s, transport, gen, applicator.Options{
			From:      "mathieu@exemple.fr",
			MaxPerDay: maxPerDay,
		}, nil),
		Reporter: reporter.New(s, t.TempDir(), nil),
	}
}

func testOptions() Options {
	return Options{
		Queries:     []string{"développeur go"},
		Location:    "Île-de-France",
		EnrichPause: time.Millisecond,
	}
}

func TestRun_FullFlow(t *testing.T) {
	transport := &fakeTransport{}
	deps := newTestDeps(t, listingsWithEmails(2), transport, 5)
	var out bytes.Buffer
	deps.Out = &out

	stats, err := Run(context.Background(), deps, testOptions())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Found)
	assert.Equal(t, 2, stats.Created)
	assert.Equal(t, 2, stats.Enriched)
	assert.Equal(t, 2, stats.Applied.Sent)
	assert.Len(t, stats.Reports, 4)
	assert.Equal(t, 2, stats.Summary.Sent)
	assert.Equal(t, 2, stats.Summary.Total)
	assert.Len(t, transport.sent, 2)

	for step := 1; step <= 6; step++ {
		assert.Contains(t, out.String(), fmt.Sprintf("Step %d/6:", step))
	}
	assert.Contains(t, out.String(), "APPLICATION STATUS SUMMARY")
}

func TestRun_SecondRunCreatesAndSendsNothing(t *testing.T) {
	transport := &fakeTransport{}
	deps := newTestDeps(t, listingsWithEmails(3), transport, 5)
	deps.Out = &bytes.Buffer{}

	_, err := Run(context.Background(), deps, testOptions())
	require.NoError(t, err)
	require.Len(t, transport.sent, 3)

	stats, err := Run(context.Background(), deps, testOptions())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Found, "boards still list the same postings")
	assert.Equal(t, 0, stats.Created, "all postings already tracked")
	assert.Equal(t, 0, stats.Applied.Sent, "nothing pending, nothing sent")
	assert.Len(t, transport.sent, 3)
}

func TestRun_NoListingsNoEmails(t *testing.T) {
	transport := &fakeTransport{}
	deps := newTestDeps(t, nil, transport, 5)
	deps.Out = &bytes.Buffer{}

	stats, err := Run(context.Background(), deps, testOptions())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Found)
	assert.Equal(t, 0, stats.Created)
	assert.Equal(t, 0, stats.Applied.Sent)
	assert.Empty(t, transport.sent)
	assert.Len(t, stats.Reports, 4, "reports are written even for an empty table")
}

func TestRun_EnrichLimitBoundsLookups(t *testing.T) {
	transport := &fakeTransport{}
	deps := newTestDeps(t, listingsWithEmails(7), transport, 10)
	deps.Out = &bytes.Buffer{}

	opts := testOptions()
	opts.EnrichLimit = 2
	stats, err := Run(context.Background(), deps, opts)
	require.NoError(t, err)

	assert.Equal(t, 7, stats.Created)
	assert.Equal(t, 2, stats.Enriched)
	assert.Equal(t, 2, stats.Applied.Sent, "only enriched records have an address to send to")
}

func TestRun_CapLimitsFullFlow(t *testing.T) {
	transport := &fakeTransport{}
	deps := newTestDeps(t, listingsWithEmails(8), transport, 3)
	deps.Out = &bytes.Buffer{}

	opts := testOptions()
	opts.EnrichLimit = 8
	stats, err := Run(context.Background(), deps, opts)
	require.NoError(t, err)

	assert.Equal(t, 8, stats.Enriched)
	assert.Equal(t, 3, stats.Applied.Sent)
	assert.True(t, stats.Applied.CapReached)
	assert.Len(t, transport.sent, 3)
	assert.Equal(t, 5, stats.Summary.Pending)
	assert.Equal(t, 3, stats.Summary.Sent)
}
