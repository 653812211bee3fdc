package main

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mathieu/job-hunter/internal/store"
	"github.com/mathieu/job-hunter/internal/types"
)

// agentCommand builds a command for the binary with the database pointed at
// dbPath and every credential cleared. Later duplicate keys win, so extra
// entries override anything inherited from the test environment.
func agentCommand(t *testing.T, dbPath string, args []string, extra ...string) *exec.Cmd {
	t.Helper()
	cmd := exec.Command(getBinaryPath(t), args...)
	env := append(os.Environ(),
		"DATABASE_URL=sqlite://"+dbPath,
		"EMAIL_ADDRESS=",
		"EMAIL_PASSWORD=",
		"GEMINI_API_KEY=",
		"GOOGLE_SEARCH_API_KEY=",
		"GOOGLE_SEARCH_CX=",
	)
	cmd.Env = append(env, extra...)
	cmd.Dir = t.TempDir()
	return cmd
}

// smtpCreds enables the smtp transport. Nothing dials until an actual send,
// so tests that never reach a send can use these freely.
func smtpCreds() []string {
	return []string{
		"EMAIL_ADDRESS=mathieu@exemple.fr",
		"EMAIL_PASSWORD=motdepasse",
	}
}

// testDBPath returns a sqlite file path inside the test's temp dir.
func testDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "applications.db")
}

// openTestDB opens the sqlite file behind dbPath directly, for seeding
// records and for asserting on what the binary wrote.
func openTestDB(t *testing.T, dbPath string) *store.Store {
	t.Helper()
	ctx := context.Background()
	st, err := store.Open(ctx, "sqlite://"+dbPath)
	require.NoError(t, err)
	require.NoError(t, st.Migrate(ctx))
	t.Cleanup(func() { st.Close() })
	return st
}

// seedApplication inserts one pending record and returns its id.
func seedApplication(t *testing.T, st *store.Store, company, url, email string) int64 {
	t.Helper()
	app := store.NewApplication(types.JobListing{
		Title:    "Développeur Go",
		Company:  company,
		Location: "Paris",
		URL:      url,
		Board:    types.BoardIndeed,
	})
	app.ContactEmail = email
	id, err := st.CreateApplication(context.Background(), app)
	require.NoError(t, err)
	return id
}
