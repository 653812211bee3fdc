package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCommand_Summary(t *testing.T) {
	dbPath := testDBPath(t)
	st := openTestDB(t, dbPath)
	seedApplication(t, st, "Exemple SARL", "https://fr.indeed.com/voir-emploi?jk=3001", "rh@exemple.fr")
	seedApplication(t, st, "Autre SAS", "https://fr.indeed.com/voir-emploi?jk=3002", "")

	cmd := agentCommand(t, dbPath, []string{"status"})
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "status should succeed: %s", string(output))
	assert.Contains(t, string(output), "APPLICATION STATUS SUMMARY")
	assert.Contains(t, string(output), "Total Applications")
	assert.Contains(t, string(output), "Pending")
}
