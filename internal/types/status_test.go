//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus_Valid(t *testing.T) {
	for _, want := range AllStatuses() {
		got, err := ParseStatus(string(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseStatus_NormalizesInput(t *testing.T) {
	got, err := ParseStatus("  Interview ")
	require.NoError(t, err)
	assert.Equal(t, StatusInterview, got)

	got, err = ParseStatus("SENT")
	require.NoError(t, err)
	assert.Equal(t, StatusSent, got)
}

func TestParseStatus_Unknown(t *testing.T) {
	_, err := ParseStatus("ghosted")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownStatus)
	assert.Contains(t, err.Error(), "ghosted")
}

func TestStatus_Sendable(t *testing.T) {
	assert.True(t, StatusPending.Sendable())

	// anything past pending must never be dispatched again
	for _, s := range []Status{StatusSent, StatusInterview, StatusRejected, StatusAccepted} {
		assert.False(t, s.Sendable(), "status %s should not be sendable", s)
	}
}

func TestStatus_Responded(t *testing.T) {
	assert.False(t, StatusPending.Responded())
	assert.False(t, StatusSent.Responded())
	assert.True(t, StatusInterview.Responded())
	assert.True(t, StatusRejected.Responded())
	assert.True(t, StatusAccepted.Responded())
}

func TestStatus_Valid(t *testing.T) {
	assert.False(t, Status("").Valid())
	assert.False(t, Status("Pending").Valid()) // case-sensitive at the type level
	assert.True(t, StatusAccepted.Valid())
}
