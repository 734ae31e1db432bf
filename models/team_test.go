package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTeamStatus(t *testing.T) {
	for _, valid := range []string{"pending", "approved", "rejected"} {
		status, err := ParseTeamStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, TeamStatus(valid), status)
	}

	for _, invalid := range []string{"", "Pending", "APPROVED", "banned", "not-a-status"} {
		_, err := ParseTeamStatus(invalid)
		assert.Error(t, err, "status %q", invalid)
	}
}

func TestTeamDocument(t *testing.T) {
	team := Team{}
	assert.False(t, team.HasDocument())
	assert.Equal(t, "", team.Document())

	path := "team-documents/abc.pdf"
	team.DocumentPath = &path
	assert.True(t, team.HasDocument())
	assert.Equal(t, path, team.Document())

	empty := ""
	team.DocumentPath = &empty
	assert.False(t, team.HasDocument())
}
