package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	require.Len(t, c.Timeline, 5)
	assert.Equal(t, "I", c.Timeline[0].Step)
	assert.Equal(t, "Real applications", c.Timeline[4].Title)

	require.NotEmpty(t, c.Projects)
	first := c.Projects[0]
	assert.Equal(t, "aurora-skinlab", first.ID)
	assert.Equal(t, "2024", first.Year)
	assert.Len(t, first.Images, 4)
	assert.Equal(t, "mood", first.Images[0].ID)
}
