package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPunktSplitter(t *testing.T) {
	splitter, err := NewPunktSplitter()
	require.NoError(t, err)

	assert.Equal(t, []string{"I love this!", "I hate waiting."}, splitter.Split("I love this! I hate waiting."))
	assert.Equal(t, []string{"Today was fine."}, splitter.Split("  Today was fine.  "))
	assert.Empty(t, splitter.Split("   "))
}
