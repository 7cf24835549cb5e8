package adapters

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPagerWritesThroughWithoutTerminal(t *testing.T) {
	out := &bytes.Buffer{}
	pager := PagerAdapter{Out: out}

	require.NoError(t, pager.Page("license body"))
	assert.Equal(t, "license body\n", out.String())
}

func TestPagerKeepsTrailingNewline(t *testing.T) {
	out := &bytes.Buffer{}
	pager := PagerAdapter{Out: out}

	require.NoError(t, pager.Page("license body\n"))
	assert.Equal(t, "license body\n", out.String())
}

func TestPagerCommandsHonorEnvironment(t *testing.T) {
	t.Setenv("PAGER", "less -R")
	assert.Equal(t, [][]string{{"less", "-R"}, {"less"}, {"more"}}, pagerCommands())

	t.Setenv("PAGER", "")
	assert.Equal(t, [][]string{{"less"}, {"more"}}, pagerCommands())
}
