package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/rephraser/internal/presentation/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, "1.2.3")

	assert.Contains(t, buf.String(), "version 1.2.3")
	assert.Contains(t, buf.String(), "|_|")
}

func TestNewRenderer_Plain(t *testing.T) {
	render := tui.NewRenderer(true)
	out, err := render("# Model\n\n| a | b |\n")
	require.NoError(t, err)
	assert.Equal(t, "# Model\n\n| a | b |\n", out)
}

func TestNewRenderer_Styled(t *testing.T) {
	render := tui.NewRenderer(false)
	out, err := render("# Model\n\ncontexts: 12\n")
	require.NoError(t, err)
	assert.Contains(t, out, "contexts: 12")
}
