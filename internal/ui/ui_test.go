package ui

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintTable(t *testing.T) {
	pterm.DisableColor()
	t.Cleanup(pterm.EnableColor)

	var buf bytes.Buffer

	err := PrintTable([][]string{
		{"#", "FLOWER", "EARNED"},
		{"1", "Rose", "Oct 17, 2026 09:25 AM"},
	}, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "FLOWER")
	assert.Contains(t, out, "Rose")
}

func TestThemeKeepsText(t *testing.T) {
	pterm.DisableColor()
	t.Cleanup(pterm.EnableColor)

	for _, dark := range []bool{true, false} {
		SetDarkTheme(dark)

		assert.Equal(t, "3", Green(3))
		assert.Equal(t, "Summary", Blue("Summary"))
	}

	SetDarkTheme(true)
}
