package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestPrintTable(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	var buf bytes.Buffer

	PrintTable(&buf, []string{"#", "TAG"}, [][]string{
		{"1", "writing"},
		{"2", "reading"},
	})

	out := buf.String()

	assert.Contains(t, out, "TAG")
	assert.Contains(t, out, "writing")
	assert.Less(t, strings.Index(out, "writing"), strings.Index(out, "reading"))
}

func TestColoursKeepText(t *testing.T) {
	for _, dark := range []bool{true, false} {
		DarkTheme = dark

		assert.Contains(t, Green("done"), "done")
		assert.Contains(t, Highlight("25m"), "25m")
	}

	DarkTheme = false
}
