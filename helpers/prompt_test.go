package helpers

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineAsker(t *testing.T) {
	var out bytes.Buffer
	asker := NewLineAsker(strings.NewReader(" example.com \n\nyes\n"), &out)

	answer, err := asker.Ask("Domain name")
	require.NoError(t, err)
	assert.Equal(t, "example.com", answer)

	answer, err = asker.Ask("Admin email")
	require.NoError(t, err)
	assert.Equal(t, "", answer)

	assert.True(t, asker.Confirm("Continue?", false))
	assert.False(t, asker.Confirm("Again?", false))

	_, err = asker.Ask("Nothing left")
	assert.Error(t, err)
	assert.Contains(t, out.String(), "Domain name: ")
}

func TestInteractiveNeedsTerminals(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	noEnv := func(string) string { return "" }
	assert.False(t, Interactive(r, w, noEnv))
	assert.False(t, Interactive(r, nil, noEnv))

	useDefault := func(key string) string {
		if key == "GO_PROMPTER_USE_DEFAULT" {
			return "1"
		}
		return ""
	}
	assert.False(t, Interactive(os.Stdin, os.Stdout, useDefault))
}

func TestTerminalAskerWithoutTerminal(t *testing.T) {
	if Interactive(os.Stdin, os.Stdout, os.Getenv) {
		t.Skip("running on a terminal")
	}

	_, err := TerminalAsker{}.Ask("Domain name")
	assert.ErrorIs(t, err, io.EOF)
	assert.IsType(t, &LineAsker{}, NewAsker())
}
