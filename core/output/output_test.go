package output

import (
	"bytes"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opensvc/jnodes/core/nodescript"
	"github.com/opensvc/jnodes/core/verb"
	"github.com/opensvc/jnodes/util/render/palette"
)

func withColor(t *testing.T, enabled bool) {
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })
	color.NoColor = !enabled
}

func TestRendererFormats(t *testing.T) {
	data := nodescript.Request{Verb: verb.Offline, Nodes: []string{"web3"}, Actor: "carol"}

	s, err := Renderer{Output: "json", Data: data}.Sprint()
	require.NoError(t, err)
	assert.JSONEq(t, `{"verb":"offline-nodes","nodes":["web3"],"actor":"carol"}`, s)

	s, err = Renderer{Output: "yaml", Data: data}.Sprint()
	require.NoError(t, err)
	assert.Contains(t, s, "verb: offline-nodes\n")
	assert.Contains(t, s, "- web3\n")
	assert.Contains(t, s, "actor: carol\n")

	s, err = Renderer{Output: "human", Data: data, HumanRenderer: func() string { return "script\n" }}.Sprint()
	require.NoError(t, err)
	assert.Equal(t, "script\n", s)

	_, err = Renderer{Output: "xml", Data: data}.Sprint()
	assert.Error(t, err)
}

func TestStateWriterColor(t *testing.T) {
	withColor(t, true)
	var b bytes.Buffer
	w := NewStateWriter(&b, palette.DefaultFuncPalette())

	// lines split across writes
	_, err := w.Write([]byte("n1: onl"))
	require.NoError(t, err)
	assert.Equal(t, "", b.String())
	_, err = w.Write([]byte("ine\nn2: hudson.remoting.ChannelClosedException: channel is already closed\nplain text\nn3: disconnected"))
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	expected := "n1: \x1b[32monline\x1b[0m\n" +
		"n2: \x1b[31mhudson.remoting.ChannelClosedException\x1b[0m: channel is already closed\n" +
		"plain text\n" +
		"n3: \x1b[90mdisconnected\x1b[0m"
	assert.Equal(t, expected, b.String())
}

func TestStateWriterNoColor(t *testing.T) {
	withColor(t, false)
	var b bytes.Buffer
	w := NewStateWriter(&b, nil)
	in := "n1: online\nn1: linux docker\n"
	_, err := w.Write([]byte(in))
	require.NoError(t, err)
	require.NoError(t, w.Flush())
	assert.Equal(t, in, b.String())
}

func TestSetColor(t *testing.T) {
	withColor(t, false)
	SetColor("yes", nil)
	assert.False(t, color.NoColor)
	SetColor("no", nil)
	assert.True(t, color.NoColor)
}

func TestUseColor(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "stderr")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, UseColor("auto", f), "auto on a regular file")
	assert.False(t, UseColor("auto", nil))
	assert.True(t, UseColor("yes", f))
	assert.False(t, UseColor("no", f))
}
