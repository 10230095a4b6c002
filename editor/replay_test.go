package editor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/rosterboard/dsl"
	"github.com/ByLCY/rosterboard/layout"
)

const replaySurface = `
surface Roster 2000x1414 {
  rendered 0 0 1000x707
  viewport 1440x900
  block monday left 100 top 100 width 400 min-height 60 {
    title size 28px { "Monday" }
    description { "${menu.monday|Soup of the day}" }
  }
}
`

func newReplayApp(t *testing.T) (*App, *recordingDownloader) {
	t.Helper()
	doc, err := dsl.ParseString(replaySurface)
	require.NoError(t, err)
	s, err := layout.Build(doc, layout.BuildOptions{})
	require.NoError(t, err)
	dl := &recordingDownloader{}
	app, err := New(s, testConfig(), Deps{Renderer: &stubRenderer{}, Downloader: dl})
	require.NoError(t, err)
	return app, dl
}

func TestPlayDragStyleAndExport(t *testing.T) {
	app, dl := newReplayApp(t)
	script, err := dsl.ParseScriptString(`
session {
  down 100 52
  move 200 152
  up
  press plus
  press bold
  export
}
`)
	require.NoError(t, err)
	require.NoError(t, app.Play(context.Background(), script))

	b, ok := app.Surface().Block("monday")
	require.True(t, ok)
	assert.InDelta(t, 300, b.Left, 1e-9)
	assert.InDelta(t, 300, b.Top, 1e-9)
	assert.Equal(t, 18.0, b.FontSize)
	assert.Equal(t, 30.0, b.Nodes[0].FontSize)
	assert.Equal(t, 900, b.FontWeight)
	assert.Equal(t, "Soup of the day", b.Nodes[1].Content)
	assert.Len(t, dl.downloads, 1)
	assert.Nil(t, app.Selection.Current())
}

func TestPlayShowsToolbarAfterRelease(t *testing.T) {
	app, _ := newReplayApp(t)
	script, err := dsl.ParseScriptString(`session {
  down 100 52
  move 110 52
}`)
	require.NoError(t, err)
	require.NoError(t, app.Play(context.Background(), script))
	assert.False(t, app.Toolbar.Visible())

	script, err = dsl.ParseScriptString("session {\n  up\n}")
	require.NoError(t, err)
	require.NoError(t, app.Play(context.Background(), script))
	assert.True(t, app.Toolbar.Visible())
}

func TestPlayRenderedChangesScale(t *testing.T) {
	app, _ := newReplayApp(t)
	script, err := dsl.ParseScriptString(`session {
  rendered 0 0 2000x1414
  viewport 2200x1500
  down 200 104
  move 300 204
  up
}`)
	require.NoError(t, err)
	require.NoError(t, app.Play(context.Background(), script))

	b, _ := app.Surface().Block("monday")
	assert.InDelta(t, 200, b.Left, 1e-9)
	assert.InDelta(t, 200, b.Top, 1e-9)
	assert.Equal(t, layout.Size{Width: 2200, Height: 1500}, app.Surface().Viewport)
}

func TestPlayRejectsBadCommands(t *testing.T) {
	app, _ := newReplayApp(t)
	for _, src := range []string{
		"session {\n  jump 1 2\n}",
		"session {\n  press italic\n}",
		"session {\n  down 1\n}",
		"session {\n  viewport 12\n}",
		"session {\n  speed: 2\n}",
	} {
		script, err := dsl.ParseScriptString(src)
		require.NoError(t, err, src)
		assert.Error(t, app.Play(context.Background(), script), src)
	}
}
