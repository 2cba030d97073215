package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agent_newsroom/audit"
	"agent_newsroom/generator"
	"agent_newsroom/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(afero.NewMemMapFs(), "pages", "images")
	require.NoError(t, err)
	return s
}

func TestWriter(t *testing.T) {
	ctx := context.Background()

	t.Run("Should append a user and an assistant turn per request", func(t *testing.T) {
		llm := &scriptedLLM{replies: []string{"# Title\n\nBody"}}
		w, err := NewWriter(llm)
		require.NoError(t, err)

		d, err := w.Draft(ctx, "write about parks")
		require.NoError(t, err)
		assert.Equal(t, "Title", d.Title)

		hist := w.History()
		require.Len(t, hist, 3)
		assert.Equal(t, generator.RoleUser, hist[1].Role)
		assert.Equal(t, generator.RoleAssistant, hist[2].Role)
		assert.Equal(t, generator.WriterInstruction, llm.prompts[0].System)
		assert.Equal(t, "write about parks", llm.prompts[0].User)
	})

	t.Run("Should send earlier turns as working memory", func(t *testing.T) {
		llm := &scriptedLLM{replies: []string{"first", "second"}}
		w, _ := NewWriter(llm)
		_, err := w.HandleRequest(ctx, "one")
		require.NoError(t, err)
		_, err = w.HandleRequest(ctx, "two")
		require.NoError(t, err)
		require.Len(t, llm.prompts[1].History, 2)
		assert.Equal(t, "first", llm.prompts[1].History[1].Content)
	})

	t.Run("Should not call the model when nothing is pending", func(t *testing.T) {
		llm := &scriptedLLM{}
		w, _ := NewWriter(llm)
		_, err := w.GetResponse(ctx)
		assert.ErrorIs(t, err, ErrNothingToProcess)
		assert.Zero(t, llm.calls())
	})

	t.Run("Should surface model failures without recording a reply", func(t *testing.T) {
		boom := errors.New("transport down")
		w, _ := NewWriter(&scriptedLLM{err: boom})
		_, err := w.HandleRequest(ctx, "x")
		assert.ErrorIs(t, err, boom)
		assert.Len(t, w.History(), 2)
	})

	t.Run("Should reject an empty draft", func(t *testing.T) {
		w, _ := NewWriter(&scriptedLLM{replies: []string{"   "}})
		_, err := w.Draft(ctx, "x")
		assert.ErrorIs(t, err, generator.ErrEmptyResponse)
	})

	t.Run("Should require a client", func(t *testing.T) {
		_, err := NewWriter(nil)
		assert.Error(t, err)
	})
}

func TestCensor(t *testing.T) {
	ctx := context.Background()

	t.Run("Should flag revision when the reply contains the marker", func(t *testing.T) {
		llm := &scriptedLLM{replies: []string{"Weak intro. Decision: REVISE."}}
		c, err := NewCensor(llm, "")
		require.NoError(t, err)
		v, err := c.Review(ctx, "ARTICLE")
		require.NoError(t, err)
		assert.True(t, v.NeedsRevision())
		assert.Contains(t, llm.prompts[0].User, "ARTICLE")
		assert.Equal(t, generator.DefaultRevisionMarker, c.Marker())
	})

	t.Run("Should approve when the marker is absent", func(t *testing.T) {
		c, _ := NewCensor(&scriptedLLM{replies: []string{"Fine. Decision: approve."}}, "rework")
		v, err := c.Review(ctx, "ARTICLE")
		require.NoError(t, err)
		assert.False(t, v.NeedsRevision())
		assert.Equal(t, "Fine. Decision: approve.", v.Detail)
	})
}

func TestArtist(t *testing.T) {
	ctx := context.Background()

	t.Run("Should store the image and return its path", func(t *testing.T) {
		st := newStore(t)
		a, err := NewArtist(fakeImages{data: []byte("png")}, st)
		require.NoError(t, err)

		img, err := a.Illustrate(ctx, "a park")
		require.NoError(t, err)
		assert.True(t, img.Produced)
		assert.True(t, strings.HasPrefix(img.Path, "images/"))
		hist := a.History()
		assert.Equal(t, "image saved: "+img.Path, hist[len(hist)-1].Content)
	})

	t.Run("Should report no image as a non-error outcome", func(t *testing.T) {
		a, _ := NewArtist(fakeImages{}, newStore(t))
		img, err := a.Illustrate(ctx, "a park")
		require.NoError(t, err)
		assert.False(t, img.Produced)
		assert.Empty(t, img.Path)

		path, err := a.HandleRequest(ctx, "again")
		require.NoError(t, err)
		assert.Empty(t, path)
	})

	t.Run("Should surface generation failures", func(t *testing.T) {
		boom := errors.New("quota")
		a, _ := NewArtist(fakeImages{err: boom}, newStore(t))
		_, err := a.Illustrate(ctx, "a park")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("Should answer a pending prompt through GetResponse", func(t *testing.T) {
		a, _ := NewArtist(fakeImages{}, newStore(t))
		a.AddUserMessage("a park")
		out, err := a.GetResponse(ctx)
		require.NoError(t, err)
		assert.Equal(t, "no image produced", out)
	})
}

func TestLayout(t *testing.T) {
	ctx := context.Background()

	t.Run("Should render and store the page", func(t *testing.T) {
		st := newStore(t)
		l, err := NewLayout(st)
		require.NoError(t, err)

		path, err := l.Render(ctx, generator.PageBundle{
			Title:   "Parks",
			Content: "Body",
			Logs:    audit.Log{Actions: []audit.Action{{Agent: "Coordinator", Action: "start"}}},
		})
		require.NoError(t, err)
		data, err := st.Read(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<title>Parks</title>")
	})

	t.Run("Should fail on a malformed bundle", func(t *testing.T) {
		l, _ := NewLayout(newStore(t))
		_, err := l.HandleRequest(ctx, "not json")
		assert.ErrorContains(t, err, "decode page bundle")
	})
}

func TestCanHandle(t *testing.T) {
	w, _ := NewWriter(&scriptedLLM{})
	c, _ := NewCensor(&scriptedLLM{}, "")
	a, _ := NewArtist(fakeImages{}, newStore(t))
	l, _ := NewLayout(newStore(t))
	g, _ := NewAssistant(&scriptedLLM{})

	assert.True(t, w.CanHandle("Please WRITE something"))
	assert.False(t, w.CanHandle("draw me"))
	assert.True(t, c.CanHandle("review this"))
	assert.True(t, a.CanHandle("Draw a cat"))
	assert.True(t, l.CanHandle("make an HTML page"))
	assert.True(t, g.CanHandle("anything at all"))
}
