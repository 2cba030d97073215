package generator

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptFromHistory(t *testing.T) {
	t.Run("Should split system, history and trailing user turn", func(t *testing.T) {
		p := PromptFromHistory([]Message{
			{Role: RoleSystem, Content: "sys"},
			{Role: RoleUser, Content: "u1"},
			{Role: RoleAssistant, Content: "a1"},
			{Role: RoleUser, Content: "u2"},
		})
		assert.Equal(t, "sys", p.System)
		assert.Equal(t, "u2", p.User)
		require.Len(t, p.History, 2)
		assert.Equal(t, "a1", p.History[1].Content)
	})

	t.Run("Should leave User empty when the last turn is not a user turn", func(t *testing.T) {
		p := PromptFromHistory([]Message{
			{Role: RoleSystem, Content: "sys"},
			{Role: RoleUser, Content: "u1"},
			{Role: RoleAssistant, Content: "a1"},
		})
		assert.Empty(t, p.User)
		assert.Len(t, p.History, 2)
	})
}

func TestBuilders(t *testing.T) {
	t.Run("Should reference both article and review in the revision request", func(t *testing.T) {
		req := BuildRevisionRequest("ARTICLE-A", "REVIEW-R")
		assert.Contains(t, req, "ARTICLE-A")
		assert.Contains(t, req, "REVIEW-R")
	})

	t.Run("Should derive the image request from the topic only", func(t *testing.T) {
		req := BuildImagePromptRequest("City park renovation")
		assert.Contains(t, req, "City park renovation")
		assert.NotEqual(t, BuildArticleRequest("City park renovation"), req)
	})

	t.Run("Should mention the revision marker in the review request", func(t *testing.T) {
		assert.Contains(t, BuildReviewRequest("a", "rework"), "rework")
	})
}

func TestPostProcess(t *testing.T) {
	t.Run("Should extract title and digest", func(t *testing.T) {
		d, err := PostProcess("\n# Parks Reborn\n\nThe city reopens its park.\n\nMore text.")
		require.NoError(t, err)
		assert.Equal(t, "Parks Reborn", d.Title)
		assert.Equal(t, "The city reopens its park.", d.Digest)
	})

	t.Run("Should reject empty output", func(t *testing.T) {
		_, err := PostProcess("  \n ")
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})

	t.Run("Should fall back to a truncated digest", func(t *testing.T) {
		d, err := PostProcess("# Only a title")
		require.NoError(t, err)
		assert.Equal(t, "# Only a title", d.Digest)
	})
}

func TestMockClients(t *testing.T) {
	ctx := context.Background()

	out, err := MockLLM{}.Complete(ctx, Prompt{User: BuildReviewRequest("x", DefaultRevisionMarker)})
	require.NoError(t, err)
	assert.False(t, ParseVerdict(out, DefaultRevisionMarker).NeedsRevision())

	out, err = MockLLM{}.Complete(ctx, Prompt{User: BuildArticleRequest("Parks")})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# "))

	img, err := MockImages{}.Generate(ctx, "anything")
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), img[:4])

	img, err = NoImages{}.Generate(ctx, "anything")
	require.NoError(t, err)
	assert.Nil(t, img)
}
