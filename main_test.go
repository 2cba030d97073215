package main

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agent_newsroom/agent"
	"agent_newsroom/config"
	"agent_newsroom/generator"
	"agent_newsroom/pipeline"
	"agent_newsroom/store"
)

func mockConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.LoadWith("", func(key string) (string, bool) {
		if key == "LLM_PROVIDER" {
			return config.ProviderMock, true
		}
		return "", false
	})
	require.NoError(t, err)
	return cfg
}

func TestBuildClients(t *testing.T) {
	t.Run("Should build mock clients", func(t *testing.T) {
		cfg := mockConfig(t)
		llm, err := buildLLM(cfg)
		require.NoError(t, err)
		assert.IsType(t, generator.MockLLM{}, llm)

		images, err := buildImages(cfg)
		require.NoError(t, err)
		assert.IsType(t, generator.MockImages{}, images)
	})

	t.Run("Should build OpenAI-compatible clients", func(t *testing.T) {
		cfg := config.Config{
			LLM:   &config.LLMConfig{Provider: config.ProviderDeepSeek, Model: "deepseek-chat", APIKey: "k", BaseURL: "https://example.test/v1"},
			Image: &config.ImageConfig{Provider: config.ProviderNone},
		}
		llm, err := buildLLM(cfg)
		require.NoError(t, err)
		assert.IsType(t, &generator.OpenAILLM{}, llm)

		images, err := buildImages(cfg)
		require.NoError(t, err)
		assert.IsType(t, generator.NoImages{}, images)
	})

	t.Run("Should reject missing settings", func(t *testing.T) {
		_, err := buildLLM(config.Config{})
		assert.Error(t, err)
		_, err = buildLLM(config.Config{LLM: &config.LLMConfig{Provider: config.ProviderOpenAI, Model: "gpt-4o"}})
		assert.Error(t, err)
		_, err = buildImages(config.Config{Image: &config.ImageConfig{Provider: "other"}})
		assert.Error(t, err)
	})
}

func TestBuildOrchestratorAndBatch(t *testing.T) {
	cfg := mockConfig(t)
	st, err := store.New(afero.NewMemMapFs(), cfg.Output.PagesDir, cfg.Output.ImagesDir)
	require.NoError(t, err)

	orch, err := buildOrchestrator(cfg, st, log.New(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, []agent.Kind{
		agent.KindDraft, agent.KindReview, agent.KindIllustrate, agent.KindRender,
		agent.KindGeneral, agent.KindOrchestrate,
	}, orch.Registry().Kinds())

	topics := []string{"Tides", "Lighthouses", "Fog"}
	results := runBatch(context.Background(), orch, topics, 2)
	require.Len(t, results, len(topics))
	ids := map[string]bool{}
	for i, res := range results {
		assert.Equal(t, topics[i], res.Topic)
		assert.Equal(t, pipeline.StatusCompleted, res.Status, res.Error)
		assert.True(t, res.ImageProduced)
		ids[res.RunID] = true
	}
	assert.Len(t, ids, len(topics))

	pages, err := st.ListPages()
	require.NoError(t, err)
	assert.Len(t, pages, len(topics))
}
