package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"agent_newsroom/agent"
	"agent_newsroom/config"
	"agent_newsroom/generator"
	"agent_newsroom/logging"
	"agent_newsroom/pipeline"
	"agent_newsroom/server"
	"agent_newsroom/store"
)

type topicList []string

func (t *topicList) String() string { return strings.Join(*t, ", ") }

func (t *topicList) Set(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errors.New("topic must not be empty")
	}
	*t = append(*t, v)
	return nil
}

func main() {
	var topics topicList
	configPath := flag.String("config", "", "path to config file (.json, .yaml or .yml); env only when empty")
	flag.Var(&topics, "topic", "article topic (repeatable)")
	parallel := flag.Int("parallel", 1, "number of topics processed concurrently")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	verbose := flag.Bool("v", false, "enable debug logs")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	level := cfg.Log.Level
	if *verbose {
		level = "debug"
	}
	logger := logging.New(logging.Options{Level: level, JSON: cfg.Log.JSON})
	log.SetDefault(logger)

	st, err := store.New(afero.NewOsFs(), cfg.Output.PagesDir, cfg.Output.ImagesDir)
	if err != nil {
		logger.Fatal("open store", "err", err)
	}
	orch, err := buildOrchestrator(cfg, st, logger)
	if err != nil {
		logger.Fatal("build pipeline", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Web server mode
	if *serve {
		listen := cfg.ServerAddr
		if *addr != "" {
			listen = *addr
		}
		if err := runServer(ctx, listen, orch, st, logger); err != nil {
			logger.Fatal("server stopped", "err", err)
		}
		return
	}

	topics = append(topics, flag.Args()...)
	if len(topics) == 0 {
		fmt.Fprintln(os.Stderr, "--topic is required unless --serve is set")
		os.Exit(1)
	}
	results := runBatch(ctx, orch, topics, *parallel)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	failed := false
	for _, res := range results {
		if err := enc.Encode(res); err != nil {
			logger.Fatal("encode result", "err", err)
		}
		failed = failed || res.Failed()
	}
	if failed {
		os.Exit(1)
	}
}

// runBatch runs every topic in its own isolated run, at most parallel at a time.
// Results keep the order of topics.
func runBatch(ctx context.Context, orch *pipeline.Orchestrator, topics []string, parallel int) []pipeline.Result {
	if parallel < 1 {
		parallel = 1
	}
	results := make([]pipeline.Result, len(topics))
	var g errgroup.Group
	g.SetLimit(parallel)
	for i, topic := range topics {
		i, topic := i, topic
		g.Go(func() error {
			results[i] = orch.Run(ctx, topic)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func runServer(ctx context.Context, listen string, orch *pipeline.Orchestrator, st *store.Store, logger *log.Logger) error {
	srv, err := server.New(orch, st, server.WithLogger(logger))
	if err != nil {
		return err
	}
	httpSrv := &http.Server{Addr: listen, Handler: srv.Routes()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting web server", "addr", listen)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return httpSrv.Shutdown(context.Background())
	})
	return g.Wait()
}

// buildOrchestrator wires the capabilities into a registry. The Coordinator is
// registered last so free-form requests asking for a whole article reach the pipeline.
func buildOrchestrator(cfg config.Config, st *store.Store, logger *log.Logger) (*pipeline.Orchestrator, error) {
	llm, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}
	images, err := buildImages(cfg)
	if err != nil {
		return nil, err
	}

	writer, err := agent.NewWriter(llm)
	if err != nil {
		return nil, err
	}
	censor, err := agent.NewCensor(llm, cfg.Review.RevisionMarker)
	if err != nil {
		return nil, err
	}
	artist, err := agent.NewArtist(images, st)
	if err != nil {
		return nil, err
	}
	layout, err := agent.NewLayout(st)
	if err != nil {
		return nil, err
	}
	assistant, err := agent.NewAssistant(llm)
	if err != nil {
		return nil, err
	}
	reg, err := agent.NewRegistry(writer, censor, artist, layout, assistant)
	if err != nil {
		return nil, err
	}
	orch, err := pipeline.New(reg, pipeline.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if err := reg.Register(pipeline.NewCoordinator(orch)); err != nil {
		return nil, err
	}
	return orch, nil
}

func buildLLM(cfg config.Config) (generator.LLMClient, error) {
	if cfg.LLM == nil || cfg.LLM.Provider == "" {
		return nil, fmt.Errorf("llm config missing; please set llm.provider/model/api_key in config")
	}
	switch cfg.LLM.Provider {
	case config.ProviderMock:
		return generator.MockLLM{}, nil
	case config.ProviderOpenAI, config.ProviderDeepSeek:
		// DeepSeek 提供 OpenAI 兼容接口，需填写 base_url（例如官方/网关地址）。
		return generator.NewOpenAILLMFromConfig(&generator.LLMSettings{
			Provider: cfg.LLM.Provider,
			Model:    cfg.LLM.Model,
			APIKey:   cfg.LLM.APIKey,
			BaseURL:  cfg.LLM.BaseURL,
		})
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}

func buildImages(cfg config.Config) (generator.ImageClient, error) {
	if cfg.Image == nil {
		return generator.NoImages{}, nil
	}
	switch cfg.Image.Provider {
	case config.ProviderMock:
		return generator.MockImages{}, nil
	case config.ProviderNone, "":
		return generator.NoImages{}, nil
	case config.ProviderOpenAI:
		return generator.NewOpenAIImagesFromConfig(&generator.ImageSettings{
			Model:   cfg.Image.Model,
			Size:    cfg.Image.Size,
			APIKey:  cfg.Image.APIKey,
			BaseURL: cfg.Image.BaseURL,
		})
	default:
		return nil, fmt.Errorf("image provider %s not supported", cfg.Image.Provider)
	}
}
