package bootstrap

import (
	"context"

	"github.com/gin-gonic/gin"

	"docchat-backend/internal/analysis"
	"docchat-backend/internal/chat"
	"docchat-backend/internal/documents"
	"docchat-backend/internal/ingest"
	"docchat-backend/internal/llm"
	"docchat-backend/internal/llm/gemini"
	"docchat-backend/internal/llm/openai"
	"docchat-backend/internal/server"
	"docchat-backend/internal/shared/config"
	"docchat-backend/internal/shared/storage/object"
	localstore "docchat-backend/internal/shared/storage/object/local"
	s3store "docchat-backend/internal/shared/storage/object/s3"
	"docchat-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config  config.Config
	Router  *gin.Engine
	Objects object.ObjectStore
	LLM     llm.Client
	Docs    *documents.Store

	DocumentsService *documents.Service
	Processor        *ingest.Processor

	DocumentsHandler *documents.Handler
	IngestHandler    *ingest.Handler
	ChatHandler      *chat.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	store, err := buildObjectStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		Objects: store,
		LLM:     llmClient,
		Docs:    documents.NewStore(),
	}

	app.DocumentsService = documents.NewService(app.Docs, app.Objects)
	app.Processor = ingest.NewProcessor(app.Objects, analysis.NewAnalyzer(app.LLM), app.Docs)

	app.DocumentsHandler = documents.NewHandler(app.DocumentsService)
	app.IngestHandler = ingest.NewHandler(app.Processor)
	app.ChatHandler = chat.NewHandler(app.Docs, app.LLM)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		Docs:             app.Docs,
		AIAvailable:      aiAvailable(cfg),
		DocumentsHandler: app.DocumentsHandler,
		IngestHandler:    app.IngestHandler,
		ChatHandler:      app.ChatHandler,
	})

	return app, nil
}

func buildObjectStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			telemetry.Warn("bootstrap.no_api_key", map[string]any{"provider": cfg.LLMProvider})
			return llm.PlaceholderClient{}, nil
		}
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			// Ingestion and listing still work; analysis and chat degrade.
			telemetry.Warn("bootstrap.no_api_key", map[string]any{"provider": cfg.LLMProvider})
			return llm.PlaceholderClient{}, nil
		}
		return gemini.NewClient(cfg.GeminiAPIKey, cfg.LLMModel)
	default:
		return llm.PlaceholderClient{}, nil
	}
}

func aiAvailable(cfg config.Config) bool {
	switch cfg.LLMProvider {
	case "openai":
		return cfg.OpenAIAPIKey != ""
	case "gemini":
		return cfg.GeminiAPIKey != ""
	default:
		return false
	}
}
