package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/austin/contracts-mcp/internal/assistant"
	"github.com/austin/contracts-mcp/internal/config"
	"github.com/austin/contracts-mcp/internal/kv"
	"github.com/austin/contracts-mcp/internal/models"
	"github.com/austin/contracts-mcp/internal/server"
	"github.com/austin/contracts-mcp/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	kvStore, err := kv.Open(cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open data store: %v\n", err)
		os.Exit(1)
	}
	defer kvStore.Close()

	st := store.New(kvStore, store.Options{
		DefaultMode: models.ParseStorageMode(cfg.DefaultMode),
		ExportDir:   cfg.ExportDir,
	})

	// Load the local workbook database on startup if one exists; otherwise
	// the bundled sample dataset stays active.
	if data, err := os.ReadFile(cfg.DatabaseFile); err == nil {
		if _, err := st.ImportFromFile(ctx, data); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to import %s: %v\n", cfg.DatabaseFile, err)
		}
	}

	var chatModel model.ToolCallingChatModel
	if cfg.AI.APIKey != "" {
		chatModel, err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:  cfg.AI.APIKey,
			BaseURL: cfg.AI.BaseURL,
			Model:   cfg.AI.Model,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: chat model unavailable: %v\n", err)
			chatModel = nil
		}
	}
	ai := assistant.New(chatModel)

	// Create MCP server
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "contracts-mcp",
		Version: "1.0.0",
	}, nil)

	// Register tools with the server
	server.RegisterTools(mcpServer, st, ai, cfg.ExportDir)

	// Run the server on stdio transport
	if err := mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
