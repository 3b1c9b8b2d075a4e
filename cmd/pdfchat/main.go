package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"pdfchat/internal/chunker"
	"pdfchat/internal/config"
	"pdfchat/internal/embedding"
	"pdfchat/internal/extractor"
	"pdfchat/internal/history"
	"pdfchat/internal/llm"
	"pdfchat/internal/rag"
	"pdfchat/internal/session"
	"pdfchat/internal/summarizer"
	"pdfchat/internal/tui"
)

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "config.yaml", "Path to YAML config file (optional)")
	flag.Parse()
	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Println("Usage: pdfchat [--config=config.yaml] file1.pdf [file2.pdf ...]")
		os.Exit(1)
	}

	setupLogging()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("configuration error", "err", err)
	}

	embedder, err := embedding.NewOpenAI(embedding.Config{
		BaseURL:   cfg.Embedding.BaseURL,
		APIKey:    cfg.EmbeddingKey(),
		Model:     cfg.Embedding.Model,
		BatchSize: cfg.Embedding.BatchSize,
	})
	if err != nil {
		log.Fatal("embedding init failed", "err", err)
	}

	generator, err := llm.NewClient(llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLMKey(),
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
	})
	if err != nil {
		log.Fatal("llm init failed", "err", err)
	}

	ch, err := chunker.New(cfg.Chunking.Size, cfg.Chunking.Overlap)
	if err != nil {
		log.Fatal("chunker init failed", "err", err)
	}

	engine := rag.New(generator, history.NewStore(), cfg.Retrieval.TopK)
	controller := session.New(extractor.NewPDF(), ch, embedder, engine, summarizer.New())

	log.Info("starting", "model", cfg.LLM.Model, "embedding_model", cfg.Embedding.Model, "files", len(paths))
	if _, err := tea.NewProgram(tui.New(controller, paths)).Run(); err != nil {
		log.Fatal("ui error", "err", err)
	}
}

func setupLogging() {
	level := log.InfoLevel
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		level = log.DebugLevel
	case "warn":
		level = log.WarnLevel
	case "error":
		level = log.ErrorLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
}
