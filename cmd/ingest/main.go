package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Armankhatri7/RAGAgent/internal/app"
	"github.com/Armankhatri7/RAGAgent/internal/chunker"
	"github.com/Armankhatri7/RAGAgent/internal/config"
	"github.com/Armankhatri7/RAGAgent/internal/ingest"
	"github.com/Armankhatri7/RAGAgent/internal/loader"
	"github.com/Armankhatri7/RAGAgent/internal/summarizer"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/ragagent/config.yaml if not provided)")
	flag.Parse()
	inputs := flag.Args()
	if len(inputs) != 1 {
		fmt.Println("Usage: ingest [--config=config.yaml] document.pdf")
		os.Exit(1)
	}
	path := inputs[0]
	if _, err := os.Stat(path); err != nil {
		fmt.Printf("Error: %q not found. Please provide a PDF file.\n", path)
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	embedder, err := app.BuildEmbedder(cfg)
	if err != nil {
		logger.Fatal("embedder init failed", zap.Error(err))
	}
	store, err := app.BuildStorage(cfg)
	if err != nil {
		logger.Fatal("vector store init failed", zap.Error(err))
	}

	pipeline := ingest.NewPipeline(
		loader.NewPDFLoader(),
		chunker.NewCharChunker(cfg.Ingestion.ChunkSize, cfg.Ingestion.ChunkOverlap),
		embedder,
		store,
		summarizer.NewFrequencySummarizer(),
		logger,
	)

	report, err := pipeline.Run(context.Background(), path, cfg.Ingestion.SummarySentences)
	if err != nil {
		logger.Fatal("ingestion failed", zap.Error(err))
	}

	fmt.Printf("Ingestion complete: %d chunks from %d pages of %s\n", report.Chunks, report.Pages, report.Document)
	if report.Summary != "" {
		fmt.Println("Summary:", report.Summary)
	}
}
