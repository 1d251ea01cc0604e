// Package cli wires the application together and exposes the cobra
// command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nautilus-labs/voxcart/internal/bridge"
	"github.com/nautilus-labs/voxcart/internal/chunker"
	"github.com/nautilus-labs/voxcart/internal/config"
	"github.com/nautilus-labs/voxcart/internal/core/domain"
	"github.com/nautilus-labs/voxcart/internal/core/ports/driven"
	"github.com/nautilus-labs/voxcart/internal/core/services"
	"github.com/nautilus-labs/voxcart/internal/corpus"
	"github.com/nautilus-labs/voxcart/internal/index"
	"github.com/nautilus-labs/voxcart/internal/logger"
	"github.com/nautilus-labs/voxcart/internal/normalisers"
	"github.com/nautilus-labs/voxcart/internal/normalisers/docx"
	"github.com/nautilus-labs/voxcart/internal/normalisers/markdown"
	"github.com/nautilus-labs/voxcart/internal/normalisers/plaintext"
	"github.com/nautilus-labs/voxcart/internal/shopify"
)

var rootCmd = &cobra.Command{
	Use:   "voxcart",
	Short: "Voice shopping assistant backend",
	Long: `voxcart answers store questions from a local knowledge corpus and
looks up Shopify orders, exposing both as tools the voice dialogue
engine can call mid-conversation.`,
	SilenceUsage: true,
}

// Wired application state, built once per invocation by initServices.
var (
	cfg              *config.Config
	log              *zap.Logger
	corpusSource     *corpus.Source
	ingestService    *services.IngestService
	retrievalService *services.RetrievalService
	toolBridge       *bridge.Bridge
)

// Execute runs the root command.
func Execute() error {
	defer func() {
		if log != nil {
			_ = log.Sync()
		}
	}()
	return rootCmd.Execute()
}

// initServices loads configuration and builds the service graph.
// Called by commands that need the core; a missing corpus directory is
// the one fatal configuration error.
func initServices() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log, err = logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}

	corpusSource = corpus.New(cfg.CorpusDir)
	registry := normalisers.NewRegistry(
		plaintext.New(),
		markdown.New(),
		docx.New(),
	)
	ch := chunker.New(
		chunker.WithMinSize(cfg.Retrieval.ChunkMinSize),
		chunker.WithMaxSize(cfg.Retrieval.ChunkMaxSize),
		chunker.WithOverlap(cfg.Retrieval.ChunkOverlap),
	)

	idx := index.New()
	ingestService = services.NewIngestService(corpusSource, registry, ch, idx, log)
	retrievalService = services.NewRetrievalService(idx, ingestService, log)

	var orders driven.OrderService
	if cfg.OrdersConfigured() {
		orders = shopify.NewClient(cfg.ShopifyStoreName, cfg.ShopifyAccessToken)
	} else {
		log.Info("shopify credentials absent, order tools disabled")
	}

	toolBridge = bridge.New(
		retrievalService,
		services.NewCitationFormatter(),
		orders,
		log,
		bridge.WithTimeout(cfg.ToolTimeout),
		bridge.WithSearchOptions(domain.SearchOptions{
			TopK:     cfg.Retrieval.TopK,
			MinScore: cfg.Retrieval.MinScore,
		}),
	)

	return nil
}
