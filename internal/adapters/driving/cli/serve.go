package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nautilus-labs/voxcart/internal/adapters/driving/mcp"
	"github.com/nautilus-labs/voxcart/internal/corpus"
)

var (
	servePort  int
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tool server for the dialogue engine",
	Long: `Builds the knowledge index and starts the MCP tool server.

By default the server communicates over stdio using JSON-RPC. Use
--port to serve streamable HTTP instead. With --watch, corpus changes
trigger an index rebuild; searches keep using the previous snapshot
until the rebuild completes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP port (0 = use stdio)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "rebuild the index on corpus changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}

	ctx := cmd.Context()

	if err := ingestService.Build(ctx); err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	if serveWatch {
		watcher := corpus.NewWatcher(corpusSource.RootPath(), retrievalService.Rebuild, log)
		go func() {
			if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
				log.Warn("corpus watcher stopped", zap.Error(err))
			}
		}()
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Dispatcher: toolBridge,
		Stats:      retrievalService,
	})
	if err != nil {
		return err
	}

	if servePort > 0 {
		addr := fmt.Sprintf(":%d", servePort)
		fmt.Fprintf(cmd.OutOrStdout(), "voxcart tool server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
