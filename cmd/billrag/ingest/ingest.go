// Package ingestcmder provides the billrag ingest cobra command.
package ingestcmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rashtram/billrag/pkg/app"
	"github.com/rashtram/billrag/pkg/config"
	"github.com/rashtram/billrag/pkg/logger"
)

type ingestCommander struct {
	title     string
	debug     bool
	configDir string
	logger    *zap.Logger
}

const ingestLongDesc string = `Download a bill PDF, extract and chunk its text, embed the chunks and
store them in the configured vector store. Re-ingesting a known bill id is a
no-op that reports the stored state.`

const ingestShortDesc string = "Ingest a bill PDF into the vector store"

func NewIngestCmd() *cobra.Command {
	cmder := &ingestCommander{}

	cmd := &cobra.Command{
		Use:   "ingest <bill-id> <pdf-url>",
		Short: ingestShortDesc,
		Long:  ingestLongDesc,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			cmder.configDir, err = cmd.Flags().GetString("config")
			if err != nil {
				return fmt.Errorf("could not get config flag: %v", err)
			}

			return cmder.run(cmd.Context(), args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&cmder.title, "title", "t", "", "Bill title stored with each chunk")

	return cmd
}

func (c *ingestCommander) run(ctx context.Context, billID, pdfURL string) error {
	c.logger = logger.NewLogger(c.debug)
	defer c.logger.Sync()

	v, err := config.InitViper(c.configDir)
	if err != nil {
		return err
	}
	cfg, err := config.LoadConfig(v)
	if err != nil {
		return err
	}

	instance, err := app.New(ctx, cfg, c.logger)
	if err != nil {
		return fmt.Errorf("building services: %w", err)
	}
	defer instance.Close()

	result, err := instance.Ingester.Ingest(ctx, billID, pdfURL, c.title)
	if err != nil {
		return fmt.Errorf("ingesting bill %s: %w", billID, err)
	}

	if result.AlreadyProcessed {
		fmt.Printf("Bill %s already processed (%d chunks stored)\n", billID, result.ChunksStored)
	} else {
		fmt.Printf("Ingested bill %s: %d chunks stored from %d characters\n", billID, result.ChunksStored, result.OriginalLength)
	}
	fmt.Println()
	fmt.Println(result.Summary)

	return nil
}
