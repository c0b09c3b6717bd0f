// Package summarycmder provides the billrag summary cobra command.
package summarycmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rashtram/billrag/pkg/app"
	"github.com/rashtram/billrag/pkg/config"
	"github.com/rashtram/billrag/pkg/logger"
)

type summaryCommander struct {
	debug     bool
	configDir string
	logger    *zap.Logger
}

const summaryLongDesc string = `Summarize an ingested bill from its stored chunks.`

const summaryShortDesc string = "Summarize an ingested bill"

func NewSummaryCmd() *cobra.Command {
	cmder := &summaryCommander{}

	cmd := &cobra.Command{
		Use:   "summary <bill-id>",
		Short: summaryShortDesc,
		Long:  summaryLongDesc,
		Args:  cobra.ExactArgs(1),
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

			return cmder.run(cmd.Context(), args[0])
		},
	}

	return cmd
}

func (c *summaryCommander) run(ctx context.Context, billID string) error {
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

	summary, err := instance.Summarizer.SummarizeDocument(ctx, billID)
	if err != nil {
		return fmt.Errorf("summarizing bill %s: %w", billID, err)
	}
	if summary == nil {
		return fmt.Errorf("no stored content for bill %s; ingest it first", billID)
	}

	if summary.Title != "" {
		fmt.Println(summary.Title)
		fmt.Println()
	}
	fmt.Println(summary.Summary)

	return nil
}
