// Package askcmder provides the billrag ask cobra command.
package askcmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rashtram/billrag/pkg/app"
	"github.com/rashtram/billrag/pkg/config"
	"github.com/rashtram/billrag/pkg/logger"
)

type askCommander struct {
	showSources bool
	debug       bool
	configDir   string
	logger      *zap.Logger
}

const askLongDesc string = `Ask a question about an ingested bill. The answer is grounded in the
bill's stored chunks; questions about bills that were never ingested get an
answer noting the missing context.`

const askShortDesc string = "Ask a question about an ingested bill"

func NewAskCmd() *cobra.Command {
	cmder := &askCommander{}

	cmd := &cobra.Command{
		Use:   "ask <bill-id> <question>",
		Short: askShortDesc,
		Long:  askLongDesc,
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

	cmd.Flags().BoolVarP(&cmder.showSources, "sources", "s", false, "Print the retrieved chunks after the answer")

	return cmd
}

func (c *askCommander) run(ctx context.Context, billID, question string) error {
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

	answer, err := instance.Answerer.Answer(ctx, question, billID)
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	fmt.Println(answer.Response)

	if c.showSources && len(answer.Sources) > 0 {
		fmt.Println()
		fmt.Println("Sources:")
		for _, src := range answer.Sources {
			fmt.Printf("  [chunk %d, score %.3f] %s\n", src.ChunkIndex, src.Score, preview(src.Content))
		}
	}

	return nil
}

func preview(s string) string {
	const max = 120
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
