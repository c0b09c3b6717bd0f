// Package billragcmder
package billragcmder

import (
	askcmder "github.com/rashtram/billrag/cmd/billrag/ask"
	ingestcmder "github.com/rashtram/billrag/cmd/billrag/ingest"
	servecmder "github.com/rashtram/billrag/cmd/billrag/serve"
	summarycmder "github.com/rashtram/billrag/cmd/billrag/summary"
	"github.com/spf13/cobra"
)

const billragLongDesc string = `Billrag ingests legislative bill PDFs and answers questions about them.

Run services using:
  billrag serve        Run the HTTP API server
  billrag ingest       Ingest a bill PDF into the vector store
  billrag ask          Ask a question about an ingested bill
  billrag summary      Summarize an ingested bill`

const billragShortDesc string = "Billrag - Legislative Bill RAG"

func NewBillragCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "billrag",
		Short: billragShortDesc,
		Long:  billragLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().StringP("config", "c", "", "Directory containing config.toml")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(ingestcmder.NewIngestCmd())
	cmd.AddCommand(askcmder.NewAskCmd())
	cmd.AddCommand(summarycmder.NewSummaryCmd())

	return cmd
}
