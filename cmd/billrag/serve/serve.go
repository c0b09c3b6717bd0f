// Package servecmder provides the billrag API server cobra command.
package servecmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rashtram/billrag/api"
	"github.com/rashtram/billrag/pkg/app"
	"github.com/rashtram/billrag/pkg/config"
	"github.com/rashtram/billrag/pkg/logger"
)

type serveCommander struct {
	listen    string
	debug     bool
	configDir string
	logger    *zap.Logger
}

const serveLongDesc string = `Run the billrag HTTP API server for ingesting bill PDFs and answering
questions grounded in their content.`

const serveShortDesc string = "Run the billrag API server"

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			cmder.configDir, err = cmd.Flags().GetString("config")
			if err != nil {
				return fmt.Errorf("could not get config flag: %v", err)
			}

			return cmder.run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&cmder.listen, "listen", "l", "", "Address for API server to listen on (default from config)")

	return cmd
}

func (c *serveCommander) run(ctx context.Context) error {
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
	if c.listen != "" {
		cfg.API.Listen = c.listen
	}

	instance, err := app.New(ctx, cfg, c.logger)
	if err != nil {
		return fmt.Errorf("building services: %w", err)
	}
	defer instance.Close()

	server := api.NewServer(api.Config{
		ListenAddr: cfg.API.Listen,
	}, instance.Ingester, instance.Answerer, instance.Summarizer, c.logger)

	return server.Run()
}
