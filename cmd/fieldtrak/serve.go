package main

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/fieldtrak/fieldtrak/internal/server"
	"github.com/fieldtrak/fieldtrak/pkg/configuration"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := configuration.Use()
			logger := conf.Logger()

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Second*5)
			defer cancel()
			pool, err := pgxpool.New(ctx, conf.Database.Opts)
			if err != nil {
				return err
			}
			defer pool.Close()

			instance, err := server.Default(&server.DefaultOptions{
				Logger:        logger,
				Configuration: conf,
				Pool:          pool,
			})
			if err != nil {
				return err
			}

			log.Printf("Listening on: %s\n", conf.Origin)
			return instance.Start(conf.SocketAddress)
		},
	}
}
