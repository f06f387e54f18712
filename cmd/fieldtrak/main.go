package main

import (
	"log"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/fieldtrak/fieldtrak/pkg/configuration"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	root := &cobra.Command{
		Use:           "fieldtrak",
		Short:         "Materials takeoff import service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newImportCommand(),
	)

	if err := root.Execute(); err != nil {
		configuration.Use().Logger().WithError(err).Error("command failed")
		configuration.Use().Unload()
		os.Exit(1)
	}
	configuration.Use().Unload()
}
