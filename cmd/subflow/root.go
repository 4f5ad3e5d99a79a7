package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	app := newAppContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "subflow",
		Short:         "Transcribe, clean up and translate video subtitles",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.ensure()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newRunCommand(app))
	rootCmd.AddCommand(newTranscribeCommand(app))
	rootCmd.AddCommand(newTranslateCommand(app))
	rootCmd.AddCommand(newLanguagesCommand())
	rootCmd.AddCommand(newWatchCommand(app))
	rootCmd.AddCommand(newServeCommand(app))
	rootCmd.AddCommand(newPlayCommand(app))

	return rootCmd
}
