// Package cmd is for command line interactions with the graphtpp application
package cmd

import (
	"log"
	"os"

	"github.com/helengibson/graphTPP-sub002/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// stderr is for logging to Stderr (without an annoying timestamp)
var stderr = log.New(os.Stderr, "", 0)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = NewRootCmd()

// NewRootCmd builds the command tree. Each call returns fresh flags.
func NewRootCmd() *cobra.Command {
	var settingsPath string

	root := &cobra.Command{
		Use: "graphtpp",
		Short: `Encode aligned protein sequences as numeric features and rank the
features by how well projection pursuit separates the sequences' classes`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlag("verbose", cmd.Flags().Lookup("verbose")); err != nil {
				return err
			}
			return config.Init(viper.GetViper(), settingsPath)
		},
	}

	root.PersistentFlags().StringVar(&settingsPath, "config", "", "settings file (default is $HOME/.graphtpp.yaml)")
	root.PersistentFlags().BoolP("verbose", "v", false, "log every optimizer epoch")

	root.AddCommand(newEncodeCmd())
	root.AddCommand(newRankCmd())
	root.AddCommand(newPropertiesCmd())
	root.AddCommand(newDocsCmd())

	return root
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}
