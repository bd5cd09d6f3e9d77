// Package cmd - papertrade CLI commands
package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "papertrade",
	Short: "Papertrade - paper trading record keeper",
	Long: `Papertrade - paper trading record keeper

Commands:
    serve       Start the API server
    migrate     Apply database migrations
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// initConfig reads in the .env file if present
func initConfig() error {
	path := cfgFile
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if verbose {
			fmt.Println("Warning: .env file not found, using environment variables")
		}
	}
	return nil
}
