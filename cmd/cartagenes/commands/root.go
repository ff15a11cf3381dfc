package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cartagenes",
	Short: "Cartagenes Finanças - educação financeira e simulador de investimentos",
	Long: `Cartagenes Finanças CLI

Backend do app de educação financeira: cotações da B3, rankings,
notícias geradas por IA, simulador de juros compostos e sessão de usuário.

Usage:
  go run ./cmd/cartagenes [command]

Examples:
  go run ./cmd/cartagenes api
  go run ./cmd/cartagenes simulate --initial 1000 --monthly 200 --rate 10 --years 1
  go run ./cmd/cartagenes market
  go run ./cmd/cartagenes migrate`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}
