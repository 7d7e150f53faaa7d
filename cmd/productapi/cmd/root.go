package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ProductAPI/internal/config"
)

const service = "productapi"

var (
	v       = viper.New()
	envFile string
)

var rootCmd = &cobra.Command{
	Use:           service,
	Short:         "In-memory product catalog HTTP API",
	SilenceUsage:  true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return config.LoadDotEnv(envFile)
	},
}

func init() {
	config.SetDefaults(v)
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file loaded before reading the environment")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
