package main

import (
	"fmt"
	"os"

	"github.com/Luismorlan/socialmux/utils/dotenv"
	Logger "github.com/Luismorlan/socialmux/utils/log"
	"github.com/spf13/cobra"
)

const defaultServiceName = "api_server"

var (
	// Global flags
	serviceName string
	configPath  string
)

var rootCmd = &cobra.Command{
	Use:   "socialmux",
	Short: "socialmux api server",
	Long: `socialmux serves the social feed api: users, follow graph, posts,
comments and the personalized feed.

Secrets and endpoints are read from the .env files selected by SOCIALMUX_ENV,
tunables from the yaml file given by --config.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := dotenv.LoadDotEnvs(); err != nil {
			return err
		}
		Logger.InitLogger(serviceName)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serviceName, "service", defaultServiceName, "service name used in logs and traces")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/app_config.yaml", "path of the yaml app config")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
