package commands

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var appRoot string

func Execute() error {
	root := &cobra.Command{
		Use:   "pricequote",
		Short: "Price quote builder and PDF composer service",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env overlay is optional
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				log.Printf("[WARN] .env not loaded: %v", err)
			}
			if appRoot == "" {
				appRoot = os.Getenv("APP_ROOT")
			}
			if appRoot == "" {
				dir, err := os.Getwd()
				if err != nil {
					return err
				}
				appRoot = dir
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&appRoot, "app-root", "", "app root dir holding config/ and assets/ (default cwd)")

	root.AddCommand(serveCmd())
	return root.Execute()
}
