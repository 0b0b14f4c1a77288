package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rtzll/ytscribe/internal"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the transcript extraction HTTP server",
	Long: `Run an HTTP server exposing transcript extraction as a JSON API.

Endpoints:
- POST /extract: extract a transcript (and optionally a summary) for a URL
- GET /health: liveness check`,
	Example: `  # Run the server on the configured address (default :8080)
  ytscribe serve

  # Run on a specific address
  ytscribe serve --addr :9090

  # Route caption retrieval through the configured proxies
  ytscribe serve --proxy`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Local .env files are a deployment convenience for API keys
		if err := godotenv.Load(); err == nil {
			config.OpenAIAPIKey = firstNonEmpty(os.Getenv("OPENAI_API_KEY"), config.OpenAIAPIKey)
			config.GeminiAPIKey = firstNonEmpty(os.Getenv("GEMINI_API_KEY"), config.GeminiAPIKey)
		}

		if err := internal.HandleExtractionFlags(cmd, config); err != nil {
			return err
		}

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			config.ListenAddr = addr
		}

		app := internal.NewApp(config)
		srv := internal.NewServer(app)

		go func() {
			<-cmd.Context().Done()
			_ = srv.Shutdown()
		}()

		fmt.Printf("Listening on %s\n", config.ListenAddr)
		return srv.Listen(config.ListenAddr)
	},
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func init() {
	internal.AddExtractionFlags(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}
