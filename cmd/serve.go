package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/alexiusacademia/goestimate/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve estimates over HTTP",
	Long: `Start the HTTP estimate service.

Routes:
  GET  /health               - liveness and version
  GET  /catalog              - catalog categories
  GET  /catalog/{category}   - rows of one category
  POST /estimates            - estimate a project (JSON or YAML body);
                               add ?format=pdf for a PDF report

Examples:
  goestimate serve --addr :9090
  curl -X POST -H 'Content-Type: application/yaml' \
       --data-binary @examples/house.yaml localhost:9090/estimates`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			appConfig.Server.Addr = serveAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		repo, err := openCatalog(ctx)
		if err != nil {
			return err
		}
		defer repo.Close()

		return server.New(repo, appConfig).ListenAndServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides [server] addr)")
}
