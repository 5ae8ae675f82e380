// cmd_serve.go - Serve Command
// Hauptfunktionen: newServeCmd, RunServer
package cmd

import (
	"errors"
	"net"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/mlserve/tgiscore/envconfig"
	"github.com/mlserve/tgiscore/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"start"},
		Short:   "Start the launcher and the scoring server",
		Args:    cobra.ExactArgs(0),
		RunE:    RunServer,
	}
}

// RunServer - Startet den Scoring-Server samt Launcher-Supervisor
func RunServer(_ *cobra.Command, _ []string) error {
	ln, err := net.Listen("tcp", envconfig.Host())
	if err != nil {
		return err
	}

	err = server.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}
