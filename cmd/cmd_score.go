// cmd_score.go - Score Command
// Schickt eine einzelne Payload gegen einen bereits laufenden Launcher,
// ohne den Supervisor zu starten. Gedacht fuer Smoke-Tests eines
// Deployments.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mlserve/tgiscore/api"
	"github.com/mlserve/tgiscore/envconfig"
	"github.com/mlserve/tgiscore/mlmodel"
	"github.com/mlserve/tgiscore/scoring"
)

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score [PAYLOAD-FILE]",
		Short: "Score a single payload against a running backend",
		Long:  "Score a single payload against a running backend. Reads the payload from the given file, or from stdin when no file is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunScore,
	}
}

// RunScore - Liest die Payload, parst den Descriptor und druckt das Ergebnis
func RunScore(cmd *cobra.Command, args []string) error {
	var payload []byte
	var err error
	if len(args) == 1 {
		payload, err = os.ReadFile(args[0])
	} else {
		payload, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return err
	}

	descriptor, err := mlmodel.Load(envconfig.ModelDir())
	if err != nil {
		return err
	}
	task, err := descriptor.TaskType()
	if err != nil {
		return err
	}

	client := api.NewClient(envconfig.Backend(), envconfig.ClientTimeout())
	dispatcher := scoring.NewDispatcher(client, task)

	out := dispatcher.Run(cmd.Context(), payload)
	fmt.Println(string(out))
	return nil
}
