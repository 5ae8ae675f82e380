// cmd.go - Haupt-CLI Setup und Root Command
// Hauptfunktionen: NewCLI, appendEnvDocs
package cmd

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mlserve/tgiscore/envconfig"
	"github.com/mlserve/tgiscore/version"
)

// appendEnvDocs - Fuegt Umgebungsvariablen-Dokumentation zum Command hinzu
func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// NewCLI - Erstellt das Haupt-CLI mit allen Commands
func NewCLI() *cobra.Command {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	cobra.EnableCommandSorting = false

	// Optionale .env-Datei; fehlt sie, gilt nur die Prozess-Umgebung
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
	}

	rootCmd := &cobra.Command{
		Use:           "tgiscore",
		Short:         "Scoring adapter for text-generation-inference",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Printf("tgiscore version %s\n", version.Version)
				return
			}

			cmd.Print(cmd.UsageString())
		},
	}

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	serveCmd := newServeCmd()
	scoreCmd := newScoreCmd()

	envVars := envconfig.AsMap()
	appendEnvDocs(serveCmd, []envconfig.EnvVar{
		envVars["TGI_DEBUG"],
		envVars["TGI_HOST"],
		envVars["TGI_PORT"],
		envVars["AZUREML_MODEL_DIR"],
		envVars["MODEL_ID"],
		envVars["TIMEOUT"],
		envVars["TGI_LIVENESS_RETRIES"],
		envVars["TGI_LIVENESS_WAIT"],
		envVars["TGI_READY_WAIT"],
	})
	appendEnvDocs(scoreCmd, []envconfig.EnvVar{
		envVars["TGI_PORT"],
		envVars["AZUREML_MODEL_DIR"],
		envVars["TIMEOUT"],
	})

	rootCmd.AddCommand(
		serveCmd,
		scoreCmd,
	)

	return rootCmd
}
