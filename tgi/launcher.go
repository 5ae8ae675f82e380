// Package tgi - Launcher Subprocess Verwaltung
//
// Funktionen zum Starten des text-generation-launcher Subprocesses:
// - startLauncher: Hauptfunktion zum Starten des Launchers
// - setupLauncherOutput: Stdout/Stderr weiterleiten
// - StatusWriter: merkt sich die letzte Fehlerzeile des Launchers
package tgi

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"slices"
	"strings"
	"sync"
)

// LauncherName ist der Prozessname des TGI-Servers
const LauncherName = "text-generation-launcher"

// filteredEnv filtert Umgebungsvariablen fuer sicheres Logging
type filteredEnv []string

func (e filteredEnv) LogValue() slog.Value {
	var attrs []slog.Attr
	for _, env := range e {
		if key, value, ok := strings.Cut(env, "="); ok {
			switch {
			case strings.HasPrefix(key, "TGI_"),
				strings.HasPrefix(key, "MAX_"),
				strings.HasPrefix(key, "CUDA_"),
				slices.Contains([]string{
					"MODEL_ID",
					"AZUREML_MODEL_DIR",
					"SHARDED",
					"NUM_SHARD",
					"QUANTIZE",
					"DTYPE",
					"TRUST_REMOTE_CODE",
					"TIMEOUT",
					"PATH",
					"LD_LIBRARY_PATH",
				}, key):
				attrs = append(attrs, slog.String(key, value))
			}
		}
	}
	return slog.GroupValue(attrs...)
}

// StatusWriter leitet Launcher-Output weiter und merkt sich die letzte
// Zeile, die wie eine Fehlermeldung aussieht
type StatusWriter struct {
	out io.Writer

	mu         sync.Mutex
	lastErrMsg string
}

// NewStatusWriter erstellt einen StatusWriter, der nach out weiterleitet
func NewStatusWriter(out io.Writer) *StatusWriter {
	return &StatusWriter{out: out}
}

func (w *StatusWriter) Write(b []byte) (int, error) {
	if line := string(b); strings.Contains(strings.ToLower(line), "error") {
		w.mu.Lock()
		w.lastErrMsg = strings.TrimSpace(line)
		w.mu.Unlock()
	}
	return w.out.Write(b)
}

// LastErrMsg gibt die letzte Fehlerzeile des Launchers zurueck
func (w *StatusWriter) LastErrMsg() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErrMsg
}

// startLauncher startet den Launcher-Subprocess mit dem Model-Pfad.
// Der Prozess ist langlaufend; auf sein Ende wird nicht gewartet.
func startLauncher(modelPath string, status *StatusWriter) (*exec.Cmd, error) {
	cmd := exec.Command(LauncherName, "--model-id", modelPath)
	cmd.Env = os.Environ()

	if err := setupLauncherOutput(cmd, status); err != nil {
		return nil, err
	}

	slog.Info("starting launcher", "cmd", cmd)
	slog.Debug("subprocess", "", filteredEnv(cmd.Env))

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("error starting launcher: %w", err)
	}

	return cmd, nil
}

// setupLauncherOutput verbindet Stdout/Stderr mit dem StatusWriter
func setupLauncherOutput(cmd *exec.Cmd, out io.Writer) error {
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to spawn launcher stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to spawn launcher stderr pipe: %w", err)
	}
	go forwardLines(out, stdout)
	go forwardLines(out, stderr)
	return nil
}

// forwardLines kopiert zeilenweise, damit der StatusWriter ganze
// Fehlerzeilen sieht
func forwardLines(dst io.Writer, src io.Reader) {
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		fmt.Fprintln(dst, scanner.Text())
	}
}
