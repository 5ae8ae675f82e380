// accel.go - Diagnose-Snapshot der Accelerator-Hardware
//
// Nach erfolgreichem Start wird einmal nvidia-smi ausgefuehrt und die
// Ausgabe geloggt. Rein diagnostisch; jeder Fehler wird ignoriert.
package tgi

import (
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

func logAcceleratorInfo(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, "nvidia-smi").CombinedOutput()
	if err != nil {
		slog.Debug("accelerator info not available", "error", err)
		return
	}

	slog.Info("###### GPU INFO ######")
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		slog.Info(line)
	}
	slog.Info("###### GPU INFO ######")
}
