// Package tgi - Health Checks fuer den Launcher
//
// Funktionen zur Server-Ueberwachung:
// - HealthPoller mit Liveness- und Responsiveness-Check
// - launcherRunning fuer den Prozess-Scan
// - sleepCtx als abbrechbares Sleep
package tgi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/mlserve/tgiscore/api"
	"github.com/mlserve/tgiscore/envconfig"
)

// ErrProcessNotRunning markiert einen Launcher-Prozess, der innerhalb des
// Liveness-Budgets nicht auftaucht. Fuer den Supervisor ist das fatal.
var ErrProcessNotRunning = errors.New("launcher process not running")

// HealthPoller prueft Liveness und Responsiveness des Launchers.
// IsHealthy wird vom Supervisor in einer unbegrenzten aeusseren Schleife
// aufgerufen; die Liveness-Retries hier sind das innere, begrenzte Budget.
type HealthPoller struct {
	client *api.Client

	// running ist der Prozess-Scan, injizierbar fuer Tests
	running func() bool

	retries uint
	wait    time.Duration
	settle  time.Duration
}

// NewHealthPoller erstellt einen HealthPoller mit der konfigurierten Policy
func NewHealthPoller(client *api.Client) *HealthPoller {
	return &HealthPoller{
		client:  client,
		running: launcherRunning,
		retries: envconfig.LivenessRetries(),
		wait:    envconfig.LivenessWait(),
		settle:  envconfig.SettleWait(),
	}
}

// launcherRunning scannt die Prozess-Tabelle nach dem Launcher
func launcherRunning() bool {
	procs, err := process.Processes()
	if err != nil {
		slog.Warn("process scan failed", "error", err)
		return false
	}
	for _, p := range procs {
		if name, err := p.Name(); err == nil && name == LauncherName {
			return true
		}
	}
	return false
}

// IsHealthy prueft erst die Prozess-Liveness mit begrenzten Retries, dann
// einmalig die Responsiveness ueber die Probe-Anfrage. Ein erschoepftes
// Liveness-Budget ist fatal und kommt als ErrProcessNotRunning zurueck;
// eine fehlgeschlagene Probe wird nur geloggt und liefert false.
func (p *HealthPoller) IsHealthy(ctx context.Context) (bool, error) {
	var count uint
	for count < p.retries && !p.running() {
		slog.Warn("launcher process is not running, sleeping and retrying", "process", LauncherName, "wait", p.wait)
		if err := sleepCtx(ctx, p.wait); err != nil {
			return false, err
		}
		count++
	}
	if count >= p.retries {
		return false, fmt.Errorf("%w after waiting for %s", ErrProcessNotRunning, time.Duration(p.retries)*p.wait)
	}

	slog.Info("launcher process running, hitting endpoint with delay", "process", LauncherName, "delay", p.settle)
	if err := sleepCtx(ctx, p.settle); err != nil {
		return false, err
	}

	if err := p.client.Ping(ctx); err != nil {
		slog.Warn("test request failed", "error", err)
		return false, nil
	}
	return true, nil
}

// sleepCtx wartet die Dauer ab oder bricht mit dem Context ab
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
