// Package tgi - Supervisor fuer den text-generation-launcher
//
// Start launcht den Backend-Prozess, treibt den HealthPoller bis zur
// Readiness und gibt dann das Server-Handle mit gebundenem Client zurueck.
// Das Handle lebt bis zum Prozess-Ende; einen Teardown-Pfad gibt es nicht,
// nur Close fuer das Signal-Handling des aufrufenden Servers.
package tgi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/mlserve/tgiscore/api"
	"github.com/mlserve/tgiscore/envconfig"
)

// Server ist das Handle auf den laufenden Launcher-Prozess plus den daran
// gebundenen Client. Wird einmal beim Start erstellt und danach nur gelesen.
type Server struct {
	cmd    *exec.Cmd
	client *api.Client
	status *StatusWriter
	done   chan error // Channel signalisiert wenn Prozess beendet

	startTime time.Time
}

// Start launcht den Launcher und blockiert bis zur Readiness.
//
// Ablauf: Prozess starten, feste Warmup-Zeit abwarten, dann die aeussere
// Readiness-Schleife: jeder Zyklus macht die begrenzten Liveness-Retries
// und eine Probe-Anfrage. Schlaegt nur die Probe fehl, wird gewartet und
// unbegrenzt weiter probiert; ein haengendes Backend haelt den Start also
// fuer immer auf. Abbruch nur bei erschoepftem Liveness-Budget oder ueber
// den Context.
func Start(ctx context.Context, modelPath string) (*Server, error) {
	s, err := start(ctx, modelPath)
	if err != nil {
		return nil, fmt.Errorf("error in creating client or server: %w", err)
	}
	return s, nil
}

func start(ctx context.Context, modelPath string) (*Server, error) {
	if _, err := os.Stat(modelPath); err != nil {
		slog.Warn("model path not accessible", "path", modelPath, "error", err)
	}
	slog.Info("loading model", "path", modelPath)

	status := NewStatusWriter(os.Stderr)
	cmd, err := startLauncher(modelPath, status)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cmd:       cmd,
		status:    status,
		done:      make(chan error, 1),
		startTime: time.Now(),
	}
	go s.monitor()

	client := api.NewClient(envconfig.Backend(), envconfig.ClientTimeout())

	if err := s.waitUntilRunning(ctx, NewHealthPoller(client)); err != nil {
		return nil, err
	}
	slog.Info(fmt.Sprintf("launcher started in %0.2f seconds", time.Since(s.startTime).Seconds()))

	logAcceleratorInfo(ctx)

	s.client = client
	slog.Info("created client", "base", client.Base(), "timeout", envconfig.ClientTimeout())
	return s, nil
}

// waitUntilRunning ist die unbegrenzte aeussere Readiness-Schleife
func (s *Server) waitUntilRunning(ctx context.Context, poller *HealthPoller) error {
	wait := envconfig.ReadyWait()

	if err := sleepCtx(ctx, envconfig.WarmupWait()); err != nil {
		return err
	}

	for {
		select {
		case err := <-s.done:
			return s.exitError(err)
		default:
		}

		healthy, err := poller.IsHealthy(ctx)
		if err != nil {
			return err
		}
		if healthy {
			return nil
		}

		slog.Info("server not up, waiting before querying again", "wait", wait)
		if err := sleepCtx(ctx, wait); err != nil {
			return err
		}
	}
}

// monitor wartet auf das Prozess-Ende und meldet es ueber den done-Channel
func (s *Server) monitor() {
	err := s.cmd.Wait()
	if msg := s.status.LastErrMsg(); err != nil && msg != "" {
		slog.Error("launcher terminated", "error", err)
		s.done <- errors.New(msg)
		return
	}
	s.done <- err
}

func (s *Server) exitError(err error) error {
	msg := s.status.LastErrMsg()
	if msg == "" {
		msg = "launcher process has terminated"
	}
	if err != nil {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return errors.New(msg)
}

// Client gibt den an das Backend gebundenen Client zurueck
func (s *Server) Client() *api.Client {
	return s.client
}

// Pid gibt die Prozess-ID des Launchers zurueck
func (s *Server) Pid() int {
	if s.cmd != nil && s.cmd.Process != nil {
		return s.cmd.Process.Pid
	}
	return -1
}

// HasExited prueft ob der Launcher-Prozess beendet wurde
func (s *Server) HasExited() bool {
	return s.cmd != nil && s.cmd.ProcessState != nil
}

// Close beendet den Launcher-Prozess. Nur fuer den Shutdown-Pfad des
// aufrufenden Servers gedacht.
func (s *Server) Close() error {
	if s.cmd == nil || s.cmd.Process == nil {
		return nil
	}
	if err := s.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}
