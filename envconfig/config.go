// config.go - Haupt-Konfigurationsfunktionen fuer den TGI Scoring-Adapter
//
// Dieses Modul enthaelt:
// - Host: Gibt die Bind-Adresse des Scoring-Servers zurueck (TGI_HOST)
// - Backend: Gibt die Basis-URL des TGI-Servers zurueck (TGI_PORT)
// - ModelDir/ModelID/ModelPath: Model-Pfad-Aufloesung
// - ClientTimeout: Request-Timeout des TGI-Clients (TIMEOUT)
// - LivenessRetries/LivenessWait/ReadyWait/WarmupWait: Health-Check-Policy
// - LogLevel: Gibt das Log-Level zurueck (TGI_DEBUG)
//
// Weitere Konfigurationen sind ausgelagert:
// - config_launcher.go: Pass-Through-Variablen des Launchers
// - config_utils.go: Utility-Funktionen und AsMap/Values
package envconfig

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Host gibt die Bind-Adresse des Scoring-Servers zurueck
// Konfigurierbar via TGI_HOST
// Default: 127.0.0.1:8080
func Host() string {
	defaultHost, defaultPort := "127.0.0.1", "8080"

	s := strings.TrimSpace(Var("TGI_HOST"))
	if s == "" {
		return net.JoinHostPort(defaultHost, defaultPort)
	}

	host, port, err := net.SplitHostPort(s)
	if err != nil {
		host, port = s, defaultPort
	}
	if host == "" {
		host = defaultHost
	}

	if n, err := strconv.ParseInt(port, 10, 32); err != nil || n > 65535 || n < 0 {
		slog.Warn("invalid port, using default", "port", port, "default", defaultPort)
		port = defaultPort
	}

	return net.JoinHostPort(host, port)
}

// Backend gibt die Basis-URL des lokalen TGI-Servers zurueck
// Konfigurierbar via TGI_PORT
// Default: http://0.0.0.0:80
func Backend() *url.URL {
	port := Uint("TGI_PORT", 80)()
	return &url.URL{
		Scheme: "http",
		Host:   fmt.Sprintf("0.0.0.0:%d", port),
	}
}

// ModelDir gibt das Wurzelverzeichnis des deployten Models zurueck
// Konfigurierbar via AZUREML_MODEL_DIR
func ModelDir() string {
	return Var("AZUREML_MODEL_DIR")
}

// ModelID gibt den Model-Pfad relativ zum ModelDir zurueck
// Konfigurierbar via MODEL_ID
// Default: mlflow_model_folder/data/model
func ModelID() string {
	if s := Var("MODEL_ID"); s != "" {
		return s
	}
	return "mlflow_model_folder/data/model"
}

// ModelPath gibt den aufgeloesten Model-Pfad fuer den Launcher zurueck
func ModelPath() string {
	return filepath.Join(ModelDir(), ModelID())
}

// ClientTimeout gibt das Request-Timeout des TGI-Clients zurueck
// Konfigurierbar via TIMEOUT (Sekunden oder Go-Duration)
// Default: 90 Sekunden
func ClientTimeout() time.Duration {
	return Duration("TIMEOUT", 90*time.Second)()
}

// LivenessRetries gibt die Anzahl der Prozess-Liveness-Versuche zurueck
// Konfigurierbar via TGI_LIVENESS_RETRIES
// Default: 5
func LivenessRetries() uint {
	return Uint("TGI_LIVENESS_RETRIES", 5)()
}

// LivenessWait gibt die Wartezeit zwischen Liveness-Versuchen zurueck
// Konfigurierbar via TGI_LIVENESS_WAIT
// Default: 20 Sekunden
func LivenessWait() time.Duration {
	return Duration("TGI_LIVENESS_WAIT", 20*time.Second)()
}

// ReadyWait gibt die Wartezeit zwischen Readiness-Zyklen zurueck
// Die aeussere Readiness-Schleife ist bewusst unbegrenzt
// Konfigurierbar via TGI_READY_WAIT
// Default: 60 Sekunden
func ReadyWait() time.Duration {
	return Duration("TGI_READY_WAIT", 60*time.Second)()
}

// WarmupWait gibt die Wartezeit vor dem ersten Health-Check zurueck
// Konfigurierbar via TGI_WARMUP_WAIT
// Default: 20 Sekunden
func WarmupWait() time.Duration {
	return Duration("TGI_WARMUP_WAIT", 20*time.Second)()
}

// SettleWait gibt die Wartezeit zwischen Liveness- und Probe-Check zurueck
// Konfigurierbar via TGI_SETTLE_WAIT
// Default: 5 Sekunden
func SettleWait() time.Duration {
	return Duration("TGI_SETTLE_WAIT", 5*time.Second)()
}

// LogLevel gibt das Log-Level zurueck
// Konfigurierbar via TGI_DEBUG
// Werte: 0/false = INFO (Default), 1/true = DEBUG, 2 = TRACE
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("TGI_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// Var gibt eine Environment-Variable zurueck
// Entfernt fuehrende/trailing Quotes und Leerzeichen
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}
