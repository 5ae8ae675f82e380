// config_utils.go - Utility-Funktionen und Export fuer Konfiguration
//
// Dieses Modul enthaelt:
// - Bool: Boolean-Getter
// - String: String-Getter
// - Uint: Integer-Getter mit Default-Wert
// - Duration: Dauer-Getter (Sekunden oder Go-Duration) mit Default-Wert
// - EnvVar: Struktur fuer Environment-Variablen-Info
// - AsMap: Gibt alle Konfigurationen als Map zurueck
// - Values: Gibt alle Konfigurationswerte als String-Map zurueck
package envconfig

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// Bool gibt eine Funktion zurueck, die einen Bool liest (Default: false)
func Bool(k string) func() bool {
	return func() bool {
		if s := Var(k); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return true
			}
			return b
		}
		return false
	}
}

// String gibt eine Funktion zurueck, die einen String liest
func String(s string) func() string {
	return func() string {
		return Var(s)
	}
}

// Uint gibt eine Funktion zurueck, die einen uint mit Default-Wert liest
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

// Duration gibt eine Funktion zurueck, die eine Dauer mit Default-Wert liest
// Akzeptiert Go-Duration-Strings ("90s") und nackte Sekunden-Werte ("90")
func Duration(key string, defaultValue time.Duration) func() time.Duration {
	return func() time.Duration {
		if s := Var(key); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				return d
			} else if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return time.Duration(n) * time.Second
			}
			slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
		}
		return defaultValue
	}
}

// EnvVar repraesentiert eine Environment-Variable mit Metadaten
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap gibt alle Konfigurationen als Map zurueck
// Enthaelt Namen, aktuelle Werte und Beschreibungen
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"TGI_DEBUG":            {"TGI_DEBUG", LogLevel(), "Show additional debug information (e.g. TGI_DEBUG=1)"},
		"TGI_HOST":             {"TGI_HOST", Host(), "Bind address for the scoring server (default 127.0.0.1:8080)"},
		"TGI_PORT":             {"TGI_PORT", Backend(), "Local port of the text-generation-inference server (default 80)"},
		"TGI_LIVENESS_RETRIES": {"TGI_LIVENESS_RETRIES", LivenessRetries(), "Process liveness attempts before giving up (default 5)"},
		"TGI_LIVENESS_WAIT":    {"TGI_LIVENESS_WAIT", LivenessWait(), "Wait between liveness attempts (default \"20s\")"},
		"TGI_READY_WAIT":       {"TGI_READY_WAIT", ReadyWait(), "Wait between readiness cycles (default \"60s\")"},
		"TGI_WARMUP_WAIT":      {"TGI_WARMUP_WAIT", WarmupWait(), "Wait before the first health check (default \"20s\")"},
		"TGI_SETTLE_WAIT":      {"TGI_SETTLE_WAIT", SettleWait(), "Wait between liveness and responsiveness probe (default \"5s\")"},
		"TIMEOUT":              {"TIMEOUT", ClientTimeout(), "Request timeout for backend calls (default \"90s\")"},
		"AZUREML_MODEL_DIR":    {"AZUREML_MODEL_DIR", ModelDir(), "Root directory of the deployed model"},
		"MODEL_ID":             {"MODEL_ID", ModelID(), "Model path relative to the model directory"},

		// Pass-Through-Variablen des Launchers
		"SHARDED":                 {"SHARDED", Sharded(), "Shard the model across multiple GPUs"},
		"NUM_SHARD":               {"NUM_SHARD", NumShard(), "Number of shards"},
		"QUANTIZE":                {"QUANTIZE", Quantize(), "Quantization mode"},
		"DTYPE":                   {"DTYPE", Dtype(), "Weight data type"},
		"TRUST_REMOTE_CODE":       {"TRUST_REMOTE_CODE", TrustRemoteCode(), "Allow custom code from the model repo"},
		"MAX_CONCURRENT_REQUESTS": {"MAX_CONCURRENT_REQUESTS", MaxConcurrentRequests(), "Launcher-side concurrent request limit"},
		"MAX_BEST_OF":             {"MAX_BEST_OF", MaxBestOf(), "Launcher-side best_of limit"},
		"MAX_STOP_SEQUENCES":      {"MAX_STOP_SEQUENCES", MaxStopSequences(), "Launcher-side stop sequence limit"},
		"MAX_INPUT_LENGTH":        {"MAX_INPUT_LENGTH", MaxInputLength(), "Launcher-side input length limit in tokens"},
		"MAX_TOTAL_TOKENS":        {"MAX_TOTAL_TOKENS", MaxTotalTokens(), "Launcher-side total token limit"},
	}
}

// Values gibt alle Konfigurationswerte als String-Map zurueck
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}
