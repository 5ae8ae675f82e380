// config_launcher.go - Pass-Through-Variablen des text-generation-launcher
//
// Der Launcher liest diese Variablen selbst aus seiner Umgebung; der Adapter
// reicht sie nur durch und loggt sie beim Start. Interpretiert wird davon
// nichts.
package envconfig

var (
	// Sharded steuert Model-Sharding ueber mehrere GPUs
	Sharded = String("SHARDED")

	// NumShard setzt die Anzahl der Shards
	NumShard = String("NUM_SHARD")

	// Quantize waehlt den Quantisierungsmodus
	Quantize = String("QUANTIZE")

	// Dtype waehlt den Daten-Typ der Gewichte
	Dtype = String("DTYPE")

	// TrustRemoteCode erlaubt Custom-Code aus dem Model-Repo
	TrustRemoteCode = String("TRUST_REMOTE_CODE")

	// MaxConcurrentRequests begrenzt parallele Requests im Launcher
	MaxConcurrentRequests = String("MAX_CONCURRENT_REQUESTS")

	// MaxBestOf begrenzt den best_of Parameter
	MaxBestOf = String("MAX_BEST_OF")

	// MaxStopSequences begrenzt die Anzahl der Stop-Sequenzen
	MaxStopSequences = String("MAX_STOP_SEQUENCES")

	// MaxInputLength begrenzt die Eingabe-Laenge in Tokens
	MaxInputLength = String("MAX_INPUT_LENGTH")

	// MaxTotalTokens begrenzt die Gesamt-Token-Anzahl
	MaxTotalTokens = String("MAX_TOTAL_TOKENS")
)
