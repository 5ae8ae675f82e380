// Package scoring - Fehler-Typen und das Antwort-Envelope.
// Alle Fehler eines Score-Requests werden an der Dispatcher-Grenze in das
// JSON-Envelope {"error": ..., "exception": ...} umgewandelt; ueber die
// Scoring-Schnittstelle propagiert nie ein Fehler als solcher.
package scoring

import (
	"encoding/json"
	"errors"
)

// usageHint dokumentiert beide akzeptierten Request-Formen. Wird bei jedem
// Parse-Fehler zusammen mit der eigentlichen Fehlermeldung zurueckgegeben.
const usageHint = `Expected input format: 
{"input_data": {"input_string": "<query>", "parameters": {"k1":"v1", "k2":"v2"}}}.
 <query> should be in below format:
 For text-generation: ["str1", "str2", ...]
For chat-completion : [{"role": "user", "content": "str1"}, {"role": "assistant", "content": "str2"} ....]`

// processingError ist der feste error-Text fuer Fehler waehrend des Scorings
const processingError = "Error in processing request"

// ErrNotInitialized wird gemeldet, wenn Run vor erfolgreichem Startup kommt
var ErrNotInitialized = errors.New("Client is not initialized")

// Envelope ist die einheitliche Fehler-Antwort der Scoring-Schnittstelle
type Envelope struct {
	Error     string `json:"error"`
	Exception string `json:"exception"`
}

// Bytes gibt das Envelope als JSON zurueck
func (e Envelope) Bytes() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		// Envelope besteht aus zwei Strings, das Marshalling kann nicht scheitern
		panic(err)
	}
	return data
}

// errorEnvelope baut das Standard-Envelope fuer Scoring-Fehler
func errorEnvelope(exception string) []byte {
	return Envelope{Error: processingError, Exception: exception}.Bytes()
}

// MalformedInputError markiert einen Request, der die Shape-Validierung
// nicht besteht. Traegt den Usage-Hint plus die urspruengliche Ursache.
type MalformedInputError struct {
	Cause error
}

func (e *MalformedInputError) Error() string {
	return e.Cause.Error()
}

func (e *MalformedInputError) Unwrap() error {
	return e.Cause
}

// Envelope gibt die strukturierte Fehler-Antwort des Parsers zurueck
func (e *MalformedInputError) Envelope() []byte {
	return Envelope{Error: usageHint, Exception: e.Cause.Error()}.Bytes()
}
