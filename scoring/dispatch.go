// dispatch.go - Routing der geparsten Requests an das Backend
//
// Der Dispatcher besitzt den gebundenen Client und den Task-Type, beide
// einmal beim Start gesetzt und danach unveraendert. Run kapselt jeden
// Fehler in das JSON-Envelope; ueber die Scoring-Grenze propagiert nichts.
package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/mlserve/tgiscore/api"
)

// Backend ist die Generate-Operation, die der Dispatcher braucht.
// *api.Client erfuellt das Interface.
type Backend interface {
	Generate(ctx context.Context, inputs string, parameters map[string]any) (string, error)
}

// Dispatcher routet Score-Requests an das Backend
type Dispatcher struct {
	backend Backend
	task    api.TaskType
	sem     *semaphore.Weighted
}

// NewDispatcher erstellt einen Dispatcher fuer den gebundenen Client.
// Requests werden strikt sequenziell verarbeitet (ein Request in flight).
func NewDispatcher(backend Backend, task api.TaskType) *Dispatcher {
	return &Dispatcher{
		backend: backend,
		task:    task,
		sem:     semaphore.NewWeighted(1),
	}
}

// Run verarbeitet eine rohe Score-Payload und gibt immer rohe Bytes zurueck.
// Fehler jeder Art landen als Envelope im Ergebnis, nie im Fehlerkanal.
func (d *Dispatcher) Run(ctx context.Context, raw []byte) []byte {
	if d.sem != nil {
		if err := d.sem.Acquire(ctx, 1); err != nil {
			return errorEnvelope(err.Error())
		}
		defer d.sem.Release(1)
	}

	if d.backend == nil {
		return errorEnvelope(ErrNotInitialized.Error())
	}

	req, err := ParseRequest(raw, d.task)
	if err != nil {
		var malformedErr *MalformedInputError
		if errors.As(err, &malformedErr) {
			return malformedErr.Envelope()
		}
		return errorEnvelope(err.Error())
	}

	slog.Info("generating response", "task", req.Task, "parameters", req.Parameters)

	if req.Task == api.TaskChatCompletion {
		return d.runChat(ctx, req)
	}
	return d.runTextGeneration(ctx, req)
}

// runChat schickt den geflatteten Chat-Verlauf als einen Generate-Call
func (d *Dispatcher) runChat(ctx context.Context, req *Request) []byte {
	start := time.Now()
	text, err := d.backend.Generate(ctx, req.Prompt, req.Parameters)
	if err != nil {
		return errorEnvelope(err.Error())
	}
	slog.Info("chat completion", "duration", time.Since(start))

	data, err := json.Marshal(map[string]string{"0": text})
	if err != nil {
		return errorEnvelope(err.Error())
	}
	return data
}

// runTextGeneration faechert die Prompts sequenziell auf, ein Generate-Call
// pro Prompt in Eingabe-Reihenfolge. Die Indizes des Ergebnisses haengen an
// dieser Reihenfolge.
func (d *Dispatcher) runTextGeneration(ctx context.Context, req *Request) []byte {
	if req.Prompts == nil {
		return errorEnvelope("query should be a list for text-generation")
	}

	results := make([]map[string]string, 0, len(req.Prompts))
	for i, q := range req.Prompts {
		start := time.Now()
		text, err := d.backend.Generate(ctx, q, req.Parameters)
		if err != nil {
			return errorEnvelope(err.Error())
		}
		slog.Info("text generation", "query", i, "duration", time.Since(start))
		results = append(results, map[string]string{strconv.Itoa(i): text})
	}

	data, err := json.Marshal(results)
	if err != nil {
		return errorEnvelope(err.Error())
	}
	return data
}
