// request.go - Parsen und Validieren der Score-Request-Payload
//
// ParseRequest prueft die Payload-Form gegen den Task-Type und liefert ein
// getaggtes Ergebnis: Prompts fuer text-generation, einen bereits
// geflatteten Prompt fuer chat-completion. Jede Verletzung der Form kommt
// als *MalformedInputError zurueck.
package scoring

import (
	"encoding/json"
	"fmt"

	"github.com/mlserve/tgiscore/api"
	"github.com/mlserve/tgiscore/prompt"
)

// Request ist das Ergebnis eines erfolgreichen Parse-Vorgangs
type Request struct {
	Task api.TaskType

	// Prompts ist gesetzt fuer text-generation, in Eingabe-Reihenfolge
	Prompts []string

	// Prompt ist der geflattete Chat-Verlauf fuer chat-completion
	Prompt string

	// Parameters werden unveraendert an das Backend durchgereicht
	Parameters map[string]any
}

func malformed(format string, args ...any) error {
	return &MalformedInputError{Cause: fmt.Errorf(format, args...)}
}

// ParseRequest parst die rohe Payload gegen den Task-Type
func ParseRequest(raw []byte, task api.TaskType) (*Request, error) {
	var top struct {
		InputData json.RawMessage `json:"input_data"`
	}
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, malformed("invalid request payload: %v", err)
	}
	if len(top.InputData) == 0 {
		return nil, malformed("invalid input data: input_data missing")
	}

	var inputData struct {
		InputString json.RawMessage `json:"input_string"`
		Parameters  json.RawMessage `json:"parameters"`
	}
	if err := json.Unmarshal(top.InputData, &inputData); err != nil {
		return nil, malformed("invalid input data: %v", err)
	}
	if len(inputData.InputString) == 0 || string(inputData.InputString) == "null" {
		return nil, malformed("invalid input data: input_string missing")
	}

	req := &Request{Task: task, Parameters: map[string]any{}}

	if len(inputData.Parameters) > 0 {
		if err := json.Unmarshal(inputData.Parameters, &req.Parameters); err != nil {
			return nil, malformed("parameters is not a dict: %v", err)
		}
	}

	switch task {
	case api.TaskChatCompletion:
		var transcript []api.Message
		if err := json.Unmarshal(inputData.InputString, &transcript); err != nil {
			return nil, malformed("query is not a list of chat turns: %v", err)
		}
		flattened, err := prompt.FlattenTranscript(transcript)
		if err != nil {
			return nil, &MalformedInputError{Cause: err}
		}
		req.Prompt = flattened
	default:
		if err := json.Unmarshal(inputData.InputString, &req.Prompts); err != nil {
			return nil, malformed("query is not a list: %v", err)
		}
	}

	return req, nil
}
