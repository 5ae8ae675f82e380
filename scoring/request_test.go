// request_test.go - Unit Tests fuer das Request-Parsing
//
// Testet die Shape-Validierung beider Task-Types und das Fehler-Envelope
// des Parsers.
package scoring

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/mlserve/tgiscore/api"
)

// TestParseRequest_TextGeneration testet gueltige text-generation Payloads
func TestParseRequest_TextGeneration(t *testing.T) {
	tests := []struct {
		name, payload string
		prompts       []string
		params        map[string]any
	}{
		{"Ein Prompt", `{"input_data":{"input_string":["x"]}}`, []string{"x"}, map[string]any{}},
		{"Mehrere Prompts", `{"input_data":{"input_string":["p0","p1","p2"]}}`, []string{"p0", "p1", "p2"}, map[string]any{}},
		{"Mit Parametern", `{"input_data":{"input_string":["x"],"parameters":{"max_new_tokens":100,"do_sample":true}}}`,
			[]string{"x"}, map[string]any{"max_new_tokens": float64(100), "do_sample": true}},
		{"Leere Liste", `{"input_data":{"input_string":[]}}`, []string{}, map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseRequest([]byte(tt.payload), api.TaskTextGeneration)
			if err != nil {
				t.Fatalf("Unerwarteter Fehler: %v", err)
			}
			if len(req.Prompts) != len(tt.prompts) {
				t.Fatalf("Got %d prompts, want %d", len(req.Prompts), len(tt.prompts))
			}
			for i := range tt.prompts {
				if req.Prompts[i] != tt.prompts[i] {
					t.Errorf("Prompt %d: got %q, want %q", i, req.Prompts[i], tt.prompts[i])
				}
			}
			if len(req.Parameters) != len(tt.params) {
				t.Fatalf("Got %d parameters, want %d", len(req.Parameters), len(tt.params))
			}
			for k, v := range tt.params {
				if req.Parameters[k] != v {
					t.Errorf("Parameter %q: got %v, want %v", k, req.Parameters[k], v)
				}
			}
		})
	}
}

// TestParseRequest_ChatCompletion testet das Flattening beim Parsen
func TestParseRequest_ChatCompletion(t *testing.T) {
	payload := `{"input_data":{"input_string":[
		{"role":"user","content":"A"},
		{"role":"assistant","content":"B"},
		{"role":"user","content":"C"}
	],"parameters":{"temperature":0.9}}}`

	req, err := ParseRequest([]byte(payload), api.TaskChatCompletion)
	if err != nil {
		t.Fatalf("Unerwarteter Fehler: %v", err)
	}
	if req.Prompt != "[INST]A[/INST]B\n[INST]C[/INST]" {
		t.Errorf("Got %q", req.Prompt)
	}
	if req.Parameters["temperature"] != 0.9 {
		t.Errorf("Parameter temperature: got %v", req.Parameters["temperature"])
	}
}

// TestParseRequest_Malformed testet Verletzungen der Payload-Form
func TestParseRequest_Malformed(t *testing.T) {
	tests := []struct {
		name, payload string
		task          api.TaskType
	}{
		{"Kein Objekt", `[1,2]`, api.TaskTextGeneration},
		{"input_data fehlt", `{"foo":1}`, api.TaskTextGeneration},
		{"input_data fehlt chat", `{"foo":1}`, api.TaskChatCompletion},
		{"input_data kein Objekt", `{"input_data":[1]}`, api.TaskTextGeneration},
		{"input_string fehlt", `{"input_data":{"parameters":{}}}`, api.TaskTextGeneration},
		{"input_string null", `{"input_data":{"input_string":null}}`, api.TaskTextGeneration},
		{"input_string kein Array", `{"input_data":{"input_string":"x"}}`, api.TaskTextGeneration},
		{"parameters kein Objekt", `{"input_data":{"input_string":["x"],"parameters":[1]}}`, api.TaskTextGeneration},
		{"Transcript kein Objekt-Array", `{"input_data":{"input_string":["x"]}}`, api.TaskChatCompletion},
		{"Transcript beginnt mit assistant", `{"input_data":{"input_string":[{"role":"assistant","content":"A"}]}}`, api.TaskChatCompletion},
		{"Kaputtes JSON", `{"input_data":`, api.TaskTextGeneration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRequest([]byte(tt.payload), tt.task)
			if err == nil {
				t.Fatal("Erwartete Fehler")
			}
			var malformedErr *MalformedInputError
			if !errors.As(err, &malformedErr) {
				t.Fatalf("Erwartete MalformedInputError, bekam %T: %v", err, err)
			}
		})
	}
}

// TestMalformedInputError_Envelope testet das duale Fehler-Envelope
func TestMalformedInputError_Envelope(t *testing.T) {
	_, err := ParseRequest([]byte(`{"foo":1}`), api.TaskTextGeneration)
	var malformedErr *MalformedInputError
	if !errors.As(err, &malformedErr) {
		t.Fatalf("Erwartete MalformedInputError, bekam %v", err)
	}

	var envelope Envelope
	if err := json.Unmarshal(malformedErr.Envelope(), &envelope); err != nil {
		t.Fatalf("Envelope kein JSON: %v", err)
	}
	// Der Hint ist Teil des Wire-Formats und zeichengenau fixiert
	want := "Expected input format: \n" +
		`{"input_data": {"input_string": "<query>", "parameters": {"k1":"v1", "k2":"v2"}}}.` + "\n " +
		`<query> should be in below format:` + "\n " +
		`For text-generation: ["str1", "str2", ...]` + "\n" +
		`For chat-completion : [{"role": "user", "content": "str1"}, {"role": "assistant", "content": "str2"} ....]`
	if envelope.Error != want {
		t.Errorf("error weicht vom Usage-Hint ab: %q", envelope.Error)
	}
	if envelope.Exception == "" {
		t.Error("exception ist leer")
	}
}
