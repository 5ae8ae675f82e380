// prompt_test.go - Unit Tests fuer das Transcript-Flattening
//
// Testet die Rollen-Invarianten und das [INST]-Format.
package prompt

import (
	"errors"
	"strings"
	"testing"

	"github.com/mlserve/tgiscore/api"
)

func user(content string) api.Message {
	return api.Message{Role: api.RoleUser, Content: content}
}

func assistant(content string) api.Message {
	return api.Message{Role: api.RoleAssistant, Content: content}
}

// TestFlattenTranscript testet gueltige Transcripts
func TestFlattenTranscript(t *testing.T) {
	tests := []struct {
		name       string
		transcript []api.Message
		expected   string
	}{
		{"Einzelner Turn", []api.Message{user("A")}, "[INST]A[/INST]"},
		{"Drei Turns", []api.Message{user("A"), assistant("B"), user("C")}, "[INST]A[/INST]B\n[INST]C[/INST]"},
		{"Fuenf Turns", []api.Message{user("A"), assistant("B"), user("C"), assistant("D"), user("E")},
			"[INST]A[/INST]B\n[INST]C[/INST]D\n[INST]E[/INST]"},
		{"Whitespace getrimmt", []api.Message{user("  A \n"), assistant("\tB "), user(" C")}, "[INST]A[/INST]B\n[INST]C[/INST]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FlattenTranscript(tt.transcript)
			if err != nil {
				t.Fatalf("Unerwarteter Fehler: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Got %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestFlattenTranscript_Deterministic testet byte-identische Wiederholung
func TestFlattenTranscript_Deterministic(t *testing.T) {
	transcript := []api.Message{user("A"), assistant("B"), user("C")}
	first, err := FlattenTranscript(transcript)
	if err != nil {
		t.Fatalf("Unerwarteter Fehler: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := FlattenTranscript(transcript)
		if err != nil {
			t.Fatalf("Unerwarteter Fehler: %v", err)
		}
		if again != first {
			t.Fatalf("Nicht deterministisch: %q vs %q", again, first)
		}
	}
}

// TestFlattenTranscript_Invalid testet Verletzungen der Rollen-Invarianten
func TestFlattenTranscript_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		transcript []api.Message
		wantMsg    string
	}{
		{"Leer", nil, "empty"},
		{"Erster Turn assistant", []api.Message{assistant("A")}, "first turn"},
		{"Letzter Turn assistant", []api.Message{user("A"), assistant("B")}, "last turn"},
		{"Zwei User in Folge", []api.Message{user("A"), user("B"), user("C")}, "turn 1"},
		{"Zwei Assistant in Folge", []api.Message{user("A"), assistant("B"), assistant("C"), user("D")}, "turn 2"},
		{"Unbekannte Rolle", []api.Message{user("A"), {Role: "system", Content: "B"}, user("C")}, "turn 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FlattenTranscript(tt.transcript)
			if err == nil {
				t.Fatal("Erwartete Fehler")
			}
			if !errors.Is(err, ErrTranscript) {
				t.Errorf("Erwartete ErrTranscript, bekam %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Fehlermeldung %q enthaelt nicht %q", err, tt.wantMsg)
			}
		})
	}
}
