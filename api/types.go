// Package api - Wire-Typen fuer den TGI Scoring-Adapter.
// Dieses Modul enthaelt:
// - TaskType: unterstuetzte Task-Arten (text-generation, chat-completion)
// - Message: eine Chat-Nachricht mit Rolle und Inhalt
// - GenerateRequest/GenerateResponse: das /generate Wire-Format von TGI
// - StatusError: Fehler fuer non-2xx Antworten
package api

import (
	"fmt"
)

// TaskType waehlt den Modus des Adapters. Wird einmal beim Start aus dem
// Model-Descriptor gesetzt und danach nicht mehr veraendert.
type TaskType string

const (
	TaskTextGeneration TaskType = "text-generation"
	TaskChatCompletion TaskType = "chat-completion"
)

// ParseTaskType validiert einen Task-Type String aus dem Descriptor
func ParseTaskType(s string) (TaskType, error) {
	switch TaskType(s) {
	case TaskTextGeneration, TaskChatCompletion:
		return TaskType(s), nil
	}
	return "", fmt.Errorf("unsupported task_type %q", s)
}

// Chat-Rollen. Transcripts muessen mit "user" beginnen und enden.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message ist eine einzelne Chat-Nachricht eines Transcripts
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateRequest ist der Request-Body fuer den /generate Endpoint des
// text-generation-inference Servers. Parameters werden unveraendert
// durchgereicht, der Adapter interpretiert sie nicht.
type GenerateRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// GenerateResponse ist die Antwort des /generate Endpoints
type GenerateResponse struct {
	GeneratedText string `json:"generated_text"`
}

// StatusError wird fuer non-2xx Antworten des Backends zurueckgegeben
type StatusError struct {
	StatusCode   int
	Status       string
	ErrorMessage string `json:"error"`
}

func (e StatusError) Error() string {
	switch {
	case e.Status != "" && e.ErrorMessage != "":
		return fmt.Sprintf("%s: %s", e.Status, e.ErrorMessage)
	case e.Status != "":
		return e.Status
	case e.ErrorMessage != "":
		return e.ErrorMessage
	default:
		return "something went wrong, please see the adapter logs for details"
	}
}
