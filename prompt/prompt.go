// Package prompt - Chat-History Flattening fuer Llama-artige Models.
// Wandelt ein Multi-Turn-Transcript in einen einzelnen Prompt-String um,
// mit [INST]-Delimitern um die User-Turns.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mlserve/tgiscore/api"
)

const (
	instOpen  = "[INST]"
	instClose = "[/INST]"
)

// ErrTranscript markiert ein Transcript, das die Rollen-Invarianten verletzt
var ErrTranscript = errors.New("invalid chat transcript")

// FlattenTranscript baut aus einem Transcript den Prompt-String.
//
// Beispiel-Eingabe:
//
//	[{user "What is the tallest building in the world?"},
//	 {assistant "As of 2021, the Burj Khalifa in Dubai"},
//	 {user "and in Africa?"}]
//
// Beispiel-Ausgabe:
//
//	"[INST]What is the tallest building in the world?[/INST]As of 2021, the Burj Khalifa in Dubai\n[INST]and in Africa?[/INST]"
//
// Das Transcript muss nicht-leer sein, mit einem User-Turn beginnen und
// enden, und nach dem ersten Turn strikt alternieren. Deterministisch und
// ohne Seiteneffekte.
func FlattenTranscript(transcript []api.Message) (string, error) {
	if len(transcript) == 0 {
		return "", fmt.Errorf("%w: transcript is empty", ErrTranscript)
	}
	if transcript[0].Role != api.RoleUser {
		return "", fmt.Errorf("%w: first turn must have role %q, got %q", ErrTranscript, api.RoleUser, transcript[0].Role)
	}
	if transcript[len(transcript)-1].Role != api.RoleUser {
		return "", fmt.Errorf("%w: last turn must have role %q, got %q", ErrTranscript, api.RoleUser, transcript[len(transcript)-1].Role)
	}

	var sb strings.Builder
	sb.WriteString(instOpen)
	sb.WriteString(strings.TrimSpace(transcript[0].Content))
	sb.WriteString(instClose)

	for i, turn := range transcript[1:] {
		// Nach dem ersten Turn: assistant, user, assistant, user, ...
		if i%2 == 0 {
			if turn.Role != api.RoleAssistant {
				return "", fmt.Errorf("%w: turn %d must have role %q, got %q", ErrTranscript, i+1, api.RoleAssistant, turn.Role)
			}
			sb.WriteString(strings.TrimSpace(turn.Content))
			sb.WriteString("\n")
		} else {
			if turn.Role != api.RoleUser {
				return "", fmt.Errorf("%w: turn %d must have role %q, got %q", ErrTranscript, i+1, api.RoleUser, turn.Role)
			}
			sb.WriteString(instOpen)
			sb.WriteString(strings.TrimSpace(turn.Content))
			sb.WriteString(instClose)
		}
	}

	return sb.String(), nil
}
