// Package mlmodel - Leser fuer die MLmodel Descriptor-Datei.
// Der Descriptor ist eine YAML-Datei im MLflow-Format, die unter anderem den
// Task-Type des deployten Models benennt. Fehlt die Datei oder der Eintrag,
// gilt text-generation als Default.
package mlmodel

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mlserve/tgiscore/api"
)

// DescriptorPath ist der Pfad der MLmodel-Datei relativ zum Model-Verzeichnis
const DescriptorPath = "mlflow_model_folder/MLmodel"

// flavorKey ist der Flavor, dessen task_type der Adapter auswertet
const flavorKey = "hftransformersv2"

// ErrUnsupportedTask markiert einen Task-Type, den der Adapter nicht kennt.
// Beim Start ist das fatal.
var ErrUnsupportedTask = errors.New("unsupported task type")

// Descriptor ist der geparste Inhalt der MLmodel-Datei
type Descriptor struct {
	Flavors map[string]Flavor `yaml:"flavors"`
}

// Flavor ist ein einzelner Eintrag unter flavors
type Flavor struct {
	TaskType string `yaml:"task_type"`
}

// Load liest die MLmodel-Datei aus dem Model-Verzeichnis.
// Eine fehlende Datei ist kein Fehler; dann gilt der leere Descriptor.
func Load(dir string) (*Descriptor, error) {
	path := filepath.Join(dir, DescriptorPath)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Descriptor{}, nil
		}
		return nil, fmt.Errorf("read descriptor %s: %w", path, err)
	}

	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse descriptor %s: %w", path, err)
	}

	return &d, nil
}

// TaskType gibt den Task-Type des Descriptors zurueck.
// Fehlt der hftransformersv2-Flavor oder dessen task_type, gilt
// text-generation. Ein unbekannter Wert liefert ErrUnsupportedTask.
func (d *Descriptor) TaskType() (api.TaskType, error) {
	flavor, ok := d.Flavors[flavorKey]
	if !ok || flavor.TaskType == "" {
		return api.TaskTextGeneration, nil
	}

	task, err := api.ParseTaskType(flavor.TaskType)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedTask, flavor.TaskType)
	}
	return task, nil
}
