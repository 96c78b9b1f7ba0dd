// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

func Load(path string) (*WorkerRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg WorkerRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

func Save(reg *WorkerRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}

	return nil
}

// FindByTaskType returns the worker entry bound to a task type.
func (r *WorkerRegistry) FindByTaskType(taskType string) (*Worker, bool) {
	for i := range r.Workers {
		if r.Workers[i].TaskType == taskType {
			return &r.Workers[i], true
		}
	}
	return nil, false
}

// Validate checks structural invariants of the registry.
func (r *WorkerRegistry) Validate() error {
	if len(r.Workers) == 0 {
		return fmt.Errorf("registry contains no workers")
	}

	ids := make(map[string]bool)
	for _, w := range r.Workers {
		if w.ID == "" {
			return fmt.Errorf("worker missing required field: ID")
		}
		if ids[w.ID] {
			return fmt.Errorf("duplicate worker ID: %s", w.ID)
		}
		ids[w.ID] = true

		if w.DisplayName == "" {
			return fmt.Errorf("worker %s missing required field: DisplayName", w.ID)
		}
		if w.TaskType == "" {
			return fmt.Errorf("worker %s missing required field: TaskType", w.ID)
		}
		if w.Category == "" {
			return fmt.Errorf("worker %s missing required field: Category", w.ID)
		}
	}

	return nil
}
