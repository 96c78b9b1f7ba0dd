package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRegistry() *WorkerRegistry {
	return &WorkerRegistry{
		Version:     "1.0.0",
		LastUpdated: "2026-08-21T10:00:00Z",
		Workers: []Worker{
			{
				ID:          "process-recommendations",
				DisplayName: "Process Recommendations",
				Category:    "recommendation",
				TaskType:    "recommendation.process",
			},
		},
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")

	assert.NoError(t, Save(testRegistry(), path))

	loaded, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "1.0.0", loaded.Version)
	assert.Len(t, loaded.Workers, 1)
	assert.Equal(t, "recommendation.process", loaded.Workers[0].TaskType)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestFindByTaskType(t *testing.T) {
	reg := testRegistry()

	worker, ok := reg.FindByTaskType("recommendation.process")
	assert.True(t, ok)
	assert.Equal(t, "process-recommendations", worker.ID)

	_, ok = reg.FindByTaskType("unknown.task")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, testRegistry().Validate())

	empty := &WorkerRegistry{}
	assert.Error(t, empty.Validate())

	dup := testRegistry()
	dup.Workers = append(dup.Workers, dup.Workers[0])
	assert.Error(t, dup.Validate())

	missing := testRegistry()
	missing.Workers[0].TaskType = ""
	assert.Error(t, missing.Validate())
}
