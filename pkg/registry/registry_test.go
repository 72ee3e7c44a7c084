package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activity(id string) Activity {
	return Activity{ID: id, DisplayName: id, TaskType: id, Category: "planning"}
}

func TestActivityRegistry_Validate(t *testing.T) {
	tests := []struct {
		name      string
		reg       ActivityRegistry
		taskTypes []string
		wantErr   string
	}{
		{
			name: "valid",
			reg: ActivityRegistry{Activities: []Activity{
				activity("select-venue"),
				{ID: "generate-plan-title", DisplayName: "Title", TaskType: "generate-plan-title", Category: "planning",
					InputSchema: map[string]interface{}{"type": "object"}},
			}},
			taskTypes: []string{"select-venue", "generate-plan-title"},
		},
		{
			name:    "empty",
			reg:     ActivityRegistry{},
			wantErr: "no activities",
		},
		{
			name:    "duplicate id",
			reg:     ActivityRegistry{Activities: []Activity{activity("a"), activity("a")}},
			wantErr: "duplicate activity ID: a",
		},
		{
			name:    "missing category",
			reg:     ActivityRegistry{Activities: []Activity{{ID: "a", DisplayName: "A", TaskType: "a"}}},
			wantErr: "missing required field: category",
		},
		{
			name: "schema does not compile",
			reg: ActivityRegistry{Activities: []Activity{
				{ID: "a", DisplayName: "A", TaskType: "a", Category: "c", InputSchema: map[string]interface{}{"type": 5}},
			}},
			wantErr: "input schema",
		},
		{
			name:      "task type not registered",
			reg:       ActivityRegistry{Activities: []Activity{activity("a")}},
			taskTypes: []string{"a", "b"},
			wantErr:   "task type b has no registry entry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg.Validate(tt.taskTypes...)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "registry.json")
	reg := &ActivityRegistry{Version: "1.0.0", Activities: []Activity{activity("select-venue")}}

	require.NoError(t, Save(reg, path))
	assert.NotEmpty(t, reg.LastUpdated)

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	found, ok := loaded.Find("select-venue")
	require.True(t, ok)
	assert.Equal(t, "planning", found.Category)

	_, ok = loaded.Find("generate-plan-title")
	assert.False(t, ok)
}
