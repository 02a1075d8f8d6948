package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ContainsTopicActivities(t *testing.T) {
	reg := Default()

	for _, taskType := range []string{"search-topics", "resolve-communities", "suggest-communities"} {
		t.Run(taskType, func(t *testing.T) {
			act, ok := reg.Find(taskType)
			require.True(t, ok)
			assert.NotEmpty(t, act.InputSchema)
			assert.NotEmpty(t, act.OutputSchema)
		})
	}

	_, ok := reg.Find("unknown-task")
	assert.False(t, ok)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"2","activities":[{"id":"a","taskType":"custom"}]}`), 0o600))

	reg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2", reg.Version)
	_, ok := reg.Find("custom")
	assert.True(t, ok)
}

func TestLoad_EmptyPathUsesEmbedded(t *testing.T) {
	reg, err := Load("")
	require.NoError(t, err)
	assert.Len(t, reg.Activities, 3)
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte("{"))
	assert.Error(t, err)
}

func TestActivity_TimeoutDuration(t *testing.T) {
	tests := []struct {
		timeout string
		want    time.Duration
		wantErr bool
	}{
		{timeout: "", want: 0},
		{timeout: "30s", want: 30 * time.Second},
		{timeout: "2m", want: 2 * time.Minute},
		{timeout: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.timeout, func(t *testing.T) {
			a := Activity{TaskType: "t", Timeout: tt.timeout}
			got, err := a.TimeoutDuration()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefault_ActivitiesAreWellFormed(t *testing.T) {
	for _, act := range Default().Activities {
		t.Run(act.TaskType, func(t *testing.T) {
			_, err := act.TimeoutDuration()
			assert.NoError(t, err)
			assert.True(t, act.Declares("INVALID_INPUT"))
			assert.False(t, act.Declares("NOT_A_CODE"))
		})
	}
}
