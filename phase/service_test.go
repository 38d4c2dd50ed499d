package phase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/flowmap/flowmap/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	items map[string]any
	fail  error
}

func (f *fakeLister) GetItems(ctx context.Context, collection string, out any) error {
	if f.fail != nil {
		return f.fail
	}
	b, err := json.Marshal(f.items[collection])
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func TestProgramService(t *testing.T) {
	lister := &fakeLister{items: map[string]any{
		"programs": []model.Program{{Id: "p1", Name: "Youth"}, {Id: "p2", Name: "Adult"}},
		"process_workflows": []model.WorkflowRecord{
			{Id: "w2", Name: "Review"},
			{Id: "w1", Name: "Intake"},
		},
	}}
	svc := NewProgramService(lister, "programs", "process_workflows")

	programs, err := svc.Programs(context.Background())
	require.NoError(t, err)
	require.Len(t, programs, 2)
	assert.Equal(t, "Youth", programs[0].Name)

	workflows, err := svc.Workflows(context.Background())
	require.NoError(t, err)
	require.Len(t, workflows, 2)
	// sorted by name for a stable picker
	assert.Equal(t, "Intake", workflows[0].Name)
	assert.Equal(t, "Review", workflows[1].Name)
}

func TestProgramServiceErrors(t *testing.T) {
	svc := NewProgramService(&fakeLister{fail: errors.New("connection refused")}, "programs", "process_workflows")
	_, err := svc.Programs(context.Background())
	assert.Error(t, err)
	_, err = svc.Workflows(context.Background())
	assert.Error(t, err)
}
