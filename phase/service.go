package phase

import (
	"context"
	"sort"

	"github.com/flowmap/flowmap/logger"
	"github.com/flowmap/flowmap/model"
	"go.uber.org/zap"
)

// ItemLister is the slice of the host client the program service needs.
type ItemLister interface {
	GetItems(ctx context.Context, collection string, out any) error
}

// ProgramService loads the program list and the workflows available for
// linking into phases.
type ProgramService struct {
	api                ItemLister
	programCollection  string
	workflowCollection string
}

func NewProgramService(api ItemLister, programCollection string, workflowCollection string) *ProgramService {
	return &ProgramService{
		api:                api,
		programCollection:  programCollection,
		workflowCollection: workflowCollection,
	}
}

func (p *ProgramService) Programs(ctx context.Context) ([]model.Program, error) {
	var programs []model.Program
	if err := p.api.GetItems(ctx, p.programCollection, &programs); err != nil {
		logger.Error("could not list programs", zap.String("collection", p.programCollection), zap.Error(err))
		return nil, err
	}
	return programs, nil
}

// Workflows lists the linkable workflow records, sorted by name so the
// link picker is stable.
func (p *ProgramService) Workflows(ctx context.Context) ([]model.WorkflowRecord, error) {
	var workflows []model.WorkflowRecord
	if err := p.api.GetItems(ctx, p.workflowCollection, &workflows); err != nil {
		logger.Error("could not list workflows", zap.String("collection", p.workflowCollection), zap.Error(err))
		return nil, err
	}
	sort.Slice(workflows, func(i, j int) bool {
		return workflows[i].Name < workflows[j].Name
	})
	return workflows, nil
}
