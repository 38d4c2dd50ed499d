package phase

import (
	"strings"

	"github.com/flowmap/flowmap/model"
)

// State holds the process map's phases together with the per-program link
// buckets they are synced to. One State backs one process map view.
type State struct {
	phases          []model.Phase
	separatorText   string
	selectedProgram string
	programLinks    map[string]map[string][]model.WorkflowLink
}

// MapState is the persisted process map bundle stored on the host record.
// WorkflowLinks and bare Phases are older persisted shapes still accepted
// on load.
type MapState struct {
	Phases               []model.Phase                               `json:"phases,omitempty"`
	SelectedProgram      string                                      `json:"selectedProgram,omitempty"`
	SeparatorText        string                                      `json:"separatorText,omitempty"`
	ProgramWorkflowLinks map[string]map[string][]model.WorkflowLink  `json:"programWorkflowLinks,omitempty"`
	WorkflowLinks        map[string][]model.WorkflowLink             `json:"workflowLinks,omitempty"`
}

func NewState() *State {
	return &State{
		phases:        CreateDefaultPhases(),
		separatorText: DefaultSeparatorText,
		programLinks:  map[string]map[string][]model.WorkflowLink{},
	}
}

func (s *State) Phases() []model.Phase {
	return s.phases
}

func (s *State) SetPhases(phases []model.Phase) {
	if phases == nil {
		s.phases = CreateDefaultPhases()
		return
	}
	s.phases = phases
}

func (s *State) SeparatorText() string {
	return s.separatorText
}

// SetSeparatorText trims the text and falls back to the default when the
// result is empty.
func (s *State) SetSeparatorText(text string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		trimmed = DefaultSeparatorText
	}
	s.separatorText = trimmed
}

// SyncProgram records the current phases as the given program's link map
// and remembers the program as selected.
func (s *State) SyncProgram(programId string) {
	s.selectedProgram = programId
	s.programLinks[NormalizeProgramKey(programId)] = ConvertPhasesToLinksMap(s.phases)
}

// ApplyProgram swaps the phases to the given program's recorded links. A
// program never seen before gets the default empty phases.
func (s *State) ApplyProgram(programId string) {
	s.selectedProgram = programId
	links := s.programLinks[NormalizeProgramKey(programId)]
	if links == nil {
		s.phases = CreateDefaultPhases()
		return
	}
	s.phases = CreatePhasesFromLinks(links)
}

func (s *State) SelectedProgram() string {
	return s.selectedProgram
}

// Load restores a persisted process map. Older records carried a single
// links map or bare phases instead of the per-program map; they load into
// the saved program's bucket.
func (s *State) Load(saved MapState) {
	s.SetSeparatorText(saved.SeparatorText)
	switch {
	case saved.ProgramWorkflowLinks != nil:
		s.programLinks = saved.ProgramWorkflowLinks
	case saved.WorkflowLinks != nil:
		s.programLinks = map[string]map[string][]model.WorkflowLink{
			NormalizeProgramKey(saved.SelectedProgram): saved.WorkflowLinks,
		}
	case saved.Phases != nil:
		s.programLinks = map[string]map[string][]model.WorkflowLink{
			NormalizeProgramKey(saved.SelectedProgram): ConvertPhasesToLinksMap(saved.Phases),
		}
	default:
		s.programLinks = map[string]map[string][]model.WorkflowLink{}
	}
	s.ApplyProgram(saved.SelectedProgram)
}

// Snapshot assembles the persisted bundle, folding the live phases into
// the selected program's bucket first.
func (s *State) Snapshot() MapState {
	s.SyncProgram(s.selectedProgram)
	return MapState{
		Phases:               s.phases,
		SelectedProgram:      s.selectedProgram,
		SeparatorText:        s.separatorText,
		ProgramWorkflowLinks: s.programLinks,
	}
}

// ProgramLinks exposes the full per-program map for persistence.
func (s *State) ProgramLinks() map[string]map[string][]model.WorkflowLink {
	return s.programLinks
}

func (s *State) SetProgramLinks(links map[string]map[string][]model.WorkflowLink) {
	if links == nil {
		links = map[string]map[string][]model.WorkflowLink{}
	}
	s.programLinks = links
}
