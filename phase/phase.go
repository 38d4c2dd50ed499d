package phase

import (
	"github.com/flowmap/flowmap/model"
)

const DefaultSeparatorText = "SIGNED SERVICE PLAN"
const defaultPhaseColor = "var(--theme--primary, #7c3aed)"

// DefaultProgramKey buckets links that belong to no particular program.
const DefaultProgramKey = "default"

const PHASE_REQUEST_SERVICE = "request_service"
const PHASE_EVALUATE_SERVICE = "evaluate_service"
const PHASE_PROVIDE_SERVICES = "provide_services"
const PHASE_END_OF_SERVICE = "end_of_service"

// defaultPhases is the fixed column layout of the process map, in display
// order.
var defaultPhases = []model.Phase{
	{Id: PHASE_REQUEST_SERVICE, Title: "REQUEST SERVICE/REPORT", Color: defaultPhaseColor},
	{Id: PHASE_EVALUATE_SERVICE, Title: "EVALUATE SERVICE", Color: defaultPhaseColor},
	{Id: PHASE_PROVIDE_SERVICES, Title: "PROVIDE SERVICES AND REEVALUATE SERVICES", Color: defaultPhaseColor},
	{Id: PHASE_END_OF_SERVICE, Title: "END OF SERVICES", Color: defaultPhaseColor},
}

func PhaseIds() []string {
	ids := make([]string, 0, len(defaultPhases))
	for _, p := range defaultPhases {
		ids = append(ids, p.Id)
	}
	return ids
}

// CreateDefaultPhases returns the four standard phases with empty workflow
// lists.
func CreateDefaultPhases() []model.Phase {
	phases := make([]model.Phase, 0, len(defaultPhases))
	for _, p := range defaultPhases {
		p.Workflows = []model.WorkflowLink{}
		phases = append(phases, p)
	}
	return phases
}

// ConvertPhasesToLinksMap flattens phases into a phase-id keyed map. Every
// standard phase id is present in the result even when absent from the
// input.
func ConvertPhasesToLinksMap(phases []model.Phase) map[string][]model.WorkflowLink {
	links := make(map[string][]model.WorkflowLink, len(defaultPhases))
	for _, p := range phases {
		links[p.Id] = copyLinks(p.Workflows)
	}
	for _, p := range defaultPhases {
		if _, ok := links[p.Id]; !ok {
			links[p.Id] = []model.WorkflowLink{}
		}
	}
	return links
}

// CreatePhasesFromLinks rebuilds the standard phases from a links map.
// Unknown keys are dropped; missing keys produce empty phases.
func CreatePhasesFromLinks(links map[string][]model.WorkflowLink) []model.Phase {
	phases := make([]model.Phase, 0, len(defaultPhases))
	for _, p := range defaultPhases {
		p.Workflows = copyLinks(links[p.Id])
		phases = append(phases, p)
	}
	return phases
}

func copyLinks(links []model.WorkflowLink) []model.WorkflowLink {
	out := make([]model.WorkflowLink, len(links))
	copy(out, links)
	return out
}

// NormalizeProgramKey maps an absent program id to the shared default
// bucket; any concrete id is used verbatim.
func NormalizeProgramKey(id string) string {
	if id == "" {
		return DefaultProgramKey
	}
	return id
}
