package model

// WorkflowLink is one ordered workflow reference inside a phase.
type WorkflowLink struct {
	Id           string `json:"id"`
	Order        int    `json:"order"`
	Title        string `json:"title"`
	WorkflowID   string `json:"workflowId,omitempty"`
	WorkflowName string `json:"workflowName,omitempty"`
}

// Phase is one column of the process map, holding ordered workflow links.
type Phase struct {
	Id        string         `json:"id"`
	Title     string         `json:"title"`
	Color     string         `json:"color"`
	Workflows []WorkflowLink `json:"workflows"`
}

type Program struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}
