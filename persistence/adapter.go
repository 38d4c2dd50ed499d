package persistence

import (
	"context"
	"encoding/json"

	"github.com/flowmap/flowmap/client"
	"github.com/flowmap/flowmap/graph"
	"github.com/flowmap/flowmap/logger"
	"github.com/flowmap/flowmap/model"
	"github.com/flowmap/flowmap/page"
	"go.uber.org/zap"
)

const untitledWorkflow = "Untitled Workflow"

// newItemKey is the placeholder primary key the admin app uses for a
// record that has never been saved.
const newItemKey = "+"

// Adapter moves the in-memory graph in and out of the host's item storage.
// It owns the dirty-checking that keeps the load path from feeding back
// into change notifications.
type Adapter struct {
	graph      *graph.Graph
	pages      *page.Manager
	api        ItemApi
	collection string
	notifier   Notifier

	saving      bool
	loading     bool
	savedItemId string

	recordName        string
	recordDescription string

	lastLoaded *model.FlowData

	onChange func(data model.FlowData)
	onLoad   func()
}

func NewAdapter(g *graph.Graph, pages *page.Manager, api ItemApi, collection string, notifier Notifier) *Adapter {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Adapter{
		graph:      g,
		pages:      pages,
		api:        api,
		collection: collection,
		notifier:   notifier,
	}
}

// OnChange registers the host-form update callback; it fires only when the
// graph has actually diverged from the last loaded snapshot.
func (a *Adapter) OnChange(fn func(data model.FlowData)) {
	a.onChange = fn
}

func (a *Adapter) OnLoad(fn func()) {
	a.onLoad = fn
}

// SetItemId seeds the primary key from the route; the admin app passes
// "+" for a record that does not exist yet.
func (a *Adapter) SetItemId(id string) {
	if id == newItemKey {
		id = ""
	}
	a.savedItemId = id
}

func (a *Adapter) ItemId() string {
	return a.savedItemId
}

func (a *Adapter) IsNew() bool {
	return a.savedItemId == ""
}

func (a *Adapter) RecordName() string {
	return a.recordName
}

// LoadRecord ingests a full host record: identity, name and the graph
// bundle under its data field.
func (a *Adapter) LoadRecord(rec model.WorkflowRecord) {
	if rec.Id != "" {
		a.savedItemId = rec.Id
	}
	if rec.Name != "" {
		a.recordName = rec.Name
	}
	a.recordDescription = rec.Description
	if rec.Data != nil {
		a.LoadFlowData(rec.Data)
	} else {
		a.LoadFlowData(nil)
	}
}

// LoadFlowData replaces the whole editor state from persisted data.
// Malformed input resets to an empty graph; the caller never sees an
// error. Change notifications are suppressed for the duration so the load
// cannot be mistaken for a user edit.
func (a *Adapter) LoadFlowData(data any) {
	a.loading = true
	defer func() {
		a.loading = false
		if a.onLoad != nil {
			a.onLoad()
		}
	}()

	a.graph.ResetSelection()

	flow := ParseFlowData(data)
	a.graph.SetNodes(flow.Nodes)
	a.graph.SetEdges(flow.Edges)
	a.pages.SetPages(flow.Pages)
	a.pages.SetCurrentPageID(flow.CurrentPageID)
	a.pages.SetViewports(flow.PageViewports)
	a.pages.UpdatePageCounts()

	a.lastLoaded = a.CurrentFlowData()
	logger.Debug("flow data loaded",
		zap.Int("nodes", len(flow.Nodes)),
		zap.Int("edges", len(flow.Edges)),
		zap.Int("pages", len(flow.Pages)))
}

// CurrentFlowData assembles the persisted bundle from live editor state.
func (a *Adapter) CurrentFlowData() *model.FlowData {
	nodes, edges := a.graph.Snapshot()
	viewports := make(map[model.PageID]model.Viewport, len(a.pages.Viewports()))
	for k, v := range a.pages.Viewports() {
		viewports[k] = v
	}
	pages := make([]model.Page, len(a.pages.Pages()))
	copy(pages, a.pages.Pages())
	return &model.FlowData{
		Nodes:         nodes,
		Edges:         edges,
		Pages:         pages,
		CurrentPageID: a.pages.CurrentPageID(),
		PageViewports: viewports,
	}
}

// Diverged compares the live nodes and edges against the last loaded
// snapshot by structural JSON equality.
func (a *Adapter) Diverged() bool {
	if a.lastLoaded == nil {
		return true
	}
	current := a.CurrentFlowData()
	return !jsonEqual(current.Nodes, a.lastLoaded.Nodes) || !jsonEqual(current.Edges, a.lastLoaded.Edges)
}

// EmitChange pushes the current bundle through the change callback unless
// the editor is mid-load or the data still matches what was loaded.
func (a *Adapter) EmitChange() {
	if a.loading {
		logger.Debug("flow changed during load, suppressing emit")
		return
	}
	if !a.Diverged() {
		logger.Debug("flow matches loaded data, skipping emit")
		return
	}
	if a.onChange != nil {
		a.onChange(*a.CurrentFlowData())
	}
}

// SaveFlow persists the bundle to the host, creating the record on first
// save and updating it afterwards. A save issued while one is in flight is
// dropped. I/O failures are surfaced as notifications and returned.
func (a *Adapter) SaveFlow(ctx context.Context, name string, description string) (*model.WorkflowRecord, error) {
	if a.saving {
		logger.Debug("save already in progress, dropping request")
		return nil, nil
	}
	a.saving = true
	defer func() { a.saving = false }()

	a.pages.UpdatePageCounts()

	payload := model.WorkflowRecord{
		Name: firstNonEmpty(name, a.recordName, untitledWorkflow),
		Data: a.CurrentFlowData(),
	}
	if description != "" {
		payload.Description = description
	} else {
		payload.Description = a.recordDescription
	}

	var saved model.WorkflowRecord
	var err error
	if a.IsNew() {
		err = a.api.CreateItem(ctx, a.collection, payload, &saved)
	} else {
		err = a.api.UpdateItem(ctx, a.collection, a.savedItemId, payload, &saved)
	}
	if err != nil {
		a.notifier.Add(Notification{Title: "Save Failed", Text: errorText(err, "Failed to save workflow"), Type: NOTIFY_ERROR})
		return nil, err
	}

	if saved.Id != "" {
		a.savedItemId = saved.Id
	}
	a.recordName = payload.Name
	a.recordDescription = payload.Description
	// the saved bundle becomes the new baseline for divergence checks
	a.lastLoaded = payload.Data

	text := "Changes persisted"
	if saved.Id != "" {
		text = "ID: " + saved.Id
	}
	a.notifier.Add(Notification{Title: "Workflow Saved", Text: text, Type: NOTIFY_SUCCESS})
	return &saved, nil
}

// CloneWorkflow creates a fresh record carrying the same graph and a
// " (Copy)" name suffix. Cloning an unsaved workflow is refused before any
// network call.
func (a *Adapter) CloneWorkflow(ctx context.Context, name string) (*model.WorkflowRecord, error) {
	if a.saving {
		return nil, nil
	}
	if a.IsNew() {
		a.notifier.Add(Notification{Title: "Cannot Clone", Text: "Save the workflow first before cloning", Type: NOTIFY_ERROR})
		return nil, nil
	}
	a.saving = true
	defer func() { a.saving = false }()

	cloneName := firstNonEmpty(name, a.recordName, untitledWorkflow) + " (Copy)"
	payload := model.WorkflowRecord{
		Name:        cloneName,
		Description: a.recordDescription,
		Data:        a.CurrentFlowData(),
	}

	var cloned model.WorkflowRecord
	if err := a.api.CreateItem(ctx, a.collection, payload, &cloned); err != nil {
		a.notifier.Add(Notification{Title: "Clone Failed", Text: errorText(err, "Failed to clone workflow"), Type: NOTIFY_ERROR})
		return nil, err
	}

	a.notifier.Add(Notification{Title: "Workflow Cloned", Text: "Created \"" + cloneName + "\"", Type: NOTIFY_SUCCESS})
	return &cloned, nil
}

// errorText picks the best available message: server-provided error text,
// else the error's own message, else a fixed fallback.
func errorText(err error, fallback string) string {
	if apiErr, ok := err.(client.ApiError); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func jsonEqual(a any, b any) bool {
	aj, errA := json.Marshal(a)
	bj, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(aj) == string(bj)
}
