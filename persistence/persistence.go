package persistence

import (
	"context"
	"fmt"

	"github.com/flowmap/flowmap/logger"
	"github.com/flowmap/flowmap/model"
	"go.uber.org/zap"
)

type StorageLayerError struct {
	Message string
}

func (e StorageLayerError) Error() string {
	return fmt.Sprintf("storage layer error %s", e.Message)
}

// ItemApi is the slice of the host client the adapter needs.
type ItemApi interface {
	GetItem(ctx context.Context, collection string, id string, out any) error
	CreateItem(ctx context.Context, collection string, payload any, out any) error
	UpdateItem(ctx context.Context, collection string, id string, payload any, out any) error
}

const NOTIFY_SUCCESS = "success"
const NOTIFY_ERROR = "error"

// Notification is a user-facing message surfaced by save/clone outcomes.
type Notification struct {
	Title string
	Text  string
	Type  string
}

type Notifier interface {
	Add(n Notification)
}

// LogNotifier writes notifications to the service log; the REST layer
// swaps in a collector that relays them to the admin app.
type LogNotifier struct{}

func (LogNotifier) Add(n Notification) {
	if n.Type == NOTIFY_ERROR {
		logger.Error("notification", zap.String("title", n.Title), zap.String("text", n.Text))
		return
	}
	logger.Info("notification", zap.String("title", n.Title), zap.String("text", n.Text))
}

// DraftStore keeps autosave snapshots outside the host, keyed by workflow
// id. Losing a draft is never fatal; the host record stays authoritative.
type DraftStore interface {
	SaveDraft(workflowId string, data *model.FlowData) error
	GetDraft(workflowId string) (*model.FlowData, error)
	DeleteDraft(workflowId string) error
}
