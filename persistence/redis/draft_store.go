package redis

import (
	"context"

	rd "github.com/go-redis/redis/v9"

	"github.com/flowmap/flowmap/model"
	"github.com/flowmap/flowmap/persistence"
	"github.com/flowmap/flowmap/util"
)

const DRAFT_KEY string = "DRAFT"

var _ persistence.DraftStore = new(redisDraftStore)

type redisDraftStore struct {
	*baseDao
	encoderDecoder util.EncoderDecoder[model.FlowData]
}

func NewRedisDraftStore(conf Config) *redisDraftStore {
	return &redisDraftStore{
		baseDao:        newBaseDao(conf),
		encoderDecoder: util.NewJsonEncoderDecoder[model.FlowData](),
	}
}

func (r *redisDraftStore) SaveDraft(workflowId string, data *model.FlowData) error {
	key := r.getNamespaceKey(DRAFT_KEY)
	ctx := context.Background()
	encoded, err := r.encoderDecoder.Encode(*data)
	if err != nil {
		return err
	}
	if err := r.redisClient.HSet(ctx, key, []string{workflowId, string(encoded)}).Err(); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (r *redisDraftStore) GetDraft(workflowId string) (*model.FlowData, error) {
	key := r.getNamespaceKey(DRAFT_KEY)
	ctx := context.Background()
	encoded, err := r.redisClient.HGet(ctx, key, workflowId).Result()
	if err != nil {
		if err == rd.Nil {
			return nil, nil
		}
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return r.encoderDecoder.Decode([]byte(encoded))
}

func (r *redisDraftStore) DeleteDraft(workflowId string) error {
	key := r.getNamespaceKey(DRAFT_KEY)
	ctx := context.Background()
	if err := r.redisClient.HDel(ctx, key, workflowId).Err(); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}
