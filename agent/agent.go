package agent

import (
	"net/http"
	"sync"

	"github.com/flowmap/flowmap/config"
	"github.com/flowmap/flowmap/logger"
	"github.com/flowmap/flowmap/persistence"
	"github.com/flowmap/flowmap/persistence/inmem"
	"github.com/flowmap/flowmap/persistence/redis"
	"github.com/flowmap/flowmap/rest"
)

// Agent wires the draft store and the HTTP surface from config and owns
// their lifecycle.
type Agent struct {
	Config       config.Config
	draftStore   persistence.DraftStore
	httpServer   *rest.Server
	shutdown     bool
	shutdownLock sync.Mutex
}

func New(conf config.Config) (*Agent, error) {
	a := &Agent{
		Config: conf,
	}
	setup := []func() error{
		a.setupDraftStore,
		a.setupHttpServer,
	}
	for _, fn := range setup {
		if err := fn(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *Agent) setupDraftStore() error {
	switch a.Config.DraftStoreType {
	case config.DRAFT_STORE_REDIS:
		a.draftStore = redis.NewRedisDraftStore(redis.Config{
			Addrs:     a.Config.RedisConfig.Addrs,
			Namespace: a.Config.RedisConfig.Namespace,
			PoolSize:  a.Config.RedisConfig.PoolSize,
			Password:  a.Config.RedisConfig.Password,
		})
	default:
		a.draftStore = inmem.NewInMemDraftStore()
	}
	return nil
}

func (a *Agent) setupHttpServer() error {
	var err error
	a.httpServer, err = rest.NewServer(a.Config, a.draftStore)
	if err != nil {
		return err
	}
	return nil
}

func (a *Agent) Start() error {
	go func() {
		if err := a.httpServer.Start(); err != nil && err != http.ErrServerClosed {
			_ = a.Shutdown()
			panic(err)
		}
	}()
	return nil
}

func (a *Agent) Shutdown() error {
	a.shutdownLock.Lock()
	defer a.shutdownLock.Unlock()
	if a.shutdown {
		return nil
	}
	a.shutdown = true
	logger.Info("shutting down agent")
	return a.httpServer.Stop()
}
