package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/flowmap/flowmap/client"
	"github.com/flowmap/flowmap/config"
	"github.com/flowmap/flowmap/logger"
	"github.com/flowmap/flowmap/persistence"
	"github.com/flowmap/flowmap/phase"
	"github.com/flowmap/flowmap/validation"
)

const recordCacheTTL = 5 * time.Minute

type Server struct {
	http.Server
	Port     int
	conf     config.Config
	api      *client.Client
	sessions *sessionManager
	records  *persistence.RecordCache
	programs *phase.ProgramService
	items    *validation.Validator
}

func NewServer(conf config.Config, drafts persistence.DraftStore) (*Server, error) {
	api := client.NewClient(conf.HostConfig)
	s := &Server{
		Server: http.Server{
			Addr:        fmt.Sprintf(":%d", conf.HttpPort),
			IdleTimeout: 2 * time.Second,
		},
		Port:     conf.HttpPort,
		conf:     conf,
		api:      api,
		sessions: newSessionManager(conf, api, drafts),
		records:  persistence.NewRecordCache(recordCacheTTL),
		programs: phase.NewProgramService(api, conf.ProgramCollection, conf.WorkflowCollection),
		items:    validation.NewValidator(&clientFieldLister{api: api}),
	}

	router := mux.NewRouter()
	router.HandleFunc("/session", s.HandleOpenSession).Methods(http.MethodPost)
	router.HandleFunc("/session/{id}", s.HandleGetSession).Methods(http.MethodGet)
	router.HandleFunc("/session/{id}", s.HandleCloseSession).Methods(http.MethodDelete)
	router.HandleFunc("/session/{id}/mode", s.HandleSetMode).Methods(http.MethodPut)
	router.HandleFunc("/session/{id}/save", s.HandleSave).Methods(http.MethodPost)
	router.HandleFunc("/session/{id}/clone", s.HandleClone).Methods(http.MethodPost)
	router.HandleFunc("/session/{id}/theme", s.HandleSetTheme).Methods(http.MethodPut)
	router.HandleFunc("/session/{id}/theme/styles", s.HandleNodeStyles).Methods(http.MethodGet)

	router.HandleFunc("/session/{id}/nodes", s.HandleDropNode).Methods(http.MethodPost)
	router.HandleFunc("/session/{id}/nodes/{nodeId}", s.HandleUpdateNode).Methods(http.MethodPatch)
	router.HandleFunc("/session/{id}/nodes/{nodeId}/position", s.HandleDragStop).Methods(http.MethodPut)
	router.HandleFunc("/session/{id}/edges", s.HandleConnect).Methods(http.MethodPost)
	router.HandleFunc("/session/{id}/edges/{edgeId}", s.HandleReconnect).Methods(http.MethodPut)
	router.HandleFunc("/session/{id}/selection", s.HandleDeleteSelected).Methods(http.MethodDelete)
	router.HandleFunc("/session/{id}/click/node/{nodeId}", s.HandleNodeClick).Methods(http.MethodPost)
	router.HandleFunc("/session/{id}/click/edge/{edgeId}", s.HandleEdgeClick).Methods(http.MethodPost)
	router.HandleFunc("/session/{id}/click/pane", s.HandlePaneClick).Methods(http.MethodPost)

	router.HandleFunc("/session/{id}/pages", s.HandleAddPage).Methods(http.MethodPost)
	router.HandleFunc("/session/{id}/pages/{pageId}", s.HandleUpdatePage).Methods(http.MethodPatch)
	router.HandleFunc("/session/{id}/pages/{pageId}", s.HandleRemovePage).Methods(http.MethodDelete)
	router.HandleFunc("/session/{id}/pages/{pageId}/navigate", s.HandleNavigate).Methods(http.MethodPost)
	router.HandleFunc("/session/{id}/pages/{pageId}/viewport", s.HandleSaveViewport).Methods(http.MethodPut)
	router.HandleFunc("/session/{id}/breadcrumbs", s.HandleBreadcrumbs).Methods(http.MethodGet)

	router.HandleFunc("/session/{id}/follow", s.HandleFollowToggle).Methods(http.MethodPost)
	router.HandleFunc("/session/{id}/follow/navigate", s.HandleFollowNavigate).Methods(http.MethodPost)
	router.HandleFunc("/session/{id}/follow/key", s.HandleFollowKey).Methods(http.MethodPost)
	router.HandleFunc("/session/{id}/follow/focused", s.HandleFocusedNode).Methods(http.MethodGet)

	router.HandleFunc("/session/{id}/phases", s.HandleGetPhases).Methods(http.MethodGet)
	router.HandleFunc("/session/{id}/phases", s.HandleSetPhases).Methods(http.MethodPut)
	router.HandleFunc("/session/{id}/phases/program/{programId}", s.HandleApplyProgram).Methods(http.MethodPost)
	router.HandleFunc("/session/{id}/phases/separator", s.HandleSetSeparator).Methods(http.MethodPut)
	router.HandleFunc("/session/{id}/phases/state", s.HandleGetMapState).Methods(http.MethodGet)
	router.HandleFunc("/session/{id}/phases/state", s.HandleLoadMapState).Methods(http.MethodPut)
	router.HandleFunc("/programs", s.HandleListPrograms).Methods(http.MethodGet)
	router.HandleFunc("/workflows", s.HandleListWorkflows).Methods(http.MethodGet)

	router.HandleFunc("/validate/{collection}", s.HandleValidateItem).Methods(http.MethodPost)

	router.Use(loggingMiddleware)
	s.Handler = router
	return s, nil
}

func (s *Server) Start() error {
	logger.Info("starting http server on", zap.Int("port", s.Port))
	if err := s.ListenAndServe(); err != nil {
		return err
	}
	return nil
}

func (s *Server) Stop() error {
	logger.Info("stopping http server")
	s.sessions.closeAll()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := s.Shutdown(ctx)
	if err != nil {
		logger.Error("error shutting down http server")
	}
	return nil
}

// clientFieldLister adapts the host client to the validator.
type clientFieldLister struct {
	api *client.Client
}

func (l *clientFieldLister) ReadFields(ctx context.Context, collection string) ([]validation.Field, error) {
	var fields []validation.Field
	if err := l.api.GetFields(ctx, collection, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info(r.RequestURI)
		next.ServeHTTP(w, r)
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondOK(w http.ResponseWriter, message map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	res, _ := json.Marshal(message)
	w.Write(res)
}

func respondOKWithoutBody(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
