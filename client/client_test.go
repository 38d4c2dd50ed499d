package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flowmap/flowmap/config"
	"github.com/flowmap/flowmap/model"
	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	for scenario, fn := range map[string]func(t *testing.T){
		"create unwraps data envelope": testCreateEnvelope,
		"error body message surfaces":  testErrorMessage,
		"bearer token sent":            testAuthHeader,
	} {
		t.Run(scenario, fn)
	}
}

func testCreateEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/items/workflows", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":"wf-1","name":"Intake"}}`))
	}))
	defer srv.Close()

	c := NewClient(config.HostApiConfig{BaseUrl: srv.URL})
	var rec model.WorkflowRecord
	err := c.CreateItem(context.Background(), "workflows", model.WorkflowRecord{Name: "Intake"}, &rec)
	require.NoError(t, err)
	require.Equal(t, "wf-1", rec.Id)
	require.Equal(t, "Intake", rec.Name)
}

func testErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"errors":[{"message":"You don't have permission to access this."}]}`))
	}))
	defer srv.Close()

	c := NewClient(config.HostApiConfig{BaseUrl: srv.URL})
	err := c.GetItem(context.Background(), "workflows", "wf-1", nil)
	require.Error(t, err)

	apiErr, ok := err.(ApiError)
	require.True(t, ok)
	require.Equal(t, http.StatusForbidden, apiErr.Status)
	require.Equal(t, "You don't have permission to access this.", apiErr.Message)
}

func testAuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := NewClient(config.HostApiConfig{BaseUrl: srv.URL, StaticToken: "secret-token"})
	var out []model.Program
	require.NoError(t, c.GetItems(context.Background(), "programs", &out))
}
