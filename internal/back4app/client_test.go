package back4app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateObject(t *testing.T) {
	var gotPath, gotAppID, gotAPIKey string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAppID = r.Header.Get("X-Parse-Application-Id")
		gotAPIKey = r.Header.Get("X-Parse-REST-API-Key")
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"objectId":"abc123","createdAt":"2024-05-01T12:00:00.000Z"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "app-id", "api-key", zap.NewNop())
	id, err := c.CreateObject(context.Background(), "Houses", map[string]any{
		"address": "1 Main St",
		"house":   NewPointer("Houses", "h1"),
	})
	require.NoError(t, err)
	require.Equal(t, "abc123", id)

	require.Equal(t, "/classes/Houses", gotPath)
	require.Equal(t, "app-id", gotAppID)
	require.Equal(t, "api-key", gotAPIKey)
	require.Equal(t, "1 Main St", gotBody["address"])

	ptr, ok := gotBody["house"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Pointer", ptr["__type"])
	require.Equal(t, "Houses", ptr["className"])
	require.Equal(t, "h1", ptr["objectId"])
}

func TestCreateObjectErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":105,"error":"invalid field name"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "app-id", "api-key", zap.NewNop())
	_, err := c.CreateObject(context.Background(), "Houses", map[string]any{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "400")
}

func TestCreateObjectMissingObjectID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "app-id", "api-key", zap.NewNop())
	_, err := c.CreateObject(context.Background(), "Houses", map[string]any{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "objectId")
}

func TestCallFunction(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":{"value":42.5}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "app-id", "api-key", zap.NewNop())

	var out struct {
		Value float64 `json:"value"`
	}
	err := c.CallFunction(context.Background(), "getMaxThermostatValue", nil, &out)
	require.NoError(t, err)
	require.Equal(t, "/functions/getMaxThermostatValue", gotPath)
	require.Empty(t, gotBody)
	require.Equal(t, 42.5, out.Value)
}

func TestCallFunctionForwardsParams(t *testing.T) {
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "app-id", "api-key", zap.NewNop())

	var out []json.RawMessage
	err := c.CallFunction(context.Background(), "findUserDeviceTypes", map[string]any{"name": "Ada"}, &out)
	require.NoError(t, err)
	require.Equal(t, "Ada", gotBody["name"])
	require.Empty(t, out)
}

func TestCallFunctionErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":101,"error":"unauthorized"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "app-id", "api-key", zap.NewNop())

	var out map[string]any
	err := c.CallFunction(context.Background(), "getMaxThermostatValue", nil, &out)
	require.Error(t, err)
	require.Contains(t, err.Error(), "401")
}
