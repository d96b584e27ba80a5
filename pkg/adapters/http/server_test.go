package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sz10101/vym/pkg/adapters/memory"
	"github.com/sz10101/vym/pkg/script"
)

func newTestServer(models ...*memory.Model) *Server {
	return NewServer(script.NewApp(memory.NewHost(models...)), WithVersion("1.2.3\n"))
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, CallResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	var resp CallResponse
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
	}
	return w, resp
}

func TestServer_CallMap(t *testing.T) {
	h := newTestServer(memory.NewModel()).Routes()

	w, resp := do(t, h, "POST", "/maps/current/ops/select", `["mc:0"]`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, resp.Result)

	w, _ = do(t, h, "POST", "/maps/current/ops/addBranch", "")
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, h, "POST", "/maps/current/ops/setHeadingPlainText", `{"text": "named"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	_, resp = do(t, h, "POST", "/maps/current/ops/branchCount", "")
	assert.Equal(t, float64(1), resp.Result)

	_, resp = do(t, h, "POST", "/maps/current/ops/getHeadingPlainText", "")
	assert.Equal(t, "named", resp.Result)
}

func TestServer_ReportedErrors(t *testing.T) {
	h := newTestServer(memory.NewModel()).Routes()

	w, resp := do(t, h, "POST", "/maps/current/ops/branchCount", "")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, float64(-1), resp.Result)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, ErrorInfo{Kind: "ReferenceError", Message: "No branch selected"}, resp.Errors[0])
}

func TestServer_CallApp(t *testing.T) {
	t.Run("Select Missing Map", func(t *testing.T) {
		h := newTestServer(memory.NewModel()).Routes()

		w, resp := do(t, h, "POST", "/vym/ops/selectMap", `[2]`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "RangeError", resp.Errors[0].Kind)
	})

	t.Run("Current Map", func(t *testing.T) {
		h := newTestServer(memory.NewModel()).Routes()

		w, resp := do(t, h, "POST", "/vym/ops/getCurrentMap", "")

		require.Equal(t, http.StatusOK, w.Code)
		info, ok := resp.Result.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, true, info["current"])
	})
}

func TestServer_BadRequests(t *testing.T) {
	t.Run("Unknown Operation", func(t *testing.T) {
		h := newTestServer(memory.NewModel()).Routes()
		w, _ := do(t, h, "POST", "/maps/current/ops/addBrunch", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Invalid Body", func(t *testing.T) {
		h := newTestServer(memory.NewModel()).Routes()
		w, _ := do(t, h, "POST", "/maps/current/ops/select", `"mc:0"`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("No Map Opened", func(t *testing.T) {
		h := newTestServer().Routes()
		w, _ := do(t, h, "POST", "/maps/current/ops/addBranch", "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestServer_Listings(t *testing.T) {
	model := memory.NewModel()
	model.SetTitle("Plan")
	h := newTestServer(model).Routes()

	w, _ := do(t, h, "GET", "/ops", "")
	require.Equal(t, http.StatusOK, w.Code)
	var ops map[string][]OpInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ops))
	assert.NotEmpty(t, ops["map"])
	assert.Contains(t, ops["vym"], OpInfo{Name: "selectMap", Signature: "selectMap(n)", Doc: "Focus open document n."})

	w, _ = do(t, h, "GET", "/maps", "")
	var maps []MapInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &maps))
	assert.Equal(t, []MapInfo{{Index: 0, Title: "Plan", Current: true}}, maps)

	w, _ = do(t, h, "GET", "/info", "")
	assert.JSONEq(t, `{"app":"vym-http","version":"1.2.3"}`, w.Body.String())

	w, _ = do(t, h, "GET", "/health", "")
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSubscribeEvents(t *testing.T) {
	srv := newTestServer(memory.NewModel())
	h := srv.Routes()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wSub := httptest.NewRecorder()
	reqSub := httptest.NewRequest("GET", "/events?facade=map", nil).WithContext(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.ServeHTTP(wSub, reqSub)
	}()

	time.Sleep(100 * time.Millisecond)

	do(t, h, "POST", "/maps/current/ops/addBranch", "")

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	output := wSub.Body.String()
	assert.Contains(t, output, "event: ping")
	assert.Contains(t, output, `"op":"addBranch"`)
	assert.Contains(t, output, `"kind":"ReferenceError"`)
}
