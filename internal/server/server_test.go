package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/pawlygon/shapekit/pkg/ops"
	"github.com/pawlygon/shapekit/pkg/pending"
	"github.com/pawlygon/shapekit/pkg/roster"
	"github.com/pawlygon/shapekit/pkg/scene"
	"github.com/pawlygon/shapekit/pkg/scene/store"
	"github.com/pawlygon/shapekit/pkg/shapekey"
)

func testServer() *Server {
	rs := &roster.Set{
		Lists: []roster.List{{Name: "Basics", Keys: []string{"Smile", "Wink"}}},
		Pairs: []roster.Pair{{A: "Left", B: "Right"}},
	}
	runner := ops.NewRunner(pending.NewMemoryStore(), rs)
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return New(store.NewMemoryStore(), runner, logger)
}

func testSceneJSON(t *testing.T) []byte {
	t.Helper()
	sc := &scene.Scene{
		Name: "avatar",
		Objects: []*scene.Object{{
			Name:        "Face",
			VertexCount: 3,
			Groups: []scene.VertexGroup{
				{Name: "Left", Weights: []scene.VertexWeight{{Index: 0, Weight: 1}}},
				{Name: "Right", Weights: []scene.VertexWeight{{Index: 2, Weight: 1}}},
			},
			Keys: []*shapekey.Key{
				{Name: "Basis"},
				{Name: "Smile", Offsets: []shapekey.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}},
				{Name: "Frown.old"},
			},
			ActiveKey: "Smile",
		}},
	}
	data, err := scene.Marshal(sc)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func doRequest(t *testing.T, h http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	h := testServer().Routes()
	w := doRequest(t, h, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Errorf("GET /healthz = %d, want 200", w.Code)
	}
}

func TestSceneLifecycle(t *testing.T) {
	h := testServer().Routes()

	w := doRequest(t, h, http.MethodPut, "/api/scenes/avatar", testSceneJSON(t))
	if w.Code != http.StatusOK {
		t.Fatalf("PUT scene = %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, h, http.MethodGet, "/api/scenes/", nil)
	list := decodeBody[map[string][]string](t, w)
	if len(list["scenes"]) != 1 || list["scenes"][0] != "avatar" {
		t.Errorf("scene list = %v, want [avatar]", list["scenes"])
	}

	w = doRequest(t, h, http.MethodGet, "/api/scenes/avatar/objects", nil)
	objs := decodeBody[map[string][]string](t, w)
	if len(objs["objects"]) != 1 || objs["objects"][0] != "Face" {
		t.Errorf("objects = %v, want [Face]", objs["objects"])
	}

	w = doRequest(t, h, http.MethodDelete, "/api/scenes/avatar", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("DELETE scene = %d, want 204", w.Code)
	}

	w = doRequest(t, h, http.MethodGet, "/api/scenes/avatar", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("GET deleted scene = %d, want 404", w.Code)
	}
}

func TestPutSceneRejectsInvalid(t *testing.T) {
	h := testServer().Routes()
	w := doRequest(t, h, http.MethodPut, "/api/scenes/avatar", []byte(`{"objects`))
	if w.Code != http.StatusBadRequest {
		t.Errorf("PUT malformed scene = %d, want 400", w.Code)
	}
	body := decodeBody[map[string]map[string]string](t, w)
	if body["error"]["code"] != "INVALID_SCENE" {
		t.Errorf("error code = %q, want INVALID_SCENE", body["error"]["code"])
	}
}

func TestCheckFillFlow(t *testing.T) {
	h := testServer().Routes()
	if w := doRequest(t, h, http.MethodPut, "/api/scenes/avatar", testSceneJSON(t)); w.Code != http.StatusOK {
		t.Fatalf("PUT scene = %d", w.Code)
	}

	// Fill before check is a blocked precondition.
	w := doRequest(t, h, http.MethodPost, "/api/scenes/avatar/fill", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("fill before check = %d, want 409: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, h, http.MethodPost, "/api/scenes/avatar/check", []byte(`{"roster":"Basics"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("check = %d: %s", w.Code, w.Body.String())
	}
	check := decodeBody[ops.CheckResult](t, w)
	if len(check.Missing) != 1 || check.Missing[0] != "Wink" {
		t.Errorf("check missing = %v, want [Wink]", check.Missing)
	}

	w = doRequest(t, h, http.MethodPost, "/api/scenes/avatar/fill", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("fill = %d: %s", w.Code, w.Body.String())
	}
	fill := decodeBody[ops.FillResult](t, w)
	if fill.Created != 1 {
		t.Errorf("fill created = %d, want 1", fill.Created)
	}

	// Re-check confirms the fill persisted and cleared the report.
	w = doRequest(t, h, http.MethodPost, "/api/scenes/avatar/check", []byte(`{"roster":"Basics"}`))
	check = decodeBody[ops.CheckResult](t, w)
	if len(check.Missing) != 0 {
		t.Errorf("missing after fill = %v, want none", check.Missing)
	}
}

func TestSplitByPair(t *testing.T) {
	h := testServer().Routes()
	if w := doRequest(t, h, http.MethodPut, "/api/scenes/avatar", testSceneJSON(t)); w.Code != http.StatusOK {
		t.Fatalf("PUT scene = %d", w.Code)
	}

	w := doRequest(t, h, http.MethodPost, "/api/scenes/avatar/split", []byte(`{"pair":"Left/Right"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("split = %d: %s", w.Code, w.Body.String())
	}
	res := decodeBody[ops.SplitResult](t, w)
	if res.CreatedA != "SmileLeft" || res.CreatedB != "SmileRight" {
		t.Errorf("split created %q/%q", res.CreatedA, res.CreatedB)
	}

	// The stored scene carries the new keys.
	w = doRequest(t, h, http.MethodGet, "/api/scenes/avatar", nil)
	sc := decodeBody[scene.Scene](t, w)
	names := make([]string, len(sc.Objects[0].Keys))
	for i, k := range sc.Objects[0].Keys {
		names[i] = k.Name
	}
	want := []string{"Basis", "Smile", "SmileLeft", "SmileRight", "Frown.old"}
	for i, n := range want {
		if names[i] != n {
			t.Fatalf("stored key order = %v, want %v", names, want)
		}
	}
}

func TestTidyAndPrune(t *testing.T) {
	h := testServer().Routes()
	if w := doRequest(t, h, http.MethodPut, "/api/scenes/avatar", testSceneJSON(t)); w.Code != http.StatusOK {
		t.Fatalf("PUT scene = %d", w.Code)
	}

	w := doRequest(t, h, http.MethodPost, "/api/scenes/avatar/tidy", nil)
	tidy := decodeBody[ops.TidyResult](t, w)
	if tidy.Moved != 0 {
		t.Errorf("tidy moved = %d, want 0 (already at bottom)", tidy.Moved)
	}

	w = doRequest(t, h, http.MethodPost, "/api/scenes/avatar/prune", nil)
	prune := decodeBody[ops.PruneResult](t, w)
	if prune.Deleted != 1 {
		t.Errorf("prune deleted = %d, want 1", prune.Deleted)
	}
}

func TestOperatorOnUnknownObject(t *testing.T) {
	h := testServer().Routes()
	if w := doRequest(t, h, http.MethodPut, "/api/scenes/avatar", testSceneJSON(t)); w.Code != http.StatusOK {
		t.Fatalf("PUT scene = %d", w.Code)
	}

	w := doRequest(t, h, http.MethodPost, "/api/scenes/avatar/tidy", []byte(`{"object":"Ghost"}`))
	if w.Code != http.StatusConflict {
		t.Errorf("tidy unknown object = %d, want 409: %s", w.Code, w.Body.String())
	}
	body := decodeBody[map[string]map[string]string](t, w)
	if body["error"]["code"] != "PRECONDITION_NO_OBJECT" {
		t.Errorf("error code = %q, want PRECONDITION_NO_OBJECT", body["error"]["code"])
	}
}
