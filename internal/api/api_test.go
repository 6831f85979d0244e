package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/starford/notatnik/internal/models"
	"github.com/starford/notatnik/internal/notestore"
	"github.com/starford/notatnik/internal/sse"
	"github.com/starford/notatnik/internal/testutil"
)

// testEnv sets up a temp store and router. An empty authToken means
// disabled mode.
func testEnv(t *testing.T, authToken string, notes ...string) (*notestore.Store, http.Handler) {
	t.Helper()
	store := testutil.TestStore(t, notes...)
	h := NewHandler(store, testutil.DiscardLogger(), nil)
	return store, NewRouter(h, authToken != "", authToken, nil)
}

func do(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListNotes_Empty(t *testing.T) {
	_, router := testEnv(t, "")
	w := do(t, router, http.MethodGet, "/notes", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp ListResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Total != 0 || len(resp.Notes) != 0 {
		t.Errorf("resp = %+v", resp)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"notes":[]`)) {
		t.Errorf("empty list should encode as [], body = %s", w.Body.String())
	}
}

func TestAddAndList(t *testing.T) {
	store, router := testEnv(t, "")

	w := do(t, router, http.MethodPost, "/notes", map[string]string{"text": "Buy milk"})
	if w.Code != http.StatusCreated {
		t.Fatalf("add status = %d, body = %s", w.Code, w.Body.String())
	}
	_ = do(t, router, http.MethodPost, "/notes", map[string]string{"text": "Call Alice"})

	w = do(t, router, http.MethodGet, "/notes", nil)
	var resp ListResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Total != 2 || resp.Notes[1].Index != 1 || resp.Notes[1].Text != "Call Alice" {
		t.Errorf("resp = %+v", resp)
	}

	data, _ := os.ReadFile(store.Path())
	if string(data) != `["Buy milk","Call Alice"]` {
		t.Errorf("file = %s", data)
	}
}

func TestAddEmptyText(t *testing.T) {
	store, router := testEnv(t, "")
	w := do(t, router, http.MethodPost, "/notes", map[string]string{"text": ""})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d", w.Code)
	}
	if store.Len() != 1 {
		t.Errorf("len = %d", store.Len())
	}
}

func TestAddMissingText(t *testing.T) {
	_, router := testEnv(t, "")
	w := do(t, router, http.MethodPost, "/notes", map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAddInvalidJSON(t *testing.T) {
	_, router := testEnv(t, "")
	req := httptest.NewRequest(http.MethodPost, "/notes", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRemoveNote(t *testing.T) {
	store, router := testEnv(t, "", "Test note 1", "Test note 2")
	w := do(t, router, http.MethodDelete, "/notes/0", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp RemoveResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Removed != "Test note 1" {
		t.Errorf("removed = %q", resp.Removed)
	}
	if notes := store.Notes(); len(notes) != 1 || notes[0] != "Test note 2" {
		t.Errorf("notes = %q", notes)
	}
}

func TestRemoveInvalidIndex(t *testing.T) {
	store, router := testEnv(t, "", "Test note 1")
	for _, target := range []string{"/notes/5", "/notes/-1", "/notes/abc", "/notes/0.5"} {
		w := do(t, router, http.MethodDelete, target, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", target, w.Code)
		}
		var resp errResponse
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.Error != "Nieprawidłowy indeks." {
			t.Errorf("%s: error = %q", target, resp.Error)
		}
	}
	if store.Len() != 1 {
		t.Errorf("len = %d, want 1", store.Len())
	}
}

func TestAuth_TokenRequired(t *testing.T) {
	_, router := testEnv(t, "secret")

	w := do(t, router, http.MethodGet, "/notes", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong token: status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid token: status = %d, want 200", rec.Code)
	}
}

type recordingNotifier struct {
	kinds   []string
	entries []models.Entry
}

func (n *recordingNotifier) PublishNoteEvent(kind string, e models.Entry) {
	n.kinds = append(n.kinds, kind)
	n.entries = append(n.entries, e)
}

func TestMutationsNotify(t *testing.T) {
	store := testutil.TestStore(t, "first")
	n := &recordingNotifier{}
	router := NewRouter(NewHandler(store, testutil.DiscardLogger(), n), false, "", nil)

	_ = do(t, router, http.MethodPost, "/notes", map[string]string{"text": "second"})
	_ = do(t, router, http.MethodDelete, "/notes/0", nil)
	_ = do(t, router, http.MethodDelete, "/notes/9", nil)

	if len(n.kinds) != 2 || n.kinds[0] != sse.KindAdded || n.kinds[1] != sse.KindRemoved {
		t.Fatalf("kinds = %v", n.kinds)
	}
	if n.entries[0] != (models.Entry{Index: 1, Text: "second"}) {
		t.Errorf("added entry = %+v", n.entries[0])
	}
	if n.entries[1] != (models.Entry{Index: 0, Text: "first"}) {
		t.Errorf("removed entry = %+v", n.entries[1])
	}
}
