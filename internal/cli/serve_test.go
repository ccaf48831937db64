package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/treeamps/treeamps/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c := New(io.Discard, LogInfo)
	runner, err := c.newRunner(true)
	if err != nil {
		t.Fatalf("newRunner() error = %v", err)
	}
	t.Cleanup(func() { runner.Close() })
	s := &server{cli: c, runner: runner}
	ts := httptest.NewServer(s.routes())
	t.Cleanup(ts.Close)
	return ts
}

func TestServeHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Error("missing X-Request-Id header")
	}
}

func TestServeCatalog(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/catalog?legs=4")
	if err != nil {
		t.Fatalf("GET /api/v1/catalog error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Legs != 4 {
		t.Errorf("Legs = %d, want 4", got.Legs)
	}
	if got.Counts.PP != 3 || got.Counts.PE != 8 || got.Counts.EE != 6 {
		t.Errorf("Counts = %+v, want {3 8 6}", got.Counts)
	}

	// Factor lists carry the pretty forms, one entry per catalog factor.
	wantPP := []string{"(p1·p2)", "(p1·p3)", "(p2·p3)"}
	if !reflect.DeepEqual(got.PP, wantPP) {
		t.Errorf("PP = %v, want %v", got.PP, wantPP)
	}
	if len(got.PE) != got.Counts.PE || len(got.EE) != got.Counts.EE {
		t.Errorf("factor list lengths %d/%d do not match counts %+v",
			len(got.PE), len(got.EE), got.Counts)
	}
	if got.EE[0] != "(e1·e2)" {
		t.Errorf("EE[0] = %q, want (e1·e2)", got.EE[0])
	}
}

func TestServeCatalogBadLegs(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/catalog?legs=abc")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestServeGenerate(t *testing.T) {
	ts := newTestServer(t)

	body := `{"legs": 4, "ee": 1}`
	resp, err := http.Post(ts.URL+"/api/v1/generate", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/v1/generate error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Count != 24 {
		t.Errorf("Count = %d, want 24", got.Count)
	}
	if got.BasisHash == "" {
		t.Error("BasisHash is empty")
	}
	if got.Basis == nil || len(got.Basis.Structures) != 24 {
		t.Error("Basis payload missing structures")
	}
}

func TestServeGenerateInconsistent(t *testing.T) {
	ts := newTestServer(t)

	body := `{"legs": 4, "degree": 3, "ee": 2}`
	resp, err := http.Post(ts.URL+"/api/v1/generate", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	var got errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Code == "" {
		t.Error("error response missing code")
	}
}

func TestStatusForCode(t *testing.T) {
	var opts pipeline.Options
	opts.Legs = -1
	err := opts.ValidateAndSetDefaults()
	if err == nil {
		t.Fatal("expected validation error")
	}

	rec := httptest.NewRecorder()
	writeError(rec, err)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("writeError status = %d, want 400", rec.Code)
	}
}
