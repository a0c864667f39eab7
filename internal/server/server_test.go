package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/alexiusacademia/goestimate/internal/catalog"
	"github.com/alexiusacademia/goestimate/internal/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo, err := catalog.Open(context.Background(), "")
	if err != nil {
		t.Fatalf("failed to open catalog: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	cfg := config.Default()
	cfg.Report.Charts = false
	cfg.Server.MaxBodyBytes = 16 << 10
	s := New(repo, cfg)
	s.AccessLog = io.Discard

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func houseYAML(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("../project/testdata/house.yaml")
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func post(t *testing.T, url, contentType string, body []byte) *http.Response {
	t.Helper()
	resp, err := http.Post(url, contentType, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Errorf("health = %d %v", resp.StatusCode, body)
	}
}

func TestCatalog(t *testing.T) {
	ts := newTestServer(t)

	t.Run("rows", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/catalog/roofing")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()

		var rows []catalog.Roofing
		if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
			t.Fatal(err)
		}
		if len(rows) != 5 || rows[0].Name != "Clay Tiles" {
			t.Errorf("roofing rows = %+v", rows)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/catalog/glass")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})
}

func TestCreateEstimate(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/estimates", "application/yaml", houseYAML(t))
	if resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d: %s", resp.StatusCode, b)
	}

	var body struct {
		ID      string `json:"id"`
		Summary struct {
			Bricks    float64 `json:"bricks"`
			TotalCost float64 `json:"total_cost"`
		} `json:"summary"`
		Advisory struct {
			Warnings []struct {
				Code string `json:"code"`
			} `json:"warnings"`
		} `json:"advisory"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.ID == "" || resp.Header.Get("Location") != "/estimates/"+body.ID {
		t.Errorf("id %q, location %q", body.ID, resp.Header.Get("Location"))
	}
	if body.Summary.Bricks < 13607 || body.Summary.Bricks > 13609 || body.Summary.TotalCost <= 0 {
		t.Errorf("summary = %+v", body.Summary)
	}
}

func TestCreateEstimate_PDF(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/estimates?format=pdf", "application/yaml", houseYAML(t))
	if resp.StatusCode != http.StatusCreated || resp.Header.Get("Content-Type") != "application/pdf" {
		t.Fatalf("status %d, content type %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	data, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("body is not a PDF")
	}
}

func TestCreateEstimate_Errors(t *testing.T) {
	ts := newTestServer(t)
	house := string(houseYAML(t))

	tests := []struct {
		name        string
		contentType string
		body        string
		want        int
	}{
		{"malformed", "application/yaml", "name: [unclosed", http.StatusBadRequest},
		{"invalid", "application/yaml", strings.Replace(house, "length: 10", "length: -1", 1), http.StatusBadRequest},
		{"unresolved", "application/yaml", strings.Replace(house, "brick: Standard Red Brick", "brick: Adobe", 1), http.StatusUnprocessableEntity},
		{"content type", "text/plain", house, http.StatusUnsupportedMediaType},
		{"too large", "application/json", `{"name": "` + strings.Repeat("x", 20<<10) + `"}`, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/estimates", tt.contentType, []byte(tt.body))
			if resp.StatusCode != tt.want {
				b, _ := io.ReadAll(resp.Body)
				t.Errorf("status = %d, want %d: %s", resp.StatusCode, tt.want, b)
			}
		})
	}
}

// nanDoorCatalog returns a door with a non-finite price, which makes the
// estimate impossible to encode as JSON.
type nanDoorCatalog struct {
	*catalog.Repository
}

func (c nanDoorCatalog) Door(ctx context.Context, name string) (catalog.Door, error) {
	d, err := c.Repository.Door(ctx, name)
	d.Price = math.NaN()
	return d, err
}

func TestCreateEstimate_UnencodableResult(t *testing.T) {
	repo, err := catalog.Open(context.Background(), "")
	if err != nil {
		t.Fatalf("failed to open catalog: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	s := New(nanDoorCatalog{repo}, config.Default())
	s.AccessLog = io.Discard
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	resp := post(t, ts.URL+"/estimates", "application/yaml", houseYAML(t))
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusInternalServerError)
	}
	if loc := resp.Header.Get("Location"); loc != "" {
		t.Errorf("unexpected Location %q on failed response", loc)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	if !strings.Contains(body["error"], "encoding response") {
		t.Errorf("error = %q", body["error"])
	}
}

func TestWriteJSON(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeJSON(rec, http.StatusCreated, map[string]float64{"total": 12.5})
		if rec.Code != http.StatusCreated {
			t.Errorf("status = %d", rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != `{"total":12.5}` {
			t.Errorf("body = %s", got)
		}
	})

	t.Run("encoding failure", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rec.Header().Set("Location", "/estimates/x")
		writeJSON(rec, http.StatusCreated, map[string]float64{"total": math.NaN()})
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
		if rec.Header().Get("Location") != "" {
			t.Error("Location header kept on failure")
		}
	})
}
