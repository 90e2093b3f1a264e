package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leomayn/planner/internal/planner"
)

func testQualification() planner.Qualification {
	return planner.Qualification{
		Name:         "Jane Doe",
		Email:        "jane@acme.co.uk",
		Company:      "Acme Advisory",
		Role:         "director-vp",
		Turnover:     "1m-5m",
		ConsentGiven: true,
	}
}

func TestAttioConfigured(t *testing.T) {
	if NewAttioClient("", "list").Configured() {
		t.Fatal("missing API key should not be configured")
	}
	if NewAttioClient("key", "").Configured() {
		t.Fatal("missing list ID should not be configured")
	}
	if !NewAttioClient("key", "list").Configured() {
		t.Fatal("key and list ID should be configured")
	}
}

func TestCreateLead(t *testing.T) {
	var path string
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}))
	defer srv.Close()

	client := NewAttioClient("key", "leads-list")
	client.baseURL = srv.URL

	if err := client.CreateLead(context.Background(), testQualification(), true); err != nil {
		t.Fatal(err)
	}
	if path != "/lists/leads-list/entries" {
		t.Fatalf("path got %q", path)
	}
	blob, _ := json.Marshal(payload)
	body := string(blob)
	for _, want := range []string{"Jane Doe", "jane@acme.co.uk", "Acme Advisory", "AI Deployment Planner", "Qualified: true"} {
		if !strings.Contains(body, want) {
			t.Fatalf("payload missing %q: %s", want, body)
		}
	}
}

func TestEnrichPatchesPersonRecord(t *testing.T) {
	var patchPath string
	var patchPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/objects/people/records/query":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]any{
					{"id": map[string]any{"record_id": "person-9"}},
				},
			})
		case r.Method == http.MethodPatch:
			patchPath = r.URL.Path
			_ = json.NewDecoder(r.Body).Decode(&patchPayload)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewAttioClient("key", "leads-list")
	client.baseURL = srv.URL

	top := []planner.RankedArchetype{{ID: "time-invoicing", Name: "Time tracking and invoicing", CompositeScore: 25}}
	bc := planner.BusinessCase{
		TotalAnnualCost:      281250,
		ConservativeRecovery: planner.MoneyRange{Low: 189844, High: 232031},
	}
	err := client.Enrich(context.Background(), testQualification(), planner.Diagnostic{
		FirmType: "consulting",
		TeamSize: "31-75",
		PainPoints: []planner.PainPoint{
			{Area: "invoicing", Symptom: "work-about-work"},
		},
	}, top, bc)
	if err != nil {
		t.Fatal(err)
	}
	if patchPath != "/objects/people/records/person-9" {
		t.Fatalf("patch path got %q", patchPath)
	}
	blob, _ := json.Marshal(patchPayload)
	for _, want := range []string{"Time tracking and invoicing", "281250", "consulting"} {
		if !strings.Contains(string(blob), want) {
			t.Fatalf("patch payload missing %q", want)
		}
	}
}

func TestEnrichMissingPersonIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer srv.Close()

	client := NewAttioClient("key", "leads-list")
	client.baseURL = srv.URL

	if err := client.Enrich(context.Background(), testQualification(), planner.Diagnostic{}, nil, planner.BusinessCase{}); err != nil {
		t.Fatalf("missing person should be a no-op, got %v", err)
	}
}
