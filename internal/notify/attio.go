package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/leomayn/planner/internal/planner"
)

const attioAPIBase = "https://api.attio.com/v2"

// AttioClient creates leads at qualification time and enriches existing
// person records after a report is generated.
type AttioClient struct {
	apiKey      string
	leadsListID string
	baseURL     string
	client      *http.Client
}

func NewAttioClient(apiKey, leadsListID string) *AttioClient {
	return &AttioClient{
		apiKey:      apiKey,
		leadsListID: leadsListID,
		baseURL:     attioAPIBase,
		client:      &http.Client{Timeout: 15 * time.Second},
	}
}

func (a *AttioClient) Configured() bool {
	return a != nil && a.apiKey != "" && a.leadsListID != ""
}

func (a *AttioClient) doJSON(ctx context.Context, method, url string, payload any) (*http.Response, error) {
	blob, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")
	return a.client.Do(req)
}

// CreateLead records a qualified-form submission in the website leads list.
func (a *AttioClient) CreateLead(ctx context.Context, q planner.Qualification, qualified bool) error {
	displayRole := q.Role
	if q.RoleOther != "" {
		displayRole = q.RoleOther
	}
	notes := fmt.Sprintf("Role: %s\nTurnover: %s\nConsent: %t at %s\nQualified: %t",
		html.EscapeString(displayRole), q.Turnover, q.ConsentGiven,
		time.Now().UTC().Format(time.RFC3339), qualified)

	payload := map[string]any{
		"data": map[string]any{
			"values": map[string]any{
				"name":            []map[string]any{{"value": html.EscapeString(q.Name)}},
				"email_addresses": []map[string]any{{"email_address": q.Email}},
				"company":         []map[string]any{{"value": html.EscapeString(q.Company)}},
				"notes":           []map[string]any{{"value": notes}},
				"source":          []map[string]any{{"value": "AI Deployment Planner"}},
			},
		},
	}

	resp, err := a.doJSON(ctx, http.MethodPost,
		fmt.Sprintf("%s/lists/%s/entries", a.baseURL, a.leadsListID), payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("attio lead create responded %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// Enrich finds the person record by email and patches its description with
// the diagnostic summary. A missing person is not an error; the lead flow
// may simply not have run yet.
func (a *AttioClient) Enrich(ctx context.Context, q planner.Qualification, d planner.Diagnostic, top []planner.RankedArchetype, bc planner.BusinessCase) error {
	searchPayload := map[string]any{
		"filter": map[string]any{
			"email_addresses": map[string]any{"contains": q.Email},
		},
	}
	resp, err := a.doJSON(ctx, http.MethodPost, a.baseURL+"/objects/people/records/query", searchPayload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("attio person search responded %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var search struct {
		Data []struct {
			ID struct {
				RecordID string `json:"record_id"`
			} `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return fmt.Errorf("decode attio search response: %w", err)
	}
	if len(search.Data) == 0 {
		return nil
	}
	personID := search.Data[0].ID.RecordID

	patchPayload := map[string]any{
		"data": map[string]any{
			"values": map[string]any{
				"description": []map[string]any{{"value": enrichmentNotes(d, top, bc)}},
			},
		},
	}
	patchResp, err := a.doJSON(ctx, http.MethodPatch,
		a.baseURL+"/objects/people/records/"+personID, patchPayload)
	if err != nil {
		return err
	}
	defer patchResp.Body.Close()
	if patchResp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(patchResp.Body, 4096))
		return fmt.Errorf("attio person patch responded %d: %s", patchResp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

func enrichmentNotes(d planner.Diagnostic, top []planner.RankedArchetype, bc planner.BusinessCase) string {
	var pains []string
	for _, p := range d.PainPoints {
		pains = append(pains, p.Area+":"+p.Symptom)
	}
	var archetypes []string
	for _, a := range top {
		archetypes = append(archetypes, fmt.Sprintf("%s (%g)", a.Name, a.CompositeScore))
	}
	lines := []string{
		"Diagnostic completed: " + time.Now().UTC().Format(time.RFC3339),
		"Firm type: " + d.FirmType,
		"Team size: " + d.TeamSize,
		fmt.Sprintf("Strategic focus: %s (primary), %s (secondary)", d.StrategicFocus.Primary, d.StrategicFocus.Secondary),
		"Pain points: " + strings.Join(pains, ", "),
		"Process knowledge: " + d.ProcessKnowledge,
		"Data foundations: " + d.DataFoundations,
		"AI adoption: " + d.AiAdoption,
		"Top archetypes: " + strings.Join(archetypes, ", "),
		fmt.Sprintf("Annual cost: £%d", bc.TotalAnnualCost),
		fmt.Sprintf("Recovery range: £%d - £%d", bc.ConservativeRecovery.Low, bc.ConservativeRecovery.High),
	}
	return strings.Join(lines, "\n")
}
