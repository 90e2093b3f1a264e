package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestEmailSenderConfigured(t *testing.T) {
	if NewEmailSender("", "https://leomayn.com").Configured() {
		t.Fatal("sender without API key should not be configured")
	}
	if !NewEmailSender("key", "https://leomayn.com").Configured() {
		t.Fatal("sender with API key should be configured")
	}
	var nilSender *EmailSender
	if nilSender.Configured() {
		t.Fatal("nil sender should not be configured")
	}
}

func TestSendReportReady(t *testing.T) {
	var got map[string]any
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := NewEmailSender("test-key", "https://leomayn.com/")
	sender.apiURL = srv.URL

	err := sender.SendReportReady(context.Background(), "Jane Doe", "jane@acme.co.uk", "Acme Advisory", "report-123")
	if err != nil {
		t.Fatal(err)
	}
	if auth != "Bearer test-key" {
		t.Fatalf("auth header got %q", auth)
	}
	if got["to"] != "jane@acme.co.uk" {
		t.Fatalf("to got %v", got["to"])
	}
	if got["subject"] != "Your AI Deployment Planner: Acme Advisory" {
		t.Fatalf("subject got %v", got["subject"])
	}
	html, _ := got["html"].(string)
	if !strings.Contains(html, "https://leomayn.com/api/planner/report/report-123") {
		t.Fatal("email body missing PDF link")
	}
	if !strings.Contains(html, "Jane Doe") {
		t.Fatal("email body missing recipient name")
	}
	if !strings.Contains(html, "30 days") {
		t.Fatal("email body missing expiry note")
	}
}

func TestSendReportReadyEscapesHTML(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	sender := NewEmailSender("key", "https://leomayn.com")
	sender.apiURL = srv.URL

	if err := sender.SendReportReady(context.Background(), "<b>Jane</b>", "j@x.com", "Acme & Co", "id"); err != nil {
		t.Fatal(err)
	}
	html, _ := got["html"].(string)
	if strings.Contains(html, "<b>Jane</b>") {
		t.Fatal("name not escaped")
	}
	if !strings.Contains(html, "Acme &amp; Co") {
		t.Fatal("company not escaped")
	}
}

func TestSendReportReadySurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	sender := NewEmailSender("bad-key", "https://leomayn.com")
	sender.apiURL = srv.URL

	err := sender.SendReportReady(context.Background(), "Jane", "j@x.com", "Acme", "id")
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Fatalf("expected 401 error, got %v", err)
	}
}
