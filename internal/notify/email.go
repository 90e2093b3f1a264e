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
)

const (
	resendEndpoint = "https://api.resend.com/emails"
	emailFrom      = "Leomayn <website@leomayn.com>"
)

// EmailSender delivers the report-ready email through Resend.
type EmailSender struct {
	apiKey  string
	baseURL string
	apiURL  string
	client  *http.Client
}

// NewEmailSender builds a sender. baseURL is the public origin used for
// the PDF link in the email body.
func NewEmailSender(apiKey, baseURL string) *EmailSender {
	return &EmailSender{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiURL:  resendEndpoint,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (e *EmailSender) Configured() bool {
	return e != nil && e.apiKey != ""
}

// SendReportReady emails the prospect a link to their PDF report.
func (e *EmailSender) SendReportReady(ctx context.Context, name, email, company, reportID string) error {
	payload := map[string]any{
		"from":    emailFrom,
		"to":      email,
		"subject": fmt.Sprintf("Your AI Deployment Planner: %s", html.EscapeString(company)),
		"html":    buildEmailHTML(name, company, reportID, e.baseURL),
	}
	blob, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint(), bytes.NewReader(blob))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("resend responded %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

func (e *EmailSender) endpoint() string {
	return e.apiURL
}

func buildEmailHTML(name, company, reportID, baseURL string) string {
	safeName := html.EscapeString(name)
	safeCompany := html.EscapeString(company)
	pdfURL := fmt.Sprintf("%s/api/planner/report/%s", baseURL, reportID)

	return `<div style="font-family: Manrope, sans-serif; max-width: 600px; margin: 0 auto; color: #1a3d56;">
  <div style="padding: 32px 0; border-bottom: 3px solid #f7c9c0;">
    <strong style="font-size: 18px; letter-spacing: 0.12em;">LEOMAYN</strong>
  </div>
  <div style="padding: 32px 0;">
    <p>Hello ` + safeName + `,</p>
    <p>Your AI Deployment Planner report for ` + safeCompany + ` is ready.</p>
    <p><a href="` + pdfURL + `" style="display: inline-block; background: #1a3d56; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; font-weight: 600;">Download your PDF report</a></p>
    <p style="color: #9da7b0; font-size: 14px;">This link will be available for 30 days.</p>
    <hr style="border: none; border-top: 1px solid #e5e5e5; margin: 24px 0;" />
    <p>Want to go deeper? Our Diagnose engagement applies this same methodology with full access to your team and data.</p>
    <p><a href="https://calendly.com/tom-leomayn/30min" style="color: #1a3d56; font-weight: 600;">Book a discovery call</a></p>
  </div>
  <div style="padding: 16px 0; border-top: 1px solid #e5e5e5; font-size: 12px; color: #9da7b0;">
    <p>Leomayn Limited | leomayn.com</p>
  </div>
</div>`
}
