// Package httpapi exposes the planner pipeline over HTTP: report
// generation, PDF download, qualification, and a bare scoring endpoint.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/leomayn/planner/internal/kvstore"
	"github.com/leomayn/planner/internal/notify"
	"github.com/leomayn/planner/internal/planner"
)

// ReportGenerator runs the full generation pipeline for a validated
// submission.
type ReportGenerator interface {
	Generate(ctx context.Context, req planner.GenerateRequest) (*planner.Outcome, error)
}

// ReportReader loads persisted reports for the download endpoint.
type ReportReader interface {
	GetReport(ctx context.Context, id string) (planner.ReportRecord, error)
}

// PDFRenderer turns a report record into PDF bytes.
type PDFRenderer interface {
	Render(ctx context.Context, rec planner.ReportRecord) ([]byte, error)
}

// Mailer delivers the report-ready email.
type Mailer interface {
	Configured() bool
	SendReportReady(ctx context.Context, name, email, company, reportID string) error
}

// CRMClient records leads and enriches person records.
type CRMClient interface {
	Configured() bool
	CreateLead(ctx context.Context, q planner.Qualification, qualified bool) error
	Enrich(ctx context.Context, q planner.Qualification, d planner.Diagnostic, top []planner.RankedArchetype, bc planner.BusinessCase) error
}

var (
	_ Mailer    = (*notify.EmailSender)(nil)
	_ CRMClient = (*notify.AttioClient)(nil)
)

type Server struct {
	generator ReportGenerator
	reports   ReportReader
	renderer  PDFRenderer
	runner    *notify.Runner
	email     Mailer
	attio     CRMClient

	allowedOrigins map[string]struct{}
}

type Config struct {
	Generator      ReportGenerator
	Reports        ReportReader
	Renderer       PDFRenderer
	Runner         *notify.Runner
	Email          Mailer
	Attio          CRMClient
	AllowedOrigins []string
}

func NewServer(cfg Config) http.Handler {
	allowed := map[string]struct{}{}
	for _, raw := range cfg.AllowedOrigins {
		if v := strings.TrimSpace(raw); v != "" {
			allowed[v] = struct{}{}
		}
	}

	s := &Server{
		generator:      cfg.Generator,
		reports:        cfg.Reports,
		renderer:       cfg.Renderer,
		runner:         cfg.Runner,
		email:          cfg.Email,
		attio:          cfg.Attio,
		allowedOrigins: allowed,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/planner/generate", s.withOriginCheck(s.handleGenerate))
	mux.HandleFunc("/api/planner/report/", s.handleReportPDF)
	mux.HandleFunc("/api/planner/qualify", s.withOriginCheck(s.handleQualify))
	mux.HandleFunc("/api/planner/score", s.withOriginCheck(s.handleScore))
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	var pe *planner.Error
	if errors.As(err, &pe) {
		if pe.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(pe.RetryAfter))
		}
		if pe.Code == planner.CodeInternal {
			writeJSON(w, pe.Status, map[string]any{
				"status":     "failed",
				"retryToken": pe.RetryToken,
				"error":      "Report generation failed. You can retry using the button below.",
			})
			return
		}
		writeJSON(w, pe.Status, map[string]any{"error": pe.Message})
		return
	}
	writeJSON(w, 500, map[string]any{"error": "internal error"})
}

func methodOnly(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// withOriginCheck rejects browser requests from unexpected origins. A
// missing Origin header (curl, server-to-server) passes through.
func (s *Server) withOriginCheck(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin != "" && len(s.allowedOrigins) > 0 {
			if _, ok := s.allowedOrigins[origin]; !ok {
				writeJSON(w, http.StatusForbidden, map[string]any{"error": "Forbidden"})
				return
			}
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		next(w, r)
	}
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	var req planner.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, planner.NewValidationError("Invalid qualification data"))
		return
	}
	if err := planner.ValidateQualification(req.Qualification); err != nil {
		writeError(w, planner.NewValidationError("Invalid qualification data"))
		return
	}
	if err := planner.ValidateDiagnostic(req.Diagnostic); err != nil {
		writeError(w, planner.NewValidationError("Invalid diagnostic data"))
		return
	}
	if err := planner.ValidateSizing(req.Sizing); err != nil {
		writeError(w, planner.NewValidationError("Invalid sizing data"))
		return
	}

	outcome, err := s.generator.Generate(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, 200, map[string]any{
		"status":   "success",
		"report":   outcome.Report,
		"reportId": outcome.ReportID,
	})

	// After the response is on the wire: email first, then CRM enrichment.
	s.enqueueNotifications(req, outcome)
}

// enqueueNotifications dispatches the report email and CRM enrichment as a
// single ordered task off the request path. Either can be unconfigured in
// development; an email failure never blocks the enrichment.
func (s *Server) enqueueNotifications(req planner.GenerateRequest, outcome *planner.Outcome) {
	if s.runner == nil {
		return
	}
	q := req.Qualification
	d := req.Diagnostic
	top := outcome.TopArchetypes
	bc := outcome.BusinessCase
	reportID := outcome.ReportID
	s.runner.Go("report notifications", func(ctx context.Context) error {
		if s.email != nil && s.email.Configured() {
			if err := s.email.SendReportReady(ctx, q.Name, q.Email, q.Company, reportID); err != nil {
				log.Printf("report email to %s failed: %v", q.Email, err)
			}
		}
		if s.attio != nil && s.attio.Configured() {
			return s.attio.Enrich(ctx, q, d, top, bc)
		}
		return nil
	})
}

var reUUID = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

var reFilenameUnsafe = regexp.MustCompile(`[^A-Za-z0-9-]+`)

func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/planner/report/")
	id = strings.TrimSuffix(id, "/")
	if !reUUID.MatchString(strings.ToLower(id)) {
		writeError(w, planner.NewValidationError("Invalid report ID"))
		return
	}

	rec, err := s.reports.GetReport(r.Context(), id)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			writeError(w, planner.NewNotFoundError("Report not found or has expired"))
			return
		}
		log.Printf("loading report %s failed: %v", id, err)
		writeJSON(w, 500, map[string]any{"error": "internal error"})
		return
	}

	pdf, err := s.renderer.Render(r.Context(), rec)
	if err != nil {
		log.Printf("rendering report %s failed: %v", id, err)
		writeJSON(w, 500, map[string]any{"error": "PDF generation failed"})
		return
	}

	filename := "AI-Deployment-Plan-" + sanitiseFilename(rec.Company) + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func sanitiseFilename(company string) string {
	cleaned := reFilenameUnsafe.ReplaceAllString(strings.TrimSpace(company), "-")
	cleaned = strings.Trim(cleaned, "-")
	if cleaned == "" {
		cleaned = "Report"
	}
	return cleaned
}

func (s *Server) handleQualify(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	var q planner.Qualification
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, planner.NewValidationError("Invalid qualification data"))
		return
	}
	if err := planner.ValidateQualification(q); err != nil {
		writeError(w, planner.NewValidationError("Invalid qualification data"))
		return
	}

	qualified := q.Turnover != "under-1m"
	if s.runner != nil && s.attio != nil && s.attio.Configured() {
		s.runner.Go("attio lead", func(ctx context.Context) error {
			return s.attio.CreateLead(ctx, q, qualified)
		})
	}

	writeJSON(w, 200, map[string]any{"qualified": qualified})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	var d planner.Diagnostic
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, planner.NewValidationError("Invalid diagnostic data"))
		return
	}
	if err := planner.ValidateDiagnostic(d); err != nil {
		writeError(w, planner.NewValidationError("Invalid diagnostic data"))
		return
	}
	writeJSON(w, 200, planner.Score(d))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
}
