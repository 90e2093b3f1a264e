package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

const (
	retryFeedbackJSON = "IMPORTANT: Your previous response was not valid JSON. " +
		"Return ONLY valid JSON with no markdown formatting, no code fences, no commentary. " +
		"The response must be directly parseable."
	retryFeedbackSchema = "IMPORTANT: Your previous response had schema validation errors. " +
		"Ensure: workflows array has exactly 3 items, each with all required fields " +
		"(archetypeId, name, whyThisMatters, impactPotential, implementationComplexity, " +
		"threeConditionsCheck, currentState, futureState, considerations, prerequisites, pitfalls). " +
		"impactPotential and implementationComplexity must be \"high\", \"medium\", or \"low\". " +
		"threeConditionsCheck values (impact, complexity, learning) must be \"green\", \"amber\", or \"red\", NOT booleans. " +
		"Include a priorityMapIntro string (2 sentences)."
)

// ReportStore is the persistence surface the orchestrator needs.
type ReportStore interface {
	PutReport(ctx context.Context, id string, rec ReportRecord) error
	PutRetry(ctx context.Context, token string, rec RetryRecord) error
}

// RateLimiter gates generation. A nil return means the submission may
// proceed; a *Error with CodeRateLimited names which cap was hit.
type RateLimiter interface {
	Allow(ctx context.Context, email string) error
}

// ContextScraper fetches best-effort company context. Failures surface as
// an empty string, never an error.
type ContextScraper interface {
	CompanyContext(ctx context.Context, websiteURL string) string
}

type Generator struct {
	caller     LLMCaller
	store      ReportStore
	limiter    RateLimiter
	scraper    ContextScraper
	contentDir string

	now   func() time.Time
	newID func() string
}

func NewGenerator(caller LLMCaller, store ReportStore, limiter RateLimiter, scraper ContextScraper, contentDir string) *Generator {
	return &Generator{
		caller:     caller,
		store:      store,
		limiter:    limiter,
		scraper:    scraper,
		contentDir: contentDir,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Outcome carries everything downstream consumers need after a successful
// generation: the report itself plus the deterministic intermediates used
// by notifications.
type Outcome struct {
	Report         GeneratedReport
	ReportID       string
	TopArchetypes  []RankedArchetype
	BusinessCase   BusinessCase
	CompanyContext string
}

// Generate runs the full pipeline for a validated submission: rate limit,
// context scrape, deterministic scoring and business case, prompt assembly,
// model call with exactly one corrective retry, server field injection,
// schema validation, and persistence. On terminal generation failure the
// submission is parked under a retry token and the returned *Error carries
// it.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) (*Outcome, error) {
	if err := g.limiter.Allow(ctx, req.Qualification.Email); err != nil {
		return nil, err
	}

	companyContext := ""
	if req.Qualification.CompanyWebsite != "" && g.scraper != nil {
		companyContext = g.scraper.CompanyContext(ctx, req.Qualification.CompanyWebsite)
	}

	scoring := Score(req.Diagnostic)
	businessCase := CalculateBusinessCase(req.Sizing, req.Diagnostic)
	firmTypeContent := LoadFirmTypeContent(g.contentDir, req.Diagnostic.FirmType)

	systemPrompt := BuildSystemPrompt(scoring.TopArchetypes, firmTypeContent, companyContext)
	userPrompt := BuildUserPrompt(
		req.Qualification, req.Diagnostic, req.Sizing,
		scoring.TopArchetypes, businessCase, scoring.AllScores, companyContext,
	)

	reportID := g.newID()
	report, err := g.generateWithRetry(ctx, systemPrompt, userPrompt, reportID, businessCase)
	if err != nil {
		log.Printf("generation failed for %s: %v", req.Qualification.Company, err)
		token := g.newID()
		retryErr := g.store.PutRetry(ctx, token, RetryRecord{
			Qualification: req.Qualification,
			Diagnostic:    req.Diagnostic,
			Sizing:        req.Sizing,
			Status:        "pending",
			CreatedAt:     g.now().UTC(),
		})
		if retryErr != nil {
			log.Printf("parking retry submission failed: %v", retryErr)
			token = ""
		}
		genErr := NewInternalError("report generation failed")
		genErr.RetryToken = token
		return nil, genErr
	}

	// Persist before the response goes out so the PDF link in the email is
	// never ahead of the store. Persistence errors are logged, not fatal:
	// the caller still gets the report.
	rec := ReportRecord{
		Report:         *report,
		Email:          req.Qualification.Email,
		Company:        req.Qualification.Company,
		Name:           req.Qualification.Name,
		Qualification:  req.Qualification,
		Diagnostic:     req.Diagnostic,
		CompanyContext: companyContext,
		CreatedAt:      g.now().UTC(),
	}
	if err := g.store.PutReport(ctx, reportID, rec); err != nil {
		log.Printf("persisting report %s failed: %v", reportID, err)
	}

	return &Outcome{
		Report:         *report,
		ReportID:       reportID,
		TopArchetypes:  scoring.TopArchetypes,
		BusinessCase:   businessCase,
		CompanyContext: companyContext,
	}, nil
}

// generateWithRetry makes at most two model calls. When the first produced
// bad output, the second carries corrective feedback naming what went wrong.
func (g *Generator) generateWithRetry(ctx context.Context, systemPrompt, userPrompt, reportID string, bc BusinessCase) (*GeneratedReport, error) {
	prompt := userPrompt
	var lastErr error

	for attempt := 1; attempt <= 2; attempt++ {
		raw, err := g.caller.GenerateJSON(ctx, systemPrompt, prompt)
		if err != nil {
			// Transport failures get the retry too, but with the original
			// prompt; corrective feedback cannot help a request that never
			// reached the model.
			lastErr = fmt.Errorf("generation transport failure: %w", err)
			continue
		}

		clean := stripCodeFences(raw)
		var report GeneratedReport
		if err := json.Unmarshal([]byte(clean), &report); err != nil {
			// A syntax error means the output was not JSON at all. Anything
			// else (type mismatches, bad enum values) means the JSON parsed
			// but broke the contract, which is a schema problem.
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				lastErr = fmt.Errorf("output was not valid JSON: %w", err)
				prompt = userPrompt + "\n\n" + retryFeedbackJSON
			} else {
				lastErr = fmt.Errorf("output failed schema validation: %w", err)
				prompt = userPrompt + "\n\n" + retryFeedbackSchema
			}
			continue
		}

		// Server-owned fields: whatever the model produced for these is
		// discarded.
		report.ID = reportID
		report.BusinessCase = bc
		report.GeneratedAt = g.now().UTC().Format(time.RFC3339)

		if err := ValidateReport(&report); err != nil {
			lastErr = fmt.Errorf("output failed schema validation: %w", err)
			prompt = userPrompt + "\n\n" + retryFeedbackSchema
			continue
		}
		return &report, nil
	}
	return nil, fmt.Errorf("generation failed after retry: %w", lastErr)
}
