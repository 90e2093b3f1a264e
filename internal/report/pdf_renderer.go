package report

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/leomayn/planner/internal/planner"
)

// ChromiumPDFRenderer converts a report record to PDF through headless
// Chromium's print pipeline.
type ChromiumPDFRenderer struct {
	chromePath string
}

func NewChromiumPDFRenderer() *ChromiumPDFRenderer {
	return &ChromiumPDFRenderer{chromePath: detectChromePath()}
}

func (r *ChromiumPDFRenderer) Render(ctx context.Context, rec planner.ReportRecord) ([]byte, error) {
	htmlDoc, err := buildHTML(rec)
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	}
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, append(chromedp.DefaultExecAllocatorOptions[:], opts...)...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	var pdf []byte
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(htmlDoc))
	if err := chromedp.Run(taskCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			footer := `<div style="width:100%;text-align:center;font-size:9px;color:#9da7b0;padding-right:8px;">` +
				`Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`
			out, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate(`<div></div>`).
				WithFooterTemplate(footer).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.5).
				WithMarginBottom(0.75).
				WithMarginLeft(0.45).
				WithMarginRight(0.45).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = out
			return nil
		}),
	); err != nil {
		return nil, err
	}
	return pdf, nil
}

const reportCSS = `
:root { --navy: #1a3d56; --blush: #f7c9c0; --grey: #9da7b0; --font-body: Manrope, 'Helvetica Neue', Arial, sans-serif; }
html,body,*{-webkit-print-color-adjust:exact !important;print-color-adjust:exact !important;}
body{background:#fff;font-family:var(--font-body);color:#1c2b36;line-height:1.55;font-size:0.92rem;margin:0;padding:0.6rem;}
.pdf-wrap{max-width:1000px;margin:0 auto;}
.report-brand{letter-spacing:0.12em;font-weight:700;color:var(--navy);border-bottom:3px solid var(--blush);padding-bottom:0.6rem;margin-bottom:1.2rem;}
h1{color:var(--navy);font-size:1.6rem;margin:0.4rem 0 0.8rem;}
h2{color:var(--navy);font-size:1.15rem;margin-top:1.6rem;border-bottom:1px solid #e5e5e5;padding-bottom:0.25rem;}
a{color:var(--navy);}
table{width:100%;border-collapse:collapse;border:1px solid #cdd5db;font-size:0.8rem;margin:0.6rem 0;}
th,td{border:1px solid #cdd5db;padding:0.35rem 0.45rem;text-align:left;vertical-align:top;}
thead th{background:#f1f5f9;font-weight:700;}
h2[data-page-break-before="true"]{break-before:page;page-break-before:always;}
@media print{ @page{size:auto;margin:12mm;} body{padding:0;} .pdf-wrap{max-width:none;} }
`

func buildHTML(rec planner.ReportRecord) (string, error) {
	markdown := BuildMarkdown(rec)

	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(markdown), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	contentHTML := applyPrintLayoutHooks(content.String())

	return "<!doctype html><html><head><meta charset='utf-8'><title>" +
		html.EscapeString("AI Deployment Plan: "+rec.Company) + "</title>" +
		"<style>" + reportCSS + "</style></head><body>" +
		"<div class='pdf-wrap'><div class='report-brand'>LEOMAYN</div>" +
		"<div class='report-html'>" + contentHTML + "</div></div>" +
		"</body></html>", nil
}

// applyPrintLayoutHooks starts each recommendation on a fresh page.
func applyPrintLayoutHooks(contentHTML string) string {
	reRecommendation := regexp.MustCompile(`(?i)<h2([^>]*)>\s*(Recommendation\s+[0-9]+:[^<]*)\s*</h2>`)
	return reRecommendation.ReplaceAllString(contentHTML, `<h2$1 data-page-break-before="true">$2</h2>`)
}

func detectChromePath() string {
	candidates := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
