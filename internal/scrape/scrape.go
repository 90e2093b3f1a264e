// Package scrape fetches lightweight company context from a prospect's
// website for report personalisation. Everything here is best-effort: any
// failure yields empty context, never an error that blocks generation.
package scrape

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	fetchTimeout  = 5 * time.Second
	userAgent     = "Leomayn-Report-Bot/1.0"
	maxBodyBytes  = 1 << 20
	maxParagraphs = 6
	maxLeadChars  = 600
)

var (
	reTitle     = regexp.MustCompile(`(?i)<title[^>]*>([^<]+)</title>`)
	reMetaDesc1 = regexp.MustCompile(`(?i)<meta[^>]*name=["']description["'][^>]*content=["']([^"']+)["']`)
	reMetaDesc2 = regexp.MustCompile(`(?i)<meta[^>]*content=["']([^"']+)["'][^>]*name=["']description["']`)
	reParagraph = regexp.MustCompile(`(?is)<p[^>]*>(.*?)</p>`)
	reTag       = regexp.MustCompile(`<[^>]+>`)
	reChrome    = regexp.MustCompile(`(?is)<(script|style|nav|header|footer)[^>]*>.*?</(script|style|nav|header|footer)>`)
)

type Scraper struct {
	client *http.Client
}

func New() *Scraper {
	return &Scraper{client: &http.Client{Timeout: fetchTimeout}}
}

// CompanyContext fetches the homepage and /about page concurrently and
// distils them into a labelled context string. Returns "" when nothing
// useful could be extracted.
func (s *Scraper) CompanyContext(ctx context.Context, websiteURL string) string {
	base := normaliseURL(websiteURL)

	var homeHTML, aboutHTML string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		homeHTML = s.fetchPage(gctx, base)
		return nil
	})
	g.Go(func() error {
		if aboutURL := resolveAbout(base); aboutURL != "" {
			aboutHTML = s.fetchPage(gctx, aboutURL)
		}
		return nil
	})
	_ = g.Wait()

	if homeHTML == "" {
		return ""
	}

	var parts []string
	if title := extractTitle(homeHTML); title != "" {
		parts = append(parts, "Company: "+title)
	}
	if desc := extractMetaDescription(homeHTML); desc != "" {
		parts = append(parts, "Description: "+desc)
	}
	if lead := extractLeadingText(homeHTML); lead != "" {
		parts = append(parts, "Homepage: "+lead)
	}
	if about := extractLeadingText(aboutHTML); about != "" {
		parts = append(parts, "About: "+about)
	}
	return strings.Join(parts, ". ")
}

func (s *Scraper) fetchPage(ctx context.Context, pageURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return ""
	}
	return string(body)
}

func normaliseURL(raw string) string {
	normalised := strings.TrimSpace(raw)
	if !strings.HasPrefix(strings.ToLower(normalised), "http://") &&
		!strings.HasPrefix(strings.ToLower(normalised), "https://") {
		normalised = "https://" + normalised
	}
	return normalised
}

func resolveAbout(base string) string {
	u, err := url.Parse(base)
	if err != nil {
		return ""
	}
	about, err := u.Parse("/about")
	if err != nil {
		return ""
	}
	return about.String()
}

func extractTitle(html string) string {
	m := reTitle.FindStringSubmatch(html)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func extractMetaDescription(html string) string {
	if m := reMetaDesc1.FindStringSubmatch(html); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := reMetaDesc2.FindStringSubmatch(html); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// extractLeadingText pulls up to six substantial paragraph texts after
// stripping page chrome, capped at 600 chars.
func extractLeadingText(html string) string {
	if html == "" {
		return ""
	}
	cleaned := reChrome.ReplaceAllString(html, "")

	var paragraphs []string
	for _, m := range reParagraph.FindAllStringSubmatch(cleaned, -1) {
		if len(paragraphs) >= maxParagraphs {
			break
		}
		text := strings.TrimSpace(reTag.ReplaceAllString(m[1], ""))
		if len(text) > 20 {
			paragraphs = append(paragraphs, text)
		}
	}

	joined := strings.Join(paragraphs, " ")
	if len(joined) > maxLeadChars {
		joined = joined[:maxLeadChars]
	}
	return joined
}
