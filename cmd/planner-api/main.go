package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/leomayn/planner/internal/httpapi"
	"github.com/leomayn/planner/internal/kvstore"
	"github.com/leomayn/planner/internal/notify"
	"github.com/leomayn/planner/internal/planner"
	"github.com/leomayn/planner/internal/ratelimit"
	"github.com/leomayn/planner/internal/report"
	"github.com/leomayn/planner/internal/scrape"
)

func main() {
	_ = godotenv.Load()

	var (
		addr       = flag.String("addr", ":8080", "Listen address")
		dbPath     = flag.String("db", "./data/planner.db", "Path to SQLite database file")
		contentDir = flag.String("content-dir", "./content", "Directory holding firm-type context files")
		origins    = flag.String("allowed-origins", "https://leomayn.com,https://www.leomayn.com", "Comma-separated browser origins allowed to call the API")
		baseURL    = flag.String("base-url", "https://leomayn.com", "Public origin used in report links")
		dailyCap   = flag.Int("daily-cap", ratelimit.DefaultDailyLimit, "Global reports per day")
		emailCap   = flag.Int("email-cap", ratelimit.DefaultPerEmailLimit, "Reports per email address per day")
	)
	flag.Parse()

	if strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")) == "" {
		log.Fatal("missing required env var ANTHROPIC_API_KEY")
	}

	store, err := kvstore.Open(*dbPath)
	if err != nil {
		log.Fatalf("failed to open store (%s): %v", *dbPath, err)
	}
	defer store.Close()

	caller, err := planner.NewAnthropicCallerFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	limiter := ratelimit.New(store, *dailyCap, *emailCap)
	generator := planner.NewGenerator(caller, store, limiter, scrape.New(), *contentDir)
	runner := notify.NewRunner()

	// Email and CRM are optional; without keys the pipeline still works,
	// it just skips delivery and enrichment.
	email := notify.NewEmailSender(os.Getenv("RESEND_API_KEY"), *baseURL)
	attio := notify.NewAttioClient(os.Getenv("ATTIO_API_KEY"), os.Getenv("ATTIO_WEBSITE_LEADS_LIST_ID"))
	if !email.Configured() {
		log.Printf("RESEND_API_KEY not set; report emails disabled")
	}
	if !attio.Configured() {
		log.Printf("ATTIO_API_KEY or ATTIO_WEBSITE_LEADS_LIST_ID not set; CRM sync disabled")
	}

	handler := httpapi.NewServer(httpapi.Config{
		Generator:      generator,
		Reports:        store,
		Renderer:       report.NewChromiumPDFRenderer(),
		Runner:         runner,
		Email:          email,
		Attio:          attio,
		AllowedOrigins: strings.Split(*origins, ","),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	srv := &http.Server{Addr: *addr, Handler: handler}
	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("planner-api listening on %s (db=%s)", *addr, *dbPath)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}

	// Let in-flight email and CRM tasks finish before exit.
	runner.Wait()
}
