// Command render-report renders a stored report to a PDF file. Useful for
// checking layout changes without going through the HTTP surface.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/leomayn/planner/internal/kvstore"
	"github.com/leomayn/planner/internal/report"
)

func main() {
	var (
		dbPath = flag.String("db", "./data/planner.db", "Path to SQLite database file")
		id     = flag.String("id", "", "Report ID to render")
		out    = flag.String("out", "report.pdf", "Output PDF path")
	)
	flag.Parse()

	if *id == "" {
		log.Fatal("--id is required")
	}

	store, err := kvstore.Open(*dbPath)
	if err != nil {
		log.Fatalf("failed to open store (%s): %v", *dbPath, err)
	}
	defer store.Close()

	rec, err := store.GetReport(context.Background(), *id)
	if err != nil {
		log.Fatalf("loading report %s: %v", *id, err)
	}

	pdf, err := report.NewChromiumPDFRenderer().Render(context.Background(), rec)
	if err != nil {
		log.Fatalf("rendering report: %v", err)
	}
	if err := os.WriteFile(*out, pdf, 0o644); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s (%d bytes)", *out, len(pdf))
}
