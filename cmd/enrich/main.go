package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/ma3u/ai-bookawards/internal/enrich"
	"github.com/ma3u/ai-bookawards/internal/sources"
	"github.com/ma3u/ai-bookawards/pkg/utils"
)

func main() {
	var (
		input  = flag.String("input", "data/bookawards_merged.json", "canonical awards JSON to enrich")
		output = flag.String("output", "data/bookawards_result.json", "output path for enriched results")
		limit  = flag.Int("limit", 0, "enrich at most N awards (0 = all); skipped awards get a sentinel note")
	)
	flag.Parse()

	cfg, err := utils.LoadEnrichmentConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	awards, err := sources.LoadDetailed(*input)
	if err != nil {
		log.Fatalf("load input: %v", err)
	}

	service, err := enrich.NewHTTPService(cfg)
	if err != nil {
		log.Fatalf("service: %v", err)
	}

	orch := enrich.NewOrchestrator(service, enrich.NewFileStore(*output), log.Default())
	orch.Limit = *limit

	// Ctrl-C flushes the checkpoint and stops between records.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, summary, err := orch.Run(ctx, awards)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Fatalf("run %s interrupted: partial results checkpointed (%d attempted, %d enriched)",
				summary.RunID, summary.Attempted, summary.Enriched)
		}
		log.Fatalf("enrichment failed: %v", err)
	}

	log.Printf("✅ run %s: %d attempted, %d enriched, %d failed, %d skipped, results in %s",
		summary.RunID, summary.Attempted, summary.Enriched, summary.Failed, summary.Skipped, *output)
}
