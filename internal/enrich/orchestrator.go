package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/ma3u/ai-bookawards/pkg/models"
)

// skipNote marks records that were never attempted because the caller
// capped the run, so consumers can tell a skipped record from an
// attempted-and-failed one (which stays absent).
const skipNote = `{"note": "Data not enriched due to processing limit"}`

// Summary reports what one enrichment run did.
type Summary struct {
	RunID     string
	Attempted int
	Enriched  int
	Failed    int
	Skipped   int
}

// Orchestrator drives a sequential enrichment batch: one prompt per
// award, extraction of the embedded JSON reply, and a checkpoint after
// every record so a crash loses at most one record of work.
type Orchestrator struct {
	Service Service
	Store   Store
	Logger  *log.Logger
	Limit   int // attempt at most this many records when > 0
}

func NewOrchestrator(service Service, store Store, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{Service: service, Store: store, Logger: logger}
}

// Run enriches the canonical set in order and returns it with the same
// length and ordering: attempted records first, then any limit-skipped
// tail carrying the skip sentinel.
//
// Per-record service or extraction failures are logged and the batch
// continues. Cancellation is honored between records: the accumulated
// results are flushed to the partial checkpoint and ctx.Err() is
// returned. A checkpoint write failure aborts the run (durability is
// the point of the checkpoint) but the in-memory results computed so
// far are still returned.
func (o *Orchestrator) Run(ctx context.Context, awards []models.Award) ([]models.Award, Summary, error) {
	summary := Summary{RunID: uuid.NewString()}

	subset := len(awards)
	if o.Limit > 0 && o.Limit < subset {
		subset = o.Limit
	}
	o.Logger.Printf("[enrich] run %s: %d awards, attempting %d", summary.RunID, len(awards), subset)

	out := make([]models.Award, 0, len(awards))
	for _, award := range awards[:subset] {
		if err := ctx.Err(); err != nil {
			if saveErr := o.Store.Save(out, DestinationPartial); saveErr != nil {
				o.Logger.Printf("[enrich] flush on cancel failed: %v", saveErr)
			}
			o.Logger.Printf("[enrich] run %s cancelled after %d records", summary.RunID, len(out))
			return out, summary, err
		}

		summary.Attempted++
		// Re-enrichment replaces the payload wholesale; a failed attempt
		// leaves the record unenriched rather than keeping stale data.
		award.EnrichedData = nil

		payload, err := o.enrichOne(ctx, award.AwardName)
		if err != nil {
			summary.Failed++
			o.Logger.Printf("[enrich] %q: %v", award.AwardName, err)
		} else {
			summary.Enriched++
			award.EnrichedData = payload
			o.Logger.Printf("[enrich] %q: enriched", award.AwardName)
		}
		out = append(out, award)

		if err := o.Store.Save(out, DestinationPartial); err != nil {
			return out, summary, fmt.Errorf("checkpoint after %q: %w", award.AwardName, err)
		}
	}

	for _, award := range awards[subset:] {
		award.EnrichedData = json.RawMessage(skipNote)
		out = append(out, award)
		summary.Skipped++
	}

	if err := o.Store.Save(out, DestinationFinal); err != nil {
		return out, summary, fmt.Errorf("save final results: %w", err)
	}
	if err := o.Store.Discard(DestinationPartial); err != nil {
		o.Logger.Printf("[enrich] discard partial checkpoint: %v", err)
	}

	o.Logger.Printf("[enrich] run %s done: %d attempted, %d enriched, %d failed, %d skipped",
		summary.RunID, summary.Attempted, summary.Enriched, summary.Failed, summary.Skipped)
	return out, summary, nil
}

func (o *Orchestrator) enrichOne(ctx context.Context, awardName string) (json.RawMessage, error) {
	reply, err := o.Service.Complete(ctx, BuildPrompt(awardName))
	if err != nil {
		return nil, fmt.Errorf("service call: %w", err)
	}

	payload, err := Extract(reply)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	return payload, nil
}
