package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ma3u/ai-bookawards/internal/sources"
	"github.com/ma3u/ai-bookawards/pkg/utils"
)

func main() {
	var (
		baseID = flag.String("base-id", "", "Airtable base id (required)")
		table  = flag.String("table", "Awards Overview", "Airtable table name")
		out    = flag.String("out", "data/bookawards.json", "output path for the detailed awards JSON")
	)
	flag.Parse()

	cfg, err := utils.LoadAirtableConfig(*baseID, *table)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client := sources.NewAirtableClient(cfg)
	awards, err := client.FetchAwards(ctx)
	if err != nil {
		log.Fatalf("fetch awards: %v", err)
	}
	if len(awards) == 0 {
		log.Fatal("no award records found; check base id, table and field names")
	}

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("create output dir: %v", err)
		}
	}
	b, err := json.MarshalIndent(awards, "", "  ")
	if err != nil {
		log.Fatalf("marshal awards: %v", err)
	}
	if err := os.WriteFile(*out, b, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}

	log.Printf("✅ exported %d awards from table %q to %s", len(awards), *table, *out)
}
