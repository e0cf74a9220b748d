package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/ma3u/ai-bookawards/internal/catalog"
	"github.com/ma3u/ai-bookawards/internal/sources"
)

func main() {
	var (
		detailedIn = flag.String("detailed", "data/bookawards.json", "detailed awards JSON (array of award objects)")
		namesIn    = flag.String("names", "data/bookawards_names.json", "bare award names JSON (array of strings)")
		out        = flag.String("out", "data/bookawards_merged.json", "output path for the canonical set")
	)
	flag.Parse()

	detailed, err := sources.LoadDetailed(*detailedIn)
	if err != nil {
		log.Fatalf("load detailed source: %v", err)
	}
	names, err := sources.LoadNames(*namesIn)
	if err != nil {
		log.Fatalf("load names source: %v", err)
	}

	merged, err := catalog.Merge(detailed, names)
	if err != nil {
		log.Fatalf("merge failed: %v", err)
	}

	if err := writeJSON(*out, merged); err != nil {
		log.Fatalf("write merged set: %v", err)
	}

	log.Printf("[merge] detailed source: %d awards", len(detailed))
	log.Printf("[merge] names source: %d names", len(names))
	log.Printf("✅ merged %d awards into %s", len(merged), *out)
}

func writeJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
