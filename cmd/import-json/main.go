package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/ma3u/ai-bookawards/internal/catalog"
	"github.com/ma3u/ai-bookawards/internal/sources"
	"github.com/ma3u/ai-bookawards/pkg/database"
)

func main() {
	input := flag.String("input", "data/bookawards_result.json", "awards JSON file to load into the database")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	awards, err := sources.LoadDetailed(*input)
	if err != nil {
		log.Fatalf("load input: %v", err)
	}

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := catalog.SaveToDatabase(ctx, db, awards); err != nil {
		log.Fatalf("save failed: %v", err)
	}

	log.Printf("✅ imported %d awards from %s", len(awards), *input)
}
