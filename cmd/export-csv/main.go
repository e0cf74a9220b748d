package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ma3u/ai-bookawards/internal/sources"
	"github.com/ma3u/ai-bookawards/pkg/models"
)

// Flattens an enriched awards JSON file into the four tabular views:
// overview, winning books, competition and categories.
func main() {
	var (
		input  = flag.String("input", "data/bookawards_result.json", "enriched awards JSON file")
		outDir = flag.String("dir", "data/export", "output directory for the CSV files")
	)
	flag.Parse()

	awards, err := sources.LoadDetailed(*input)
	if err != nil {
		log.Fatalf("load input: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	if err := exportOverview(awards, filepath.Join(*outDir, "awards.csv")); err != nil {
		log.Fatalf("export overview failed: %v", err)
	}
	if err := exportWinningBooks(awards, filepath.Join(*outDir, "winning_books.csv")); err != nil {
		log.Fatalf("export winning books failed: %v", err)
	}
	if err := exportCompetition(awards, filepath.Join(*outDir, "competition.csv")); err != nil {
		log.Fatalf("export competition failed: %v", err)
	}
	if err := exportCategories(awards, filepath.Join(*outDir, "categories.csv")); err != nil {
		log.Fatalf("export categories failed: %v", err)
	}

	log.Printf("✅ exported %d awards to %s", len(awards), *outDir)
}

func enrichedOf(award models.Award) *models.EnrichedData {
	if len(award.EnrichedData) == 0 {
		return nil
	}
	var enriched models.EnrichedData
	if err := json.Unmarshal(award.EnrichedData, &enriched); err != nil {
		log.Printf("[export] %q: unreadable enriched data: %v", award.AwardName, err)
		return nil
	}
	return &enriched
}

func exportOverview(awards []models.Award, outPath string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"award_name", "organization", "registration_url", "categories",
		"latest_submission_date", "enriched_organization", "enriched_categories", "enriched_registration_url",
	}); err != nil {
		return err
	}

	for _, award := range awards {
		row := []string{
			award.AwardName,
			award.Organization,
			award.RegistrationURL,
			strings.Join(award.Categories, ", "),
			"", "", "", "",
		}
		if enriched := enrichedOf(award); enriched != nil {
			row[4] = enriched.LatestDateOfSubmission
			row[5] = enriched.Organization
			row[6] = strings.Join(enriched.Categories, ", ")
			row[7] = enriched.RegistrationURL
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func exportWinningBooks(awards []models.Award, outPath string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"award_name", "author", "title", "publishing_year", "publisher", "isbn", "link"}); err != nil {
		return err
	}

	for _, award := range awards {
		enriched := enrichedOf(award)
		if enriched == nil {
			continue
		}
		for _, book := range enriched.LastWinningBooks {
			if allNotAvailable(book) {
				continue
			}
			if err := w.Write([]string{
				award.AwardName,
				book.Author,
				book.Title,
				book.PublishingYear.String(),
				book.Publisher,
				book.ISBN.String(),
				book.Link,
			}); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func exportCompetition(awards []models.Award, outPath string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"award_name", "author", "title"}); err != nil {
		return err
	}

	for _, award := range awards {
		enriched := enrichedOf(award)
		if enriched == nil {
			continue
		}
		for _, competitor := range enriched.StrongestCompetition {
			if err := w.Write([]string{award.AwardName, competitor.Author, competitor.Title}); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func exportCategories(awards []models.Award, outPath string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"award_name", "category"}); err != nil {
		return err
	}

	for _, award := range awards {
		for _, category := range award.Categories {
			if err := w.Write([]string{award.AwardName, category}); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

const notAvailable = "not available"

func allNotAvailable(book models.BookWin) bool {
	fields := []string{
		book.Author, book.Title, book.PublishingYear.String(),
		book.Publisher, book.ISBN.String(), book.Link,
	}
	for _, v := range fields {
		if v != "" && strings.ToLower(v) != notAvailable {
			return false
		}
	}
	return true
}
