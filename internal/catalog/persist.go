package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ma3u/ai-bookawards/pkg/models"
)

// SaveToDatabase upserts the given award set into the `awards` table
// (schema in docs/schema.sql) in a single transaction. Categories are
// stored as a JSON array in a text column; enriched_data is stored as
// JSON text and stays NULL for records that were never enriched.
func SaveToDatabase(ctx context.Context, db *sql.DB, awards []models.Award) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO awards (name, registration_url, categories, organization, enriched_data)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
		  registration_url = excluded.registration_url,
		  categories = excluded.categories,
		  organization = excluded.organization,
		  enriched_data = excluded.enriched_data
	`)
	if err != nil {
		return fmt.Errorf("prepare stmt: %w", err)
	}
	defer stmt.Close()

	for _, award := range awards {
		categoriesJSON, err := json.Marshal(award.Categories)
		if err != nil {
			return fmt.Errorf("marshal categories for %s: %w", award.AwardName, err)
		}

		var enriched any
		if len(award.EnrichedData) > 0 {
			enriched = string(award.EnrichedData)
		}

		if _, err := stmt.ExecContext(
			ctx,
			award.AwardName,
			award.RegistrationURL,
			string(categoriesJSON),
			award.Organization,
			enriched,
		); err != nil {
			return fmt.Errorf("exec upsert for %s: %w", award.AwardName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
