package awards

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/ma3u/ai-bookawards/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

type ListQuery struct {
	Q            string // keyword search in name/organization
	Category     string
	Organization string
	Limit        int
	Offset       int
}

// clamp normalizes user-supplied pagination: limit falls back to 20
// when out of the 1..100 range, negative offsets become 0.
func (q ListQuery) clamp() ListQuery {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// GetByName looks an award up case-insensitively. Returns nil, nil when
// no such award exists.
func (r *Repo) GetByName(ctx context.Context, name string) (*models.Award, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT name, registration_url, categories, organization, enriched_data
		FROM awards
		WHERE LOWER(name) = LOWER(?)
	`, strings.TrimSpace(name))

	award, err := scanAward(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan getByName: %w", err)
	}
	return award, nil
}

func (r *Repo) Count(ctx context.Context, q ListQuery) (int, error) {
	sqlStr, args := buildListSQL(q, true)
	row := r.DB.QueryRowContext(ctx, sqlStr, args...)
	var total int
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("count scan: %w", err)
	}
	return total, nil
}

func (r *Repo) List(ctx context.Context, q ListQuery) ([]models.Award, error) {
	q = q.clamp()
	sqlStr, args := buildListSQL(q, false)

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	out := make([]models.Award, 0, q.Limit)
	for rows.Next() {
		award, err := scanAward(rows)
		if err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		out = append(out, *award)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// Categories returns the distinct categories across all awards, sorted.
// Category lists are stored as JSON text, so the union happens here
// rather than in SQL.
func (r *Repo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT categories FROM awards`)
	if err != nil {
		return nil, fmt.Errorf("categories query: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	for rows.Next() {
		var raw sql.NullString
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("categories scan: %w", err)
		}
		if !raw.Valid || raw.String == "" {
			continue
		}
		var categories models.StringList
		if err := json.Unmarshal([]byte(raw.String), &categories); err != nil {
			continue
		}
		for _, c := range categories {
			if c = strings.TrimSpace(c); c != "" {
				seen[c] = struct{}{}
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAward(row rowScanner) (*models.Award, error) {
	var (
		award          models.Award
		registration   sql.NullString
		categoriesJSON sql.NullString
		organization   sql.NullString
		enriched       sql.NullString
	)

	if err := row.Scan(&award.AwardName, &registration, &categoriesJSON, &organization, &enriched); err != nil {
		return nil, err
	}

	award.RegistrationURL = registration.String
	award.Organization = organization.String
	award.Categories = models.StringList{}
	if categoriesJSON.Valid {
		_ = json.Unmarshal([]byte(categoriesJSON.String), &award.Categories)
	}
	if enriched.Valid && enriched.String != "" {
		award.EnrichedData = json.RawMessage(enriched.String)
	}
	return &award, nil
}

// buildListSQL builds either COUNT(*) or the SELECT list. The category
// filter is a LIKE match inside the stored JSON text.
func buildListSQL(q ListQuery, countOnly bool) (string, []any) {
	baseSelect := `
		SELECT name, registration_url, categories, organization, enriched_data
		FROM awards
	`
	if countOnly {
		baseSelect = `SELECT COUNT(*) FROM awards`
	}

	var where []string
	var args []any

	if strings.TrimSpace(q.Q) != "" {
		where = append(where, "(LOWER(name) LIKE ? OR LOWER(organization) LIKE ?)")
		kw := "%" + strings.ToLower(strings.TrimSpace(q.Q)) + "%"
		args = append(args, kw, kw)
	}

	if strings.TrimSpace(q.Organization) != "" {
		where = append(where, "LOWER(organization) = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(q.Organization)))
	}

	if strings.TrimSpace(q.Category) != "" {
		where = append(where, "LOWER(categories) LIKE ?")
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(q.Category))+"%")
	}

	sqlStr := baseSelect
	if len(where) > 0 {
		sqlStr += " WHERE " + strings.Join(where, " AND ")
	}

	if !countOnly {
		sqlStr += " ORDER BY name ASC"
		sqlStr += " LIMIT ? OFFSET ?"
		args = append(args, q.Limit, q.Offset)
	}

	return sqlStr, args
}
