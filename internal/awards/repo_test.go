package awards

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ma3u/ai-bookawards/pkg/models"
)

func awardColumns() []string {
	return []string{"name", "registration_url", "categories", "organization", "enriched_data"}
}

func TestGetByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(awardColumns()).
		AddRow("Booker Prize", "https://thebookerprizes.com", `["Fiction"]`, "Booker Prize Foundation", `{"organization":"Booker Prize Foundation"}`)
	mock.ExpectQuery("SELECT name, registration_url, categories, organization, enriched_data").
		WithArgs("booker prize").
		WillReturnRows(rows)

	repo := NewRepo(db)
	award, err := repo.GetByName(context.Background(), "  booker prize ")
	require.NoError(t, err)
	require.NotNil(t, award)

	assert.Equal(t, "Booker Prize", award.AwardName)
	assert.Equal(t, models.StringList{"Fiction"}, award.Categories)
	assert.JSONEq(t, `{"organization":"Booker Prize Foundation"}`, string(award.EnrichedData))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByNameNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT name, registration_url, categories, organization, enriched_data").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(awardColumns()))

	repo := NewRepo(db)
	award, err := repo.GetByName(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, award)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAppliesFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(awardColumns()).
		AddRow("Hugo Award", "", `["Science Fiction"]`, "World Science Fiction Society", nil)
	mock.ExpectQuery("SELECT name, registration_url, categories, organization, enriched_data").
		WithArgs("%hugo%", "%hugo%", "%science fiction%", 20, 0).
		WillReturnRows(rows)

	repo := NewRepo(db)
	out, err := repo.List(context.Background(), ListQuery{Q: "Hugo", Category: "Science Fiction"})
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, "Hugo Award", out[0].AwardName)
	assert.Nil(t, out[0].EnrichedData, "null column stays absent")
	assert.Equal(t, models.StringList{"Science Fiction"}, out[0].Categories)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListClampsPagination(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT name, registration_url, categories, organization, enriched_data").
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(awardColumns()))

	repo := NewRepo(db)
	_, err = repo.List(context.Background(), ListQuery{Limit: 5000, Offset: -3})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListNegativeLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT name, registration_url, categories, organization, enriched_data").
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(awardColumns()))

	repo := NewRepo(db)
	out, err := repo.List(context.Background(), ListQuery{Limit: -5})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM awards`).
		WithArgs("booker prize foundation").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	repo := NewRepo(db)
	total, err := repo.Count(context.Background(), ListQuery{Organization: "Booker Prize Foundation"})
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoriesUnion(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"categories"}).
		AddRow(`["Fiction", "Poetry"]`).
		AddRow(`["Fiction", " Biography "]`).
		AddRow(nil).
		AddRow(`not json`)
	mock.ExpectQuery("SELECT categories FROM awards").WillReturnRows(rows)

	repo := NewRepo(db)
	categories, err := repo.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Biography", "Fiction", "Poetry"}, categories)
	assert.NoError(t, mock.ExpectationsWereMet())
}
