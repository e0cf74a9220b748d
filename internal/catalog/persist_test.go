package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ma3u/ai-bookawards/pkg/models"
)

func TestSaveToDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	awards := []models.Award{
		{
			AwardName:       "Pulitzer Prize",
			RegistrationURL: "https://www.pulitzer.org",
			Categories:      models.StringList{"Fiction", "Biography"},
			Organization:    "Columbia University",
		},
		{
			AwardName:    "Hugo Award",
			Categories:   models.StringList{},
			EnrichedData: json.RawMessage(`{"organization":"WSFS"}`),
		},
	}

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO awards")
	prep.ExpectExec().
		WithArgs("Pulitzer Prize", "https://www.pulitzer.org", `["Fiction","Biography"]`, "Columbia University", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs("Hugo Award", "", `[]`, "", `{"organization":"WSFS"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = SaveToDatabase(context.Background(), db, awards)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveToDatabaseRollsBackOnExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO awards")
	prep.ExpectExec().WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err = SaveToDatabase(context.Background(), db, []models.Award{{AwardName: "Broken"}})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
