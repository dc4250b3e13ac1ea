package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/autoremind/autoremind/pkg/errors"
)

func newStudentMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestStudentRepositoryListStudents(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db, "students")

	rows := sqlmock.NewRows([]string{"id", "first_name", "opt_in", "notif_freq_days", "PROJ1", "PROJ2"}).
		AddRow("s1", "Ada", true, int64(3), int64(0), int64(2)).
		AddRow("s2", "Grace", false, nil, int64(0), int64(0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "students" ORDER BY id`)).
		WillReturnRows(rows)

	students, err := repo.ListStudents(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 2)

	assert.Equal(t, "s1", students[0].ID)
	assert.Equal(t, "Ada", students[0].FirstName)
	assert.True(t, students[0].OptIn)
	require.NotNil(t, students[0].NotifFreqDays)
	assert.Equal(t, 3, *students[0].NotifFreqDays)
	assert.Equal(t, map[string]int{"PROJ1": 0, "PROJ2": 2}, students[0].Offsets)

	assert.False(t, students[1].OptIn)
	assert.Nil(t, students[1].NotifFreqDays)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryRegisterSettings(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db, "students")

	phone := "555-0101"
	mock.ExpectExec(`INSERT INTO "students"`).
		WithArgs("ada@example.com", sqlmock.AnyArg(), sqlmock.AnyArg(), 3, true, true, false).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.RegisterSettings(context.Background(), NotificationSettings{
		Email:         "ada@example.com",
		PhoneNumber:   &phone,
		NotifFreqDays: 3,
		PhonePref:     true,
		EmailPref:     true,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryRegisterSettingsDuplicate(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db, "students")

	mock.ExpectExec(`INSERT INTO "students"`).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.RegisterSettings(context.Background(), NotificationSettings{Email: "ada@example.com"})
	assert.ErrorIs(t, err, appErrors.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
