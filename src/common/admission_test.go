package common

import (
	"testing"

	"cems/src/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCreateEventRejectsInvertedWindow(t *testing.T) {
	newMockDB()

	params := types.CreateEventRequestBody{
		Title:     "Annual Fest",
		VenueID:   1,
		StartTime: "2026-04-02 12:00:00 +00:00",
		EndTime:   "2026-04-02 10:00:00 +00:00",
	}
	_, err := CreateEvent(&params, 9)
	assert.NotNil(t, err)
	assert.True(t, types.IsKind(err, types.ErrValidation))
}

func TestCreateEventRejectsBlockedVenue(t *testing.T) {
	_, mock := newMockDB()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "venues"`).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "name", "capacity", "status"}).
			AddRow(1, "Main Auditorium", 500, "blocked"))
	mock.ExpectRollback()

	params := types.CreateEventRequestBody{
		Title:     "Annual Fest",
		VenueID:   1,
		StartTime: "2026-04-02 10:00:00 +00:00",
		EndTime:   "2026-04-02 12:00:00 +00:00",
	}
	_, err := CreateEvent(&params, 9)
	assert.NotNil(t, err)
	assert.True(t, types.IsKind(err, types.ErrConflict))
}

func TestCreateEventRejectsScheduleConflict(t *testing.T) {
	_, mock := newMockDB()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "venues"`).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "name", "capacity", "status"}).
			AddRow(1, "Main Auditorium", 500, "free"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	params := types.CreateEventRequestBody{
		Title:     "Annual Fest",
		VenueID:   1,
		StartTime: "2026-04-02 10:00:00 +00:00",
		EndTime:   "2026-04-02 12:00:00 +00:00",
	}
	_, err := CreateEvent(&params, 9)
	assert.NotNil(t, err)
	assert.True(t, types.IsKind(err, types.ErrConflict))
}

func TestCreateEventMissingVenue(t *testing.T) {
	_, mock := newMockDB()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "venues"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "capacity", "status"}))
	mock.ExpectRollback()

	params := types.CreateEventRequestBody{
		Title:     "Annual Fest",
		VenueID:   42,
		StartTime: "2026-04-02 10:00:00 +00:00",
		EndTime:   "2026-04-02 12:00:00 +00:00",
	}
	_, err := CreateEvent(&params, 9)
	assert.NotNil(t, err)
	assert.True(t, types.IsKind(err, types.ErrValidation))
}
