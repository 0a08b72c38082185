package common

import (
	"testing"

	"cems/src/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestEffectiveCapacity(t *testing.T) {
	tests := []struct {
		name    string
		event   models.Event
		want    uint
		limited bool
	}{
		{
			name:    "event cap overrides venue cap",
			event:   models.Event{Capacity: 50, Venue: &models.Venue{Capacity: 200}},
			want:    50,
			limited: true,
		},
		{
			name:    "venue cap when event has none",
			event:   models.Event{Venue: &models.Venue{Capacity: 200}},
			want:    200,
			limited: true,
		},
		{
			name:    "unbounded when both are zero",
			event:   models.Event{Venue: &models.Venue{}},
			limited: false,
		},
		{
			name:    "unbounded when venue missing and no override",
			event:   models.Event{},
			limited: false,
		},
		{
			name:    "event cap holds without a venue",
			event:   models.Event{Capacity: 10},
			want:    10,
			limited: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, limited := EffectiveCapacity(&tt.event)
			assert.Equal(t, tt.limited, limited)
			if tt.limited {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSeatsAvailable(t *testing.T) {
	gormDB, mock := newMockDB()

	event := models.Event{ID: 7, Capacity: 100, Venue: &models.Venue{Capacity: 500}}
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(97))

	left, limited, err := SeatsAvailable(gormDB, &event)
	assert.Nil(t, err)
	assert.True(t, limited)
	assert.Equal(t, int64(3), left)
}

func TestSeatsAvailableNeverNegative(t *testing.T) {
	gormDB, mock := newMockDB()

	event := models.Event{ID: 7, Capacity: 10}
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	left, limited, err := SeatsAvailable(gormDB, &event)
	assert.Nil(t, err)
	assert.True(t, limited)
	assert.Equal(t, int64(0), left)
}

func TestSeatsAvailableUnbounded(t *testing.T) {
	gormDB, _ := newMockDB()

	event := models.Event{ID: 7, Venue: &models.Venue{}}
	_, limited, err := SeatsAvailable(gormDB, &event)
	assert.Nil(t, err)
	assert.False(t, limited)
}
