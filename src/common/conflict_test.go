package common

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	tests := []struct {
		name string
		s1   time.Time
		e1   time.Time
		s2   time.Time
		e2   time.Time
		want bool
	}{
		{"partial overlap", at(0), at(2), at(1), at(3), true},
		{"contained window", at(0), at(4), at(1), at(2), true},
		{"identical window", at(0), at(2), at(0), at(2), true},
		{"disjoint windows", at(0), at(1), at(2), at(3), false},
		{"back to back shares only the boundary", at(0), at(2), at(2), at(4), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			// symmetry
			assert.Equal(t, tt.want, Overlaps(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}

func TestHasConflict(t *testing.T) {
	gormDB, mock := newMockDB()
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	conflict, err := HasConflict(gormDB, 3, start, end, 0)
	assert.Nil(t, err)
	assert.True(t, conflict)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	conflict, err = HasConflict(gormDB, 3, start, end, 9)
	assert.Nil(t, err)
	assert.False(t, conflict)
}
