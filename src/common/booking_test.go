package common

import (
	"testing"
	"time"

	"cems/src/models"
	"cems/src/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestApprovalsSatisfied(t *testing.T) {
	tests := []struct {
		name    string
		event   models.Event
		booking models.Booking
		want    bool
	}{
		{
			name:    "both flags required and set",
			event:   models.Event{RequiresFacultyApproval: true},
			booking: models.Booking{FacultyApproved: true, OrganizerApproved: true},
			want:    true,
		},
		{
			name:    "faculty flag alone is not enough",
			event:   models.Event{RequiresFacultyApproval: true},
			booking: models.Booking{FacultyApproved: true},
			want:    false,
		},
		{
			name:    "organizer flag alone is not enough when faculty required",
			event:   models.Event{RequiresFacultyApproval: true},
			booking: models.Booking{OrganizerApproved: true},
			want:    false,
		},
		{
			name:    "faculty skipped, organizer flag confirms",
			event:   models.Event{RequiresFacultyApproval: false},
			booking: models.Booking{OrganizerApproved: true},
			want:    true,
		},
		{
			name:    "faculty skipped, nothing set",
			event:   models.Event{RequiresFacultyApproval: false},
			booking: models.Booking{},
			want:    false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApprovalsSatisfied(&tt.event, &tt.booking))
		})
	}
}

func TestFinalizeSkipsConfirmedBooking(t *testing.T) {
	gormDB, _ := newMockDB()

	booking := models.Booking{
		ID:                1,
		Status:            types.BOOKING_CONFIRMED,
		OrganizerApproved: true,
		Event:             &models.Event{},
	}
	confirmed, err := finalizeIfReady(gormDB, &booking)
	assert.Nil(t, err)
	assert.False(t, confirmed)
}

func TestFinalizeWaitsForFacultyApproval(t *testing.T) {
	gormDB, _ := newMockDB()

	booking := models.Booking{
		ID:                1,
		Status:            types.BOOKING_PENDING,
		OrganizerApproved: true,
		Event:             &models.Event{RequiresFacultyApproval: true},
	}
	confirmed, err := finalizeIfReady(gormDB, &booking)
	assert.Nil(t, err)
	assert.False(t, confirmed)
	assert.Equal(t, types.BOOKING_PENDING, booking.Status)
}

func TestFinalizeConfirmsAndGeneratesArtifacts(t *testing.T) {
	t.Setenv("TICKET_DIR", t.TempDir())
	gormDB, mock := newMockDB()

	booking := models.Booking{
		ID:                4,
		TicketToken:       "a2c184cd-7cc3-47d1-a068-9917e1f0b2f5",
		Status:            types.BOOKING_PENDING,
		OrganizerApproved: true,
		User:              &models.User{ID: 1, FullName: "Asha Verma"},
		Event: &models.Event{
			Title:     "Robotics Workshop",
			StartTime: time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC),
			Venue:     &models.Venue{Name: "Seminar Hall 1", Location: "Block B"},
			Organizer: &models.User{ID: 9, FullName: "Rohan Iyer"},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	confirmed, err := finalizeIfReady(gormDB, &booking)
	assert.Nil(t, err)
	assert.True(t, confirmed)
	assert.Equal(t, types.BOOKING_CONFIRMED, booking.Status)
	assert.NotNil(t, booking.QRPath)
	assert.NotNil(t, booking.PDFPath)
}

func TestFinalizeLoadsAttendeeAndOrganizer(t *testing.T) {
	t.Setenv("TICKET_DIR", t.TempDir())
	gormDB, mock := newMockDB()

	booking := models.Booking{
		ID:                6,
		TicketToken:       "0b4be74e-33cf-4a7a-9f34-f21cb3a97d6e",
		UserID:            1,
		Status:            types.BOOKING_PENDING,
		OrganizerApproved: true,
		Event: &models.Event{
			Title:       "Robotics Workshop",
			OrganizerID: 9,
			StartTime:   time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC),
			EndTime:     time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC),
		},
	}

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "full_name", "email"}).
			AddRow(1, "Asha Verma", "asha@campus.edu"))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "full_name", "email"}).
			AddRow(9, "Rohan Iyer", "rohan@campus.edu"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	confirmed, err := finalizeIfReady(gormDB, &booking)
	assert.Nil(t, err)
	assert.True(t, confirmed)
	assert.NotNil(t, booking.User)
	assert.Equal(t, "Asha Verma", booking.User.FullName)
	assert.NotNil(t, booking.Event.Organizer)
	assert.Equal(t, "Rohan Iyer", booking.Event.Organizer.FullName)
}

func TestTicketDocumentInfo(t *testing.T) {
	booking := models.Booking{
		User: &models.User{FullName: "Asha Verma"},
		Event: &models.Event{
			Title:     "Robotics Workshop",
			StartTime: time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC),
			Venue:     &models.Venue{Name: "Seminar Hall 1", Location: "Block B"},
			Organizer: &models.User{FullName: "Rohan Iyer"},
		},
	}
	info := ticketDocumentInfo(&booking)
	assert.Equal(t, "Robotics Workshop", info.EventTitle)
	assert.Equal(t, "Seminar Hall 1", info.VenueName)
	assert.Equal(t, "Rohan Iyer", info.Organizer)
	assert.Equal(t, "Asha Verma", info.Attendee)
	assert.Equal(t, "2026-04-02 10:00 - 2026-04-02 12:00", info.Schedule)
}

func TestCancelConfirmedBookingRejected(t *testing.T) {
	_, mock := newMockDB()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "user_id", "event_id", "status", "ticket_token"}).
			AddRow(2, 1, 3, "confirmed", "tok-1"))
	mock.ExpectRollback()

	err := CancelBooking(2, 1, types.ROLE_STUDENT)
	assert.NotNil(t, err)
	assert.True(t, types.IsKind(err, types.ErrConflict))
}

func TestCreateBookingIdempotentRebooking(t *testing.T) {
	_, mock := newMockDB()

	start := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "title", "venue_id", "organizer_id", "capacity", "start_time", "end_time", "status", "requires_faculty_approval"}).
			AddRow(3, "Tech Talk", 1, 9, 100, start, start.Add(2*time.Hour), "approved", false))
	mock.ExpectQuery(`SELECT \* FROM "venues"`).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "name", "capacity", "status"}).
			AddRow(1, "Main Auditorium", 500, "free"))
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "user_id", "event_id", "status", "ticket_token"}).
			AddRow(5, 1, 3, "pending", "tok-5"))
	mock.ExpectCommit()

	result, err := CreateBooking(1, types.ROLE_STUDENT, 3)
	assert.Nil(t, err)
	assert.True(t, result.AlreadyBooked)
	assert.Equal(t, uint(5), result.BookingID)
	assert.Equal(t, "tok-5", result.TicketToken)
	assert.Equal(t, types.BOOKING_PENDING, result.Status)
}

func TestCreateBookingSoldOut(t *testing.T) {
	_, mock := newMockDB()

	start := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "title", "venue_id", "organizer_id", "capacity", "start_time", "end_time", "status", "requires_faculty_approval"}).
			AddRow(3, "Tech Talk", 1, 9, 1, start, start.Add(2*time.Hour), "approved", false))
	mock.ExpectQuery(`SELECT \* FROM "venues"`).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "name", "capacity", "status"}).
			AddRow(1, "Main Auditorium", 500, "free"))
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "event_id", "status", "ticket_token"}))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := CreateBooking(1, types.ROLE_STUDENT, 3)
	assert.NotNil(t, err)
	assert.True(t, types.IsKind(err, types.ErrConflict))
}

func TestCreateBookingPendingForStudent(t *testing.T) {
	_, mock := newMockDB()

	start := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "title", "venue_id", "organizer_id", "capacity", "start_time", "end_time", "status", "requires_faculty_approval"}).
			AddRow(3, "Tech Talk", 1, 9, 100, start, start.Add(2*time.Hour), "approved", false))
	mock.ExpectQuery(`SELECT \* FROM "venues"`).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "name", "capacity", "status"}).
			AddRow(1, "Main Auditorium", 500, "free"))
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "event_id", "status", "ticket_token"}))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	result, err := CreateBooking(1, types.ROLE_STUDENT, 3)
	assert.Nil(t, err)
	assert.False(t, result.AlreadyBooked)
	assert.Equal(t, uint(11), result.BookingID)
	assert.Equal(t, types.BOOKING_PENDING, result.Status)
	assert.NotEmpty(t, result.TicketToken)
}
