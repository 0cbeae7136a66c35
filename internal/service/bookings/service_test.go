package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MDC-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/MDC-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/MDC-BookingService/pkg/ptr"
	"github.com/m04kA/MDC-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	listErr  error
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return booking, nil
}

func (f *fakeBookingRepo) ListAll(_ context.Context) ([]*domain.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	result := make([]*domain.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		result = append(result, b)
	}
	return result, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:             id,
		Name:           "Alice Smith",
		Email:          "alice@example.com",
		Age:            34,
		Gender:         "female",
		Phone:          "+35799123456",
		ProcedureDate:  time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
		ProcedureTime:  "09:15",
		ProcedureCabin: 2,
		CreatedAt:      time.Date(2026, 1, 15, 11, 0, 0, 0, time.UTC),
	}
}

func TestGetByID_Success(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		7: testBooking(7),
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "Alice Smith", resp.Name)
	assert.Equal(t, "2026-02-02", resp.ProcedureDate)
	assert.Equal(t, "09:15", resp.ProcedureTime)
	assert.Equal(t, int64(2), resp.ProcedureCabin)
	assert.Equal(t, "2026-01-15T11:00:00Z", resp.CreatedAt)

	// Консультация не запрашивалась - поля опущены
	assert.Nil(t, resp.ConsultationDate)
	assert.Nil(t, resp.ConsultationTime)
	assert.Nil(t, resp.ConsultationCabin)
}

func TestGetByID_WithConsultation(t *testing.T) {
	booking := testBooking(7)
	booking.ConsultationDate = ptr.Ptr(time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC))
	booking.ConsultationTime = ptr.Ptr(types.TimeString("10:30"))
	booking.ConsultationCabin = ptr.Ptr(int64(3))

	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{7: booking}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 7)

	require.NoError(t, err)
	require.NotNil(t, resp.ConsultationDate)
	assert.Equal(t, "2026-02-03", *resp.ConsultationDate)
	assert.Equal(t, "10:30", *resp.ConsultationTime)
	assert.Equal(t, int64(3), *resp.ConsultationCabin)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{}}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), 404)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestList_Success(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: testBooking(1),
		2: testBooking(2),
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Bookings, 2)
}

func TestList_Empty(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Total)
	assert.Empty(t, resp.Bookings)
}

func TestList_RepositoryFailure(t *testing.T) {
	repo := &fakeBookingRepo{listErr: errors.New("connection reset")}
	svc := NewService(repo, nopLogger{})

	_, err := svc.List(context.Background())

	assert.ErrorIs(t, err, ErrInternal)
}
