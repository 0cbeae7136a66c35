package get_cabin_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MDC-BookingService/internal/domain"
)

type fakeBookingRepo struct {
	cabinCounts map[int64]int
	err         error
}

func (f *fakeBookingRepo) CountByCabin(_ context.Context, _ domain.ServiceType, _ string) (map[int64]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cabinCounts, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 1, 15, 11, 0, 0, 0, time.UTC)

func newTestUseCase(repo *fakeBookingRepo) *UseCase {
	uc := NewUseCase(repo, domain.DefaultScheduleConfig(), nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func validRequest() *Request {
	return &Request{
		Service: domain.ServiceProcedure,
		Date:    time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestExecute_AllCabinsFree(t *testing.T) {
	repo := &fakeBookingRepo{cabinCounts: map[int64]int{}}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	require.Len(t, resp.Cabins, 4)

	// 16 слотов * 4 единицы = 64 единицы на кабинку в день
	for i, cabin := range resp.Cabins {
		assert.Equal(t, int64(i+1), cabin.Cabin)
		assert.Equal(t, 64, cabin.AvailableUnits)
		assert.Equal(t, 64, cabin.TotalUnits)
	}
}

func TestExecute_ConsumedUnitsSubtracted(t *testing.T) {
	repo := &fakeBookingRepo{cabinCounts: map[int64]int{2: 5}}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, 64, resp.Cabins[0].AvailableUnits)
	assert.Equal(t, 59, resp.Cabins[1].AvailableUnits)
}

func TestExecute_OverconsumedFlooredAtZero(t *testing.T) {
	repo := &fakeBookingRepo{cabinCounts: map[int64]int{1: 100}}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Cabins[0].AvailableUnits)
}

func TestExecute_ConsultationTotals(t *testing.T) {
	repo := &fakeBookingRepo{cabinCounts: map[int64]int{}}
	uc := newTestUseCase(repo)

	req := validRequest()
	req.Service = domain.ServiceConsultation

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, resp.Cabins, 4)

	// 16 слотов * 1 единица = 16 единиц на кабинку в день
	for _, cabin := range resp.Cabins {
		assert.Equal(t, 16, cabin.TotalUnits)
	}
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	repo := &fakeBookingRepo{cabinCounts: map[int64]int{}}
	uc := newTestUseCase(repo)

	req := validRequest()
	req.Date = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Empty(t, resp.Cabins)
}

func TestExecute_UnknownService(t *testing.T) {
	repo := &fakeBookingRepo{cabinCounts: map[int64]int{}}
	uc := newTestUseCase(repo)

	req := validRequest()
	req.Service = "xray"

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrUnknownService)
}

func TestExecute_RepositoryFailure(t *testing.T) {
	repo := &fakeBookingRepo{err: errors.New("connection reset")}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
}
