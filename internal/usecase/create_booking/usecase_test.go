package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MDC-BookingService/internal/domain"
	"github.com/m04kA/MDC-BookingService/pkg/ptr"
	"github.com/m04kA/MDC-BookingService/pkg/types"
)

// fakeBookingRepo in-memory хранилище бронирований; счётчики занятости
// выводятся из записей, как и в настоящем репозитории
type fakeBookingRepo struct {
	mu        sync.Mutex
	bookings  []*domain.Booking
	nextID    int64
	createErr error
	countErr  error
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}

	f.nextID++
	stored := *booking
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.bookings = append(f.bookings, &stored)

	return &stored, nil
}

func (f *fakeBookingRepo) CountByKey(_ context.Context, service domain.ServiceType, date string, cabin int64, slot types.TimeString) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.countErr != nil {
		return 0, f.countErr
	}

	count := 0
	for _, b := range f.bookings {
		switch service {
		case domain.ServiceProcedure:
			if b.ProcedureDate.Format(domain.DateFormat) == date &&
				b.ProcedureCabin == cabin && b.ProcedureTime == slot {
				count++
			}
		case domain.ServiceConsultation:
			if b.HasConsultation() &&
				b.ConsultationDate.Format(domain.DateFormat) == date &&
				*b.ConsultationCabin == cabin && *b.ConsultationTime == slot {
				count++
			}
		}
	}

	return count, nil
}

func (f *fakeBookingRepo) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

// fakeTxManager сериализует атомарные секции мьютексом - тот же эффект,
// что у сериализуемых транзакций БД
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
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
	uc := NewUseCase(repo, domain.DefaultScheduleConfig(), &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func validRequest() *Request {
	return &Request{
		Name:           "Alice Smith",
		Email:          "alice@example.com",
		Age:            34,
		Gender:         "female",
		Phone:          "+35799123456",
		ProcedureDate:  time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
		ProcedureTime:  "09:15",
		ProcedureCabin: 2,
	}
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Alice Smith", resp.Name)
	assert.Equal(t, types.TimeString("09:15"), resp.ProcedureTime)
	assert.Equal(t, int64(2), resp.ProcedureCabin)
	assert.Nil(t, resp.ConsultationDate)
	assert.False(t, resp.CreatedAt.IsZero())
	assert.Equal(t, 1, repo.len())
}

func TestExecute_WithConsultation(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo)

	req := validRequest()
	req.ConsultationDate = ptr.Ptr(time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC))
	req.ConsultationTime = ptr.Ptr(types.TimeString("10:30"))
	req.ConsultationCabin = ptr.Ptr(int64(1))

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, resp.ConsultationTime)
	assert.Equal(t, types.TimeString("10:30"), *resp.ConsultationTime)

	consumed, err := repo.CountByKey(context.Background(), domain.ServiceConsultation, "2026-02-03", 1, "10:30")
	require.NoError(t, err)
	assert.Equal(t, 1, consumed)
}

func TestExecute_MissingContactFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty name", func(r *Request) { r.Name = "" }},
		{"empty email", func(r *Request) { r.Email = "" }},
		{"zero age", func(r *Request) { r.Age = 0 }},
		{"negative age", func(r *Request) { r.Age = -5 }},
		{"empty gender", func(r *Request) { r.Gender = "" }},
		{"empty phone", func(r *Request) { r.Phone = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBookingRepo{}
			uc := newTestUseCase(repo)

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, 0, repo.len())
		})
	}
}

func TestExecute_ConsultationFieldsIncomplete(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo)

	req := validRequest()
	req.ConsultationDate = ptr.Ptr(time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC))
	// время и кабинка не указаны

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, repo.len())
}

func TestExecute_PastDate(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo)

	req := validRequest()
	req.ProcedureDate = time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Equal(t, 0, repo.len())
}

func TestExecute_TodayIsAllowed(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo)

	req := validRequest()
	req.ProcedureDate = time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 1, repo.len())
}

func TestExecute_CabinOutOfRange(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo)

	req := validRequest()
	req.ProcedureCabin = 9

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidCabin)
	assert.Equal(t, 0, repo.len())
}

func TestExecute_TimeNotASlot(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo)

	req := validRequest()
	req.ProcedureTime = "09:10"

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	assert.Equal(t, 0, repo.len())
}

func TestExecute_SlotExhausted(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo)

	// Занимаем все 4 единицы слота процедуры
	for i := 0; i < 4; i++ {
		_, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
	}

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 4, repo.len())
}

func TestExecute_OtherKeysUnaffectedByExhaustedSlot(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo)

	for i := 0; i < 4; i++ {
		_, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
	}

	// Другая кабинка того же слота свободна
	otherCabin := validRequest()
	otherCabin.ProcedureCabin = 3
	_, err := uc.Execute(context.Background(), otherCabin)
	require.NoError(t, err)

	// Другой слот той же кабинки свободен
	otherSlot := validRequest()
	otherSlot.ProcedureTime = "09:30"
	_, err = uc.Execute(context.Background(), otherSlot)
	require.NoError(t, err)
}

func TestExecute_ConsultationExhausted_NothingApplied(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo)

	// Занимаем единственную единицу слота консультации
	taken := validRequest()
	taken.ConsultationDate = ptr.Ptr(time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC))
	taken.ConsultationTime = ptr.Ptr(types.TimeString("10:30"))
	taken.ConsultationCabin = ptr.Ptr(int64(1))
	_, err := uc.Execute(context.Background(), taken)
	require.NoError(t, err)

	// Второй запрос на тот же ключ консультации: процедурный слот ещё
	// свободен, но коммит отклоняется целиком
	req := validRequest()
	req.ProcedureCabin = 3
	req.ConsultationDate = ptr.Ptr(time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC))
	req.ConsultationTime = ptr.Ptr(types.TimeString("10:30"))
	req.ConsultationCabin = ptr.Ptr(int64(1))

	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Процедурный ключ второго запроса не занят
	consumed, err := repo.CountByKey(context.Background(), domain.ServiceProcedure, "2026-02-02", 3, "09:15")
	require.NoError(t, err)
	assert.Equal(t, 0, consumed)
	assert.Equal(t, 1, repo.len())
}

func TestExecute_StorageFailure(t *testing.T) {
	repo := &fakeBookingRepo{createErr: errors.New("connection reset")}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrStorage)
}

// Ошибка хранилища сохраняет причину сквозь обе обёртки: менеджер транзакций
// должен видеть код SQLSTATE, чтобы повторять конфликты сериализации
func TestExecute_StorageFailureKeepsCause(t *testing.T) {
	cause := &pq.Error{Code: "40001"}

	repo := &fakeBookingRepo{createErr: fmt.Errorf("%w: Create - execute insert: %w",
		errors.New("booking.repository: failed to execute query"), cause)}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrStorage)
	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)

	repo = &fakeBookingRepo{countErr: fmt.Errorf("%w: CountByKey - scan count: %w",
		errors.New("booking.repository: failed to scan row"), cause)}
	uc = newTestUseCase(repo)

	_, err = uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrStorage)
	require.True(t, errors.As(err, &pqErr))
}

func TestExecute_CountFailure(t *testing.T) {
	repo := &fakeBookingRepo{countErr: errors.New("connection reset")}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrStorage)
	assert.Equal(t, 0, repo.len())
}

// Конкурентные коммиты одного ключа никогда не превышают вместимость:
// из 9 запросов на слот с 4 единицами проходят ровно 4
func TestExecute_ConcurrentCommitsNeverExceedCapacity(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo)

	const attempts = 9

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), validRequest())
			results <- err
		}()
	}

	wg.Wait()
	close(results)

	succeeded, rejected := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSlotNotAvailable):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 4, succeeded)
	assert.Equal(t, 5, rejected)

	consumed, err := repo.CountByKey(context.Background(), domain.ServiceProcedure, "2026-02-02", 2, "09:15")
	require.NoError(t, err)
	assert.Equal(t, 4, consumed)
}
