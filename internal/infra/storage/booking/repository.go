package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/MDC-BookingService/internal/domain"
	"github.com/m04kA/MDC-BookingService/pkg/dbmetrics"
	"github.com/m04kA/MDC-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/MDC-BookingService/pkg/types"
)

// bookingColumns полный список колонок таблицы bookings
var bookingColumns = []string{
	"id",
	"name",
	"email",
	"age",
	"gender",
	"phone",
	"procedure_date",
	"procedure_time",
	"procedure_cabin",
	"consultation_date",
	"consultation_time",
	"consultation_cabin",
	"created_at",
}

// Repository репозиторий бронирований. Одновременно является хранилищем
// записей (BookingRecord store) и источником агрегатов занятости: счётчики
// по ключам резервирования всегда вычисляются GROUP BY-запросами по этой
// таблице и нигде не хранятся отдельно.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// serviceColumns возвращает имена колонок (дата, время, кабинка) для услуги
func serviceColumns(service domain.ServiceType) (dateCol, timeCol, cabinCol string, err error) {
	switch service {
	case domain.ServiceProcedure:
		return "procedure_date", "procedure_time", "procedure_cabin", nil
	case domain.ServiceConsultation:
		return "consultation_date", "consultation_time", "consultation_cabin", nil
	default:
		return "", "", "", fmt.Errorf("%w: %q", ErrUnknownService, service)
	}
}

// Create сохраняет новое бронирование и возвращает его с присвоенным ID.
// Если в контексте есть активная транзакция (dbmetrics.WithTx), INSERT
// выполняется внутри неё - так коммит бронирования и проверка занятости
// образуют одну атомарную секцию.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"name",
			"email",
			"age",
			"gender",
			"phone",
			"procedure_date",
			"procedure_time",
			"procedure_cabin",
			"consultation_date",
			"consultation_time",
			"consultation_cabin",
		).
		Values(
			b.Name,
			b.Email,
			b.Age,
			b.Gender,
			b.Phone,
			b.ProcedureDate,
			b.ProcedureTime,
			b.ProcedureCabin,
			b.ConsultationDate,
			b.ConsultationTime,
			b.ConsultationCabin,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	b, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return b, nil
}

// ListAll получает все бронирования, сначала самые свежие.
// Используется административной выдачей и восстановлением леджера.
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("created_at DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAll - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAll - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

// CountByCabin считает занятые единицы по кабинкам услуги на дату.
// Кабинки без бронирований в результате отсутствуют.
func (r *Repository) CountByCabin(ctx context.Context, service domain.ServiceType, date string) (map[int64]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dateCol, _, cabinCol, err := serviceColumns(service)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Select(cabinCol, "COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{dateCol: date}).
		Where(squirrel.NotEq{cabinCol: nil}).
		GroupBy(cabinCol).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountByCabin - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByCabin - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var cabin int64
		var count int
		if err := rows.Scan(&cabin, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByCabin - scan row: %w", ErrScanRow, err)
		}
		counts[cabin] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByCabin - rows error: %w", ErrScanRow, err)
	}

	return counts, nil
}

// CountBySlot считает занятые единицы по временным слотам одной кабинки на дату.
// Слоты без бронирований в результате отсутствуют.
func (r *Repository) CountBySlot(ctx context.Context, service domain.ServiceType, date string, cabin int64) (map[types.TimeString]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dateCol, timeCol, cabinCol, err := serviceColumns(service)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Select(timeCol, "COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{dateCol: date}).
		Where(squirrel.Eq{cabinCol: cabin}).
		GroupBy(timeCol).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountBySlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountBySlot - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[types.TimeString]int)
	for rows.Next() {
		var slot types.TimeString
		var count int
		if err := rows.Scan(&slot, &count); err != nil {
			return nil, fmt.Errorf("%w: CountBySlot - scan row: %w", ErrScanRow, err)
		}
		counts[slot] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountBySlot - rows error: %w", ErrScanRow, err)
	}

	return counts, nil
}

// CountByKey считает занятые единицы одного ключа резервирования
// (дата, услуга, кабинка, слот). Внутри сериализуемой транзакции этот
// запрос образует с последующим INSERT атомарную пару проверка-запись:
// фантомные вставки конкурентов приводят к конфликту сериализации,
// а не к превышению вместимости.
func (r *Repository) CountByKey(ctx context.Context, service domain.ServiceType, date string, cabin int64, slot types.TimeString) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dateCol, timeCol, cabinCol, err := serviceColumns(service)
	if err != nil {
		return 0, err
	}

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{dateCol: date}).
		Where(squirrel.Eq{cabinCol: cabin}).
		Where(squirrel.Eq{timeCol: string(slot)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByKey - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByKey - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// scanBooking сканирует одну строку таблицы bookings
func scanBooking(scan func(dest ...interface{}) error) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt sql.NullTime
	var consultDate sql.NullTime
	var consultTime types.TimeString
	var consultCabin sql.NullInt64

	err := scan(
		&b.ID,
		&b.Name,
		&b.Email,
		&b.Age,
		&b.Gender,
		&b.Phone,
		&b.ProcedureDate,
		&b.ProcedureTime,
		&b.ProcedureCabin,
		&consultDate,
		&consultTime,
		&consultCabin,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time

	if consultDate.Valid && consultCabin.Valid && !consultTime.IsZero() {
		date := consultDate.Time
		cabin := consultCabin.Int64
		b.ConsultationDate = &date
		b.ConsultationTime = &consultTime
		b.ConsultationCabin = &cabin
	}

	return &b, nil
}
