package create_booking

import (
	"context"
	"fmt"

	"github.com/m04kA/MDC-BookingService/internal/domain"
	"github.com/m04kA/MDC-BookingService/pkg/types"
)

// UseCase use case создания бронирования.
// Проверка остатка вместимости и запись бронирования выполняются в одной
// сериализуемой транзакции: два конкурентных коммита не могут оба увидеть
// свободную единицу и оба записаться сверх вместимости слота.
type UseCase struct {
	bookingRepo  BookingRepository
	schedule     domain.ScheduleConfig
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	schedule domain.ScheduleConfig,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		schedule:     schedule,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: name=%s, procedure=%s %s cabin=%d, consultation=%v",
		req.Name, req.ProcedureDate.Format(domain.DateFormat), req.ProcedureTime,
		req.ProcedureCabin, req.HasConsultation())

	// 1. Валидация контактных данных и состава запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация резервирования процедуры против расписания
	if err := validateReservation(
		uc.schedule.Procedure,
		req.ProcedureDate,
		req.ProcedureTime,
		req.ProcedureCabin,
		now,
	); err != nil {
		uc.logger.Warn("CreateBooking: procedure reservation validation failed: %v", err)
		return nil, err
	}

	// 4. Валидация резервирования консультации (если запрошена).
	// Любая ошибка здесь отменяет весь коммит: процедура не резервируется
	// частично, бронирование либо записывается целиком, либо никак.
	if req.HasConsultation() {
		if err := validateReservation(
			uc.schedule.Consultation,
			*req.ConsultationDate,
			*req.ConsultationTime,
			*req.ConsultationCabin,
			now,
		); err != nil {
			uc.logger.Warn("CreateBooking: consultation reservation validation failed: %v", err)
			return nil, err
		}
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 5. Атомарная секция: перепроверка остатков и запись бронирования.
	// Перепроверка закрывает гонку между чтением доступности клиентом
	// и отправкой формы: к моменту коммита слот мог быть исчерпан.
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Остаток вместимости слота процедуры
		if err := uc.checkCapacity(
			txCtx,
			domain.ServiceProcedure,
			uc.schedule.Procedure,
			req.ProcedureDate.Format(domain.DateFormat),
			req.ProcedureCabin,
			req.ProcedureTime,
		); err != nil {
			return err
		}

		// 5.2. Остаток вместимости слота консультации
		if req.HasConsultation() {
			if err := uc.checkCapacity(
				txCtx,
				domain.ServiceConsultation,
				uc.schedule.Consultation,
				req.ConsultationDate.Format(domain.DateFormat),
				*req.ConsultationCabin,
				*req.ConsultationTime,
			); err != nil {
				return err
			}
		}

		// 5.3. Записываем бронирование. INSERT и есть инкремент леджера:
		// счётчики занятости - агрегаты по записям, отдельного состояния нет.
		booking := &domain.Booking{
			Name:              req.Name,
			Email:             req.Email,
			Age:               req.Age,
			Gender:            req.Gender,
			Phone:             req.Phone,
			ProcedureDate:     req.ProcedureDate,
			ProcedureTime:     req.ProcedureTime,
			ProcedureCabin:    req.ProcedureCabin,
			ConsultationDate:  req.ConsultationDate,
			ConsultationTime:  req.ConsultationTime,
			ConsultationCabin: req.ConsultationCabin,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			// Причина оборачивается через %w: менеджер транзакций распознает
			// конфликт сериализации (SQLSTATE 40001) сквозь обёртку и повторяет
			// транзакцию вместо возврата ошибки клиенту
			return fmt.Errorf("%w: failed to create booking: %w", ErrStorage, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// Конвертируем в response
	return &Response{
		ID:                result.ID,
		Name:              result.Name,
		Email:             result.Email,
		Age:               result.Age,
		Gender:            result.Gender,
		Phone:             result.Phone,
		ProcedureDate:     result.ProcedureDate,
		ProcedureTime:     result.ProcedureTime,
		ProcedureCabin:    result.ProcedureCabin,
		ConsultationDate:  result.ConsultationDate,
		ConsultationTime:  result.ConsultationTime,
		ConsultationCabin: result.ConsultationCabin,
		CreatedAt:         result.CreatedAt,
	}, nil
}

// checkCapacity перечитывает занятость ключа под текущей транзакцией
// и возвращает ErrSlotNotAvailable, если свободных единиц не осталось
func (uc *UseCase) checkCapacity(
	ctx context.Context,
	service domain.ServiceType,
	schedule domain.ServiceSchedule,
	date string,
	cabin int64,
	slot types.TimeString,
) error {
	consumed, err := uc.bookingRepo.CountByKey(ctx, service, date, cabin, slot)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to count consumed units for %s: %v", service, err)
		return fmt.Errorf("%w: failed to count consumed units: %w", ErrStorage, err)
	}

	if consumed >= schedule.CapacityPerSlot {
		uc.logger.Warn("CreateBooking: slot not available, %s %s cabin=%d slot=%s, %d/%d units taken",
			service, date, cabin, slot, consumed, schedule.CapacityPerSlot)
		return ErrSlotNotAvailable
	}

	uc.logger.Info("CreateBooking: slot available, %s %s cabin=%d slot=%s, %d/%d units taken",
		service, date, cabin, slot, consumed, schedule.CapacityPerSlot)

	return nil
}
