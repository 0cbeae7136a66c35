package bookings

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/MDC-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/MDC-BookingService/internal/service/bookings/models"
)

// Service читающий сервис бронирований: подтверждение по ID
// и административная выдача всех записей
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID (страница подтверждения)
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// List получает все бронирования, сначала самые свежие
// (административная выдача; авторизация - забота HTTP-слоя)
func (s *Service) List(ctx context.Context) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching all bookings")

	bookings, err := s.bookingRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}
