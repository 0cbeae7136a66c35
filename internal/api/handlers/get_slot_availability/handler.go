package get_slot_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/MDC-BookingService/internal/api/handlers"
	"github.com/m04kA/MDC-BookingService/internal/domain"
	getSlotAvailability "github.com/m04kA/MDC-BookingService/internal/usecase/get_slot_availability"
)

const (
	msgUnknownService = "неизвестный тип услуги"
	msgMissingDate    = "отсутствует обязательный параметр date"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingCabin   = "отсутствует обязательный параметр cabin"
	msgInvalidCabin   = "параметр cabin должен быть целым числом"
	msgInvalidRequest = "некорректные параметры запроса"
	msgNoAvailability = "не удалось получить доступность слотов"
)

type Handler struct {
	useCase GetSlotAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceType}/slots?date=YYYY-MM-DD&cabin=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	service, err := domain.ParseServiceType(vars["serviceType"])
	if err != nil {
		h.logger.Warn("GET /services/{serviceType}/slots - Unknown service type: %s", vars["serviceType"])
		handlers.RespondNotFound(w, msgUnknownService)
		return
	}

	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		h.logger.Warn("GET /services/%s/slots - Missing date parameter", service)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /services/%s/slots - Invalid date: %s", service, rawDate)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	rawCabin := r.URL.Query().Get("cabin")
	if rawCabin == "" {
		h.logger.Warn("GET /services/%s/slots - Missing cabin parameter", service)
		handlers.RespondBadRequest(w, msgMissingCabin)
		return
	}

	// Нечисловой cabin - ошибка клиента; номер вне диапазона - валидный
	// запрос с пустым списком слотов, это различие проводит use case
	cabin, err := strconv.ParseInt(rawCabin, 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/%s/slots - Invalid cabin: %s", service, rawCabin)
		handlers.RespondBadRequest(w, msgInvalidCabin)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSlotAvailability.Request{
		Service: service,
		Date:    date,
		Cabin:   cabin,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSlotAvailability.ErrInvalidInput),
			errors.Is(err, getSlotAvailability.ErrUnknownService):
			h.logger.Warn("GET /services/%s/slots - Invalid request: %v", service, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /services/%s/slots - Failed to get availability: %v", service, err)
			handlers.RespondServiceUnavailable(w, msgNoAvailability)
		}
		return
	}

	h.logger.Info("GET /services/%s/slots - Availability fetched: date=%s cabin=%d slots=%d",
		service, rawDate, cabin, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
