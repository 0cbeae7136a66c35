package get_cabin_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/MDC-BookingService/internal/api/handlers"
	"github.com/m04kA/MDC-BookingService/internal/domain"
	getCabinAvailability "github.com/m04kA/MDC-BookingService/internal/usecase/get_cabin_availability"
)

const (
	msgUnknownService = "неизвестный тип услуги"
	msgMissingDate    = "отсутствует обязательный параметр date"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequest = "некорректные параметры запроса"
	msgNoAvailability = "не удалось получить занятость кабинок"
)

type Handler struct {
	useCase GetCabinAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetCabinAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceType}/cabins?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	service, err := domain.ParseServiceType(vars["serviceType"])
	if err != nil {
		h.logger.Warn("GET /services/{serviceType}/cabins - Unknown service type: %s", vars["serviceType"])
		handlers.RespondNotFound(w, msgUnknownService)
		return
	}

	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		h.logger.Warn("GET /services/%s/cabins - Missing date parameter", service)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Нераспарсиваемая дата - ошибка клиента; дата в прошлом - валидный
	// запрос с пустым ответом, это различие проводит use case
	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /services/%s/cabins - Invalid date: %s", service, rawDate)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getCabinAvailability.Request{
		Service: service,
		Date:    date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getCabinAvailability.ErrInvalidInput),
			errors.Is(err, getCabinAvailability.ErrUnknownService):
			h.logger.Warn("GET /services/%s/cabins - Invalid request: %v", service, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /services/%s/cabins - Failed to get availability: %v", service, err)
			handlers.RespondServiceUnavailable(w, msgNoAvailability)
		}
		return
	}

	h.logger.Info("GET /services/%s/cabins - Availability fetched: date=%s cabins=%d",
		service, rawDate, len(result.Cabins))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
