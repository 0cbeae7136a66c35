package middleware

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/MDC-BookingService/internal/api/handlers"
	"github.com/m04kA/MDC-BookingService/pkg/metrics"
)

// AdminTokenHeader заголовок с токеном административного доступа
const AdminTokenHeader = "X-Admin-Token"

// AdminAuth middleware для административных ручек: сверяет токен из
// заголовка с настроенным. Сессии и управление пользователями - забота
// внешнего слоя, сервису достаточно общего секрета.
func AdminAuth(token string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(AdminTokenHeader)
			if provided == "" {
				handlers.RespondUnauthorized(w, "отсутствует токен администратора")
				return
			}
			if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				handlers.RespondForbidden(w, "неверный токен администратора")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// MetricsMiddleware собирает метрики HTTP запросов: количество и длительность
// по методу, шаблону пути и статусу ответа
func MetricsMiddleware(m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					path = template
				}
			}

			m.ObserveHTTPRequest(r.Method, path, recorder.status, time.Since(start))
		})
	}
}

// statusRecorder запоминает статус ответа для метрик
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
