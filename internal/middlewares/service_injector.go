package middlewares

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ventafacil/ledger/internal/models"
)

type key int

// Ключи сервисов, доступных обработчикам через контекст запроса.
const (
	RateServiceKey key = iota
	InstallmentServiceKey
	OrderServiceKey
	DebtServiceKey
	ReportServiceKey
)

// ServiceInjectorMiddleware кладет сервисы приложения в контекст каждого
// запроса, чтобы обработчики не зависели от способа сборки приложения.
func ServiceInjectorMiddleware(
	rateService models.RateService,
	installmentService models.InstallmentService,
	orderService models.OrderService,
	debtService models.DebtService,
	reportService models.ReportService,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), RateServiceKey, rateService)
			ctx = context.WithValue(ctx, InstallmentServiceKey, installmentService)
			ctx = context.WithValue(ctx, OrderServiceKey, orderService)
			ctx = context.WithValue(ctx, DebtServiceKey, debtService)
			ctx = context.WithValue(ctx, ReportServiceKey, reportService)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetServiceFromContext извлекает сервис из контекста запроса по его ключу.
func GetServiceFromContext[Service interface{}](w http.ResponseWriter, r *http.Request, serviceKey key) *Service {
	foundService, ok := r.Context().Value(serviceKey).(Service)

	if !ok {
		http.Error(w, fmt.Sprintf("Сервис не найден в контексте по ключу %v", serviceKey), http.StatusInternalServerError)
		return nil
	}

	return &foundService
}
