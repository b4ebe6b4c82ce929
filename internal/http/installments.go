package router

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ventafacil/ledger/internal/database"
	"github.com/ventafacil/ledger/internal/middlewares"
	"github.com/ventafacil/ledger/internal/models"
	"github.com/ventafacil/ledger/internal/services"
)

// CreateInstallment записывает новый абонос по заказу.
func CreateInstallment(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseIDParam(w, r, "orderID")
	if !ok {
		return
	}

	data := middlewares.GetParsedJSONData[models.NewInstallment](w, r)
	installmentService := middlewares.GetServiceFromContext[models.InstallmentService](w, r, middlewares.InstallmentServiceKey)

	installment, err := (*installmentService).Create(r.Context(), orderID, data)
	if err != nil {
		if errors.Is(err, database.ErrOrderNotFound) {
			http.Error(w, "Order is not found", http.StatusNotFound)
			return
		}

		if errors.Is(err, services.ErrEmptyInstallment) ||
			errors.Is(err, services.ErrNegativeInstallment) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		if errors.Is(err, services.ErrNoRateAvailable) {
			http.Error(w, "No exchange rate available for the VES amount", http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, fmt.Sprintf("Error occurred during creating installment: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusCreated, installment)
}

// VoidInstallment мягко аннулирует абонос.
func VoidInstallment(w http.ResponseWriter, r *http.Request) {
	installmentID, ok := parseIDParam(w, r, "installmentID")
	if !ok {
		return
	}

	installmentService := middlewares.GetServiceFromContext[models.InstallmentService](w, r, middlewares.InstallmentServiceKey)

	if err := (*installmentService).Void(r.Context(), installmentID); err != nil {
		if errors.Is(err, database.ErrInstallmentNotFound) {
			http.Error(w, "Installment is not found", http.StatusNotFound)
			return
		}

		if errors.Is(err, database.ErrInstallmentAlreadyVoided) {
			http.Error(w, "Installment is already voided", http.StatusConflict)
			return
		}

		http.Error(w, fmt.Sprintf("Error occurred during voiding installment: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// parseIDParam извлекает числовой идентификатор из параметра маршрута.
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, fmt.Sprintf("Parameter %s must be a positive integer", name), http.StatusBadRequest)
		return 0, false
	}

	return id, true
}
