package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ventafacil/ledger/internal/database"
	"github.com/ventafacil/ledger/internal/middlewares"
	"github.com/ventafacil/ledger/internal/models"
	"github.com/ventafacil/ledger/internal/services"
)

// GetSettlement возвращает сведенный итог по одному заказу.
func GetSettlement(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseIDParam(w, r, "orderID")
	if !ok {
		return
	}

	debtService := middlewares.GetServiceFromContext[models.DebtService](w, r, middlewares.DebtServiceKey)

	settlement, err := (*debtService).SettlementFor(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, database.ErrOrderNotFound) {
			http.Error(w, "Order is not found", http.StatusNotFound)
			return
		}

		if errors.Is(err, database.ErrInconsistentPayment) ||
			errors.Is(err, services.ErrMissingRate) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, fmt.Sprintf("Error occurred during resolving order: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusOK, settlement)
}

// GetCustomerDebt возвращает задолженность клиента по незакрытым заказам.
func GetCustomerDebt(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")
	if customerID == "" {
		http.Error(w, "Customer id is empty", http.StatusBadRequest)
		return
	}

	debtService := middlewares.GetServiceFromContext[models.DebtService](w, r, middlewares.DebtServiceKey)

	debt, err := (*debtService).CustomerDebt(r.Context(), customerID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error occurred during getting customer debt: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusOK, debt)
}

// GetDebtors возвращает всех клиентов с задолженностью.
func GetDebtors(w http.ResponseWriter, r *http.Request) {
	debtService := middlewares.GetServiceFromContext[models.DebtService](w, r, middlewares.DebtServiceKey)

	debtors, err := (*debtService).Debtors(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Error occurred during getting debtors: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	if len(debtors) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusOK, debtors)
}
