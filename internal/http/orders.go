package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ventafacil/ledger/internal/database"
	"github.com/ventafacil/ledger/internal/middlewares"
	"github.com/ventafacil/ledger/internal/models"
	"github.com/ventafacil/ledger/internal/services"
)

// CorrectOrderTotal заменяет сумму заказа на выверенную при сверке.
func CorrectOrderTotal(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseIDParam(w, r, "orderID")
	if !ok {
		return
	}

	data := middlewares.GetParsedJSONData[models.TotalCorrection](w, r)
	orderService := middlewares.GetServiceFromContext[models.OrderService](w, r, middlewares.OrderServiceKey)

	if err := (*orderService).CorrectTotal(r.Context(), orderID, data.TotalUSD); err != nil {
		if errors.Is(err, database.ErrOrderNotFound) {
			http.Error(w, "Order is not found", http.StatusNotFound)
			return
		}

		if errors.Is(err, services.ErrInvalidTotal) {
			http.Error(w, "Total must be positive", http.StatusUnprocessableEntity)
			return
		}

		if errors.Is(err, services.ErrOrderClosed) {
			http.Error(w, "Order is voided or cancelled", http.StatusConflict)
			return
		}

		if errors.Is(err, database.ErrInconsistentPayment) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, fmt.Sprintf("Error occurred during correcting order total: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
