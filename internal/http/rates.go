package router

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ventafacil/ledger/internal/middlewares"
	"github.com/ventafacil/ledger/internal/models"
	"github.com/ventafacil/ledger/internal/services"
	"github.com/ventafacil/ledger/internal/utils"
)

// RecordRate записывает наблюдение курса, пришедшее вручную.
// Повтор действующего курса - штатный ответ без изменения истории.
func RecordRate(w http.ResponseWriter, r *http.Request) {
	data := middlewares.GetParsedJSONData[models.NewRateObservation](w, r)
	rateService := middlewares.GetServiceFromContext[models.RateService](w, r, middlewares.RateServiceKey)

	result, err := (*rateService).RecordObservation(r.Context(), data.Value, time.Now().UTC())
	if err != nil {
		if errors.Is(err, services.ErrInvalidRate) {
			http.Error(w, "Rate must be positive", http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, fmt.Sprintf("Error occurred during recording rate: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if result.Inserted {
		status = http.StatusCreated
	}

	middlewares.EncodeJSONResponse(w, status, result)
}

// GetLatestRate возвращает действующий курс на дату из параметра date
// (по умолчанию - на сегодня).
func GetLatestRate(w http.ResponseWriter, r *http.Request) {
	rateService := middlewares.GetServiceFromContext[models.RateService](w, r, middlewares.RateServiceKey)

	date := utils.NewCalendarDate(time.Now().UTC())

	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := utils.ParseCalendarDate(raw)
		if err != nil {
			http.Error(w, "Date must be in YYYY-MM-DD format", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	rate, err := (*rateService).LatestRate(r.Context(), date)
	if err != nil {
		if errors.Is(err, services.ErrNoRateAvailable) {
			http.Error(w, "No rate observation on or before the date", http.StatusNotFound)
			return
		}

		http.Error(w, fmt.Sprintf("Error occurred during getting rate: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusOK, rate)
}
