package router

import (
	"fmt"
	"net/http"

	"github.com/ventafacil/ledger/internal/middlewares"
	"github.com/ventafacil/ledger/internal/models"
	"github.com/ventafacil/ledger/internal/utils"
)

// GetIncomeReport строит отчет о доходе за период [from, to],
// обе границы включительно.
func GetIncomeReport(w http.ResponseWriter, r *http.Request) {
	from, err := utils.ParseCalendarDate(r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, "Parameter from must be in YYYY-MM-DD format", http.StatusBadRequest)
		return
	}

	to, err := utils.ParseCalendarDate(r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "Parameter to must be in YYYY-MM-DD format", http.StatusBadRequest)
		return
	}

	if to.Before(from) {
		http.Error(w, "Parameter to must not precede from", http.StatusBadRequest)
		return
	}

	reportService := middlewares.GetServiceFromContext[models.ReportService](w, r, middlewares.ReportServiceKey)

	report, err := (*reportService).ReportFor(r.Context(), from, to)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error occurred during building income report: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusOK, report)
}
