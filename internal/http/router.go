package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ventafacil/ledger/internal/logger"
	"github.com/ventafacil/ledger/internal/middlewares"
	"github.com/ventafacil/ledger/internal/models"
)

type Config struct {
	Endpoint string
}

type Router struct {
	config             Config
	rateService        models.RateService
	installmentService models.InstallmentService
	orderService       models.OrderService
	debtService        models.DebtService
	reportService      models.ReportService
}

func New(
	config Config,
	rateService models.RateService,
	installmentService models.InstallmentService,
	orderService models.OrderService,
	debtService models.DebtService,
	reportService models.ReportService,
) *Router {
	return &Router{
		config,
		rateService,
		installmentService,
		orderService,
		debtService,
		reportService,
	}
}

func (router *Router) get() chi.Router {
	r := chi.NewRouter()

	r.Use(
		middlewares.ServiceInjectorMiddleware(
			router.rateService,
			router.installmentService,
			router.orderService,
			router.debtService,
			router.reportService,
		),
		logger.RequestLogger,
	)

	r.Route("/api", func(r chi.Router) {
		r.With(middlewares.JSONMiddleware[models.NewRateObservation]).Post("/rates", RecordRate)
		r.Get("/rates/latest", GetLatestRate)

		r.Route("/orders/{orderID}", func(r chi.Router) {
			r.With(middlewares.JSONMiddleware[models.NewInstallment]).Post("/installments", CreateInstallment)
			r.Get("/settlement", GetSettlement)
			r.With(middlewares.JSONMiddleware[models.TotalCorrection]).Post("/total", CorrectOrderTotal)
		})

		r.Post("/installments/{installmentID}/void", VoidInstallment)

		r.Get("/customers/{customerID}/debt", GetCustomerDebt)
		r.Get("/debtors", GetDebtors)

		r.Get("/reports/income", GetIncomeReport)
	})

	return r
}

func (router *Router) Run() {
	log.Fatal(http.ListenAndServe(router.config.Endpoint, router.get()))
}
