package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getadminmaterials "supply-golang/http-server/admin/get"
	upadminstock "supply-golang/http-server/admin/update"
	"supply-golang/http-server/adjustment/execute"
	getadjustment "supply-golang/http-server/adjustment/get"
	"supply-golang/http-server/adjustment/restore"
	"supply-golang/http-server/adjustment/substitute"
	"supply-golang/http-server/adjustment/transfer"
	generate_excel "supply-golang/http-server/generate-report/generate-excel"
	getmaterials "supply-golang/http-server/materials/get"
	getorders "supply-golang/http-server/orders/get"
	"supply-golang/internal/config"
	"supply-golang/internal/middleware/auth"
	"supply-golang/internal/service/allocation"
	"supply-golang/internal/service/report"
	"supply-golang/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage, allocService *allocation.Service, reportService *report.ShortageReportService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Order feed and material ledger for the back-office screens
	router.Get("/api/orders", getorders.GetOrdersFilter(log, storage))
	router.Get("/api/materials", getmaterials.GetMaterials(log, storage))

	// Allocation and adjustment engine
	router.Get("/api/adjustment", getadjustment.GetAdjustmentView(log, allocService))
	router.Post("/api/adjustment/substitute", substitute.ApplySubstitution(log, allocService))
	router.Post("/api/adjustment/execute", execute.ExecuteAdjustment(log, allocService))
	router.Post("/api/adjustment/restore", restore.RestoreOrders(log, allocService))
	router.Post("/api/adjustment/transfer", transfer.TransferToPreparation(log, allocService))

	// Shortage report export
	router.Get("/api/report/excel", generate_excel.GenerateShortageExcel(log, reportService))

	// Material ledger admin
	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Get("/materials", getadminmaterials.GetMaterialsAdmin(log, storage))
	adminRouter.Put("/materials/stock", upadminstock.UpdateMaterialsStockAdmin(log, storage))

	router.Mount("/api/admin", adminRouter)

	return router
}
