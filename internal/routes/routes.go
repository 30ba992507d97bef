package routes

import (
	"database/sql"
	"net/http"

	"github.com/evn/shiftpay_backendl/config"
	adminHandlers "github.com/evn/shiftpay_backendl/internal/handlers/admin"
	authHandlers "github.com/evn/shiftpay_backendl/internal/handlers/auth"
	jobHandlers "github.com/evn/shiftpay_backendl/internal/handlers/job"
	payHandlers "github.com/evn/shiftpay_backendl/internal/handlers/pay"
	shiftHandlers "github.com/evn/shiftpay_backendl/internal/handlers/shift"
	wsHandlers "github.com/evn/shiftpay_backendl/internal/handlers/ws"
	"github.com/evn/shiftpay_backendl/internal/middleware" // ваш middleware
	"github.com/evn/shiftpay_backendl/internal/paycalc"
	"github.com/evn/shiftpay_backendl/internal/pkg/response"
	"github.com/evn/shiftpay_backendl/internal/repositories"
	authService "github.com/evn/shiftpay_backendl/internal/services/auth"
	wsService "github.com/evn/shiftpay_backendl/internal/services/ws"
	"github.com/evn/shiftpay_backendl/pkg/workerpool"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // ← алиас!
	"github.com/go-chi/jwtauth/v5"
	"github.com/redis/go-redis/v9"
)

// Setup инициализирует и возвращает настроенный маршрутизатор.
func Setup(cfg *config.Config, database *sql.DB, redisClient *redis.Client) *chi.Mux {
	jwtAuth := jwtauth.New("HS256", []byte(cfg.JwtSecret), nil)
	jwtService := authService.NewJWTService(cfg.JwtSecret, redisClient)
	telegramAuthService := authService.NewTelegramAuthService(cfg.TelegramBotToken)

	calcCfg := paycalc.Config{
		DefaultRate:          cfg.DefaultPayRate,
		OvertimeThreshold:    cfg.OvertimeThreshold,
		OvertimeMultiplier:   cfg.OvertimeMultiplier,
		HolidayMultiplier:    cfg.HolidayMultiplier,
		DefaultLunchMinutes:  30,
		DefaultLunchMinHours: 6,
	}
	taxRates := paycalc.TaxRates{
		Federal:        cfg.FederalTaxRate,
		State:          cfg.StateTaxRate,
		SocialSecurity: cfg.SocialSecurityRate,
		Medicare:       cfg.MedicareRate,
	}

	jobRepo := repositories.NewJobRepository(database)
	ratePool := workerpool.New(8, 64)
	engine := paycalc.NewEngine(calcCfg, jobRepo, ratePool)

	statusStore := wsService.NewStatusStore(redisClient)
	wsManager := wsService.NewManager(statusStore)

	authHandler := authHandlers.NewAuthHandler(database, jwtService, telegramAuthService)
	profileHandler := authHandlers.NewProfileHandler(database)
	shiftHandler := shiftHandlers.NewShiftHandler(database, calcCfg, wsManager)
	payHandler := payHandlers.NewPayHandler(database, engine, taxRates)
	jobHandler := jobHandlers.NewJobHandler(database)

	router := chi.NewRouter()

	// Используем chiMiddleware для Logger и Recoverer
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(jwtauth.Verifier(jwtAuth))
	router.Use(middleware.AddUserIDToContext()) // ваш middleware

	// Публичные маршруты
	router.Post("/api/auth/register", authHandler.RegisterHandler)
	router.Post("/api/auth/login", authHandler.LoginHandler)
	router.Post("/api/auth/telegram", authHandler.TelegramAuthHandler)
	router.Post("/api/auth/refresh", authHandler.RefreshTokenHandler)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Group(func(r chi.Router) {
		r.Use(jwtauth.Authenticator(jwtAuth))

		r.Get("/api/profile", profileHandler.GetProfile)
		r.Put("/api/profile/pay-rate", profileHandler.UpdatePayRate)
		r.Post("/api/logout", authHandler.LogoutHandler)

		// Табель: отметки и обед
		r.Post("/api/shifts/clock-in", shiftHandler.ClockInHandler)
		r.Post("/api/shifts/clock-out", shiftHandler.ClockOutHandler)
		r.Post("/api/shifts/lunch/start", shiftHandler.LunchStartHandler)
		r.Post("/api/shifts/lunch/end", shiftHandler.LunchEndHandler)
		r.Get("/api/shifts/active", shiftHandler.GetActiveShiftHandler)

		// CRUD и импорт смен
		r.Get("/api/shifts", shiftHandler.ListShiftsHandler)
		r.Post("/api/shifts", shiftHandler.CreateShiftHandler)
		r.Put("/api/shifts/{shiftID}", shiftHandler.UpdateShiftHandler)
		r.Delete("/api/shifts/{shiftID}", shiftHandler.DeleteShiftHandler)
		r.Post("/api/shifts/import", shiftHandler.ImportShiftsHandler(database))

		// Зарплата
		r.Get("/api/pay/week", payHandler.WeekPayHandler)
		r.Get("/api/pay/period", payHandler.PeriodPayHandler)
		r.Get("/api/pay/net", payHandler.NetPayHandler)
		r.Get("/api/pay/period/export", payHandler.ExportPeriodHandler)

		// Статистика
		r.Get("/api/stats/weeks", payHandler.BestWorstWeeksHandler)
		r.Get("/api/stats/streak", payHandler.StreakHandler)

		// Подработки и их ставки
		r.Get("/api/jobs", jobHandler.ListJobsHandler)
		r.Post("/api/jobs", jobHandler.CreateJobHandler)
		r.Put("/api/jobs/{jobName}", jobHandler.UpdateJobHandler)
		r.Delete("/api/jobs/{jobName}", jobHandler.DeleteJobHandler)

		r.Get("/ws", wsHandlers.WebSocketHandler(wsManager))

		// Admin-only
		r.Group(func(sr chi.Router) {
			sr.Use(middleware.AdminOnly())
			sr.Get("/api/admin/users", adminHandlers.ListUsersHandler(database))
			sr.Patch("/api/admin/users/{userID}/role", adminHandlers.UpdateUserRoleHandler(database))
			sr.Delete("/api/admin/users/{userID}", adminHandlers.DeleteUserHandler(database))
		})
	})

	return router
}
