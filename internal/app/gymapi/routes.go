package gymapi

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	// регистрирует описание API для /docs
	_ "github.com/PoorDoomer/gym-saas-sub000/internal/docs"

	"github.com/PoorDoomer/gym-saas-sub000/internal/access"
	"github.com/PoorDoomer/gym-saas-sub000/internal/grpc/client"
	accesshandler "github.com/PoorDoomer/gym-saas-sub000/internal/http/handlers/access"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/handlers/auth/login"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/handlers/auth/register"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/handlers/auth/signout"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/handlers/auth/user"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/handlers/checkins"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/handlers/classes"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/handlers/dashboard"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/handlers/gyms"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/handlers/health"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/handlers/members"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/handlers/payments"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/handlers/plans"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/handlers/sports"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/handlers/subscriptions"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/handlers/trainers"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/middlewarectx"
	"github.com/PoorDoomer/gym-saas-sub000/internal/metrics"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	accountservice "github.com/PoorDoomer/gym-saas-sub000/internal/services/account"
	checkinservice "github.com/PoorDoomer/gym-saas-sub000/internal/services/checkin"
	classservice "github.com/PoorDoomer/gym-saas-sub000/internal/services/class"
	gymservice "github.com/PoorDoomer/gym-saas-sub000/internal/services/gym"
	gymdata "github.com/PoorDoomer/gym-saas-sub000/internal/services/gymdata"
	memberservice "github.com/PoorDoomer/gym-saas-sub000/internal/services/member"
	paymentservice "github.com/PoorDoomer/gym-saas-sub000/internal/services/payment"
	planservice "github.com/PoorDoomer/gym-saas-sub000/internal/services/plan"
	sportservice "github.com/PoorDoomer/gym-saas-sub000/internal/services/sport"
	subservice "github.com/PoorDoomer/gym-saas-sub000/internal/services/subscription"
	trainerservice "github.com/PoorDoomer/gym-saas-sub000/internal/services/trainer"
)

// Services зависимости обработчиков API.
type Services struct {
	Auth          *client.AuthClient
	Tenants       middlewarectx.TenantAccess
	Gate          *access.Gate
	Accounts      *accountservice.AccountService
	Members       *memberservice.MemberService
	Trainers      *trainerservice.TrainerService
	Classes       *classservice.ClassService
	Sports        *sportservice.SportService
	Plans         *planservice.PlanService
	Subscriptions *subservice.SubscriptionService
	Payments      *paymentservice.PaymentService
	CheckIns      *checkinservice.CheckInService
	Gyms          *gymservice.GymService
	GymData       *gymdata.GymDataService
	Health        map[string]health.Pinger
	Metrics       *metrics.Metrics
	RateLimitRPS  float64
	RateBurst     int
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		s.Metrics.Middleware,
	)

	memberHandler := members.New(logger, s.Members, s.Accounts)
	trainerHandler := trainers.New(logger, s.Trainers, s.Accounts)
	classHandler := classes.New(logger, s.Classes)
	sportHandler := sports.New(logger, s.Sports)
	planHandler := plans.New(logger, s.Plans)
	subscriptionHandler := subscriptions.New(logger, s.Subscriptions)
	paymentHandler := payments.New(logger, s.Payments)
	checkinHandler := checkins.New(logger, s.CheckIns)
	dashboardHandler := dashboard.New(logger, s.GymData)
	gymHandler := gyms.New(logger, s.Gyms)
	accessHandler := accesshandler.New(logger, s.Gate)

	adminOnly := middlewarectx.RoleMiddleware(s.Gate, logger, models.RoleAdmin)
	staff := middlewarectx.RoleMiddleware(s.Gate, logger, models.RoleAdmin, models.RoleTrainer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger, s.RateLimitRPS, s.RateBurst))

		// Открытые конечные точки
		r.Post("/auth/signup", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/health", health.New(logger, s.Health).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))

			r.Post("/auth/signout", signout.New(logger, s.Auth).ServeHTTP)
			r.Put("/auth/user", user.New(logger, s.Auth).ServeHTTP)
			r.Get("/gyms", gymHandler.List)
			r.Post("/gyms", gymHandler.Create)
			r.Get("/access", accessHandler.Check)
			r.Get("/me/navigation", accessHandler.Navigation)

			// Данные выбранного клуба
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.TenantMiddleware(s.Tenants, logger))

				r.Get("/members", memberHandler.List)
				r.Get("/members/stats", memberHandler.Stats)
				r.Get("/members/{id}", memberHandler.Get)
				r.Get("/members/{id}/qr", memberHandler.QRCode)

				r.Get("/trainers", trainerHandler.List)
				r.Get("/trainers/stats", trainerHandler.Stats)
				r.Get("/trainers/{id}", trainerHandler.Get)
				r.Get("/trainers/{id}/sports", trainerHandler.ListSports)

				r.Get("/classes", classHandler.List)
				r.Get("/classes/stats", classHandler.Stats)
				r.Get("/classes/{id}", classHandler.Get)
				r.Get("/schedules", classHandler.ListSchedules)
				r.Get("/schedules/{id}/enrollments", classHandler.ListEnrollments)
				r.Post("/schedules/{id}/enrollments", classHandler.Enroll)

				r.Get("/sports", sportHandler.List)
				r.Get("/sports/stats", sportHandler.Stats)
				r.Get("/sports/{id}", sportHandler.Get)

				r.Get("/plans", planHandler.List)
				r.Get("/plans/{id}", planHandler.Get)

				r.Get("/subscriptions", subscriptionHandler.List)
				r.Get("/subscriptions/{id}", subscriptionHandler.Get)

				r.Get("/payments", paymentHandler.List)
				r.Get("/payments/{id}", paymentHandler.Get)

				r.Get("/checkins", checkinHandler.List)
				r.Get("/checkins/stats", checkinHandler.Stats)
				r.Post("/checkins", checkinHandler.CheckIn)
				r.Post("/checkins/qr", checkinHandler.CheckInByQR)
				r.Post("/checkins/{id}/checkout", checkinHandler.CheckOut)

				r.Get("/settings", gymHandler.Settings)
				r.Get("/billing/tiers", gymHandler.Tiers)

				// Администраторы и тренеры
				r.Group(func(r chi.Router) {
					r.Use(staff)

					r.Post("/members", memberHandler.Create)
					r.Post("/members/accounts", memberHandler.CreateWithAccount)
					r.Put("/members/{id}", memberHandler.Update)
					r.Delete("/members/{id}", memberHandler.Delete)

					r.Post("/classes", classHandler.Create)
					r.Put("/classes/{id}", classHandler.Update)
					r.Delete("/classes/{id}", classHandler.Delete)
					r.Post("/classes/{id}/schedules", classHandler.CreateSchedule)
					r.Post("/schedules/{id}/cancel", classHandler.CancelSchedule)
					r.Put("/enrollments/{id}/status", classHandler.UpdateEnrollmentStatus)

					r.Post("/subscriptions", subscriptionHandler.Create)
					r.Post("/subscriptions/{id}/cancel", subscriptionHandler.Cancel)

					r.Get("/payments/stats", paymentHandler.Stats)
					r.Get("/dashboard", dashboardHandler.Dashboard)
					r.Get("/reports/revenue", dashboardHandler.Revenue)
					r.Get("/reports/checkins", dashboardHandler.CheckIns)
				})

				// Только администраторы клуба
				r.Group(func(r chi.Router) {
					r.Use(adminOnly)

					r.Post("/trainers", trainerHandler.Create)
					r.Put("/trainers/{id}", trainerHandler.Update)
					r.Delete("/trainers/{id}", trainerHandler.Delete)
					r.Post("/trainers/{id}/sports", trainerHandler.AssignSport)
					r.Delete("/trainers/{id}/sports/{sportID}", trainerHandler.RemoveSport)

					r.Post("/sports", sportHandler.Create)
					r.Put("/sports/{id}", sportHandler.Update)
					r.Delete("/sports/{id}", sportHandler.Delete)

					r.Post("/plans", planHandler.Create)
					r.Put("/plans/{id}", planHandler.Update)
					r.Delete("/plans/{id}", planHandler.Delete)

					r.Post("/payments", paymentHandler.Create)
					r.Put("/payments/{id}/status", paymentHandler.UpdateStatus)

					r.Put("/settings", gymHandler.UpdateSettings)
					r.Put("/billing/tier", gymHandler.ChangeTier)
				})
			})
		})
	})

	r.Handle("/metrics", s.Metrics.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
