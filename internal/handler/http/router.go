package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/tandemhr/ess-backend-go/internal/config"
	"github.com/tandemhr/ess-backend-go/internal/handler/http/middleware"
	"github.com/tandemhr/ess-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	Employee     EmployeeHandler
	Leave        LeaveHandler
	Attendance   AttendanceHandler
	Schedule     ScheduleHandler
	Claim        ClaimHandler
	ExtraShift   ExtraShiftHandler
	ShiftSwap    ShiftSwapHandler
	Letter       LetterHandler
	Notification NotificationHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ess-backend"),
		slog.String("env", cfg.App.Env),
	)

	allowedOrigins := cfg.App.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Company-ID"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)

		// SSE carries its own short-lived token.
		r.Get("/notifications/stream", h.Notification.Stream)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/auth", func(r chi.Router) {
				r.Post("/logout", h.Auth.Logout)
				r.Get("/session", h.Auth.Session)
				r.Put("/password", h.Auth.ChangePassword)
			})

			r.Route("/profile", func(r chi.Router) {
				r.Use(middleware.EmployeeRequired)
				r.Get("/", h.Employee.GetProfile)
				r.Patch("/", h.Employee.UpdateProfile)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Get("/types", h.Leave.ListTypes)
				r.Get("/approvals", h.Leave.PendingApprovals)
				r.Post("/requests/{id}/approve", h.Leave.Approve)
				r.Post("/requests/{id}/reject", h.Leave.Reject)
				r.Get("/requests/{id}", h.Leave.GetRequest)

				r.Group(func(r chi.Router) {
					r.Use(middleware.EmployeeRequired)
					r.Get("/summary", h.Leave.GetSummary)
					r.Get("/requests", h.Leave.GetMyRequests)
					r.Post("/requests", h.Leave.Apply)
					r.Post("/requests/{id}/cancel", h.Leave.Cancel)
					r.Post("/requests/{id}/revert", h.Leave.Revert)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/overtime/pending", h.Attendance.PendingOT)
				r.Post("/overtime/decide", h.Attendance.DecideOTBatch)

				r.Group(func(r chi.Router) {
					r.Use(middleware.EmployeeRequired)
					r.Post("/punch", h.Attendance.Punch)
					r.Get("/today", h.Attendance.Today)
					r.Get("/history", h.Attendance.History)
				})
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/templates", h.Schedule.ListTemplates)
				r.Get("/team", h.Schedule.GetTeam)
				r.Get("/validate-week", h.Schedule.ValidateWeek)
				r.Post("/", h.Schedule.BulkCreate)
				r.Put("/{id}", h.Schedule.Update)
				r.Delete("/{id}", h.Schedule.Delete)

				r.Group(func(r chi.Router) {
					r.Use(middleware.EmployeeRequired)
					r.Get("/my", h.Schedule.GetOwn)
				})
			})

			r.Route("/claims", func(r chi.Router) {
				r.Get("/types", h.Claim.ListTypes)
				r.Get("/approvals", h.Claim.PendingApprovals)
				r.Post("/{id}/approve", h.Claim.Approve)
				r.Post("/{id}/reject", h.Claim.Reject)

				r.Group(func(r chi.Router) {
					r.Use(middleware.EmployeeRequired)
					r.Get("/", h.Claim.ListOwn)
					r.Post("/", h.Claim.Submit)
					r.Post("/{id}/cancel", h.Claim.Cancel)
				})
			})

			r.Route("/extra-shifts", func(r chi.Router) {
				r.Get("/approvals", h.ExtraShift.PendingApprovals)
				r.Post("/{id}/approve", h.ExtraShift.Approve)
				r.Post("/{id}/reject", h.ExtraShift.Reject)

				r.Group(func(r chi.Router) {
					r.Use(middleware.EmployeeRequired)
					r.Get("/", h.ExtraShift.ListOwn)
					r.Post("/", h.ExtraShift.Submit)
					r.Post("/{id}/cancel", h.ExtraShift.Cancel)
				})
			})

			r.Route("/shift-swaps", func(r chi.Router) {
				r.Get("/approvals", h.ShiftSwap.PendingApprovals)
				r.Post("/{id}/approve", h.ShiftSwap.Approve)
				r.Post("/{id}/reject", h.ShiftSwap.Reject)

				r.Group(func(r chi.Router) {
					r.Use(middleware.EmployeeRequired)
					r.Get("/", h.ShiftSwap.ListOwn)
					r.Post("/", h.ShiftSwap.Submit)
					r.Post("/{id}/respond", h.ShiftSwap.Respond)
					r.Post("/{id}/cancel", h.ShiftSwap.Cancel)
				})
			})

			r.Route("/letters", func(r chi.Router) {
				r.Get("/requested", h.Letter.ListRequested)
				r.Post("/{id}/handle", h.Letter.Handle)

				r.Group(func(r chi.Router) {
					r.Use(middleware.EmployeeRequired)
					r.Get("/", h.Letter.ListOwn)
					r.Post("/", h.Letter.Request)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Get("/sse-token", h.Notification.GetSSEToken)
				r.Post("/{id}/read", h.Notification.MarkRead)
				r.Post("/read-all", h.Notification.MarkAllRead)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})

	return r
}
