package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crucial707/expense-tracker/internal/captcha"
	"github.com/crucial707/expense-tracker/internal/config"
	"github.com/crucial707/expense-tracker/internal/handlers"
	"github.com/crucial707/expense-tracker/internal/middleware"
	"github.com/crucial707/expense-tracker/internal/repo"
	"github.com/crucial707/expense-tracker/internal/token"
)

// newRouter wires repositories, handlers, and the middleware chain.
// Kept separate from main so integration tests can build the full router
// against a mocked database.
func newRouter(db *sql.DB, cfg config.Config) http.Handler {
	userRepo := repo.NewUserRepo(db)
	expenseRepo := repo.NewExpenseRepo(db)

	issuer := token.New([]byte(cfg.JWTSecret), time.Duration(cfg.JWTExpireHours)*time.Hour)
	verifier := captcha.New(cfg.CaptchaSecret, cfg.CaptchaVerifyURL)

	authHandler := &handlers.AuthHandler{UserRepo: userRepo, Captcha: verifier, Tokens: issuer}
	expenseHandler := &handlers.ExpenseHandler{Repo: expenseRepo}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			handlers.JSONError(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintln(w, "ready")
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Use(middleware.AuthRateLimiter().Middleware)
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Route("/expenses", func(r chi.Router) {
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
		r.Use(middleware.RequireAuth(issuer))
		r.Get("/", expenseHandler.ListExpenses)
		r.Post("/", expenseHandler.CreateExpense)
		r.Put("/{id}", expenseHandler.UpdateExpense)
		r.Delete("/{id}", expenseHandler.DeleteExpense)
	})

	return r
}
