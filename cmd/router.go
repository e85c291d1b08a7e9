package cmd

import (
	"net/http"
	"time"

	"github.com/Dharmikkumbhani/khichdi-backend/internal/handlers"
	"github.com/Dharmikkumbhani/khichdi-backend/internal/middleware"
	"github.com/Dharmikkumbhani/khichdi-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

const (
	otpRateLimit  = 10
	otpRateWindow = 15 * time.Minute
)

// newRouter wires handlers, middleware and rate limits into the HTTP surface
func newRouter(
	authService *services.AuthService,
	menuService *services.MenuService,
	pushService *services.PushService,
	wsHub *services.WSHub,
) *chi.Mux {
	authHandler := handlers.NewAuthHandler(authService)
	hotelHandler := handlers.NewHotelHandler(authService)
	menuHandler := handlers.NewMenuHandler(menuService, pushService, wsHub)
	pushHandler := handlers.NewPushHandler(pushService)
	wsHandler := handlers.NewWebSocketHandler(wsHub, authService)

	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	// Routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(httprate.Limit(
				otpRateLimit, otpRateWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(rateLimitHandler),
			)).Post("/send-otp", authHandler.SendOTP)
			r.Post("/verify-otp", authHandler.VerifyOTP)
			r.Post("/direct-login", authHandler.DirectLogin)
		})

		r.Route("/hotel", func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(authService))
			r.Get("/dashboard", hotelHandler.Dashboard)
		})

		r.Route("/menu", func(r chi.Router) {
			// Public feeds
			r.Get("/today", menuHandler.Today)
			r.Get("/latest", menuHandler.Latest)

			// Hotel-only routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthMiddleware(authService))
				r.Post("/upload", menuHandler.Upload)
				r.Get("/history", menuHandler.History)
			})
		})

		r.Route("/push", func(r chi.Router) {
			r.Get("/vapidPublicKey", pushHandler.VAPIDPublicKey)
			r.Post("/subscribe", pushHandler.Subscribe)
			r.Post("/unsubscribe", pushHandler.Unsubscribe)
		})
	})

	// WebSocket route
	r.Get("/ws", wsHandler.HandleWebSocket)

	return r
}

// rateLimitHandler answers throttled OTP requests with retry guidance
func rateLimitHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	w.Write([]byte(`{"success":false,"message":"Too many requests from this IP, please try again after 15 minutes"}`))
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
