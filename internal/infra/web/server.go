package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"voiceclone-backend/internal/config"
	"voiceclone-backend/internal/infra/redis"
	"voiceclone-backend/internal/usecase"
)

// Server wires the use cases into the public /api surface.
type Server struct {
	authUC     usecase.AuthUseCase
	accountUC  usecase.AccountUseCase
	planUC     usecase.PlanUseCase
	orderUC    usecase.OrderUseCase
	voiceUC    usecase.VoiceUseCase
	genUC      usecase.GenerationUseCase
	paymentUC  usecase.PaymentAccountUseCase
	statsUC    usecase.StatsUseCase
	ledgerUC   usecase.LedgerUseCase
	jwt        *JWTManager
	limiter    *redis.RateLimiter
	limits     config.LimitsConfig
	log        *zerolog.Logger
}

func NewServer(
	authUC usecase.AuthUseCase,
	accountUC usecase.AccountUseCase,
	planUC usecase.PlanUseCase,
	orderUC usecase.OrderUseCase,
	voiceUC usecase.VoiceUseCase,
	genUC usecase.GenerationUseCase,
	paymentUC usecase.PaymentAccountUseCase,
	statsUC usecase.StatsUseCase,
	ledgerUC usecase.LedgerUseCase,
	jwt *JWTManager,
	limiter *redis.RateLimiter,
	limits config.LimitsConfig,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		authUC:    authUC,
		accountUC: accountUC,
		planUC:    planUC,
		orderUC:   orderUC,
		voiceUC:   voiceUC,
		genUC:     genUC,
		paymentUC: paymentUC,
		statsUC:   statsUC,
		ledgerUC:  ledgerUC,
		jwt:       jwt,
		limiter:   limiter,
		limits:    limits,
		log:       logger,
	}
}

func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/admin/login", s.handleAdminLogin)

		// User routes
		r.Group(func(r chi.Router) {
			r.Use(s.jwt.RequireUser)

			r.Get("/users/me", s.handleMe)
			r.Get("/users/me/transactions", s.handleMyTransactions)

			r.Get("/plans", s.handleListPlans)
			r.Get("/payment-accounts", s.handleListPaymentAccounts)

			r.Post("/orders", s.handlePlaceOrder)
			r.Get("/orders/my", s.handleMyOrders)

			r.Get("/voices", s.handleUsableVoices)
			r.Get("/voices/my", s.handleMyVoices)
			r.Get("/voices/public", s.handlePublicVoices)
			r.Post("/voices/clone", s.handleCloneVoice)
			r.Delete("/voices/{voiceID}", s.handleDeleteVoice)

			r.Post("/voices/generate", s.handleGenerate)
			r.Get("/voices/generate/status/{jobID}", s.handleGenerationStatus)
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(s.jwt.RequireAdmin)

			r.Get("/stats", s.handleAdminStats)

			r.Get("/users", s.handleAdminListUsers)
			r.Post("/users/{accountID}/block", s.handleAdminBlockUser)
			r.Post("/users/{accountID}/credits", s.handleAdminAddCredits)
			r.Delete("/users/{accountID}", s.handleAdminDeleteUser)

			r.Get("/orders", s.handleAdminListOrders)
			r.Post("/orders/{orderID}/approve", s.handleAdminApproveOrder)
			r.Post("/orders/{orderID}/reject", s.handleAdminRejectOrder)

			r.Get("/plans", s.handleAdminListPlans)
			r.Post("/plans", s.handleAdminCreatePlan)
			r.Put("/plans/{planID}", s.handleAdminUpdatePlan)
			r.Delete("/plans/{planID}", s.handleAdminDeletePlan)

			r.Get("/payment-accounts", s.handleAdminListPaymentAccounts)
			r.Post("/payment-accounts", s.handleAdminCreatePaymentAccount)
			r.Put("/payment-accounts/{paymentAccountID}", s.handleAdminUpdatePaymentAccount)
			r.Delete("/payment-accounts/{paymentAccountID}", s.handleAdminDeletePaymentAccount)

			r.Post("/voices/public", s.handleAdminPublishVoice)
			r.Delete("/voices/{voiceID}", s.handleAdminDeleteVoice)
		})
	})

	return r
}
