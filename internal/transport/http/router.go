package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	adminapp "github.com/sreejaboddula/kaamsetu/internal/application/admin"
	"github.com/sreejaboddula/kaamsetu/internal/application/auth"
	documentapp "github.com/sreejaboddula/kaamsetu/internal/application/document"
	vendorapp "github.com/sreejaboddula/kaamsetu/internal/application/vendor"
	workerapp "github.com/sreejaboddula/kaamsetu/internal/application/worker"
	"github.com/sreejaboddula/kaamsetu/internal/config"
	"github.com/sreejaboddula/kaamsetu/internal/domain"
	"github.com/sreejaboddula/kaamsetu/internal/infrastructure/dynamo"
	jwtinfra "github.com/sreejaboddula/kaamsetu/internal/infrastructure/jwt"
	s3infra "github.com/sreejaboddula/kaamsetu/internal/infrastructure/s3"
	"github.com/sreejaboddula/kaamsetu/internal/infrastructure/smtp"
	"github.com/sreejaboddula/kaamsetu/internal/infrastructure/sns"
	"github.com/sreejaboddula/kaamsetu/internal/transport/http/handler"
	appmiddleware "github.com/sreejaboddula/kaamsetu/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	WorkerRepo       *dynamo.WorkerRepo
	VendorRepo       *dynamo.VendorRepo
	JobRepo          *dynamo.JobRepo
	OfferRepo        *dynamo.OfferRepo
	ApplicationRepo  *dynamo.ApplicationRepo
	SessionRepo      *dynamo.SessionRepo
	VerificationRepo *dynamo.PhoneVerificationRepo
	ReviewRepo       *dynamo.ReviewRepo
	DocumentRepo     *dynamo.DocumentRepo
	S3Store          *s3infra.Store
	Mailer           smtp.Mailer
	SMSSender        sns.SMSSender
	JWTProvider      *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to the OTP and login endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		VerificationRepo: deps.VerificationRepo,
		WorkerRepo:       deps.WorkerRepo,
		VendorRepo:       deps.VendorRepo,
		ReviewRepo:       deps.ReviewRepo,
		SessionRepo:      deps.SessionRepo,
		SMSSender:        deps.SMSSender,
		Mailer:           deps.Mailer,
		JWTProvider:      deps.JWTProvider,
		JWTExpiry:        cfg.JWTExpiry,
		RefreshTokenTTL:  cfg.RefreshTokenTTL,
		OTPTTL:           cfg.OTPTTL,
		VerifiedPhoneTTL: cfg.VerifiedPhoneTTL,
		AdminPhones:      cfg.AdminPhones,
	})
	workerSvc := workerapp.NewService(workerapp.ServiceDeps{
		WorkerRepo:      deps.WorkerRepo,
		JobRepo:         deps.JobRepo,
		ApplicationRepo: deps.ApplicationRepo,
		OfferRepo:       deps.OfferRepo,
	})
	vendorSvc := vendorapp.NewService(vendorapp.ServiceDeps{
		VendorRepo: deps.VendorRepo,
		WorkerRepo: deps.WorkerRepo,
		JobRepo:    deps.JobRepo,
		OfferRepo:  deps.OfferRepo,
	})
	adminSvc := adminapp.NewService(adminapp.ServiceDeps{
		ReviewRepo:   deps.ReviewRepo,
		WorkerRepo:   deps.WorkerRepo,
		DocumentRepo: deps.DocumentRepo,
		Files:        deps.S3Store,
	})
	documentSvc := documentapp.NewService(documentapp.ServiceDeps{
		DocumentRepo:     deps.DocumentRepo,
		VerificationRepo: deps.VerificationRepo,
		Files:            deps.S3Store,
	})

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	workerH := handler.NewWorkerHandler(workerSvc)
	employerH := handler.NewEmployerHandler(vendorSvc)
	adminH := handler.NewAdminHandler(adminSvc)
	documentH := handler.NewDocumentHandler(documentSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check", healthH.Ping)

		r.With(sensitiveRL.Limit).Post("/auth/send-otp", authH.SendOTP)
		r.With(sensitiveRL.Limit).Post("/auth/verify-otp", authH.VerifyOTP)
		r.Get("/auth/registration-status", authH.RegistrationStatus)
		r.With(sensitiveRL.Limit).Post("/auth/register/user", authH.RegisterWorker)
		r.With(sensitiveRL.Limit).Post("/auth/register/vendor", authH.RegisterVendor)
		r.With(sensitiveRL.Limit).Post("/auth/login/user", authH.LoginWorker)
		r.With(sensitiveRL.Limit).Post("/auth/login/vendor", authH.LoginVendor)
		r.Post("/auth/refresh", authH.Refresh)

		// Mid-wizard uploads, gated by phone verification instead of a token.
		r.With(sensitiveRL.Limit).Post("/documents/aadhaar", documentH.UploadAadhaar)
		r.With(sensitiveRL.Limit).Post("/documents/skill-proof", documentH.UploadSkillProof)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/documents/{documentId}", documentH.DownloadURL)

			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleWorker))

				r.Get("/worker/profile", workerH.Profile)
				r.Get("/worker/jobs", workerH.AvailableJobs)
				r.Post("/worker/jobs/{jobId}/apply", workerH.Apply)
				r.Get("/worker/applications", workerH.Applications)
				r.Get("/worker/offers", workerH.Offers)
				r.Post("/worker/offers/{offerId}/respond", workerH.RespondToOffer)
			})

			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleEmployer))

				r.Get("/employer/profile", employerH.Profile)
				r.Get("/employer/workers/{category}", employerH.WorkersByCategory)
				r.Post("/employer/offers", employerH.SendOffer)
				r.Get("/employer/offers", employerH.Offers)
				r.Post("/employer/jobs", employerH.PublishJob)
				r.Get("/employer/jobs", employerH.Jobs)
			})

			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Get("/admin/verifications", adminH.ListVerifications)
				r.Get("/admin/verifications/{reviewId}", adminH.GetVerification)
				r.Post("/admin/verifications/{reviewId}/approve", adminH.Approve)
				r.Post("/admin/verifications/{reviewId}/reject", adminH.Reject)
			})
		})
	})

	return r
}
