package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/journal-api/internal/application/auth"
	"github.com/journal-api/internal/application/color"
	fileapp "github.com/journal-api/internal/application/file"
	"github.com/journal-api/internal/application/journal"
	"github.com/journal-api/internal/application/user"
	"github.com/journal-api/internal/config"
	"github.com/journal-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/journal-api/internal/infrastructure/jwt"
	s3infra "github.com/journal-api/internal/infrastructure/s3"
	"github.com/journal-api/internal/infrastructure/smtp"
	"github.com/journal-api/internal/transport/http/handler"
	appmiddleware "github.com/journal-api/internal/transport/http/middleware"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo         *dynamo.UserRepo
	JournalRepo      *dynamo.JournalRepo
	ColorRepo        *dynamo.ColorRepo
	FileRepo         *dynamo.FileRepo
	VerificationRepo *dynamo.VerificationRepo
	S3Store          *s3infra.Store
	Mailer           smtp.Mailer
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

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// 5 requests/second, burst of 10, applied to the public registration and
	// verification endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		VerificationRepo: deps.VerificationRepo,
		UserRepo:         deps.UserRepo,
		Mailer:           deps.Mailer,
		OTPTTL:           cfg.OTPTTL,
	})
	userSvc := user.NewService(user.ServiceDeps{
		UserRepo:    deps.UserRepo,
		CodeIssuer:  authSvc,
		TokenSigner: deps.JWTProvider,
	})
	journalSvc := journal.NewService(deps.JournalRepo, deps.S3Store, cfg.SignedURLTTL)
	colorSvc := color.NewService(deps.ColorRepo, deps.S3Store, cfg.SignedURLTTL)
	fileSvc := fileapp.NewService(deps.FileRepo, deps.S3Store, cfg.SignedURLTTL)

	userH := handler.NewUserHandler(userSvc, authSvc)
	journalH := handler.NewJournalHandler(journalSvc)
	colorH := handler.NewColorHandler(colorSvc)
	fileH := handler.NewFileHandler(fileSvc)

	// ── Public routes ────────────────────────────────────────────────────────
	r.Get("/health-check/ping", handler.Ping)
	r.With(sensitiveRL.Limit).Post("/register", userH.Register)
	r.With(sensitiveRL.Limit).Post("/verifyOTP", userH.VerifyOTP)
	r.With(sensitiveRL.Limit).Post("/resendOTP", userH.ResendOTP)
	r.Post("/loginAdmin", userH.LoginAdmin)
	r.Post("/loginJoury", userH.LoginJoury)
	r.Post("/updateInfo", userH.UpdateInfo)
	r.Post("/updateSocialInfo", userH.UpdateSocialInfo)

	r.Post("/createJournal", journalH.Create)
	r.Get("/getJournals", journalH.List)
	r.Get("/getJournal", journalH.Latest)
	r.Get("/getJournalById/{id}", journalH.Get)
	r.Post("/updateJournal", journalH.Update)
	r.Post("/deleteJournal", journalH.Delete)
	r.Post("/uploadArticlePhoto/{id}", journalH.UploadImage)

	r.Post("/createColor", colorH.Create)
	r.Get("/getColors", colorH.List)
	r.Get("/getColorsNames", colorH.Names)
	r.Get("/getColorById/{id}", colorH.Get)
	r.Post("/updateColor", colorH.Update)
	r.Post("/deleteColor", colorH.Delete)
	r.Post("/uploadColor/{id}", colorH.UploadImage)

	r.Post("/uploadFile", fileH.Upload)
	r.Get("/getFiles", fileH.List)
	r.Get("/getFile/{id}", fileH.Get)
	r.Delete("/deleteFile/{id}", fileH.Delete)

	// ── Authenticated routes ─────────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(authMw)
		r.Get("/getUserByToken", userH.GetUserByToken)
	})

	return r
}
