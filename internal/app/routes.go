package app

import (
	"net/http"

	"github.com/cradoe/safetrain/internal/handler"
	"github.com/cradoe/safetrain/internal/metrics"
	"github.com/cradoe/safetrain/internal/middleware"
)

func (app *Application) routes(limiter *middleware.RateLimiter) http.Handler {
	mux := http.NewServeMux()

	middlewareRepo := middleware.New(app.errorHandler, app.Logger, app.sessions)

	authHandler := handler.NewAuthHandler(&handler.AuthHandler{
		UserRepo:     app.DB.User(),
		ActivityRepo: app.DB.Activity(),
		Helper:       app.helper,
		Mailer:       app.Mailer,
		Publisher:    app.Publisher,
		Sessions:     app.sessions,
		Hasher:       app.hasher,
		Config:       &app.Config,
		Logger:       app.Logger,
		ErrHandler:   app.errorHandler,
	})

	userHandler := handler.NewUserHandler(&handler.UserHandler{
		UserRepo:     app.DB.User(),
		ActivityRepo: app.DB.Activity(),
		Helper:       app.helper,
		ErrHandler:   app.errorHandler,
	})

	kycHandler := handler.NewKycHandler(&handler.KycHandler{
		KycRepo:      app.DB.KYC(),
		ActivityRepo: app.DB.Activity(),
		Helper:       app.helper,
		Publisher:    app.Publisher,
		ErrHandler:   app.errorHandler,
	})

	courseHandler := handler.NewCourseHandler(&handler.CourseHandler{
		CourseRepo:   app.DB.Course(),
		ProgressRepo: app.DB.Progress(),
		UserRepo:     app.DB.User(),
		Helper:       app.helper,
		Publisher:    app.Publisher,
		ErrHandler:   app.errorHandler,
	})

	healthHandler := handler.NewHealthHandler(&handler.HealthHandler{
		DB:         app.DB,
		ErrHandler: app.errorHandler,
	})

	mux.HandleFunc("GET /status", healthHandler.HandleHealthCheck)
	mux.Handle("GET /metrics", metrics.Handler())

	// account
	mux.HandleFunc("POST /user/signup", authHandler.HandleAuthSignup)
	mux.HandleFunc("POST /user/login", limiter.Limit(authHandler.HandleAuthLogin))
	mux.HandleFunc("POST /user/signin", limiter.Limit(authHandler.HandleAuthSignin))
	mux.HandleFunc("POST /user/password_update", authHandler.HandlePasswordUpdate)
	mux.HandleFunc("POST /user/kyc_verification", kycHandler.HandleKycVerification)
	mux.HandleFunc("POST /user/ui_update", userHandler.HandleUIUpdate)

	// session
	mux.HandleFunc("GET /api/check-auth", authHandler.HandleCheckAuth)
	mux.HandleFunc("POST /api/logout", authHandler.HandleLogout)

	// training
	mux.HandleFunc("GET /api/courses", courseHandler.HandleCourses)
	mux.HandleFunc("GET /api/user-progress/{userId}", courseHandler.HandleUserProgress)
	mux.HandleFunc("POST /api/submit-quiz", courseHandler.HandleSubmitQuiz)
	mux.HandleFunc("POST /api/complete-training", userHandler.HandleCompleteTraining)
	mux.HandleFunc("GET /api/user/{id}", userHandler.HandleGetUser)

	cors := middleware.CORS(app.Config.Cors.AllowedOrigins)

	return middlewareRepo.LogAccess(middlewareRepo.RecoverPanic(cors(middlewareRepo.Authenticate(middlewareRepo.RecordRoute(mux)))))
}
