package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"conexaoiris/docs" //this is required to generate swagger docs
	"conexaoiris/internal/auth"
	"conexaoiris/internal/mailer"
	"conexaoiris/internal/membership"
	"conexaoiris/internal/notifications"
	"conexaoiris/internal/ratelimiter"
	"conexaoiris/internal/store"
	"conexaoiris/internal/views"
)

type application struct {
	config        config
	store         *store.Storage
	logger        *zap.SugaredLogger
	cld           *cloudinary.Cloudinary
	mailer        mailer.Client
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
	cardCodec     *membership.CardCodec
	push          notifications.PushSender
	views         views.Invalidator
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	apiURL      string
	mail        mailConfig
	frontendURL string
	auth        authConfig
	rateLimiter ratelimiter.Config
	cardSalt    string
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	refreshSecret   string
	secret          string
	accessTokenExp  time.Duration
	refreshTokenExp time.Duration
	iss             string
}

type basicConfig struct {
	user string
	pass string
}

type mailConfig struct {
	fromEmail string
	smtp      smtpConfig
}

type smtpConfig struct {
	host     string
	port     int
	username string
	password string
}

type dbConfig struct {
	addr        string
	maxConns    int
	maxIdleTime string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		// Public routes
		r.Route("/authentication", func(r chi.Router) {
			r.Post("/user", app.registerUserHandler)
			r.Post("/token", app.createTokenHandler)
			r.Post("/refresh", app.refreshTokenHandler)
			r.Post("/reset-password", app.requestResetPasswordHandler)
			r.Patch("/reset-password", app.resetPasswordHandler)
		})

		r.Get("/categories", app.listCategoriesHandler)

		r.Route("/locations", func(r chi.Router) {
			r.With(app.OptionalAuthTokenMiddleware, app.RateLimiterMiddleware).
				Post("/", app.createLocationHandler)
			r.Get("/", app.listLocationsHandler)
			r.With(app.AuthTokenMiddleware).Get("/mine", app.listMyLocationsHandler)
		})

		r.Route("/events", func(r chi.Router) {
			r.With(app.OptionalAuthTokenMiddleware, app.RateLimiterMiddleware).
				Post("/", app.createEventHandler)
			r.Get("/", app.listEventsHandler)
			r.With(app.AuthTokenMiddleware).Get("/mine", app.listMyEventsHandler)
		})

		r.Get("/map/markers", app.mapMarkersHandler)

		r.Route("/profile", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Get("/", app.getProfileHandler)
			r.Put("/", app.updateProfileHandler)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Post("/logout", app.logoutHandler)
			r.Post("/profile-picture", app.uploadProfilePictureHandler)
			r.Post("/push-token", app.savePushTokenHandler)
			r.Delete("/push-token", app.removePushTokenHandler)
		})

		// Admin moderation surface
		r.Route("/admin", func(r chi.Router) {
			r.Use(app.BasicAuthMiddleware())
			r.Get("/event-suggestions", app.adminListEventSuggestionsHandler)
			r.Post("/event-suggestions/{id}/approve", app.adminApproveEventSuggestionHandler)
			r.Post("/event-suggestions/{id}/reject", app.adminRejectEventSuggestionHandler)
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	// Implementing graceful shutdown
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
