// Command server runs the academy HTTP API. It wires stores, services and
// handlers, then owns the server lifecycle; business logic lives under
// internal.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"academy/internal/articles"
	"academy/internal/auth"
	"academy/internal/categories"
	"academy/internal/contact"
	"academy/internal/courses"
	"academy/internal/enrollments"
	"academy/internal/faq"
	"academy/internal/feedback"
	"academy/internal/httpapi"
	jwttoken "academy/internal/jwt_token"
	"academy/internal/levels"
	"academy/internal/platform/config"
	"academy/internal/platform/httpserver"
	"academy/internal/platform/logger"
	"academy/internal/platform/metrics"
	"academy/internal/platform/middleware"
	"academy/internal/platform/postgres"
	"academy/internal/platform/redis"
	"academy/internal/pricing"
	"academy/internal/specialities"
	"academy/internal/trainers"
	"academy/internal/users"
	"academy/internal/validation"
)

type stores struct {
	users        users.Store
	roles        users.RoleStore
	levels       levels.Store
	specialities specialities.Store
	categories   categories.Store
	faq          faq.Store
	trainers     trainers.Store
	pricing      pricing.Store
	contact      contact.Store
	courses      courses.Store
	articles     articles.Store
	enrollments  enrollments.Store
	feedback     feedback.Store
}

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	var st stores
	var db *sql.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		st = stores{
			users:        users.NewPostgresStore(db),
			roles:        users.NewPostgresRoleStore(db),
			levels:       levels.NewPostgresStore(db),
			specialities: specialities.NewPostgresStore(db),
			categories:   categories.NewPostgresStore(db),
			faq:          faq.NewPostgresStore(db),
			trainers:     trainers.NewPostgresStore(db),
			pricing:      pricing.NewPostgresStore(db),
			contact:      contact.NewPostgresStore(db),
			courses:      courses.NewPostgresStore(db),
			articles:     articles.NewPostgresStore(db),
			enrollments:  enrollments.NewPostgresStore(db),
			feedback:     feedback.NewPostgresStore(db),
		}
		log.Info("using postgres stores")
	} else {
		st = stores{
			users:        users.NewInMemoryStore(),
			roles:        users.NewInMemoryRoleStore(),
			levels:       levels.NewInMemoryStore(),
			specialities: specialities.NewInMemoryStore(),
			categories:   categories.NewInMemoryStore(),
			faq:          faq.NewInMemoryStore(),
			trainers:     trainers.NewInMemoryStore(),
			pricing:      pricing.NewInMemoryStore(),
			contact:      contact.NewInMemoryStore(),
			courses:      courses.NewInMemoryStore(),
			articles:     articles.NewInMemoryStore(),
			enrollments:  enrollments.NewInMemoryStore(),
			feedback:     feedback.NewInMemoryStore(),
		}
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	var trl auth.TokenRevocationList = auth.NewMemoryTRL()
	redisClient, err := redis.New(ctx, cfg.RedisAddr)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		trl = auth.NewRedisTRL(redisClient.Client)
		log.Info("using redis token revocation list", "addr", cfg.RedisAddr)
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	userSvc := users.NewService(st.users, st.roles)
	jwtSvc := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer)
	authSvc := auth.NewService(userSvc, jwtSvc, trl, cfg.AccessTokenTTL)

	pipe := httpapi.NewPipeline(authSvc, httpapi.NewAuthorizer(userSvc), validation.NewRegistry(), log)

	photoStorage, err := trainers.NewLocalDiskStorage(cfg.UploadDir, "/uploads")
	if err != nil {
		return err
	}

	levelSvc := levels.NewService(st.levels)
	specialitySvc := specialities.NewService(st.specialities)
	categorySvc := categories.NewService(st.categories)
	faqSvc := faq.NewService(st.faq)
	trainerSvc := trainers.NewService(st.trainers, photoStorage)
	pricingSvc := pricing.NewService(st.pricing)
	contactSvc := contact.NewService(st.contact)
	courseSvc := courses.NewService(st.courses)
	articleSvc := articles.NewService(st.articles)
	enrollmentSvc := enrollments.NewService(st.enrollments, userSvc, courseSvc)
	feedbackSvc := feedback.NewService(st.feedback, courseSvc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS)
	r.Use(middleware.Instrument(m))

	auth.NewHandler(authSvc, pipe, log, m).Register(r)
	users.NewHandler(userSvc, pipe, log, m).Register(r)
	levels.NewHandler(levelSvc, pipe, log, m).Register(r)
	specialities.NewHandler(specialitySvc, pipe, log, m).Register(r)
	categories.NewHandler(categorySvc, pipe, log, m).Register(r)
	faq.NewHandler(faqSvc, pipe, log, m).Register(r)
	trainers.NewHandler(trainerSvc, pipe, log, m).Register(r)
	pricing.NewHandler(pricingSvc, pipe, log, m).Register(r)
	contact.NewHandler(contactSvc, pipe, log, m).Register(r)
	courses.NewHandler(courseSvc, pipe, log, m).Register(r)
	articles.NewHandler(articleSvc, pipe, log, m).Register(r)
	enrollments.NewHandler(enrollmentSvc, pipe, log, m).Register(r)
	feedback.NewHandler(feedbackSvc, pipe, log, m).Register(r)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				httpapi.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		httpapi.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	srv := httpserver.New(cfg.Addr, r)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting academy server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
