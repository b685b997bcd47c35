package app

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/meetocure/admin-api/internal/config"
	appointmenthandler "github.com/meetocure/admin-api/internal/handler/appointment"
	authhandler "github.com/meetocure/admin-api/internal/handler/auth"
	doctorhandler "github.com/meetocure/admin-api/internal/handler/doctor"
	"github.com/meetocure/admin-api/internal/handler/health"
	hospitalhandler "github.com/meetocure/admin-api/internal/handler/hospital"
	patienthandler "github.com/meetocure/admin-api/internal/handler/patient"
	promhandler "github.com/meetocure/admin-api/internal/handler/prometheus"
	settingshandler "github.com/meetocure/admin-api/internal/handler/settings"
	statshandler "github.com/meetocure/admin-api/internal/handler/stats"
	userhandler "github.com/meetocure/admin-api/internal/handler/user"
	"github.com/meetocure/admin-api/internal/repository"
	"github.com/meetocure/admin-api/internal/router"
	"github.com/meetocure/admin-api/internal/service/admin"
	"github.com/meetocure/admin-api/internal/service/appointment"
	"github.com/meetocure/admin-api/internal/service/doctor"
	"github.com/meetocure/admin-api/internal/service/event"
	"github.com/meetocure/admin-api/internal/service/hospital"
	"github.com/meetocure/admin-api/internal/service/patient"
	"github.com/meetocure/admin-api/internal/service/resolver"
	"github.com/meetocure/admin-api/internal/service/settings"
	"github.com/meetocure/admin-api/internal/service/stats"
	"github.com/meetocure/admin-api/pkg/circuitbreaker"
	"github.com/meetocure/admin-api/pkg/httputil"
	"github.com/meetocure/admin-api/pkg/messaging"
	"github.com/meetocure/admin-api/pkg/metrics"
	"github.com/meetocure/admin-api/pkg/security"
)

// Options carries what has to exist before the services can be built.
// Broker, Registry and Metrics are optional.
type Options struct {
	Config   *config.Config
	Repos    *repository.Repositories
	Broker   messaging.Broker
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
}

// App holds the wired services and the HTTP router
type App struct {
	Admins       *admin.Service
	Doctors      *doctor.Service
	Hospitals    *hospital.Service
	Patients     *patient.Service
	Appointments *appointment.Service
	Settings     *settings.Service
	Stats        *stats.Service

	Router *router.Router
}

func New(opts Options) *App {
	cfg := opts.Config
	repos := opts.Repos

	httputil.SetExposeErrors(cfg.Server.ExposeErrors)

	events := event.NewService(opts.Broker, cfg.Redis.Channel, opts.Metrics)
	if opts.Broker != nil {
		events.WithBreaker(circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "event-broker",
			MaxFailures: cfg.Redis.BreakerFailures,
			Timeout:     cfg.Redis.BreakerCooldown,
		}))
	}
	hasher := security.NewBcryptHasher(cfg.Security.BcryptCost)
	res := resolver.New(repos)

	a := &App{
		Admins:       admin.NewService(repos.Admins, hasher, events),
		Doctors:      doctor.NewService(repos, res, hasher, events),
		Hospitals:    hospital.NewService(repos, res, hasher, events),
		Patients:     patient.NewService(repos, res, events),
		Appointments: appointment.NewService(repos.Appointments, res, events),
		Settings:     settings.NewService(repos.Settings, events, cfg.Settings.CacheTTL),
		Stats:        stats.NewService(repos),
	}

	var metricsH *promhandler.Handler
	if cfg.Metrics.Enabled && opts.Registry != nil {
		metricsH = promhandler.New(cfg.Metrics.Namespace, opts.Registry)
	}

	a.Router = router.NewRouter(
		router.Config{
			Mode:         cfg.Server.Mode,
			CORSOrigins:  cfg.CORS.AllowedOrigins,
			MaxBodyBytes: cfg.Server.MaxBodyBytes,
			HSTS:         cfg.Server.HSTS,
		},
		health.NewHandler(repos.Health),
		metricsH,
		authhandler.NewHandler(a.Admins),
		userhandler.NewHandler(a.Admins),
		doctorhandler.NewHandler(a.Doctors),
		hospitalhandler.NewHandler(a.Hospitals),
		patienthandler.NewHandler(a.Patients),
		appointmenthandler.NewHandler(a.Appointments),
		settingshandler.NewHandler(a.Settings),
		statshandler.NewHandler(a.Stats),
	)
	a.Router.Setup()
	return a
}
