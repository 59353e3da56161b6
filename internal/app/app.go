package app

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/dayplanner/dayplanner/internal/config"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const configPath = "./config/application.yaml"

// Application wires configuration, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	router *mux.Router
	srv    *http.Server
}

// NewApplication loads the configuration and constructs the HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

func New(cfg config.Application) (*Application, error) {
	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	deps, err := BuildDependencies(cfg, location)
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()
	SetupMiddleware(r, deps, location)
	RegisterRoutes(r, deps)

	srv := &http.Server{
		Handler:      r,
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, router: r, srv: srv}, nil
}

func (a *Application) Handler() http.Handler {
	return a.router
}

// Run starts the HTTP server and blocks.
func (a *Application) Run() error {
	log.Infof("Starting server on %s", a.srv.Addr)
	return a.srv.ListenAndServe()
}
