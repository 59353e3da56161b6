package app

import (
	"net/http"
	"time"

	"github.com/dayplanner/dayplanner/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const timezoneHeader = "X-Timezone"

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, defaultLocation *time.Location) {

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			started := time.Now()
			next.ServeHTTP(w, req)
			log.WithFields(log.Fields{
				"method":   req.Method,
				"path":     req.URL.Path,
				"duration": time.Since(started),
			}).Debug("Handled request")
		})
	})

	r.Use(deps.Metrics.Middleware)

	// Propagate X-Timezone header into context for downstream handlers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			location := defaultLocation
			if name := req.Header.Get(timezoneHeader); name != "" {
				loaded, err := time.LoadLocation(name)
				if err != nil {
					log.Debugf("unknown timezone: %s", name)
					rest.WriteError(w, http.StatusBadRequest, "Invalid timezone", err.Error())
					return
				}
				location = loaded
			}
			next.ServeHTTP(w, req.WithContext(rest.WithLocation(req.Context(), location)))
		})
	})
}
