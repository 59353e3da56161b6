package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Conflicts and availability
	r.HandleFunc("/api/conflicts", deps.ConflictHandler.DetectConflicts).Methods("POST")
	r.HandleFunc("/api/availability/check", deps.ConflictHandler.CheckAvailability).Methods("POST")
	r.HandleFunc("/api/availability/suggestions", deps.ConflictHandler.SuggestTimeSlots).Methods("POST")
	r.HandleFunc("/api/availability/next", deps.ConflictHandler.FindNextSlot).Methods("POST")

	// Highlights
	r.HandleFunc("/api/highlights/stats", deps.HighlightHandler.GetStats).Methods("POST")
	r.HandleFunc("/api/highlights/prompt", deps.HighlightHandler.GetDailyPrompt).Methods("POST")
	r.HandleFunc("/api/highlights/prompt/{kind}", deps.HighlightHandler.GetPrompt).Methods("POST")

	// Quick add
	r.HandleFunc("/api/quickadd/parse", deps.QuickAddHandler.Parse).Methods("POST")
	r.HandleFunc("/api/quickadd/suggestions", deps.QuickAddHandler.GetSuggestions).Methods("GET")

	r.Handle("/metrics", deps.Metrics.Handler()).Methods("GET")
}
