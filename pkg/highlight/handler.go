package highlight

import (
	"net/http"
	"time"

	"github.com/dayplanner/dayplanner/internal/rest"
	"github.com/dayplanner/dayplanner/pkg/event"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type DayEntryDTO struct {
	Date          time.Time `json:"date" validate:"required"`
	HighlightText string    `json:"highlightText"`
	MoodEmoji     string    `json:"moodEmoji,omitempty"`
}

type EntriesRequestDTO struct {
	Entries []DayEntryDTO    `json:"entries" validate:"dive"`
	Events  []event.EventDTO `json:"events,omitempty" validate:"dive"`
}

type StatsDTO struct {
	CurrentStreak  int `json:"currentStreak"`
	LongestStreak  int `json:"longestStreak"`
	TotalDays      int `json:"totalDays"`
	ThisWeekCount  int `json:"thisWeekCount"`
	ThisMonthCount int `json:"thisMonthCount"`
}

type PromptDTO struct {
	Text     string          `json:"text"`
	Kind     string          `json:"kind"`
	Category string          `json:"category,omitempty"`
	Event    *event.EventDTO `json:"event,omitempty"`
}

type Handler struct {
	service  *Service
	renderer StatsRenderer
}

func NewHandler(service *Service, renderer StatsRenderer) *Handler {
	return &Handler{service, renderer}
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	var request EntriesRequestDTO
	if err := rest.DecodeAndValidate(r, &request); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid stats request", err.Error())
		return
	}
	service := h.service.In(rest.Location(r.Context()))
	entries := dtosToEntries(request.Entries)
	stats := service.CalculateStats(entries)
	log.Debugf("Calculated highlight stats for %d entries: %+v", len(entries), stats)

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := h.renderer.RenderStats(stats, service.RecentHighlights(entries, len(entries)))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write csv response: %v", err)
		}
		return
	}

	rest.WriteJSON(w, http.StatusOK, StatsDTO{
		CurrentStreak:  stats.CurrentStreak,
		LongestStreak:  stats.LongestStreak,
		TotalDays:      stats.TotalDays,
		ThisWeekCount:  stats.ThisWeekCount,
		ThisMonthCount: stats.ThisMonthCount,
	})
}

func (h *Handler) GetDailyPrompt(w http.ResponseWriter, r *http.Request) {
	var request EntriesRequestDTO
	if err := rest.DecodeAndValidate(r, &request); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid prompt request", err.Error())
		return
	}
	service := h.service.In(rest.Location(r.Context()))
	prompt := service.DailyPrompt(dtosToEntries(request.Entries), event.FromDTOs(request.Events))
	rest.WriteJSON(w, http.StatusOK, promptToDTO(prompt))
}

// GetPrompt serves the weekly, discovery and encouraging prompts.
func (h *Handler) GetPrompt(w http.ResponseWriter, r *http.Request) {
	kind := mux.Vars(r)["kind"]

	var request EntriesRequestDTO
	if err := rest.DecodeAndValidate(r, &request); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid prompt request", err.Error())
		return
	}
	service := h.service.In(rest.Location(r.Context()))
	entries := dtosToEntries(request.Entries)

	var prompt Prompt
	switch PromptKind(kind) {
	case KindWeekly:
		prompt = service.WeeklyReflectionPrompt(entries)
	case KindDiscovery:
		prompt = service.DiscoveryPrompt(entries)
	case KindEncouraging:
		prompt = service.EncouragingPrompt(entries)
	default:
		rest.WriteError(w, http.StatusNotFound, "Unknown prompt kind", "kind must be one of weekly, discovery, encouraging")
		return
	}
	rest.WriteJSON(w, http.StatusOK, promptToDTO(prompt))
}

func dtosToEntries(dtos []DayEntryDTO) []DayEntry {
	entries := make([]DayEntry, 0, len(dtos))
	for _, dto := range dtos {
		entries = append(entries, DayEntry{
			Date:          dto.Date,
			HighlightText: dto.HighlightText,
			MoodEmoji:     dto.MoodEmoji,
		})
	}
	return entries
}

func promptToDTO(p Prompt) PromptDTO {
	dto := PromptDTO{
		Text:     p.Text,
		Kind:     string(p.Kind),
		Category: p.Category,
	}
	if p.Event != nil {
		eventDTO := event.ToDTO(*p.Event)
		dto.Event = &eventDTO
	}
	return dto
}
