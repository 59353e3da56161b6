package conflict

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dayplanner/dayplanner/internal/rest"
	"github.com/dayplanner/dayplanner/internal/utils"
	"github.com/dayplanner/dayplanner/pkg/event"
	"github.com/dayplanner/dayplanner/pkg/ics"
	log "github.com/sirupsen/logrus"
)

type ConflictRequestDTO struct {
	Candidate      event.EventDTO   `json:"candidate"`
	ExistingEvents []event.EventDTO `json:"existingEvents" validate:"dive"`
	ExcludingID    string           `json:"excludingId,omitempty"`
	BufferMinutes  *int             `json:"bufferMinutes,omitempty" validate:"omitempty,min=0"`
	CalendarIcs    string           `json:"calendarIcs,omitempty"`
}

type ConflictDTO struct {
	Event    event.EventDTO `json:"event"`
	Severity Severity       `json:"severity"`
}

type ConflictsResponseDTO struct {
	Conflicts    []ConflictDTO `json:"conflicts"`
	HasConflicts bool          `json:"hasConflicts"`
	MostSevere   *Severity     `json:"mostSevere,omitempty"`
}

type AvailabilityRequestDTO struct {
	Start          time.Time        `json:"start" validate:"required"`
	End            time.Time        `json:"end" validate:"required,gtfield=Start"`
	ExistingEvents []event.EventDTO `json:"existingEvents" validate:"dive"`
	BufferMinutes  *int             `json:"bufferMinutes,omitempty" validate:"omitempty,min=0"`
	CalendarIcs    string           `json:"calendarIcs,omitempty"`
}

type AvailabilityResponseDTO struct {
	Available bool `json:"available"`
}

type SuggestionsRequestDTO struct {
	DurationMinutes int              `json:"durationMinutes" validate:"required,min=1,max=1440"`
	Day             time.Time        `json:"day" validate:"required"`
	ExistingEvents  []event.EventDTO `json:"existingEvents" validate:"dive"`
	StartHour       *int             `json:"startHour,omitempty" validate:"omitempty,min=0,max=23"`
	EndHour         *int             `json:"endHour,omitempty" validate:"omitempty,min=1,max=24"`
	BufferMinutes   *int             `json:"bufferMinutes,omitempty" validate:"omitempty,min=0"`
	CalendarIcs     string           `json:"calendarIcs,omitempty"`
}

type SuggestionsResponseDTO struct {
	Slots []time.Time `json:"slots"`
}

type NextSlotRequestDTO struct {
	DurationMinutes    int              `json:"durationMinutes" validate:"required,min=1,max=1440"`
	From               time.Time        `json:"from" validate:"required"`
	ExistingEvents     []event.EventDTO `json:"existingEvents" validate:"dive"`
	SearchDays         *int             `json:"searchDays,omitempty" validate:"omitempty,min=1,max=60"`
	PreferredStartHour *int             `json:"preferredStartHour,omitempty" validate:"omitempty,min=0,max=23"`
	PreferredEndHour   *int             `json:"preferredEndHour,omitempty" validate:"omitempty,min=1,max=24"`
	BufferMinutes      *int             `json:"bufferMinutes,omitempty" validate:"omitempty,min=0"`
	CalendarIcs        string           `json:"calendarIcs,omitempty"`
}

type NextSlotResponseDTO struct {
	Found bool       `json:"found"`
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// Handler serves conflict checks and free slot searches. Hour bounds and search
// length default to the configured values when a request leaves them out.
type Handler struct {
	detector         Detector
	workdayStartHour int
	workdayEndHour   int
	search           SlotSearch
}

func NewHandler(detector Detector, workdayStartHour, workdayEndHour int, search SlotSearch) *Handler {
	return &Handler{
		detector:         detector,
		workdayStartHour: workdayStartHour,
		workdayEndHour:   workdayEndHour,
		search:           search,
	}
}

func (h *Handler) DetectConflicts(w http.ResponseWriter, r *http.Request) {
	var request ConflictRequestDTO
	if err := rest.DecodeAndValidate(r, &request); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid conflict request", err.Error())
		return
	}
	candidate := event.FromDTO(request.Candidate)

	location := rest.Location(r.Context())
	window := ics.Window{
		Start: utils.StartOfDay(candidate.Start.In(location)),
		End:   utils.StartOfDay(candidate.End.In(location)).AddDate(0, 0, 1),
	}
	existing, err := mergeCalendar(request.ExistingEvents, request.CalendarIcs, window)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid calendar", err.Error())
		return
	}

	detector := h.detectorFor(request.BufferMinutes)
	conflicts := detector.DetectConflicts(candidate, existing, request.ExcludingID)
	log.Debugf("Found %d conflicts for candidate %q among %d events", len(conflicts), candidate.Title, len(existing))

	response := ConflictsResponseDTO{
		Conflicts:    make([]ConflictDTO, 0, len(conflicts)),
		HasConflicts: len(conflicts) > 0,
	}
	for _, c := range conflicts {
		response.Conflicts = append(response.Conflicts, ConflictDTO{Event: event.ToDTO(c.Event), Severity: c.Severity})
	}
	if len(conflicts) > 0 {
		response.MostSevere = &conflicts[0].Severity
	}
	rest.WriteJSON(w, http.StatusOK, response)
}

func (h *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var request AvailabilityRequestDTO
	if err := rest.DecodeAndValidate(r, &request); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid availability request", err.Error())
		return
	}

	location := rest.Location(r.Context())
	window := ics.Window{
		Start: utils.StartOfDay(request.Start.In(location)),
		End:   utils.StartOfDay(request.End.In(location)).AddDate(0, 0, 1),
	}
	existing, err := mergeCalendar(request.ExistingEvents, request.CalendarIcs, window)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid calendar", err.Error())
		return
	}

	available := h.detectorFor(request.BufferMinutes).IsTimeSlotAvailable(request.Start, request.End, existing)
	rest.WriteJSON(w, http.StatusOK, AvailabilityResponseDTO{Available: available})
}

func (h *Handler) SuggestTimeSlots(w http.ResponseWriter, r *http.Request) {
	var request SuggestionsRequestDTO
	if err := rest.DecodeAndValidate(r, &request); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid suggestions request", err.Error())
		return
	}
	startHour := valueOr(request.StartHour, h.workdayStartHour)
	endHour := valueOr(request.EndHour, h.workdayEndHour)
	if endHour <= startHour {
		rest.WriteError(w, http.StatusBadRequest, "Invalid suggestions request", "endHour must be after startHour")
		return
	}

	day := utils.StartOfDay(request.Day.In(rest.Location(r.Context())))
	existing, err := mergeCalendar(request.ExistingEvents, request.CalendarIcs, ics.Window{Start: day, End: day.AddDate(0, 0, 1)})
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid calendar", err.Error())
		return
	}

	duration := time.Duration(request.DurationMinutes) * time.Minute
	slots := h.detectorFor(request.BufferMinutes).SuggestAlternativeTimeSlots(duration, day, existing, startHour, endHour)
	rest.WriteJSON(w, http.StatusOK, SuggestionsResponseDTO{Slots: slots})
}

func (h *Handler) FindNextSlot(w http.ResponseWriter, r *http.Request) {
	var request NextSlotRequestDTO
	if err := rest.DecodeAndValidate(r, &request); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid next slot request", err.Error())
		return
	}
	search := SlotSearch{
		Days:      valueOr(request.SearchDays, h.search.Days),
		StartHour: valueOr(request.PreferredStartHour, h.search.StartHour),
		EndHour:   valueOr(request.PreferredEndHour, h.search.EndHour),
	}
	if search.EndHour <= search.StartHour {
		rest.WriteError(w, http.StatusBadRequest, "Invalid next slot request", "preferredEndHour must be after preferredStartHour")
		return
	}

	from := request.From.In(rest.Location(r.Context()))
	window := ics.Window{Start: utils.StartOfDay(from), End: utils.StartOfDay(from).AddDate(0, 0, search.Days+1)}
	existing, err := mergeCalendar(request.ExistingEvents, request.CalendarIcs, window)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid calendar", err.Error())
		return
	}

	duration := time.Duration(request.DurationMinutes) * time.Minute
	start, found := h.detectorFor(request.BufferMinutes).FindNextAvailableSlot(duration, from, existing, search)
	if !found {
		log.Debugf("No free %v slot within %d days of %v", duration, search.Days, from)
		rest.WriteJSON(w, http.StatusOK, NextSlotResponseDTO{Found: false})
		return
	}
	end := start.Add(duration)
	rest.WriteJSON(w, http.StatusOK, NextSlotResponseDTO{Found: true, Start: &start, End: &end})
}

func (h *Handler) detectorFor(bufferMinutes *int) Detector {
	if bufferMinutes == nil {
		return h.detector
	}
	return h.detector.WithBuffer(time.Duration(*bufferMinutes) * time.Minute)
}

// mergeCalendar combines the supplied events with the events of an optional
// iCalendar payload expanded over window.
func mergeCalendar(dtos []event.EventDTO, calendarIcs string, window ics.Window) ([]event.Event, error) {
	events := event.FromDTOs(dtos)
	if calendarIcs == "" {
		return events, nil
	}
	imported, err := ics.ParseEvents([]byte(calendarIcs), window)
	if err != nil {
		return nil, fmt.Errorf("failed to import calendar: %w", err)
	}
	return append(events, imported...), nil
}

func valueOr(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}
