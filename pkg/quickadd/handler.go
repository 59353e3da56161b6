package quickadd

import (
	"net/http"
	"time"

	"github.com/dayplanner/dayplanner/internal/rest"
	"github.com/dayplanner/dayplanner/internal/utils"
	log "github.com/sirupsen/logrus"
)

type ParseRequestDTO struct {
	Text          string     `json:"text" validate:"required"`
	ReferenceDate *time.Time `json:"referenceDate,omitempty"`
}

type ParsedEventDTO struct {
	Title      string    `json:"title"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Location   string    `json:"location,omitempty"`
	EventType  string    `json:"eventType,omitempty"`
	Confidence float64   `json:"confidence"`
}

type ParseResponseDTO struct {
	Parsed bool            `json:"parsed"`
	Event  *ParsedEventDTO `json:"event,omitempty"`
}

type SuggestionsDTO struct {
	Suggestions []string `json:"suggestions"`
}

type Handler struct {
	parser *Parser
	clock  utils.Clock
}

func NewHandler(parser *Parser, clock utils.Clock) *Handler {
	return &Handler{parser, clock}
}

func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	var request ParseRequestDTO
	if err := rest.DecodeAndValidate(r, &request); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid quick add request", err.Error())
		return
	}

	location := rest.Location(r.Context())
	reference := h.clock.Now().In(location)
	if request.ReferenceDate != nil {
		reference = request.ReferenceDate.In(location)
	}

	parsed := h.parser.ParseAt(request.Text, reference)
	if parsed == nil {
		log.Debugf("Could not understand quick add text: %q", request.Text)
		rest.WriteJSON(w, http.StatusOK, ParseResponseDTO{Parsed: false})
		return
	}

	dto := &ParsedEventDTO{
		Title:      parsed.Title,
		Start:      parsed.Start,
		End:        parsed.End,
		Location:   parsed.Location,
		Confidence: parsed.Confidence,
	}
	if parsed.HasType {
		dto.EventType = parsed.Type.String()
	}
	rest.WriteJSON(w, http.StatusOK, ParseResponseDTO{Parsed: true, Event: dto})
}

func (h *Handler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	location := rest.Location(r.Context())
	at := h.clock.Now().In(location)
	if value := r.URL.Query().Get("time"); value != "" {
		parsed, err := time.Parse(time.RFC3339, value)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid time format", "time must be in RFC3339 format")
			return
		}
		at = parsed.In(location)
	}
	rest.WriteJSON(w, http.StatusOK, SuggestionsDTO{Suggestions: Suggestions(at)})
}
