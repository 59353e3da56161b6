package event

import "time"

type EventDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start" validate:"required"`
	End         time.Time `json:"end" validate:"required"`
	Location    string    `json:"location,omitempty"`
	Type        string    `json:"eventType,omitempty"`
	IsFlexible  bool      `json:"isFlexible"`
	IsTentative bool      `json:"isTentative"`
}

func ToDTO(e Event) EventDTO {
	return EventDTO{
		ID:          e.ID,
		Title:       e.Title,
		Start:       e.Start,
		End:         e.End,
		Location:    e.Location,
		Type:        e.TypeTag(),
		IsFlexible:  e.IsFlexible,
		IsTentative: e.IsTentative,
	}
}

func FromDTO(dto EventDTO) Event {
	e := Event{
		ID:          dto.ID,
		Title:       dto.Title,
		Start:       dto.Start,
		End:         dto.End,
		Location:    dto.Location,
		Type:        ParseType(dto.Type),
		IsFlexible:  dto.IsFlexible,
		IsTentative: dto.IsTentative,
	}
	if e.Type == Other && dto.Type != "" {
		e.CustomType = dto.Type
	}
	return e
}

func FromDTOs(dtos []EventDTO) []Event {
	events := make([]Event, 0, len(dtos))
	for _, dto := range dtos {
		events = append(events, FromDTO(dto))
	}
	return events
}
