package quickadd

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dayplanner/dayplanner/internal/utils"
	"github.com/dayplanner/dayplanner/pkg/event"
	log "github.com/sirupsen/logrus"
)

const defaultDuration = 60 * time.Minute

const (
	dayConfidence             = 0.3
	numericDurationConfidence = 0.2
	keywordDurationConfidence = 0.1
	typeConfidence            = 0.1
	locationConfidence        = 0.1
)

// ParsedEvent is the structured form of a quick-add sentence.
type ParsedEvent struct {
	Title      string
	Start      time.Time
	End        time.Time
	Location   string
	Type       event.Type
	HasType    bool
	Confidence float64 // additive heuristic in [0, 1], not a probability
}

// ToEvent converts the parsed result into an event with a new ID.
func (p ParsedEvent) ToEvent() event.Event {
	e := event.New(p.Title, p.Start, p.End, p.Type)
	e.Location = p.Location
	return e
}

type Parser struct {
	clock utils.Clock
}

func NewParser(clock utils.Clock) *Parser {
	return &Parser{clock: clock}
}

// Parse reads input relative to the current time.
func (p *Parser) Parse(input string) *ParsedEvent {
	return p.ParseAt(input, p.clock.Now())
}

// ParseAt reads input relative to reference. It returns nil when no title is left
// once times, days and durations are removed.
func (p *Parser) ParseAt(input string, reference time.Time) *ParsedEvent {
	tokens := tokenize(input)
	confidence := 0.0

	clock, timeMatched, c := extractTime(tokens)
	confidence += c
	if !timeMatched {
		clock = defaultClockTime(reference)
	}

	day := reference
	if offset, ok := extractDay(tokens, reference); ok {
		day = reference.AddDate(0, 0, offset)
		confidence += dayConfidence
	}
	year, month, date := day.Date()
	start := time.Date(year, month, date, clock.hour, clock.minute, 0, 0, reference.Location())

	duration, c := extractDuration(tokens)
	confidence += c

	eventType, hasType := inferType(strings.ToLower(input))
	if hasType {
		confidence += typeConfidence
	}

	location := extractLocation(tokens)
	if location != "" {
		confidence += locationConfidence
	}

	title := extractTitle(tokens)
	if title == "" {
		log.Tracef("quick add input %q has no title left", input)
		return nil
	}

	parsed := &ParsedEvent{
		Title:      title,
		Start:      start,
		End:        start.Add(duration),
		Location:   location,
		Type:       eventType,
		HasType:    hasType,
		Confidence: min(max(confidence, 0), 1),
	}
	log.Tracef("parsed quick add input %q: %+v", input, *parsed)
	return parsed
}

// defaultClockTime is the next full hour after reference, no later than 23:00.
func defaultClockTime(reference time.Time) clockTime {
	return clockTime{hour: min(reference.Hour()+1, 23)}
}

func extractTime(tokens []*token) (clockTime, bool, float64) {
	for _, rule := range timeRules {
		for i := range tokens {
			if !free(tokens, i) {
				continue
			}
			t, width, ok := rule.match(tokens, i)
			if !ok {
				continue
			}
			consume(tokens, i, width)
			consumePreceding(tokens, i, rule.prefixes...)
			log.Tracef("time rule %q matched %q", rule.name, tokens[i].raw)
			return t, true, rule.confidence
		}
	}
	return clockTime{}, false, 0
}

func extractDay(tokens []*token, reference time.Time) (int, bool) {
	for _, rule := range dayRules {
		for i := range tokens {
			if !free(tokens, i) {
				continue
			}
			offset, ok := rule.match(tokens[i].norm, reference)
			if !ok {
				continue
			}
			prefixed := consumePreceding(tokens, i, rule.prefixes...)
			if rule.needsPrefix[tokens[i].norm] && !prefixed {
				continue
			}
			consume(tokens, i, 1)
			log.Tracef("day rule %q matched %q", rule.name, tokens[i].raw)
			return offset, true
		}
	}
	return 0, false
}

// extractDuration sums every numeric duration and duration keyword.
func extractDuration(tokens []*token) (time.Duration, float64) {
	minutes := 0
	numeric, keyword := false, false
	for i := range tokens {
		if !free(tokens, i) {
			continue
		}
		if amount, width, ok := matchNumericDuration(tokens, i); ok {
			minutes = min(minutes+amount, maxDurationMinutes+1)
			numeric = true
			consume(tokens, i, width)
			consumePreceding(tokens, i, "for")
			continue
		}
		if amount, ok := durationKeywords[tokens[i].norm]; ok {
			minutes = min(minutes+amount, maxDurationMinutes+1)
			keyword = true
			consume(tokens, i, 1)
		}
	}

	switch {
	case minutes <= 0:
		return defaultDuration, 0
	case minutes > maxDurationMinutes:
		log.Tracef("duration of %d minutes is too long, using the default", minutes)
		return defaultDuration, 0
	case numeric:
		return time.Duration(minutes) * time.Minute, numericDurationConfidence
	case keyword:
		return time.Duration(minutes) * time.Minute, keywordDurationConfidence
	}
	return defaultDuration, 0
}

func inferType(lower string) (event.Type, bool) {
	for _, entry := range typeTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.eventType, true
			}
		}
	}
	return event.Other, false
}

// extractLocation returns the words following the first "at", "in" or "@" that form a
// usable place name. Location tokens are not consumed and stay in the title.
func extractLocation(tokens []*token) string {
	for i, t := range tokens {
		if t.consumed {
			continue
		}
		var words []string
		switch {
		case t.norm == "at" || t.norm == "in" || t.norm == "@":
			words = placeWords(tokens, i+1)
		case len(t.norm) > 1 && strings.HasPrefix(t.norm, "@"):
			words = append([]string{strings.Trim(t.raw[1:], edgePunctuation)}, placeWords(tokens, i+1)...)
		default:
			continue
		}
		location := strings.Join(words, " ")
		if utf8.RuneCountInString(location) <= 1 || locationStopWords[strings.ToLower(location)] {
			continue
		}
		return location
	}
	return ""
}

// placeWords collects words from tokens[from] up to the next preposition, number,
// am/pm, day word or token claimed by an earlier stage.
func placeWords(tokens []*token, from int) []string {
	var words []string
	for j := from; free(tokens, j); j++ {
		next := tokens[j]
		if next.norm == "" || prepositions[next.norm] || isDayWord(next.norm) {
			break
		}
		if _, isMeridiem := meridiem(next.norm); isMeridiem || unicode.IsDigit([]rune(next.norm)[0]) {
			break
		}
		words = append(words, strings.Trim(next.raw, edgePunctuation))
		if strings.HasSuffix(next.raw, ",") {
			break
		}
	}
	return words
}

func extractTitle(tokens []*token) string {
	var kept []*token
	for _, t := range tokens {
		if !t.consumed {
			kept = append(kept, t)
		}
	}

	// a preposition is orphaned when nothing but another preposition follows it
	var words []string
	for i, t := range kept {
		if prepositions[t.norm] && (i == len(kept)-1 || prepositions[kept[i+1].norm]) {
			continue
		}
		words = append(words, t.raw)
	}

	title := strings.Trim(strings.Join(words, " "), " ,.;:!?-")
	if title == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(title)
	return string(unicode.ToUpper(first)) + title[size:]
}
