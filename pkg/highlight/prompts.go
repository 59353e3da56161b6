package highlight

import (
	"fmt"
	"sort"
	"time"

	"github.com/dayplanner/dayplanner/pkg/event"
)

// canonicalPromptChance is the probability of the canonical weekday phrasing over the seasonal one.
const canonicalPromptChance = 0.7

// discoveryThreshold is the number of highlights needed before patterns are reported.
const discoveryThreshold = 5

type Season int

const (
	Winter Season = iota
	Spring
	Summer
	Fall
)

func SeasonOf(month time.Month) Season {
	switch month {
	case time.December, time.January, time.February:
		return Winter
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	default:
		return Fall
	}
}

func (s Season) String() string {
	return [...]string{"winter", "spring", "summer", "fall"}[s]
}

type weekdayTheme struct {
	category  string
	canonical string
	seasonal  map[Season]string
}

var weekdayThemes = map[time.Weekday]weekdayTheme{
	time.Sunday: {
		category:  "reflection",
		canonical: "Looking back on today, what moment felt the most like you?",
		seasonal: map[Season]string{
			Winter: "What quiet moment kept you warm today?",
			Spring: "What started to bloom in your life today?",
			Summer: "Which slow summer moment do you want to keep?",
			Fall:   "What are you ready to let go of, like the leaves?",
		},
	},
	time.Monday: {
		category:  "gratitude",
		canonical: "What are you grateful for from today?",
		seasonal: map[Season]string{
			Winter: "Who or what brought a little light to this winter day?",
			Spring: "What fresh start are you thankful for today?",
			Summer: "What sunny moment are you grateful for today?",
			Fall:   "What are you harvesting gratitude for today?",
		},
	},
	time.Tuesday: {
		category:  "learning",
		canonical: "What did you learn today, big or small?",
		seasonal: map[Season]string{
			Winter: "What did you discover while staying in today?",
			Spring: "What new idea sprouted today?",
			Summer: "What did today teach you while things were in full swing?",
			Fall:   "What lesson are you bringing into the colder months?",
		},
	},
	time.Wednesday: {
		category:  "momentum",
		canonical: "What moved forward for you today?",
		seasonal: map[Season]string{
			Winter: "What kept you going through the dark afternoon?",
			Spring: "What gained momentum with the longer days?",
			Summer: "What progress made the most of the long daylight?",
			Fall:   "What did you make steady progress on today?",
		},
	},
	time.Thursday: {
		category:  "connection",
		canonical: "Who made your day better today?",
		seasonal: map[Season]string{
			Winter: "Who did you share a warm moment with today?",
			Spring: "Which conversation felt like a breath of fresh air?",
			Summer: "Who did you spend a bright moment with today?",
			Fall:   "Who did you feel close to today?",
		},
	},
	time.Friday: {
		category:  "joy",
		canonical: "What made you smile today?",
		seasonal: map[Season]string{
			Winter: "What cozy moment made you smile today?",
			Spring: "What little joy surprised you today?",
			Summer: "What was the most fun part of your summer day?",
			Fall:   "What simple pleasure did you enjoy today?",
		},
	},
	time.Saturday: {
		category:  "adventure",
		canonical: "What did you explore or try for the first time today?",
		seasonal: map[Season]string{
			Winter: "What winter adventure, even a tiny one, did you have today?",
			Spring: "Where did spring take you today?",
			Summer: "What summer adventure made today memorable?",
			Fall:   "What did you discover out in the crisp air today?",
		},
	},
}

var milestonePrompts = map[int]string{
	3:   "Three days in a row! What has writing highlights shown you so far?",
	7:   "A full week of highlights! What was the best moment of this streak?",
	14:  "Two weeks strong. What keeps you coming back to this habit?",
	30:  "30 days of highlights! How has noticing the good changed your days?",
	50:  "50 days! Which highlight from this streak would you relive?",
	100: "100 days of highlights. What would you tell yourself from day one?",
}

var eventTypePriority = []event.Type{event.Social, event.Work, event.SoloDate, event.Health, event.DeepWork}

var eventPrompts = map[event.Type]string{
	event.Social:   "How was %s? What made the time together special?",
	event.Work:     "What went well at %s today?",
	event.SoloDate: "You took time for yourself with %s. What did you enjoy most?",
	event.Health:   "How did you feel after %s?",
	event.DeepWork: "What did you get done during %s?",
}

const completedEventPrompt = "How did %s go? Was there a moment worth remembering?"
const upcomingEventPrompt = "You have something planned later today. What are you looking forward to?"

// DailyPrompt picks the prompt for today's highlight. Events that already ended today take
// precedence, then streak milestones, then the weekday theme.
func (s *Service) DailyPrompt(entries []DayEntry, events []event.Event) Prompt {
	if len(events) > 0 {
		if prompt, ok := s.eventPrompt(events); ok {
			return prompt
		}
	}

	streak := s.CurrentStreak(entries)
	if text, ok := milestonePrompts[streak]; ok {
		return Prompt{Text: text, Kind: KindMilestone, Category: fmt.Sprintf("%d-day", streak)}
	}

	return s.weekdayPrompt()
}

func (s *Service) eventPrompt(events []event.Event) (Prompt, bool) {
	now := s.clock.Now()
	today := s.dayNumber(now)

	completed := make([]event.Event, 0, len(events))
	upcoming := false
	for _, e := range events {
		if s.dayNumber(e.Start) != today {
			continue
		}
		if e.HasEnded(now) {
			completed = append(completed, e)
		} else {
			upcoming = true
		}
	}

	for _, eventType := range eventTypePriority {
		for _, e := range completed {
			if e.Type == eventType {
				return newEventPrompt(eventPrompts[eventType], e), true
			}
		}
	}
	if len(completed) > 0 {
		return newEventPrompt(completedEventPrompt, completed[0]), true
	}
	if upcoming {
		return Prompt{Text: upcomingEventPrompt, Kind: KindEvent}, true
	}
	return Prompt{}, false
}

func newEventPrompt(format string, e event.Event) Prompt {
	title := e.Title
	if title == "" {
		title = "your " + e.TypeTag() + " event"
	}
	return Prompt{Text: fmt.Sprintf(format, title), Kind: KindEvent, Category: e.TypeTag(), Event: &e}
}

func (s *Service) weekdayPrompt() Prompt {
	now := s.clock.Now()
	theme := weekdayThemes[now.Weekday()]
	text := theme.canonical
	if s.random.Float64() >= canonicalPromptChance {
		text = theme.seasonal[SeasonOf(now.Month())]
	}
	return Prompt{Text: text, Kind: KindWeekday, Category: theme.category}
}

var weeklyReflectionPrompts = [][]string{
	{
		"This week is still a blank page. What is one moment you want to remember?",
		"No highlights yet this week. What small thing went right today?",
	},
	{
		"You've started the week with a highlight. What else stood out since then?",
		"A good start to the week. What would make the rest of it great?",
	},
	{
		"Your week is filling up with good moments. Which one surprised you?",
		"Looking at this week's highlights, what do they have in common?",
	},
	{
		"Almost every day this week has a highlight. What made this week special?",
		"What a week! Which highlight would you pick as the week's best?",
	},
}

// WeeklyReflectionPrompt reflects on how many highlights were written this week.
func (s *Service) WeeklyReflectionPrompt(entries []DayEntry) Prompt {
	count := len(s.HighlightsForWeek(entries, s.clock.Now()))
	var bucket []string
	switch {
	case count == 0:
		bucket = weeklyReflectionPrompts[0]
	case count <= 2:
		bucket = weeklyReflectionPrompts[1]
	case count <= 5:
		bucket = weeklyReflectionPrompts[2]
	default:
		bucket = weeklyReflectionPrompts[3]
	}
	return Prompt{Text: s.pick(bucket), Kind: KindWeekly}
}

var discoveryStarterPrompts = []string{
	"Keep writing highlights to discover what makes your days good.",
	"A few more highlights and patterns will start to show. What was good today?",
}

// DiscoveryPrompt points out patterns in mood and weekday of past highlights.
func (s *Service) DiscoveryPrompt(entries []DayEntry) Prompt {
	days := s.highlighted(entries)
	if len(days) < discoveryThreshold {
		return Prompt{Text: s.pick(discoveryStarterPrompts), Kind: KindDiscovery}
	}

	moods := make(map[string]int)
	weekdays := make(map[string]int)
	for _, d := range days {
		if d.entry.MoodEmoji != "" {
			moods[d.entry.MoodEmoji]++
		}
		weekdays[d.entry.Date.In(s.location()).Weekday().String()]++
	}

	candidates := make([]string, 0, 2)
	if mood, ok := s.mostFrequent(moods); ok {
		candidates = append(candidates, fmt.Sprintf("%s shows up most in your highlights. What tends to bring that feeling?", mood))
	}
	if weekday, ok := s.mostFrequent(weekdays); ok {
		candidates = append(candidates, fmt.Sprintf("%ss collect the most highlights. What makes them stand out?", weekday))
	}
	return Prompt{Text: s.pick(candidates), Kind: KindDiscovery}
}

// mostFrequent returns the key with the highest count; ties are broken by the random source.
func (s *Service) mostFrequent(histogram map[string]int) (string, bool) {
	best := 0
	top := make([]string, 0)
	for key, count := range histogram {
		switch {
		case count > best:
			best = count
			top = append(top[:0], key)
		case count == best:
			top = append(top, key)
		}
	}
	if len(top) == 0 {
		return "", false
	}
	sort.Strings(top)
	return s.pick(top), true
}

var encouragingPrompts = map[string][]string{
	"first": {
		"Every streak starts with a single day. What was good about today?",
		"Start small: what is one thing you enjoyed today?",
	},
	"comeback": {
		"Welcome back! What's one good thing from today?",
		"Pick up where you left off. What made today worthwhile?",
	},
	"building": {
		"%d days and counting. Keep it going with today's highlight!",
		"You're on a %d-day streak. What's today's bright spot?",
	},
	"strong": {
		"%d days straight, impressive! What stood out today?",
		"Your %d-day streak shows real commitment. What will you remember from today?",
	},
}

// EncouragingPrompt nudges the user based on their streak and history.
func (s *Service) EncouragingPrompt(entries []DayEntry) Prompt {
	streak := s.CurrentStreak(entries)
	total := s.TotalHighlightDays(entries)

	switch {
	case total == 0:
		return Prompt{Text: s.pick(encouragingPrompts["first"]), Kind: KindEncouraging}
	case streak == 0:
		return Prompt{Text: s.pick(encouragingPrompts["comeback"]), Kind: KindEncouraging}
	case streak < 7:
		return Prompt{Text: fmt.Sprintf(s.pick(encouragingPrompts["building"]), streak), Kind: KindEncouraging}
	default:
		return Prompt{Text: fmt.Sprintf(s.pick(encouragingPrompts["strong"]), streak), Kind: KindEncouraging}
	}
}

func (s *Service) pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[s.random.Intn(len(options))]
}
