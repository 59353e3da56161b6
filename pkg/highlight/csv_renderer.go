package highlight

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type StatsRenderer interface {
	RenderStats(stats Stats, highlights []DayEntry) (string, error)
}

type CsvStatsRendererImpl struct {
}

func NewCsvStatsRenderer() *CsvStatsRendererImpl {
	return &CsvStatsRendererImpl{}
}

// RenderStats writes the summary rows followed by one row per highlight.
// highlights are written in the order given.
func (t *CsvStatsRendererImpl) RenderStats(stats Stats, highlights []DayEntry) (string, error) {
	data := [][]string{
		{"Current streak", strconv.Itoa(stats.CurrentStreak)},
		{"Longest streak", strconv.Itoa(stats.LongestStreak)},
		{"Total days", strconv.Itoa(stats.TotalDays)},
		{"This week", strconv.Itoa(stats.ThisWeekCount)},
		{"This month", strconv.Itoa(stats.ThisMonthCount)},
		{"Date", "Highlight", "Mood"},
	}
	for _, entry := range highlights {
		data = append(data, []string{entry.Date.Format("02/01/2006"), entry.HighlightText, entry.MoodEmoji})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
