package highlight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCsvStatsRendererImpl_RenderStats(t1 *testing.T) {
	type args struct {
		stats      Stats
		highlights []DayEntry
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{
			name: "RenderStats with highlights",
			args: args{
				stats: Stats{CurrentStreak: 2, LongestStreak: 5, TotalDays: 9, ThisWeekCount: 2, ThisMonthCount: 4},
				highlights: []DayEntry{
					{Date: time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), HighlightText: "Picnic, finally", MoodEmoji: "😊"},
					{Date: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), HighlightText: "New recipe"},
				},
			},
			want: "Current streak,2\n" +
				"Longest streak,5\n" +
				"Total days,9\n" +
				"This week,2\n" +
				"This month,4\n" +
				"Date,Highlight,Mood\n" +
				"04/06/2025,\"Picnic, finally\",😊\n" +
				"03/06/2025,New recipe,\n",
		},
		{
			name: "RenderStats without highlights",
			args: args{stats: Stats{}},
			want: "Current streak,0\n" +
				"Longest streak,0\n" +
				"Total days,0\n" +
				"This week,0\n" +
				"This month,0\n" +
				"Date,Highlight,Mood\n",
		},
	}
	for _, tt := range tests {
		t1.Run(tt.name, func(t1 *testing.T) {
			t := NewCsvStatsRenderer()
			got, err := t.RenderStats(tt.args.stats, tt.args.highlights)
			require.NoError(t1, err)
			assert.Equal(t1, tt.want, got)
		})
	}
}
