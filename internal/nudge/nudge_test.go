package nudge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func on(month time.Month) time.Time {
	return time.Date(2024, month, 10, 0, 0, 0, 0, time.UTC)
}

func TestGenerate(t *testing.T) {
	g := NewGenerator(nil)

	tests := []struct {
		name      string
		state     string
		now       time.Time
		wantTypes []string
		wantCtx   []string
	}{
		{
			name:      "quiet month without state",
			now:       on(time.January),
			wantTypes: []string{},
			wantCtx:   []string{},
		},
		{
			name:      "diwali season in kerala",
			state:     "Kerala",
			now:       on(time.November),
			wantTypes: []string{TypeFestival, TypeStateSpecific},
			wantCtx:   []string{"diwali", "kerala"},
		},
		{
			name:      "april is capped at three",
			state:     "Tamil Nadu",
			now:       on(time.April),
			wantTypes: []string{TypeFestival, TypeFestival, TypeStateSpecific},
			wantCtx:   []string{"holi", "eid", "tamil_nadu"},
		},
		{
			name:      "march tax reminder",
			now:       on(time.March),
			wantTypes: []string{TypeFestival, TypeSeasonal},
			wantCtx:   []string{"holi", "tax_season"},
		},
		{
			name:      "unknown state is skipped",
			state:     "Atlantis",
			now:       on(time.February),
			wantTypes: []string{},
			wantCtx:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nudges := g.Generate(tt.state, tt.now)
			require.LessOrEqual(t, len(nudges), MaxNudges)

			types, ctxs := []string{}, []string{}
			for _, n := range nudges {
				types = append(types, n.Type)
				ctxs = append(ctxs, n.CulturalContext)
			}
			assert.Equal(t, tt.wantTypes, types)
			assert.Equal(t, tt.wantCtx, ctxs)
		})
	}
}

func TestGenerate_Messages(t *testing.T) {
	nudges := NewGenerator(nil).Generate("Kerala", on(time.October))
	require.Len(t, nudges, 3)

	assert.Equal(t, "Diwali Planning", nudges[0].Title)
	assert.Equal(t, "Start saving for Diwali shopping and decorations", nudges[0].Message)
	assert.Equal(t, "create_festival_goal", nudges[0].Action)
	assert.Equal(t, "Durga Puja Planning", nudges[1].Title)
	assert.Equal(t, "Kerala Financial Tip", nudges[2].Title)
	assert.Equal(t, "Popular in Kerala: gold, real_estate", nudges[2].Message)
	assert.Equal(t, "explore_investments", nudges[2].Action)
}
