package player

import (
	"testing"

	"github.com/mauv0809/tap-to-win/internal/apperr"
	"github.com/stretchr/testify/assert"
)

func TestProgress_Validate(t *testing.T) {
	tests := []struct {
		name     string
		progress Progress
		wantErr  string
	}{
		{"zero value", Progress{}, ""},
		{"valid", Progress{TotalMoney: 1, TotalClicks: 2, BestStreak: 3, OwnedPowerUps: []string{"a"}, Achievements: []string{"b"}}, ""},
		{"negative money", Progress{TotalMoney: -1}, "total_money must be non-negative"},
		{"negative clicks", Progress{TotalClicks: -5}, "total_clicks must be non-negative"},
		{"negative streak", Progress{BestStreak: -2}, "best_streak must be non-negative"},
		{"empty power-up", Progress{OwnedPowerUps: []string{"a", ""}}, "owned_power_ups[1]"},
		{"empty achievement", Progress{Achievements: []string{""}}, "achievements[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.progress.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperr.Is(err, apperr.Invalid))
			assert.Contains(t, apperr.Detail(err), tt.wantErr)
		})
	}
}

func TestProgress_Normalize(t *testing.T) {
	p := Progress{OwnedPowerUps: []string{"b", "a", "b", "c", "a"}}.Normalize()
	assert.Equal(t, []string{"b", "a", "c"}, p.OwnedPowerUps)
	assert.NotNil(t, p.Achievements)
	assert.Empty(t, p.Achievements)
}
