package titles

import (
	"strings"
	"testing"

	"thenetwork-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeInterests(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "nil", in: nil, want: []string{}},
		{name: "lowercases and trims", in: []string{"  Jazz ", "HIKING"}, want: []string{"jazz", "hiking"}},
		{name: "dedupes keeping first", in: []string{"jazz", "Jazz", "art"}, want: []string{"jazz", "art"}},
		{name: "caps at three", in: []string{"a", "b", "c", "d"}, want: []string{"a", "b", "c"}},
		{name: "skips blanks", in: []string{"", "  ", "chess"}, want: []string{"chess"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeInterests(tt.in))
		})
	}
}

func TestGenerate_VenueAlwaysPresent(t *testing.T) {
	ctx := Context{
		ActivityType:    models.ActivityCoffee,
		SharedInterests: []string{"jazz"},
		VenueName:       "Blue Bottle",
		InviteeName:     "Sam Lee",
	}

	first := Generate(ctx)
	assert.Contains(t, first, "Blue Bottle")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Generate(ctx))
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	for _, activity := range models.ActivityTypes {
		ctx := Context{ActivityType: activity, SharedInterests: []string{"Film", "chess"}, InviteeName: "Ana"}
		assert.Equal(t, Generate(ctx), Generate(ctx), string(activity))
	}
}

func TestGenerate_Shape(t *testing.T) {
	contexts := []Context{
		{},
		{ActivityType: "unknown-kind"},
		{ActivityType: models.ActivityMusic, SharedInterests: []string{"music", "music"}},
		{ActivityType: models.ActivityStudy, InviteeSchool: "UCLA"},
		{ActivityType: models.ActivityGames, SharedInterests: []string{"chess", "go", "poker"}, VenueName: "Board Room"},
	}
	for _, c := range contexts {
		title := Generate(c)
		require.GreaterOrEqual(t, len([]rune(title)), 3, "%+v", c)
		assert.Equal(t, strings.ToUpper(title[:1]), title[:1], title)
		assert.Equal(t, strings.Join(strings.Fields(title), " "), title)
	}
}

func TestGenerate_InterestPlaceholderNeedsInterest(t *testing.T) {
	for _, activity := range models.ActivityTypes {
		title := Generate(Context{ActivityType: activity})
		assert.NotContains(t, title, "{")
		assert.NotContains(t, strings.ToLower(title), " and  ")
	}
}

func TestPool(t *testing.T) {
	bare := pool(prepare(Context{ActivityType: models.ActivityCoffee}))
	assert.Len(t, bare, 3)

	full := pool(prepare(Context{
		ActivityType:    models.ActivityCoffee,
		SharedInterests: []string{"jazz", "film"},
		VenueName:       "Blue Bottle",
		InviteeName:     "Sam",
		InviteeSchool:   "UCLA",
	}))
	assert.Len(t, full, 8)
	assert.Contains(t, full, inviteeTemplate)
	assert.Contains(t, full, venueTemplate)
	assert.Contains(t, full, schoolTemplate)
	assert.Contains(t, full, secondaryTemplate)
}

func TestPolish(t *testing.T) {
	tests := []struct {
		name  string
		title string
		f     fields
		want  string
	}{
		{
			name:  "adjacent duplicate words",
			title: "coffee Coffee catch-up",
			f:     fields{activity: models.ActivityCoffee},
			want:  "Coffee catch-up",
		},
		{
			name:  "repeated interest",
			title: "music and music",
			f:     fields{activity: models.ActivityMusic, interests: []string{"music"}},
			want:  "Music",
		},
		{
			name:  "collapses whitespace",
			title: "  drinks   after  class ",
			f:     fields{activity: models.ActivityDrinks},
			want:  "Drinks after class",
		},
		{
			name:  "short falls back to venue",
			title: "a",
			f:     fields{venue: "Blue Bottle", interests: []string{"jazz"}},
			want:  "Meet at Blue Bottle",
		},
		{
			name:  "short falls back to interest",
			title: "",
			f:     fields{interests: []string{"jazz"}, invitee: "Sam"},
			want:  "Connect over jazz",
		},
		{
			name:  "short falls back to invitee",
			title: "ok",
			f:     fields{invitee: "Sam"},
			want:  "Meet Sam",
		},
		{
			name:  "generic fallback",
			title: "",
			f:     fields{},
			want:  genericTitle,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, polish(tt.title, tt.f))
		})
	}
}

func TestSeedSeparatesFields(t *testing.T) {
	a := seed(fields{venue: "ab", invitee: "c"})
	b := seed(fields{venue: "a", invitee: "bc"})
	assert.NotEqual(t, a, b)
}
