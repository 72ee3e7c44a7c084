package venues

import (
	"testing"

	"thenetwork-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNormalizeVenueName(t *testing.T) {
	assert.Equal(t, "joe's", NormalizeVenueName("  Joe's "))
	assert.Equal(t, "", NormalizeVenueName("   "))
}

func TestParseDistanceMiles(t *testing.T) {
	tests := []struct {
		name   string
		in     *string
		want   float64
		wantOK bool
	}{
		{name: "miles", in: strPtr("3.7 mi"), want: 3.7, wantOK: true},
		{name: "integer", in: strPtr("about 2 miles"), want: 2, wantOK: true},
		{name: "leading dot", in: strPtr(".5 mi"), want: 0.5, wantOK: true},
		{name: "first token wins", in: strPtr("1.2 mi (3 min)"), want: 1.2, wantOK: true},
		{name: "nil", in: nil},
		{name: "no number", in: strPtr("nearby")},
		{name: "empty", in: strPtr("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDistanceMiles(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestScoreVenue(t *testing.T) {
	tests := []struct {
		name  string
		venue models.Venue
		want  float64
	}{
		{name: "perfect and close", venue: models.Venue{Rating: 5, Distance: strPtr("0 mi")}, want: 1.0},
		{name: "no distance", venue: models.Venue{Rating: 4.5}, want: 0.54},
		{name: "unparseable distance", venue: models.Venue{Rating: 5, Distance: strPtr("far")}, want: 0.6},
		{name: "beyond ten miles", venue: models.Venue{Rating: 4, Distance: strPtr("25.3 mi")}, want: 0.48},
		{name: "mid", venue: models.Venue{Rating: 4, Distance: strPtr("2.5 mi")}, want: 0.48 + 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ScoreVenue(tt.venue), 1e-9)
		})
	}
}

func TestSelectVenue(t *testing.T) {
	near := models.Venue{Name: "Near Cafe", Rating: 4.2, Distance: strPtr("0.3 mi")}
	far := models.Venue{Name: "Far Cafe", Rating: 4.9, Distance: strPtr("9.5 mi")}
	top := models.Venue{Name: "Top Spot", Rating: 5.0}

	t.Run("best unused by score", func(t *testing.T) {
		got, fromUnused := SelectVenue([]models.Venue{far, near, top}, nil)
		require.NotNil(t, got)
		assert.True(t, fromUnused)
		assert.Equal(t, "Near Cafe", got.Name)
	})

	t.Run("used venues are skipped", func(t *testing.T) {
		// Far Cafe 0.608 edges out Top Spot 0.6 once Near Cafe is excluded.
		got, fromUnused := SelectVenue([]models.Venue{far, near, top}, NameSet([]string{" NEAR cafe"}))
		require.NotNil(t, got)
		assert.True(t, fromUnused)
		assert.Equal(t, "Far Cafe", got.Name)
	})

	t.Run("all used falls back to highest rated", func(t *testing.T) {
		got, fromUnused := SelectVenue([]models.Venue{near, far, top}, NameSet([]string{"near cafe", "far cafe", "top spot"}))
		require.NotNil(t, got)
		assert.False(t, fromUnused)
		assert.Equal(t, "Top Spot", got.Name)
	})

	t.Run("duplicates of a used venue", func(t *testing.T) {
		joes := models.Venue{Name: "Joe's", Rating: 4.8}
		got, fromUnused := SelectVenue([]models.Venue{joes, joes}, NameSet([]string{"joe's"}))
		require.NotNil(t, got)
		assert.False(t, fromUnused)
		assert.Equal(t, joes, *got)
	})

	t.Run("ties keep input order", func(t *testing.T) {
		a := models.Venue{Name: "A", Rating: 4.5}
		b := models.Venue{Name: "B", Rating: 4.5}
		got, _ := SelectVenue([]models.Venue{a, b}, nil)
		assert.Equal(t, "A", got.Name)

		got, _ = SelectVenue([]models.Venue{a, b}, NameSet([]string{"a", "b"}))
		assert.Equal(t, "A", got.Name)
	})

	t.Run("empty input", func(t *testing.T) {
		got, fromUnused := SelectVenue(nil, nil)
		assert.Nil(t, got)
		assert.False(t, fromUnused)
	})

	t.Run("no fuzzy matching", func(t *testing.T) {
		got, fromUnused := SelectVenue([]models.Venue{{Name: "Blue Bottle Coffee", Rating: 4.5}}, NameSet([]string{"blue bottle"}))
		assert.True(t, fromUnused)
		assert.Equal(t, "Blue Bottle Coffee", got.Name)
	})
}

func TestSelectVenue_ReturnsCopy(t *testing.T) {
	list := []models.Venue{{Name: "A", Rating: 4.5}}
	got, _ := SelectVenue(list, nil)
	got.Name = "changed"
	assert.Equal(t, "A", list[0].Name)
}

func TestUnused(t *testing.T) {
	list := []models.Venue{
		{Name: "A"}, {Name: "b"}, {Name: "B "}, {Name: "C"}, {Name: "D"},
	}
	got := Unused(list, NameSet([]string{"c"}), 3)

	names := []string{}
	for _, v := range got {
		names = append(names, v.Name)
	}
	assert.Equal(t, []string{"A", "b", "D"}, names)
	assert.Len(t, Unused(list, nil, 0), 4)
	assert.NotNil(t, Unused(nil, nil, 2))
}
