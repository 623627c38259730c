package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  Grade
	}{
		{4.5, GradeStrong},
		{3.0, GradeStrong},
		{2.99, GradeMedium},
		{1.0, GradeMedium},
		{0.99, GradeWeak},
		{0, GradeWeak},
		{-12.5, GradeWeak},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Level{Score: tc.score}.Grade(), "score %v", tc.score)
	}
}

func TestNearest(t *testing.T) {
	levels := []Level{
		{Price: 95, Kind: KindSupport},
		{Price: 105, Kind: KindSupport},
		{Price: 120, Kind: KindResistance},
	}

	l, ok := Nearest(levels, KindSupport, 96)
	assert.True(t, ok)
	assert.Equal(t, 95.0, l.Price)

	// Equidistant: the lower price wins.
	l, ok = Nearest(levels, KindSupport, 100)
	assert.True(t, ok)
	assert.Equal(t, 95.0, l.Price)

	l, ok = Nearest(levels, KindResistance, 100)
	assert.True(t, ok)
	assert.Equal(t, 120.0, l.Price)

	_, ok = Nearest(nil, KindSupport, 100)
	assert.False(t, ok)
}

func TestStrongWithin(t *testing.T) {
	levels := []Level{
		{Price: 100.2, Kind: KindResistance, Score: 4.0},
		{Price: 101.0, Kind: KindResistance, Score: 0.5},
		{Price: 130.0, Kind: KindResistance, Score: 5.0},
	}

	l, ok := StrongWithin(levels, KindResistance, 100, 0.003)
	assert.True(t, ok)
	assert.Equal(t, 100.2, l.Price)

	// The weak level at 101 is inside the band but only STRONG counts.
	_, ok = StrongWithin(levels[1:], KindResistance, 100, 0.05)
	assert.False(t, ok)

	// Far STRONG level does not trigger.
	_, ok = StrongWithin(levels[2:], KindResistance, 100, 0.003)
	assert.False(t, ok)

	_, ok = StrongWithin(levels, KindResistance, 0, 0.003)
	assert.False(t, ok, "non-positive reference price cannot match")
}
