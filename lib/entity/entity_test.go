package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpan_Overlaps(t *testing.T) {
	for _, tt := range []struct {
		name string
		a, b Span
		want bool
	}{
		{"disjoint", Span{Start: 0, End: 3}, Span{Start: 4, End: 6}, false},
		{"shared endpoint", Span{Start: 0, End: 4}, Span{Start: 4, End: 6}, true},
		{"contained", Span{Start: 0, End: 10}, Span{Start: 4, End: 6}, true},
		{"single rune", Span{Start: 5, End: 5}, Span{Start: 5, End: 5}, true},
	} {
		t.Log(tt.name)
		assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
		assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
	}
}

func TestSpan_Touches(t *testing.T) {
	s := Span{Start: 4, End: 6}
	assert.True(t, s.Touches(2, 4))
	assert.True(t, s.Touches(6, 9))
	assert.True(t, s.Touches(5, 5))
	assert.False(t, s.Touches(7, 9))

	// an interval enclosing s has neither endpoint inside it
	assert.False(t, s.Touches(0, 10))
}

func TestPriorities(t *testing.T) {
	p := NewPriorities(nil)
	assert.Equal(t, 6, p.Rank(Date))
	assert.Equal(t, 1, p.Rank(NumPassengers))
	assert.Equal(t, 0, p.Rank(DepartureDate))
	assert.Equal(t, 0, p.Rank("or_city"))

	var zero Priorities
	assert.Equal(t, 5, zero.Rank(Budget))

	custom := map[Category]int{Location: 9}
	p = NewPriorities(custom)
	custom[Location] = 1
	assert.Equal(t, 9, p.Rank(Location), "table must not alias the input map")
	assert.Equal(t, 0, p.Rank(Date))
}

func TestPriorities_Table(t *testing.T) {
	table := NewPriorities(nil).Table()
	assert.Len(t, table, 6)
	assert.Equal(t, Ranked{Category: Date, Priority: 6}, table[0])
	assert.Equal(t, Ranked{Category: NumPassengers, Priority: 1}, table[5])
}
