package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterval_Overlaps(t *testing.T) {
	base := Interval{Start: minutes(19, 0), End: minutes(21, 0)}

	tests := []struct {
		name    string
		other   Interval
		overlap bool
	}{
		{"полностью внутри", Interval{minutes(19, 30), minutes(20, 30)}, true},
		{"пересекает начало", Interval{minutes(18, 0), minutes(19, 30)}, true},
		{"пересекает конец", Interval{minutes(20, 30), minutes(22, 0)}, true},
		{"накрывает целиком", Interval{minutes(18, 0), minutes(22, 0)}, true},
		{"граничит с началом", Interval{minutes(18, 0), minutes(19, 0)}, false},
		{"граничит с концом", Interval{minutes(21, 0), minutes(22, 0)}, false},
		{"раньше", Interval{minutes(17, 0), minutes(18, 0)}, false},
		{"позже", Interval{minutes(22, 0), minutes(23, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlap, base.Overlaps(tt.other))
			// пересечение симметрично
			assert.Equal(t, tt.overlap, tt.other.Overlaps(base))
		})
	}
}

func TestInterval_WithBuffer(t *testing.T) {
	// стол занят 19:00-21:00, буфер 15 минут:
	// запрос на 21:10 конфликтует (21:10 < 21:15), запрос на 21:15 свободен
	booked := Interval{Start: minutes(19, 0), End: minutes(21, 0)}

	at2110 := Interval{Start: minutes(21, 10), End: minutes(23, 10)}
	at2115 := Interval{Start: minutes(21, 15), End: minutes(23, 15)}

	assert.True(t, booked.Overlaps(at2110.WithBuffer(15)))
	assert.False(t, booked.Overlaps(at2115.WithBuffer(15)))
}

func TestInterval_Contains(t *testing.T) {
	i := Interval{Start: minutes(19, 0), End: minutes(21, 0)}

	assert.True(t, i.Contains(minutes(19, 0)))
	assert.True(t, i.Contains(minutes(20, 59)))
	assert.False(t, i.Contains(minutes(21, 0))) // конец исключается
	assert.False(t, i.Contains(minutes(18, 59)))
}
