package agecalc_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"personaldata-backend/pkg/agecalc"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAt(t *testing.T) {
	tests := []struct {
		name  string
		birth time.Time
		today time.Time
		want  int
	}{
		{"day before birthday", date(1990, time.May, 15), date(2024, time.May, 14), 33},
		{"on birthday", date(1990, time.May, 15), date(2024, time.May, 15), 34},
		{"day after birthday", date(1990, time.May, 15), date(2024, time.May, 16), 34},
		{"earlier month", date(1990, time.May, 15), date(2024, time.April, 30), 33},
		{"later month", date(1990, time.May, 15), date(2024, time.June, 1), 34},
		{"born this year", date(2024, time.January, 2), date(2024, time.December, 31), 0},
		{"first birthday", date(2000, time.February, 29), date(2001, time.March, 1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, agecalc.At(tt.birth, tt.today))
		})
	}
}

func TestTodayMatchesAt(t *testing.T) {
	birth := date(1995, time.July, 9)
	assert.Equal(t, agecalc.At(birth, time.Now()), agecalc.Today(birth))
}
