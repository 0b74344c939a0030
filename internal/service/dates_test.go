package service_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/leqihan/fcc-exercise-tracker/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestIsValidDate(t *testing.T) {
	testCases := []struct {
		Date  string
		Valid bool
	}{
		{"2021-02-28", true},
		{"2020-02-29", true},
		{"2023-01-01", true},
		{"2021-02-29", false},
		{"2021-02-30", false},
		{"2021-13-01", false},
		{"2021-00-10", false},
		{"2021-04-31", false},
		{"21-1-1", false},
		{"2021-1-01", false},
		{"2021/01/01", false},
		{"2021-01-01T00:00:00Z", false},
		{" 2021-01-01", false},
		{"２０２１-01-01", false},
		{"", false},
	}
	for _, tc := range testCases {
		t.Run(tc.Date, func(t *testing.T) {
			assert.Equal(t, tc.Valid, service.IsValidDate(tc.Date))
		})
	}
}

func TestProperty_IsValidDate(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("every formatted calendar day is valid", prop.ForAll(
		func(days int) bool {
			d := time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
			return service.IsValidDate(d.Format(service.DateLayout))
		},
		gen.IntRange(0, 365*300),
	))

	properties.Property("zero-padded triple is valid iff it names a real day", prop.ForAll(
		func(year, month, day int) bool {
			s := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
			d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			isReal := month >= 1 && month <= 12 && d.Day() == day && int(d.Month()) == month
			return service.IsValidDate(s) == isReal
		},
		gen.IntRange(1000, 9999),
		gen.IntRange(0, 13),
		gen.IntRange(0, 32),
	))

	properties.Property("unpadded forms are rejected", prop.ForAll(
		func(year, month, day int) bool {
			return !service.IsValidDate(fmt.Sprintf("%d-%d-%d", year, month, day))
		},
		gen.IntRange(1000, 9999),
		gen.IntRange(1, 9),
		gen.IntRange(1, 28),
	))

	properties.TestingRun(t)
}
