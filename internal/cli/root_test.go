package cli

import (
	"reflect"
	"testing"

	"habitkeep/internal/models"
)

func TestParseWeekdays(t *testing.T) {
	cases := []struct {
		input string
		want  []int
	}{
		{"mon", []int{0}},
		{"mon,wed,fri", []int{0, 2, 4}},
		{"Monday, Sunday", []int{0, 6}},
		{"0,2,4", []int{0, 2, 4}},
		{"sat,6", []int{5, 6}},
	}

	for _, c := range cases {
		got, err := ParseWeekdays(c.input)
		if err != nil {
			t.Errorf("ParseWeekdays(%q) returned error: %v", c.input, err)
			continue
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("ParseWeekdays(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestParseWeekdaysRejectsInvalid(t *testing.T) {
	for _, input := range []string{"", "funday", "7", "-1", "mon,"} {
		if _, err := ParseWeekdays(input); err == nil {
			t.Errorf("ParseWeekdays(%q) should fail", input)
		}
	}
}

func TestFormatFrequency(t *testing.T) {
	cases := []struct {
		habit models.Habit
		want  string
	}{
		{models.Habit{Frequency: models.FrequencyDaily}, "daily"},
		{models.Habit{Frequency: models.FrequencyWeekly}, "weekly"},
		{models.Habit{Frequency: models.FrequencyCustom, FrequencyDays: []int{0, 2, 4}}, "Mon,Wed,Fri"},
		{models.Habit{Frequency: models.FrequencyCustom, FrequencyDays: []int{6}}, "Sun"},
		{models.Habit{Frequency: "monthly"}, "unknown"},
	}

	for _, c := range cases {
		if got := FormatFrequency(c.habit); got != c.want {
			t.Errorf("FormatFrequency(%v) = %q, want %q", c.habit.Frequency, got, c.want)
		}
	}
}
