package schedule

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

// Monday 2025-01-06 13:30 in Kolkata.
func fixedClock() time.Time {
	loc, _ := time.LoadLocation("Asia/Kolkata")
	return time.Date(2025, 1, 6, 13, 30, 0, 0, loc)
}

func TestSuggest_Defaults(t *testing.T) {
	p := NewPlanner(fixedClock)

	s, err := p.Suggest(Request{Topic: "sourdough"})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	if s.Channel != "blog" || s.Timezone != "Asia/Kolkata" {
		t.Errorf("Unexpected defaults: %+v", s)
	}
	if !reflect.DeepEqual(s.Hours, []int{10, 14, 20}) {
		t.Errorf("Unexpected hours: %v", s.Hours)
	}
	if !reflect.DeepEqual(s.DaysOrder, defaultDays) {
		t.Errorf("Unexpected days: %v", s.DaysOrder)
	}

	want := []string{
		"2025-01-06T14:00:00+05:30",
		"2025-01-06T20:00:00+05:30",
		"2025-01-07T10:00:00+05:30",
		"2025-01-07T14:00:00+05:30",
		"2025-01-07T20:00:00+05:30",
		"2025-01-08T10:00:00+05:30",
	}
	if !reflect.DeepEqual(s.NextSlots, want) {
		t.Errorf("Expected slots %v, got: %v", want, s.NextSlots)
	}

	wantNotes := []string{
		"Optimized for Blog typical engagement windows.",
		"Weighted weekdays (Tue–Thu) which trend higher for B2B.",
	}
	if !reflect.DeepEqual(s.Notes, wantNotes) {
		t.Errorf("Unexpected notes: %q", s.Notes)
	}
}

func TestSuggest_PreferredDaysAndHistory(t *testing.T) {
	p := NewPlanner(fixedClock)

	s, err := p.Suggest(Request{
		Topic:         "launch",
		Channel:       "LinkedIn",
		Timezone:      "UTC",
		PreferredDays: []string{"Fri", "funday"},
		HistoryHours:  []int{25, 7, 9, 7},
	})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	if !reflect.DeepEqual(s.Hours, []int{7, 9, 12}) {
		t.Errorf("Expected merged history hours, got: %v", s.Hours)
	}
	if !reflect.DeepEqual(s.DaysOrder, []string{"Fri"}) {
		t.Errorf("Expected only valid preferred days, got: %v", s.DaysOrder)
	}
	if s.NextSlots[0] != "2025-01-10T07:00:00+00:00" {
		t.Errorf("Unexpected first slot: %s", s.NextSlots[0])
	}
	if len(s.NextSlots) != 6 {
		t.Errorf("Expected 6 slots, got %d", len(s.NextSlots))
	}

	wantNotes := []string{
		"Used your past high-engagement hours for ranking.",
		"Optimized for Linkedin typical engagement windows.",
		"Respected your preferred days.",
	}
	if !reflect.DeepEqual(s.Notes, wantNotes) {
		t.Errorf("Unexpected notes: %q", s.Notes)
	}
}

func TestSuggest_InvalidTimezoneFallsBack(t *testing.T) {
	p := NewPlanner(fixedClock)
	s, err := p.Suggest(Request{Topic: "x", Timezone: "Mars/Olympus", Channel: "podcast", Keywords: make([]string, 15)})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if s.NextSlots[0] != "2025-01-06T14:00:00+05:30" {
		t.Errorf("Expected Kolkata slots, got: %s", s.NextSlots[0])
	}
	if s.Timezone != "Mars/Olympus" {
		t.Errorf("Expected the requested timezone echoed, got: %q", s.Timezone)
	}
	if !reflect.DeepEqual(s.Hours, []int{10, 14, 20}) {
		t.Errorf("Expected blog hours for unknown channels, got: %v", s.Hours)
	}
	if len(s.Keywords) != 10 {
		t.Errorf("Expected keywords truncated to 10, got %d", len(s.Keywords))
	}
}

func TestSuggest_MissingTopic(t *testing.T) {
	if _, err := NewPlanner(nil).Suggest(Request{Topic: "  "}); !errors.Is(err, ErrMissingTopic) {
		t.Fatalf("Expected ErrMissingTopic, got: %v", err)
	}
}

func TestPickHours_AllInvalidHistoryUsesBase(t *testing.T) {
	if got := pickHours("twitter", []int{-1, 30}); !reflect.DeepEqual(got, []int{9, 13, 21}) {
		t.Errorf("Expected base hours, got: %v", got)
	}
}
