// Package schedule suggests publishing slots per channel.
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	// Zone lookups must work on hosts without a zoneinfo database.
	_ "time/tzdata"
)

const (
	DefaultChannel  = "blog"
	DefaultTimezone = "Asia/Kolkata"
	isoLayout       = "2006-01-02T15:04:05-07:00"

	slotCount   = 6
	searchDays  = 22
	maxKeywords = 10
	maxHours    = 3
)

// ErrMissingTopic rejects a request without a topic.
var ErrMissingTopic = errors.New("topic is required")

var channelHours = map[string][]int{
	"blog":      {10, 14, 20},
	"linkedin":  {9, 12, 18},
	"twitter":   {9, 13, 21},
	"instagram": {11, 16, 19},
	"youtube":   {12, 17, 20},
}

var (
	weekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	defaultDays  = []string{"Tue", "Wed", "Thu", "Mon", "Fri", "Sat", "Sun"}
)

// Request describes the content to schedule. Empty fields take defaults.
type Request struct {
	Topic         string   `json:"topic"`
	Keywords      []string `json:"keywords"`
	Channel       string   `json:"channel"`
	Timezone      string   `json:"timezone"`
	PreferredDays []string `json:"preferred_days"`
	HistoryHours  []int    `json:"history_local_post_hours"`
}

// Suggestion lists the recommended hours, days and next slots in the
// requested timezone.
type Suggestion struct {
	Topic     string   `json:"topic"`
	Channel   string   `json:"channel"`
	Timezone  string   `json:"timezone"`
	Keywords  []string `json:"keywords"`
	Hours     []int    `json:"recommended_hours_local"`
	DaysOrder []string `json:"recommended_days_order"`
	NextSlots []string `json:"next_slots_local_iso"`
	Notes     []string `json:"notes"`
}

// Planner suggests posting times.
type Planner struct {
	now func() time.Time
}

// NewPlanner returns a planner reading the given clock. A nil clock uses
// time.Now.
func NewPlanner(now func() time.Time) *Planner {
	if now == nil {
		now = time.Now
	}
	return &Planner{now: now}
}

// Suggest plans the next posting slots for req.
func (p *Planner) Suggest(req Request) (*Suggestion, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, ErrMissingTopic
	}
	if req.Channel == "" {
		req.Channel = DefaultChannel
	}
	if req.Timezone == "" {
		req.Timezone = DefaultTimezone
	}

	now := p.now().In(location(req.Timezone))
	days := pickDays(req.PreferredDays)
	hours := pickHours(req.Channel, req.HistoryHours)

	slots := []string{}
	for _, s := range nextSlots(now, days, hours, slotCount) {
		slots = append(slots, s.Format(isoLayout))
	}

	notes := []string{}
	if len(req.HistoryHours) > 0 {
		notes = append(notes, "Used your past high-engagement hours for ranking.")
	}
	notes = append(notes, fmt.Sprintf("Optimized for %s typical engagement windows.", capitalize(req.Channel)))
	if len(req.PreferredDays) > 0 {
		notes = append(notes, "Respected your preferred days.")
	} else {
		notes = append(notes, "Weighted weekdays (Tue–Thu) which trend higher for B2B.")
	}

	keywords := req.Keywords
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	if keywords == nil {
		keywords = []string{}
	}

	return &Suggestion{
		Topic:     req.Topic,
		Channel:   req.Channel,
		Timezone:  req.Timezone,
		Keywords:  keywords,
		Hours:     hours,
		DaysOrder: days,
		NextSlots: slots,
		Notes:     notes,
	}, nil
}

func location(name string) *time.Location {
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func pickDays(preferred []string) []string {
	var days []string
	for _, d := range preferred {
		for _, name := range weekdayNames {
			if d == name {
				days = append(days, d)
				break
			}
		}
	}
	if len(days) == 0 {
		return append([]string(nil), defaultDays...)
	}
	return days
}

func pickHours(channel string, history []int) []int {
	base, ok := channelHours[strings.ToLower(channel)]
	if !ok {
		base = channelHours[DefaultChannel]
	}
	if len(history) == 0 {
		return append([]int(nil), base...)
	}

	seen := map[int]bool{}
	var hours []int
	for _, h := range append(append([]int(nil), history...), base...) {
		if seen[h] {
			continue
		}
		seen[h] = true
		if h >= 0 && h <= 23 {
			hours = append(hours, h)
		}
	}
	if len(hours) == 0 {
		return append([]int(nil), base...)
	}
	if len(hours) > maxHours {
		hours = hours[:maxHours]
	}
	return hours
}

// nextSlots walks forward day by day from now and collects up to k slots on
// the listed weekdays that fall strictly after now.
func nextSlots(now time.Time, days []string, hours []int, k int) []time.Time {
	allowed := map[string]bool{}
	for _, d := range days {
		allowed[d] = true
	}

	var slots []time.Time
	for offset := 0; offset < searchDays; offset++ {
		day := time.Date(now.Year(), now.Month(), now.Day()+offset, 0, 0, 0, 0, now.Location())
		if !allowed[weekdayNames[day.Weekday()]] {
			continue
		}
		for _, h := range hours {
			slot := time.Date(day.Year(), day.Month(), day.Day(), h, 0, 0, 0, now.Location())
			if !slot.After(now) {
				continue
			}
			slots = append(slots, slot)
			if len(slots) >= k {
				return slots
			}
		}
	}
	return slots
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
