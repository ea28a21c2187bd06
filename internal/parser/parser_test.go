package parser

import (
	"errors"
	"testing"
	"time"
)

var now = time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)

func TestParseTitleOnly(t *testing.T) {
	res, err := Parse("Buy milk", now)
	if err != nil {
		t.Fatal(err)
	}
	if res.Title != "Buy milk" {
		t.Errorf("title = %q", res.Title)
	}
	if res.Priority != 0 || res.DueDate != nil || res.Notes != "" {
		t.Errorf("unexpected extras: %+v", res)
	}
}

func TestParsePriority(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"task !1", 1},
		{"task !low", 1},
		{"task !2", 2},
		{"task !med", 2},
		{"task !medium", 2},
		{"task !3", 3},
		{"task !HIGH", 3},
	}
	for _, c := range cases {
		res, err := Parse(c.in, now)
		if err != nil {
			t.Fatalf("%q: %v", c.in, err)
		}
		if res.Priority != c.want {
			t.Errorf("%q: priority = %d, want %d", c.in, res.Priority, c.want)
		}
		if res.Title != "task" {
			t.Errorf("%q: title = %q", c.in, res.Title)
		}
	}
}

func TestParseUnknownPriorityKeptInTitle(t *testing.T) {
	res, err := Parse("deploy !urgent", now)
	if err != nil {
		t.Fatal(err)
	}
	if res.Title != "deploy !urgent" {
		t.Errorf("title = %q", res.Title)
	}
	if res.Priority != 0 {
		t.Errorf("priority = %d", res.Priority)
	}
}

func TestParseDueDates(t *testing.T) {
	res, err := Parse("pay rent @today", now)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if res.DueDate == nil || !res.DueDate.Equal(want) {
		t.Errorf("due = %v, want %v", res.DueDate, want)
	}

	res, err = Parse("pay rent @tomorrow", now)
	if err != nil {
		t.Fatal(err)
	}
	want = want.AddDate(0, 0, 1)
	if res.DueDate == nil || !res.DueDate.Equal(want) {
		t.Errorf("due = %v, want %v", res.DueDate, want)
	}

	res, err = Parse("dentist @2026-06-01", now)
	if err != nil {
		t.Fatal(err)
	}
	want = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	if res.DueDate == nil || !res.DueDate.Equal(want) {
		t.Errorf("due = %v, want %v", res.DueDate, want)
	}
}

func TestParseNotes(t *testing.T) {
	res, err := Parse("Call plumber !2 @tomorrow // ask about the kitchen sink", now)
	if err != nil {
		t.Fatal(err)
	}
	if res.Title != "Call plumber" {
		t.Errorf("title = %q", res.Title)
	}
	if res.Notes != "ask about the kitchen sink" {
		t.Errorf("notes = %q", res.Notes)
	}
	if res.Priority != 2 {
		t.Errorf("priority = %d", res.Priority)
	}
	if res.DueDate == nil {
		t.Error("due date missing")
	}
}

func TestParseMarkersAfterNotesIgnored(t *testing.T) {
	res, err := Parse("title // notes with !3 and @today", now)
	if err != nil {
		t.Fatal(err)
	}
	if res.Priority != 0 || res.DueDate != nil {
		t.Errorf("markers inside notes were parsed: %+v", res)
	}
	if res.Notes != "notes with !3 and @today" {
		t.Errorf("notes = %q", res.Notes)
	}
}

func TestParseEmptyTitle(t *testing.T) {
	for _, in := range []string{"", "   ", "!2 @today", "// just notes"} {
		if _, err := Parse(in, now); !errors.Is(err, ErrEmptyTitle) {
			t.Errorf("%q: err = %v, want ErrEmptyTitle", in, err)
		}
	}
}
