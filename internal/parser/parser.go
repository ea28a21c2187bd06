// Package parser extracts task fields from single-line quick-add input.
//
// Syntax: free text becomes the title; "!1".."!3" (or !low/!medium/!high)
// sets priority; "@today", "@tomorrow", or "@2026-01-02" sets the due date;
// everything after "//" becomes notes.
package parser

import (
	"errors"
	"strings"
	"time"
)

// Result holds the fields captured from one quick-add line.
type Result struct {
	Title    string
	Notes    string
	Priority int
	DueDate  *time.Time
}

// ErrEmptyTitle is returned when the input contains no title text.
var ErrEmptyTitle = errors.New("parser: empty title")

// Parse extracts title, priority, due date, and notes from input. now
// anchors relative dates like @today.
func Parse(input string, now time.Time) (*Result, error) {
	res := &Result{}

	body := input
	if i := strings.Index(input, "//"); i >= 0 {
		body = input[:i]
		res.Notes = strings.TrimSpace(input[i+2:])
	}

	var titleWords []string
	for _, tok := range strings.Fields(body) {
		switch {
		case strings.HasPrefix(tok, "!") && len(tok) > 1:
			if p, ok := parsePriority(tok[1:]); ok {
				res.Priority = p
				continue
			}
		case strings.HasPrefix(tok, "@") && len(tok) > 1:
			if d, ok := parseDue(tok[1:], now); ok {
				res.DueDate = &d
				continue
			}
		}
		titleWords = append(titleWords, tok)
	}

	res.Title = strings.Join(titleWords, " ")
	if res.Title == "" {
		return nil, ErrEmptyTitle
	}
	return res, nil
}

func parsePriority(s string) (int, bool) {
	switch strings.ToLower(s) {
	case "1", "low":
		return 1, true
	case "2", "medium", "med":
		return 2, true
	case "3", "high":
		return 3, true
	default:
		return 0, false
	}
}

func parseDue(s string, now time.Time) (time.Time, bool) {
	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
	switch strings.ToLower(s) {
	case "today":
		return day(now), true
	case "tomorrow":
		return day(now).AddDate(0, 0, 1), true
	}
	if t, err := time.ParseInLocation("2006-01-02", s, now.Location()); err == nil {
		return t, true
	}
	return time.Time{}, false
}
