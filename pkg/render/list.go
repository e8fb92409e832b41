// Package render turns view changes into displayable pieces: the event
// list, tooltips, status messages and the marker layer drawn over a map.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/agentstation/stagemap/pkg/constants"
	"github.com/agentstation/stagemap/pkg/timeline"
)

// UntitledName replaces empty event names.
const UntitledName = "Untitled"

// EmptyListMessage is shown for a month without events.
const EmptyListMessage = "No events this month."

// Badge is a small labelled chip. Color is empty for neutral badges.
type Badge struct {
	Text  string `json:"text"`
	Color string `json:"color,omitempty"`
}

// Card is one event in the list.
type Card struct {
	Key    string  `json:"key"`
	Name   string  `json:"name"`
	Badges []Badge `json:"badges"`
}

// List is the rendered event list for one month.
type List struct {
	Cards []Card `json:"cards"`
	Total int    `json:"total"`
	// Message replaces the cards when there are none.
	Message string `json:"message,omitempty"`
	// Notice follows the cards when the list was truncated.
	Notice string `json:"notice,omitempty"`
}

// Truncated reports whether some events were left out.
func (l List) Truncated() bool {
	return l.Total > len(l.Cards)
}

var strict = bluemonday.StrictPolicy()

// PlainText strips any markup from s and returns literal text.
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// NewList renders at most constants.MaxListItems cards in event order.
func NewList(events []timeline.Event) List {
	l := List{Total: len(events)}
	if len(events) == 0 {
		l.Message = EmptyListMessage
		return l
	}

	n := min(len(events), constants.MaxListItems)
	l.Cards = make([]Card, n)
	for i, e := range events[:n] {
		l.Cards[i] = NewCard(e)
	}
	if len(events) > n {
		l.Notice = fmt.Sprintf("Showing %d of %d events.", n, len(events))
	}
	return l
}

// NewCard builds the card for one event: a category badge coloured for the
// category, then date, city, country and venue badges when present.
func NewCard(e timeline.Event) Card {
	category := e.Category
	if category == "" {
		category = timeline.CategoryOther
	}

	badges := []Badge{{Text: category.String(), Color: category.Color()}}
	for _, text := range []string{e.Date, e.City, e.Country, e.Venue} {
		if text = PlainText(text); text != "" {
			badges = append(badges, Badge{Text: text})
		}
	}
	return Card{Key: e.Key(), Name: DisplayName(e.Name), Badges: badges}
}

// DisplayName returns the markup-free name, or UntitledName.
func DisplayName(name string) string {
	if name = PlainText(name); name == "" {
		return UntitledName
	}
	return name
}

// CountLabel formats an event count with the right plural.
func CountLabel(n int) string {
	if n == 1 {
		return "1 event"
	}
	return fmt.Sprintf("%d events", n)
}
