package domain

import (
	"strconv"
	"strings"
)

// Filter narrows shipment reads. Nil fields match every value.
type Filter struct {
	Status      *Status
	Carrier     *Carrier
	Destination *Destination
	Mode        *Mode
	Search      *Search

	ArrivalFrom string
	ArrivalTo   string

	RequireDeparture bool
}

// Search is a free text term resolved against ids, origin, carrier and
// destination names.
type Search struct {
	Term         string
	NumericID    *int64
	Destinations []Destination
}

func NewSearch(term string) *Search {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	search := &Search{
		Term:         term,
		Destinations: DestinationsMatchingName(term),
	}
	if id, err := strconv.ParseInt(term, 10, 64); err == nil {
		search.NumericID = &id
	}
	return search
}

// ParseStatus maps a query value to an optional status. Empty and "all"
// are absent.
func ParseStatus(raw string) (*Status, error) {
	raw = strings.TrimSpace(raw)
	if isMatchAll(raw) {
		return nil, nil
	}
	s := Status(strings.ToLower(raw))
	if !s.Valid() {
		return nil, ErrInvalidStatus
	}
	return &s, nil
}

func ParseCarrier(raw string) (*Carrier, error) {
	raw = strings.TrimSpace(raw)
	if isMatchAll(raw) {
		return nil, nil
	}
	c := Carrier(strings.ToUpper(raw))
	if !c.Valid() {
		return nil, ErrInvalidCarrier
	}
	return &c, nil
}

func ParseDestination(raw string) (*Destination, error) {
	raw = strings.TrimSpace(raw)
	if isMatchAll(raw) {
		return nil, nil
	}
	d := Destination(strings.ToUpper(raw))
	if !d.Valid() {
		return nil, ErrInvalidDestination
	}
	return &d, nil
}

func ParseMode(raw string) (*Mode, error) {
	raw = strings.TrimSpace(raw)
	if isMatchAll(raw) {
		return nil, nil
	}
	m := Mode(strings.ToLower(raw))
	if !m.Valid() {
		return nil, ErrInvalidMode
	}
	return &m, nil
}

func isMatchAll(raw string) bool {
	return raw == "" || strings.EqualFold(raw, "all")
}

// FilterLabel renders an optional filter the way responses echo it back.
func FilterLabel[T ~string](v *T) string {
	if v == nil {
		return "all"
	}
	return string(*v)
}
