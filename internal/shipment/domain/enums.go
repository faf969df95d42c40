package domain

import "strings"

type Destination string

const (
	DestinationGUY  Destination = "GUY"
	DestinationSVG  Destination = "SVG"
	DestinationSLU  Destination = "SLU"
	DestinationBIM  Destination = "BIM"
	DestinationDOM  Destination = "DOM"
	DestinationGRD  Destination = "GRD"
	DestinationSKN  Destination = "SKN"
	DestinationANU  Destination = "ANU"
	DestinationSXM  Destination = "SXM"
	DestinationFSXM Destination = "FSXM"
)

type Carrier string

const (
	CarrierFedEx  Carrier = "FEDEX"
	CarrierDHL    Carrier = "DHL"
	CarrierUSPS   Carrier = "USPS"
	CarrierUPS    Carrier = "UPS"
	CarrierAmazon Carrier = "AMAZON"
)

type Mode string

const (
	ModeAir Mode = "air"
	ModeSea Mode = "sea"
)

type Status string

const (
	StatusReceived  Status = "received"
	StatusInTransit Status = "intransit"
	StatusDelivered Status = "delivered"
)

// Destinations lists the served destinations in display order.
var Destinations = []Destination{
	DestinationGUY,
	DestinationSVG,
	DestinationSLU,
	DestinationBIM,
	DestinationDOM,
	DestinationGRD,
	DestinationSKN,
	DestinationANU,
	DestinationSXM,
	DestinationFSXM,
}

var Carriers = []Carrier{
	CarrierFedEx,
	CarrierDHL,
	CarrierUSPS,
	CarrierUPS,
	CarrierAmazon,
}

var Modes = []Mode{ModeAir, ModeSea}

var Statuses = []Status{StatusReceived, StatusInTransit, StatusDelivered}

var destinationNames = map[Destination]string{
	DestinationGUY:  "Guyana",
	DestinationSVG:  "Saint Vincent and the Grenadines",
	DestinationSLU:  "Saint Lucia",
	DestinationBIM:  "Barbados",
	DestinationDOM:  "Dominican Republic",
	DestinationGRD:  "Grenada",
	DestinationSKN:  "Saint Kitts and Nevis",
	DestinationANU:  "Antigua and Barbuda",
	DestinationSXM:  "Sint Maarten",
	DestinationFSXM: "French Saint Martin",
}

func (d Destination) Valid() bool {
	_, ok := destinationNames[d]
	return ok
}

// Name returns the country or territory name, or the code when unknown.
func (d Destination) Name() string {
	if name, ok := destinationNames[d]; ok {
		return name
	}
	return string(d)
}

func (c Carrier) Valid() bool {
	switch c {
	case CarrierFedEx, CarrierDHL, CarrierUSPS, CarrierUPS, CarrierAmazon:
		return true
	}
	return false
}

func (m Mode) Valid() bool {
	return m == ModeAir || m == ModeSea
}

// Label capitalises the mode for chart legends.
func (m Mode) Label() string {
	s := string(m)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (s Status) Valid() bool {
	switch s {
	case StatusReceived, StatusInTransit, StatusDelivered:
		return true
	}
	return false
}

// DestinationsMatchingName returns the destinations whose display name
// contains term, ignoring case.
func DestinationsMatchingName(term string) []Destination {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	var out []Destination
	for _, d := range Destinations {
		if strings.Contains(strings.ToLower(destinationNames[d]), term) {
			out = append(out, d)
		}
	}
	return out
}
