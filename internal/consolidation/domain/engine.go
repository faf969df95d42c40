package domain

import (
	"fmt"
	"math"
	"sort"

	shipmentdomain "github.com/GuiTheDevv/shipping-management/internal/shipment/domain"
	"github.com/gosimple/slug"
)

// BuildGroups groups shipments by destination, carrier, mode and departure
// date, drops groups smaller than minSize and orders the rest by size
// descending, then by key ascending. Shipments without a departure date
// never group.
func BuildGroups(shipments []shipmentdomain.Shipment, minSize int, pricing Pricing) []Group {
	if minSize < 1 {
		minSize = 1
	}

	index := make(map[Key]int)
	groups := make([]Group, 0)
	for _, s := range shipments {
		departure := s.Departure()
		if departure == "" {
			continue
		}
		key := Key{
			Destination:   s.Destination,
			Carrier:       s.Carrier,
			Mode:          s.Mode,
			DepartureDate: departure,
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{
				Destination:   key.Destination,
				DepartureDate: key.DepartureDate,
				Carrier:       key.Carrier,
				Mode:          key.Mode,
			})
		}
		groups[i].members = append(groups[i].members, s)
	}
	assignIDs(groups)

	out := groups[:0]
	for _, g := range groups {
		if len(g.members) < minSize {
			continue
		}
		out = append(out, finalize(g, pricing))
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ShipmentCount != b.ShipmentCount {
			return a.ShipmentCount > b.ShipmentCount
		}
		if a.DepartureDate != b.DepartureDate {
			return a.DepartureDate < b.DepartureDate
		}
		if a.Destination != b.Destination {
			return a.Destination < b.Destination
		}
		if a.Carrier != b.Carrier {
			return a.Carrier < b.Carrier
		}
		return a.Mode < b.Mode
	})
	return out
}

func finalize(g Group, pricing Pricing) Group {
	var grams, cm3 float64
	for _, s := range g.members {
		grams += s.Weight
		cm3 += s.Volume
	}
	count := len(g.members)

	g.ShipmentCount = count
	g.TotalWeight = shipmentdomain.Kilograms(grams)
	g.TotalVolume = shipmentdomain.CubicMeters(cm3)
	g.AvgWeightPerShipment = shipmentdomain.Kilograms(grams / float64(count))
	g.AvgVolumePerShipment = shipmentdomain.CubicMeters(cm3 / float64(count))
	g.PotentialSavings = PotentialSavings(count, pricing)
	return g
}

// PotentialSavings is round(count × baseline × discount).
func PotentialSavings(count int, pricing Pricing) float64 {
	return math.Round(float64(count) * pricing.BaselineCost * pricing.Discount)
}

// assignIDs gives every group its slug id. Distinct departure strings that
// slug alike (2024/01/05 and 2024-01-05) get numbered suffixes, with the
// lexically smallest departure keeping the bare id.
func assignIDs(groups []Group) {
	order := make([]int, len(groups))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return groups[order[a]].DepartureDate < groups[order[b]].DepartureDate
	})

	used := make(map[string]bool, len(groups))
	for _, i := range order {
		g := &groups[i]
		base := GroupID(Key{
			Destination:   g.Destination,
			Carrier:       g.Carrier,
			Mode:          g.Mode,
			DepartureDate: g.DepartureDate,
		})
		id := base
		for n := 2; used[id]; n++ {
			id = fmt.Sprintf("%s-%d", base, n)
		}
		used[id] = true
		g.ID = id
	}
}

func GroupID(key Key) string {
	return slug.Make(fmt.Sprintf("%s-%s-%s-%s", key.Destination, key.Carrier, key.Mode, key.DepartureDate))
}

// WithDetails returns a copy of g carrying its member shipment details.
func WithDetails(g Group) Group {
	details := make([]ShipmentDetail, 0, len(g.members))
	for _, s := range g.members {
		details = append(details, ShipmentDetail{
			ShipmentID:    s.ShipmentID,
			CustomerID:    s.CustomerID,
			Origin:        s.OriginOr(UnknownOrigin),
			Weight:        shipmentdomain.Kilograms(s.Weight),
			Volume:        shipmentdomain.CubicMeters(s.Volume),
			Status:        s.Status,
			ArrivalDate:   s.ArrivalDate,
			DeliveredDate: s.DeliveredDate,
		})
	}
	g.Shipments = details
	return g
}

// Summarize aggregates every qualifying group. Tops count groups, not
// shipments, and ties go to the lexicographically smallest value.
func Summarize(groups []Group) Summary {
	summary := Summary{
		TotalGroups:    len(groups),
		TopDestination: NotAvailable,
		TopCarrier:     NotAvailable,
		TopMode:        NotAvailable,
	}
	if len(groups) == 0 {
		return summary
	}

	destinations := map[string]int{}
	carriers := map[string]int{}
	modes := map[string]int{}
	for _, g := range groups {
		summary.TotalShipments += g.ShipmentCount
		summary.TotalPotentialSavings += g.PotentialSavings
		destinations[string(g.Destination)]++
		carriers[string(g.Carrier)]++
		modes[string(g.Mode)]++
	}

	summary.AvgShipmentsPerGroup = shipmentdomain.Round2(float64(summary.TotalShipments) / float64(len(groups)))
	summary.TopDestination = top(destinations)
	summary.TopCarrier = top(carriers)
	summary.TopMode = top(modes)
	return summary
}

func top(counts map[string]int) string {
	best, bestCount := NotAvailable, 0
	for value, count := range counts {
		if count > bestCount || (count == bestCount && value < best) {
			best, bestCount = value, count
		}
	}
	return best
}
