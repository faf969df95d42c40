package domain

import (
	"sort"
	"time"

	shipmentdomain "github.com/GuiTheDevv/shipping-management/internal/shipment/domain"
)

// Tuning is the slice of dashboard configuration the aggregation reads.
type Tuning struct {
	WarehouseName string
	CapacityCm3   float64
	AirSLADays    int
	SeaSLADays    int
}

// Stock is the current warehouse content: every received shipment in the
// store regardless of date. Volume is in cubic centimeters.
type Stock struct {
	Shipments int64
	VolumeCm3 float64
}

// tally accumulates in storage units. Conversion happens once, when the
// payload is assembled.
type tally struct {
	count     int64
	delivered int64
	intransit int64
	received  int64
	air       int64
	sea       int64
	grams     float64
	cm3       float64

	measured     int64
	deliveryDays float64
	onTime       int64
}

func (t *tally) add(s shipmentdomain.Shipment, tuning Tuning) {
	t.count++
	t.grams += s.Weight
	t.cm3 += s.Volume

	switch s.Mode {
	case shipmentdomain.ModeAir:
		t.air++
	case shipmentdomain.ModeSea:
		t.sea++
	}

	switch s.Status {
	case shipmentdomain.StatusReceived:
		t.received++
	case shipmentdomain.StatusInTransit:
		t.intransit++
	case shipmentdomain.StatusDelivered:
		t.delivered++
		days, ok := DeliveryDays(s)
		if !ok {
			return
		}
		t.measured++
		t.deliveryDays += float64(days)
		if days <= slaDays(s.Mode, tuning) {
			t.onTime++
		}
	}
}

func (t tally) avgDeliveryTime() *float64 {
	if t.measured == 0 {
		return nil
	}
	avg := shipmentdomain.Round2(t.deliveryDays / float64(t.measured))
	return &avg
}

func (t tally) onTimeRate() float64 {
	return shipmentdomain.Percent(float64(t.onTime), float64(t.measured))
}

func slaDays(mode shipmentdomain.Mode, tuning Tuning) int {
	if mode == shipmentdomain.ModeSea {
		return tuning.SeaSLADays
	}
	return tuning.AirSLADays
}

// DeliveryDays is the number of calendar days between arrival and delivery.
// It reports false when either date is missing, unparseable, or the
// delivery precedes the arrival.
func DeliveryDays(s shipmentdomain.Shipment) (int, bool) {
	arrived, err := time.Parse(DateLayout, s.ArrivalDate)
	if err != nil {
		return 0, false
	}
	delivered, err := time.Parse(DateLayout, s.Delivered())
	if err != nil {
		return 0, false
	}
	days := int(delivered.Sub(arrived).Hours() / 24)
	if days < 0 {
		return 0, false
	}
	return days, true
}

// Aggregate builds the dashboard payload from the shipments arriving inside
// window. LastUpdated is left for the caller.
func Aggregate(rows []shipmentdomain.Shipment, window Window, stock Stock, tuning Tuning) Payload {
	var overall tally
	modes := map[shipmentdomain.Mode]*tally{}
	destinations := map[shipmentdomain.Destination]*tally{}
	carriers := map[shipmentdomain.Carrier]*tally{}
	carrierDays := map[shipmentdomain.Carrier]map[string]*tally{}
	days := map[string]*tally{}

	for _, s := range rows {
		overall.add(s, tuning)
		bucket(modes, s.Mode).add(s, tuning)
		bucket(destinations, s.Destination).add(s, tuning)
		bucket(carriers, s.Carrier).add(s, tuning)
		if carrierDays[s.Carrier] == nil {
			carrierDays[s.Carrier] = map[string]*tally{}
		}
		bucket(carrierDays[s.Carrier], s.ArrivalDate).add(s, tuning)
		bucket(days, s.ArrivalDate).add(s, tuning)
	}

	metrics := Metrics{
		TotalShipments:     overall.count,
		DeliveredShipments: overall.delivered,
		IntransitShipments: overall.intransit,
		ReceivedShipments:  overall.received,
		TotalVolume:        shipmentdomain.CubicMeters(overall.cm3),
		TotalWeight:        shipmentdomain.Kilograms(overall.grams),
		DeliveryRate:       shipmentdomain.Percent(float64(overall.delivered), float64(overall.count)),
		OnTimeDeliveryRate: overall.onTimeRate(),
	}
	if overall.count > 0 {
		metrics.AvgVolumePerShipment = shipmentdomain.CubicMeters(overall.cm3 / float64(overall.count))
		metrics.AvgWeightPerShipment = shipmentdomain.Kilograms(overall.grams / float64(overall.count))
	}

	warehouse := buildWarehouse(stock, tuning)

	return Payload{
		TotalShipments:       metrics.TotalShipments,
		DeliveredShipments:   metrics.DeliveredShipments,
		IntransitShipments:   metrics.IntransitShipments,
		ReceivedShipments:    metrics.ReceivedShipments,
		TotalVolume:          metrics.TotalVolume,
		TotalWeight:          metrics.TotalWeight,
		DashboardMetrics:     metrics,
		WarehouseUtilization: warehouse,
		Charts: Charts{
			WarehouseUtilizationPieChart: buildPie(warehouse),
			ShipmentModeDistribution:     buildModes(modes, overall.count),
			CarrierBarChart:              buildCarrierBars(carrierDays),
			WarehouseCapacityTimeline:    buildTimeline(days, window),
			DestinationDistribution:      buildDestinations(destinations, overall.count),
			CarrierPerformance:           buildCarrierPerformance(carriers),
		},
		DateRange: DateRange{
			From: window.From.Format(DateLayout),
			To:   window.To.Format(DateLayout),
		},
	}
}

func bucket[K comparable](m map[K]*tally, key K) *tally {
	t, ok := m[key]
	if !ok {
		t = &tally{}
		m[key] = t
	}
	return t
}

func buildWarehouse(stock Stock, tuning Tuning) WarehouseUtilization {
	available := tuning.CapacityCm3 - stock.VolumeCm3
	if available < 0 {
		available = 0
	}
	return WarehouseUtilization{
		WarehouseName:         tuning.WarehouseName,
		TotalVolume:           shipmentdomain.CubicMeters(stock.VolumeCm3),
		ShipmentCount:         stock.Shipments,
		CapacityVolume:        shipmentdomain.CubicMeters(tuning.CapacityCm3),
		UtilizationPercentage: shipmentdomain.Percent(stock.VolumeCm3, tuning.CapacityCm3),
		AvailableVolume:       shipmentdomain.CubicMeters(available),
	}
}

func buildPie(w WarehouseUtilization) []PieSlice {
	free := shipmentdomain.Round2(100 - w.UtilizationPercentage)
	if free < 0 {
		free = 0
	}
	return []PieSlice{
		{Name: PieUsed, Value: w.UtilizationPercentage, Volume: w.TotalVolume, Color: PieUsedColor},
		{Name: PieAvailable, Value: free, Volume: w.AvailableVolume, Color: PieAvailableColor},
	}
}

func buildModes(modes map[shipmentdomain.Mode]*tally, total int64) []ModeDistribution {
	out := make([]ModeDistribution, 0, len(modes))
	for _, mode := range shipmentdomain.Modes {
		t, ok := modes[mode]
		if !ok {
			continue
		}
		out = append(out, ModeDistribution{
			Mode:       mode.Label(),
			Count:      t.count,
			Percentage: shipmentdomain.Percent(float64(t.count), float64(total)),
			Volume:     shipmentdomain.CubicMeters(t.cm3),
			Weight:     shipmentdomain.Kilograms(t.grams),
		})
	}
	return out
}

func buildCarrierBars(carrierDays map[shipmentdomain.Carrier]map[string]*tally) []CarrierBar {
	out := make([]CarrierBar, 0)
	for carrier, byDay := range carrierDays {
		for date, t := range byDay {
			out = append(out, CarrierBar{
				Carrier: string(carrier),
				Date:    date,
				Count:   t.count,
				Volume:  shipmentdomain.CubicMeters(t.cm3),
				Weight:  shipmentdomain.Kilograms(t.grams),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Carrier != out[j].Carrier {
			return out[i].Carrier < out[j].Carrier
		}
		return out[i].Date < out[j].Date
	})
	return out
}

// buildTimeline emits one point per day in window, including empty days.
func buildTimeline(days map[string]*tally, window Window) []CapacityPoint {
	out := make([]CapacityPoint, 0, window.Days())
	var packages int64
	var cm3 float64
	for day := window.From; !day.After(window.To); day = day.AddDate(0, 0, 1) {
		date := day.Format(DateLayout)
		point := CapacityPoint{Date: date}
		if t, ok := days[date]; ok {
			point.Packages = t.count
			point.Volume = shipmentdomain.CubicMeters(t.cm3)
			packages += t.count
			cm3 += t.cm3
		}
		point.CumulativePackages = packages
		point.CumulativeVolume = shipmentdomain.CubicMeters(cm3)
		out = append(out, point)
	}
	return out
}

func buildDestinations(destinations map[shipmentdomain.Destination]*tally, total int64) []DestinationDistribution {
	out := make([]DestinationDistribution, 0, len(destinations))
	for dest, t := range destinations {
		out = append(out, DestinationDistribution{
			Destination:     string(dest),
			Count:           t.count,
			Percentage:      shipmentdomain.Percent(float64(t.count), float64(total)),
			Volume:          shipmentdomain.CubicMeters(t.cm3),
			Weight:          shipmentdomain.Kilograms(t.grams),
			AvgDeliveryTime: t.avgDeliveryTime(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Destination < out[j].Destination
	})
	return out
}

func buildCarrierPerformance(carriers map[shipmentdomain.Carrier]*tally) []CarrierPerformance {
	out := make([]CarrierPerformance, 0, len(carriers))
	for carrier, t := range carriers {
		out = append(out, CarrierPerformance{
			Carrier:            string(carrier),
			TotalShipments:     t.count,
			DeliveredShipments: t.delivered,
			AvgDeliveryTime:    t.avgDeliveryTime(),
			OnTimeDeliveryRate: t.onTimeRate(),
			TotalVolume:        shipmentdomain.CubicMeters(t.cm3),
			TotalWeight:        shipmentdomain.Kilograms(t.grams),
			AirShipments:       t.air,
			SeaShipments:       t.sea,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Carrier < out[j].Carrier })
	return out
}
