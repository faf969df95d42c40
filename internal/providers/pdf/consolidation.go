package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

const defaultReportTitle = "Consolidation Opportunities"

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateConsolidationReport(ctx context.Context, report ConsolidationReport) (io.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(report.Title)
	if title == "" {
		title = defaultReportTitle
	}
	resp := report.Groups

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, title, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(14,
		col.New(12).Add(
			text.New("Generated: "+report.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"), props.Text{Size: 9, Top: 0}),
			text.New(fmt.Sprintf("Filters: carrier %s, mode %s, destination %s, minimum group size %d",
				resp.Filters.Carrier, resp.Filters.Mode, resp.Filters.Destination, resp.Filters.MinGroupSize,
			), props.Text{Size: 9, Top: 5}),
		),
	)

	// Summary
	summary := resp.Summary
	m.AddRow(8, text.NewCol(12, "Summary", props.Text{Size: 12, Style: fontstyle.Bold, Top: 2}))
	for _, line := range [][2]string{
		{"Groups", strconv.Itoa(summary.TotalGroups)},
		{"Shipments", strconv.Itoa(summary.TotalShipments)},
		{"Potential savings", formatMoney(summary.TotalPotentialSavings)},
		{"Average shipments per group", strconv.FormatFloat(summary.AvgShipmentsPerGroup, 'f', 2, 64)},
		{"Top destination", summary.TopDestination},
		{"Top carrier", summary.TopCarrier},
		{"Top mode", summary.TopMode},
	} {
		m.AddRow(6,
			text.NewCol(4, line[0], props.Text{Size: 9}),
			text.NewCol(8, line[1], props.Text{Size: 9, Style: fontstyle.Bold}),
		)
	}

	m.AddRow(8, text.NewCol(12, fmt.Sprintf("Groups (page %d of %d)",
		resp.Pagination.CurrentPage, resp.Pagination.TotalPages,
	), props.Text{Size: 12, Style: fontstyle.Bold, Top: 4}))

	// Table Header
	header := props.Text{Style: fontstyle.Bold, Size: 8}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}
	m.AddRow(8,
		text.NewCol(4, "Group", header),
		text.NewCol(2, "Departure", header),
		text.NewCol(1, "Count", headerRight),
		text.NewCol(2, "Weight (kg)", headerRight),
		text.NewCol(1, "Vol (m³)", headerRight),
		text.NewCol(2, "Savings", headerRight),
	)

	cell := props.Text{Size: 8}
	cellRight := props.Text{Size: 8, Align: align.Right}
	for _, g := range resp.ConsolidationGroups {
		m.AddRow(7,
			text.NewCol(4, fmt.Sprintf("%s / %s / %s", g.Destination, g.Carrier, g.Mode), cell),
			text.NewCol(2, g.DepartureDate, cell),
			text.NewCol(1, strconv.Itoa(g.ShipmentCount), cellRight),
			text.NewCol(2, strconv.FormatFloat(g.TotalWeight, 'f', 2, 64), cellRight),
			text.NewCol(1, strconv.FormatFloat(g.TotalVolume, 'f', 2, 64), cellRight),
			text.NewCol(2, formatMoney(g.PotentialSavings), cellRight),
		)
	}
	if len(resp.ConsolidationGroups) == 0 {
		m.AddRow(8, text.NewCol(12, "No consolidation opportunities for the selected filters.", props.Text{Size: 9, Top: 2}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

func formatMoney(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

