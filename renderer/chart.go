package renderer

import (
	"errors"
	"fmt"
	"io"

	"github.com/etnz/investmap"
	"github.com/wcharczuk/go-chart/v2"
)

// ErrNothingToChart is returned when no purchase has a positive investment.
var ErrNothingToChart = errors.New("no invested capital to chart")

// AllocationChart writes a PNG pie chart of the capital invested per stock
// tag. Sales are not part of the allocation.
func AllocationChart(w io.Writer, records []investmap.AssetRecord) error {
	tags, invested := investmap.Allocation(records)
	var values []chart.Value
	for _, tag := range tags {
		amount := invested[tag]
		if !amount.IsPositive() {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %s", tag, amount),
			Value: amount.AsFloat(),
		})
	}
	if len(values) == 0 {
		return ErrNothingToChart
	}

	pie := chart.PieChart{
		Title:  "Invested capital by asset",
		Width:  640,
		Height: 640,
		Values: values,
	}
	if err := pie.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering allocation chart: %w", err)
	}
	return nil
}
