package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/investmap"
	md "github.com/nao1215/markdown"
)

// Options holds configuration for rendering the asset table.
type Options struct {
	// Selected marks the rows picked for the next refresh.
	Selected *investmap.Selection
	// Formatter formats every amount. Defaults to investmap.NewFormatter("").
	Formatter *money.Formatter
}

func (o Options) formatter() *money.Formatter {
	if o.Formatter == nil {
		return investmap.NewFormatter("")
	}
	return o.Formatter
}

// AssetsMarkdown renders the asset table followed by the portfolio totals.
func AssetsMarkdown(s *investmap.Summary, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Assets")
	if len(s.Rows) == 0 {
		doc.PlainText("No assets yet, use `investmap add` to record a purchase.")
		return doc.String()
	}
	doc.Table(AssetTable(s, opts))

	doc.H2("Totals")
	doc.Table(Totals(s, opts))

	var out strings.Builder
	out.WriteString(doc.String())
	ConditionalBlock(&out, func(w io.Writer) bool {
		return selectionSection(w, s, opts.Selected)
	})
	return out.String()
}

// Totals returns the portfolio totals as a two column table.
func Totals(s *investmap.Summary, opts Options) md.TableSet {
	f := opts.formatter()
	return md.TableSet{
		Header:    []string{"Total", "Value"},
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Rows: [][]string{
			{"Total investment", s.TotalInvestment.Format(f)},
			{"Total profit/loss", profitCell(s.TotalProfitLoss, s.TotalProfitLossPercent, f)},
			{"Total portfolio value", md.Bold(s.PortfolioValue.Format(f))},
			{"Total unique assets", fmt.Sprint(s.UniqueAssets)},
		},
	}
}

// AssetTable returns one table row per record, in summary order.
func AssetTable(s *investmap.Summary, opts Options) md.TableSet {
	f := opts.formatter()
	table := md.TableSet{
		Header: []string{"", "Type", "Stock Tag", "Exchange", "Name", "Price", "Quantity", "Current Price", "Investment", "Profit/Loss"},
		Alignment: []md.TableAlignment{
			md.AlignCenter, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft,
			md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight,
		},
	}
	for _, r := range s.Rows {
		marker := "[ ]"
		if opts.Selected.Has(r.ID) {
			marker = "[x]"
		}
		table.Rows = append(table.Rows, []string{
			marker,
			r.Kind(),
			cell(r.StockTag),
			cell(r.Exchange),
			cell(r.ResolvedName()),
			r.Price.Format(f),
			r.Quantity.String(),
			r.ResolvedCurrentPrice().Format(f),
			r.Investment.Format(f),
			profitCell(r.ProfitOrLoss, r.ProfitOrLossPercent, f),
		})
	}
	return table
}

// cell escapes the pipes of a server provided value.
func cell(s string) string { return strings.ReplaceAll(s, "|", `\|`) }

// profitCell formats an amount with its percentage: "20.00 (10.00%)".
func profitCell(m investmap.Money, p investmap.Percent, f *money.Formatter) string {
	return fmt.Sprintf("%s (%s)", m.Format(f), p)
}

// selectionSection lists the selected records. It reports whether anything
// was written.
func selectionSection(w io.Writer, s *investmap.Summary, sel *investmap.Selection) bool {
	if sel.Len() == 0 {
		return false
	}
	var tags []string
	for _, r := range s.Rows {
		if sel.Has(r.ID) {
			tags = append(tags, fmt.Sprintf("#%d %s", r.ID, r.StockTag))
		}
	}
	doc := md.NewMarkdown(w)
	doc.PlainText("")
	doc.H2("Selected for refresh")
	doc.PlainTextf("%d/%d: %s", sel.Len(), investmap.MaxSelection, strings.Join(tags, ", "))
	return doc.Build() == nil
}
