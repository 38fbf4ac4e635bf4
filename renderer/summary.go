// Package renderer renders conversion reports as markdown.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/rivsoncs/nova2k"
)

// SummaryMarkdown renders the summary of a conversion, followed by the
// warning and error events if any.
func SummaryMarkdown(s *nova2k.Summary, events []nova2k.Event) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Conversion Summary")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{md.Bold("Rows Read"), md.Bold(fmt.Sprint(s.Stats.Total))},
		Rows: [][]string{
			{"Ledger Entries", fmt.Sprint(s.Stats.Converted)},
			{"Errors", fmt.Sprint(s.Stats.Errors)},
			{"Invalid Rows", fmt.Sprint(s.Invalid)},
		},
	})

	if len(s.Labels) > 0 {
		doc.H2("Labels")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Label", "Entries"},
		}
		for _, l := range s.SortedLabels() {
			name := string(l)
			if l == nova2k.LabelNone {
				name = "(unknown type)"
			}
			table.Rows = append(table.Rows, []string{name, fmt.Sprint(s.Labels[l])})
		}
		doc.Table(table)
	}

	if len(s.Currencies) > 0 {
		doc.H2("Currencies")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Currency", "Received", "Sent", "Fees", "Net"},
		}
		for _, c := range s.Currencies {
			table.Rows = append(table.Rows, []string{
				c.Currency,
				c.Format(c.Received),
				c.Format(c.Sent),
				c.Format(c.Fees),
				c.Format(c.Net()),
			})
		}
		doc.Table(table)
	}

	var problems []string
	for _, e := range events {
		if e.Severity >= nova2k.SeverityWarning {
			problems = append(problems, Event(e))
		}
	}
	if len(problems) > 0 {
		doc.H2("Problems")
		doc.OrderedList(problems...)
	}

	return doc.String()
}

// Event renders a single event on one line.
func Event(e nova2k.Event) string {
	text := e.Message
	if e.Row > 0 {
		text = fmt.Sprintf("row %d: %s", e.Row, text)
	}
	if e.Severity == nova2k.SeverityError {
		return md.Bold("error") + " " + text
	}
	return text
}
