package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// tableView is a listing rendered with go-pretty's rounded style. Rows shorter
// than the header are padded; aligns may be shorter than the header, in which
// case the remaining columns align left.
type tableView struct {
	headers []string
	aligns  []columnAlignment
	rows    [][]string
	footer  []string
}

func (v tableView) render() string {
	if len(v.headers) == 0 {
		return ""
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault

	tw.AppendHeader(v.row(v.headers))
	for _, r := range v.rows {
		tw.AppendRow(v.row(r))
	}
	if len(v.footer) > 0 {
		tw.AppendFooter(v.row(v.footer))
	}

	configs := make([]table.ColumnConfig, len(v.headers))
	for i := range configs {
		align := text.AlignLeft
		if i < len(v.aligns) && v.aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignFooter: align, AlignHeader: text.AlignLeft}
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func (v tableView) row(values []string) table.Row {
	r := make(table.Row, len(v.headers))
	for i := range r {
		if i < len(values) {
			r[i] = values[i]
		} else {
			r[i] = ""
		}
	}
	return r
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	return tableView{headers: headers, aligns: aligns, rows: rows}.render()
}

// printTableOrNotice prints notice instead of an empty table.
func printTableOrNotice(out io.Writer, headers []string, rows [][]string, aligns []columnAlignment, notice string) {
	printView(out, tableView{headers: headers, aligns: aligns, rows: rows}, notice)
}

func printView(out io.Writer, v tableView, notice string) {
	if len(v.rows) == 0 {
		fmt.Fprintln(out, notice)
		return
	}
	fmt.Fprintln(out, v.render())
}
