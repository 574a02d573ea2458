package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/midwife-middleware/showbook/catalog"
)

// printProviderTable writes the static provider reference set. It
// touches nothing but the writer: no config, no credential, no network.
func printProviderTable(w io.Writer) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)

	tw.AppendHeader(table.Row{"ID", "Provider", "Regions"})
	for _, p := range catalog.Providers {
		tw.AppendRow(table.Row{strconv.Itoa(p.ID), p.Name, strings.Join(p.Regions, ", ")})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})

	fmt.Fprintln(w, "Tracked streaming providers (TMDB watch-provider IDs):")
	tw.Render()
}
