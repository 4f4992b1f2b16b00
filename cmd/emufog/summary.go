package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/emufog/emufog-sub000/graph"
	"github.com/emufog/emufog-sub000/pipeline"
)

// printSummary writes one row per system and a status line.
func printSummary(w io.Writer, g *graph.Graph, out *pipeline.Outcome, colored bool) {
	noColor := color.New()
	header := noColor
	statusGood := noColor
	statusBad := noColor
	if colored {
		header = color.New(color.FgHiBlack)
		statusGood = color.New(color.FgGreen)
		statusBad = color.New(color.FgRed)
	}

	header.Fprintf(w, "Backbone: %d cross-system, %d high-degree, %d connector conversions\n",
		out.Backbone.CrossSystem, out.Backbone.HighDegree, out.Backbone.Connector)
	header.Fprintf(w, "Devices: %d on %d hosts\n", out.Devices.Devices, out.Devices.Hosts)

	bySystem := out.Result.BySystem()
	rows := make([][]string, 0, len(g.Systems()))
	for _, s := range g.Systems() {
		served := 0
		for _, p := range bySystem[s.ID()] {
			served += p.Devices()
		}
		rows = append(rows, []string{
			strconv.Itoa(s.ID()),
			strconv.Itoa(s.CountBackbone()),
			strconv.Itoa(s.CountEdge()),
			strconv.Itoa(s.CountDevice()),
			strconv.Itoa(len(bySystem[s.ID()])),
			strconv.Itoa(served),
		})
	}
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"AS", "BACKBONE", "EDGE", "DEVICES", "FOG NODES", "SERVED"})
	table.AppendBulk(rows)
	table.Render()

	if out.Result.Success {
		statusGood.Fprintf(w, "Placed %d fog nodes\n", len(out.Result.Placements))
		return
	}
	statusBad.Fprintf(w, "Placement failed after %d fog nodes: %v\n",
		len(out.Result.Placements), out.Result.Reason)
	fmt.Fprintln(w, "No script written.")
}
