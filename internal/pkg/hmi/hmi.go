/*
Package hmi renders the registered example systems in a terminal UI: a
summary table of every built model and a tree view of the selected model's
bus topology.
*/
package hmi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell"
	"github.com/rivo/tview"

	"github.com/ohowland/esm_core/internal/pkg/registry"
)

const logo = `
 ______________________________________________
 _/\/\/\/\/\____/\/\/\/\/\____/\/\______/\/\___
 _/\/\__________/\/\__________/\/\/\__/\/\/\___
 _/\/\/\/\/\____/\/\/\/\/\____/\/\/\/\/\/\/\___
 _/\/\________________/\/\____/\/\__/\__/\/\___
 _/\/\/\/\/\____/\/\/\/\/\____/\/\______/\/\___
 ______________________________________________
`

type page func(pages *tview.Pages) (title string, content tview.Primitive)

// HMI owns the terminal application and its pages.
type HMI struct {
	app      *tview.Application
	pages    *tview.Pages
	registry *registry.Registry
	topology *tview.TreeView
}

// New assembles the UI over a populated registry.
func New(reg *registry.Registry) *HMI {
	h := &HMI{
		app:      tview.NewApplication(),
		pages:    tview.NewPages(),
		registry: reg,
		topology: tview.NewTreeView(),
	}

	for _, p := range []page{h.splash, h.overview, h.topologyPage} {
		title, primitive := p(h.pages)
		h.pages.AddPage(title, primitive, true, title == "Splash")
	}

	h.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyEscape:
			h.pages.SwitchToPage("Overview")
			return nil
		case event.Key() == tcell.KeyRune && event.Rune() == 'q':
			h.app.Stop()
			return nil
		}
		return event
	})

	return h
}

// Run blocks until the user quits.
func (h *HMI) Run() error {
	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(h.pages, 0, 1, true)

	return h.app.SetRoot(layout, true).Run()
}

func (h *HMI) splash(pages *tview.Pages) (string, tview.Primitive) {
	lines := strings.Split(logo, "\n")
	logoWidth := 0
	logoHeight := len(lines)
	for _, line := range lines {
		if len(line) > logoWidth {
			logoWidth = len(line)
		}
	}
	logoBox := tview.NewTextView().
		SetTextColor(tcell.ColorBlue).
		SetDoneFunc(func(key tcell.Key) {
			pages.ShowPage("Overview")
		})

	fmt.Fprint(logoBox, logo)

	frame := tview.NewFrame(tview.NewBox()).
		SetBorders(0, 0, 0, 0, 0, 0).
		AddText("Energy System Models v0.0.1", true, tview.AlignCenter, tcell.ColorWhite).
		AddText("", true, tview.AlignCenter, tcell.ColorWhite).
		AddText("press enter", true, tview.AlignCenter, tcell.ColorDarkMagenta)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(tview.NewBox(), 0, 5, false).
		AddItem(tview.NewFlex().
			AddItem(tview.NewBox(), 0, 1, false).
			AddItem(logoBox, logoWidth, 1, true).
			AddItem(tview.NewBox(), 0, 1, false), logoHeight, 1, true).
		AddItem(frame, 0, 10, false)

	return "Splash", flex
}

func (h *HMI) overview(pages *tview.Pages) (string, tview.Primitive) {
	table := tview.NewTable().SetFixed(1, 1)

	header := []string{"System", "Nodes", "Steps", "Start", "Constraints", "Dump"}
	for column, cell := range header {
		table.SetCell(0, column, tview.NewTableCell(cell).
			SetTextColor(tcell.ColorYellow).
			SetAlign(tview.AlignLeft).
			SetSelectable(false))
	}

	entries := h.registry.Entries()
	for i, e := range entries {
		tf := e.System.Timeframe()
		gc := e.System.GlobalConstraints()
		row := []string{
			e.UID,
			strconv.Itoa(len(e.System.Nodes())),
			strconv.Itoa(tf.Len()),
			tf.Start.Format("2006-01-02"),
			orDash(gc.Name),
			orDash(e.Path),
		}
		for column, cell := range row {
			color := tcell.ColorWhite
			if column == 0 {
				color = tcell.ColorDarkCyan
			}
			table.SetCell(i+1, column, tview.NewTableCell(cell).
				SetTextColor(color).
				SetAlign(tview.AlignLeft).
				SetSelectable(true))
		}
	}

	table.SetBorder(true)
	table.SetTitle(" Example Systems ")

	table.SetBorders(false).
		SetSelectable(true, false).
		SetSeparator(' ').
		SetSelectedFunc(func(row, column int) {
			if row < 1 || row > len(entries) {
				return
			}
			h.showTopology(entries[row-1])
			pages.SwitchToPage("Topology")
		})

	flex := tview.NewFlex().
		AddItem(tview.NewFlex().
			SetDirection(tview.FlexRow).
			AddItem(table, 0, 1, true), 0, 1, true)

	return "Overview", flex
}

func (h *HMI) topologyPage(pages *tview.Pages) (string, tview.Primitive) {
	h.topology.SetBorder(true)
	h.topology.SetTitle(" Topology ")
	return "Topology", h.topology
}

// showTopology rebuilds the tree for the selected system: one branch per
// bus, references grouped by flow direction.
func (h *HMI) showTopology(e registry.Entry) {
	root := tview.NewTreeNode(e.UID).SetColor(tcell.ColorBlue)
	for _, b := range e.System.Busses() {
		busNode := tview.NewTreeNode(b.Name).SetColor(tcell.ColorDarkCyan)
		for _, r := range b.Inputs {
			busNode.AddChild(tview.NewTreeNode(r.String() + " ->"))
		}
		for _, r := range b.Outputs {
			busNode.AddChild(tview.NewTreeNode("-> " + r.String()))
		}
		root.AddChild(busNode)
	}
	h.topology.SetRoot(root).SetCurrentNode(root)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
