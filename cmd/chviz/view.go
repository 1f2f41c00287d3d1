package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	s := m.chain.Stats()

	header := headerStyle.Render(fmt.Sprintf("chviz  %d chunks × %d bytes per pool  [%s]",
		s.ChunksPerPool, s.ChunkSize, s.Strategy))

	sections := []string{header}
	for i, free := range m.chain.Occupancy() {
		sections = append(sections, m.renderPool(i, free))
	}

	summary := fmt.Sprintf("pools %d  used %d / %d (%.1f%%)  arena %d B  bitmap %d B",
		s.Pools, s.UsedChunks, s.TotalChunks, s.Utilization*100, s.ArenaBytes, s.BitmapBytes)
	sections = append(sections, statusStyle.Render(summary))

	switch {
	case m.err != nil:
		sections = append(sections, errorStyle.Render("error: "+m.err.Error()))
	case m.status != "":
		sections = append(sections, okStyle.Render(m.status))
	}

	if m.showHelp {
		sections = append(sections, m.renderHelp())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderPool draws one pool's bitmap as a grid of cells, one per chunk.
func (m Model) renderPool(idx int, free []bool) string {
	// Border and padding take four columns.
	perRow := max(m.width-4, 8)

	used := 0
	var b strings.Builder
	for i, f := range free {
		if i > 0 && i%perRow == 0 {
			b.WriteByte('\n')
		}
		if f {
			b.WriteString(freeCellStyle.Render(freeCell))
		} else {
			used++
			b.WriteString(usedCellStyle.Render(usedCell))
		}
	}

	title := poolTitleStyle.Render(fmt.Sprintf("pool %d  %d/%d used", idx, used, len(free)))
	return poolStyle.Render(title + "\n" + b.String())
}

func (m Model) renderHelp() string {
	parts := make([]string, 0, len(m.keys.shortHelp()))
	for _, k := range m.keys.shortHelp() {
		h := k.Help()
		parts = append(parts, helpKeyStyle.Render(h.Key)+" "+helpDescStyle.Render(h.Desc))
	}
	return statusStyle.Render(strings.Join(parts, "  "))
}
