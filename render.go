package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mrdg/pads/audio"
)

var (
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#fff"))
	sampleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5f87d7"))
	padStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#5faf5f"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd75f")).Bold(true)
	playheadStyle = lipgloss.NewStyle().Reverse(true)
	recordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#d75f5f")).Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
)

const maxNameLen = 14

func renderStatus(st audio.Status, selected int, w io.Writer) {
	fmt.Fprintln(w, renderTransport(st))

	var beats strings.Builder
	for step := 0; step < audio.NumSteps; step++ {
		label := "·"
		if step%4 == 0 {
			label = strconv.Itoa(step/4 + 1)
		}
		beats.WriteString(label + " ")
	}
	fmt.Fprintf(w, "%s %s\n", strings.Repeat(" ", maxNameLen+6), statusStyle.Render(beats.String()))

	for pad, ps := range st.Pads {
		id := padStyle.Render(fmt.Sprintf("%2d", pad+1))
		if pad == selected {
			id = selectedStyle.Render(fmt.Sprintf("%2d", pad+1))
		}

		flags := "  "
		switch {
		case ps.Muted:
			flags = dimStyle.Render("M ")
		case ps.Soloed:
			flags = activeStyle.Render("S ")
		}

		var steps strings.Builder
		for step, on := range st.Grid[pad] {
			cell := dimStyle.Render("□")
			if on {
				cell = activeStyle.Render("■")
			}
			if step == st.Step {
				cell = playheadStyle.Render(cell)
			}
			steps.WriteString(cell + " ")
		}

		var extra []string
		if ps.Voices > 0 {
			extra = append(extra, fmt.Sprintf("♪%d", ps.Voices))
		}
		if ps.OffGrid > 0 {
			extra = append(extra, fmt.Sprintf("+%d", ps.OffGrid))
		}
		if ps.Held {
			extra = append(extra, "●")
		}

		fmt.Fprintf(w, "%s %s %s %s%s\n", id, formatSampleName(ps, maxNameLen), flags,
			steps.String(), statusStyle.Render(strings.Join(extra, " ")))
	}
}

func renderTransport(st audio.Status) string {
	state := dimStyle.Render("■ stopped")
	if st.Running {
		state = activeStyle.Render(fmt.Sprintf("▶ step %2d", st.Step+1))
	}
	parts := []string{
		state,
		fmt.Sprintf("%.1f bpm", st.Tempo),
		fmt.Sprintf("swing %.0f", st.Swing),
		fmt.Sprintf("bank %d", st.Bank+1),
	}
	if st.Pending > 0 {
		parts = append(parts, fmt.Sprintf("pending %d", st.Pending))
	}
	line := strings.Join(parts, statusStyle.Render(" | "))
	if st.Armed {
		line += " " + recordStyle.Render("● rec")
	}
	return line
}

func formatSampleName(ps audio.PadStatus, max int) string {
	if !ps.HasSample {
		return dimStyle.Render("-" + strings.Repeat(" ", max-1))
	}
	name := []rune(displayName(ps.Sample))
	if len(name) > max {
		name = append(name[:max-1], '…')
	}
	sample := string(name)
	if n := len(name); n < max {
		sample += strings.Repeat(" ", max-n)
	}
	return sampleStyle.Render(sample)
}

func displayName(filename string) string {
	filename = filepath.Base(filename)
	return filename[:len(filename)-len(filepath.Ext(filename))]
}
