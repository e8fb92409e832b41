package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agentstation/stagemap/pkg/heat"
	"github.com/agentstation/stagemap/pkg/render"
	"github.com/agentstation/stagemap/pkg/view"
)

// shading ramps, lightest first
var (
	heatRamp = []rune(" .:-=+*#%@")
	barRamp  = []rune(" ▁▂▃▄▅▆▇█")
)

type styles struct {
	title   lipgloss.Style
	dim     lipgloss.Style
	active  lipgloss.Style
	box     lipgloss.Style
	errText lipgloss.Style
	noColor bool
}

func newStyles(noColor bool) styles {
	s := styles{
		title:   lipgloss.NewStyle().Bold(true),
		dim:     lipgloss.NewStyle().Faint(true),
		active:  lipgloss.NewStyle().Bold(true).Reverse(true),
		box:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()),
		errText: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff5f5f")),
		noColor: noColor,
	}
	if noColor {
		s.errText = lipgloss.NewStyle().Bold(true)
	}
	return s
}

func (s styles) color(hex string) lipgloss.Style {
	if s.noColor || hex == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// View implements tea.Model.
func (m *Model) View() string {
	status := m.Status()
	if status != view.StatusReady {
		d := render.DisplayFor(status, "")
		body := m.styles.title.Render(d.Title)
		if status == view.StatusError {
			body = m.styles.errText.Render(d.Title)
			if m.loadErr != nil {
				body += "\n" + m.loadErr.Error()
			}
		}
		if d.Message != "" {
			body += "\n" + d.Message
		}
		return m.styles.box.Render(body) + "\n" + m.styles.dim.Render("q quit")
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteByte('\n')
	b.WriteString(m.styles.box.Render(m.grid()))
	b.WriteByte('\n')
	b.WriteString(m.chartRow())
	b.WriteByte('\n')
	b.WriteString(m.list())
	b.WriteString(m.styles.dim.Render("space play/pause · ←/→ month · m points/heat · +/- speed · q quit"))
	return b.String()
}

func (m *Model) header() string {
	panel := render.NewPanel(m.last)
	state := "stopped"
	if m.Playing() {
		state = "playing"
	}
	mode := string(m.last.State.Mode)
	if m.last.HeatUnavailable {
		mode += " (heat unavailable)"
	}
	return fmt.Sprintf("%s  %s  %s  %s  %s",
		m.styles.title.Render(panel.Month),
		panel.CountLabel,
		state,
		m.Interval(),
		m.styles.dim.Render(mode),
	)
}

// grid draws markers, or the heat layer in heat mode.
func (m *Model) grid() string {
	w, h := m.surface.width, m.surface.height
	cells := make([][]string, h)
	for r := range cells {
		cells[r] = make([]string, w)
		for c := range cells[r] {
			cells[r][c] = " "
		}
	}

	if m.last.State.Mode == view.ModeHeat && m.last.Heat != nil {
		m.drawHeat(cells, m.last.Heat)
	} else {
		for _, mk := range m.markers.Markers() {
			if col, row, ok := m.surface.cell(mk.Pos); ok {
				cells[row][col] = m.styles.color(mk.Color).Render("●")
			}
		}
	}

	rows := make([]string, h)
	for r, line := range cells {
		rows[r] = strings.Join(line, "")
	}
	return strings.Join(rows, "\n")
}

func (m *Model) drawHeat(cells [][]string, layer *heat.Layer) {
	w, h := m.surface.width, m.surface.height
	sums := make([]float64, w*h)
	for _, p := range layer.Points {
		col, row, ok := m.surface.cell(m.surface.Project(render.LatLng{Lat: p.Lat, Lng: p.Lng}))
		if ok {
			sums[row*w+col] += p.Intensity
		}
	}
	opts := heat.DefaultOptions()
	for i, v := range sums {
		if v == 0 {
			continue
		}
		ratio := min(v/layer.Max, 1)
		ch := heatRamp[max(1, int(ratio*float64(len(heatRamp)-1)))]
		cells[i/w][i%w] = m.styles.color(opts.ColorAt(ratio)).Render(string(ch))
	}
}

// chartRow draws one column per month, windowed around the active month
// when there are more months than columns.
func (m *Model) chartRow() string {
	bars := m.chart.Bars
	width := max(m.width-2, 1)
	start := 0
	if len(bars) > width {
		start = max(0, min(m.chart.Active()-width/2, len(bars)-width))
		bars = bars[start : start+width]
	}

	var b strings.Builder
	b.WriteByte(' ')
	for _, bar := range bars {
		level := 0
		if m.chart.Max > 0 && bar.Count > 0 {
			level = max(1, int(float64(bar.Count)/m.chart.Max*float64(len(barRamp)-1)))
		}
		ch := string(barRamp[level])
		if bar.Active {
			ch = m.styles.active.Render(ch)
		}
		b.WriteString(ch)
	}
	return b.String()
}

func (m *Model) list() string {
	l := render.NewList(m.last.Frame.Events)
	if l.Message != "" {
		return m.styles.dim.Render(l.Message) + "\n"
	}
	var b strings.Builder
	for i, card := range l.Cards {
		if i == listRows {
			fmt.Fprintf(&b, "%s\n", m.styles.dim.Render(fmt.Sprintf("… %d more", l.Total-listRows)))
			break
		}
		b.WriteString(card.Name)
		for _, badge := range card.Badges {
			b.WriteString(" ")
			b.WriteString(m.styles.color(badge.Color).Render("[" + badge.Text + "]"))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
