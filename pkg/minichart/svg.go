package minichart

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// RenderSVG writes the chart as a standalone SVG document. Bars carry
// class "miniBar" (plus "active") and a data-index for click handling;
// axis labels carry class "miniAxisText".
func RenderSVG(w io.Writer, c *Chart) error {
	var svg strings.Builder

	cfg := c.Config
	svg.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" id="miniChart" viewBox="0 0 %s %s" width="%s" height="%s">`,
		num(cfg.Width), num(cfg.Height), num(cfg.Width), num(cfg.Height)))
	svg.WriteString("\n<g>\n")
	for _, b := range c.Bars {
		class := "miniBar"
		if b.Active {
			class += " active"
		}
		svg.WriteString(fmt.Sprintf(`<rect class="%s" data-index="%d" x="%s" y="%s" width="%s" height="%s"><title>%s: %d</title></rect>`,
			class, b.Index, num(b.X), num(b.Y), num(b.Width), num(b.Height), escapeXML(b.Month), b.Count))
		svg.WriteString("\n")
	}
	svg.WriteString("</g>\n<g>\n")
	for _, t := range c.Ticks {
		svg.WriteString(fmt.Sprintf(`<text class="miniAxisText" x="%s" y="%s" text-anchor="middle">%s</text>`,
			num(t.X), num(t.Y), escapeXML(t.Label)))
		svg.WriteString("\n")
	}
	svg.WriteString("</g>\n</svg>\n")

	_, err := io.WriteString(w, svg.String())
	return err
}

// num formats a coordinate with at most two decimals.
func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}

// escapeXML escapes special XML characters in a string to ensure valid SVG output.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
