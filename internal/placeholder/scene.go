// Package placeholder renders small SVG sketches used when real image
// generation is unavailable. Rendering is pure and never fails.
package placeholder

import (
	"encoding/base64"
	"fmt"
	"html"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/webshunter/animemacker/internal/keywords"
)

const svgMIME = "image/svg+xml"

// ImageResource is a self-contained rendered image.
type ImageResource struct {
	MIME string
	Data []byte
}

// DataURI encodes the resource as a base64 data URI.
func (r ImageResource) DataURI() string {
	return "data:" + r.MIME + ";base64," + base64.StdEncoding.EncodeToString(r.Data)
}

type palette struct {
	background string
	figure     string
	accent     string
}

// Synthesizer renders scene placeholders for a taxonomy.
type Synthesizer struct {
	tax   *keywords.Taxonomy
	upper cases.Caser
}

// New returns a Synthesizer. A nil taxonomy selects the embedded default.
func New(tax *keywords.Taxonomy) *Synthesizer {
	if tax == nil {
		tax = keywords.Default()
	}
	return &Synthesizer{tax: tax, upper: cases.Upper(language.Und)}
}

// Scene classifies prompt on its own and draws a 400x300 scene: background
// keyed off night and rain, a figure posed for the highest-precedence action
// that has a pose, optional rain streaks, and city or nature decorations.
func (s *Synthesizer) Scene(prompt string) ImageResource {
	cls := s.tax.Classify(prompt)
	pal := palette{background: "#87CEEB", figure: "#FFB6C1", accent: "#FFD700"}
	if cls.HasEnvironment(keywords.EnvNight) {
		pal = palette{background: "#191970", figure: "#E6E6FA", accent: "#FFD700"}
	}
	if cls.HasEnvironment(keywords.EnvRain) {
		pal.accent = "#B0C4DE"
	}
	city := cls.HasEnvironment(keywords.EnvCity)

	tag := cls.FirstActionWhere(func(rule keywords.ActionRule) bool {
		_, ok := poses[rule.Tag]
		return ok && rule.Label != ""
	})
	p, ok := poses[tag]
	if !ok {
		p = poses[keywords.ActionDefault]
	}
	label := "ACTION"
	if rule, ok := s.tax.Action(tag); ok && rule.Label != "" {
		label = s.upper.String(rule.Label)
	}

	var sb strings.Builder
	sb.WriteString(`<svg width="400" height="300" xmlns="http://www.w3.org/2000/svg">`)
	fmt.Fprintf(&sb, `<rect width="400" height="300" fill="%s"/>`, pal.background)
	ground := "#90EE90"
	if city {
		ground = "#696969"
	}
	fmt.Fprintf(&sb, `<rect x="0" y="250" width="400" height="50" fill="%s"/>`, ground)
	fmt.Fprintf(&sb, `<circle cx="200" cy="180" r="25" fill="%s"/>`, pal.figure)
	fmt.Fprintf(&sb, `<rect x="185" y="205" width="30" height="40" fill="%s"/>`, pal.figure)
	p.draw(&sb, pal)
	fmt.Fprintf(&sb, `<text x="200" y="140" text-anchor="middle" font-family="Arial" font-size="12" fill="white" stroke="black" stroke-width="0.5">%s</text>`, html.EscapeString(label))

	if cls.HasEnvironment(keywords.EnvRain) {
		fmt.Fprintf(&sb, `<g stroke="%s" stroke-width="1" opacity="0.6">`, pal.accent)
		for _, d := range rainDrops {
			fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d"/>`, d[0], d[1], d[0]+5, d[1]+30)
		}
		sb.WriteString(`</g>`)
	}
	if city {
		for _, b := range buildings {
			fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" fill="#2F4F4F"/>`, b[0], b[1], b[2], b[3])
		}
	} else {
		sb.WriteString(`<circle cx="80" cy="200" r="15" fill="#228B22"/>`)
		sb.WriteString(`<circle cx="320" cy="190" r="20" fill="#228B22"/>`)
		sb.WriteString(`<circle cx="50" cy="180" r="10" fill="#32CD32"/>`)
		sb.WriteString(`<circle cx="350" cy="200" r="12" fill="#32CD32"/>`)
	}
	sb.WriteString(`<text x="200" y="280" text-anchor="middle" font-family="Arial" font-size="14" fill="white" stroke="black" stroke-width="0.5">Character in Action</text>`)
	sb.WriteString(`</svg>`)
	return ImageResource{MIME: svgMIME, Data: []byte(sb.String())}
}

var rainDrops = [][2]int{{50, 50}, {100, 30}, {150, 70}, {200, 40}, {250, 60}, {300, 20}, {350, 80}}

var buildings = [][4]int{
	{0, 150, 30, 100}, {40, 120, 25, 130}, {80, 140, 35, 110}, {130, 100, 20, 150},
	{270, 130, 30, 120}, {320, 110, 25, 140}, {360, 160, 40, 90},
}
