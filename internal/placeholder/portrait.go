package placeholder

import (
	"fmt"
	"html"
	"strings"
)

type colorHint struct {
	words []string
	hex   string
}

// Checked in order; the first hint with a matching word wins.
var (
	hairHints = []colorHint{
		{words: []string{"pink"}, hex: "FF69B4"},
		{words: []string{"silver", "gray"}, hex: "C0C0C0"},
		{words: []string{"blue"}, hex: "4169E1"},
		{words: []string{"red"}, hex: "FF4500"},
		{words: []string{"green"}, hex: "32CD32"},
		{words: []string{"purple"}, hex: "9370DB"},
		{words: []string{"black"}, hex: "2F2F2F"},
		{words: []string{"brown"}, hex: "8B4513"},
	}
	eyeHints = []colorHint{
		{words: []string{"blue"}, hex: "4169E1"},
		{words: []string{"violet", "purple"}, hex: "9370DB"},
		{words: []string{"green"}, hex: "32CD32"},
		{words: []string{"brown"}, hex: "8B4513"},
		{words: []string{"black"}, hex: "2F2F2F"},
	}
)

const (
	defaultHairHex = "FF69B4"
	defaultEyeHex  = "4169E1"
)

func pickColor(desc string, hints []colorHint, fallback string) string {
	for _, h := range hints {
		for _, w := range h.words {
			if strings.Contains(desc, w) {
				return h.hex
			}
		}
	}
	return fallback
}

// Portrait draws a 200x200 character portrait from a free-text description,
// tinting hair and eyes by the colors it mentions.
func Portrait(description string) ImageResource {
	desc := strings.ToLower(description)
	hair := pickColor(desc, hairHints, defaultHairHex)
	eyes := pickColor(desc, eyeHints, defaultEyeHex)

	caption := strings.Fields(description)
	if len(caption) > 3 {
		caption = caption[:3]
	}

	var sb strings.Builder
	sb.WriteString(`<svg width="200" height="200" xmlns="http://www.w3.org/2000/svg">`)
	fmt.Fprintf(&sb, `<defs><linearGradient id="bg" x1="0%%" y1="0%%" x2="100%%" y2="100%%">`+
		`<stop offset="0%%" style="stop-color:#%s40;stop-opacity:1"/>`+
		`<stop offset="100%%" style="stop-color:#%s20;stop-opacity:1"/>`+
		`</linearGradient></defs>`, hair, hair)
	sb.WriteString(`<rect width="200" height="200" fill="url(#bg)"/>`)
	sb.WriteString(`<ellipse cx="100" cy="90" rx="35" ry="40" fill="#FDBCB4"/>`)
	fmt.Fprintf(&sb, `<ellipse cx="100" cy="70" rx="40" ry="35" fill="#%s"/>`, hair)
	if strings.Contains(desc, "long") {
		fmt.Fprintf(&sb, `<ellipse cx="100" cy="120" rx="25" ry="20" fill="#%s"/>`, hair)
	}
	fmt.Fprintf(&sb, `<circle cx="90" cy="85" r="6" fill="#%s"/><circle cx="110" cy="85" r="6" fill="#%s"/>`, eyes, eyes)
	sb.WriteString(`<circle cx="90" cy="85" r="3" fill="white"/><circle cx="110" cy="85" r="3" fill="white"/>`)
	sb.WriteString(`<ellipse cx="100" cy="100" rx="8" ry="4" fill="#FF69B4"/>`)
	sb.WriteString(`<rect x="75" y="130" width="50" height="60" fill="#4169E1" opacity="0.8"/>`)
	fmt.Fprintf(&sb, `<text x="100" y="190" text-anchor="middle" font-family="Arial" font-size="10" fill="white">%s</text>`,
		html.EscapeString(strings.Join(caption, " ")))
	sb.WriteString(`</svg>`)
	return ImageResource{MIME: svgMIME, Data: []byte(sb.String())}
}
