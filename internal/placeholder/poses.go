package placeholder

import (
	"fmt"
	"strings"

	"github.com/webshunter/animemacker/internal/keywords"
)

type limb struct {
	x, y   int
	rotate float64
	cx, cy float64
}

type pose struct {
	limbs  [2]limb
	extras []string
}

// draw writes the limbs in the figure color and the extras with {accent}
// replaced by the accent color.
func (p pose) draw(sb *strings.Builder, pal palette) {
	for _, l := range p.limbs {
		if l.rotate == 0 {
			fmt.Fprintf(sb, `<rect x="%d" y="%d" width="15" height="30" fill="%s"/>`, l.x, l.y, pal.figure)
			continue
		}
		fmt.Fprintf(sb, `<rect x="%d" y="%d" width="15" height="30" fill="%s" transform="rotate(%g %g %g)"/>`,
			l.x, l.y, pal.figure, l.rotate, l.cx, l.cy)
	}
	for _, e := range p.extras {
		sb.WriteString(strings.ReplaceAll(e, "{accent}", pal.accent))
	}
}

var still = [2]limb{{x: 185, y: 210}, {x: 200, y: 210}}

var poses = map[keywords.ActionTag]pose{
	keywords.ActionDance: {
		limbs: [2]limb{{x: 170, y: 210, rotate: -20, cx: 177.5, cy: 225}, {x: 215, y: 210, rotate: 20, cx: 222.5, cy: 225}},
		extras: []string{
			`<path d="M150 200 Q200 150 250 200" stroke="{accent}" stroke-width="3" fill="none" opacity="0.7"/>`,
			`<path d="M180 220 Q200 180 220 220" stroke="{accent}" stroke-width="2" fill="none" opacity="0.5"/>`,
		},
	},
	keywords.ActionRun: {
		limbs:  [2]limb{{x: 170, y: 210, rotate: -30, cx: 177.5, cy: 225}, {x: 215, y: 210, rotate: 30, cx: 222.5, cy: 225}},
		extras: []string{`<path d="M120 200 Q200 180 280 200" stroke="{accent}" stroke-width="2" fill="none" opacity="0.7"/>`},
	},
	keywords.ActionJump: {
		limbs:  [2]limb{{x: 185, y: 200, rotate: -45, cx: 192.5, cy: 215}, {x: 200, y: 200, rotate: 45, cx: 207.5, cy: 215}},
		extras: []string{`<path d="M200 250 Q200 150 200 100" stroke="{accent}" stroke-width="3" fill="none" opacity="0.7"/>`},
	},
	keywords.ActionFight: {
		limbs:  [2]limb{{x: 170, y: 210, rotate: -45, cx: 177.5, cy: 225}, {x: 215, y: 210, rotate: 45, cx: 222.5, cy: 225}},
		extras: []string{`<path d="M150 180 Q200 160 250 180" stroke="{accent}" stroke-width="3" fill="none" opacity="0.7"/>`},
	},
	keywords.ActionSing: {
		limbs:  still,
		extras: []string{`<path d="M200 200 Q220 180 240 200" stroke="{accent}" stroke-width="2" fill="none" opacity="0.7"/>`},
	},
	keywords.ActionCook: {
		limbs:  still,
		extras: []string{`<circle cx="180" cy="190" r="8" fill="{accent}" opacity="0.7"/>`},
	},
	keywords.ActionStudy: {
		limbs:  still,
		extras: []string{`<rect x="170" y="170" width="60" height="40" fill="{accent}" opacity="0.3"/>`},
	},
	keywords.ActionSleep: {
		limbs: still,
		extras: []string{
			`<rect x="150" y="200" width="100" height="20" fill="{accent}" opacity="0.3" rx="10"/>`,
			`<circle cx="180" cy="190" r="3" fill="{accent}" opacity="0.7"/>`,
			`<circle cx="220" cy="190" r="3" fill="{accent}" opacity="0.7"/>`,
		},
	},
	keywords.ActionWork: {
		limbs: still,
		extras: []string{
			`<rect x="170" y="170" width="60" height="40" fill="{accent}" opacity="0.3"/>`,
			`<rect x="180" y="180" width="40" height="20" fill="{accent}" opacity="0.5"/>`,
		},
	},
	keywords.ActionPlay: {
		limbs: still,
		extras: []string{
			`<circle cx="180" cy="190" r="8" fill="{accent}" opacity="0.7"/>`,
			`<circle cx="220" cy="190" r="8" fill="{accent}" opacity="0.7"/>`,
		},
	},
	keywords.ActionEat: {
		limbs: still,
		extras: []string{
			`<rect x="190" y="180" width="20" height="15" fill="{accent}" opacity="0.7"/>`,
			`<circle cx="200" cy="175" r="3" fill="{accent}" opacity="0.7"/>`,
		},
	},
	keywords.ActionWalk: {
		limbs:  still,
		extras: []string{`<path d="M150 200 Q200 180 250 200" stroke="{accent}" stroke-width="2" fill="none" opacity="0.7"/>`},
	},
	keywords.ActionDefault: {
		limbs: [2]limb{{x: 175, y: 210}, {x: 210, y: 210}},
	},
}
