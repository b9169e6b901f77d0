package composer

import (
	"regexp"
	"strings"

	"github.com/webshunter/animemacker/internal/keywords"
)

func colorPattern(colors []string, noun string) *regexp.Regexp {
	if len(colors) == 0 {
		return nil
	}
	quoted := make([]string, 0, len(colors))
	for _, c := range colors {
		quoted = append(quoted, regexp.QuoteMeta(strings.ToLower(c)))
	}
	return regexp.MustCompile(`(` + strings.Join(quoted, "|") + `) ` + noun)
}

// traitClauses extracts hair color, eye color and a single tone clause from a
// character description, in that order.
func (c *Composer) traitClauses(description string) []string {
	desc := strings.ToLower(description)
	if desc == "" {
		return nil
	}
	var clauses []string
	if color := firstColor(c.hair, desc); color != "" {
		clauses = append(clauses, keywords.Fill(c.tax.Traits.Hair.Clause, map[string]string{"color": color}))
	}
	if color := firstColor(c.eyes, desc); color != "" {
		clauses = append(clauses, keywords.Fill(c.tax.Traits.Eyes.Clause, map[string]string{"color": color}))
	}
	for _, tone := range c.tax.Traits.Tones {
		if containsAny(desc, tone.Keywords) {
			clauses = append(clauses, tone.Clause)
			break
		}
	}
	return clauses
}

func firstColor(re *regexp.Regexp, desc string) string {
	if re == nil {
		return ""
	}
	m := re.FindStringSubmatch(desc)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
