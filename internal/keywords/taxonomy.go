package keywords

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var defaultTaxonomy []byte

// ImageTemplates holds the fixed image prompt clauses.
type ImageTemplates struct {
	Base    string `yaml:"base"`
	Closing string `yaml:"closing"`
}

// VideoTemplates holds the fixed video prompt clauses.
type VideoTemplates struct {
	Opening string `yaml:"opening"`
	Closing string `yaml:"closing"`
}

// ColorTrait extracts "<color> <noun>" phrases from a character description.
type ColorTrait struct {
	Colors []string `yaml:"colors"`
	Clause string   `yaml:"clause"`
}

// ToneTrait maps personality keywords to an expression clause.
type ToneTrait struct {
	Keywords []string `yaml:"keywords"`
	Clause   string   `yaml:"clause"`
}

// Traits groups the character trait rules. Only the first matching tone applies.
type Traits struct {
	Hair  ColorTrait  `yaml:"hair"`
	Eyes  ColorTrait  `yaml:"eyes"`
	Tones []ToneTrait `yaml:"tones"`
}

// ActionRule describes one action tag.
type ActionRule struct {
	Tag      ActionTag `yaml:"tag"`
	Label    string    `yaml:"label"`
	Keywords []string  `yaml:"keywords"`
	Phrases  []string  `yaml:"phrases"`
	Image    string    `yaml:"image"`
	Video    string    `yaml:"video"`
}

// EnvironmentRule describes one environment tag. Additive rules layer onto
// whichever branch is selected; Action makes the rule fire on an action tag
// instead of keywords.
type EnvironmentRule struct {
	Tag      EnvironmentTag `yaml:"tag"`
	Additive bool           `yaml:"additive"`
	Action   ActionTag      `yaml:"action"`
	Keywords []string       `yaml:"keywords"`
	Image    string         `yaml:"image"`
	Video    string         `yaml:"video"`
}

// Taxonomy is the complete classifier and template configuration. Slices are
// in precedence order.
type Taxonomy struct {
	Image        ImageTemplates    `yaml:"image"`
	Video        VideoTemplates    `yaml:"video"`
	Traits       Traits            `yaml:"traits"`
	Actions      []ActionRule      `yaml:"actions"`
	Environments []EnvironmentRule `yaml:"environments"`

	actionIndex map[ActionTag]int
	envIndex    map[EnvironmentTag]int
	actionWords map[string][]ActionTag
	envWords    map[string][]EnvironmentTag
}

var (
	defaultOnce sync.Once
	defaultTax  *Taxonomy
)

// Default returns the embedded taxonomy. It panics if the embedded document
// is invalid, which the package tests guard against.
func Default() *Taxonomy {
	defaultOnce.Do(func() {
		t, err := Load(bytes.NewReader(defaultTaxonomy))
		if err != nil {
			panic(fmt.Sprintf("keywords: embedded taxonomy: %v", err))
		}
		defaultTax = t
	})
	return defaultTax
}

// Load parses and validates a taxonomy document.
func Load(r io.Reader) (*Taxonomy, error) {
	var t Taxonomy
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("keywords: decode taxonomy: %w", err)
	}
	if err := t.index(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Taxonomy) index() error {
	if strings.TrimSpace(t.Image.Base) == "" || strings.TrimSpace(t.Video.Opening) == "" {
		return errors.New("keywords: image.base and video.opening are required")
	}
	t.actionIndex = make(map[ActionTag]int, len(t.Actions))
	t.actionWords = make(map[string][]ActionTag)
	for i, rule := range t.Actions {
		if _, ok := knownActions[rule.Tag]; !ok {
			return fmt.Errorf("keywords: unknown action tag %q", rule.Tag)
		}
		if _, dup := t.actionIndex[rule.Tag]; dup {
			return fmt.Errorf("keywords: duplicate action tag %q", rule.Tag)
		}
		if strings.TrimSpace(rule.Image) == "" {
			return fmt.Errorf("keywords: action %q has no image clause", rule.Tag)
		}
		t.actionIndex[rule.Tag] = i
		for _, kw := range rule.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			t.actionWords[kw] = append(t.actionWords[kw], rule.Tag)
		}
	}
	last := len(t.Actions) - 1
	if last < 0 || t.Actions[last].Tag != ActionDefault || t.Actions[last].Video == "" {
		return errors.New("keywords: actions must end with a default rule carrying a video clause")
	}

	t.envIndex = make(map[EnvironmentTag]int, len(t.Environments))
	t.envWords = make(map[string][]EnvironmentTag)
	for i, rule := range t.Environments {
		if _, ok := knownEnvironments[rule.Tag]; !ok {
			return fmt.Errorf("keywords: unknown environment tag %q", rule.Tag)
		}
		if _, dup := t.envIndex[rule.Tag]; dup {
			return fmt.Errorf("keywords: duplicate environment tag %q", rule.Tag)
		}
		if rule.Action != "" {
			if _, ok := t.actionIndex[rule.Action]; !ok {
				return fmt.Errorf("keywords: environment %q references unknown action %q", rule.Tag, rule.Action)
			}
		}
		t.envIndex[rule.Tag] = i
		for _, kw := range rule.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			t.envWords[kw] = append(t.envWords[kw], rule.Tag)
		}
	}
	lastEnv := len(t.Environments) - 1
	if lastEnv < 0 || t.Environments[lastEnv].Tag != EnvDefault {
		return errors.New("keywords: environments must end with a default rule")
	}
	return nil
}

// Action returns the rule for tag.
func (t *Taxonomy) Action(tag ActionTag) (ActionRule, bool) {
	i, ok := t.actionIndex[tag]
	if !ok {
		return ActionRule{}, false
	}
	return t.Actions[i], true
}

// Environment returns the rule for tag.
func (t *Taxonomy) Environment(tag EnvironmentTag) (EnvironmentRule, bool) {
	i, ok := t.envIndex[tag]
	if !ok {
		return EnvironmentRule{}, false
	}
	return t.Environments[i], true
}

// Fill interpolates the {name}, {idea}, {word} and {color} placeholders of a
// clause template.
func Fill(template string, vars map[string]string) string {
	if template == "" || len(vars) == 0 {
		return template
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
