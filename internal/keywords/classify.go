package keywords

import "strings"

// Classification records every action and environment tag matched in a text.
// It is a pure function of the text and the taxonomy.
type Classification struct {
	Words        []string
	Actions      map[ActionTag]bool
	Environments map[EnvironmentTag]bool

	genericWord string
	taxonomy    *Taxonomy
}

// Classify tokenizes text and matches it against the taxonomy. It never fails;
// text without matches yields an empty classification whose primary branches
// are the defaults.
func (t *Taxonomy) Classify(text string) Classification {
	words := Tokenize(text)
	c := Classification{
		Words:        words,
		Actions:      make(map[ActionTag]bool),
		Environments: make(map[EnvironmentTag]bool),
		taxonomy:     t,
	}
	for _, w := range words {
		for _, tag := range t.actionWords[w] {
			c.Actions[tag] = true
			if tag == ActionGeneric && c.genericWord == "" {
				c.genericWord = w
			}
		}
		for _, tag := range t.envWords[w] {
			c.Environments[tag] = true
		}
	}

	lowered := strings.ToLower(text)
	for _, rule := range t.Actions {
		if c.Actions[rule.Tag] {
			continue
		}
		for _, phrase := range rule.Phrases {
			if phrase != "" && strings.Contains(lowered, strings.ToLower(phrase)) {
				c.Actions[rule.Tag] = true
				break
			}
		}
	}
	for _, rule := range t.Environments {
		if rule.Action != "" && c.Actions[rule.Action] {
			c.Environments[rule.Tag] = true
		}
	}
	return c
}

// HasAction reports whether tag was matched.
func (c Classification) HasAction(tag ActionTag) bool {
	return c.Actions[tag]
}

// HasEnvironment reports whether tag was matched.
func (c Classification) HasEnvironment(tag EnvironmentTag) bool {
	return c.Environments[tag]
}

// GenericWord returns the first generic verb token, or "".
func (c Classification) GenericWord() string {
	return c.genericWord
}

// PrimaryAction returns the first matched action in precedence order, or
// ActionDefault.
func (c Classification) PrimaryAction() ActionTag {
	if c.taxonomy == nil {
		return ActionDefault
	}
	for _, rule := range c.taxonomy.Actions {
		if c.Actions[rule.Tag] {
			return rule.Tag
		}
	}
	return ActionDefault
}

// PrimaryEnvironment returns the first matched non-additive environment in
// precedence order, or EnvDefault. Rain never wins here.
func (c Classification) PrimaryEnvironment() EnvironmentTag {
	if c.taxonomy == nil {
		return EnvDefault
	}
	for _, rule := range c.taxonomy.Environments {
		if rule.Additive {
			continue
		}
		if c.Environments[rule.Tag] {
			return rule.Tag
		}
	}
	return EnvDefault
}

// FirstActionWhere returns the first matched action in precedence order that
// satisfies keep, or ActionDefault.
func (c Classification) FirstActionWhere(keep func(ActionRule) bool) ActionTag {
	if c.taxonomy == nil {
		return ActionDefault
	}
	for _, rule := range c.taxonomy.Actions {
		if c.Actions[rule.Tag] && keep(rule) {
			return rule.Tag
		}
	}
	return ActionDefault
}
