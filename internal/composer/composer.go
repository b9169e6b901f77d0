// Package composer builds scene prompts from keyword classifications using
// fixed clause templates. It is the deterministic fallback for LLM generation.
package composer

import (
	"regexp"
	"strings"

	"github.com/webshunter/animemacker/internal/domain"
	"github.com/webshunter/animemacker/internal/keywords"
)

// Composer assembles SceneOutput values from a taxonomy. It holds no mutable
// state and is safe for concurrent use.
type Composer struct {
	tax  *keywords.Taxonomy
	hair *regexp.Regexp
	eyes *regexp.Regexp
}

// New returns a Composer for tax. A nil taxonomy selects the embedded default.
func New(tax *keywords.Taxonomy) *Composer {
	if tax == nil {
		tax = keywords.Default()
	}
	return &Composer{
		tax:  tax,
		hair: colorPattern(tax.Traits.Hair.Colors, "hair"),
		eyes: colorPattern(tax.Traits.Eyes.Colors, "eyes"),
	}
}

// Taxonomy returns the taxonomy the composer renders with.
func (c *Composer) Taxonomy() *keywords.Taxonomy {
	return c.tax
}

// Compose classifies req.Idea and builds the scene.
func (c *Composer) Compose(req domain.SceneRequest) domain.SceneOutput {
	return c.ComposeClassified(req, c.tax.Classify(req.Idea))
}

// ComposeClassified builds the scene from an existing classification.
func (c *Composer) ComposeClassified(req domain.SceneRequest, cls keywords.Classification) domain.SceneOutput {
	name := req.CharacterName()
	vars := map[string]string{
		"name": name,
		"idea": req.Idea,
		"word": cls.GenericWord(),
	}
	return domain.SceneOutput{
		Title:       name + " in " + req.Idea,
		ImagePrompt: c.imagePrompt(req, cls, vars),
		VideoPrompt: c.videoPrompt(cls, vars),
	}
}

func (c *Composer) imagePrompt(req domain.SceneRequest, cls keywords.Classification, vars map[string]string) string {
	var sb strings.Builder
	sb.WriteString(keywords.Fill(c.tax.Image.Base, vars))

	action, _ := c.tax.Action(cls.PrimaryAction())
	sb.WriteString(keywords.Fill(action.Image, vars))

	if req.Character != nil {
		for _, clause := range c.traitClauses(req.Character.Description) {
			sb.WriteString(clause)
		}
	}

	for _, rule := range c.tax.Environments {
		if rule.Additive && cls.HasEnvironment(rule.Tag) {
			sb.WriteString(keywords.Fill(rule.Image, vars))
		}
	}
	env, _ := c.tax.Environment(cls.PrimaryEnvironment())
	sb.WriteString(keywords.Fill(env.Image, vars))

	sb.WriteString(keywords.Fill(c.tax.Image.Closing, vars))
	return sb.String()
}

func (c *Composer) videoPrompt(cls keywords.Classification, vars map[string]string) string {
	var sb strings.Builder
	sb.WriteString(keywords.Fill(c.tax.Video.Opening, vars))

	action, _ := c.tax.Action(cls.PrimaryAction())
	clause := action.Video
	if clause == "" {
		def, _ := c.tax.Action(keywords.ActionDefault)
		clause = def.Video
	}
	sb.WriteString(keywords.Fill(clause, vars))

	for _, rule := range c.tax.Environments {
		if rule.Video != "" && cls.HasEnvironment(rule.Tag) {
			sb.WriteString(keywords.Fill(rule.Video, vars))
		}
	}

	sb.WriteString(keywords.Fill(c.tax.Video.Closing, vars))
	return sb.String()
}
