package hashtags

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/webshunter/animemacker/internal/composer"
	"github.com/webshunter/animemacker/internal/domain"
)

func TestGenerateBaseAndTrending(t *testing.T) {
	tags := Generate(domain.SceneOutput{Title: "x", ImagePrompt: "y", VideoPrompt: "z"}, nil)
	assert.Equal(t, []string{
		"#anime", "#animeart", "#animeedit", "#animevideo",
		"#shortvideo", "#viral", "#trending", "#fyp", "#foryou",
		"#animecontent", "#animecommunity",
	}, tags)
}

func TestGenerateCharacterTags(t *testing.T) {
	tags := Generate(domain.SceneOutput{}, &domain.CharacterProfile{Name: "Sakura  Mei", Description: "Cheerful dancer who loves dancing"})
	assert.Contains(t, tags, "#sakuramei")
	assert.Contains(t, tags, "#energetic")
	assert.Contains(t, tags, "#cheerful")
	assert.Contains(t, tags, "#dancing")
	assert.NotContains(t, tags, "#mysterious")
}

func TestGenerateFromComposedScene(t *testing.T) {
	req := domain.SceneRequest{Idea: "dancing in the rain at night in the city"}
	scene := composer.New(nil).Compose(req)
	tags := Generate(scene, nil)

	assert.LessOrEqual(t, len(tags), Limit)
	assert.Equal(t, "#anime", tags[0])
	for _, want := range []string{"#dance", "#rain", "#night", "#city"} {
		assert.Contains(t, tags, want)
	}
	seen := map[string]bool{}
	for _, tag := range tags {
		assert.False(t, seen[tag], "duplicate %s", tag)
		seen[tag] = true
	}
}

func TestDescription(t *testing.T) {
	scene := domain.SceneOutput{
		Title:       "Mika in the rain",
		ImagePrompt: strings.Repeat("a", 150),
		VideoPrompt: "short",
	}
	desc := Description(scene, &domain.CharacterProfile{Name: "Mika", Description: "silver hair"})
	assert.True(t, strings.HasPrefix(desc, "🎨 Mika in the rain\n\n👤 Featuring: Mika\n✨ silver hair\n\n"))
	assert.Contains(t, desc, "🎬 Scene: "+strings.Repeat("a", 100)+"...\n\n")
	assert.Contains(t, desc, "📹 Video: short...\n\n")
	assert.True(t, strings.HasSuffix(desc, "#fyp #foryou"))

	desc = Description(scene, nil)
	assert.NotContains(t, desc, "Featuring")
}
