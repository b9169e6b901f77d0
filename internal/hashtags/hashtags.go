// Package hashtags suggests social media tags and a share description for a
// generated scene.
package hashtags

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/webshunter/animemacker/internal/domain"
)

// Limit caps the number of suggested tags.
const Limit = 20

type rule struct {
	// match is checked against the lowercased title, image prompt and video prompt.
	match func(title, image, video string) bool
	tags  []string
}

func anyContains(words []string, fields ...string) bool {
	for _, f := range fields {
		for _, w := range words {
			if strings.Contains(f, w) {
				return true
			}
		}
	}
	return false
}

func inTitleOrImage(words ...string) func(title, image, video string) bool {
	return func(title, image, _ string) bool { return anyContains(words, title, image) }
}

func inImage(words ...string) func(title, image, video string) bool {
	return func(_, image, _ string) bool { return anyContains(words, image) }
}

func inVideo(words ...string) func(title, image, video string) bool {
	return func(_, _, video string) bool { return anyContains(words, video) }
}

var baseTags = []string{"#anime", "#animeart", "#animeedit", "#animevideo"}

var trendingTags = []string{
	"#shortvideo", "#viral", "#trending", "#fyp", "#foryou",
	"#animeedit", "#animevideo", "#animecontent", "#animecommunity",
}

var sceneRules = []rule{
	{match: inTitleOrImage("dance"), tags: []string{"#dance", "#dancing", "#choreography", "#movement"}},
	{
		match: func(title, image, _ string) bool {
			return anyContains([]string{"sleep", "tired"}, title) || anyContains([]string{"sleep", "tired", "bedroom", "bed"}, image)
		},
		tags: []string{"#sleep", "#tired", "#bedroom", "#rest", "#sleepy", "#peaceful", "#cozy"},
	},
	{match: inTitleOrImage("rain"), tags: []string{"#rain", "#rainy", "#weather", "#atmospheric"}},
	{match: inTitleOrImage("night"), tags: []string{"#night", "#nighttime", "#dark", "#moody"}},
	{match: inTitleOrImage("city"), tags: []string{"#city", "#urban", "#street", "#tokyo"}},
	{match: inTitleOrImage("school"), tags: []string{"#school", "#highschool", "#student", "#academic"}},
	{match: inTitleOrImage("forest"), tags: []string{"#forest", "#nature", "#outdoor", "#green"}},
	{match: inImage("anime art style"), tags: []string{"#animeart", "#manga", "#japaneseart"}},
	{match: inImage("dynamic"), tags: []string{"#dynamic", "#action", "#motion"}},
	{match: inImage("cinematic"), tags: []string{"#cinematic", "#cinematography", "#film"}},
	{match: inVideo("camera"), tags: []string{"#camerawork", "#cinematography", "#filming"}},
	{match: inVideo("smooth"), tags: []string{"#smooth", "#flow", "#seamless"}},
	{match: inVideo("tracking"), tags: []string{"#tracking", "#follow", "#movement"}},
}

// Generate returns up to Limit unique tags for scene, in suggestion order.
func Generate(scene domain.SceneOutput, character *domain.CharacterProfile) []string {
	tags := newOrderedSet()
	tags.add(baseTags...)

	if character != nil {
		if tag := nameTag(character.Name); tag != "" {
			tags.add(tag)
		}
		desc := strings.ToLower(character.Description)
		if anyContains([]string{"energetic", "cheerful"}, desc) {
			tags.add("#energetic", "#cheerful")
		}
		if anyContains([]string{"mysterious", "cool"}, desc) {
			tags.add("#mysterious", "#cool")
		}
		if anyContains([]string{"dance", "dancing"}, desc) {
			tags.add("#dance", "#dancing")
		}
	}

	title := strings.ToLower(scene.Title)
	image := strings.ToLower(scene.ImagePrompt)
	video := strings.ToLower(scene.VideoPrompt)
	for _, r := range sceneRules {
		if r.match(title, image, video) {
			tags.add(r.tags...)
		}
	}
	tags.add(trendingTags...)
	return tags.first(Limit)
}

func nameTag(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsSpace(r) {
			continue
		}
		sb.WriteRune(r)
	}
	if sb.Len() == 0 {
		return ""
	}
	return "#" + sb.String()
}

// Description builds a share caption for scene.
func Description(scene domain.SceneOutput, character *domain.CharacterProfile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🎨 %s\n\n", scene.Title)
	if character != nil {
		fmt.Fprintf(&sb, "👤 Featuring: %s\n", character.Name)
		fmt.Fprintf(&sb, "✨ %s\n\n", character.Description)
	}
	fmt.Fprintf(&sb, "🎬 Scene: %s...\n\n", truncate(scene.ImagePrompt, 100))
	fmt.Fprintf(&sb, "📹 Video: %s...\n\n", truncate(scene.VideoPrompt, 100))
	sb.WriteString("#anime #animeart #animevideo #animeedit #shortvideo #viral #fyp #foryou")
	return sb.String()
}

// truncate keeps the first n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(values ...string) {
	for _, v := range values {
		if _, ok := s.seen[v]; ok {
			continue
		}
		s.seen[v] = struct{}{}
		s.items = append(s.items, v)
	}
}

func (s *orderedSet) first(n int) []string {
	if len(s.items) <= n {
		return s.items
	}
	return s.items[:n]
}
