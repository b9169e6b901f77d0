package prompt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/webshunter/animemacker/internal/domain"
)

func TestBuildInstructionCharacter(t *testing.T) {
	req := domain.SceneRequest{
		Idea:      "reading under a tree",
		Character: &domain.CharacterProfile{Name: "Hana", Description: "green eyes, calm"},
	}
	got := BuildInstruction(req, `{"type":"object"}`)
	for _, want := range []string{
		`Generate a cinematic anime scene based on the following idea: "reading under a tree"`,
		"Character Reference: Hana - green eyes, calm",
		"20-35 second",
		`"title", "image_prompt" and "video_prompt"`,
		`{"type":"object"}`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("instruction missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "No specific character") {
		t.Fatal("generic character note should be absent")
	}
}

func TestBuildInstructionGeneric(t *testing.T) {
	got := BuildInstruction(domain.SceneRequest{Idea: "x"}, "")
	if !strings.Contains(got, "No specific character reference provided.") {
		t.Fatalf("instruction missing generic note:\n%s", got)
	}
	if strings.Contains(got, "JSON schema") {
		t.Fatal("schema section should be omitted for empty schema")
	}
	blank := BuildInstruction(domain.SceneRequest{Idea: "x", Character: &domain.CharacterProfile{Name: " "}}, "")
	if !strings.Contains(blank, "No specific character reference provided.") {
		t.Fatal("blank character name should use the generic note")
	}
}

func TestSceneSchema(t *testing.T) {
	var schema struct {
		Type                 string                     `json:"type"`
		Properties           map[string]json.RawMessage `json:"properties"`
		Required             []string                   `json:"required"`
		AdditionalProperties *bool                      `json:"additionalProperties"`
	}
	if err := json.Unmarshal([]byte(SceneSchema()), &schema); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	if schema.Type != "object" {
		t.Fatalf("type = %q", schema.Type)
	}
	for _, key := range []string{"title", "image_prompt", "video_prompt"} {
		if _, ok := schema.Properties[key]; !ok {
			t.Fatalf("schema missing property %q", key)
		}
	}
	if len(schema.Required) != 3 {
		t.Fatalf("required = %v", schema.Required)
	}
}

func TestBuildInstructionIdeaVerbatim(t *testing.T) {
	idea := "she says \"hi\"\nthen\twaves"
	got := BuildInstruction(domain.SceneRequest{Idea: idea}, "")
	want := "based on the following idea: \"" + idea + "\"\n\n"
	if !strings.Contains(got, want) {
		t.Fatalf("instruction does not embed idea verbatim:\n%s", got)
	}
}
