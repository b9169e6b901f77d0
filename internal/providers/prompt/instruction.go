package prompt

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"

	"github.com/webshunter/animemacker/internal/domain"
)

var (
	schemaOnce sync.Once
	schemaText string
)

// SceneSchema returns the JSON schema of domain.SceneOutput, reflected once.
func SceneSchema() string {
	schemaOnce.Do(func() {
		r := jsonschema.Reflector{
			AllowAdditionalProperties: false,
			DoNotReference:            true,
		}
		raw, err := json.Marshal(r.Reflect(&domain.SceneOutput{}))
		if err != nil {
			panic(fmt.Sprintf("prompt: reflect scene schema: %v", err))
		}
		schemaText = string(raw)
	})
	return schemaText
}

// BuildInstruction renders the model instruction for req. schema is appended
// verbatim after the output-format rules; pass SceneSchema() in production.
func BuildInstruction(req domain.SceneRequest, schema string) string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Generate a cinematic anime scene based on the following idea: \"%s\"\n\n", req.Idea)

	if req.Character != nil && strings.TrimSpace(req.Character.Name) != "" {
		sb.WriteString("Character Reference: " + req.Character.Name)
		if desc := strings.TrimSpace(req.Character.Description); desc != "" {
			sb.WriteString(" - " + desc)
		}
		sb.WriteString("\nUse this character as the main subject of the scene. Keep their appearance, personality and style consistent in every detail.\n\n")
	} else {
		sb.WriteString("No specific character reference provided. Create a generic anime character that fits the scene.\n\n")
	}

	sb.WriteString("Write the following:\n")
	sb.WriteString("1. title: a short creative title for the scene.\n")
	sb.WriteString("2. image_prompt: a detailed still image description in anime art style. Describe the character's pose and expression, the setting, lighting and colors.\n")
	sb.WriteString("3. video_prompt: a 20-35 second image-to-video prompt starting from that image. Describe camera movement, the character's motion and the atmosphere.\n\n")

	sb.WriteString(`Respond with a single JSON object with exactly the keys "title", "image_prompt" and "video_prompt". All values are strings. Do not add commentary or markdown.`)
	if schema = strings.TrimSpace(schema); schema != "" {
		sb.WriteString("\nThe object must validate against this JSON schema:\n")
		sb.WriteString(schema)
	}
	return sb.String()
}
