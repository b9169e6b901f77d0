package placeholder

import (
	"encoding/base64"
	"encoding/xml"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webshunter/animemacker/internal/keywords"
)

func wellFormed(t *testing.T, data []byte) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		require.NoError(t, err)
	}
}

func TestSceneNeverPanics(t *testing.T) {
	s := New(nil)
	inputs := []string{
		"",
		"   ",
		"zzz qqq",
		"<script>alert(1)</script> & friends",
		strings.Repeat("dance rain night city ", 200),
		"日本の夜、雨",
	}
	for _, in := range inputs {
		res := s.Scene(in)
		assert.Equal(t, "image/svg+xml", res.MIME)
		assert.NotEmpty(t, res.Data)
		wellFormed(t, res.Data)
	}
}

func TestSceneDefaultPose(t *testing.T) {
	svg := string(New(nil).Scene("").Data)
	assert.Contains(t, svg, `fill="#87CEEB"`)
	assert.Contains(t, svg, ">ACTION</text>")
	assert.Contains(t, svg, `<rect x="175" y="210" width="15" height="30" fill="#FFB6C1"/>`)
	assert.Contains(t, svg, `fill="#90EE90"`)
	assert.Contains(t, svg, `fill="#228B22"`)
	assert.NotContains(t, svg, "<line")
	assert.Contains(t, svg, "Character in Action")
}

func TestScenePoseFollowsPrecedence(t *testing.T) {
	cases := []struct {
		prompt string
		label  string
	}{
		{prompt: "dancing while running", label: "DANCING"},
		{prompt: "a sprint", label: "RUNNING"},
		{prompt: "leap", label: "JUMPING"},
		{prompt: "battle", label: "FIGHTING"},
		{prompt: "concert", label: "SINGING"},
		{prompt: "bake", label: "COOKING"},
		{prompt: "homework", label: "STUDYING"},
		{prompt: "time to go to sleep", label: "SLEEPY"},
		{prompt: "office", label: "WORKING"},
		{prompt: "game", label: "PLAYING"},
		{prompt: "lunch", label: "EATING"},
		{prompt: "stroll", label: "WALKING"},
		{prompt: "drink tea then stroll", label: "WALKING"},
		{prompt: "driving a car", label: "ACTION"},
		{prompt: "write a letter", label: "ACTION"},
	}
	for _, tc := range cases {
		t.Run(tc.prompt, func(t *testing.T) {
			svg := string(New(nil).Scene(tc.prompt).Data)
			assert.Contains(t, svg, ">"+tc.label+"</text>")
		})
	}
}

func TestSceneNightRainCity(t *testing.T) {
	svg := string(New(nil).Scene("running in the rain at night through the city").Data)
	assert.Contains(t, svg, `fill="#191970"`)
	assert.Contains(t, svg, `fill="#E6E6FA"`)
	assert.Contains(t, svg, `stroke="#B0C4DE"`)
	assert.Equal(t, 7, strings.Count(svg, "<line"))
	assert.Contains(t, svg, `<line x1="50" y1="50" x2="55" y2="80"/>`)
	assert.Equal(t, 7, strings.Count(svg, `fill="#2F4F4F"`))
	assert.Contains(t, svg, `fill="#696969"`)
	assert.NotContains(t, svg, `fill="#228B22"`)
	assert.Contains(t, svg, `transform="rotate(-30 177.5 225)"`)
}

func TestDataURI(t *testing.T) {
	res := New(nil).Scene("dance")
	uri := res.DataURI()
	require.True(t, strings.HasPrefix(uri, "data:image/svg+xml;base64,"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/svg+xml;base64,"))
	require.NoError(t, err)
	assert.Equal(t, res.Data, raw)
}

func TestPortrait(t *testing.T) {
	svg := string(Portrait("Long silver hair & violet eyes, calm").Data)
	wellFormed(t, []byte(svg))
	assert.Contains(t, svg, `fill="#C0C0C0"`)
	assert.Contains(t, svg, `<circle cx="90" cy="85" r="6" fill="#9370DB"/>`)
	assert.Contains(t, svg, `cy="120"`)
	assert.Contains(t, svg, ">Long silver hair</text>")

	svg = string(Portrait("").Data)
	wellFormed(t, []byte(svg))
	assert.Contains(t, svg, `fill="#FF69B4"`)
	assert.Contains(t, svg, `fill="#4169E1"`)
	assert.NotContains(t, svg, `cy="120"`)
}

func TestSceneEscapesTaxonomyLabel(t *testing.T) {
	raw, err := os.ReadFile("../keywords/taxonomy.yaml")
	require.NoError(t, err)
	doc := strings.Replace(string(raw), "label: DANCING", `label: "R&D <dance>"`, 1)
	require.NotEqual(t, string(raw), doc)
	tax, err := keywords.Load(strings.NewReader(doc))
	require.NoError(t, err)

	res := New(tax).Scene("dancing")
	wellFormed(t, res.Data)
	assert.Contains(t, string(res.Data), ">R&amp;D &lt;DANCE&gt;</text>")
}
