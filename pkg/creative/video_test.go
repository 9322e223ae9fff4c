package creative

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptTemplatesAreFixed(t *testing.T) {
	tests := []struct {
		script   VideoScript
		typ      ScriptType
		scenes   int
		total    int
		platform string
	}{
		{UGCTestimonial(blenderBrief()), ScriptUGCTestimonial, 4, 15, "tiktok"},
		{ProblemSolution(blenderBrief()), ScriptProblemSolution, 6, 30, "facebook"},
		{ProductShowcase(blenderBrief()), ScriptProductShowcase, 4, 15, "instagram"},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			assert.Equal(t, tt.typ, tt.script.Type)
			assert.Equal(t, tt.total, tt.script.TotalDuration)
			assert.Equal(t, tt.platform, tt.script.Platform)
			require.Len(t, tt.script.Scenes, tt.scenes)

			sum := 0
			for i, s := range tt.script.Scenes {
				assert.Equal(t, i+1, s.SceneNumber)
				sum += s.DurationSeconds
			}
			assert.Equal(t, tt.total, sum)
		})
	}
}

func TestScriptInterpolation(t *testing.T) {
	b := blenderBrief()

	ugc := UGCTestimonial(b)
	assert.Equal(t, "OMG you guys, I finally found the perfect Portable Blender!", ugc.Scenes[0].VoiceoverText)
	assert.Equal(t, "Only $29.99 - LINK IN BIO", ugc.Scenes[3].TextOverlay)

	ps := ProblemSolution(b)
	assert.Equal(t, "Are you tired of lumpy protein shakes at the gym?", ps.Scenes[0].VoiceoverText)
	assert.Equal(t, "PORTABLE BLENDER", ps.Scenes[2].TextOverlay)
	assert.Equal(t, "It blends in 30 seconds. Plus, it charges over USB.", ps.Scenes[3].VoiceoverText)
	assert.Equal(t, "$29.99 - TAP TO SHOP", ps.Scenes[5].TextOverlay)

	show := ProductShowcase(b)
	assert.Equal(t, "BLENDS IN 30 SECONDS", show.Scenes[2].TextOverlay)
	assert.Equal(t, "Only $29.99. Selling fast. Get yours now.", show.Scenes[3].VoiceoverText)
}

func TestScriptFallbacks(t *testing.T) {
	b := Brief{ProductName: "Lamp", Category: "Home", Price: 5}

	ps := ProblemSolution(b)
	assert.Equal(t, "Are you tired of struggling with everyday problems?", ps.Scenes[0].VoiceoverText)
	assert.Equal(t, "It solves the problem instantly. Plus, it is incredibly easy to use.", ps.Scenes[3].VoiceoverText)
	assert.Equal(t, "$5.00 - TAP TO SHOP", ps.Scenes[5].TextOverlay)

	assert.Equal(t, "AMAZING RESULTS", ProductShowcase(b).Scenes[2].TextOverlay)
}

func TestScriptsAreByteIdentical(t *testing.T) {
	first, err := json.Marshal(GenerateAllScripts(blenderBrief()))
	require.NoError(t, err)
	second, err := json.Marshal(GenerateAllScripts(blenderBrief()))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	scripts := GenerateAllScripts(blenderBrief())
	require.Len(t, scripts, 3)
	assert.Equal(t, ScriptUGCTestimonial, scripts[0].Type)
	assert.Equal(t, ScriptProblemSolution, scripts[1].Type)
	assert.Equal(t, ScriptProductShowcase, scripts[2].Type)
}
