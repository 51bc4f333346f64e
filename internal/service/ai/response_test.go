package ai

import (
	"testing"

	apperrors "github.com/kapu/social-growth-advisor/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
  "hashtags": [
    {"hashtag": "#veganeats", "reason": "Large active community"},
    {"hashtag": "#plantbased", "reason": "Broad reach"},
    {"hashtag": "whatveganseat", "reason": "Niche, high engagement"}
  ],
  "growthIdeas": [
    {"title": "Weekly meal prep reels", "description": "Film a 30-second prep. Post every Sunday."},
    {"title": "Collab with local farms", "description": "Feature a farm each month. Tag them."}
  ]
}`

func TestStripCodeFence(t *testing.T) {
	fenced := "```json\n" + samplePayload + "\n```"

	assert.Equal(t, StripCodeFence(samplePayload), StripCodeFence(fenced))
	assert.Equal(t, StripCodeFence(fenced), StripCodeFence(StripCodeFence(fenced)), "stripping must be idempotent")
	assert.Equal(t, `{"a":1}`, StripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence("  ```JSON {\"a\":1}```  "))
}

func TestParseSuggestionBundlePreservesOrder(t *testing.T) {
	bundle, err := ParseSuggestionBundle(samplePayload)
	require.NoError(t, err)

	require.Len(t, bundle.Hashtags, 3)
	assert.Equal(t, "#veganeats", bundle.Hashtags[0].Hashtag)
	assert.Equal(t, "#plantbased", bundle.Hashtags[1].Hashtag)
	assert.Equal(t, "#whatveganseat", bundle.Hashtags[2].Hashtag, "missing '#' is normalized")
	assert.Equal(t, "Niche, high engagement", bundle.Hashtags[2].Reason)

	require.Len(t, bundle.GrowthIdeas, 2)
	assert.Equal(t, "Weekly meal prep reels", bundle.GrowthIdeas[0].Title)
	assert.Equal(t, "Collab with local farms", bundle.GrowthIdeas[1].Title)
}

func TestParseSuggestionBundleFencedMatchesUnfenced(t *testing.T) {
	plain, err := ParseSuggestionBundle(samplePayload)
	require.NoError(t, err)

	fenced, err := ParseSuggestionBundle("```json\n" + samplePayload + "\n```")
	require.NoError(t, err)

	assert.Equal(t, plain, fenced)
}

func TestParseSuggestionBundleErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want apperrors.SuggestionKind
	}{
		{name: "truncated braces", text: `{"hashtags": [{"hashtag": "#a", "reason": "b"}`, want: apperrors.KindParse},
		{name: "empty text", text: "", want: apperrors.KindParse},
		{name: "fenced garbage", text: "```json\nnot json\n```", want: apperrors.KindParse},
		{name: "missing growthIdeas", text: `{"hashtags": [{"hashtag": "#a", "reason": "b"}]}`, want: apperrors.KindValidation},
		{name: "missing hashtags", text: `{"growthIdeas": []}`, want: apperrors.KindValidation},
		{name: "null hashtags", text: `{"hashtags": null, "growthIdeas": []}`, want: apperrors.KindValidation},
		{name: "object instead of array", text: `{"hashtags": {}, "growthIdeas": []}`, want: apperrors.KindValidation},
		{name: "top-level array", text: `[1, 2, 3]`, want: apperrors.KindValidation},
		{name: "wrong item shape", text: `{"hashtags": ["#a"], "growthIdeas": []}`, want: apperrors.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle, err := ParseSuggestionBundle(tt.text)
			require.Error(t, err)
			assert.Nil(t, bundle)
			assert.Equal(t, tt.want, apperrors.KindOf(err))
		})
	}
}

func TestParseSuggestionBundleParseMessageIncludesCause(t *testing.T) {
	_, err := ParseSuggestionBundle(`{"hashtags": [`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to get suggestions: ")
	assert.Contains(t, err.Error(), "unexpected end of JSON input")
}

func TestParseSuggestionBundleValidationMessage(t *testing.T) {
	_, err := ParseSuggestionBundle(`{"hashtags": []}`)
	require.Error(t, err)
	assert.Equal(t, "Failed to get suggestions: "+apperrors.MsgInvalidFormat, err.Error())
}

func TestParseSuggestionBundleAcceptsEmptyArrays(t *testing.T) {
	bundle, err := ParseSuggestionBundle(`{"hashtags": [], "growthIdeas": []}`)
	require.NoError(t, err)
	assert.Empty(t, bundle.Hashtags)
	assert.Empty(t, bundle.GrowthIdeas)
}
