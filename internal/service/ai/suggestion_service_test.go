package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/kapu/social-growth-advisor/internal/prompt"
	apperrors "github.com/kapu/social-growth-advisor/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	text     string
	metadata *GenerateMetadata
	err      error
	requests []GenerateRequest
}

func (f *fakeGenerator) Generate(_ context.Context, req GenerateRequest) (string, *GenerateMetadata, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", nil, f.err
	}
	return f.text, f.metadata, nil
}

func newTestService(gen Generator) *SuggestionService {
	return NewSuggestionService(gen, prompt.NewPromptBuilder(), zap.NewNop())
}

func TestRequestSuggestionsBuildsSingleRequest(t *testing.T) {
	gen := &fakeGenerator{
		text:     samplePayload,
		metadata: &GenerateMetadata{Provider: "Gemini", Model: "test-model"},
	}

	bundle, err := newTestService(gen).RequestSuggestions(context.Background(), "A vegan food blog", "grow to 10k", "")
	require.NoError(t, err)
	require.NotNil(t, bundle)

	require.Len(t, gen.requests, 1, "exactly one outbound call per invocation")
	req := gen.requests[0]

	assert.InDelta(t, 0.8, req.Temperature, 1e-6)
	assert.Equal(t, prompt.GrowthStrategistInstruction, req.SystemInstruction)
	assert.Same(t, SuggestionBundleSchema, req.Schema)
	assert.Equal(t, []string{"hashtags", "growthIdeas"}, req.Schema.Required)
	assert.Contains(t, req.Prompt, "A vegan food blog")
	assert.Contains(t, req.Prompt, "grow to 10k")
	assert.Contains(t, req.Prompt, "No additional context provided.")

	assert.Equal(t, "#veganeats", bundle.Hashtags[0].Hashtag)
	assert.Equal(t, "Weekly meal prep reels", bundle.GrowthIdeas[0].Title)
}

func TestRequestSuggestionsRejectsBlankDescription(t *testing.T) {
	gen := &fakeGenerator{text: samplePayload}

	_, err := newTestService(gen).RequestSuggestions(context.Background(), "   ", "goals", "context")
	require.Error(t, err)

	var ve *apperrors.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "accountDescription", ve.Field)
	assert.Empty(t, gen.requests, "no outbound call for invalid input")
}

func TestRequestSuggestionsErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name        string
		gen         *fakeGenerator
		wantKind    apperrors.SuggestionKind
		wantMessage string
	}{
		{
			name:        "invalid api key",
			gen:         &fakeGenerator{err: fmt.Errorf("Error 400, Message: API key not valid. Please pass a valid API key., Status: INVALID_ARGUMENT")},
			wantKind:    apperrors.KindConfiguration,
			wantMessage: apperrors.MsgInvalidAPIKey,
		},
		{
			name:        "network failure",
			gen:         &fakeGenerator{err: fmt.Errorf("dial tcp: connection refused")},
			wantKind:    apperrors.KindTransport,
			wantMessage: "Failed to get suggestions: dial tcp: connection refused",
		},
		{
			name:        "malformed json",
			gen:         &fakeGenerator{text: `{"hashtags": [`, metadata: &GenerateMetadata{Provider: "Gemini"}},
			wantKind:    apperrors.KindParse,
			wantMessage: "Failed to get suggestions: unexpected end of JSON input",
		},
		{
			name:        "missing growthIdeas",
			gen:         &fakeGenerator{text: `{"hashtags": [{"hashtag": "#a", "reason": "b"}]}`, metadata: &GenerateMetadata{Provider: "Gemini"}},
			wantKind:    apperrors.KindValidation,
			wantMessage: "Failed to get suggestions: " + apperrors.MsgInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle, err := newTestService(tt.gen).RequestSuggestions(context.Background(), "Travel photography", "", "")
			require.Error(t, err)
			assert.Nil(t, bundle)

			var se *apperrors.SuggestionError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.wantKind, se.Kind)
			assert.Equal(t, tt.wantMessage, se.Error())
			assert.Len(t, tt.gen.requests, 1)
		})
	}
}

func TestRequestSuggestionsKeepsCauseReachable(t *testing.T) {
	cause := errors.New("API key not valid")
	_, err := newTestService(&fakeGenerator{err: cause}).RequestSuggestions(context.Background(), "desc", "", "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, cause))
	assert.False(t, strings.Contains(err.Error(), "API key not valid."), "user message replaces the raw cause")
}
