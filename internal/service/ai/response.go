package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kapu/social-growth-advisor/internal/domain"
	apperrors "github.com/kapu/social-growth-advisor/pkg/errors"
	"github.com/openai/openai-go/v3"
)

const codeFence = "```"

// StripCodeFence removes a leading ```json (or bare ```) marker and a trailing ``` marker.
// Text without fences is returned trimmed and otherwise unchanged.
func StripCodeFence(text string) string {
	cleaned := strings.TrimSpace(text)

	if strings.HasPrefix(cleaned, codeFence) {
		cleaned = strings.TrimPrefix(cleaned, codeFence)
		if len(cleaned) >= 4 && strings.EqualFold(cleaned[:4], "json") {
			cleaned = cleaned[4:]
		}
		cleaned = strings.TrimSpace(cleaned)
	}
	if strings.HasSuffix(cleaned, codeFence) {
		cleaned = strings.TrimSuffix(cleaned, codeFence)
		cleaned = strings.TrimSpace(cleaned)
	}

	return cleaned
}

// ParseSuggestionBundle turns raw model output into a validated bundle.
// Malformed JSON yields a parse error; a JSON value without both arrays yields a validation error.
func ParseSuggestionBundle(text string) (*domain.SuggestionBundle, error) {
	cleaned := StripCodeFence(text)

	var probe any
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return nil, apperrors.NewSuggestionError(apperrors.KindParse, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, apperrors.NewSuggestionError(apperrors.KindValidation, fmt.Errorf("response is not a JSON object: %w", err))
	}

	hashtagsRaw, err := requireArray(fields, "hashtags")
	if err != nil {
		return nil, apperrors.NewSuggestionError(apperrors.KindValidation, err)
	}
	ideasRaw, err := requireArray(fields, "growthIdeas")
	if err != nil {
		return nil, apperrors.NewSuggestionError(apperrors.KindValidation, err)
	}

	bundle := &domain.SuggestionBundle{}
	if err := json.Unmarshal(hashtagsRaw, &bundle.Hashtags); err != nil {
		return nil, apperrors.NewSuggestionError(apperrors.KindValidation, fmt.Errorf("hashtags: %w", err))
	}
	if err := json.Unmarshal(ideasRaw, &bundle.GrowthIdeas); err != nil {
		return nil, apperrors.NewSuggestionError(apperrors.KindValidation, fmt.Errorf("growthIdeas: %w", err))
	}

	for i := range bundle.Hashtags {
		bundle.Hashtags[i].Hashtag = domain.NormalizeHashtag(bundle.Hashtags[i].Hashtag)
	}

	return bundle, nil
}

func requireArray(fields map[string]json.RawMessage, key string) (json.RawMessage, error) {
	raw, ok := fields[key]
	if !ok {
		return nil, fmt.Errorf("missing %q property", key)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%q must be an array", key)
	}
	return trimmed, nil
}

// classifyProviderError maps a failed provider call onto the suggestion error taxonomy.
func classifyProviderError(err error) *apperrors.SuggestionError {
	if isInvalidCredential(err) {
		return apperrors.NewSuggestionError(apperrors.KindConfiguration, err)
	}
	return apperrors.NewSuggestionError(apperrors.KindTransport, err)
}

func isInvalidCredential(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()
	if strings.Contains(msg, "API key not valid") || strings.Contains(msg, "Incorrect API key") {
		return true
	}

	var apierr *openai.Error
	if errors.As(err, &apierr) && (apierr.StatusCode == 401 || apierr.StatusCode == 403) {
		return true
	}

	return false
}
