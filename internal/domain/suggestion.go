package domain

import "strings"

// HashtagSuggestion is a single recommended hashtag with its justification.
type HashtagSuggestion struct {
	Hashtag string `json:"hashtag"`
	Reason  string `json:"reason"`
}

// GrowthIdea is an actionable growth strategy.
type GrowthIdea struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SuggestionBundle is the validated result of one suggestion request.
// Slice order is the order returned by the model.
type SuggestionBundle struct {
	Hashtags    []HashtagSuggestion `json:"hashtags"`
	GrowthIdeas []GrowthIdea        `json:"growthIdeas"`
}

// SuggestionInput holds the three free-text fields collected from the user.
type SuggestionInput struct {
	AccountDescription string `json:"accountDescription"`
	AccountGoals       string `json:"accountGoals"`
	TrainingData       string `json:"trainingData"`
}

// NormalizeHashtag ensures the tag starts with a single '#'.
func NormalizeHashtag(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	return "#" + strings.TrimLeft(tag, "#")
}
