package prompt

import "github.com/kapu/social-growth-advisor/internal/util"

// NoContextPlaceholder replaces optional inputs the user left empty.
const NoContextPlaceholder = "No additional context provided."

type SuggestionPromptData struct {
	AccountDescription string
	AccountGoals       string
	TrainingData       string
}

func (d SuggestionPromptData) withPlaceholders() SuggestionPromptData {
	d.AccountGoals = util.DefaultIfBlank(d.AccountGoals, NoContextPlaceholder)
	d.TrainingData = util.DefaultIfBlank(d.TrainingData, NoContextPlaceholder)
	return d
}
