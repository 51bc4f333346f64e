package ai

// GenerateRequest describes one structured generation call.
type GenerateRequest struct {
	Model             string
	SystemInstruction string
	Prompt            string
	Schema            *Schema
	SchemaName        string
	Temperature       float32
}

// GenerateMetadata contains metadata about the generation
type GenerateMetadata struct {
	Provider string
	Model    string
}

// ProviderResult is the raw text returned by a provider.
type ProviderResult struct {
	Text  string
	Model string
}
