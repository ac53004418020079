package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a
	// sensible default or an error, depending on whether the prompt
	// is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next
	// access. Useful when prompts have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptSuggest asks for anchored edit suggestions on one chapter.
	// The template expects %s (chapter title) and %s (chapter text).
	PromptSuggest = "suggest"

	// PromptRewrite asks for a whole-chapter rewrite against a
	// combined issue list. The template expects %s (instructions),
	// %s (project context), %d (approximate word count) and
	// %s (chapter text).
	PromptRewrite = "rewrite"

	// PromptScanPrefix namespaces the per-kind scan prompts; the full
	// name is PromptScanPrefix + kind (e.g. "scan_health").
	PromptScanPrefix = "scan_"
)

// PromptStoreAware is an optional interface for services that can use
// custom prompts. Services implementing it can have their templates
// customised by injecting a PromptStore after construction.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable
	// prompts. If not set, the service uses hardcoded defaults.
	SetPromptStore(store PromptStore)
}
