package output

type PromptSource interface {
	SystemPrompt() (string, error)
}
