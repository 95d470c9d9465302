// internal/tasks/generate-prompt/models.go
package generateprompt

// Output carries the generated prompt exactly as received from the API.
// Non-emptiness is not enforced here; the flow's validation gate owns that.
type Output struct {
	Prompt string `json:"prompt"`
}
