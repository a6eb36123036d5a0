// Package ai defines the chat-model client surface used by the analysis
// pipeline and the job-posting importer. Implementations live in
// subpackages; callers depend only on Client.
package ai

import "context"

// ChatOptions tunes a single chat call.
type ChatOptions struct {
	// Model overrides the client's default model when non-empty.
	Model string
	// Temperature is passed through when non-nil.
	Temperature *float64
	// JSONResponse requests a JSON-object response format when the
	// backing provider supports it.
	JSONResponse bool
}

// Message is a single chat message.
type Message struct {
	Role string
	// Content is either a plain string or a structured list of content
	// parts, depending on the provider. Use MessageText to flatten it.
	Content any
}

// Response is the assistant's reply to a chat call.
type Response struct {
	Message Message
}

// Client is a chat-model backend.
type Client interface {
	// Chat sends a single-turn prompt and returns the assistant reply.
	Chat(ctx context.Context, prompt string, opts ChatOptions) (*Response, error)

	// Feedback runs a critique over a stored resume file. resumeKey is
	// an object-store key for the uploaded PDF; instructions is the
	// full prompt describing the expected output.
	Feedback(ctx context.Context, resumeKey string, instructions string, opts ChatOptions) (*Response, error)
}
