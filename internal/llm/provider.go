// Package llm abstracts the model providers used for course content
// generation. Callers describe what they want as a Request (usually with
// a JSON schema attached) and get validated JSON back, regardless of
// which provider serves it.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is implemented by each model backend plus the decorators
// (retry, logging) that wrap them.
type Provider interface {
	// Generate runs one completion. When the request carries a Schema the
	// returned Content is JSON validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports the configured model identifier.
	ModelID() string
}

// Request is a single generation call. Course content generation is
// single-turn, so Messages usually holds one user message.
type Request struct {
	// System sets the model's role and constraints.
	System string

	Messages []Message

	// Schema, when set, switches the provider to its native structured
	// output mode and gates the response through validation. When nil the
	// raw text comes back as a json.RawMessage.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero means deterministic.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema for structured output. Name doubles as the
// compile-cache key and the schema name sent to OpenAI, kebab-case like
// "lesson-content".
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the provider's answer.
type Response struct {
	// Content is validated JSON when the request had a Schema, raw text
	// otherwise.
	Content json.RawMessage

	Usage Usage

	// Model that actually served the request, as reported by the provider.
	Model string

	// StopReason normalized to "end" or "max_tokens".
	StopReason string
}

// Usage is the token count for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
