package llm

import "context"

// Provider is the answering capability: submit a prompt, receive an answer.
// Implementations must never return a meaningful nil answer; an empty
// string means "no answer" and scores zero downstream.
type Provider interface {
	Name() string
	Answer(ctx context.Context, prompt string) (string, error)
}

// TaskAnswerer is an optional interface for offline providers that
// approximate an agent. Synthesizing an answer of a target quality needs
// the ground truth, so the benchmark hands it over when the provider asks;
// real providers never see the expected answer.
type TaskAnswerer interface {
	AnswerTask(ctx context.Context, kind, encoding, expected, prompt string) (string, error)
}
