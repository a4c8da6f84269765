package llm

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/DucHai972/Questionnaire/internal/task"
)

// Format-dependent base accuracy of the simulated agent. Structured,
// machine-readable text is understood best; plain prose worst.
var simulatedBaseAccuracy = map[string]float64{
	"json":     0.95,
	"xml":      0.85,
	"html":     0.75,
	"markdown": 0.65,
	"txt":      0.55,
}

// Per-task difficulty multipliers applied on top of the format accuracy.
var simulatedTaskDifficulty = map[task.Kind]float64{
	task.KindBoundaryDetection: 0.9,
	task.KindReverseLookup:     0.7,
	task.KindAnswerLookup:      0.8,
	task.KindKnowledgeChain:    0.6,
	task.KindAnswerCompletion:  0.5,
	task.KindSemanticRetrieval: 0.7,
}

// SimulatedProvider is an offline approximation of an answering agent. It
// synthesizes answers whose quality follows a format-dependent accuracy
// model with seeded noise, so full benchmark runs work without network
// access and are reproducible for a fixed seed.
type SimulatedProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedProvider creates a simulated provider with its own seeded
// randomness.
func NewSimulatedProvider(seed int64) *SimulatedProvider {
	return &SimulatedProvider{rng: rand.New(rand.NewSource(seed))}
}

func (p *SimulatedProvider) Name() string { return "simulated" }

// Answer handles prompts that arrive without task context. Without the
// ground truth there is nothing to approximate, so it reports a generic
// non-answer.
func (p *SimulatedProvider) Answer(ctx context.Context, prompt string) (string, error) {
	if p == nil {
		return "", errors.New("llm: simulated: nil provider")
	}
	_ = ctx
	_ = prompt
	return "Unable to answer without task context", nil
}

// AnswerTask synthesizes an answer for one benchmark cell. The accuracy
// tier is drawn from the format/task model; the answer text is the tier's
// template over the expected answer.
func (p *SimulatedProvider) AnswerTask(ctx context.Context, kind, encoding, expected, prompt string) (string, error) {
	if p == nil {
		return "", errors.New("llm: simulated: nil provider")
	}
	if ctx == nil {
		return "", errors.New("llm: simulated: nil context")
	}
	_ = prompt

	base, ok := simulatedBaseAccuracy[encoding]
	if !ok {
		base = 0.5
	}
	mult, ok := simulatedTaskDifficulty[task.Kind(kind)]
	if !ok {
		mult = 0.7
	}

	p.mu.Lock()
	noise := p.rng.Float64()*0.3 - 0.15
	p.mu.Unlock()

	accuracy := base*mult + noise
	if accuracy < 0 {
		accuracy = 0
	}
	if accuracy > 1 {
		accuracy = 1
	}

	return simulatedResponse(task.Kind(kind), encoding, expected, accuracy), nil
}

func simulatedResponse(kind task.Kind, encoding, expected string, accuracy float64) string {
	switch {
	case accuracy > 0.8:
		return highAccuracyResponse(kind, expected)
	case accuracy > 0.5:
		return mediumAccuracyResponse(kind, expected)
	default:
		return fmt.Sprintf("Unable to complete %s with %s format - insufficient clarity in data structure",
			kind.Title(), encoding)
	}
}

func highAccuracyResponse(kind task.Kind, expected string) string {
	switch kind {
	case task.KindBoundaryDetection:
		return expected
	case task.KindReverseLookup:
		return strings.Replace(expected, "Question: ", "The answer belongs to the question: ", 1)
	case task.KindAnswerLookup:
		return strings.Replace(expected, "Answer: ", "The answer is: ", 1)
	case task.KindKnowledgeChain:
		return strings.Replace(expected, "Matching respondents: ", "Found matching respondents: ", 1)
	case task.KindAnswerCompletion:
		return strings.Replace(expected, "Predicted answer: ", "Based on the profile, I predict: ", 1)
	case task.KindSemanticRetrieval:
		return strings.Replace(expected, "Value: ", "The semantic value is: ", 1)
	default:
		return expected
	}
}

func mediumAccuracyResponse(kind task.Kind, expected string) string {
	switch kind {
	case task.KindBoundaryDetection:
		if strings.Contains(expected, "R") {
			parts := strings.Split(expected, ", ")
			second := "Unknown"
			if len(parts) > 1 {
				second = parts[1]
			}
			return fmt.Sprintf("%s, %s", parts[0], second)
		}
		return "Found 2 out of 3 respondent boundaries"
	case task.KindReverseLookup:
		return "The answer belongs to one of the demographic questions"
	case task.KindAnswerLookup:
		return "Answer found but specific value unclear"
	case task.KindKnowledgeChain:
		return "Found some matching respondents but may have missed some"
	case task.KindAnswerCompletion:
		return "Prediction made but with low confidence"
	case task.KindSemanticRetrieval:
		return "Semantic attribute identified but value uncertain"
	default:
		return "Partial answer"
	}
}
