package task

import (
	"errors"
	"math/rand"

	"github.com/DucHai972/Questionnaire/internal/dataset"
	"github.com/DucHai972/Questionnaire/internal/encoding"
)

// Kind identifies one of the six cognitive task categories.
type Kind string

const (
	KindBoundaryDetection Kind = "boundary_detection"
	KindReverseLookup     Kind = "reverse_lookup"
	KindAnswerLookup      Kind = "answer_lookup"
	KindKnowledgeChain    Kind = "knowledge_chain"
	KindAnswerCompletion  Kind = "answer_completion"
	KindSemanticRetrieval Kind = "semantic_retrieval"
)

// Kinds returns the task kinds in their fixed evaluation order.
func Kinds() []Kind {
	return []Kind{
		KindBoundaryDetection,
		KindReverseLookup,
		KindAnswerLookup,
		KindKnowledgeChain,
		KindAnswerCompletion,
		KindSemanticRetrieval,
	}
}

// Title returns the human-readable name of the task kind.
func (k Kind) Title() string {
	switch k {
	case KindBoundaryDetection:
		return "Boundary Detection"
	case KindReverseLookup:
		return "Answer Reverse Lookup"
	case KindAnswerLookup:
		return "Answer Lookup"
	case KindKnowledgeChain:
		return "Knowledge Chain Reasoning"
	case KindAnswerCompletion:
		return "Answer Completion"
	case KindSemanticRetrieval:
		return "Semantic Attribute Retrieval"
	default:
		return string(k)
	}
}

// Task is one generated unit of work: a self-contained prompt plus the
// ground-truth answer it will be scored against. Sentinel tasks stand in
// for combinations that cannot be meaningfully constructed.
type Task struct {
	Kind     Kind
	Encoding encoding.Encoding
	Prompt   string
	Expected string
	Sentinel bool
}

// Inputs carries everything a generator may consume. Rendered exposes the
// encoded-text accessor for the task's dataset; it reports ok=false when a
// rendering does not exist. Rand must be an independently seeded source so
// generation is reproducible.
type Inputs struct {
	Dataset  *dataset.Dataset
	Encoding encoding.Encoding
	Rendered func(encoding.Encoding) (string, bool)
	Rand     *rand.Rand
}

func (in *Inputs) validate() error {
	if in == nil {
		return errors.New("task: nil inputs")
	}
	if in.Dataset == nil {
		return errors.New("task: nil dataset")
	}
	if in.Rand == nil {
		return errors.New("task: nil random source")
	}
	if !encoding.Valid(in.Encoding) {
		return errors.New("task: unknown encoding")
	}
	return nil
}

// GenerateFunc builds one task. Normal missing-data conditions degrade to
// sentinel tasks; an error means the inputs themselves are unusable.
type GenerateFunc func(in Inputs) (*Task, error)

// Generator pairs a task kind with its generate function.
type Generator struct {
	Kind     Kind
	Generate GenerateFunc
}

// Generators returns the six generators in evaluation order.
func Generators() []Generator {
	return []Generator{
		{KindBoundaryDetection, GenerateBoundaryDetection},
		{KindReverseLookup, GenerateReverseLookup},
		{KindAnswerLookup, GenerateAnswerLookup},
		{KindKnowledgeChain, GenerateKnowledgeChain},
		{KindAnswerCompletion, GenerateAnswerCompletion},
		{KindSemanticRetrieval, GenerateSemanticRetrieval},
	}
}
