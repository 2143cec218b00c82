package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/expense"
)

// Step represents a single step in the receipt processing pipeline.
type Step interface {
	Execute(ctx context.Context, state *State) error
}

// State holds the shared state across all pipeline steps.
type State struct {
	ImageBytes []byte
	Text       string
	Record     *expense.Record
}

// Step 1: ExtractTextStep runs OCR over the image bytes.
type ExtractTextStep struct {
	extractor TextExtractor
}

func (s *ExtractTextStep) Execute(ctx context.Context, state *State) error {
	text, err := s.extractor.ExtractText(ctx, state.ImageBytes)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return ErrNoTextFound
	}
	state.Text = text
	return nil
}

// Step 2: StructureStep sends the extracted text to the model.
type StructureStep struct {
	structurer Structurer
}

func (s *StructureStep) Execute(ctx context.Context, state *State) error {
	record, err := s.structurer.Structure(ctx, state.Text)
	if err != nil {
		return err
	}
	state.Record = record
	return nil
}

// Pipeline executes a sequence of steps in order.
type Pipeline struct {
	steps []Step
}

// NewPipeline creates a new pipeline with the given steps.
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs all steps in the pipeline sequentially. The first failing
// step aborts the run; later steps never execute.
func (p *Pipeline) Execute(ctx context.Context, state *State) error {
	for i, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			return fmt.Errorf("pipeline step %d failed: %w", i+1, err)
		}
	}
	return nil
}

// NewReceiptPipeline creates the standard two-step pipeline for turning a
// receipt image into a structured expense record.
func NewReceiptPipeline(extractor TextExtractor, structurer Structurer) *Pipeline {
	return NewPipeline(
		&ExtractTextStep{extractor: extractor},
		&StructureStep{structurer: structurer},
	)
}

// ProcessReceipt runs the pipeline over raw image bytes and returns the
// structured expense record.
func (p *Pipeline) ProcessReceipt(ctx context.Context, image []byte) (*expense.Record, error) {
	state := &State{ImageBytes: image}
	if err := p.Execute(ctx, state); err != nil {
		return nil, err
	}
	return state.Record, nil
}
