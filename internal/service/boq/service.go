// Package boq turns extracted plan text into a normalized Bill of
// Quantities via the completion client.
package boq

import (
	"context"
	"log"

	"boqgen/internal/models"
	"boqgen/internal/pdftext"
	"boqgen/internal/service/ai"
)

// Outcome tags which path produced a result, so callers and tests can
// distinguish a genuine model reply from the always-answer-something
// fallback.
type Outcome string

const (
	OutcomeLive         Outcome = "live"
	OutcomeMock         Outcome = "mock"
	OutcomeFallbackMock Outcome = "fallback_mock"
)

// Service orchestrates extract -> prompt -> complete -> normalize for one
// document. Constructed once at startup; safe for concurrent use because it
// holds no mutable state.
type Service struct {
	extractor *pdftext.Extractor
	completer ai.Completer
}

func NewService(extractor *pdftext.Extractor, completer ai.Completer) *Service {
	return &Service{extractor: extractor, completer: completer}
}

// MockMode reports whether the configured completer is the mock variant.
func (s *Service) MockMode() bool { return s.completer.Mock() }

// GenerateFromPDF extracts text from the PDF bytes and generates the BOQ.
// Extraction errors are returned as-is (pdftext.ErrCorruptPDF,
// pdftext.ErrNoText) so the HTTP layer can map them to distinct statuses.
func (s *Service) GenerateFromPDF(ctx context.Context, filename string, data []byte) (*models.BOQResult, Outcome, error) {
	text, err := s.extractor.Extract(data)
	if err != nil {
		return nil, "", err
	}
	return s.GenerateFromText(ctx, filename, text)
}

// GenerateFromText prompts the completion client and normalizes its reply.
// Live-path failures (transport, vendor, unparseable reply) substitute the
// canned mock result instead of failing the request; the Outcome records
// which path ran.
func (s *Service) GenerateFromText(ctx context.Context, filename, text string) (*models.BOQResult, Outcome, error) {
	req := ai.Request{
		System:     SystemPrompt,
		Prompt:     BuildPrompt(text, filename),
		SourceFile: filename,
	}

	if s.completer.Mock() {
		raw, err := s.completer.Complete(ctx, req)
		if err != nil {
			return nil, OutcomeMock, err
		}
		result, err := Normalize(raw, models.Metadata{
			SourceFile:       filename,
			ExtractionMethod: models.ExtractionMock,
			Mock:             true,
		})
		if err != nil {
			return nil, OutcomeMock, err
		}
		return result, OutcomeMock, nil
	}

	raw, err := s.completer.Complete(ctx, req)
	if err != nil {
		log.Printf("completion failed for %s, substituting mock result: %v", filename, err)
		return ai.MockResult(filename), OutcomeFallbackMock, nil
	}
	result, err := Normalize(raw, models.Metadata{
		SourceFile:       filename,
		ExtractionMethod: models.ExtractionModel,
		Mock:             false,
	})
	if err != nil {
		log.Printf("unparseable model reply for %s, substituting mock result: %v", filename, err)
		return ai.MockResult(filename), OutcomeFallbackMock, nil
	}
	return result, OutcomeLive, nil
}
