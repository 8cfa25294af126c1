package dfe

import (
	"errors"
	"log/slog"

	"github.com/frzanini/downloadSiegHub/internal/common"
)

// Parser turns raw fiscal XML into canonical records. It is stateless and
// safe for concurrent use across documents.
type Parser struct {
	logger *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Process parses, classifies and extracts one document. Every fault path
// terminates in a record carrying an error string; nothing propagates to
// the caller.
func (p *Parser) Process(raw string) Record {
	root, err := Parse(raw)
	if err != nil {
		p.logger.Error("dfe.parse.malformed", "error", err)
		return failureRecord("", malformedInput("content is not well-formed XML", err))
	}

	kind, ok := Classify(root)
	if !ok {
		p.logger.Warn("dfe.classify.unknown", "root_tag", root.Local)
		return failureRecord("", unknownDocument(root.Local))
	}

	rec, err := extract(root, kind)
	if err != nil {
		p.logger.Error("dfe.extract.failed", "kind", string(kind), "code", errorCode(err), "error", err)
		return failureRecord(kind, err)
	}

	p.logger.Debug("dfe.extract.ok", "kind", string(kind), "access_key", rec.AccessKey)
	return rec
}

// ProcessAll processes a batch of documents independently: N inputs always
// yield N records and one document's failure never aborts its siblings.
func (p *Parser) ProcessAll(raws []string) []Record {
	records := make([]Record, len(raws))
	for i, raw := range raws {
		records[i] = p.Process(raw)
	}
	return records
}

// extract dispatches to the extractor for the kind. The switch is
// exhaustive over everything Classify can return, so a kind without an
// extractor cannot arise at runtime.
func extract(root *Node, kind Kind) (Record, error) {
	switch kind {
	case KindNFe:
		return extractPrimary(root, familyNFe)
	case KindCTe:
		return extractPrimary(root, familyCTe)
	case KindMDFe:
		return extractPrimary(root, familyMDFe)
	case KindNFSe:
		return extractNFSe(root)
	case KindEvento:
		return extractEvento(root)
	case KindProcEventoNFe, KindProcEventoCTe, KindProcEventoMDFe:
		return extractProcEvento(root, kind)
	default:
		return Record{}, unknownDocument(string(kind))
	}
}

// failureRecord builds the error-only shape: no business fields, just the
// kind (when known) and the flattened error text.
func failureRecord(kind Kind, err error) Record {
	return Record{
		DocumentKind: string(kind),
		Error:        err.Error(),
	}
}

// errorCode recovers the structured failure code for logging.
func errorCode(err error) string {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "INTERNAL"
}
