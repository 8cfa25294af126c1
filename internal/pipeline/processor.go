package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frzanini/downloadSiegHub/internal/archive"
	"github.com/frzanini/downloadSiegHub/internal/dfe"
	"github.com/frzanini/downloadSiegHub/internal/sieg"
)

// Item is the outcome for one blob of a batch.
type Item struct {
	Index       int
	Record      dfe.Record
	ArchivePath string
}

// Stats aggregates one batch.
type Stats struct {
	Received int
	Decoded  int
	Parsed   int
	Failed   int
	Archived int
}

// Processor coordinates decode → extract → archive for batches of transport
// blobs. Blobs are independent: one failure never aborts its siblings, and
// N blobs in always yield N items out.
type Processor struct {
	Logger *slog.Logger
	Parser *dfe.Parser
	Writer *archive.Writer
}

func NewProcessor(logger *slog.Logger, parser *dfe.Parser, writer *archive.Writer) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Parser: parser, Writer: writer}
}

// ProcessBatch handles one window's worth of blobs for one document type on
// one day. The context only gates early abandonment between items; the work
// per item is bounded, in-memory computation plus one file write.
func (p *Processor) ProcessBatch(ctx context.Context, day time.Time, xmlType sieg.XmlType, blobs []string) ([]Item, Stats) {
	batchID := uuid.New().String()
	stats := Stats{Received: len(blobs)}
	items := make([]Item, 0, len(blobs))

	p.Logger.Info("pipeline.batch.start",
		"batch_id", batchID,
		"xml_type", xmlType.String(),
		"blobs", len(blobs),
	)

	for i, blob := range blobs {
		if ctx.Err() != nil {
			// Items not reached still get a record, keeping N in == N out.
			for j := i; j < len(blobs); j++ {
				stats.Failed++
				items = append(items, Item{Index: j, Record: dfe.Record{Error: ctx.Err().Error()}})
			}
			break
		}

		item := Item{Index: i}

		raw, err := sieg.DecodeBlob(blob)
		if err != nil {
			p.Logger.Warn("pipeline.item.decode_failed", "batch_id", batchID, "index", i, "error", err)
			item.Record = dfe.Record{Error: err.Error()}
			stats.Failed++
			items = append(items, item)
			continue
		}
		stats.Decoded++

		item.Record = p.Parser.Process(raw)
		if item.Record.OK() {
			stats.Parsed++
		} else {
			stats.Failed++
		}

		if p.Writer != nil {
			path, err := p.Writer.Write(day, xmlType.String(), item.Record, raw, i)
			if err != nil {
				p.Logger.Error("pipeline.item.archive_failed", "batch_id", batchID, "index", i, "error", err)
			} else {
				item.ArchivePath = path
				stats.Archived++
			}
		}

		items = append(items, item)
	}

	p.Logger.Info("pipeline.batch.done",
		"batch_id", batchID,
		"xml_type", xmlType.String(),
		"received", stats.Received,
		"decoded", stats.Decoded,
		"parsed", stats.Parsed,
		"failed", stats.Failed,
		"archived", stats.Archived,
	)
	return items, stats
}
