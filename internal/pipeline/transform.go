package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tidewrack/sumfile-etl/internal/domain"
	"github.com/tidewrack/sumfile-etl/internal/sumfile"
)

// CastTransformer implements Transformer by decoding sum files and
// aggregating their rows into casts.
type CastTransformer struct {
	emptyCols []string
	logger    *slog.Logger
}

// NewTransformer creates a CastTransformer. emptyCols lists raw header labels
// whose column content should be ignored during decoding.
func NewTransformer(emptyCols []string, logger *slog.Logger) *CastTransformer {
	return &CastTransformer{
		emptyCols: emptyCols,
		logger:    logger,
	}
}

// Transform decodes one sum file into serialized cast events. A structural
// decode error fails the whole file; per-row anomalies have already been
// resolved to absent fields by the decoder.
func (t *CastTransformer) Transform(_ context.Context, raw domain.RawFile) ([]domain.OutputEvent, error) {
	decoder, err := sumfile.Decode(raw.Data, t.emptyCols...)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", raw.Path, err)
	}

	casts := domain.AssembleCasts(decoder.Rows(), raw.Path)
	t.logger.Debug("decoded sum file", "path", raw.Path, "casts", len(casts))

	events := make([]domain.OutputEvent, 0, len(casts))
	for _, cast := range casts {
		out, err := domain.SerializeCast(cast)
		if err != nil {
			return nil, err
		}
		events = append(events, out)
	}
	return events, nil
}
