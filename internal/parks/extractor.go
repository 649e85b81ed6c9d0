package parks

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-parks/internal/logging"
	"github.com/goliatone/go-parks/pkg/interfaces"
)

// Extractor walks a block sequence and builds a Record. It holds no state
// between calls and can be shared.
type Extractor struct {
	logger interfaces.Logger
}

// NewExtractor constructs an extractor that reports diagnostics to logger.
func NewExtractor(logger interfaces.Logger) *Extractor {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Extractor{logger: logger}
}

// extraction is the per-call state machine.
type extraction struct {
	record        *Record
	logger        interfaces.Logger
	detailsActive bool
	section       Section
	description   strings.Builder
}

// Extract builds a Record from blocks. source names the file in diagnostics.
// It fails with ErrNoBlocks on empty input and ErrParkNameMissing when no H1
// was seen; malformed tables are skipped without failing the record.
func (e *Extractor) Extract(source string, blocks []interfaces.Block) (*Record, error) {
	logger := logging.WithFileContext(e.logger, source, "")
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrNoBlocks)
	}

	state := &extraction{
		record:  newRecord(),
		logger:  logger,
		section: SectionNone,
	}
	for index, block := range blocks {
		state.apply(index, block)
	}

	if state.record.Name == "" {
		logger.Error("extractor.name_missing", "blocks", len(blocks))
		return nil, fmt.Errorf("%s: %w", source, ErrParkNameMissing)
	}
	state.record.Description = strings.TrimSpace(state.description.String())

	logging.WithFileContext(logger, "", state.record.Name).Info("extractor.record.extracted",
		"details", len(state.record.Details),
		"camping", len(state.record.Camping),
		"fees", len(state.record.Fees),
		"seasons", len(state.record.Seasons),
		"attractions", len(state.record.Attractions),
	)
	return state.record, nil
}

func (s *extraction) apply(index int, block interfaces.Block) {
	switch b := block.(type) {
	case interfaces.HeaderBlock:
		s.header(b)
	case interfaces.ParagraphBlock:
		s.paragraph(b)
	case interfaces.TableBlock:
		s.table(index, b)
	case nil:
		s.logger.Warn("extractor.block.nil", "index", index)
	default:
		s.logger.Debug("extractor.block.ignored", "index", index, "kind", block.Kind())
	}
}

func (s *extraction) header(h interfaces.HeaderBlock) {
	text := strings.TrimSpace(h.Text)
	switch h.Level {
	case 1:
		if s.record.Name != "" {
			return
		}
		s.record.Name = text
		s.detailsActive = true
		s.logger.Debug("extractor.name", "park", text)
	case 2:
		s.detailsActive = false
		section, ok := MatchSection(text)
		s.section = section
		if !ok {
			s.logger.Warn("extractor.section.unmapped", "header", text)
			return
		}
		s.logger.Debug("extractor.section", "header", text, "section", section.String())
	}
}

func (s *extraction) paragraph(p interfaces.ParagraphBlock) {
	text := strings.TrimSpace(p.Text)
	switch {
	case s.detailsActive:
		for _, line := range strings.Split(text, "\n") {
			key, value, ok := ParseDetailLine(line)
			if !ok {
				continue
			}
			s.storeDetail(key, value)
		}
	case s.section == SectionDescription:
		s.description.WriteString(text)
		s.description.WriteByte('\n')
	}
}

func (s *extraction) storeDetail(key, value string) {
	coerced := coerceDetail(key, value)
	if coerced.failed {
		s.logger.Warn("extractor.detail.coercion_failed", "key", key, "value", value, "stored_as", coerced.key)
	}
	s.record.Details[coerced.key] = coerced.value
}

func (s *extraction) table(index int, t interfaces.TableBlock) {
	if !s.section.IsList() {
		s.logger.Debug("extractor.table.out_of_section", "index", index, "section", s.section.String())
		return
	}
	logger := logging.WithSection(s.logger, s.section.String())

	rows, err := reconstructRows(s.section, t)
	if err != nil {
		logger.Warn("extractor.table.skipped", "index", index, "headers", t.Headers, "error", err)
		return
	}
	s.record.appendRows(s.section, rows)
	logger.Debug("extractor.table.rows", "index", index, "rows", len(rows))
}

// reconstructRows pivots a column-oriented table into rows. The first column
// decides the row count; short columns yield nil cells.
func reconstructRows(section Section, t interfaces.TableBlock) ([]Row, error) {
	if len(t.Headers) == 0 {
		return nil, errTableNoHeaders
	}
	for _, header := range t.Headers {
		if _, ok := t.Columns[header]; !ok {
			return nil, fmt.Errorf("%w: %q", errTableColumnMissing, header)
		}
	}
	count := t.RowCount()
	if count == 0 {
		return nil, errTableNoRows
	}

	keys := make([]string, len(t.Headers))
	for i, header := range t.Headers {
		keys[i] = ColumnKey(section, header)
	}

	rows := make([]Row, 0, count)
	for i := 0; i < count; i++ {
		row := make(Row, len(t.Headers))
		for c, header := range t.Headers {
			column := t.Columns[header]
			if i >= len(column) {
				row[keys[c]] = nil
				continue
			}
			value := strings.TrimSpace(column[i])
			row[keys[c]] = &value
		}
		rows = append(rows, row)
	}
	return rows, nil
}
