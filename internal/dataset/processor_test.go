package dataset

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"namecorrector/adapters/excel"
	"namecorrector/domain/dataset"
	"namecorrector/domain/taxon"
	"namecorrector/internal/correction"
	"namecorrector/internal/errors"
	"namecorrector/internal/i18n"
)

// stubMatcher answers from a fixed table; unknown names get NONE
type stubMatcher struct {
	known map[string]*taxon.MatchResult
	fail  map[string]error
	calls []string
}

func (s *stubMatcher) Match(_ context.Context, name string) (*taxon.MatchResult, error) {
	s.calls = append(s.calls, name)
	if err, ok := s.fail[name]; ok {
		return nil, err
	}
	if m, ok := s.known[name]; ok {
		return m, nil
	}
	return &taxon.MatchResult{MatchType: taxon.MatchNone}, nil
}

type httpStatus int

func (h httpStatus) Error() string   { return fmt.Sprintf("status %d", int(h)) }
func (h httpStatus) StatusCode() int { return int(h) }

func newTestProcessor(m *stubMatcher, locale string) *Processor {
	labels := i18n.New(locale)
	cfg := excel.DefaultExcelConfig()
	engine := correction.NewEngine(m, labels, quietLogger())
	return NewProcessor(excel.NewDataReader(cfg, quietLogger()), excel.NewDataWriter(cfg, quietLogger()), engine, labels, quietLogger())
}

func csvUpload(name, body string) *dataset.Upload {
	return &dataset.Upload{Filename: name, Size: int64(len(body)), File: strings.NewReader(body)}
}

func TestProcessorEndToEnd(t *testing.T) {
	m := &stubMatcher{
		known: map[string]*taxon.MatchResult{
			"Panthera leo": {
				ScientificName: "Panthera leo (Linnaeus, 1758)",
				Genus:          "Panthera",
				Family:         "Felidae",
				Status:         "ACCEPTED",
				MatchType:      taxon.MatchExact,
				Confidence:     98,
			},
		},
		fail: map[string]error{"Puma concolor": httpStatus(503)},
	}
	p := newTestProcessor(m, "es")

	table, err := p.ProcessUpload(csvUpload("animals.csv", "especie,count\nPanthera leo,3\nxyzabc123,1\nPuma concolor,2\n"))
	require.NoError(t, err)
	assert.Equal(t, "especie", p.SuggestColumn(table))

	result, err := p.Correct(context.Background(), table, "especie", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Panthera leo", "xyzabc123", "Puma concolor"}, m.calls)
	assert.Equal(t, []string{"especie", "count", "nombre_corregido", "genero", "familia", "estatus"}, result.Table.Headers)
	assert.Equal(t, "ACCEPTED", result.Table.Rows[0][5])
	assert.Equal(t, "No encontrado", result.Table.Rows[1][5])
	assert.Equal(t, "Error 503", result.Table.Rows[2][5])
	assert.Equal(t, 1, result.Summary.Matched)
	assert.Equal(t, 3, result.Summary.Total)

	export := result.Export
	require.NotNil(t, export)
	assert.Regexp(t, regexp.MustCompile(`^corrected_names_\d{8}_\d{6}\.xlsx$`), export.Filename)
	assert.Equal(t, dataset.SpreadsheetMIME, export.ContentType)
	assert.False(t, export.Checksum.IsEmpty())

	// the workbook reads back as the merged table
	reread, err := excel.NewDataReader(excel.DefaultExcelConfig(), quietLogger()).ReadExcel(bytes.NewReader(export.Data))
	require.NoError(t, err)
	assert.True(t, reread.Equal(result.Table), "got %v", reread)
}

func TestProcessorUnknownColumn(t *testing.T) {
	p := newTestProcessor(&stubMatcher{}, "en")
	table, err := p.ProcessUpload(csvUpload("a.csv", "name\nPanthera leo\n"))
	require.NoError(t, err)

	_, err = p.Correct(context.Background(), table, "species", nil)
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestProcessorRejectsBadUploads(t *testing.T) {
	p := newTestProcessor(&stubMatcher{}, "en")

	_, err := p.ProcessUpload(csvUpload("notes.txt", "hello"))
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = p.ProcessUpload(&dataset.Upload{Filename: "a.xlsx"})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = p.ProcessUpload(csvUpload("broken.xlsx", "not a zip"))
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestProcessorCancelledRun(t *testing.T) {
	p := newTestProcessor(&stubMatcher{}, "en")
	table, err := p.ProcessUpload(csvUpload("a.csv", "name\nPanthera leo\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Correct(ctx, table, "name", nil)
	assert.ErrorIs(t, err, context.Canceled)
}
