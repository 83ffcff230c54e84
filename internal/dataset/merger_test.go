package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"namecorrector/domain/core"
	"namecorrector/domain/dataset"
	"namecorrector/domain/taxon"
	"namecorrector/internal"
)

var spanishColumns = []string{"nombre_corregido", "genero", "familia", "estatus"}

func quietLogger() *internal.Logger {
	return internal.NewLogger(internal.LogLevelError)
}

func TestMergeAppendsFourColumns(t *testing.T) {
	table, err := dataset.NewTable([]string{"id", "especie"}, [][]string{
		{"1", "Panthera leo"},
		{"2", "xyzabc123"},
	})
	require.NoError(t, err)

	records := []taxon.CorrectionRecord{
		taxon.FromMatch(&taxon.MatchResult{
			ScientificName: "Panthera leo (Linnaeus, 1758)",
			Genus:          "Panthera",
			Family:         "Felidae",
			Status:         "ACCEPTED",
			MatchType:      taxon.MatchExact,
		}),
		taxon.Unmatched("No encontrado"),
	}

	result, err := NewMerger(quietLogger()).Merge(table, records, spanishColumns)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "especie", "nombre_corregido", "genero", "familia", "estatus"}, result.Table.Headers)
	assert.Equal(t, []string{"1", "Panthera leo", "Panthera leo (Linnaeus, 1758)", "Panthera", "Felidae", "ACCEPTED"}, result.Table.Rows[0])
	assert.Equal(t, []string{"2", "xyzabc123", "", "", "", "No encontrado"}, result.Table.Rows[1])
	assert.Equal(t, 2, result.RowCount)
	assert.Equal(t, 6, result.ColumnCount)
	assert.Empty(t, result.Warnings)

	// input untouched
	assert.Equal(t, []string{"id", "especie"}, table.Headers)
	assert.Len(t, table.Rows[0], 2)
}

func TestMergeRenamesCollidingHeaders(t *testing.T) {
	table, err := dataset.NewTable([]string{"nombre", "estatus"}, [][]string{{"Quercus robur", "vivo"}})
	require.NoError(t, err)

	result, err := NewMerger(quietLogger()).Merge(table, []taxon.CorrectionRecord{taxon.Unmatched("No encontrado")}, spanishColumns)
	require.NoError(t, err)

	assert.Equal(t, []string{"nombre", "estatus", "nombre_corregido", "genero", "familia", "estatus.1"}, result.Table.Headers)
	assert.Equal(t, []string{"nombre_corregido", "genero", "familia", "estatus.1"}, result.AppendedColumns)
	assert.Len(t, result.Warnings, 1)
	assert.Equal(t, "vivo", result.Table.Rows[0][1])
}

func TestMergeLengthMismatch(t *testing.T) {
	table, err := dataset.NewTable([]string{"name"}, [][]string{{"a"}, {"b"}})
	require.NoError(t, err)

	_, err = NewMerger(quietLogger()).Merge(table, []taxon.CorrectionRecord{taxon.Unmatched("x")}, spanishColumns)
	assert.ErrorIs(t, err, core.ErrLengthMismatch)
}

func TestMergeEmptyTable(t *testing.T) {
	table, err := dataset.NewTable([]string{"name"}, nil)
	require.NoError(t, err)

	result, err := NewMerger(quietLogger()).Merge(table, nil, spanishColumns)
	require.NoError(t, err)
	assert.Equal(t, 0, result.RowCount)
	assert.Len(t, result.Table.Headers, 5)
}
