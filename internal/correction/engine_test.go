package correction

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"namecorrector/domain/taxon"
	"namecorrector/internal"
	"namecorrector/internal/errors"
	"namecorrector/internal/i18n"
)

// MockMatcher is a testify mock of ports.NameMatcher
type MockMatcher struct {
	mock.Mock
}

func (m *MockMatcher) Match(ctx context.Context, name string) (*taxon.MatchResult, error) {
	args := m.Called(ctx, name)
	res, _ := args.Get(0).(*taxon.MatchResult)
	return res, args.Error(1)
}

type statusErr struct{ code int }

func (e statusErr) Error() string   { return fmt.Sprintf("http %d", e.code) }
func (e statusErr) StatusCode() int { return e.code }

func newEngine(m *MockMatcher, locale string) *Engine {
	return NewEngine(m, i18n.New(locale), internal.NewLogger(internal.LogLevelError))
}

var pantheraLeo = &taxon.MatchResult{
	ScientificName: "Panthera leo (Linnaeus, 1758)",
	Genus:          "Panthera",
	Family:         "Felidae",
	Status:         "ACCEPTED",
	MatchType:      taxon.MatchExact,
	Confidence:     98,
}

func TestCorrectMatchedAndUnmatched(t *testing.T) {
	m := new(MockMatcher)
	m.On("Match", mock.Anything, "Panthera leo").Return(pantheraLeo, nil).Once()
	m.On("Match", mock.Anything, "xyzabc123").Return(&taxon.MatchResult{MatchType: taxon.MatchNone, Confidence: 100}, nil).Once()

	records, err := newEngine(m, "en").Correct(context.Background(), []string{"Panthera leo", "xyzabc123"})
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.NotNil(t, records[0].CorrectedName)
	assert.Equal(t, "Panthera leo (Linnaeus, 1758)", *records[0].CorrectedName)
	assert.Equal(t, "Panthera", *records[0].Genus)
	assert.Equal(t, "Felidae", *records[0].Family)
	assert.Equal(t, "ACCEPTED", records[0].Status)

	assert.Nil(t, records[1].CorrectedName)
	assert.Nil(t, records[1].Genus)
	assert.Nil(t, records[1].Family)
	assert.Equal(t, "not found", records[1].Status)

	m.AssertExpectations(t)
}

func TestCorrectSpanishLabels(t *testing.T) {
	m := new(MockMatcher)
	m.On("Match", mock.Anything, "xyzabc123").Return(&taxon.MatchResult{}, nil)
	m.On("Match", mock.Anything, "Puma concolor").Return(nil, errors.ExternalServiceError("gbif", statusErr{code: 503}))

	records, err := newEngine(m, "es").Correct(context.Background(), []string{"xyzabc123", "Puma concolor"})
	require.NoError(t, err)

	assert.Equal(t, "No encontrado", records[0].Status)
	assert.Equal(t, "Error 503", records[1].Status)
}

func TestCorrectFailuresDoNotStopTheRun(t *testing.T) {
	m := new(MockMatcher)
	m.On("Match", mock.Anything, "a b").Return(nil, statusErr{code: 500}).Once()
	m.On("Match", mock.Anything, "c d").Return(nil, fmt.Errorf("dial tcp: connection refused")).Once()
	m.On("Match", mock.Anything, "Panthera leo").Return(pantheraLeo, nil).Once()

	records, err := newEngine(m, "en").Correct(context.Background(), []string{"a b", "c d", "Panthera leo"})
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Error 500", records[0].Status)
	assert.Contains(t, records[0].Status, "500")
	assert.Nil(t, records[0].CorrectedName)
	assert.Nil(t, records[0].Genus)
	assert.Nil(t, records[0].Family)

	assert.Equal(t, "Connection error", records[1].Status)
	assert.Nil(t, records[1].CorrectedName)

	assert.True(t, records[2].Matched())
	m.AssertNumberOfCalls(t, "Match", 3)
}

func TestCorrectPreservesLengthAndOrder(t *testing.T) {
	m := new(MockMatcher)
	names := make([]string, 25)
	for i := range names {
		names[i] = fmt.Sprintf("Genus species%d", i)
		m.On("Match", mock.Anything, names[i]).Return(&taxon.MatchResult{
			ScientificName: names[i] + " Auth.",
			MatchType:      taxon.MatchFuzzy,
			Status:         "ACCEPTED",
		}, nil).Once()
	}

	records, err := newEngine(m, "en").Correct(context.Background(), names)
	require.NoError(t, err)
	require.Len(t, records, len(names))
	for i, rec := range records {
		assert.Equal(t, names[i]+" Auth.", *rec.CorrectedName)
	}
}

func TestCorrectEmptyInput(t *testing.T) {
	m := new(MockMatcher)

	records, err := newEngine(m, "en").Correct(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, records)
	m.AssertNotCalled(t, "Match", mock.Anything, mock.Anything)
}

func TestCorrectNormalizesQueries(t *testing.T) {
	m := new(MockMatcher)
	m.On("Match", mock.Anything, "Panthera leo").Return(pantheraLeo, nil).Twice()
	m.On("Match", mock.Anything, "Ca\u00f1is").Return(&taxon.MatchResult{MatchType: taxon.MatchNone}, nil).Once()

	_, err := newEngine(m, "en").Correct(context.Background(), []string{"  Panthera   leo ", "Panthera leo", "Can\u0303is"})
	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestCorrectStopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := new(MockMatcher)
	m.On("Match", mock.Anything, "first").Run(func(mock.Arguments) { cancel() }).
		Return(nil, context.Canceled).Once()

	records, err := newEngine(m, "en").Correct(ctx, []string{"first", "second"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, records)
	m.AssertNumberOfCalls(t, "Match", 1)
}

func TestCorrectReportsProgress(t *testing.T) {
	m := new(MockMatcher)
	m.On("Match", mock.Anything, mock.Anything).Return(&taxon.MatchResult{MatchType: taxon.MatchNone}, nil)

	var seen [][2]int
	engine := newEngine(m, "en").WithProgress(func(done, total int) {
		seen = append(seen, [2]int{done, total})
	})

	_, err := engine.Correct(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, seen)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "Quercus robur", NormalizeName("\tQuercus\n robur "))
	assert.Equal(t, "", NormalizeName("   "))
}
