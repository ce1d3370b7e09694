package number

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/aanand-mishra/number-classifier/internal/funfact"
	"github.com/aanand-mishra/number-classifier/internal/metrics"
	"github.com/aanand-mishra/number-classifier/internal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	fact  funfact.Fact
	calls int
	panic bool
}

func (s *stubFetcher) Fetch(_ context.Context, _ int64) funfact.Fact {
	s.calls++
	if s.panic {
		panic("trivia exploded")
	}
	return s.fact
}

type fakeHistory struct {
	mu        sync.Mutex
	saved     []types.ClassificationResult
	fallbacks []bool
	err       error
}

func (f *fakeHistory) SaveClassification(result types.ClassificationResult, factFallback bool) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.saved = append(f.saved, result)
	f.fallbacks = append(f.fallbacks, factFallback)
	return int64(len(f.saved)), nil
}

func (f *fakeHistory) GetClassificationByID(int64) (types.ClassificationRecord, error) {
	return types.ClassificationRecord{}, errors.New("not implemented")
}

func (f *fakeHistory) GetRecentClassifications(int) ([]types.ClassificationRecord, error) {
	return nil, errors.New("not implemented")
}

func classifyRequest(t *testing.T, h http.Handler, number *string) *httptest.ResponseRecorder {
	t.Helper()
	target := "/api/classify-number"
	if number != nil {
		target += "?number=" + url.QueryEscape(*number)
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func ptr(s string) *string { return &s }

func TestClassify_Success(t *testing.T) {
	fetcher := &stubFetcher{fact: funfact.Fact{Text: "371 is a narcissistic number."}}
	history := &fakeHistory{}

	rec := classifyRequest(t, Classify(fetcher, history, nil), ptr("371"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"number": 371,
		"is_prime": false,
		"is_perfect": false,
		"properties": ["armstrong", "odd"],
		"digit_sum": 11,
		"fun_fact": "371 is a narcissistic number."
	}`, rec.Body.String())

	require.Len(t, history.saved, 1)
	assert.Equal(t, int64(371), history.saved[0].Number)
	assert.False(t, history.fallbacks[0])
}

func TestClassify_PrimeAndPerfect(t *testing.T) {
	fetcher := &stubFetcher{fact: funfact.Fact{Text: "fact"}}

	var prime types.ClassificationResult
	rec := classifyRequest(t, Classify(fetcher, nil, nil), ptr("7"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prime))
	assert.True(t, prime.IsPrime)
	assert.False(t, prime.IsPerfect)

	var perfect types.ClassificationResult
	rec = classifyRequest(t, Classify(fetcher, nil, nil), ptr("28"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &perfect))
	assert.False(t, perfect.IsPrime)
	assert.True(t, perfect.IsPerfect)
	assert.Equal(t, []string{"even"}, perfect.Properties)
	assert.Equal(t, 10, perfect.DigitSum)
}

func TestClassify_NegativeNumber(t *testing.T) {
	fetcher := &stubFetcher{fact: funfact.Fact{Text: "fact"}}

	rec := classifyRequest(t, Classify(fetcher, nil, nil), ptr("-123"))

	require.Equal(t, http.StatusOK, rec.Code)
	var got types.ClassificationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(-123), got.Number)
	assert.False(t, got.IsPrime)
	assert.Equal(t, []string{"odd"}, got.Properties)
	assert.Equal(t, 6, got.DigitSum)
}

func TestClassify_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		number *string
		echo   string
	}{
		{name: "letters", number: ptr("abc"), echo: "abc"},
		{name: "fraction", number: ptr("1.5"), echo: "1.5"},
		{name: "empty", number: ptr(""), echo: ""},
		{name: "missing", number: nil, echo: ""},
		{name: "too large", number: ptr("99999999999999999999"), echo: "99999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &stubFetcher{}
			history := &fakeHistory{}

			rec := classifyRequest(t, Classify(fetcher, history, nil), tt.number)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var got types.ErrorResult
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, types.ErrorResult{Number: tt.echo, Error: true}, got)
			assert.Zero(t, fetcher.calls, "fetcher must not be called for invalid input")
			assert.Empty(t, history.saved)
		})
	}
}

func TestClassify_FallbackFactStillSucceeds(t *testing.T) {
	fetcher := &stubFetcher{fact: funfact.Fact{Text: funfact.FallbackUnreachable, Fallback: true}}
	history := &fakeHistory{}

	rec := classifyRequest(t, Classify(fetcher, history, nil), ptr("371"))

	require.Equal(t, http.StatusOK, rec.Code)
	var got types.ClassificationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, funfact.FallbackUnreachable, got.FunFact)
	require.Len(t, history.fallbacks, 1)
	assert.True(t, history.fallbacks[0])
}

func TestClassify_UnreachableTriviaService(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	h := Classify(funfact.New(base, 100*time.Millisecond), nil, nil)
	rec := classifyRequest(t, h, ptr("371"))

	require.Equal(t, http.StatusOK, rec.Code)
	var got types.ClassificationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotEmpty(t, got.FunFact)
	assert.Equal(t, []string{"armstrong", "odd"}, got.Properties)
}

func TestClassify_HistoryFailureIsIgnored(t *testing.T) {
	fetcher := &stubFetcher{fact: funfact.Fact{Text: "fact"}}
	history := &fakeHistory{err: errors.New("disk full")}

	rec := classifyRequest(t, Classify(fetcher, history, nil), ptr("6"))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClassify_PanicBecomesBadRequest(t *testing.T) {
	fetcher := &stubFetcher{panic: true}

	rec := classifyRequest(t, Classify(fetcher, nil, nil), ptr("371"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"number":"371","error":true}`, rec.Body.String())
}

func TestClassify_Idempotent(t *testing.T) {
	fetcher := &stubFetcher{fact: funfact.Fact{Text: "fact"}}
	h := Classify(fetcher, nil, nil)

	first := classifyRequest(t, h, ptr("9474"))
	second := classifyRequest(t, h, ptr("9474"))

	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestClassify_Metrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	h := Classify(&stubFetcher{fact: funfact.Fact{Text: "fact"}}, nil, m)

	classifyRequest(t, h, ptr("1"))
	classifyRequest(t, h, ptr("x"))

	count, err := testutil.GatherAndCount(registry, "numbers_classifications_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
