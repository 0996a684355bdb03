package recommendation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/repository/memory"
	"github.com/Freeeeeet/repair_bot/internal/validation"
)

type stubProvider struct {
	answer string
	err    error
	calls  int
}

func (p *stubProvider) Generate(_ context.Context, _ string) (string, error) {
	p.calls++
	return p.answer, p.err
}

func catalog() []model.Service {
	return memory.DefaultServices()
}

func TestRecommendRejectsShortProblemBeforeCall(t *testing.T) {
	provider := &stubProvider{answer: "[ID: 1]"}
	a := NewAdapter(provider, nil, nil)

	_, err := a.Recommend(context.Background(), "  шумит ", catalog())
	require.Error(t, err)

	fe, ok := validation.AsFieldError(err)
	require.True(t, ok)
	assert.Equal(t, validation.FieldProblem, fe.Field)
	assert.Zero(t, provider.calls)
}

func TestRecommendAdvicePath(t *testing.T) {
	provider := &stubProvider{answer: "Перегрев. Нужна чистка [ID: 2] и термопаста [ID:3], ещё раз чистка [ID: 2], и [ID: 99]."}
	a := NewAdapter(provider, nil, nil)

	res, err := a.Recommend(context.Background(), "ноутбук сильно греется под нагрузкой", catalog())
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.False(t, res.Fallback)
	assert.Equal(t, []int64{2, 3}, res.ServiceIDs)
	assert.Equal(t, provider.answer, res.Rationale)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", res.ConsultationID.String())
}

func TestRecommendCapsAtFive(t *testing.T) {
	provider := &stubProvider{answer: "[ID: 1] [ID: 2] [ID: 3] [ID: 4] [ID: 5] [ID: 6] [ID: 7]"}
	a := NewAdapter(provider, nil, nil)

	res, err := a.Recommend(context.Background(), "всё сломалось, помогите", catalog())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, res.ServiceIDs)
}

func TestRecommendFallbackOnProviderError(t *testing.T) {
	a := NewAdapter(&stubProvider{err: errors.New("boom")}, nil, nil)

	problems := []string{
		"компьютер сильно шумит и греется",
		"после обновления не загружается windows",
		"какая-то непонятная проблема с компьютером",
		strings.Repeat("тормозит ", 300),
	}
	for _, p := range problems {
		res, err := a.Recommend(context.Background(), p, catalog())
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.True(t, res.Fallback)
		assert.NotEmpty(t, res.ServiceIDs)
		assert.LessOrEqual(t, len(res.ServiceIDs), model.MaxRecommendedServices)
	}

	st := a.LastStatus()
	assert.True(t, st.Configured)
	assert.False(t, st.Available)
	assert.Equal(t, "boom", st.LastError)
}

func TestRecommendWithoutProvider(t *testing.T) {
	a := NewAdapter(nil, nil, nil)

	res, err := a.Recommend(context.Background(), "компьютер сильно шумит и греется", catalog())
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Equal(t, []int64{1, 2, 3}, res.ServiceIDs)

	st := a.Status(context.Background())
	assert.False(t, st.Configured)
	assert.False(t, st.Available)
}

func TestRecommendKeepsAdviceTextWithoutIDs(t *testing.T) {
	provider := &stubProvider{answer: "Скорее всего дело в вирусах."}
	a := NewAdapter(provider, nil, nil)

	res, err := a.Recommend(context.Background(), "выскакивает реклама в браузере", catalog())
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Equal(t, []int64{9, 1}, res.ServiceIDs)
	assert.True(t, strings.HasPrefix(res.Rationale, provider.answer))
}

func TestRecommendFiltersFallbackAgainstCatalog(t *testing.T) {
	var reduced []model.Service
	for _, s := range catalog() {
		if s.ID != 2 && s.ID != 3 {
			reduced = append(reduced, s)
		}
	}
	a := NewAdapter(nil, nil, nil)

	res, err := a.Recommend(context.Background(), "компьютер сильно шумит и греется", reduced)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, res.ServiceIDs)
}

func TestMatchCategory(t *testing.T) {
	assert.Equal(t, "overheating", MatchCategory("Компьютер сильно ШУМИТ и греется").Name)
	assert.Equal(t, "network", MatchCategory("не работает интернет через wi-fi").Name)
	assert.Equal(t, "general", MatchCategory("просто хочу проверить").Name)
	assert.Equal(t, []int64{1, 2, 9}, MatchCategory("просто хочу проверить").ServiceIDs)
}

func TestMatchCategoryCountsDistinctKeywords(t *testing.T) {
	got := MatchCategory("тормозит тормозит тормозит, а ещё вирус и реклама")
	assert.Equal(t, "virus", got.Name)
}

func TestExtractServiceIDs(t *testing.T) {
	assert.Equal(t, []int64{4, 1}, ExtractServiceIDs("[ID: 4] потом [ID:1] и снова [ID:  4]"))
	assert.Empty(t, ExtractServiceIDs("без маркеров"))
}

func TestBuildPromptListsCatalog(t *testing.T) {
	prompt := BuildPrompt("греется", catalog()[:2])
	assert.Contains(t, prompt, "id 1: Диагностика компьютера, 500 руб., 30 мин.")
	assert.Contains(t, prompt, "id 2: Чистка от пыли")
	assert.Contains(t, prompt, "[ID: номер]")
	assert.Contains(t, prompt, fmt.Sprintf("не более %d", model.MaxRecommendedServices))
}

func TestGeminiProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "models/test-model:generateContent") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Чистка [ID: 2]"}]}}]}`))
	}))
	defer srv.Close()

	p, err := NewGeminiProvider(context.Background(), "key", "test-model", time.Second,
		WithBaseURL(srv.URL+"/"), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	answer, err := p.Generate(context.Background(), "греется")
	require.NoError(t, err)
	assert.Equal(t, "Чистка [ID: 2]", answer)
}

func TestGeminiProviderQuota(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	p, err := NewGeminiProvider(context.Background(), "key", "test-model", time.Second,
		WithBaseURL(srv.URL+"/"), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), "греется")
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestGeminiProviderEmptyAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"  "}]}}]}`))
	}))
	defer srv.Close()

	p, err := NewGeminiProvider(context.Background(), "key", "models/test-model", time.Second,
		WithBaseURL(srv.URL+"/"), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), "греется")
	assert.ErrorIs(t, err, ErrEmptyAnswer)
}

func TestGeminiProviderRequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), "", "", time.Second)
	assert.Error(t, err)
}
