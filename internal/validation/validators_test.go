package validation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireFieldError(t *testing.T, err error, field string) *FieldError {
	t.Helper()
	require.Error(t, err)
	fe, ok := AsFieldError(err)
	require.True(t, ok, "expected FieldError, got %v", err)
	assert.Equal(t, field, fe.Field)
	assert.NotEmpty(t, fe.Message)
	return fe
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"tags", "<b>Иван</b>", "Иван"},
		{"quotes", `Привет "мир" 'тест'`, "Привет мир тест"},
		{"entities", "a & b", "a & b"},
		{"spaces", "   ул. Ленина   ", "ул. Ленина"},
		{"script content dropped", "Привет<script>alert(1)</script> мир", "Привет мир"},
		{"style content dropped", "<style>p { color: red }</style>не включается", "не включается"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitizeClampsLength(t *testing.T) {
	out := Sanitize(strings.Repeat("я", 1500))
	assert.Equal(t, MaxInputLength, utf8.RuneCountInString(out))
}

func TestValidateName(t *testing.T) {
	name, err := ValidateName("  Анна-Мария ")
	require.NoError(t, err)
	assert.Equal(t, "Анна-Мария", name)

	name, err = ValidateName("John Smith")
	require.NoError(t, err)
	assert.Equal(t, "John Smith", name)

	// е + комбинируемая диерезис
	name, err = ValidateName("Пе\u0308тр")
	require.NoError(t, err)
	assert.Equal(t, "Пётр", name)

	_, err = ValidateName("И")
	requireFieldError(t, err, FieldName)

	_, err = ValidateName("Ivan123")
	requireFieldError(t, err, FieldName)

	_, err = ValidateName(strings.Repeat("а", 51))
	requireFieldError(t, err, FieldName)

	_, err = ValidateName("")
	requireFieldError(t, err, FieldName)
}

func TestValidatePhone(t *testing.T) {
	valid := []string{
		"89001234567",
		"79001234567",
		"+79001234567",
		"+7 900 123-45-67",
		"+7 (900) 123-45-67",
		"8 (900) 123 45 67",
		"9001234567",
	}
	for _, in := range valid {
		t.Run(in, func(t *testing.T) {
			out, err := ValidatePhone(in)
			require.NoError(t, err)
			assert.Equal(t, "+7 (900) 123-45-67", out)
		})
	}

	for _, in := range []string{"", "12345", "+1 900 123 45 67", "телефон"} {
		_, err := ValidatePhone(in)
		requireFieldError(t, err, FieldPhone)
	}
}

func TestValidateTextLengths(t *testing.T) {
	addr, err := ValidateAddress("ул. Тестовая, 5, кв. 1")
	require.NoError(t, err)
	assert.Equal(t, "ул. Тестовая, 5, кв. 1", addr)

	_, err = ValidateAddress("ул. 5")
	requireFieldError(t, err, FieldAddress)
	_, err = ValidateAddress(strings.Repeat("д", 201))
	requireFieldError(t, err, FieldAddress)

	_, err = ValidateReviewComment("Ок")
	requireFieldError(t, err, FieldComment)
	_, err = ValidateReviewComment("Отлично")
	require.NoError(t, err)

	_, err = ValidateSupportMessage("помогите")
	requireFieldError(t, err, FieldMessage)
	_, err = ValidateSupportMessage("Не могу отменить заказ")
	require.NoError(t, err)
}

func TestValidateProblemText(t *testing.T) {
	_, err := ValidateProblemText("  шумит  ")
	requireFieldError(t, err, FieldProblem)

	long := strings.Repeat("греется ", 200)
	out, err := ValidateProblemText(long)
	require.NoError(t, err)
	assert.LessOrEqual(t, utf8.RuneCountInString(out), ProblemMaxLength)
}

func TestValidateRating(t *testing.T) {
	for r := 1; r <= 5; r++ {
		assert.NoError(t, ValidateRating(r))
	}
	requireFieldError(t, ValidateRating(0), FieldRating)
	requireFieldError(t, ValidateRating(6), FieldRating)
}

func TestValidateServiceIDs(t *testing.T) {
	ctx := context.Background()
	catalog := map[int64]bool{1: true, 2: true, 3: true}
	exists := func(_ context.Context, id int64) (bool, error) {
		return catalog[id], nil
	}

	ids, err := ValidateServiceIDs(ctx, []int64{3, 1, 3}, 10, exists)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids)

	_, err = ValidateServiceIDs(ctx, nil, 10, exists)
	requireFieldError(t, err, FieldServices)

	_, err = ValidateServiceIDs(ctx, []int64{1, 2, 3}, 2, exists)
	requireFieldError(t, err, FieldServices)

	_, err = ValidateServiceIDs(ctx, []int64{1, 42}, 10, exists)
	requireFieldError(t, err, FieldServices)

	ioErr := errors.New("connection reset")
	_, err = ValidateServiceIDs(ctx, []int64{1}, 10, func(context.Context, int64) (bool, error) {
		return false, ioErr
	})
	require.ErrorIs(t, err, ioErr)
	_, isField := AsFieldError(err)
	assert.False(t, isField)
}

func TestValidateSlot(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, msk)
	today := StartOfDay(now, msk)
	w := DefaultWindow()

	assert.NoError(t, ValidateSlot(today.AddDate(0, 0, 5), "14:00", w, now))
	assert.NoError(t, ValidateSlot(today.AddDate(0, 0, 1), "10:00", w, now))
	assert.NoError(t, ValidateSlot(today.AddDate(0, 0, 30), "20:00", w, now))

	fe := requireFieldError(t, ValidateSlot(today.AddDate(0, 0, -1), "14:00", w, now), FieldDate)
	assert.Contains(t, fe.Message, "прошлом")

	requireFieldError(t, ValidateSlot(today, "20:00", w, now), FieldDate)
	requireFieldError(t, ValidateSlot(today.AddDate(0, 0, 31), "10:00", w, now), FieldDate)
	requireFieldError(t, ValidateSlot(today.AddDate(0, 0, 2), "13:00", w, now), FieldTime)
}

func TestOfferedDates(t *testing.T) {
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
	dates := OfferedDates(now, Window{OfferDays: 14, AcceptDays: 30})

	require.Len(t, dates, 14)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), dates[0])
	assert.Equal(t, time.Date(2026, 3, 24, 0, 0, 0, 0, time.UTC), dates[13])
}
