package validation

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	NameMinLength           = 2
	NameMaxLength           = 50
	AddressMinLength        = 10
	AddressMaxLength        = 200
	CommentMinLength        = 5
	CommentMaxLength        = 500
	SupportMessageMinLength = 10
	SupportMessageMaxLength = 1000
	ProblemMinLength        = 10
	ProblemMaxLength        = 1000
	RatingMin               = 1
	RatingMax               = 5
)

var (
	nameRegexp  = regexp.MustCompile(`^[\p{L}\s\-]+$`)
	phoneRegexp = regexp.MustCompile(`^(\+7|8|7)?[\s\-]?\(?[0-9]{3}\)?[\s\-]?[0-9]{3}[\s\-]?[0-9]{2}[\s\-]?[0-9]{2}$`)
	nonDigit    = regexp.MustCompile(`\D`)
)

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// ValidateName проверяет имя и возвращает его в NFC
func ValidateName(name string) (string, error) {
	name = norm.NFC.String(Sanitize(name))

	if name == "" {
		return "", fieldError(FieldName, "Имя не может быть пустым")
	}
	if runeLen(name) < NameMinLength {
		return "", fieldError(FieldName, "Имя должно содержать минимум %d символа", NameMinLength)
	}
	if runeLen(name) > NameMaxLength {
		return "", fieldError(FieldName, "Имя не должно превышать %d символов", NameMaxLength)
	}
	if !nameRegexp.MatchString(name) {
		return "", fieldError(FieldName, "Имя может содержать только буквы, пробелы и дефисы")
	}

	return name, nil
}

// ValidatePhone проверяет российский номер и приводит его к виду +7 (XXX) XXX-XX-XX
func ValidatePhone(phone string) (string, error) {
	phone = Sanitize(phone)

	if phone == "" {
		return "", fieldError(FieldPhone, "Номер телефона не может быть пустым")
	}
	if !phoneRegexp.MatchString(phone) {
		return "", fieldError(FieldPhone, "Неверный формат номера. Пример: +7 (900) 123-45-67")
	}

	digits := nonDigit.ReplaceAllString(phone, "")
	switch {
	case len(digits) == 10:
		digits = "7" + digits
	case len(digits) == 11 && digits[0] == '8':
		digits = "7" + digits[1:]
	}
	if len(digits) != 11 || digits[0] != '7' {
		return "", fieldError(FieldPhone, "Неверный формат номера. Пример: +7 (900) 123-45-67")
	}

	return fmt.Sprintf("+7 (%s) %s-%s-%s", digits[1:4], digits[4:7], digits[7:9], digits[9:11]), nil
}

func validateLength(field, value string, min, max int, tooShort, tooLong string) (string, error) {
	value = Sanitize(value)
	n := runeLen(value)
	if n < min {
		return "", fieldError(field, tooShort, min)
	}
	if n > max {
		return "", fieldError(field, tooLong, max)
	}
	return value, nil
}

// ValidateAddress адрес 10-200 символов, без структурных проверок
func ValidateAddress(address string) (string, error) {
	return validateLength(FieldAddress, address, AddressMinLength, AddressMaxLength,
		"Адрес должен содержать минимум %d символов",
		"Адрес не должен превышать %d символов")
}

func ValidateReviewComment(comment string) (string, error) {
	return validateLength(FieldComment, comment, CommentMinLength, CommentMaxLength,
		"Отзыв должен содержать минимум %d символов",
		"Отзыв не должен превышать %d символов")
}

func ValidateSupportMessage(message string) (string, error) {
	return validateLength(FieldMessage, message, SupportMessageMinLength, SupportMessageMaxLength,
		"Сообщение должно содержать минимум %d символов",
		"Сообщение не должно превышать %d символов")
}

// ValidateProblemText описание проблемы для консультации.
// Длинный текст не отклоняется, Sanitize уже обрезал его до MaxInputLength
func ValidateProblemText(problem string) (string, error) {
	problem = Sanitize(problem)
	if runeLen(problem) < ProblemMinLength {
		return "", fieldError(FieldProblem, "Опишите проблему подробнее, минимум %d символов", ProblemMinLength)
	}
	return TruncateRunes(problem, ProblemMaxLength), nil
}

func ValidateRating(rating int) error {
	if rating < RatingMin || rating > RatingMax {
		return fieldError(FieldRating, "Оценка должна быть от %d до %d", RatingMin, RatingMax)
	}
	return nil
}

// ServiceExists проверка наличия услуги в каталоге
type ServiceExists func(ctx context.Context, id int64) (bool, error)

// ValidateServiceIDs проверяет набор услуг: не пустой, не больше max, все есть в каталоге.
// Возвращает отсортированный набор без дублей. Ошибка exists возвращается обёрнутой,
// а не как FieldError
func ValidateServiceIDs(ctx context.Context, ids []int64, max int, exists ServiceExists) ([]int64, error) {
	unique := Dedupe(ids)

	if len(unique) == 0 {
		return nil, fieldError(FieldServices, "Выберите хотя бы одну услугу")
	}
	if len(unique) > max {
		return nil, fieldError(FieldServices, "Можно выбрать не более %d услуг", max)
	}

	for _, id := range unique {
		ok, err := exists(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("check service %d: %w", id, err)
		}
		if !ok {
			return nil, fieldError(FieldServices, "Услуга #%d больше недоступна", id)
		}
	}

	return unique, nil
}

// Dedupe убирает дубли и сортирует по возрастанию
func Dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
