package recommendation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Freeeeeet/repair_bot/internal/model"
)

var idMarker = regexp.MustCompile(`\[ID:\s*(\d+)\]`)

// BuildPrompt собирает запрос к консультанту: описание проблемы, каталог и инструкции
func BuildPrompt(problem string, catalog []model.Service) string {
	var b strings.Builder

	b.WriteString("Ты консультант сервиса по ремонту компьютеров.\n")
	b.WriteString("Клиент описал проблему:\n")
	b.WriteString(problem)
	b.WriteString("\n\nДоступные услуги:\n")
	for _, s := range catalog {
		fmt.Fprintf(&b, "- id %d: %s, %d руб., %d мин. %s\n", s.ID, s.Name, s.Price, s.Duration, s.Description)
	}

	b.WriteString("\nЗадание:\n")
	b.WriteString("1. Кратко проанализируй проблему и назови вероятные причины.\n")
	b.WriteString("2. Рекомендуй только услуги из списка выше.\n")
	b.WriteString("3. Рядом с каждой рекомендованной услугой поставь маркер [ID: номер], например [ID: 1].\n")
	fmt.Fprintf(&b, "4. Рекомендуй не более %d услуг.\n", model.MaxRecommendedServices)
	b.WriteString("Отвечай на русском языке, без markdown.")

	return b.String()
}

// ExtractServiceIDs достаёт id из маркеров [ID: N] в порядке появления, без дублей
func ExtractServiceIDs(text string) []int64 {
	matches := idMarker.FindAllStringSubmatch(text, -1)
	seen := make(map[int64]struct{}, len(matches))
	ids := make([]int64, 0, len(matches))
	for _, m := range matches {
		id, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
