package formatting

import (
	"fmt"
	"strconv"
)

// FormatPrice форматирует цену в рублях с разделителем тысяч: 12 500 ₽
func FormatPrice(rubles int) string {
	sign := ""
	if rubles < 0 {
		sign = "-"
		rubles = -rubles
	}

	digits := strconv.Itoa(rubles)
	grouped := make([]byte, 0, len(digits)+len(digits)/3)
	for i := 0; i < len(digits); i++ {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ' ')
		}
		grouped = append(grouped, digits[i])
	}

	return fmt.Sprintf("%s%s ₽", sign, grouped)
}
