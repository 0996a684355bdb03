package formatting

// pluralize выбирает форму слова для числа: одна, две-четыре, пять и больше
func pluralize(count int, one, few, many string) string {
	if count < 0 {
		count = -count
	}
	if count%10 == 1 && count%100 != 11 {
		return one
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return few
	}
	return many
}

// PluralizeServices возвращает правильное склонение слова "услуга"
func PluralizeServices(count int) string {
	return pluralize(count, "услуга", "услуги", "услуг")
}

// PluralizeOrders возвращает правильное склонение слова "заказ"
func PluralizeOrders(count int) string {
	return pluralize(count, "заказ", "заказа", "заказов")
}

// PluralizeYears возвращает правильное склонение слова "год"
func PluralizeYears(count int) string {
	return pluralize(count, "год", "года", "лет")
}
