package recommendation

import (
	"strings"

	"golang.org/x/text/cases"
)

// Category правило подбора услуг по ключевым словам
type Category struct {
	Name       string
	Keywords   []string
	ServiceIDs []int64
	Rationale  string
}

// Порядок важен: при равном счёте выигрывает категория выше
var categories = []Category{
	{
		Name:       "overheating",
		Keywords:   []string{"греется", "перегрев", "горяч", "шумит", "шум", "вентилятор", "гудит", "температур"},
		ServiceIDs: []int64{1, 2, 3},
		Rationale:  "Похоже на перегрев: пыль в системе охлаждения или высохшая термопаста. Рекомендуем диагностику, чистку от пыли и замену термопасты.",
	},
	{
		Name:       "slow",
		Keywords:   []string{"тормозит", "медленно", "виснет", "зависает", "лагает", "долго"},
		ServiceIDs: []int64{1, 9, 7},
		Rationale:  "Медленная работа обычно связана с вирусами, переполненным или изношенным диском. Рекомендуем диагностику, проверку на вирусы и, при необходимости, замену диска.",
	},
	{
		Name:       "virus",
		Keywords:   []string{"вирус", "реклама", "баннер", "троян", "антивирус"},
		ServiceIDs: []int64{9, 1},
		Rationale:  "Есть признаки заражения. Рекомендуем удаление вирусов и диагностику системы.",
	},
	{
		Name:       "os",
		Keywords:   []string{"windows", "синий экран", "не загружается", "переустанов", "система"},
		ServiceIDs: []int64{4, 1},
		Rationale:  "Проблема с операционной системой. Рекомендуем диагностику и установку Windows.",
	},
	{
		Name:       "data",
		Keywords:   []string{"удалил", "потерял", "восстанов", "файлы", "данные", "фото"},
		ServiceIDs: []int64{5, 1},
		Rationale:  "Нужно вернуть данные. Рекомендуем восстановление данных; не записывайте ничего на диск до визита мастера.",
	},
	{
		Name:       "power",
		Keywords:   []string{"не включается", "выключается", "блок питания", "питани", "не запускается"},
		ServiceIDs: []int64{1, 6, 10},
		Rationale:  "Проблема с питанием: чаще всего виноват блок питания, реже материнская плата. Рекомендуем диагностику и ремонт.",
	},
	{
		Name:       "network",
		Keywords:   []string{"интернет", "wi-fi", "wifi", "сеть", "роутер"},
		ServiceIDs: []int64{8},
		Rationale:  "Проблема с подключением. Рекомендуем настройку сети.",
	},
	{
		Name:       "graphics",
		Keywords:   []string{"видеокарт", "артефакт", "полосы", "монитор", "изображени"},
		ServiceIDs: []int64{13, 1},
		Rationale:  "Похоже на неисправность видеокарты. Рекомендуем диагностику и ремонт видеокарты.",
	},
	{
		Name:       "games",
		Keywords:   []string{"игр", "fps", "фпс"},
		ServiceIDs: []int64{15, 14},
		Rationale:  "Для игр поможет оптимизация системы и, возможно, увеличение оперативной памяти.",
	},
	{
		Name:       "hardware",
		Keywords:   []string{"памят", "диск", "ssd", "hdd", "озу"},
		ServiceIDs: []int64{7, 14},
		Rationale:  "Похоже на проблему с накопителем или памятью. Рекомендуем замену диска или модулей ОЗУ.",
	},
}

var generalCategory = Category{
	Name:       "general",
	ServiceIDs: []int64{1, 2, 9},
	Rationale:  "Рекомендуется базовая диагностика системы.",
}

func init() {
	fold := cases.Fold()
	for i := range categories {
		for j, kw := range categories[i].Keywords {
			categories[i].Keywords[j] = fold.String(kw)
		}
	}
}

// MatchCategory выбирает категорию с наибольшим числом совпавших ключевых слов, повтор слова не учитывается.
// Без совпадений возвращается общая диагностика
func MatchCategory(problem string) Category {
	text := cases.Fold().String(problem)

	best := generalCategory
	bestScore := 0
	for _, c := range categories {
		score := 0
		for _, kw := range c.Keywords {
			if strings.Contains(text, kw) {
				score++
			}
		}
		if score > bestScore {
			best = c
			bestScore = score
		}
	}

	return best
}

// GeneralCategory категория по умолчанию
func GeneralCategory() Category {
	return generalCategory
}
