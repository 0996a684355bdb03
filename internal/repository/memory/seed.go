package memory

import "github.com/Freeeeeet/repair_bot/internal/model"

// DefaultServices тот же каталог, что и в миграции 00002_seed_catalog.sql
func DefaultServices() []model.Service {
	return []model.Service{
		{ID: 1, Name: "Диагностика компьютера", Price: 500, Duration: 30, Description: "Полная проверка железа и системы, поиск причины неисправности", IsActive: true},
		{ID: 2, Name: "Чистка от пыли", Price: 800, Duration: 45, Description: "Чистка корпуса, радиаторов и вентиляторов", IsActive: true},
		{ID: 3, Name: "Замена термопасты", Price: 1200, Duration: 60, Description: "Замена термоинтерфейса процессора и видеокарты", IsActive: true},
		{ID: 4, Name: "Установка Windows", Price: 1500, Duration: 90, Description: "Чистая установка Windows с драйверами", IsActive: true},
		{ID: 5, Name: "Восстановление данных", Price: 3000, Duration: 120, Description: "Восстановление удалённых файлов и данных с повреждённых дисков", IsActive: true},
		{ID: 6, Name: "Ремонт блока питания", Price: 2500, Duration: 180, Description: "Диагностика и ремонт блока питания", IsActive: true},
		{ID: 7, Name: "Замена жёсткого диска", Price: 2000, Duration: 75, Description: "Замена HDD или SSD с переносом данных", IsActive: true},
		{ID: 8, Name: "Настройка сети", Price: 1800, Duration: 60, Description: "Настройка роутера, Wi-Fi и локальной сети", IsActive: true},
		{ID: 9, Name: "Удаление вирусов", Price: 1000, Duration: 45, Description: "Проверка системы и удаление вредоносных программ", IsActive: true},
		{ID: 10, Name: "Ремонт материнской платы", Price: 4000, Duration: 240, Description: "Диагностика и ремонт материнской платы", IsActive: true},
		{ID: 11, Name: "Установка программ", Price: 800, Duration: 30, Description: "Установка и настройка прикладного ПО", IsActive: true},
		{ID: 12, Name: "Настройка BIOS", Price: 1200, Duration: 45, Description: "Обновление и настройка BIOS/UEFI", IsActive: true},
		{ID: 13, Name: "Ремонт видеокарты", Price: 3500, Duration: 180, Description: "Диагностика и ремонт видеокарты", IsActive: true},
		{ID: 14, Name: "Замена оперативной памяти", Price: 1500, Duration: 30, Description: "Подбор и установка модулей ОЗУ", IsActive: true},
		{ID: 15, Name: "Настройка для игр", Price: 1000, Duration: 60, Description: "Оптимизация системы и драйверов под игры", IsActive: true},
	}
}

func DefaultProviders() []model.Provider {
	return []model.Provider{
		{ID: 1, Name: "Алексей Петров", ExperienceYears: 5, Rating: 4.8, IsActive: true},
		{ID: 2, Name: "Мария Сидорова", ExperienceYears: 3, Rating: 4.9, IsActive: true},
		{ID: 3, Name: "Дмитрий Иванов", ExperienceYears: 7, Rating: 4.7, IsActive: true},
		{ID: 4, Name: "Елена Козлова", ExperienceYears: 4, Rating: 4.6, IsActive: true},
		{ID: 5, Name: "Сергей Смирнов", ExperienceYears: 6, Rating: 4.9, IsActive: true},
	}
}
