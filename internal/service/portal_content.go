package service

import "github.com/maxuni/miniapp-backend/internal/model"

// demoSemesters backs the gradebook page until the university API exposes grades.
var demoSemesters = []model.Semester{
	{
		Semester: 1,
		Exams: []model.ExamGrade{
			{ID: "1", Subject: "Философия", Grade: 5},
			{ID: "2", Subject: "Алгебра и геометрия", Grade: 3},
			{ID: "3", Subject: "Информатика", Grade: 3},
			{ID: "4", Subject: "Программирование", Grade: 3},
		},
		Credits: []model.CreditResult{
			{ID: "1", Subject: "История России", Passed: true},
			{ID: "2", Subject: "Иностранный язык", Passed: true},
			{ID: "3", Subject: "Физическая культура и спорт", Passed: true},
			{ID: "4", Subject: "Основы российской государственности", Passed: true},
		},
	},
	{
		Semester: 2,
		Exams: []model.ExamGrade{
			{ID: "1", Subject: "История России", Grade: 3},
			{ID: "2", Subject: "Математический анализ", Grade: 5},
			{ID: "3", Subject: "Физика", Grade: 4},
			{ID: "4", Subject: "Дискретная математика", Grade: 5},
			{ID: "5", Subject: "Программирование", Grade: 4},
		},
		Credits: []model.CreditResult{
			{ID: "1", Subject: "Иностранный язык", Passed: true},
			{ID: "2", Subject: "Элективные дисциплины (модули) по физической культуре", Passed: true},
			{ID: "3", Subject: "Экономика", Passed: true},
		},
	},
	{
		Semester: 3,
		Exams: []model.ExamGrade{
			{ID: "1", Subject: "Математический анализ", Grade: 0},
			{ID: "2", Subject: "Физика", Grade: 0},
			{ID: "3", Subject: "Математическая логика и теория алгоритмов", Grade: 0},
			{ID: "4", Subject: "Электротехника и электроника", Grade: 0},
		},
		Credits: []model.CreditResult{
			{ID: "1", Subject: "Иностранный язык", Passed: false},
			{ID: "2", Subject: "Правоведение", Passed: false},
			{ID: "3", Subject: "Основы военной подготовки", Passed: false},
			{ID: "4", Subject: "Вычислительная математика", Passed: false},
		},
	},
	{
		Semester: 4,
		Exams: []model.ExamGrade{
			{ID: "1", Subject: "Иностранный язык", Grade: 0},
			{ID: "2", Subject: "Теория вероятностей, математическая статистика и случайные процессы", Grade: 0},
			{ID: "3", Subject: "Цифровая схемотехника", Grade: 0},
			{ID: "4", Subject: "Структуры и алгоритмы обработки данных", Grade: 0},
			{ID: "5", Subject: "Объектно-ориентированное программирование", Grade: 0},
		},
		Credits: []model.CreditResult{
			{ID: "1", Subject: "Элективные дисциплины (модули) по физической культуре", Passed: false},
			{ID: "2", Subject: "Гибкие навыки развития карьеры", Passed: false},
			{ID: "3", Subject: "ЭВМ и периферийные устройства", Passed: false},
		},
	},
	{
		Semester: 5,
		Exams: []model.ExamGrade{
			{ID: "1", Subject: "Базы данных", Grade: 0},
			{ID: "2", Subject: "Компьютерные сети", Grade: 0},
			{ID: "3", Subject: "Операционные системы", Grade: 0},
			{ID: "4", Subject: "Технологии разработки программного обеспечения", Grade: 0},
		},
		Credits: []model.CreditResult{
			{ID: "1", Subject: "Иностранный язык", Passed: false},
			{ID: "2", Subject: "Элективные дисциплины (модули) по физической культуре", Passed: false},
			{ID: "3", Subject: "Этика делового общения", Passed: false},
		},
	},
	{
		Semester: 6,
		Exams: []model.ExamGrade{
			{ID: "1", Subject: "Системы искусственного интеллекта", Grade: 0},
			{ID: "2", Subject: "Кибербезопасность", Grade: 0},
			{ID: "3", Subject: "Веб-технологии", Grade: 0},
			{ID: "4", Subject: "Мобильная разработка", Grade: 0},
		},
		Credits: []model.CreditResult{
			{ID: "1", Subject: "Иностранный язык", Passed: false},
			{ID: "2", Subject: "Элективные дисциплины (модули) по физической культуре", Passed: false},
			{ID: "3", Subject: "Проектный менеджмент", Passed: false},
		},
	},
	{
		Semester: 7,
		Exams: []model.ExamGrade{
			{ID: "1", Subject: "Машинное обучение", Grade: 0},
			{ID: "2", Subject: "Распределённые системы", Grade: 0},
			{ID: "3", Subject: "Архитектура программного обеспечения", Grade: 0},
			{ID: "4", Subject: "Тестирование программного обеспечения", Grade: 0},
		},
		Credits: []model.CreditResult{
			{ID: "1", Subject: "Иностранный язык", Passed: false},
			{ID: "2", Subject: "Элективные дисциплины (модули) по физической культуре", Passed: false},
			{ID: "3", Subject: "Преддипломная практика", Passed: false},
		},
	},
	{
		Semester: 8,
		Exams: []model.ExamGrade{
			{ID: "1", Subject: "Дипломная работа", Grade: 0},
		},
		Credits: []model.CreditResult{
			{ID: "1", Subject: "Предзащита дипломной работы", Passed: false},
		},
	},
}

// newsFeed is the home page news list, newest first.
var newsFeed = []model.NewsItem{
	{
		ID:          "news-001",
		Title:       "Стартует зимний интенсив по Python",
		Description: "Институт цифровых технологий · 2 дек.",
		Image:       "https://images.unsplash.com/photo-1518770660439-4636190af475?auto=format&fit=crop&w=400&q=80",
		Date:        "2025-12-02",
	},
	{
		ID:          "news-002",
		Title:       "Команда ЧГУ победила в хакатоне «Витязь»",
		Description: "Пресс-служба ЧГУ · 30 нояб.",
		Image:       "https://images.unsplash.com/photo-1531297484001-80022131f5a1?auto=format&fit=crop&w=400&q=80",
		Date:        "2025-11-30",
	},
	{
		ID:          "news-003",
		Title:       "Запущена запись на весенний отбор в акселератор",
		Description: "Центр предпринимательства · 28 нояб.",
		Image:       "https://images.unsplash.com/photo-1521737604893-d14cc237f11d?auto=format&fit=crop&w=400&q=80",
		Date:        "2025-11-28",
	},
	{
		ID:          "news-004",
		Title:       "Форум молодых исследователей собрал 600 участников",
		Description: "Управление науки · 27 нояб.",
		Image:       "https://images.unsplash.com/photo-1489515217757-5fd1be406fef?auto=format&fit=crop&w=400&q=80",
		Date:        "2025-11-27",
	},
	{
		ID:          "news-005",
		Title:       "Открывается студенческая медиатека в корпусе Г",
		Description: "Библиотека ЧГУ · 26 нояб.",
		Image:       "https://images.unsplash.com/photo-1516979187457-637abb4f9353?auto=format&fit=crop&w=400&q=80",
		Date:        "2025-11-26",
	},
	{
		ID:          "news-006",
		Title:       "Студенты-добровольцы провели экологический субботник",
		Description: "Добровольческий центр · 25 нояб.",
		Image:       "https://images.unsplash.com/photo-1522098543979-ffc7f79d5aff?auto=format&fit=crop&w=400&q=80",
		Date:        "2025-11-25",
	},
	{
		ID:          "news-007",
		Title:       "Стартует олимпиада «Профессионалы будущего»",
		Description: "Учебный отдел · 24 нояб.",
		Image:       "https://images.unsplash.com/photo-1509062522246-3755977927d7?auto=format&fit=crop&w=400&q=80",
		Date:        "2025-11-24",
	},
	{
		ID:          "news-008",
		Title:       "Команда VR-лаборатории представила новый симулятор",
		Description: "VR-лаборатория · 23 нояб.",
		Image:       "https://images.unsplash.com/photo-1580894897634-16e7ddab3c94?auto=format&fit=crop&w=400&q=80",
		Date:        "2025-11-23",
	},
	{
		ID:          "news-009",
		Title:       "Факультет туризма организует стажировку в Приэльбрусье",
		Description: "Факультет туризма · 22 нояб.",
		Image:       "https://images.unsplash.com/photo-1500530855697-b586d89ba3ee?auto=format&fit=crop&w=400&q=80",
		Date:        "2025-11-22",
	},
	{
		ID:          "news-010",
		Title:       "Мастер-класс по дизайну интерфейсов прошёл в корпусе Б",
		Description: "Школа дизайна · 21 нояб.",
		Image:       "https://images.unsplash.com/photo-1545239351-1141bd82e8a6?auto=format&fit=crop&w=400&q=80",
		Date:        "2025-11-21",
	},
	{
		ID:          "news-011",
		Title:       "Объявлены результаты грантовой программы ЧГУ",
		Description: "Фонд поддержки проектов · 20 нояб.",
		Image:       "https://images.unsplash.com/photo-1521737604893-d14cc237f11d?auto=format&fit=crop&w=400&q=80",
		Date:        "2025-11-20",
	},
	{
		ID:          "news-012",
		Title:       "В общежитиях стартует программа «Чистая среда»",
		Description: "Управление кампуса · 19 нояб.",
		Image:       "https://images.unsplash.com/photo-1488521787991-ed7bbaae773c?auto=format&fit=crop&w=400&q=80",
		Date:        "2025-11-19",
	},
	{
		ID:          "news-013",
		Title:       "Наставники ЧГУ прошли обучение в Казани",
		Description: "Медицинский факультет · 18 нояб.",
		Image:       "https://images.unsplash.com/photo-1523050854058-8df90110c9f1?auto=format&fit=crop&w=400&q=80",
		Date:        "2025-11-18",
	},
	{
		ID:          "news-014",
		Title:       "Студенты ЭК-04-22 посетили «Кейсистемс»",
		Description: "Экономический факультет · 17 нояб.",
		Image:       "https://images.unsplash.com/photo-1500530855697-b586d89ba3ee?auto=format&fit=crop&w=400&q=80",
		Date:        "2025-11-17",
	},
	{
		ID:          "news-015",
		Title:       "Презентация новых сервисов MAX прошла в ЧГУ",
		Description: "MAX · 16 нояб.",
		Image:       "https://images.unsplash.com/photo-1525182008055-f88b95ff7980?auto=format&fit=crop&w=400&q=80",
		Date:        "2025-11-16",
	},
	{
		ID:          "news-016",
		Title:       "Обновилось меню столовой в корпусе А",
		Description: "Столовая ЧГУ · 15 нояб.",
		Image:       "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?auto=format&fit=crop&w=400&q=80",
		Date:        "2025-11-15",
	},
}
