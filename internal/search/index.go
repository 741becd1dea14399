package search

// sections is the searchable index of app pages and profile fields.
var sections = []Item{
	{
		ID:       "home",
		Title:    "Главная",
		Keywords: []string{
			"главная", "home", "главная страница", "начало", "старт", "main",
		},
	},
	{
		ID:       "news",
		Title:    "Новости",
		Keywords: []string{
			"новости", "news", "объявления", "события", "анонсы", "обновления", "новое", "latest",
		},
	},
	{
		ID:       "schedule",
		Title:    "Расписание",
		Keywords: []string{
			"расписание", "schedule", "пары", "занятия", "уроки", "лекции", "практики", "лабораторные",
			"таймтейбл", "timetable", "пара", "занятие", "урок", "лекция", "практика", "лабораторная",
		},
	},
	{
		ID:       "services",
		Title:    "Сервисы",
		Keywords: []string{
			"сервисы", "services", "услуги", "сервис", "service", "инструменты", "tools", "функции",
			"features", "возможности",
		},
	},
	{
		ID:       "profile",
		Title:    "Профиль",
		Keywords: []string{
			"профиль", "profile", "личный кабинет", "аккаунт", "account", "пользователь", "user",
			"мой профиль", "настройки профиля", "личные данные", "данные", "информация о себе", "id",
			"макс id",
		},
	},
	{
		ID:       "primaryServices",
		Title:    "Основные сервисы",
		Category: "Сервисы",
		Keywords: []string{
			"основные", "сервисы", "primary", "главные сервисы", "основные услуги", "primary services",
			"main services", "базовые сервисы",
		},
	},
	{
		ID:       "platforms",
		Title:    "Веб-платформы",
		Category: "Сервисы",
		Keywords: []string{
			"платформы", "веб", "platforms", "ссылки", "веб-платформы", "web platforms",
			"ссылки на платформы", "онлайн платформы", "образовательные платформы", "ресурсы",
			"веб ресурсы",
		},
	},
	{
		ID:       "teachers",
		Title:    "Преподаватели",
		Category: "Сервисы",
		Keywords: []string{
			"преподаватели", "учителя", "teachers", "преподы", "преподаватель", "учитель", "teacher",
			"педагоги", "преподавательский состав", "препод", "преподавательский", "faculty", "staff",
		},
	},
	{
		ID:       "maps",
		Title:    "Карты",
		Category: "Сервисы",
		Keywords: []string{
			"карты", "maps", "корпуса", "адреса", "карта", "map", "геолокация", "location", "где находится",
			"адрес", "корпус", "здание", "building", "yandex карты", "google карты", "2gis", "яндекс карты",
		},
	},
	{
		ID:       "contacts",
		Title:    "Контакты",
		Category: "Сервисы",
		Keywords: []string{
			"контакты", "contacts", "телефоны", "адреса", "контакт", "contact", "телефон", "phone", "email",
			"почта", "связаться", "связь", "деканаты", "кафедры", "отделы", "контактная информация",
		},
	},
	{
		ID:       "chats",
		Title:    "Чаты",
		Category: "Сервисы",
		Keywords: []string{
			"чаты", "chats", "беседы", "группы", "чат", "chat", "беседа", "группа", "group", "общение",
			"сообщения", "переписка", "университет чат", "факультет чат", "курс чат", "куратор",
		},
	},
	{
		ID:       "requests",
		Title:    "Запросы и справки",
		Category: "Сервисы",
		Keywords: []string{
			"запросы", "справки", "requests", "документы", "запрос", "request", "справка", "document",
			"документ", "получить справку", "оформить", "заказать справку", "выписка",
			"справка об обучении",
		},
	},
	{
		ID:       "practice",
		Title:    "Практика",
		Category: "Сервисы",
		Keywords: []string{
			"практика", "practice", "стажировка", "internship", "практические занятия",
			"производственная практика", "учебная практика", "практикант",
		},
	},
	{
		ID:       "profile-faculty",
		Title:    "Факультет",
		Category: "Профиль",
		Keywords: []string{
			"факультет", "faculty", "деканат", "dean", "институт", "institute",
		},
	},
	{
		ID:       "profile-speciality",
		Title:    "Специальность",
		Category: "Профиль",
		Keywords: []string{
			"специальность", "speciality", "специализация", "specialization", "направление", "direction",
		},
	},
	{
		ID:       "profile-major",
		Title:    "Профиль обучения",
		Category: "Профиль",
		Keywords: []string{
			"профиль", "major", "профиль обучения", "образовательный профиль", "education profile",
		},
	},
	{
		ID:       "profile-group",
		Title:    "Группа",
		Category: "Профиль",
		Keywords: []string{
			"группа", "group", "учебная группа", "study group", "academic group",
		},
	},
	{
		ID:       "profile-gradebook-number",
		Title:    "Номер зачётки",
		Category: "Профиль",
		Keywords: []string{
			"номер зачётки", "зачётка номер", "зачётная книжка номер", "gradebook number",
			"номер зачётной книжки", "зачётки", "zachetka", "gradebook",
		},
	},
	{
		ID:       "profile-max-id",
		Title:    "MAX ID",
		Category: "Профиль",
		Keywords: []string{
			"max id", "макс id", "id", "identifier", "user id", "userid", "user_id", "мой id", "мой max id",
			"мой макс id", "идентификатор",
		},
	},
	{
		ID:       "profile-max-username",
		Title:    "MAX username",
		Category: "Профиль",
		Keywords: []string{
			"max username", "макс username", "username", "юзернейм", "ник", "nickname", "мой username",
			"мой ник", "max ник",
		},
	},
	{
		ID:       "profile-phone",
		Title:    "Телефон",
		Category: "Профиль",
		Keywords: []string{
			"телефон", "phone", "телефонный номер", "phone number", "номер телефона", "мобильный", "mobile",
			"сотовый", "cell phone",
		},
	},
	{
		ID:       "profile-birthday",
		Title:    "Дата рождения",
		Category: "Профиль",
		Keywords: []string{
			"дата рождения", "birthday", "день рождения", "дата", "birth date", "др", "год рождения",
			"birth year", "возраст", "age",
		},
	},
	{
		ID:       "profile-subgroup",
		Title:    "Подгруппа",
		Category: "Профиль",
		Keywords: []string{
			"подгруппа", "subgroup", "подгруппа 1", "подгруппа 2", "subgroup 1", "subgroup 2",
			"группа подгруппа", "учебная подгруппа",
		},
	},
	{
		ID:       "gradebook",
		Title:    "Зачётная книжка",
		Category: "Профиль",
		Keywords: []string{
			"зачётка", "зачётная", "gradebook", "оценки", "зачёты", "зачётная книжка", "экзамены", "exams",
			"оценка", "grade", "баллы", "points", "успеваемость", "academic performance", "табель",
			"ведомость",
		},
	},
	{
		ID:       "debts",
		Title:    "Долги",
		Category: "Профиль",
		Keywords: []string{
			"долги", "debts", "задолженности", "долг", "debt", "задолженность", "незакрытые", "не сданные",
			"просроченные", "незачёты", "пересдачи", "долги по учёбе", "академическая задолженность",
		},
	},
	{
		ID:       "theme",
		Title:    "Внешний вид",
		Category: "Профиль",
		Keywords: []string{
			"внешний вид", "тема", "theme", "оформление", "тёмная", "светлая", "appearance", "dark",
			"light", "автоматическая", "automatic", "auto", "тёмная тема", "светлая тема", "dark theme",
			"light theme", "night mode", "дневной режим", "цветовая схема", "дизайн", "design",
		},
	},
	{
		ID:       "notifications",
		Title:    "Уведомления и звуки",
		Category: "Профиль",
		Keywords: []string{
			"уведомления", "notifications", "звуки", "алерты", "уведомление", "notification", "alert",
			"push", "push-уведомления", "звук", "sound", "настройки уведомлений", "notification settings",
			"колокольчик", "bell", "скоро пара", "изменение расписания", "оценка в зачётку",
		},
	},
	{
		ID:       "about",
		Title:    "О приложении",
		Category: "Профиль",
		Keywords: []string{
			"о приложении", "about", "информация", "разработчики", "about app", "версия", "version",
			"версия приложения", "разработка", "development", "developers", "команда", "team", "создатели",
			"creators", "goliluha", "krojiak", "информация о приложении",
		},
	},
	{
		ID:       "support",
		Title:    "Служба поддержки",
		Category: "Профиль",
		Keywords: []string{
			"поддержка", "support", "помощь", "техподдержка", "help", "помочь", "проблема", "problem",
			"вопрос", "question", "обратиться", "contact", "техническая поддержка", "служба поддержки",
			"help desk", "связаться с поддержкой", "помощь и поддержка",
		},
	},
	{
		ID:       "improvements",
		Title:    "Предложить улучшение",
		Category: "Профиль",
		Keywords: []string{
			"предложить", "улучшение", "improvements", "обратная связь", "feedback", "предложение",
			"suggestion", "идея", "idea", "улучшить", "improve", "отзыв", "review", "комментарий",
			"comment", "сообщить об ошибке", "report bug", "feature request", "запрос функции", "forms",
			"форма",
		},
	},
	{
		ID:       "usefulLinks",
		Title:    "Полезные ссылки",
		Keywords: []string{
			"полезные", "ссылки", "links", "ресурсы", "useful links", "полезные ресурсы", "полезные ссылки",
			"дополнительные ресурсы", "внешние ссылки", "external links", "рекомендуемые ссылки",
		},
	},
}
