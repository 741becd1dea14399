package model

// ScheduleItem is one lesson as returned by the university API.
type ScheduleItem struct {
	ID             string  `json:"id"`
	Start          string  `json:"start"`
	End            string  `json:"end"`
	Title          string  `json:"title"`
	Type           string  `json:"type"`
	Room           string  `json:"room"`
	Note           string  `json:"note"`
	Audience       string  `json:"audience,omitempty"`
	Date           string  `json:"date,omitempty"`
	Teacher        string  `json:"teacher,omitempty"`
	AdditionalInfo *string `json:"additional_info,omitempty"`
	// Undergruop keeps the upstream spelling of the subgroup field.
	Undergruop string `json:"undergruop,omitempty"`
}

// ScheduleDay groups the lessons of one date, ordered by start time.
type ScheduleDay struct {
	Date    string         `json:"date"`
	Lessons []ScheduleItem `json:"lessons"`
}

type TeacherListItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TeacherInfo is the detail card of a teacher. Photo is a base64 data URI.
type TeacherInfo struct {
	Departments []string `json:"departments"`
	Photo       *string  `json:"photo"`
}

type DeanContact struct {
	Faculty string  `json:"faculty"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
}

type DepartmentContact struct {
	Faculty    string  `json:"faculty"`
	Department string  `json:"department"`
	Email      *string `json:"email"`
	Phones     *string `json:"phones"`
}

type Contacts struct {
	Deans       []DeanContact       `json:"deans"`
	Departments []DepartmentContact `json:"departments"`
}

type BuildingMap struct {
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	YandexMapURL *string `json:"yandex_map_url"`
	Gis2MapURL   *string `json:"gis2_map_url"`
	GoogleMapURL *string `json:"google_map_url"`
}

type Maps struct {
	Buildings []BuildingMap `json:"buildings"`
}

type ServiceItem struct {
	Emoji string `json:"emoji"`
	Key   string `json:"key"`
	Name  string `json:"name"`
}

type Platform struct {
	Emoji string `json:"emoji"`
	Key   string `json:"key"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

// ServicesBundle is cached as one resource although it is fetched with two calls.
type ServicesBundle struct {
	Services  []ServiceItem `json:"services"`
	Platforms []Platform    `json:"platforms"`
}

// PersonalData is the flat profile map; every value may be null upstream.
type PersonalData map[string]*string

// PageData wraps a page payload with its freshness.
type PageData struct {
	Data any `json:"data"`
	// CachedAt is epoch millis of the cache write, zero when served live.
	CachedAt int64 `json:"cached_at,omitempty"`
	Stale    bool  `json:"stale"`
	// Error carries the upstream message when the page fell back to empty data.
	Error string `json:"error,omitempty"`
}

// NewsItem is an entry of the home page news feed.
type NewsItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Date        string `json:"date"`
}

type ExamGrade struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	// Grade is zero until the exam is taken.
	Grade int `json:"grade"`
}

type CreditResult struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	Passed  bool   `json:"passed"`
}

type Semester struct {
	Semester int            `json:"semester"`
	Exams    []ExamGrade    `json:"exams"`
	Credits  []CreditResult `json:"credits"`
}
