package config

// ResourceStruct names every per-user cached resource.
type ResourceStruct struct {
	Profile     string
	Services    string
	Teachers    string
	Contacts    string
	Maps        string
	Schedule    string
	TeacherInfo string
}

var Resource = &ResourceStruct{
	Profile:     "profile",
	Services:    "services",
	Teachers:    "teachers",
	Contacts:    "contacts",
	Maps:        "maps",
	Schedule:    "schedule",
	TeacherInfo: "teacher",
}

// Tracked returns the resources the background preloader keeps warm.
func (r *ResourceStruct) Tracked() []string {
	return []string{r.Profile, r.Services, r.Teachers, r.Contacts, r.Maps, r.Schedule}
}

// All returns every resource, including the on-demand ones.
func (r *ResourceStruct) All() []string {
	return append(r.Tracked(), r.TeacherInfo)
}
