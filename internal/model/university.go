package model

// University is an entry of the public university picker.
type University struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UniversityConfig is the per-university API wiring edited by administrators.
// A feature is enabled iff its id is a key of Endpoints.
type UniversityConfig struct {
	ID                   int64             `json:"id,omitempty"`
	UniversityID         int64             `json:"university_id"`
	UniversityAPIBaseURL string            `json:"university_api_base_url"`
	Endpoints            map[string]string `json:"endpoints"`
}

// UniversityLoginRequest authenticates a university administrator.
type UniversityLoginRequest struct {
	UniversityID int64  `json:"university_id"`
	Login        string `json:"login"`
	Password     string `json:"password"`
}

// EndpointStatus maps every known feature id to whether it is configured.
type EndpointStatus map[string]bool

// UniversityLoginResponse carries the bearer token for config updates.
type UniversityLoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
