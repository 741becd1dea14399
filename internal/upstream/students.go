package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/maxuni/miniapp-backend/internal/model"
)

// Universities lists the universities a student can pick at login.
// Entries without a numeric id or a name are dropped.
func (c *Client) Universities(ctx context.Context) ([]model.University, error) {
	var raw []json.RawMessage
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/universities",
		query:  url.Values{"limit": {"200"}},
	}, &raw)
	if err != nil {
		return nil, err
	}

	universities := make([]model.University, 0, len(raw))
	for _, item := range raw {
		var u struct {
			ID   *int64  `json:"id"`
			Name *string `json:"name"`
		}
		if json.Unmarshal(item, &u) != nil || u.ID == nil || u.Name == nil {
			continue
		}
		universities = append(universities, model.University{ID: *u.ID, Name: *u.Name})
	}
	return universities, nil
}

// LoginStudent links the MAX user to the student account.
func (c *Client) LoginStudent(ctx context.Context, req model.StudentLoginRequest) error {
	var resp envelope
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/students/login",
		body: map[string]any{
			"user_id":       req.UserID,
			"university_id": req.UniversityID,
			"student_email": req.StudentEmail,
			"password":      req.Password,
		},
	}, &resp)
	if err != nil {
		return err
	}
	return resp.err()
}

// StudentStatus reports whether the MAX user is still linked.
func (c *Client) StudentStatus(ctx context.Context, userID int64) (*model.StudentStatus, error) {
	var status model.StudentStatus
	if err := c.do(ctx, request{method: http.MethodGet, path: studentPath(userID, "status")}, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// UnlinkStudent removes the link between the MAX user and the student account.
func (c *Client) UnlinkStudent(ctx context.Context, userID int64) error {
	return c.do(ctx, request{method: http.MethodDelete, path: studentPath(userID, "unlink")}, nil)
}

func (c *Client) PersonalData(ctx context.Context, userID int64) (model.PersonalData, error) {
	var resp struct {
		envelope
		Data model.PersonalData `json:"data"`
	}
	if err := c.getStudent(ctx, userID, "personal_data", nil, &resp, &resp.envelope); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = model.PersonalData{}
	}
	return resp.Data, nil
}

func (c *Client) Services(ctx context.Context, userID int64) ([]model.ServiceItem, error) {
	var resp struct {
		envelope
		Services []model.ServiceItem `json:"services"`
	}
	if err := c.getStudent(ctx, userID, "services", nil, &resp, &resp.envelope); err != nil {
		return nil, err
	}
	return orEmpty(resp.Services), nil
}

func (c *Client) Platforms(ctx context.Context, userID int64) ([]model.Platform, error) {
	var resp struct {
		envelope
		Platforms []model.Platform `json:"platforms"`
	}
	if err := c.getStudent(ctx, userID, "platforms", nil, &resp, &resp.envelope); err != nil {
		return nil, err
	}
	return orEmpty(resp.Platforms), nil
}

func (c *Client) Teachers(ctx context.Context, userID int64) ([]model.TeacherListItem, error) {
	var resp struct {
		envelope
		Teachers []model.TeacherListItem `json:"teachers"`
	}
	if err := c.getStudent(ctx, userID, "teachers", nil, &resp, &resp.envelope); err != nil {
		return nil, err
	}
	return orEmpty(resp.Teachers), nil
}

func (c *Client) TeacherInfo(ctx context.Context, userID int64, teacherID string) (*model.TeacherInfo, error) {
	var resp struct {
		envelope
		model.TeacherInfo
	}
	if err := c.getStudent(ctx, userID, "teacher/"+url.PathEscape(teacherID), nil, &resp, &resp.envelope); err != nil {
		return nil, err
	}
	info := resp.TeacherInfo
	info.Departments = orEmpty(info.Departments)
	return &info, nil
}

func (c *Client) Contacts(ctx context.Context, userID int64) (*model.Contacts, error) {
	var resp struct {
		envelope
		model.Contacts
	}
	if err := c.getStudent(ctx, userID, "contacts", nil, &resp, &resp.envelope); err != nil {
		return nil, err
	}
	contacts := resp.Contacts
	contacts.Deans = orEmpty(contacts.Deans)
	contacts.Departments = orEmpty(contacts.Departments)
	return &contacts, nil
}

func (c *Client) Maps(ctx context.Context, userID int64) (*model.Maps, error) {
	var resp struct {
		envelope
		model.Maps
	}
	if err := c.getStudent(ctx, userID, "maps", nil, &resp, &resp.envelope); err != nil {
		return nil, err
	}
	maps := resp.Maps
	maps.Buildings = orEmpty(maps.Buildings)
	return &maps, nil
}

// Schedule returns lessons for a "DD.MM-DD.MM" range.
func (c *Client) Schedule(ctx context.Context, userID int64, dateRange string) ([]model.ScheduleItem, error) {
	var resp struct {
		envelope
		Schedule []model.ScheduleItem `json:"schedule"`
	}
	query := url.Values{"date_range": {dateRange}}
	if err := c.getStudent(ctx, userID, "schedule", query, &resp, &resp.envelope); err != nil {
		return nil, err
	}
	return orEmpty(resp.Schedule), nil
}

func (c *Client) getStudent(ctx context.Context, userID int64, resource string, query url.Values, dst any, env *envelope) error {
	if err := c.do(ctx, request{method: http.MethodGet, path: studentPath(userID, resource), query: query}, dst); err != nil {
		return err
	}
	return env.err()
}

func studentPath(userID int64, resource string) string {
	return "/students/" + strconv.FormatInt(userID, 10) + "/" + resource
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
