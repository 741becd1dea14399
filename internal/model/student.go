package model

import "time"

// StoredSession is the persisted login of a MAX user linked to a university account.
type StoredSession struct {
	UserID         int64     `json:"userId"`
	UniversityID   int64     `json:"universityId"`
	Email          string    `json:"email"`
	UniversityName *string   `json:"universityName,omitempty"`
	TokenID        string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// StudentLoginRequest is the payload for linking a MAX user to a university account.
type StudentLoginRequest struct {
	UserID         int64  `json:"user_id" binding:"required,gt=0"`
	UniversityID   int64  `json:"university_id" binding:"required,gt=0"`
	StudentEmail   string `json:"student_email" binding:"required,email,max=254"`
	Password       string `json:"password" binding:"required,min=1,max=128"`
	UniversityName string `json:"university_name" binding:"omitempty,max=255"`
}

// StudentLoginResponse is returned after a successful login.
type StudentLoginResponse struct {
	Token   string        `json:"token"`
	Session StoredSession `json:"session"`
}

// StudentStatus mirrors the upstream link status of a MAX user.
type StudentStatus struct {
	IsLinked     bool    `json:"is_linked"`
	StudentEmail *string `json:"student_email"`
	LinkedAt     *string `json:"linked_at"`
}
