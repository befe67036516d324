package models

import "time"

// Announcement is a notice published to one or more classes
type Announcement struct {
	ID          string    `firestore:"-" json:"id"`
	Title       string    `firestore:"title" json:"title"`
	Text        string    `firestore:"text" json:"text"`
	StartDate   string    `firestore:"startDate" json:"startDate"` // YYYY-MM-DD
	ClassIDs    []string  `firestore:"classIds" json:"classIds"`
	ImageURL    string    `firestore:"imageUrl" json:"imageUrl"`
	CreatedBy   string    `firestore:"createdBy" json:"createdBy"`
	TeacherName string    `firestore:"teacherName" json:"teacherName"`
	CreatedAt   time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

// AnnouncementRequest holds the form fields of a new announcement
type AnnouncementRequest struct {
	Title     string   `form:"title"`
	Text      string   `form:"text"`
	StartDate string   `form:"startDate"`
	ClassIDs  []string `form:"classIds"`
}
