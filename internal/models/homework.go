package models

import "time"

// Homework is an assignment published to one or more classes
type Homework struct {
	ID          string    `firestore:"-" json:"id"`
	Title       string    `firestore:"title" json:"title"`
	Text        string    `firestore:"text" json:"text"`
	DueDate     string    `firestore:"DueDate" json:"DueDate"` // YYYY-MM-DD
	ClassIDs    []string  `firestore:"classIds" json:"classIds"`
	SubjectIDs  []string  `firestore:"subjectIds" json:"subjectIds"`
	ImageURL    string    `firestore:"imageUrl" json:"imageUrl"`
	CreatedBy   string    `firestore:"createdBy" json:"createdBy"`
	TeacherName string    `firestore:"teacherName" json:"teacherName"`
	Completed   bool      `firestore:"completed" json:"completed"`
	CreatedAt   time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

// HomeworkRequest holds the form fields of a new homework
type HomeworkRequest struct {
	Title      string   `form:"title"`
	Text       string   `form:"text"`
	DueDate    string   `form:"dueDate"`
	ClassIDs   []string `form:"classIds"`
	SubjectIDs []string `form:"subjectIds"`
}

// Recommendation is the answer of the recommendation service
type Recommendation struct {
	ResourceURL     string  `json:"resource_url"`
	Subject         string  `json:"subject"`
	GradeLevel      string  `json:"grade_level"`
	SimilarityScore float64 `json:"similarity_score"`
}

// RecommendationRequest is sent to the recommendation service
type RecommendationRequest struct {
	Description string `json:"description"`
	GradeLevel  string `json:"grade_level,omitempty"`
}
