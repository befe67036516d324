package models

import "time"

// ParentInfo identifies the parent a student is linked to. Parents see
// students whose Email matches their account email.
type ParentInfo struct {
	Surname  string `firestore:"surname" json:"surname"`
	LastName string `firestore:"lastName" json:"lastName"`
	Email    string `firestore:"email" json:"email"`
}

// Student represents a student record kept by teachers
type Student struct {
	ID         string     `firestore:"-" json:"id"`
	Surname    string     `firestore:"surname" json:"surname"`
	LastName   string     `firestore:"lastName" json:"lastName"`
	Position   string     `firestore:"position" json:"position"`
	Percentage string     `firestore:"percentage" json:"percentage"`
	ParentInfo ParentInfo `firestore:"parentInfo" json:"parentInfo"`
	ClassID    string     `firestore:"classId" json:"classId"`
	TeacherID  string     `firestore:"teacherId" json:"teacherId"`
	CreatedAt  time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time  `firestore:"updatedAt" json:"updatedAt"`
}

// StudentRequest represents the add/update student request body
type StudentRequest struct {
	Surname    string     `json:"surname"`
	LastName   string     `json:"lastName"`
	Position   string     `json:"position"`
	Percentage string     `json:"percentage"`
	ParentInfo ParentInfo `json:"parentInfo"`
	ClassID    string     `json:"classId"`
}
