package models

import "time"

// Class is a school class shared by one or more teachers
type Class struct {
	ID         string    `firestore:"-" json:"id"`
	Name       string    `firestore:"name" json:"name"`
	TeacherIDs []string  `firestore:"teacherIds" json:"teacherIds"`
	CreatedBy  string    `firestore:"createdBy" json:"createdBy"`
	CreatedAt  time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

// HasTeacher reports whether userID teaches the class
func (c *Class) HasTeacher(userID string) bool {
	for _, id := range c.TeacherIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Subject is a subject a teacher teaches in a class
type Subject struct {
	ID        string    `firestore:"-" json:"id"`
	Name      string    `firestore:"name" json:"name"`
	ClassID   string    `firestore:"classId" json:"classId"`
	TeacherID string    `firestore:"teacherId" json:"teacherId"`
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

// CreateClassRequest represents the create class request body
type CreateClassRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateSubjectRequest represents the create subject request body
type CreateSubjectRequest struct {
	Name string `json:"name" binding:"required"`
}
