package models

import "time"

// Role is the kind of account a user holds
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleParent  Role = "parent"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RoleTeacher || r == RoleParent
}

// User represents a user profile stored next to the Firebase Auth account
type User struct {
	UserID    string    `firestore:"userId" json:"userId"`
	Username  string    `firestore:"username" json:"username"`
	Email     string    `firestore:"email" json:"email"`
	Role      Role      `firestore:"role" json:"role"`
	PhotoURL  string    `firestore:"photoURL,omitempty" json:"photoURL,omitempty"`
	FCMToken  string    `firestore:"fcmToken,omitempty" json:"-"`
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

// DisplayName returns the name shown to other users
func (u *User) DisplayName() string {
	if u == nil || u.Username == "" {
		return "User"
	}
	return u.Username
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Username string `json:"username" binding:"required,min=3,max=32"`
	Role     Role   `json:"role" binding:"required,oneof=teacher parent"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	UserID       string `json:"userId"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	IDToken      string `json:"idToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int    `json:"expiresIn,omitempty"` // seconds
}

// UpdateFCMTokenRequest represents the FCM token update request
type UpdateFCMTokenRequest struct {
	FCMToken string `json:"fcmToken" binding:"required"`
}

// ChatUser is a user that can be picked as a chat partner
type ChatUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL,omitempty"`
	Role        Role   `json:"role"`
}
