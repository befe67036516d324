package services

import (
	"context"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/ZigaLarissa/EduAssist/internal/models"
	"github.com/ZigaLarissa/EduAssist/internal/repository"
	"github.com/ZigaLarissa/EduAssist/pkg/utils"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// AccountManager is the subset of the Firebase Auth admin client the service uses
type AccountManager interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
	RevokeRefreshTokens(ctx context.Context, uid string) error
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*auth.Token, error)
}

type AuthService struct {
	accounts AccountManager
	signer   PasswordSigner
	users    repository.UserStore
	classes  repository.ClassStore
	students repository.StudentStore
	notifier *NotificationService
	tokens   *TokenCache
	log      *logrus.Logger
	now      func() time.Time
}

func NewAuthService(
	accounts AccountManager,
	signer PasswordSigner,
	users repository.UserStore,
	classes repository.ClassStore,
	students repository.StudentStore,
	notifier *NotificationService,
	tokens *TokenCache,
	log *logrus.Logger,
) *AuthService {
	return &AuthService{
		accounts: accounts,
		signer:   signer,
		users:    users,
		classes:  classes,
		students: students,
		notifier: notifier,
		tokens:   tokens,
		log:      log,
		now:      time.Now,
	}
}

// Register creates a Firebase account and its profile, then signs the user in
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	if err := utils.ValidateEmail(req.Email); err != nil {
		return nil, invalid(err.Error())
	}
	if err := utils.ValidateUsername(req.Username); err != nil {
		return nil, invalid(err.Error())
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, invalid(err.Error())
	}
	if !req.Role.Valid() {
		return nil, invalid("role must be teacher or parent")
	}

	params := (&auth.UserToCreate{}).
		Email(req.Email).
		Password(req.Password).
		DisplayName(req.Username)
	record, err := s.accounts.CreateUser(ctx, params)
	if err != nil {
		return nil, MapAuthError(err)
	}

	user := &models.User{
		UserID:   record.UID,
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		// Do not leave an account without a profile behind.
		if delErr := s.accounts.DeleteUser(ctx, record.UID); delErr != nil {
			s.log.WithError(delErr).WithField("userId", record.UID).Error("failed to roll back auth user")
		}
		return nil, errors.Wrap(err, "create user profile")
	}
	s.log.WithFields(logrus.Fields{"userId": user.UserID, "role": user.Role}).Info("user registered")

	resp := &models.AuthResponse{
		UserID:   user.UserID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
	if s.signer == nil {
		return resp, nil
	}

	signIn, err := s.signer.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		// The account exists, the client can still log in explicitly.
		s.log.WithError(err).WithField("userId", user.UserID).Warn("sign in after registration failed")
		return resp, nil
	}
	s.remember(signIn)
	fillTokens(resp, signIn)
	return resp, nil
}

// Login signs a user in with email and password
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if s.signer == nil {
		return nil, errors.New("password sign in is not configured")
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	signIn, err := s.signer.SignIn(ctx, email, req.Password)
	if err != nil {
		return nil, MapAuthError(err)
	}

	user, err := s.users.GetUserByID(ctx, signIn.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "load user profile")
	}
	s.remember(signIn)

	resp := &models.AuthResponse{
		UserID:   user.UserID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
	fillTokens(resp, signIn)
	return resp, nil
}

func (s *AuthService) remember(signIn *SignInResult) {
	s.tokens.StoreToken(signIn.IDToken, signIn.UserID, s.now().Add(signIn.ExpiresIn))
}

func fillTokens(resp *models.AuthResponse, signIn *SignInResult) {
	resp.IDToken = signIn.IDToken
	resp.RefreshToken = signIn.RefreshToken
	resp.ExpiresIn = int(signIn.ExpiresIn.Seconds())
}

// Authenticate resolves a Firebase ID token to a user ID. Tokens issued
// before the user's last logout are rejected.
func (s *AuthService) Authenticate(ctx context.Context, idToken string) (string, error) {
	if userID, ok := s.tokens.GetUserID(idToken); ok {
		return userID, nil
	}

	token, err := s.accounts.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return "", errors.Wrap(ErrUnauthorized, err.Error())
	}

	s.tokens.StoreToken(idToken, token.UID, time.Unix(token.Expires, 0))
	return token.UID, nil
}

// Me returns the caller's profile
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "user")
	}
	return user, nil
}

// UpdateFCMToken stores the user's device token and subscribes it to the
// topics of the user's classes
func (s *AuthService) UpdateFCMToken(ctx context.Context, userID, fcmToken string) error {
	fcmToken = strings.TrimSpace(fcmToken)
	if fcmToken == "" {
		return invalid("fcm token cannot be empty")
	}
	if err := s.users.UpdateFCMToken(ctx, userID, fcmToken); err != nil {
		return errors.Wrap(err, "user")
	}

	classIDs, err := s.classIDsOf(ctx, userID)
	if err != nil {
		s.log.WithError(err).WithField("userId", userID).Warn("failed to resolve classes for topic subscription")
		return nil
	}
	if err := s.notifier.SubscribeToClasses(ctx, fcmToken, classIDs); err != nil {
		s.log.WithError(err).WithField("userId", userID).Warn("failed to subscribe to class topics")
	}
	return nil
}

// classIDsOf returns the classes a teacher teaches or a parent's children attend
func (s *AuthService) classIDsOf(ctx context.Context, userID string) ([]string, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var ids []string
	switch user.Role {
	case models.RoleTeacher:
		classes, err := s.classes.ListClassesByTeacher(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, c := range classes {
			ids = append(ids, c.ID)
		}
	case models.RoleParent:
		if user.Email == "" {
			break
		}
		students, err := s.students.ListStudentsByParentEmail(ctx, strings.ToLower(user.Email))
		if err != nil {
			return nil, err
		}
		for _, st := range students {
			ids = append(ids, st.ClassID)
		}
	}
	return utils.CleanIDs(ids), nil
}

// Logout revokes the user's refresh tokens and forgets cached ID tokens
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	s.tokens.DeleteUser(userID)
	if err := s.accounts.RevokeRefreshTokens(ctx, userID); err != nil {
		return errors.Wrap(err, "revoke refresh tokens")
	}
	return nil
}
