package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"github.com/ZigaLarissa/EduAssist/internal/models"
	"github.com/ZigaLarissa/EduAssist/internal/repository"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func fixedNow() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

type memUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
	err   error
}

func newMemUsers(users ...*models.User) *memUsers {
	m := &memUsers{users: map[string]*models.User{}}
	for _, u := range users {
		m.users[u.UserID] = u
	}
	return m
}

func (m *memUsers) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.users[user.UserID] = user
	return nil
}

func (m *memUsers) GetUserByID(_ context.Context, userID string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) UpdateFCMToken(_ context.Context, userID, fcmToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.FCMToken = fcmToken
	return nil
}

func (m *memUsers) ListUsers(_ context.Context, role models.Role) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.User{}
	for _, u := range m.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

type memClasses struct {
	mu      sync.Mutex
	classes map[string]*models.Class
	seq     int
}

func newMemClasses(classes ...*models.Class) *memClasses {
	m := &memClasses{classes: map[string]*models.Class{}}
	for _, c := range classes {
		m.classes[c.ID] = c
	}
	return m
}

func (m *memClasses) CreateClass(_ context.Context, class *models.Class) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	id := fmt.Sprintf("class-%d", m.seq)
	cp := *class
	cp.ID = id
	m.classes[id] = &cp
	return id, nil
}

func (m *memClasses) GetClass(_ context.Context, classID string) (*models.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.classes[classID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	cp.TeacherIDs = append([]string(nil), c.TeacherIDs...)
	return &cp, nil
}

func (m *memClasses) ListClassesByTeacher(_ context.Context, teacherID string) ([]*models.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Class{}
	for _, c := range m.sorted() {
		if c.HasTeacher(teacherID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memClasses) ListAllClasses(_ context.Context) ([]*models.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(), nil
}

func (m *memClasses) sorted() []*models.Class {
	out := make([]*models.Class, 0, len(m.classes))
	for _, c := range m.classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memClasses) AddTeacher(_ context.Context, classID, teacherID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.classes[classID]
	if !ok {
		return repository.ErrNotFound
	}
	if !c.HasTeacher(teacherID) {
		c.TeacherIDs = append(c.TeacherIDs, teacherID)
	}
	return nil
}

type memSubjects struct {
	mu       sync.Mutex
	subjects []*models.Subject
}

func (m *memSubjects) CreateSubject(_ context.Context, subject *models.Subject) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *subject
	cp.ID = fmt.Sprintf("subject-%d", len(m.subjects)+1)
	m.subjects = append(m.subjects, &cp)
	return cp.ID, nil
}

func (m *memSubjects) ListSubjectsByClass(_ context.Context, classID, teacherID string) ([]*models.Subject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Subject{}
	for _, s := range m.subjects {
		if s.ClassID == classID && s.TeacherID == teacherID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSubjects) ListSubjectsByTeacher(_ context.Context, teacherID string) ([]*models.Subject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Subject{}
	for _, s := range m.subjects {
		if s.TeacherID == teacherID {
			out = append(out, s)
		}
	}
	return out, nil
}

type memStudents struct {
	mu       sync.Mutex
	students map[string]*models.Student
	seq      int
}

func newMemStudents(students ...*models.Student) *memStudents {
	m := &memStudents{students: map[string]*models.Student{}}
	for _, s := range students {
		m.students[s.ID] = s
	}
	return m
}

func (m *memStudents) CreateStudent(_ context.Context, student *models.Student) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	id := fmt.Sprintf("student-%d", m.seq)
	cp := *student
	cp.ID = id
	m.students[id] = &cp
	return id, nil
}

func (m *memStudents) GetStudent(_ context.Context, studentID string) (*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.students[studentID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memStudents) UpdateStudent(_ context.Context, student *models.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.students[student.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *student
	m.students[student.ID] = &cp
	return nil
}

func (m *memStudents) DeleteStudent(_ context.Context, studentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.students, studentID)
	return nil
}

func (m *memStudents) list(keep func(*models.Student) bool) []*models.Student {
	out := []*models.Student{}
	for _, s := range m.students {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memStudents) ListStudentsByClass(_ context.Context, classID string) ([]*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(func(s *models.Student) bool { return s.ClassID == classID }), nil
}

func (m *memStudents) ListStudentsByParentEmail(_ context.Context, email string) ([]*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(func(s *models.Student) bool { return s.ParentInfo.Email == email }), nil
}

type memHomeworks struct {
	mu        sync.Mutex
	homeworks map[string]*models.Homework
	seq       int
}

func newMemHomeworks(homeworks ...*models.Homework) *memHomeworks {
	m := &memHomeworks{homeworks: map[string]*models.Homework{}}
	for _, hw := range homeworks {
		m.homeworks[hw.ID] = hw
	}
	return m
}

func (m *memHomeworks) CreateHomework(_ context.Context, hw *models.Homework) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	id := fmt.Sprintf("homework-%d", m.seq)
	cp := *hw
	cp.ID = id
	m.homeworks[id] = &cp
	return id, nil
}

func (m *memHomeworks) GetHomework(_ context.Context, homeworkID string) (*models.Homework, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	hw, ok := m.homeworks[homeworkID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *hw
	return &cp, nil
}

func (m *memHomeworks) ListHomeworksByClass(_ context.Context, classID string) ([]*models.Homework, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Homework{}
	for _, hw := range m.homeworks {
		for _, id := range hw.ClassIDs {
			if id == classID {
				out = append(out, hw)
				break
			}
		}
	}
	return out, nil
}

func (m *memHomeworks) SetCompleted(_ context.Context, homeworkID string, completed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	hw, ok := m.homeworks[homeworkID]
	if !ok {
		return repository.ErrNotFound
	}
	hw.Completed = completed
	return nil
}

type memAnnouncements struct {
	mu            sync.Mutex
	announcements []*models.Announcement
}

func (m *memAnnouncements) CreateAnnouncement(_ context.Context, a *models.Announcement) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	cp.ID = fmt.Sprintf("announcement-%d", len(m.announcements)+1)
	m.announcements = append(m.announcements, &cp)
	return cp.ID, nil
}

func (m *memAnnouncements) GetAnnouncement(_ context.Context, announcementID string) (*models.Announcement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.announcements {
		if a.ID == announcementID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memAnnouncements) ListAnnouncementsForClasses(_ context.Context, classIDs []string, limit int) ([]*models.Announcement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := map[string]bool{}
	for _, id := range classIDs {
		wanted[id] = true
	}

	out := []*models.Announcement{}
	for _, a := range m.announcements {
		for _, id := range a.ClassIDs {
			if wanted[id] {
				out = append(out, a)
				break
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// memChats mimics the pair-document transaction of the Firestore store:
// creation is serialized and keyed by the sorted participant pair.
type memChats struct {
	mu       sync.Mutex
	chats    map[string]*models.Chat
	messages map[string][]*models.Message
	creates  int
	clock    time.Time
}

func newMemChats(chats ...*models.Chat) *memChats {
	m := &memChats{
		chats:    map[string]*models.Chat{},
		messages: map[string][]*models.Message{},
		clock:    fixedNow(),
	}
	for _, c := range chats {
		m.chats[c.ID] = c
	}
	return m
}

func (m *memChats) find(userID, otherUserID string) *models.Chat {
	if c, ok := m.chats[repository.PairChatID(userID, otherUserID)]; ok {
		return c
	}
	for _, c := range m.chats {
		if c.HasParticipant(userID) && c.HasParticipant(otherUserID) {
			return c
		}
	}
	return nil
}

func (m *memChats) FindChat(_ context.Context, userID, otherUserID string) (*models.Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c := m.find(userID, otherUserID); c != nil {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m *memChats) CreateOrGetChat(_ context.Context, chat *models.Chat) (*models.Chat, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c := m.find(chat.Participants[0], chat.Participants[1]); c != nil {
		cp := *c
		return &cp, false, nil
	}
	m.creates++
	cp := *chat
	cp.ID = repository.PairChatID(chat.Participants[0], chat.Participants[1])
	m.chats[cp.ID] = &cp
	out := cp
	return &out, true, nil
}

func (m *memChats) GetChat(_ context.Context, chatID string) (*models.Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.chats[chatID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memChats) ListChatsForUser(_ context.Context, userID string) ([]*models.Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Chat{}
	for _, c := range m.chats {
		if c.HasParticipant(userID) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastMessageTime.After(out[j].LastMessageTime) })
	return out, nil
}

func (m *memChats) WatchChatsForUser(ctx context.Context, userID string, fn func([]*models.Chat) error) error {
	chats, _ := m.ListChatsForUser(ctx, userID)
	return fn(chats)
}

func (m *memChats) AddMessage(_ context.Context, chatID string, msg *models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.chats[chatID]
	if !ok {
		return repository.ErrNotFound
	}
	m.clock = m.clock.Add(time.Second)
	msg.ID = fmt.Sprintf("msg-%d", len(m.messages[chatID])+1)
	msg.Timestamp = m.clock
	cp := *msg
	m.messages[chatID] = append(m.messages[chatID], &cp)

	c.LastMessage = msg.Text
	c.LastMessageTime = m.clock
	c.LastMessageSenderID = msg.SenderID
	return nil
}

func (m *memChats) ListMessages(_ context.Context, chatID string) ([]*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Message{}, m.messages[chatID]...), nil
}

func (m *memChats) WatchMessages(ctx context.Context, chatID string, fn func([]*models.Message) error) error {
	msgs, _ := m.ListMessages(ctx, chatID)
	return fn(msgs)
}

type fakeMessenger struct {
	mu         sync.Mutex
	sent       []*messaging.Message
	subscribed map[string][]string
	err        error
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{subscribed: map[string][]string{}}
}

func (f *fakeMessenger) Send(_ context.Context, message *messaging.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, message)
	return "projects/test/messages/1", nil
}

func (f *fakeMessenger) SubscribeToTopic(_ context.Context, tokens []string, topic string) (*messaging.TopicManagementResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.subscribed[topic] = append(f.subscribed[topic], tokens...)
	return &messaging.TopicManagementResponse{SuccessCount: len(tokens)}, nil
}

type fakeAccounts struct {
	createErr error
	verifyErr error
	created   int
	deleted   []string
	revoked   []string
	verified  int
	uid       string
}

func (f *fakeAccounts) CreateUser(_ context.Context, _ *auth.UserToCreate) (*auth.UserRecord, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created++
	return &auth.UserRecord{UserInfo: &auth.UserInfo{UID: f.uid}}, nil
}

func (f *fakeAccounts) DeleteUser(_ context.Context, uid string) error {
	f.deleted = append(f.deleted, uid)
	return nil
}

func (f *fakeAccounts) RevokeRefreshTokens(_ context.Context, uid string) error {
	f.revoked = append(f.revoked, uid)
	return nil
}

func (f *fakeAccounts) VerifyIDTokenAndCheckRevoked(_ context.Context, idToken string) (*auth.Token, error) {
	f.verified++
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	for _, uid := range f.revoked {
		if uid == f.uid {
			return nil, errors.New("ID token has been revoked")
		}
	}
	return &auth.Token{UID: f.uid, Expires: fixedNow().Add(time.Hour).Unix()}, nil
}

type fakeSigner struct {
	result *SignInResult
	err    error
}

func (f *fakeSigner) SignIn(_ context.Context, _, _ string) (*SignInResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeRecommender struct {
	got *models.RecommendationRequest
	rec *models.Recommendation
	err error
}

func (f *fakeRecommender) Recommend(_ context.Context, req *models.RecommendationRequest) (*models.Recommendation, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	cp := *f.rec
	return &cp, nil
}

type fakeImages struct {
	keys []string
	err  error
}

func (f *fakeImages) Upload(_ context.Context, key string, r io.Reader, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	f.keys = append(f.keys, key)
	return "https://images.test/" + key, nil
}

var errBoom = errors.New("boom")
