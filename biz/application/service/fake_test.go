package service

import (
	"classroom/biz/adaptor"
	"classroom/biz/application/dto/basic"
	"classroom/biz/infrastructure/config"
	"classroom/biz/infrastructure/consts"
	"classroom/biz/infrastructure/repository/class"
	"classroom/biz/infrastructure/repository/lesson"
	"classroom/biz/infrastructure/repository/mark"
	"classroom/biz/infrastructure/repository/user"
	"classroom/biz/infrastructure/token"
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore 内存中的文档存储, Transaction 失败时整体回滚
type memStore struct {
	mu      sync.Mutex
	users   map[string]*user.User
	classes map[string]*class.Class
	lessons map[string]*lesson.Lesson
	marks   []*mark.Mark

	// 注入的故障, 命中时对应写操作返回该错误
	failAddClass   error
	failAddMembers error
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[string]*user.User{},
		classes: map[string]*class.Class{},
		lessons: map[string]*lesson.Lesson{},
	}
}

func cloneUser(u *user.User) *user.User {
	c := *u
	c.Classes = slices.Clone(u.Classes)
	c.Notifications = make([]*user.Notification, 0, len(u.Notifications))
	for _, n := range u.Notifications {
		cp := *n
		c.Notifications = append(c.Notifications, &cp)
	}
	return &c
}

func cloneClass(c *class.Class) *class.Class {
	cp := *c
	cp.Owners = slices.Clone(c.Owners)
	cp.Members = slices.Clone(c.Members)
	cp.Lessons = slices.Clone(c.Lessons)
	return &cp
}

func (s *memStore) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	users := make(map[string]*user.User, len(s.users))
	for k, v := range s.users {
		users[k] = cloneUser(v)
	}
	classes := make(map[string]*class.Class, len(s.classes))
	for k, v := range s.classes {
		classes[k] = cloneClass(v)
	}
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.users, s.classes = users, classes
		s.mu.Unlock()
		return err
	}
	return nil
}

// user mapper

type fakeUserMapper struct{ *memStore }

func (m fakeUserMapper) Insert(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Login == u.Login {
			return consts.ErrRepeatedSignUp
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.Classes == nil {
		u.Classes = []string{}
	}
	m.users[u.ID.Hex()] = cloneUser(u)
	return nil
}

func (m fakeUserMapper) FindOne(_ context.Context, id string) (*user.User, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, consts.ErrInvalidObjectId
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, consts.ErrNotFound
	}
	return cloneUser(u), nil
}

func (m fakeUserMapper) FindOneByLogin(_ context.Context, login string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Login == login {
			return cloneUser(u), nil
		}
	}
	return nil, consts.ErrNotFound
}

func (m fakeUserMapper) FindMany(_ context.Context, ids []string) ([]*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*user.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (m fakeUserMapper) AddClass(_ context.Context, classID string, userIDs ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAddClass != nil {
		return m.failAddClass
	}
	for _, id := range userIDs {
		if u, ok := m.users[id]; ok {
			u.Classes = lo.Union(u.Classes, []string{classID})
		}
	}
	return nil
}

func (m fakeUserMapper) RemoveClass(_ context.Context, classID string, userIDs ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range userIDs {
		if u, ok := m.users[id]; ok {
			u.Classes = lo.Without(u.Classes, classID)
		}
	}
	return nil
}

func (m fakeUserMapper) RemoveClassFromAll(_ context.Context, classID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, u := range m.users {
		if lo.Contains(u.Classes, classID) {
			u.Classes = lo.Without(u.Classes, classID)
			n++
		}
	}
	return n, nil
}

func (m fakeUserMapper) PushNotification(_ context.Context, userID string, n *user.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return consts.ErrNotFound
	}
	cp := *n
	u.Notifications = append(u.Notifications, &cp)
	return nil
}

func (m fakeUserMapper) RemoveNotifications(_ context.Context, userID string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[userID]; ok {
		u.Notifications = lo.Reject(u.Notifications, func(n *user.Notification, _ int) bool {
			return lo.Contains(ids, n.ID)
		})
	}
	return nil
}

func (m fakeUserMapper) SetRefreshTokenHash(_ context.Context, userID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[userID]; ok {
		u.RefreshTokenHash = hash
	}
	return nil
}

func (m fakeUserMapper) SwapRefreshTokenHash(_ context.Context, userID, oldHash, newHash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok || oldHash == "" || u.RefreshTokenHash != oldHash {
		return false, nil
	}
	u.RefreshTokenHash = newHash
	return true, nil
}

// class mapper

type fakeClassMapper struct{ *memStore }

func (m fakeClassMapper) Insert(_ context.Context, c *class.Class) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.classes {
		if existing.AccessToken == c.AccessToken {
			return class.ErrDuplicateAccessToken
		}
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
		c.CreateTime = time.Now()
	}
	m.classes[c.ID.Hex()] = cloneClass(c)
	return nil
}

func (m fakeClassMapper) FindOne(_ context.Context, id string) (*class.Class, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, consts.ErrInvalidObjectId
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.classes[id]
	if !ok {
		return nil, consts.ErrNotFound
	}
	return cloneClass(c), nil
}

func (m fakeClassMapper) FindOneByAccessToken(_ context.Context, accessToken string) (*class.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.classes {
		if c.AccessToken == accessToken {
			return cloneClass(c), nil
		}
	}
	return nil, consts.ErrNotFound
}

func (m fakeClassMapper) FindMany(_ context.Context, ids []string) ([]*class.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*class.Class, 0, len(ids))
	for _, id := range ids {
		if c, ok := m.classes[id]; ok {
			out = append(out, cloneClass(c))
		}
	}
	return out, nil
}

func (m fakeClassMapper) UpdateInfo(_ context.Context, id string, title, description *string) (*class.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.classes[id]
	if !ok {
		return nil, consts.ErrNotFound
	}
	if title != nil {
		c.Title = *title
	}
	if description != nil {
		c.Description = *description
	}
	return cloneClass(c), nil
}

func (m fakeClassMapper) update(id string, fn func(c *class.Class)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.classes[id]
	if !ok {
		return consts.ErrNotFound
	}
	fn(c)
	return nil
}

func (m fakeClassMapper) AddMembers(_ context.Context, id string, userIDs ...string) error {
	if m.failAddMembers != nil {
		return m.failAddMembers
	}
	return m.update(id, func(c *class.Class) { *c = class.WithMembers(*c, userIDs...) })
}

func (m fakeClassMapper) RemoveMembers(_ context.Context, id string, userIDs ...string) error {
	return m.update(id, func(c *class.Class) { *c = class.WithoutMembers(*c, userIDs...) })
}

func (m fakeClassMapper) AddOwners(_ context.Context, id string, userIDs ...string) error {
	return m.update(id, func(c *class.Class) { *c = class.WithOwners(*c, userIDs...) })
}

func (m fakeClassMapper) RemoveOwners(_ context.Context, id string, userIDs ...string) error {
	return m.update(id, func(c *class.Class) { *c = class.WithoutOwners(*c, userIDs...) })
}

func (m fakeClassMapper) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.classes, id)
	return nil
}

// lesson and mark mappers

type fakeLessonMapper struct{ *memStore }

func (m fakeLessonMapper) FindByIDs(_ context.Context, ids []string) ([]*lesson.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*lesson.Lesson, 0, len(ids))
	for _, id := range ids {
		if l, ok := m.lessons[id]; ok {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeMarkMapper struct{ *memStore }

func (m fakeMarkMapper) Insert(_ context.Context, mk *mark.Mark) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mk.ID = int64(len(m.marks) + 1)
	if mk.CreateTime.IsZero() {
		mk.CreateTime = time.Now()
	}
	cp := *mk
	m.marks = append(m.marks, &cp)
	return nil
}

func (m fakeMarkMapper) FindByClass(_ context.Context, classID string) ([]*mark.Mark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*mark.Mark, 0)
	for _, mk := range m.marks {
		if mk.ClassID == classID {
			cp := *mk
			out = append(out, &cp)
		}
	}
	return out, nil
}

// session cache

type fakeSessionCache struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func (c *fakeSessionCache) Revoke(_ context.Context, userID string, at time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.revoked == nil {
		c.revoked = map[string]time.Time{}
	}
	c.revoked[userID] = at
	return nil
}

func (c *fakeSessionCache) RevokedAt(_ context.Context, userID string) (time.Time, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	at, ok := c.revoked[userID]
	return at, ok, nil
}

// notifier

type notice struct {
	text    string
	userIDs []string
}

type fakeNotifier struct {
	mu      sync.Mutex
	notices []notice
}

func (n *fakeNotifier) Notify(_ context.Context, text string, userIDs ...string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice{text: text, userIDs: userIDs})
}

func (n *fakeNotifier) recipients() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, no := range n.notices {
		out = append(out, no.userIDs...)
	}
	return out
}

// fixture

type fixture struct {
	store    *memStore
	notifier *fakeNotifier
	sessions *fakeSessionCache
	classes  *ClassService
	grades   *GradeBookService
	auth     *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	notifier := new(fakeNotifier)
	sessions := new(fakeSessionCache)
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	return &fixture{
		store:    store,
		notifier: notifier,
		sessions: sessions,
		classes: &ClassService{
			Config:       new(config.Config),
			ClassMapper:  fakeClassMapper{store},
			UserMapper:   fakeUserMapper{store},
			LessonMapper: fakeLessonMapper{store},
			Transactor:   store,
			Notifier:     notifier,
		},
		grades: &GradeBookService{
			ClassMapper:  fakeClassMapper{store},
			UserMapper:   fakeUserMapper{store},
			LessonMapper: fakeLessonMapper{store},
			MarkMapper:   fakeMarkMapper{store},
		},
		auth: &AuthService{
			UserMapper:   fakeUserMapper{store},
			SessionCache: sessions,
			TokenManager: token.NewManagerWithKey(priv, time.Minute, time.Hour),
			Verifier:     plainVerifier{},
		},
	}
}

// addUser 直接写入一个用户, 返回其 id
func (f *fixture) addUser(t *testing.T, login string) string {
	t.Helper()
	u := &user.User{Login: login, Name: login, Surname: "Test", Password: "pw:" + login}
	require.NoError(t, fakeUserMapper{f.store}.Insert(context.Background(), u))
	return u.ID.Hex()
}

func (f *fixture) addLesson(t *testing.T, classID, title string) string {
	t.Helper()
	l := &lesson.Lesson{ID: primitive.NewObjectID(), ClassID: classID, Title: title}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.lessons[l.ID.Hex()] = l
	c := f.store.classes[classID]
	c.Lessons = append(c.Lessons, l.ID.Hex())
	return l.ID.Hex()
}

func (f *fixture) user(t *testing.T, id string) *user.User {
	t.Helper()
	u, err := fakeUserMapper{f.store}.FindOne(context.Background(), id)
	require.NoError(t, err)
	return u
}

func (f *fixture) class(id string) (*class.Class, bool) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	c, ok := f.store.classes[id]
	if !ok {
		return nil, false
	}
	return cloneClass(c), true
}

func as(userID string) context.Context {
	return adaptor.InjectUserMeta(context.Background(), &basic.UserMeta{UserId: userID})
}

// plainVerifier 测试用的口令校验, 摘要即 "pw:" 前缀加明文
type plainVerifier struct{}

func (plainVerifier) Hash(_ context.Context, password string) (string, error) {
	return "pw:" + password, nil
}

func (plainVerifier) Verify(_ context.Context, _, password, storedHash string) error {
	if storedHash != "pw:"+password {
		return consts.ErrSignIn
	}
	return nil
}
