package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"golf-caddy/internal/domain"
	"golf-caddy/internal/repository"
)

type failingKVStore struct {
	repository.KVStore
	getErr error
	setErr error
}

func (f *failingKVStore) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.KVStore.Get(ctx, key)
}

func (f *failingKVStore) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.KVStore.Set(ctx, key, value)
}

func newTestAccountService(t *testing.T, store repository.KVStore) *AccountService {
	t.Helper()
	tokens, err := NewSessionTokenService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return NewAccountService(context.Background(), zap.NewNop(), store, tokens)
}

func registerTestUser(t *testing.T, svc *AccountService) domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    "Golfer@Example.com ",
		Password: "secret123",
		Name:     "Taro",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return user
}

func TestAccountService_RegisterStartsSession(t *testing.T) {
	store := repository.NewMemoryKVStore()
	svc := newTestAccountService(t, store)

	user := registerTestUser(t, svc)
	if !strings.HasPrefix(user.ID, "user_") {
		t.Fatalf("unexpected id %q", user.ID)
	}
	if user.Email != "golfer@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Preferences == nil {
		t.Fatalf("expected empty preferences")
	}

	current, ok := svc.CurrentUser()
	if !ok || current.ID != user.ID {
		t.Fatalf("expected active session for %s, got %+v", user.ID, current)
	}
	if svc.SessionToken() == "" {
		t.Fatalf("expected session token")
	}

	raw, err := store.Get(context.Background(), usersKey)
	if err != nil {
		t.Fatalf("get users: %v", err)
	}
	if strings.Contains(raw, "secret123") {
		t.Fatalf("plaintext password persisted: %s", raw)
	}
	var records []userRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		t.Fatalf("decode users: %v", err)
	}
	if len(records) != 1 || records[0].PasswordHash == "" {
		t.Fatalf("unexpected records: %+v", records)
	}

	sessionRaw, err := store.Get(context.Background(), sessionUserKey)
	if err != nil {
		t.Fatalf("get session user: %v", err)
	}
	if strings.Contains(sessionRaw, "passwordHash") {
		t.Fatalf("session copy must not carry credentials: %s", sessionRaw)
	}
}

func TestAccountService_RegisterDuplicateEmail(t *testing.T) {
	svc := newTestAccountService(t, repository.NewMemoryKVStore())
	registerTestUser(t, svc)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "golfer@EXAMPLE.com",
		Password: "another1",
		Name:     "Jiro",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAccountService_RegisterValidation(t *testing.T) {
	svc := newTestAccountService(t, repository.NewMemoryKVStore())
	cases := []RegisterInput{
		{Email: "", Password: "secret123", Name: "Taro"},
		{Email: "a@example.com", Password: "", Name: "Taro"},
		{Email: "a@example.com", Password: "secret123", Name: "  "},
		{Email: "a@example.com", Password: "12345", Name: "Taro"},
	}
	for _, in := range cases {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected validation error for %+v, got %v", in, err)
		}
	}
	if _, ok := svc.CurrentUser(); ok {
		t.Fatalf("no session expected after failed registrations")
	}
}

func TestAccountService_LoginDoesNotRevealWhichFieldFailed(t *testing.T) {
	svc := newTestAccountService(t, repository.NewMemoryKVStore())
	registerTestUser(t, svc)
	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}

	_, wrongPassword := svc.Login(context.Background(), "golfer@example.com", "bad-password")
	_, unknownEmail := svc.Login(context.Background(), "nobody@example.com", "secret123")
	if !errors.Is(wrongPassword, domain.ErrAuth) || !errors.Is(unknownEmail, domain.ErrAuth) {
		t.Fatalf("expected auth errors, got %v / %v", wrongPassword, unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("errors must be indistinguishable: %q vs %q", wrongPassword, unknownEmail)
	}
	if domain.UserMessage(wrongPassword) != domain.UserMessage(unknownEmail) {
		t.Fatalf("user messages must be indistinguishable")
	}
	if _, ok := svc.CurrentUser(); ok {
		t.Fatalf("failed login must not start a session")
	}

	user, err := svc.Login(context.Background(), " GOLFER@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Name != "Taro" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestAccountService_LoginEmptyFields(t *testing.T) {
	svc := newTestAccountService(t, repository.NewMemoryKVStore())
	if _, err := svc.Login(context.Background(), "", "x"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "a@example.com", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAccountService_LogoutClearsStoredSession(t *testing.T) {
	store := repository.NewMemoryKVStore()
	svc := newTestAccountService(t, store)
	registerTestUser(t, svc)
	token := svc.SessionToken()

	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := svc.CurrentUser(); ok {
		t.Fatalf("expected no session")
	}
	for _, key := range []string{sessionTokenKey, sessionUserKey} {
		if _, err := store.Get(context.Background(), key); !errors.Is(err, repository.ErrKeyNotFound) {
			t.Fatalf("expected %s removed, got %v", key, err)
		}
	}
	if _, err := store.Get(context.Background(), usersKey); err != nil {
		t.Fatalf("user list must survive logout: %v", err)
	}
	if _, err := svc.VerifySessionToken(token); !errors.Is(err, domain.ErrAuth) {
		t.Fatalf("expected old token rejected, got %v", err)
	}
}

func TestAccountService_SessionSurvivesRestart(t *testing.T) {
	store := repository.NewMemoryKVStore()
	first := newTestAccountService(t, store)
	user := registerTestUser(t, first)

	second := newTestAccountService(t, store)
	current, ok := second.CurrentUser()
	if !ok || current.ID != user.ID {
		t.Fatalf("expected restored session, got %+v ok=%v", current, ok)
	}
	if _, err := second.VerifySessionToken(second.SessionToken()); err != nil {
		t.Fatalf("restored token should verify: %v", err)
	}
}

func TestAccountService_RestoreReissuesTokenWithNewSecret(t *testing.T) {
	store := repository.NewMemoryKVStore()
	first := newTestAccountService(t, store)
	registerTestUser(t, first)
	oldToken := first.SessionToken()

	tokens, _ := NewSessionTokenService("", time.Hour)
	second := NewAccountService(context.Background(), zap.NewNop(), store, tokens)
	if _, ok := second.CurrentUser(); !ok {
		t.Fatalf("expected restored session")
	}
	if second.SessionToken() == oldToken {
		t.Fatalf("expected token reissued under the new secret")
	}
	if _, err := second.VerifySessionToken(second.SessionToken()); err != nil {
		t.Fatalf("reissued token should verify: %v", err)
	}
}

func TestAccountService_RestoreIgnoresOrphanSession(t *testing.T) {
	store := repository.NewMemoryKVStore()
	ctx := context.Background()
	orphan, _ := json.Marshal(domain.User{ID: "user_ghost", Email: "ghost@example.com"})
	if err := store.Set(ctx, sessionUserKey, string(orphan)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := newTestAccountService(t, store)
	if _, ok := svc.CurrentUser(); ok {
		t.Fatalf("session for a user missing from the list must be ignored")
	}
}

func TestAccountService_CorruptedValuesAreAbsent(t *testing.T) {
	store := repository.NewMemoryKVStore()
	ctx := context.Background()
	_ = store.Set(ctx, usersKey, "{not json")
	_ = store.Set(ctx, sessionUserKey, "also not json")

	svc := newTestAccountService(t, store)
	if _, ok := svc.CurrentUser(); ok {
		t.Fatalf("corrupted session must read as absent")
	}
	user := registerTestUser(t, svc)
	if user.ID == "" {
		t.Fatalf("expected registration over a corrupted list to succeed")
	}
}

func TestAccountService_StoreErrorsPropagate(t *testing.T) {
	ioErr := errors.New("disk unavailable")
	store := &failingKVStore{KVStore: repository.NewMemoryKVStore()}
	svc := newTestAccountService(t, store)

	store.getErr = ioErr
	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@example.com", Password: "secret123", Name: "A"})
	if !errors.Is(err, ioErr) {
		t.Fatalf("expected I/O error, got %v", err)
	}

	store.getErr = nil
	store.setErr = ioErr
	_, err = svc.Register(context.Background(), RegisterInput{Email: "a@example.com", Password: "secret123", Name: "A"})
	if !errors.Is(err, ioErr) {
		t.Fatalf("expected I/O error on save, got %v", err)
	}
	if _, ok := svc.CurrentUser(); ok {
		t.Fatalf("failed save must not start a session")
	}
}

func TestAccountService_UpdatePreferences(t *testing.T) {
	store := repository.NewMemoryKVStore()
	svc := newTestAccountService(t, store)
	ctx := context.Background()

	carry := 230
	if _, err := svc.UpdatePreferences(ctx, domain.PreferencesPatch{DriverCarryDistance: &carry}); !errors.Is(err, domain.ErrAuth) {
		t.Fatalf("expected auth error without session, got %v", err)
	}

	registerTestUser(t, svc)
	favorites := []string{"川奈ホテルゴルフコース 富士コース"}
	if _, err := svc.UpdatePreferences(ctx, domain.PreferencesPatch{FavoriteCourses: &favorites}); err != nil {
		t.Fatalf("update favorites: %v", err)
	}
	updated, err := svc.UpdatePreferences(ctx, domain.PreferencesPatch{DriverCarryDistance: &carry})
	if err != nil {
		t.Fatalf("update carry: %v", err)
	}
	if updated.Preferences.DriverCarryDistance != 230 || len(updated.Preferences.FavoriteCourses) != 1 {
		t.Fatalf("expected shallow merge, got %+v", updated.Preferences)
	}

	raw, _ := store.Get(ctx, usersKey)
	var records []userRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		t.Fatalf("decode users: %v", err)
	}
	if records[0].Preferences == nil || records[0].Preferences.DriverCarryDistance != 230 {
		t.Fatalf("user list not updated: %+v", records[0].Preferences)
	}
	if records[0].PasswordHash == "" {
		t.Fatalf("password hash lost on update")
	}

	restarted := newTestAccountService(t, store)
	current, _ := restarted.CurrentUser()
	if current.Preferences == nil || current.Preferences.DriverCarryDistance != 230 {
		t.Fatalf("session copy not updated: %+v", current.Preferences)
	}

	negative := -1
	if _, err := svc.UpdatePreferences(ctx, domain.PreferencesPatch{AverageScore: &negative}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAccountService_CurrentUserIsACopy(t *testing.T) {
	svc := newTestAccountService(t, repository.NewMemoryKVStore())
	registerTestUser(t, svc)

	u, _ := svc.CurrentUser()
	u.Preferences.AverageScore = 72
	again, _ := svc.CurrentUser()
	if again.Preferences.AverageScore != 0 {
		t.Fatalf("caller mutation leaked into the session")
	}
}
