package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"golf-caddy/internal/domain"
	"golf-caddy/internal/repository"
)

// Claves del store durable. Se mantienen los nombres históricos para no perder datos existentes.
const (
	sessionTokenKey = "golf_advisor_auth_token"
	sessionUserKey  = "golf_advisor_user_data"
	usersKey        = "golf_advisor_users"
)

const minPasswordLength = 6

const (
	msgRegisterFieldsRequired = "すべての項目を入力してください。"
	msgPasswordTooShort       = "パスワードは6文字以上で入力してください。"
	msgLoginFieldsRequired    = "メールアドレスとパスワードを入力してください。"
	msgInvalidPreference      = "設定値は正の数で入力してください。"
	msgInvalidCredentials     = "invalid credentials"
)

// userRecord es la forma persistida de un usuario: nunca sale del servicio.
type userRecord struct {
	domain.User
	PasswordHash string `json:"passwordHash,omitempty"`
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// AccountService gestiona la cuenta local y la sesión activa sobre un KVStore.
// Todas las operaciones se serializan con mu: el store no tiene transacciones.
type AccountService struct {
	logger *zap.Logger
	store  repository.KVStore
	tokens *SessionTokenService
	now    func() time.Time

	mu      sync.Mutex
	current *domain.User
	token   string
}

// NewAccountService restaura la sesión persistida, si la hay.
func NewAccountService(ctx context.Context, logger *zap.Logger, store repository.KVStore, tokens *SessionTokenService) *AccountService {
	s := &AccountService{
		logger: logger,
		store:  store,
		tokens: tokens,
		now:    time.Now,
	}
	s.restoreSession(ctx)
	return s
}

func (s *AccountService) restoreSession(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.store.Get(ctx, sessionUserKey)
	if err != nil {
		if !errors.Is(err, repository.ErrKeyNotFound) {
			s.logger.Warn("failed to read stored session", zap.Error(err))
		}
		return
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == "" {
		s.logger.Warn("stored session is not valid JSON; ignoring it", zap.Error(err))
		return
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		s.logger.Warn("failed to read stored users", zap.Error(err))
		return
	}
	if findUserByID(users, user.ID) < 0 {
		s.logger.Warn("session user no longer exists; starting logged out", zap.String("user_id", user.ID))
		return
	}

	token, err := s.store.Get(ctx, sessionTokenKey)
	if err != nil && !errors.Is(err, repository.ErrKeyNotFound) {
		s.logger.Warn("failed to read stored session token", zap.Error(err))
	}
	if claims, perr := s.tokens.Parse(token); perr != nil || claims.UserID != user.ID {
		token, err = s.tokens.Issue(user)
		if err != nil {
			s.logger.Warn("failed to reissue session token", zap.Error(err))
			return
		}
		if err := s.store.Set(ctx, sessionTokenKey, token); err != nil {
			s.logger.Warn("failed to persist reissued session token", zap.Error(err))
		}
	}

	s.current = &user
	s.token = token
	s.logger.Info("session restored", zap.String("user_id", user.ID))
}

// Register crea la cuenta e inicia sesión con ella.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	const op = "register"
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	if email == "" || input.Password == "" || name == "" {
		return domain.User{}, domain.NewError(domain.KindValidation, op, msgRegisterFieldsRequired)
	}
	if utf8.RuneCountInString(input.Password) < minPasswordLength {
		return domain.User{}, domain.NewError(domain.KindValidation, op, msgPasswordTooShort)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("load users: %w", err)
	}
	if findUserByEmail(users, email) >= 0 {
		return domain.User{}, domain.NewError(domain.KindConflict, op, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	id, err := newUserID()
	if err != nil {
		return domain.User{}, fmt.Errorf("generate user id: %w", err)
	}

	user := domain.User{
		ID:          id,
		Email:       email,
		Name:        name,
		CreatedAt:   s.now().UTC(),
		Preferences: &domain.UserPreferences{},
	}
	users = append(users, userRecord{User: user, PasswordHash: string(hash)})
	if err := s.saveUsers(ctx, users); err != nil {
		return domain.User{}, fmt.Errorf("save users: %w", err)
	}
	if err := s.startSession(ctx, user); err != nil {
		return domain.User{}, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return cloneUser(user), nil
}

// Login no distingue entre email desconocido y password incorrecta.
func (s *AccountService) Login(ctx context.Context, emailAddr, password string) (domain.User, error) {
	const op = "login"
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || password == "" {
		return domain.User{}, domain.NewError(domain.KindValidation, op, msgLoginFieldsRequired)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("load users: %w", err)
	}
	idx := findUserByEmail(users, emailAddr)
	if idx < 0 || users[idx].PasswordHash == "" {
		return domain.User{}, domain.NewError(domain.KindAuth, op, msgInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(users[idx].PasswordHash), []byte(password)); err != nil {
		return domain.User{}, domain.NewError(domain.KindAuth, op, msgInvalidCredentials)
	}

	user := users[idx].User
	if err := s.startSession(ctx, user); err != nil {
		return domain.User{}, err
	}
	s.logger.Info("user logged in", zap.String("user_id", user.ID))
	return cloneUser(user), nil
}

// Logout limpia la sesión en memoria aunque falle el borrado en el store.
func (s *AccountService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	s.token = ""
	if err := s.store.Delete(ctx, sessionTokenKey, sessionUserKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// CurrentUser devuelve una copia del usuario activo.
func (s *AccountService) CurrentUser() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.User{}, false
	}
	return cloneUser(*s.current), true
}

func (s *AccountService) SessionToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// VerifySessionToken acepta solo el token de la sesión activa.
func (s *AccountService) VerifySessionToken(token string) (domain.User, error) {
	const op = "verify session"
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return domain.User{}, domain.WrapError(domain.KindAuth, op, domain.MsgLoginRequired, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.token != token || claims.UserID != s.current.ID {
		return domain.User{}, domain.NewError(domain.KindAuth, op, domain.MsgLoginRequired)
	}
	return cloneUser(*s.current), nil
}

// UpdatePreferences hace un merge superficial sobre las preferencias del usuario activo
// y actualiza tanto la lista de usuarios como la copia de sesión.
func (s *AccountService) UpdatePreferences(ctx context.Context, patch domain.PreferencesPatch) (domain.User, error) {
	const op = "update preferences"
	if (patch.DriverCarryDistance != nil && *patch.DriverCarryDistance <= 0) ||
		(patch.AverageScore != nil && *patch.AverageScore <= 0) {
		return domain.User{}, domain.NewError(domain.KindValidation, op, msgInvalidPreference)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return domain.User{}, domain.NewError(domain.KindAuth, op, domain.MsgLoginRequired)
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("load users: %w", err)
	}
	idx := findUserByID(users, s.current.ID)
	if idx < 0 {
		return domain.User{}, domain.NewError(domain.KindAuth, op, domain.MsgLoginRequired)
	}

	updated := cloneUser(*s.current)
	updated.Preferences = domain.MergePreferences(s.current.Preferences, patch)
	users[idx].User = updated
	if err := s.saveUsers(ctx, users); err != nil {
		return domain.User{}, fmt.Errorf("save users: %w", err)
	}
	if err := s.saveSessionUser(ctx, updated); err != nil {
		return domain.User{}, err
	}

	s.current = &updated
	return cloneUser(updated), nil
}

func (s *AccountService) startSession(ctx context.Context, user domain.User) error {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return fmt.Errorf("issue session token: %w", err)
	}
	if err := s.saveSessionUser(ctx, user); err != nil {
		return err
	}
	if err := s.store.Set(ctx, sessionTokenKey, token); err != nil {
		return fmt.Errorf("save session token: %w", err)
	}
	u := cloneUser(user)
	s.current = &u
	s.token = token
	return nil
}

func (s *AccountService) saveSessionUser(ctx context.Context, user domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	if err := s.store.Set(ctx, sessionUserKey, string(raw)); err != nil {
		return fmt.Errorf("save session user: %w", err)
	}
	return nil
}

// loadUsers trata un valor corrupto como lista vacía; los errores de I/O sí se propagan.
func (s *AccountService) loadUsers(ctx context.Context) ([]userRecord, error) {
	raw, err := s.store.Get(ctx, usersKey)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var users []userRecord
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		s.logger.Warn("stored user list is not valid JSON; treating it as empty", zap.Error(err))
		return nil, nil
	}
	return users, nil
}

func (s *AccountService) saveUsers(ctx context.Context, users []userRecord) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, usersKey, string(raw))
}

func findUserByEmail(users []userRecord, email string) int {
	for i, u := range users {
		if normalizeEmail(u.Email) == email {
			return i
		}
	}
	return -1
}

func findUserByID(users []userRecord, id string) int {
	for i, u := range users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func newUserID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return "user_" + id.String(), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func cloneUser(u domain.User) domain.User {
	if u.Preferences != nil {
		u.Preferences = domain.MergePreferences(u.Preferences, domain.PreferencesPatch{})
	}
	return u
}
