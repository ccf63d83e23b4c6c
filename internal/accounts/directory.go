package accounts

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/taskbuddy/taskbuddy/internal/common"
	"github.com/taskbuddy/taskbuddy/internal/logging"
	"github.com/taskbuddy/taskbuddy/internal/models"
	"github.com/taskbuddy/taskbuddy/internal/storage"
)

const (
	accountsKey = "accounts"
	sessionKey  = "currentSession"
)

// demoAccount is seeded into an empty directory exactly once.
var demoAccount = models.Account{
	ID:       "demo",
	Email:    "student@taskbuddy.edu",
	Password: "123",
	Name:     "student",
}

type service struct {
	kv      storage.KV
	log     logging.Logger
	current *models.User
	lastID  int64
}

// NewService returns a Service persisting through kv.
func NewService(kv storage.KV, log logging.Logger) Service {
	return &service{kv: kv, log: log}
}

func (s *service) List(ctx context.Context) ([]models.Account, error) {
	users := s.loadAccounts(ctx)
	if len(users) == 0 {
		users = []models.Account{demoAccount}
		if err := s.saveAccounts(ctx, users); err != nil {
			return nil, err
		}
		s.log.Info(ctx, "seeded demo account", "email", demoAccount.Email)
	}
	return users, nil
}

func (s *service) Signup(ctx context.Context, email, password, name string) (models.User, error) {
	users, err := s.List(ctx)
	if err != nil {
		return models.User{}, err
	}

	email = strings.TrimSpace(email)
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return models.User{}, common.ErrDuplicateEmail
		}
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	account := models.Account{
		ID:       s.nextID(),
		Email:    email,
		Password: password,
		Name:     name,
	}
	users = append(users, account)
	if err := s.saveAccounts(ctx, users); err != nil {
		return models.User{}, err
	}

	return s.establishSession(ctx, account)
}

func (s *service) Login(ctx context.Context, email, password string) (models.User, error) {
	users, err := s.List(ctx)
	if err != nil {
		return models.User{}, err
	}

	for _, u := range users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) && u.Password == password {
			return s.establishSession(ctx, u)
		}
	}
	return models.User{}, common.ErrInvalidCredentials
}

func (s *service) Logout(ctx context.Context) error {
	s.current = nil
	return s.kv.Remove(ctx, sessionKey)
}

func (s *service) InitFromStorage(ctx context.Context) error {
	raw, err := s.kv.Get(ctx, sessionKey)
	if err != nil {
		s.log.Warn(ctx, "failed to read session, treating as signed out", "error", err)
		s.current = nil
		return nil
	}
	if raw == nil {
		s.current = nil
		return nil
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		s.log.Warn(ctx, "stored session is malformed, treating as signed out", "error", err)
		s.current = nil
		return nil
	}
	s.current = &u
	return nil
}

func (s *service) IsLoggedIn() bool {
	return s.current != nil
}

func (s *service) Current() (models.User, bool) {
	if s.current == nil {
		return models.User{}, false
	}
	return *s.current, true
}

// establishSession stores the redacted account as the active session.
func (s *service) establishSession(ctx context.Context, a models.Account) (models.User, error) {
	u := a.Redacted()

	raw, err := json.Marshal(u)
	if err != nil {
		return models.User{}, err
	}
	if err := s.kv.Set(ctx, sessionKey, raw); err != nil {
		return models.User{}, err
	}

	s.current = &u
	return u, nil
}

// nextID allocates a time-based account id, strictly increasing within
// the process even when two signups land on the same millisecond.
func (s *service) nextID() string {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

// loadAccounts reads the stored directory. Storage failures and malformed
// documents both degrade to an empty directory.
func (s *service) loadAccounts(ctx context.Context) []models.Account {
	raw, err := s.kv.Get(ctx, accountsKey)
	if err != nil {
		s.log.Warn(ctx, "failed to read accounts, treating as empty", "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}

	var users []models.Account
	if err := json.Unmarshal(raw, &users); err != nil {
		s.log.Warn(ctx, "stored accounts are malformed, treating as empty", "error", err)
		return nil
	}
	return users
}

func (s *service) saveAccounts(ctx context.Context, users []models.Account) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, accountsKey, raw)
}
