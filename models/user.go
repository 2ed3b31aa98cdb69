package models

import (
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rohanthewiz/serr"
	"golang.org/x/crypto/bcrypt"
)

// User is an account held by the development auth API.
// PasswordHash is never exposed in JSON.
type User struct {
	GUID         string       `json:"guid"`
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	CreatedAt    time.Time    `json:"createdAt"`
	LastLoginAt  sql.NullTime `json:"-"`
}

// DisplayName is the user's full name
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// DDLCreateUsersTable is the development API's account table.
// Emails are stored lower-cased so uniqueness is case-insensitive.
const DDLCreateUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    guid          VARCHAR PRIMARY KEY,
    email         VARCHAR NOT NULL UNIQUE,
    first_name    VARCHAR NOT NULL,
    last_name     VARCHAR NOT NULL,
    password_hash VARCHAR NOT NULL,
    created_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    last_login_at TIMESTAMP
);
`

// ErrUserExists is returned when registering an email that is already taken
var ErrUserExists = errors.New("an account with this email already exists")

// Password hashing cost. The dev API favours fast logins over hash strength.
const bcryptCost = bcrypt.DefaultCost

// UserRegistry stores development API accounts in DuckDB.
type UserRegistry struct {
	mu   sync.Mutex
	db   *sql.DB
	cost int
}

// OpenUserRegistry opens (or creates) the account database at path.
// An empty path keeps accounts in memory for the life of the process.
func OpenUserRegistry(path string) (*UserRegistry, error) {
	db, err := openDuckDB(path, userMigrations)
	if err != nil {
		return nil, serr.Wrap(err, "failed to open user registry")
	}
	return &UserRegistry{db: db, cost: bcryptCost}, nil
}

// WithHashCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func (r *UserRegistry) WithHashCost(cost int) *UserRegistry {
	r.cost = cost
	return r
}

func (r *UserRegistry) Close() error {
	if err := r.db.Close(); err != nil {
		return serr.Wrap(err, "failed to close user registry")
	}
	return nil
}

// Create adds an account. The data is expected to be validated and trimmed
// already. Returns ErrUserExists for a duplicate email.
func (r *UserRegistry) Create(data RegistrationData) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), r.cost)
	if err != nil {
		return nil, serr.Wrap(err, "failed to hash password")
	}

	user := &User{
		GUID:         uuid.New().String(),
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Email:        normalizeEmail(data.Email),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.byEmail(user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	_, err = r.db.Exec(`
		INSERT INTO users (guid, email, first_name, last_name, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		user.GUID, user.Email, user.FirstName, user.LastName, user.PasswordHash, user.CreatedAt)
	if err != nil {
		return nil, serr.Wrap(err, "failed to create user")
	}
	return user, nil
}

// Authenticate checks credentials and records the login time.
// Returns nil, nil when the email is unknown or the password is wrong.
func (r *UserRegistry) Authenticate(creds Credentials) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, err := r.byEmail(normalizeEmail(creds.Email))
	if err != nil || user == nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		return nil, nil
	}

	now := time.Now().UTC()
	if _, err := r.db.Exec(`UPDATE users SET last_login_at = ? WHERE guid = ?`, now, user.GUID); err != nil {
		return nil, serr.Wrap(err, "failed to update last login")
	}
	user.LastLoginAt = sql.NullTime{Time: now, Valid: true}
	return user, nil
}

// Count returns the number of registered accounts.
func (r *UserRegistry) Count() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, serr.Wrap(err, "failed to count users")
	}
	return n, nil
}

func (r *UserRegistry) byEmail(email string) (*User, error) {
	user := &User{}
	err := r.db.QueryRow(`
		SELECT guid, email, first_name, last_name, password_hash, created_at, last_login_at
		FROM users
		WHERE email = ?`, email).Scan(
		&user.GUID, &user.Email, &user.FirstName, &user.LastName,
		&user.PasswordHash, &user.CreatedAt, &user.LastLoginAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, serr.Wrap(err, "failed to get user by email")
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
