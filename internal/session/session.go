// Package session tracks the sign-in state of the terminal client.
package session

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pageza/recipe-tracker/backend/internal/types"
)

// State is one of the four sign-in states.
type State int

const (
	Unauthenticated State = iota
	Loading
	Authenticated
	Error
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	case Error:
		return "error"
	default:
		return "unauthenticated"
	}
}

// Status is a snapshot of the session. Message is set in the Error state.
type Status struct {
	State   State
	Message string
	Email   string
}

// ErrEmptyCredentials is reported when email or password is blank.
var ErrEmptyCredentials = errors.New("email and password are required")

// Authenticator performs the remote sign-in calls.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*types.AuthResponse, error)
	Register(ctx context.Context, email, password, name string) (*types.AuthResponse, error)
}

// Session is safe for concurrent use. Subscribers are called after every
// transition, outside the lock, in subscription order.
type Session struct {
	auth  Authenticator
	creds CredentialStore
	now   func() time.Time

	mu     sync.Mutex
	status Status
	token  string
	subs   []subscriber
	nextID int
}

type subscriber struct {
	id int
	fn func(Status)
}

// New creates a session in the Unauthenticated state. Call Restore to pick
// up a cached credential.
func New(auth Authenticator, creds CredentialStore) *Session {
	return &Session{
		auth:  auth,
		creds: creds,
		now:   time.Now,
	}
}

// Status returns the current state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Token returns the bearer token while Authenticated, else "".
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.State != Authenticated {
		return ""
	}
	return s.token
}

// Subscribe registers fn for state changes and returns a function that
// removes it.
func (s *Session) Subscribe(fn func(Status)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
		s.mu.Unlock()
	}
}

func (s *Session) set(st Status, token string) {
	s.mu.Lock()
	s.status = st
	s.token = token
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(st)
	}
}

// Restore moves to Authenticated when a cached, unexpired credential
// exists and to Unauthenticated otherwise. An expired credential is removed.
func (s *Session) Restore() Status {
	cred, err := s.creds.Load()
	if err != nil || cred == nil || cred.Token == "" {
		s.set(Status{State: Unauthenticated}, "")
		return s.Status()
	}
	if expired(cred.Token, s.now()) {
		_ = s.creds.Remove()
		s.set(Status{State: Unauthenticated}, "")
		return s.Status()
	}
	s.set(Status{State: Authenticated, Email: cred.Email}, cred.Token)
	return s.Status()
}

// Login signs in. Blank input fails immediately without a network call.
func (s *Session) Login(ctx context.Context, email, password string) Status {
	return s.signIn(ctx, email, password, func() (*types.AuthResponse, error) {
		return s.auth.Login(ctx, strings.TrimSpace(email), password)
	})
}

// Register creates the account and signs in.
func (s *Session) Register(ctx context.Context, email, password, name string) Status {
	return s.signIn(ctx, email, password, func() (*types.AuthResponse, error) {
		return s.auth.Register(ctx, strings.TrimSpace(email), password, strings.TrimSpace(name))
	})
}

func (s *Session) signIn(ctx context.Context, email, password string, call func() (*types.AuthResponse, error)) Status {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		s.set(Status{State: Error, Message: ErrEmptyCredentials.Error()}, "")
		return s.Status()
	}

	s.set(Status{State: Loading, Email: email}, "")
	resp, err := call()
	if err != nil {
		s.set(Status{State: Error, Message: err.Error(), Email: email}, "")
		return s.Status()
	}

	cred := &Credential{Token: resp.Token, Email: email}
	if resp.User != nil {
		cred.UserID = resp.User.ID
	}
	if err := s.creds.Save(cred); err != nil {
		s.set(Status{State: Error, Message: "save credential: " + err.Error(), Email: email}, "")
		return s.Status()
	}
	s.set(Status{State: Authenticated, Email: email}, resp.Token)
	return s.Status()
}

// SignOut forgets the credential and returns to Unauthenticated.
func (s *Session) SignOut() error {
	err := s.creds.Remove()
	s.set(Status{State: Unauthenticated}, "")
	return err
}

// expired reads the exp claim without verifying the signature; the server
// remains the authority on validity.
func expired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}
