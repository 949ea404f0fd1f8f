package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/crewbaseapp/crewbase-backend/pkg/config"
)

// ErrNotFound signals that no identity exists for the requested email or uid.
// Callers branch on it explicitly; every other failure class propagates.
var ErrNotFound = errors.New("identity not found")

// Record is the subset of an identity-store account the platform cares about.
type Record struct {
	UID         string
	Email       string
	DisplayName string
}

type authAPI interface {
	GetUserByEmail(ctx context.Context, email string) (*auth.UserRecord, error)
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	PasswordResetLink(ctx context.Context, email string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// Client wraps the Firebase Auth SDK behind the identity-store surface the
// services consume.
type Client struct {
	api authAPI
}

// New bootstraps the Firebase app and its auth client.
func New(ctx context.Context, cfg config.FirebaseConfig) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("firebase project id is required")
	}
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}
	api, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase auth client: %w", err)
	}
	return &Client{api: api}, nil
}

// FindByEmail looks up an identity record. The caller is expected to have
// normalized the email already; no normalization happens here.
func (c *Client) FindByEmail(ctx context.Context, email string) (*Record, error) {
	user, err := c.api.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return fromUserRecord(user), nil
}

// Create registers a new identity with the given email and optional display name.
func (c *Client) Create(ctx context.Context, email, displayName string) (*Record, error) {
	params := (&auth.UserToCreate{}).Email(email)
	if strings.TrimSpace(displayName) != "" {
		params = params.DisplayName(displayName)
	}
	user, err := c.api.CreateUser(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return fromUserRecord(user), nil
}

// PasswordResetLink mints the one-time credential-setup link for an email.
func (c *Client) PasswordResetLink(ctx context.Context, email string) (string, error) {
	link, err := c.api.PasswordResetLink(ctx, email)
	if err != nil {
		return "", fmt.Errorf("password reset link: %w", err)
	}
	return link, nil
}

// Delete removes the identity record for uid. Returns ErrNotFound when the
// record is already gone so callers can treat that case as success.
func (c *Client) Delete(ctx context.Context, uid string) error {
	if err := c.api.DeleteUser(ctx, uid); err != nil {
		if auth.IsUserNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// VerifyToken validates a Firebase ID token and returns the caller uid.
func (c *Client) VerifyToken(ctx context.Context, idToken string) (string, error) {
	token, err := c.api.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("verify id token: %w", err)
	}
	return token.UID, nil
}

func fromUserRecord(user *auth.UserRecord) *Record {
	if user == nil {
		return nil
	}
	return &Record{
		UID:         user.UID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}
}
