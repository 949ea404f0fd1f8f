package profiles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/crewbaseapp/crewbase-backend/pkg/config"
)

// ErrNotFound signals that no document exists at the requested key.
var ErrNotFound = errors.New("profile document not found")

const StatusInvited = "invited"

// UserDoc is the denormalized invited-user fact written to both the
// uid-keyed profile document and the email-keyed invite document.
type UserDoc struct {
	UID         string    `firestore:"uid"`
	Email       string    `firestore:"email"`
	FirstName   string    `firestore:"firstName"`
	LastName    string    `firestore:"lastName"`
	DisplayName string    `firestore:"displayName"`
	Role        string    `firestore:"role"`
	Status      string    `firestore:"status"`
	InvitedAt   time.Time `firestore:"invitedAt"`
	InvitedBy   string    `firestore:"invitedBy"`
	UpdatedAt   time.Time `firestore:"updatedAt"`
}

// fields flattens the doc for a merge write. Set with MergeAll requires
// map data, not a struct.
func (d UserDoc) fields() map[string]any {
	return map[string]any{
		"uid":         d.UID,
		"email":       d.Email,
		"firstName":   d.FirstName,
		"lastName":    d.LastName,
		"displayName": d.DisplayName,
		"role":        d.Role,
		"status":      d.Status,
		"invitedAt":   d.InvitedAt,
		"invitedBy":   d.InvitedBy,
		"updatedAt":   d.UpdatedAt,
	}
}

// Client wraps the Firestore SDK behind the profile-store surface the
// services consume.
type Client struct {
	fs      *firestore.Client
	users   string
	invites string
}

// New connects to Firestore for the configured project.
func New(ctx context.Context, cfg config.FirebaseConfig) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("firebase project id is required")
	}
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	fs, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing firestore client: %w", err)
	}
	return &Client{
		fs:      fs,
		users:   cfg.UsersCollection,
		invites: cfg.InvitesCollection,
	}, nil
}

// GetUser loads the profile document stored at uid.
func (c *Client) GetUser(ctx context.Context, uid string) (*UserDoc, error) {
	snap, err := c.fs.Collection(c.users).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user profile: %w", err)
	}
	var doc UserDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode user profile: %w", err)
	}
	return &doc, nil
}

// SetUser merge-writes the profile document at uid, preserving any fields
// not covered by the doc.
func (c *Client) SetUser(ctx context.Context, uid string, doc UserDoc) error {
	if _, err := c.fs.Collection(c.users).Doc(uid).Set(ctx, doc.fields(), firestore.MergeAll); err != nil {
		return fmt.Errorf("set user profile: %w", err)
	}
	return nil
}

// SetInvite merge-writes the invite document keyed by normalized email.
func (c *Client) SetInvite(ctx context.Context, email string, doc UserDoc) error {
	if _, err := c.fs.Collection(c.invites).Doc(email).Set(ctx, doc.fields(), firestore.MergeAll); err != nil {
		return fmt.Errorf("set invite record: %w", err)
	}
	return nil
}

// DeleteUserDocs removes the profile document and, when an email is given,
// the invite document in one atomic transaction. Deleting documents that do
// not exist is a no-op, which keeps the operation idempotent.
func (c *Client) DeleteUserDocs(ctx context.Context, uid, email string) error {
	err := c.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Delete(c.fs.Collection(c.users).Doc(uid)); err != nil {
			return err
		}
		if email != "" {
			if err := tx.Delete(c.fs.Collection(c.invites).Doc(email)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete user documents: %w", err)
	}
	return nil
}

// Close releases the underlying Firestore connection.
func (c *Client) Close() error {
	if c.fs == nil {
		return nil
	}
	return c.fs.Close()
}
