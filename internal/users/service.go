package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	pkgerrors "github.com/crewbaseapp/crewbase-backend/pkg/errors"
	"github.com/crewbaseapp/crewbase-backend/pkg/identity"
	"github.com/crewbaseapp/crewbase-backend/pkg/logger"
	"github.com/crewbaseapp/crewbase-backend/pkg/metrics"
	"github.com/crewbaseapp/crewbase-backend/pkg/profiles"
)

type identityStore interface {
	FindByEmail(ctx context.Context, email string) (*identity.Record, error)
	Create(ctx context.Context, email, displayName string) (*identity.Record, error)
	PasswordResetLink(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, uid string) error
}

type profileStore interface {
	GetUser(ctx context.Context, uid string) (*profiles.UserDoc, error)
	SetUser(ctx context.Context, uid string, doc profiles.UserDoc) error
	SetInvite(ctx context.Context, email string, doc profiles.UserDoc) error
	DeleteUserDocs(ctx context.Context, uid, email string) error
}

// Service exposes the two admin user operations.
type Service interface {
	Invite(ctx context.Context, callerUID string, input InviteUserInput) (*InviteUserResult, error)
	Delete(ctx context.Context, callerUID string, input DeleteUserInput) (*DeleteUserResult, error)
}

type service struct {
	identities identityStore
	profiles   profileStore
	logg       *logger.Logger
	metrics    *metrics.AdminOpsMetrics
	now        func() time.Time
}

// ServiceParams bundles the dependencies required to build a users service.
type ServiceParams struct {
	IdentityStore identityStore
	ProfileStore  profileStore
	Logger        *logger.Logger
	Metrics       *metrics.AdminOpsMetrics
}

// NewService constructs the admin user service with the provided stores.
func NewService(params ServiceParams) (Service, error) {
	if params.IdentityStore == nil {
		return nil, fmt.Errorf("identity store is required")
	}
	if params.ProfileStore == nil {
		return nil, fmt.Errorf("profile store is required")
	}
	return &service{
		identities: params.IdentityStore,
		profiles:   params.ProfileStore,
		logg:       params.Logger,
		metrics:    params.Metrics,
		now:        time.Now,
	}, nil
}

// requireAdmin reads the caller's own profile document and fails closed
// unless its role is exactly "admin". Runs on every call so role changes
// take effect immediately; nothing is cached.
func (s *service) requireAdmin(ctx context.Context, callerUID string) error {
	doc, err := s.profiles.GetUser(ctx, callerUID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "admins only")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load caller profile")
	}
	if strings.ToLower(doc.Role) != RoleAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admins only")
	}
	return nil
}

func (s *service) Invite(ctx context.Context, callerUID string, input InviteUserInput) (*InviteUserResult, error) {
	start := s.now()
	result, err := s.invite(ctx, callerUID, input)
	s.metrics.ObserveDuration("invite", s.now().Sub(start))
	if err != nil {
		s.metrics.IncFailure("invite")
		return nil, err
	}
	s.metrics.IncSuccess("invite")
	return result, nil
}

func (s *service) invite(ctx context.Context, callerUID string, input InviteUserInput) (*InviteUserResult, error) {
	callerUID = strings.TrimSpace(callerUID)
	if callerUID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "you must be signed in")
	}
	if err := s.requireAdmin(ctx, callerUID); err != nil {
		return nil, err
	}

	email := normalizeEmail(input.Email)
	role := strings.ToLower(strings.TrimSpace(input.Role))
	if role == "" {
		role = RoleAssociate
	}
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	displayName := strings.TrimSpace(firstName + " " + lastName)

	if email == "" || !strings.Contains(email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "valid email is required")
	}
	if firstName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "first name is required")
	}
	if lastName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "last name is required")
	}

	// Resolve or create the identity record. Only an explicit not-found
	// triggers creation; any other lookup failure propagates.
	record, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, identity.ErrNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup identity")
		}
		record, err = s.identities.Create(ctx, email, displayName)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create identity")
		}
	}

	resetLink, err := s.identities.PasswordResetLink(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mint credential setup link")
	}

	now := s.now().UTC()
	doc := profiles.UserDoc{
		UID:         record.UID,
		Email:       email,
		FirstName:   firstName,
		LastName:    lastName,
		DisplayName: displayName,
		Role:        role,
		Status:      profiles.StatusInvited,
		InvitedAt:   now,
		InvitedBy:   callerUID,
		UpdatedAt:   now,
	}

	// The two merge writes are not atomic with each other or with the
	// identity creation above. A failure here leaves the stores divergent
	// until a retried invite self-heals via the email lookup.
	if err := s.profiles.SetUser(ctx, record.UID, doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write user profile")
	}
	if err := s.profiles.SetInvite(ctx, email, doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write invite record")
	}

	return &InviteUserResult{
		OK:        true,
		UID:       record.UID,
		Email:     email,
		Role:      role,
		ResetLink: resetLink,
	}, nil
}

func (s *service) Delete(ctx context.Context, callerUID string, input DeleteUserInput) (*DeleteUserResult, error) {
	start := s.now()
	result, err := s.delete(ctx, callerUID, input)
	s.metrics.ObserveDuration("delete", s.now().Sub(start))
	if err != nil {
		s.metrics.IncFailure("delete")
		return nil, err
	}
	s.metrics.IncSuccess("delete")
	return result, nil
}

func (s *service) delete(ctx context.Context, callerUID string, input DeleteUserInput) (*DeleteUserResult, error) {
	callerUID = strings.TrimSpace(callerUID)
	if callerUID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "you must be signed in")
	}
	if err := s.requireAdmin(ctx, callerUID); err != nil {
		return nil, err
	}

	uid := strings.TrimSpace(input.UID)
	if uid == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "uid is required")
	}
	email := normalizeEmail(input.Email)

	if uid == callerUID {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "you cannot delete yourself")
	}

	// Identity removal is best-effort: an already-absent record is success,
	// and any other identity-store failure is logged but does not stop the
	// document cleanup below.
	if err := s.identities.Delete(ctx, uid); err != nil && !errors.Is(err, identity.ErrNotFound) {
		if s.logg != nil {
			ctx = s.logg.WithField(ctx, "target_uid", uid)
			s.logg.Warn(ctx, "identity delete failed, continuing with document cleanup")
		}
	}

	if err := s.profiles.DeleteUserDocs(ctx, uid, email); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user documents")
	}

	return &DeleteUserResult{
		OK:    true,
		UID:   uid,
		Email: email,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
