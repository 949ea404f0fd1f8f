package identity

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/auth"
)

type fakeAuthAPI struct {
	user    *auth.UserRecord
	link    string
	token   *auth.Token
	err     error
	created *auth.UserToCreate
	deleted string
}

func (f *fakeAuthAPI) GetUserByEmail(ctx context.Context, email string) (*auth.UserRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeAuthAPI) CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error) {
	f.created = user
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeAuthAPI) PasswordResetLink(ctx context.Context, email string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.link, nil
}

func (f *fakeAuthAPI) DeleteUser(ctx context.Context, uid string) error {
	f.deleted = uid
	return f.err
}

func (f *fakeAuthAPI) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.token, nil
}

func userRecord(uid, email, displayName string) *auth.UserRecord {
	return &auth.UserRecord{UserInfo: &auth.UserInfo{
		UID:         uid,
		Email:       email,
		DisplayName: displayName,
	}}
}

func TestFindByEmailMapsRecord(t *testing.T) {
	api := &fakeAuthAPI{user: userRecord("uid-1", "jane@x.com", "Jane Doe")}
	client := &Client{api: api}

	record, err := client.FindByEmail(context.Background(), "jane@x.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if record.UID != "uid-1" || record.Email != "jane@x.com" || record.DisplayName != "Jane Doe" {
		t.Fatalf("unexpected record %+v", record)
	}
}

func TestFindByEmailWrapsOtherErrors(t *testing.T) {
	api := &fakeAuthAPI{err: errors.New("deadline exceeded")}
	client := &Client{api: api}

	_, err := client.FindByEmail(context.Background(), "jane@x.com")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("transport failure should not map to ErrNotFound")
	}
}

func TestCreateReturnsMappedRecord(t *testing.T) {
	api := &fakeAuthAPI{user: userRecord("uid-2", "jane@x.com", "Jane Doe")}
	client := &Client{api: api}

	record, err := client.Create(context.Background(), "jane@x.com", "Jane Doe")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if record.UID != "uid-2" {
		t.Fatalf("unexpected uid %q", record.UID)
	}
	if api.created == nil {
		t.Fatal("expected create params passed through")
	}
}

func TestPasswordResetLink(t *testing.T) {
	api := &fakeAuthAPI{link: "https://example.com/reset"}
	client := &Client{api: api}

	link, err := client.PasswordResetLink(context.Background(), "jane@x.com")
	if err != nil {
		t.Fatalf("reset link: %v", err)
	}
	if link != "https://example.com/reset" {
		t.Fatalf("unexpected link %q", link)
	}
}

func TestDeletePassesUID(t *testing.T) {
	api := &fakeAuthAPI{}
	client := &Client{api: api}

	if err := client.Delete(context.Background(), "uid-3"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if api.deleted != "uid-3" {
		t.Fatalf("expected uid-3 deleted, got %q", api.deleted)
	}
}

func TestVerifyTokenReturnsUID(t *testing.T) {
	api := &fakeAuthAPI{token: &auth.Token{UID: "uid-4"}}
	client := &Client{api: api}

	uid, err := client.VerifyToken(context.Background(), "id-token")
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if uid != "uid-4" {
		t.Fatalf("unexpected uid %q", uid)
	}
}

func TestVerifyTokenRejectsBadToken(t *testing.T) {
	api := &fakeAuthAPI{err: errors.New("token expired")}
	client := &Client{api: api}

	if _, err := client.VerifyToken(context.Background(), "stale"); err == nil {
		t.Fatal("expected error")
	}
}
