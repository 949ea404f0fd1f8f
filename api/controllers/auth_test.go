package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	internalauth "github.com/crewbaseapp/crewbase-backend/internal/auth"
	pkgerrors "github.com/crewbaseapp/crewbase-backend/pkg/errors"
)

type stubAuthService struct {
	resp *internalauth.SessionResponse
	err  error

	loginInput   internalauth.LoginRequest
	refreshInput internalauth.RefreshRequest
	logoutInput  internalauth.LogoutRequest
}

func (s *stubAuthService) Login(ctx context.Context, input internalauth.LoginRequest) (*internalauth.SessionResponse, error) {
	s.loginInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func (s *stubAuthService) Refresh(ctx context.Context, input internalauth.RefreshRequest) (*internalauth.SessionResponse, error) {
	s.refreshInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func (s *stubAuthService) Logout(ctx context.Context, input internalauth.LogoutRequest) error {
	s.logoutInput = input
	return s.err
}

func TestSessionLoginSuccess(t *testing.T) {
	svc := &stubAuthService{resp: &internalauth.SessionResponse{
		AccessToken:  "access",
		RefreshToken: "refresh",
	}}
	handler := SessionLogin(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/session", strings.NewReader(`{"id_token":"provider-token"}`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
	if svc.loginInput.IDToken != "provider-token" {
		t.Fatalf("unexpected input %+v", svc.loginInput)
	}

	var envelope struct {
		Data internalauth.SessionResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "access" || envelope.Data.RefreshToken != "refresh" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestSessionLoginRequiresIDToken(t *testing.T) {
	handler := SessionLogin(&stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/session", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestSessionLoginMapsUnauthorized(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	handler := SessionLogin(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/session", strings.NewReader(`{"id_token":"bad"}`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestSessionRefreshSuccess(t *testing.T) {
	svc := &stubAuthService{resp: &internalauth.SessionResponse{
		AccessToken:  "access-2",
		RefreshToken: "refresh-2",
	}}
	handler := SessionRefresh(svc, nil)

	body := `{"access_token":"old-access","refresh_token":"old-refresh"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/session/refresh", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.refreshInput.AccessToken != "old-access" || svc.refreshInput.RefreshToken != "old-refresh" {
		t.Fatalf("unexpected input %+v", svc.refreshInput)
	}
}

func TestSessionLogoutSuccess(t *testing.T) {
	svc := &stubAuthService{}
	handler := SessionLogout(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/session/logout", strings.NewReader(`{"access_token":"access"}`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.logoutInput.AccessToken != "access" {
		t.Fatalf("unexpected input %+v", svc.logoutInput)
	}
}
