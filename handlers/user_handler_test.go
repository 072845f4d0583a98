package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jewelbill/models"
	"jewelbill/repository"
)

type fakeUserRepo struct {
	users map[string]*models.AppUser
	err   error
}

func (r *fakeUserRepo) CreateUser(user *models.AppUser) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.users[user.Email]; ok {
		return repository.ErrEmailTaken
	}
	user.ID = int64(len(r.users) + 1)
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.AppUser, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.users[email], nil
}

const signupBody = `{"name":"Shakuntala","email":"s@example.com","password":"shakuntala123","phone":"9800000000"}`

func TestSignup(t *testing.T) {
	h := &UserHandler{Repo: &fakeUserRepo{users: map[string]*models.AppUser{}}}

	w := httptest.NewRecorder()
	h.Signup(w, httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(signupBody)))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp ApiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success {
		t.Error("expected success response")
	}
	if strings.Contains(w.Body.String(), "shakuntala123") {
		t.Error("password echoed in response")
	}
}

func TestSignupValidation(t *testing.T) {
	h := &UserHandler{Repo: &fakeUserRepo{users: map[string]*models.AppUser{}}}

	w := httptest.NewRecorder()
	h.Signup(w, httptest.NewRequest(http.MethodPost, "/api/auth/signup",
		strings.NewReader(`{"name":"No Password","email":"n@example.com"}`)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	h := &UserHandler{Repo: &fakeUserRepo{users: map[string]*models.AppUser{}}}

	w := httptest.NewRecorder()
	h.Signup(w, httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(signupBody)))
	if w.Code != http.StatusCreated {
		t.Fatalf("first signup: status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.Signup(w, httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(signupBody)))
	if w.Code != http.StatusConflict {
		t.Fatalf("second signup: status = %d, want 409", w.Code)
	}
}

func TestSignupHidesStoreErrors(t *testing.T) {
	h := &UserHandler{Repo: &fakeUserRepo{err: errors.New(`pq: relation "app_user" does not exist`)}}

	w := httptest.NewRecorder()
	h.Signup(w, httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(signupBody)))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "pq:") {
		t.Errorf("store error leaked to caller: %s", w.Body.String())
	}
}
