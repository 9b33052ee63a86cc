package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_LoginPersistsAcrossRestore(t *testing.T) {
	store := FileStore{Path: filepath.Join(t.TempDir(), "nested", "session.yaml")}

	s := New(store)
	require.NoError(t, s.Restore())
	assert.False(t, s.Active())

	require.NoError(t, s.Login("student@mru.edu"))
	assert.Equal(t, "student@mru.edu", s.User())

	// a new process sees the same identity
	reloaded := New(store)
	require.NoError(t, reloaded.Restore())
	assert.Equal(t, "student@mru.edu", reloaded.User())

	require.NoError(t, reloaded.Logout())
	assert.False(t, reloaded.Active())
	_, err := os.Stat(store.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	again := New(store)
	require.NoError(t, again.Restore())
	_, err = again.Require()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestSession_LoginRejectsInvalidIdentifiers(t *testing.T) {
	for _, id := range []string{"", "   ", "student"} {
		s := New(&MemStore{})
		err := s.Login(id)
		assert.ErrorIs(t, err, ErrInvalidEmail, "id %q", id)
		assert.False(t, s.Active())
	}
}

func TestSession_RestoreDropsCorruptIdentity(t *testing.T) {
	store := &MemStore{}
	require.NoError(t, store.Save("not-an-email"))

	s := New(store)
	require.NoError(t, s.Restore())
	assert.False(t, s.Active())
	stored, _ := store.Load()
	assert.Empty(t, stored)
}

func TestSession_LoginReplacesPreviousUser(t *testing.T) {
	s := New(&MemStore{})
	require.NoError(t, s.Login("a@x.edu"))
	require.NoError(t, s.Login("b@x.edu"))
	assert.Equal(t, "b@x.edu", s.User())
}

func TestFileStore_LogoutWithoutFile(t *testing.T) {
	store := FileStore{Path: filepath.Join(t.TempDir(), "missing.yaml")}
	assert.NoError(t, store.Clear())
	user, err := store.Load()
	assert.NoError(t, err)
	assert.Empty(t, user)
}

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     string
	}{
		{name: "ok", email: "student@mru.edu", password: "x", want: ""},
		{name: "missing email", email: "", password: "x", want: "Please fill in all fields"},
		{name: "missing password", email: "a@b", password: "", want: "Please fill in all fields"},
		{name: "no at sign", email: "student", password: "x", want: "Please enter a valid email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLogin(tt.email, tt.password)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.want, ve.Message)
		})
	}
}

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name                             string
		fullName, email, pass, confirmPw string
		want                             string
	}{
		{name: "ok", fullName: "Student", email: "s@mru.edu", pass: "secret1", confirmPw: "secret1"},
		{name: "missing name", email: "s@mru.edu", pass: "secret1", confirmPw: "secret1", want: "Please fill in all fields"},
		{name: "bad email", fullName: "S", email: "smru.edu", pass: "secret1", confirmPw: "secret1", want: "Please enter a valid email"},
		{name: "short password", fullName: "S", email: "s@mru.edu", pass: "abc", confirmPw: "abc", want: "Password must be at least 6 characters"},
		{name: "mismatch", fullName: "S", email: "s@mru.edu", pass: "secret1", confirmPw: "secret2", want: "Passwords do not match"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegister(tt.fullName, tt.email, tt.pass, tt.confirmPw)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.want)
		})
	}
}
