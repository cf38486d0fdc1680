package storage

import (
	"context"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	owner := uuid.New()

	key, err := ls.Store(ctx, owner, FolderProofs, "my id card.pdf", strings.NewReader("proof"), "application/pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "proofs/"+owner.String()+"/"))
	assert.True(t, strings.HasSuffix(key, "_my_id_card.pdf"))

	rc, err := ls.Retrieve(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "proof", string(body))

	require.NoError(t, ls.Delete(ctx, key))
	_, err = ls.Retrieve(ctx, key)
	assert.ErrorIs(t, err, ErrFileNotFound)
	require.NoError(t, ls.Delete(ctx, key))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	for _, key := range []string{"", "/etc/passwd", "../secret", "qr/../../x", `qr\x`} {
		_, err := ls.Retrieve(context.Background(), key)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"qr.png":           "qr.png",
		"../../etc/passwd": "passwd",
		`C:\docs\id.pdf`:   "id.pdf",
		"a b#c%d.png":      "a_b_c_d.png",
		"":                 "upload",
		"..":               "upload",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizeFilename(in), in)
	}
}

// parseFileToken checks a token the way the /files route does.
func parseFileToken(secret, raw string, now time.Time) (string, error) {
	token, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		return "", err
	}
	return KeyFromToken(token)
}

func TestSigner(t *testing.T) {
	s := NewSigner("secret", time.Minute)
	key := "qr/" + uuid.NewString() + "/2026/10/x_qr.png"

	link, err := s.URL(key)
	require.NoError(t, err)
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/files/"+key, u.Path)

	got, err := parseFileToken("secret", u.Query().Get("token"), time.Now())
	require.NoError(t, err)
	assert.Equal(t, key, got)

	empty, err := s.URL("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = parseFileToken("other", u.Query().Get("token"), time.Now())
	assert.Error(t, err)
}

func TestSigner_Expiry(t *testing.T) {
	s := NewSigner("secret", time.Minute)
	issued := time.Now()
	s.now = func() time.Time { return issued }
	tok, err := s.Token("qr/a/b.png")
	require.NoError(t, err)

	key, err := parseFileToken("secret", tok, issued.Add(30*time.Second))
	require.NoError(t, err)
	assert.Equal(t, "qr/a/b.png", key)

	_, err = parseFileToken("secret", tok, issued.Add(2*time.Minute))
	assert.Error(t, err)
}
