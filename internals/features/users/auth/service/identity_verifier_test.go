package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProject = "inkubator-test"

func newCertServer(t *testing.T, kid string, key *rsa.PrivateKey) (*httptest.Server, *int32) {
	t.Helper()
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "securetoken"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	certPEM := string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}))

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=600, must-revalidate")
		_ = json.NewEncoder(w).Encode(map[string]string{kid: certPEM})
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func signIDToken(t *testing.T, key *rsa.PrivateKey, kid string, claims firebaseClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = kid
	s, err := tok.SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims() firebaseClaims {
	now := time.Now()
	return firebaseClaims{
		Email:         "ketua@student.ac.id",
		EmailVerified: true,
		Name:          "Ketua Tim",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "https://securetoken.google.com/" + testProject,
			Audience:  jwt.ClaimStrings{testProject},
			Subject:   "firebase-uid-1",
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func TestFirebaseVerifier_ValidToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv, hits := newCertServer(t, "k1", key)

	v := NewFirebaseVerifier(testProject)
	v.CertURL = srv.URL

	id, err := v.Verify(context.Background(), signIDToken(t, key, "k1", validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "firebase-uid-1", id.UID)
	assert.Equal(t, "ketua@student.ac.id", id.Email)
	assert.True(t, id.EmailVerified)

	// sertifikat di-cache
	_, err = v.Verify(context.Background(), signIDToken(t, key, "k1", validClaims()))
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestFirebaseVerifier_Rejects(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv, _ := newCertServer(t, "k1", key)

	v := NewFirebaseVerifier(testProject)
	v.CertURL = srv.URL

	wrongAud := validClaims()
	wrongAud.Audience = jwt.ClaimStrings{"other-project"}

	wrongIss := validClaims()
	wrongIss.Issuer = "https://accounts.google.com"

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	cases := map[string]string{
		"audience":  signIDToken(t, key, "k1", wrongAud),
		"issuer":    signIDToken(t, key, "k1", wrongIss),
		"expired":   signIDToken(t, key, "k1", expired),
		"signature": signIDToken(t, other, "k1", validClaims()),
		"kid":       signIDToken(t, key, "unknown", validClaims()),
		"garbage":   "not-a-jwt",
	}
	for name, tok := range cases {
		_, err := v.Verify(context.Background(), tok)
		assert.ErrorIs(t, err, ErrInvalidIDToken, name)
	}
}

func TestMaxAge(t *testing.T) {
	assert.Equal(t, 600*time.Second, maxAge("public, max-age=600, must-revalidate"))
	assert.Equal(t, time.Hour, maxAge(""))
	assert.Equal(t, time.Hour, maxAge("max-age=abc"))
}
