package sessions

import (
	"fmt"
	"net/http"

	"github.com/zeptools/pricequote/sec"
)

const CookieName = "pq_session"

// Manager handles the encrypted session-id cookie. Session content lives in
// a Store; the cookie only carries the opaque id.
type Manager struct {
	Conf   Conf
	Cipher *sec.XChaCha20Poly1305Cipher
}

func NewManager(conf Conf) (*Manager, error) {
	conf.ApplyDefaults()
	cipher, err := sec.NewXChaCha20Poly1305Cipher([]byte(conf.EncryptionKey))
	if err != nil {
		return nil, fmt.Errorf("session cipher: %w", err)
	}
	return &Manager{
		Conf:   conf,
		Cipher: cipher,
	}, nil
}

// SessionIDFromCookie extracts and decrypts the session id from the request.
// Any malformed or undecryptable cookie reads as "no session".
func (m *Manager) SessionIDFromCookie(r *http.Request) (string, bool) {
	sessionCookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	sessionID, err := m.Cipher.DecodeDecrypt(sessionCookie.Value) // []byte
	if err != nil {
		return "", false
	}
	return string(sessionID), true
}

func (m *Manager) SetSessionCookie(w http.ResponseWriter, sessionID string) error {
	encSessionID, err := m.Cipher.EncryptEncode([]byte(sessionID))
	if err != nil {
		return fmt.Errorf("failed to encrypt session id. %v", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encSessionID,
		Path:     "/",  // Subpaths will get this cookie.
		HttpOnly: true, // JS cannot read it
		Secure:   true, // only sent over HTTPS
		MaxAge:   m.Conf.ExpireHardcap,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *Manager) RemoveSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Path:     "/",
		MaxAge:   -1, // Delete
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
