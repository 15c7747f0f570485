// Session identity helpers shared by the middleware and the controllers.
// File: middleware/identity.go
package middleware

import (
	"encoding/json"

	"github.com/gin-contrib/sessions"

	"chapel-site/logger"
	"chapel-site/models"
)

// identityKey is the session key holding the signed-in identity as JSON.
// JSON keeps the cookie store free of gob type registration.
const identityKey = "identity"

// SaveIdentity stores the identity in the session.
func SaveIdentity(session sessions.Session, identity models.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	session.Set(identityKey, string(raw))
	return session.Save()
}

// CurrentIdentity returns the signed-in identity, or nil when signed out or
// the stored value cannot be decoded.
func CurrentIdentity(session sessions.Session) *models.Identity {
	raw, ok := session.Get(identityKey).(string)
	if !ok || raw == "" {
		return nil
	}

	var identity models.Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		logger.Warn.Printf("CurrentIdentity: dropping undecodable session identity: %v", err)
		return nil
	}
	if identity.UID == "" {
		return nil
	}
	return &identity
}

// ClearIdentity removes the identity and persists the session. Clearing an
// already-clear session is a no-op success.
func ClearIdentity(session sessions.Session) error {
	session.Delete(identityKey)
	session.Clear()
	return session.Save()
}
