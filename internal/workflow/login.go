package workflow

import (
	"github.com/univflow/admission-api/internal/models"
	"github.com/univflow/admission-api/internal/utils"
)

// Authenticate resolves a login attempt against the users collection.
// Admins sign in with username or mobile plus their password; agents sign
// in with mobile or username plus their agent id. The first matching user
// wins.
func (t *Tracker) Authenticate(identifier, credential string) (models.User, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, u := range t.users {
		if !u.IsAdmin() {
			continue
		}
		if (u.Username == identifier || (u.Mobile != "" && u.Mobile == identifier)) &&
			utils.CheckPasswordHash(credential, u.Password) {
			return u, true
		}
	}
	for _, u := range t.users {
		if !u.IsAgent() {
			continue
		}
		if ((u.Mobile != "" && u.Mobile == identifier) || (u.Username != "" && u.Username == identifier)) &&
			u.AgentID == credential {
			return u, true
		}
	}
	return models.User{}, false
}
