package models

// Role values for User.Role. Role is set at creation and never changes.
const (
	RoleAdmin = "admin"
	RoleAgent = "agent"
)

type User struct {
	ID       string `bson:"_id,omitempty" json:"id"`
	Username string `bson:"username,omitempty" json:"username,omitempty"`
	Name     string `bson:"name" json:"name"`
	Role     string `bson:"role" json:"role"` // "admin" or "agent"
	AgentID  string `bson:"agentId,omitempty" json:"agentId,omitempty"`
	Mobile   string `bson:"mobile,omitempty" json:"mobile,omitempty"`
	Password string `bson:"password,omitempty" json:"-"` // bcrypt hash, admins only
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u User) IsAgent() bool {
	return u.Role == RoleAgent
}
