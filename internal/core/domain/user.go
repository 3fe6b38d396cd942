package domain

// User holds one set of login credentials. Password and Salt are hex encoded;
// plaintext passwords are never persisted.
type User struct {
	ID       int    `json:"id" bson:"id"`
	Username string `json:"username" bson:"username" validate:"required"`
	Password string `json:"password,omitempty" bson:"password"`
	Salt     string `json:"salt,omitempty" bson:"salt"`
}

func (u User) EntityID() int { return u.ID }

func (u User) WithEntityID(id int) User {
	u.ID = id
	return u
}

// Public returns a copy safe to send to clients, with the credential
// material stripped.
func (u User) Public() User {
	u.Password = ""
	u.Salt = ""
	return u
}

// UserAccount is the request body for creating a user together with its
// permission set. The plaintext password is hashed server-side and discarded.
type UserAccount struct {
	Username    string        `json:"username" validate:"required"`
	Password    string        `json:"password" validate:"required"`
	Permissions PermissionSet `json:"permissions"`
}
