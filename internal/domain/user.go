package domain

// AccessAuth is the purpose tag carried by every session token.
const AccessAuth = "auth"

type Token struct {
	Access string `json:"access" bson:"access"`
	Token  string `json:"token"  bson:"token"`
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Tokens       []Token
}

// HasToken reports whether raw is one of the user's active session tokens.
func (u *User) HasToken(raw string) bool {
	for _, t := range u.Tokens {
		if t.Token == raw {
			return true
		}
	}
	return false
}
