package codehash

import (
	"golang.org/x/crypto/bcrypt"
)

// Verification codes are stored hashed, a leaked cache dump should not hand
// out live codes.
type CodeHasher interface {
	HashCode(rawCode string) (string, error)
	IsSameCode(hashedCode, rawCode string) bool
}

func NewCodeHasher() CodeHasher {
	return &bcryptCodeHasher{cost: bcrypt.DefaultCost}
}

type bcryptCodeHasher struct {
	cost int
}

func (b bcryptCodeHasher) HashCode(rawCode string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawCode), b.cost)
	return string(hash), err
}

func (bcryptCodeHasher) IsSameCode(hashedCode, rawCode string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedCode), []byte(rawCode)) == nil
}
