package service

import (
	"crypto/subtle"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

const (
	PasswordPlain  = "plain"
	PasswordBcrypt = "bcrypt"
)

// A password starts with a letter, is 4 to 20 characters long and has no
// whitespace.
var passwordPattern = regexp.MustCompile(`^[a-zA-Z]\S{3,19}$`)

func validPassword(password string) bool {
	return passwordPattern.MatchString(password)
}

// storedPassword returns the credential as it is written to the users table.
// The plain scheme keeps the password unchanged, which is the historical
// storage format and a known weakness; bcrypt is opt-in through config.
func (s Service) storedPassword(password string) (string, error) {
	if s.passwordScheme == PasswordBcrypt {
		return bcryptHash(password)
	}
	return password, nil
}

func (s Service) passwordMatches(stored, password string) bool {
	if s.passwordScheme == PasswordBcrypt {
		return bcryptCompare(stored, password)
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

func bcryptHash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func bcryptCompare(hashed, password string) bool {
	err := bcrypt.CompareHashAndPassword(
		[]byte(hashed),
		[]byte(password),
	)
	return err == nil
}
