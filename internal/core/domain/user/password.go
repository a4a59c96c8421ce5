package user

// MaxPasswordBytes is the longest password bcrypt can hash.
const MaxPasswordBytes = 72

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}
