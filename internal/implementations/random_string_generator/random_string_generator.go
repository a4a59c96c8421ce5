package randomstringgenerator

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"yeonghwa/internal/core/domain/user"
)

// PasswordResetTokenBytes gives 160 bits of entropy.
const PasswordResetTokenBytes = 20

type Generator struct {
	random io.Reader
}

func NewGenerator() *Generator {
	return &Generator{random: rand.Reader}
}

func (g *Generator) GeneratePasswordResetToken() (token user.PasswordResetToken, err error) {
	b := make([]byte, PasswordResetTokenBytes)
	if _, err := io.ReadFull(g.random, b); err != nil {
		return token, fmt.Errorf("could not read random bytes: %w", err)
	}
	return user.PasswordResetToken(hex.EncodeToString(b)), nil
}
