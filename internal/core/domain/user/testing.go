package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"sync"
	"time"
	c "yeonghwa/internal/core/domain/common"
)

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeSessionTokenIssuer struct {
	Issued      []ID
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeSessionTokenIssuer() *FakeSessionTokenIssuer {
	return &FakeSessionTokenIssuer{}
}

func (i *FakeSessionTokenIssuer) IssueToken(userID ID) (SessionToken, error) {
	if i.ReturnError {
		return "", fmt.Errorf("could not issue session token for user %s", userID)
	}
	i.lock.Lock()
	defer i.lock.Unlock()
	i.Issued = append(i.Issued, userID)
	return SessionToken("session-" + string(userID)), nil
}

func (i *FakeSessionTokenIssuer) VerifyToken(token SessionToken) (ID, error) {
	const prefix = "session-"
	raw := string(token)
	if len(raw) <= len(prefix) || raw[:len(prefix)] != prefix {
		return "", ErrInvalidSessionToken
	}
	return ID(raw[len(prefix):]), nil
}

type FakePasswordResetTokenGenerator struct {
	Tokens      []PasswordResetToken
	ReturnError bool
	generated   int
	lock        sync.Mutex
}

// NewFakePasswordResetTokenGenerator returns the given tokens in order and
// then keeps returning the last one.
func NewFakePasswordResetTokenGenerator(tokens ...string) *FakePasswordResetTokenGenerator {
	g := &FakePasswordResetTokenGenerator{}
	for _, t := range tokens {
		g.Tokens = append(g.Tokens, PasswordResetToken(t))
	}
	return g
}

func (g *FakePasswordResetTokenGenerator) GeneratePasswordResetToken() (PasswordResetToken, error) {
	if g.ReturnError || len(g.Tokens) == 0 {
		return "", fmt.Errorf("could not generate password reset token")
	}
	g.lock.Lock()
	defer g.lock.Unlock()
	ix := g.generated
	if ix >= len(g.Tokens) {
		ix = len(g.Tokens) - 1
	}
	g.generated++
	return g.Tokens[ix], nil
}

type FakePasswordResetSender struct {
	SentTo      []c.Email
	SentURLs    []url.URL
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetSender() *FakePasswordResetSender {
	return &FakePasswordResetSender{}
}

func (s *FakePasswordResetSender) SendPasswordResetURL(ctx context.Context, to c.Email, resetURL url.URL) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password reset email to %s", to)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.SentTo = append(s.SentTo, to)
	s.SentURLs = append(s.SentURLs, resetURL)
	return nil
}

func (s *FakePasswordResetSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.SentTo)
}

func (s *FakePasswordResetSender) LastSentURL() url.URL {
	s.lock.Lock()
	defer s.lock.Unlock()
	l := len(s.SentURLs)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.SentURLs[l-1]
}

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	Now         func() time.Time
	lastID      int
	lock        sync.Mutex
}

func NewFakeUserRepository(now func() time.Time) *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10), Now: now}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Users {
		if existing.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		if existing.Username == input.Username {
			return u, ErrUsernameAlreadyExists
		}
	}
	r.lastID++
	now := r.Now()
	u = User{
		ID:           ID(strconv.Itoa(r.lastID)),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		Avatar:       input.Avatar,
		Wishlist:     []MovieID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.Users = append(r.Users, u)
	return copyUser(u), nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user %s", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	ix := r.indexBy(func(u User) bool { return u.ID == id })
	if ix < 0 {
		return u, ErrUserDoesNotExist
	}
	return copyUser(r.Users[ix]), nil
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by email %s", email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	ix := r.indexBy(func(u User) bool { return u.Email == email })
	if ix < 0 {
		return u, ErrUserDoesNotExist
	}
	return copyUser(r.Users[ix]), nil
}

func (r *FakeUserRepository) GetByPasswordResetToken(ctx context.Context, token PasswordResetToken) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by password reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	ix := r.indexBy(func(u User) bool {
		return u.PasswordReset.IsPresent && u.PasswordReset.Value.Token == token
	})
	if ix < 0 {
		return u, ErrUserDoesNotExist
	}
	return copyUser(r.Users[ix]), nil
}

func (r *FakeUserRepository) Update(ctx context.Context, input UpdateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not update user %s", input.ID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	ix := r.indexBy(func(u User) bool { return u.ID == input.ID })
	if ix < 0 {
		return u, ErrUserDoesNotExist
	}
	if input.DoUsernameUpdate {
		for _, other := range r.Users {
			if other.ID != input.ID && other.Username == input.Username {
				return u, ErrUsernameAlreadyExists
			}
		}
		r.Users[ix].Username = input.Username
	}
	if input.DoAvatarUpdate {
		r.Users[ix].Avatar = input.Avatar
	}
	if input.DoPasswordHashUpdate {
		r.Users[ix].PasswordHash = input.PasswordHash
	}
	if input.DoPasswordResetUpdate {
		r.Users[ix].PasswordReset = input.PasswordReset
	}
	r.Users[ix].UpdatedAt = r.Now()
	return copyUser(r.Users[ix]), nil
}

func (r *FakeUserRepository) AddToWishlist(ctx context.Context, id ID, movieID MovieID) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not add %s to wishlist of user %s", movieID, id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	ix := r.indexBy(func(u User) bool { return u.ID == id })
	if ix < 0 {
		return u, ErrUserDoesNotExist
	}
	if !r.Users[ix].HasInWishlist(movieID) {
		r.Users[ix].Wishlist = append(r.Users[ix].Wishlist, movieID)
	}
	r.Users[ix].UpdatedAt = r.Now()
	return copyUser(r.Users[ix]), nil
}

func (r *FakeUserRepository) RemoveFromWishlist(ctx context.Context, id ID, movieID MovieID) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not remove %s from wishlist of user %s", movieID, id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	ix := r.indexBy(func(u User) bool { return u.ID == id })
	if ix < 0 {
		return u, ErrUserDoesNotExist
	}
	wishlist := make([]MovieID, 0, len(r.Users[ix].Wishlist))
	for _, m := range r.Users[ix].Wishlist {
		if m != movieID {
			wishlist = append(wishlist, m)
		}
	}
	r.Users[ix].Wishlist = wishlist
	r.Users[ix].UpdatedAt = r.Now()
	return copyUser(r.Users[ix]), nil
}

func (r *FakeUserRepository) ConsumePasswordResetToken(
	ctx context.Context,
	input ConsumePasswordResetTokenInput,
) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not consume password reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	ix := r.indexBy(func(u User) bool {
		return u.PasswordReset.IsPresent &&
			u.PasswordReset.Value.Token == input.Token &&
			!u.PasswordReset.Value.IsExpiredAt(input.ValidAt)
	})
	if ix < 0 {
		return u, ErrInvalidPasswordResetToken
	}
	r.Users[ix].PasswordHash = input.PasswordHash
	r.Users[ix].PasswordReset = c.None[PasswordReset]()
	r.Users[ix].UpdatedAt = r.Now()
	return copyUser(r.Users[ix]), nil
}

func (r *FakeUserRepository) indexBy(match func(u User) bool) int {
	for ix, u := range r.Users {
		if match(u) {
			return ix
		}
	}
	return -1
}

func copyUser(u User) User {
	wishlist := make([]MovieID, len(u.Wishlist))
	copy(wishlist, u.Wishlist)
	u.Wishlist = wishlist
	return u
}
