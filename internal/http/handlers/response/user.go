package response

import (
	"time"
	"yeonghwa/internal/core/domain/user"
)

// User is the public view of a user. It never carries the password hash or
// the password reset fields.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	Wishlist  []string  `json:"wishlist"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = string(du.ID)
	u.Username = string(du.Username)
	u.Email = string(du.Email)
	u.Avatar = string(du.Avatar)
	u.Wishlist = make([]string, 0, len(du.Wishlist))
	for _, movieID := range du.Wishlist {
		u.Wishlist = append(u.Wishlist, string(movieID))
	}
	u.CreatedAt = du.CreatedAt
	u.UpdatedAt = du.UpdatedAt
}

type UserResponse struct {
	Success bool `json:"success"`
	User    User `json:"user"`
}

func NewUserResponse(du user.User) UserResponse {
	u := User{}
	u.FromDomainUser(du)
	return UserResponse{Success: true, User: u}
}
