package signupwithemail

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "yeonghwa/internal/core/domain/common"
	e "yeonghwa/internal/core/domain/errors"
	"yeonghwa/internal/core/domain/user"
	"yeonghwa/internal/core/services"
	signupwithemail "yeonghwa/internal/core/services/sign_up_with_email"
	"yeonghwa/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[signupwithemail.Input, signupwithemail.Result]
}

func New(
	service services.Service[signupwithemail.Input, signupwithemail.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Username, validation.Required, validation.Length(1, 64)),
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Required, validation.Length(1, 256)),
		validation.Field(&i.Avatar, validation.Length(0, 2048)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidRequest(rw)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderValidationError(rw, err)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		signupwithemail.Input{
			Username: user.Username(input.Username),
			Email:    c.NewEmail(input.Email),
			Password: user.RawPassword(input.Password),
			Avatar:   user.Avatar(input.Avatar),
		},
	)
	switch {
	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.RenderError(rw, "User already exists", http.StatusBadRequest)
		return
	case errors.Is(err, user.ErrUsernameAlreadyExists):
		response.RenderError(rw, "Username already exists", http.StatusBadRequest)
		return
	case errors.Is(err, user.ErrUserAlreadyExists):
		response.RenderError(rw, "User already exists", http.StatusBadRequest)
		return
	case errors.Is(err, user.ErrInvalidPassword):
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, response.NewUserResponse(result.User), http.StatusCreated)
}
