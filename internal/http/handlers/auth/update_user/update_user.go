package updateuser

import (
	"encoding/json"
	"io"
	"net/http"
	e "yeonghwa/internal/core/domain/errors"
	"yeonghwa/internal/core/domain/user"
	"yeonghwa/internal/core/services"
	service "yeonghwa/internal/core/services/update_user"
	"yeonghwa/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

// Input fields left empty are not updated.
type Input struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Username, validation.Length(0, 64)),
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
		service.Input{
			UserID:   user.ID(chi.URLParam(r, "id")),
			Username: user.Username(input.Username),
			Avatar:   user.Avatar(input.Avatar),
		},
	)
	if err != nil {
		// Unknown users and conflicts are not told apart on this route.
		response.RenderError(rw, "Update failed", http.StatusInternalServerError)
		return
	}

	response.Render(rw, response.NewUserResponse(result.User), http.StatusOK)
}
