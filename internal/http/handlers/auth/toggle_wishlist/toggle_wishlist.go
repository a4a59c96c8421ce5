package togglewishlist

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	e "yeonghwa/internal/core/domain/errors"
	"yeonghwa/internal/core/domain/user"
	"yeonghwa/internal/core/services"
	service "yeonghwa/internal/core/services/toggle_wishlist"
	"yeonghwa/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	MessageAdded   = "Added to wishlist"
	MessageRemoved = "Removed from wishlist"
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

// MovieID accepts both JSON strings and JSON numbers.
type MovieID string

func (m *MovieID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = MovieID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("movieId must be a string or a number")
	}
	*m = MovieID(n.String())
	return nil
}

type Input struct {
	MovieID MovieID `json:"movieId"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.MovieID, validation.Required, validation.Length(1, 128)),
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
			UserID:  user.ID(chi.URLParam(r, "id")),
			MovieID: user.MovieID(input.MovieID),
		},
	)
	if err != nil {
		response.RenderError(rw, "Wishlist update failed", http.StatusInternalServerError)
		return
	}

	msg := MessageAdded
	if result.Action == service.Removed {
		msg = MessageRemoved
	}
	response.Render(rw, msg, http.StatusOK)
}
