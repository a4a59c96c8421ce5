package me

import (
	"errors"
	"net/http"
	e "yeonghwa/internal/core/domain/errors"
	"yeonghwa/internal/core/domain/user"
	"yeonghwa/internal/core/services"
	service "yeonghwa/internal/core/services/get_user_by_session_token"
	"yeonghwa/internal/http/handlers/response"
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

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(
		r.Context(),
		service.Input{},
	)
	if errors.Is(err, user.ErrInvalidSessionToken) {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, response.NewUserResponse(result.User), http.StatusOK)
}
