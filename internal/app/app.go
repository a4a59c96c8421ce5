package app

import (
	"fmt"
	"net/http"
	"yeonghwa/internal/app/deps"
	"yeonghwa/internal/app/services"
	"yeonghwa/internal/config"
	"yeonghwa/internal/http/handlers/auth"
	loginwithemail "yeonghwa/internal/http/handlers/auth/log_in_with_email"
	"yeonghwa/internal/http/handlers/auth/me"
	resetpassword "yeonghwa/internal/http/handlers/auth/reset_password"
	sendpasswordresettoken "yeonghwa/internal/http/handlers/auth/send_password_reset_token"
	signupwithemail "yeonghwa/internal/http/handlers/auth/sign_up_with_email"
	togglewishlist "yeonghwa/internal/http/handlers/auth/toggle_wishlist"
	updateuser "yeonghwa/internal/http/handlers/auth/update_user"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: NewRouter(deps.Config, s),
		Addr:    address,
	}
}

func NewRouter(cfg *config.Config, s *services.Services) http.Handler {
	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/signup", signupwithemail.New(s.SignUpWithEmail))
	authRouter.Method(http.MethodPost, "/login", loginwithemail.New(s.LogInWithEmail))
	authRouter.Method(http.MethodPut, "/update/{id}", updateuser.New(s.UpdateUser))
	authRouter.Method(http.MethodPut, "/wishlist/{id}", togglewishlist.New(s.ToggleWishlist))
	authRouter.Method(
		http.MethodPost,
		"/forgot-password",
		sendpasswordresettoken.New(s.SendPasswordResetToken),
	)
	authRouter.Method(http.MethodPost, "/reset-password/{token}", resetpassword.New(s.ResetPassword))
	authRouter.With(auth.SetAuthTokenToContext).Method(
		http.MethodGet,
		"/me",
		me.New(s.GetUserBySessionToken),
	)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/api/auth", authRouter)

	return router
}
