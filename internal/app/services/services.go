package services

import (
	"yeonghwa/internal/app/deps"
	"yeonghwa/internal/core/services"
	"yeonghwa/internal/core/services/auth"
	getuserbysessiontoken "yeonghwa/internal/core/services/get_user_by_session_token"
	loginwithemail "yeonghwa/internal/core/services/log_in_with_email"
	resetpassword "yeonghwa/internal/core/services/reset_password"
	sendpasswordresettoken "yeonghwa/internal/core/services/send_password_reset_token"
	signupwithemail "yeonghwa/internal/core/services/sign_up_with_email"
	togglewishlist "yeonghwa/internal/core/services/toggle_wishlist"
	updateuser "yeonghwa/internal/core/services/update_user"
)

type Services struct {
	SignUpWithEmail        services.Service[signupwithemail.Input, signupwithemail.Result]
	LogInWithEmail         services.Service[loginwithemail.Input, loginwithemail.Result]
	UpdateUser             services.Service[updateuser.Input, updateuser.Result]
	ToggleWishlist         services.Service[togglewishlist.Input, togglewishlist.Result]
	SendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]
	GetUserBySessionToken  services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUpWithEmail = signupwithemail.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
	)
	s.LogInWithEmail = loginwithemail.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.SessionTokenIssuer,
	)
	s.UpdateUser = updateuser.New(
		deps.Logger,
		deps.UserRepository,
	)
	s.ToggleWishlist = togglewishlist.New(
		deps.Logger,
		deps.UserRepository,
	)
	s.SendPasswordResetToken = sendpasswordresettoken.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordResetTokenGenerator,
		deps.PasswordResetSender,
		deps.Config.PasswordResetBaseURL(),
		deps.Now,
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.Now,
	)
	s.GetUserBySessionToken = auth.WithAuthentication(
		deps.Logger,
		deps.SessionTokenVerifier,
		deps.UserRepository,
		getuserbysessiontoken.New(),
	)

	return s
}
