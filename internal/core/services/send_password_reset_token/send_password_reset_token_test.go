package sendpasswordresettoken

import (
	"context"
	"net/url"
	"testing"
	"time"
	c "yeonghwa/internal/core/domain/common"
	"yeonghwa/internal/core/domain/logging"
	"yeonghwa/internal/core/domain/user"
	"yeonghwa/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const EMAIL = c.Email("ana@x.com")

var NOW time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UserRepository *user.FakeUserRepository
	TokenGenerator *user.FakePasswordResetTokenGenerator
	Sender         *user.FakePasswordResetSender
	Service        services.Service[Input, Result]
	User           user.User
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository(func() time.Time { return NOW })
	suite.TokenGenerator = user.NewFakePasswordResetTokenGenerator("token-1", "token-2")
	suite.Sender = user.NewFakePasswordResetSender()
	baseURL, err := url.Parse("https://yeonghwa.test/reset-password")
	suite.Require().Nil(err)
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		suite.TokenGenerator,
		suite.Sender,
		*baseURL,
		func() time.Time { return NOW },
	)

	u, err := suite.UserRepository.Create(context.Background(), user.CreateUserInput{
		Username:     "ana",
		Email:        EMAIL,
		PasswordHash: "hash",
	})
	suite.Require().Nil(err)
	suite.User = u
}

func TestSendPasswordResetTokenService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	result, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(user.PasswordResetToken("token-1"), result.Token)
	assert.Equal(NOW.Add(time.Hour), result.ExpiresAt)

	u, err := suite.UserRepository.GetByID(context.Background(), suite.User.ID)
	assert.Nil(err)
	assert.True(u.PasswordReset.IsPresent)
	assert.Equal(user.PasswordResetToken("token-1"), u.PasswordReset.Value.Token)
	assert.Equal(NOW.Add(3600*time.Second), u.PasswordReset.Value.ExpiresAt)

	assert.Equal(1, suite.Sender.SentCount())
	assert.Equal([]c.Email{EMAIL}, suite.Sender.SentTo)
	sentURL := suite.Sender.LastSentURL()
	assert.Equal("https://yeonghwa.test/reset-password/token-1", sentURL.String())
}

func (suite *testSuite) TestNewRequestOverwritesToken() {
	ctx := context.Background()
	_, err := suite.Service.Run(ctx, Input{Email: EMAIL})
	suite.Require().Nil(err)
	_, err = suite.Service.Run(ctx, Input{Email: EMAIL})
	suite.Require().Nil(err)

	u, err := suite.UserRepository.GetByID(ctx, suite.User.ID)
	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(user.PasswordResetToken("token-2"), u.PasswordReset.Value.Token)

	_, err = suite.UserRepository.GetByPasswordResetToken(ctx, "token-1")
	assert.ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestUserDoesNotExist() {
	_, err := suite.Service.Run(context.Background(), Input{Email: "bob@x.com"})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrUserDoesNotExist)
	assert.Equal(0, suite.Sender.SentCount())
}

func (suite *testSuite) TestSendingFailureKeepsToken() {
	suite.Sender.ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrPasswordResetNotSent)

	u, err := suite.UserRepository.GetByID(context.Background(), suite.User.ID)
	assert.Nil(err)
	assert.True(u.PasswordReset.IsPresent)
	assert.Equal(user.PasswordResetToken("token-1"), u.PasswordReset.Value.Token)
}

func (suite *testSuite) TestTokenGeneratorError() {
	suite.TokenGenerator.ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.Error(err)
	assert.NotErrorIs(err, user.ErrPasswordResetNotSent)
	assert.Equal(0, suite.Sender.SentCount())

	u, err := suite.UserRepository.GetByID(context.Background(), suite.User.ID)
	assert.Nil(err)
	assert.False(u.PasswordReset.IsPresent)
}
