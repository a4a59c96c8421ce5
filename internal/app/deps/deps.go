package deps

import (
	"context"
	"sync"
	"time"
	"yeonghwa/internal/config"
	dl "yeonghwa/internal/core/domain/logging"
	"yeonghwa/internal/core/domain/user"
	"yeonghwa/internal/db"
	dbuser "yeonghwa/internal/db/user"
	"yeonghwa/internal/implementations/email"
	"yeonghwa/internal/implementations/logging"
	passwordhasher "yeonghwa/internal/implementations/password_hasher"
	randomstringgenerator "yeonghwa/internal/implementations/random_string_generator"
	sessiontoken "yeonghwa/internal/implementations/session_token"
	"yeonghwa/internal/mongodb"
	mongouser "yeonghwa/internal/mongodb/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	Now func() time.Time

	UserRepository user.UserRepository

	PasswordHasher              user.PasswordHasher
	SessionTokenIssuer          user.SessionTokenIssuer
	SessionTokenVerifier        user.SessionTokenVerifier
	PasswordResetTokenGenerator user.PasswordResetTokenGenerator
	PasswordResetSender         user.PasswordResetSender
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	closeLogger := deps.initLogger()

	deps.Now = func() time.Time { return time.Now().UTC() }

	closeStorage := deps.initUserRepository()
	deps.initPasswordResetSender()

	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.BcryptHasherCost, deps.Logger)
	sessionTokens := sessiontoken.NewJWT(deps.Config.Secret, deps.Config.SessionTokenTTL, deps.Now)
	deps.SessionTokenIssuer = sessionTokens
	deps.SessionTokenVerifier = sessionTokens
	deps.PasswordResetTokenGenerator = randomstringgenerator.NewGenerator()

	return deps, func() {
		closeFuncs := []func(){
			closeStorage,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
		closeLogger()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger, err := logging.NewZapLogger(deps.Config.LogLevel)
	if err != nil {
		panic(err)
	}
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initUserRepository() func() {
	switch deps.Config.Storage {
	case config.StoragePostgres:
		return deps.initPgxUserRepository()
	default:
		return deps.initMongoUserRepository()
	}
}

func (deps *Deps) initMongoUserRepository() func() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongodb.Connect(ctx, deps.Config.MongoURI)
	if err != nil {
		deps.Logger.Error(ctx, "Could not connect to MongoDB.", dl.Entry("err", err))
		panic(err)
	}
	repository := mongouser.NewMongoRepository(client.Database(deps.Config.MongoDatabase), deps.Now)
	if err := repository.EnsureIndexes(ctx); err != nil {
		deps.Logger.Error(ctx, "Could not create MongoDB indexes.", dl.Entry("err", err))
		panic(err)
	}
	deps.UserRepository = repository
	deps.Logger.Info(ctx, "MongoDB connected.", dl.Entry("database", deps.Config.MongoDatabase))

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down MongoDB connection.")
		if err := client.Disconnect(context.Background()); err != nil {
			deps.Logger.Error(context.Background(), "Could not disconnect from MongoDB.", dl.Entry("err", err))
		}
		deps.Logger.Info(context.Background(), "MongoDB connection shut down.")
	}
}

func (deps *Deps) initPgxUserRepository() func() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.ApplyMigrations(deps.Config.PostgresqlURL); err != nil {
		deps.Logger.Error(ctx, "Could not apply DB migrations.", dl.Entry("err", err))
		panic(err)
	}
	pool, err := db.Connect(ctx, deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(ctx, "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.UserRepository = dbuser.NewPgxRepository(pool, deps.Now)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		pool.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initPasswordResetSender() {
	cfg := deps.Config
	switch cfg.EmailTransport {
	case config.EmailTransportSES:
		deps.PasswordResetSender = email.NewSESSender(deps.loadAwsConfig(), cfg.EmailSender, deps.Now)
	default:
		deps.PasswordResetSender = email.NewSMTPSender(
			cfg.SMTPHost,
			cfg.SMTPPort,
			cfg.SMTPUser,
			cfg.SMTPPassword,
			cfg.EmailSender,
			deps.Now,
		)
	}
}

func (deps *Deps) loadAwsConfig() aws.Config {
	options := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithRegion(deps.Config.AwsRegion),
		// Email failures are reported once.
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(retry.NewStandard(), 1)
		}),
	}
	if deps.Config.AwsAccessKey != "" {
		options = append(options, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		))
	}

	cfg, err := awsConfig.LoadDefaultConfig(context.Background(), options...)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not load AWS config.", dl.Entry("err", err))
		panic(err)
	}
	return cfg
}
