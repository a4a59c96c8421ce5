package user

import (
	"context"
	"errors"
	"strings"
	"time"
	c "yeonghwa/internal/core/domain/common"
	e "yeonghwa/internal/core/domain/errors"
	"yeonghwa/internal/core/domain/user"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	COLLECTION           = "users"
	EMAIL_INDEX_NAME     = "email_1"
	USERNAME_INDEX_NAME  = "username_1"
	RESET_TOKEN_INDEX    = "resetPasswordToken_1"
	DUPLICATE_INDEX_HINT = "index: "
)

type document struct {
	ID                   bson.ObjectID `bson:"_id,omitempty"`
	Username             string        `bson:"username"`
	Email                string        `bson:"email"`
	Password             string        `bson:"password"`
	Avatar               string        `bson:"avatar"`
	Wishlist             []string      `bson:"wishlist"`
	ResetPasswordToken   *string       `bson:"resetPasswordToken,omitempty"`
	ResetPasswordExpires *time.Time    `bson:"resetPasswordExpires,omitempty"`
	CreatedAt            time.Time     `bson:"createdAt"`
	UpdatedAt            time.Time     `bson:"updatedAt"`
}

type MongoUserRepository struct {
	users *mongo.Collection
	now   func() time.Time
}

func NewMongoRepository(database *mongo.Database, now func() time.Time) *MongoUserRepository {
	if database == nil {
		panic(e.NewNilArgumentError("database"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &MongoUserRepository{users: database.Collection(COLLECTION), now: now}
}

// EnsureIndexes creates the unique indexes the repository relies on for
// conflict detection. It is idempotent.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(EMAIL_INDEX_NAME).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName(USERNAME_INDEX_NAME).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "resetPasswordToken", Value: 1}},
			Options: options.Index().SetName(RESET_TOKEN_INDEX).SetSparse(true),
		},
	})
	return err
}

func (r *MongoUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	now := r.now().Truncate(time.Millisecond)
	doc := document{
		ID:        bson.NewObjectID(),
		Username:  string(input.Username),
		Email:     string(input.Email),
		Password:  string(input.PasswordHash),
		Avatar:    string(input.Avatar),
		Wishlist:  []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = r.users.InsertOne(ctx, doc)
	if err != nil {
		return u, mapWriteError(err)
	}
	return decodeUser(doc)
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	oid, err := parseID(id)
	if err != nil {
		return u, err
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: string(email)}})
}

func (r *MongoUserRepository) GetByPasswordResetToken(
	ctx context.Context,
	token user.PasswordResetToken,
) (u user.User, err error) {
	if token == "" {
		return u, user.ErrUserDoesNotExist
	}
	return r.findOne(ctx, bson.D{{Key: "resetPasswordToken", Value: string(token)}})
}

func (r *MongoUserRepository) Update(ctx context.Context, input user.UpdateUserInput) (u user.User, err error) {
	oid, err := parseID(input.ID)
	if err != nil {
		return u, err
	}
	set := bson.D{{Key: "updatedAt", Value: r.now()}}
	unset := bson.D{}
	if input.DoUsernameUpdate {
		set = append(set, bson.E{Key: "username", Value: string(input.Username)})
	}
	if input.DoAvatarUpdate {
		set = append(set, bson.E{Key: "avatar", Value: string(input.Avatar)})
	}
	if input.DoPasswordHashUpdate {
		set = append(set, bson.E{Key: "password", Value: string(input.PasswordHash)})
	}
	if input.DoPasswordResetUpdate {
		if input.PasswordReset.IsPresent {
			set = append(
				set,
				bson.E{Key: "resetPasswordToken", Value: string(input.PasswordReset.Value.Token)},
				bson.E{Key: "resetPasswordExpires", Value: input.PasswordReset.Value.ExpiresAt},
			)
		} else {
			unset = append(
				unset,
				bson.E{Key: "resetPasswordToken", Value: ""},
				bson.E{Key: "resetPasswordExpires", Value: ""},
			)
		}
	}
	update := bson.D{{Key: "$set", Value: set}}
	if len(unset) > 0 {
		update = append(update, bson.E{Key: "$unset", Value: unset})
	}
	return r.findOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update)
}

func (r *MongoUserRepository) AddToWishlist(ctx context.Context, id user.ID, movieID user.MovieID) (u user.User, err error) {
	oid, err := parseID(id)
	if err != nil {
		return u, err
	}
	return r.findOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{
		{Key: "$addToSet", Value: bson.D{{Key: "wishlist", Value: string(movieID)}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: r.now()}}},
	})
}

func (r *MongoUserRepository) RemoveFromWishlist(ctx context.Context, id user.ID, movieID user.MovieID) (u user.User, err error) {
	oid, err := parseID(id)
	if err != nil {
		return u, err
	}
	return r.findOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{
		{Key: "$pull", Value: bson.D{{Key: "wishlist", Value: string(movieID)}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: r.now()}}},
	})
}

func (r *MongoUserRepository) ConsumePasswordResetToken(
	ctx context.Context,
	input user.ConsumePasswordResetTokenInput,
) (u user.User, err error) {
	if input.Token == "" {
		return u, user.ErrInvalidPasswordResetToken
	}
	filter := bson.D{
		{Key: "resetPasswordToken", Value: string(input.Token)},
		{Key: "resetPasswordExpires", Value: bson.D{{Key: "$gt", Value: input.ValidAt}}},
	}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "password", Value: string(input.PasswordHash)},
			{Key: "updatedAt", Value: r.now()},
		}},
		{Key: "$unset", Value: bson.D{
			{Key: "resetPasswordToken", Value: ""},
			{Key: "resetPasswordExpires", Value: ""},
		}},
	}
	u, err = r.findOneAndUpdate(ctx, filter, update)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return u, user.ErrInvalidPasswordResetToken
	}
	return u, err
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.D) (u user.User, err error) {
	var doc document
	err = r.users.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return decodeUser(doc)
}

func (r *MongoUserRepository) findOneAndUpdate(ctx context.Context, filter bson.D, update bson.D) (u user.User, err error) {
	var doc document
	err = r.users.FindOneAndUpdate(
		ctx,
		filter,
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, mapWriteError(err)
	}
	return decodeUser(doc)
}

func parseID(id user.ID) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(string(id))
	if err != nil {
		return oid, user.ErrUserDoesNotExist
	}
	return oid, nil
}

func mapWriteError(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, DUPLICATE_INDEX_HINT+EMAIL_INDEX_NAME):
		return user.ErrEmailAlreadyExists
	case strings.Contains(msg, DUPLICATE_INDEX_HINT+USERNAME_INDEX_NAME):
		return user.ErrUsernameAlreadyExists
	}
	return user.ErrUserAlreadyExists
}

func decodeUser(doc document) (u user.User, err error) {
	u = user.User{
		ID:           user.ID(doc.ID.Hex()),
		Username:     user.Username(doc.Username),
		Email:        c.Email(doc.Email),
		PasswordHash: user.PasswordHash(doc.Password),
		Avatar:       user.Avatar(doc.Avatar),
		Wishlist:     make([]user.MovieID, 0, len(doc.Wishlist)),
		CreatedAt:    doc.CreatedAt.UTC(),
		UpdatedAt:    doc.UpdatedAt.UTC(),
	}
	for _, movieID := range doc.Wishlist {
		u.Wishlist = append(u.Wishlist, user.MovieID(movieID))
	}
	if doc.ResetPasswordToken != nil && doc.ResetPasswordExpires != nil {
		u.PasswordReset = c.Some(user.PasswordReset{
			Token:     user.PasswordResetToken(*doc.ResetPasswordToken),
			ExpiresAt: doc.ResetPasswordExpires.UTC(),
		})
	}
	if err := u.Validate(); err != nil {
		return u, err
	}
	return u, nil
}
