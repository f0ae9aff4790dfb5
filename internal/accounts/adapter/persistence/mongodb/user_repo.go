package mongodb

import (
	"context"
	"errors"
	"time"

	"memberhub/internal/accounts/domain/model"
	"memberhub/internal/accounts/usecase"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepository implements the UserRepository interface using MongoDB
type MongoUserRepository struct {
	db              *mongo.Database
	usersCollection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoDB user repository and ensures
// the unique email index that bounds the duplicate-signup race.
func NewMongoUserRepository(db *mongo.Database) (*MongoUserRepository, error) {
	repo := &MongoUserRepository{
		db:              db,
		usersCollection: db.Collection("users"),
	}

	ctx := context.Background()

	emailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	if _, err := repo.usersCollection.Indexes().CreateOne(ctx, emailIndex); err != nil {
		return nil, err
	}

	return repo, nil
}

// Create inserts a new user in the directory
func (r *MongoUserRepository) Create(ctx context.Context, user *model.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	result, err := r.usersCollection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrEmailTaken
		}
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ObjectID = oid
	}

	return nil
}

// FindByEmail retrieves a user by email
func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		return nil, errors.New("email cannot be empty")
	}

	var user model.User
	err := r.usersCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// SetAdmin flips the admin flag for the given email. A missing email
// matches zero documents and stays a no-op.
func (r *MongoUserRepository) SetAdmin(ctx context.Context, email string, admin bool) error {
	if email == "" {
		return errors.New("email cannot be empty")
	}

	_, err := r.usersCollection.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{
			"admin":      admin,
			"updated_at": time.Now(),
		}},
	)
	return err
}

// List returns all users ordered by email
func (r *MongoUserRepository) List(ctx context.Context) ([]model.User, error) {
	cursor, err := r.usersCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "email", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	return users, nil
}
