package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cartloom/admin-api/internal/core/domain"
)

const usersCollection = "users"

// UserRepository implements ports.UserRepository on MongoDB.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// mongoUser keeps the bson mapping out of the domain type; the password hash
// is stored under "password" to match the collection's historical shape.
type mongoUser struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Email          string             `bson:"email,omitempty"`
	Phone          string             `bson:"phone,omitempty"`
	Password       string             `bson:"password"`
	Roles          string             `bson:"roles"`
	FirebaseUID    string             `bson:"firebase_uid,omitempty"`
	ProfilePicture string             `bson:"profile_picture,omitempty"`
	EmailVerified  bool               `bson:"email_verified"`
	Provider       string             `bson:"provider,omitempty"`
	LastLogin      time.Time          `bson:"last_login"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:             mu.ID.Hex(),
		Name:           mu.Name,
		Email:          mu.Email,
		Phone:          mu.Phone,
		PasswordHash:   mu.Password,
		Role:           mu.Roles,
		FirebaseUID:    mu.FirebaseUID,
		ProfilePicture: mu.ProfilePicture,
		EmailVerified:  mu.EmailVerified,
		Provider:       mu.Provider,
		LastLogin:      mu.LastLogin,
		CreatedAt:      mu.CreatedAt,
		UpdatedAt:      mu.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		Name:           user.Name,
		Email:          user.Email,
		Phone:          user.Phone,
		Password:       user.PasswordHash,
		Roles:          user.Role,
		FirebaseUID:    user.FirebaseUID,
		ProfilePicture: user.ProfilePicture,
		EmailVerified:  user.EmailVerified,
		Provider:       user.Provider,
		LastLogin:      user.LastLogin,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		// Concurrent registrations with the same identity lose the race at
		// the unique index and land here.
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByIdentity(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	if identity.IsZero() {
		return nil, domain.ErrUserNotFound
	}
	field := "phone"
	if identity.IsEmail() {
		field = "email"
	}
	return r.findOne(ctx, bson.M{field: identity.Value()})
}

func (r *UserRepository) FindByFederatedID(ctx context.Context, firebaseUID, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"firebase_uid": firebaseUID},
		bson.M{"email": email},
	}})
}

func (r *UserRepository) SyncFederated(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	set := bson.M{
		"email_verified": user.EmailVerified,
		"last_login":     user.LastLogin,
		"updated_at":     user.UpdatedAt,
	}
	if user.FirebaseUID != "" {
		set["firebase_uid"] = user.FirebaseUID
	}
	if user.ProfilePicture != "" {
		set["profile_picture"] = user.ProfilePicture
	}
	if user.Phone != "" {
		set["phone"] = user.Phone
	}
	if user.Provider != "" {
		set["provider"] = user.Provider
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("sync federated user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}
	_, err = r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"last_login": at}})
	return err
}

// UpdateRole writes the role field directly. This is the documented exception
// to role immutability; no other code path touches "roles".
func (r *UserRepository) UpdateRole(ctx context.Context, id, role string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"roles":      role,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

// EnsureIndexes creates the unique identity indexes. Sparse keeps uniqueness
// from firing on documents that omit the optional fields.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "firebase_uid", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
