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

	"github.com/birthdaykeeper/birthday-api/internal/core/domain"
)

const friendsCollection = "friends"

type FriendRepository struct {
	coll *mongo.Collection
}

func NewFriendRepository(db *mongo.Database) *FriendRepository {
	return &FriendRepository{coll: db.Collection(friendsCollection)}
}

type mongoFriend struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID     primitive.ObjectID `bson:"owner_id"`
	Firstname   string             `bson:"firstname"`
	Lastname    string             `bson:"lastname"`
	Nickname    string             `bson:"nickname,omitempty"`
	DateOfBirth time.Time          `bson:"date_of_birth"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (r *FriendRepository) Create(ctx context.Context, friend *domain.Friend) (*domain.Friend, error) {
	ownerID, err := primitive.ObjectIDFromHex(friend.OwnerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoFriend{
		OwnerID:     ownerID,
		Firstname:   friend.Firstname,
		Lastname:    friend.Lastname,
		Nickname:    friend.Nickname,
		DateOfBirth: friend.DateOfBirth.UTC(),
		CreatedAt:   now.Unix(),
		UpdatedAt:   now.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrFriendExists
		}
		return nil, fmt.Errorf("insert friend: %w", err)
	}

	created := *friend
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	created.CreatedAt = now
	created.UpdatedAt = now
	return &created, nil
}

func (r *FriendRepository) FindByID(ctx context.Context, id string) (*domain.Friend, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFriendNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mf mongoFriend
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mf); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFriendNotFound
		}
		return nil, fmt.Errorf("find friend: %w", err)
	}
	return mf.toDomain(), nil
}

func (r *FriendRepository) FindByOwner(ctx context.Context, ownerID string) ([]domain.Friend, error) {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": oid},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	return decodeFriends(ctx, cursor)
}

func (r *FriendRepository) FindPageByOwner(ctx context.Context, ownerID string, page, size int) ([]domain.Friend, int64, error) {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, 0, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"owner_id": oid}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count friends: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(page) * int64(size)).
		SetLimit(int64(size))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list friends: %w", err)
	}

	friends, err := decodeFriends(ctx, cursor)
	if err != nil {
		return nil, 0, err
	}
	return friends, total, nil
}

func (r *FriendRepository) FindByName(ctx context.Context, ownerID, firstname, lastname string) (*domain.Friend, error) {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrFriendNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"owner_id": oid, "firstname": firstname, "lastname": lastname}
	var mf mongoFriend
	if err := r.coll.FindOne(ctx, filter).Decode(&mf); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFriendNotFound
		}
		return nil, fmt.Errorf("find friend by name: %w", err)
	}
	return mf.toDomain(), nil
}

func (r *FriendRepository) Update(ctx context.Context, friend *domain.Friend) (*domain.Friend, error) {
	oid, err := primitive.ObjectIDFromHex(friend.ID)
	if err != nil {
		return nil, domain.ErrFriendNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"firstname":     friend.Firstname,
		"lastname":      friend.Lastname,
		"nickname":      friend.Nickname,
		"date_of_birth": friend.DateOfBirth.UTC(),
		"updated_at":    now.Unix(),
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrFriendExists
		}
		return nil, fmt.Errorf("update friend: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrFriendNotFound
	}

	updated := *friend
	updated.UpdatedAt = now
	return &updated, nil
}

func (r *FriendRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrFriendNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete friend: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFriendNotFound
	}
	return nil
}

func (r *FriendRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"owner_id": oid}); err != nil {
		return fmt.Errorf("delete friends of owner: %w", err)
	}
	return nil
}

// EnsureIndexes creates the owner index and the per-owner name uniqueness
// index.
func (r *FriendRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{
			Keys: bson.D{
				{Key: "owner_id", Value: 1},
				{Key: "firstname", Value: 1},
				{Key: "lastname", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (mf *mongoFriend) toDomain() *domain.Friend {
	return &domain.Friend{
		ID:          mf.ID.Hex(),
		OwnerID:     mf.OwnerID.Hex(),
		Firstname:   mf.Firstname,
		Lastname:    mf.Lastname,
		Nickname:    mf.Nickname,
		DateOfBirth: mf.DateOfBirth.UTC(),
		CreatedAt:   unixToTime(mf.CreatedAt),
		UpdatedAt:   unixToTime(mf.UpdatedAt),
	}
}

func decodeFriends(ctx context.Context, cursor *mongo.Cursor) ([]domain.Friend, error) {
	defer cursor.Close(ctx)

	var friends []domain.Friend
	for cursor.Next(ctx) {
		var mf mongoFriend
		if err := cursor.Decode(&mf); err != nil {
			return nil, fmt.Errorf("decode friend: %w", err)
		}
		friends = append(friends, *mf.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate friends: %w", err)
	}
	return friends, nil
}
