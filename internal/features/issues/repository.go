package issues

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound  = errors.New("issue not found")
	ErrInvalidID = errors.New("invalid issue ID")
)

// Store is the persistence surface the handlers depend on.
type Store interface {
	Create(ctx context.Context, issue *Issue) error
	GetByID(ctx context.Context, id string) (*Issue, error)
	List(ctx context.Context, q ListQuery) ([]Issue, error)
	Upvote(ctx context.Context, id, userID string) (int64, error)
	Analytics(ctx context.Context) (*Analytics, error)
}

type Repository struct {
	issues *mongo.Collection
	votes  *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	issues := db.Collection("issues")
	votes := db.Collection("votes")

	// Create indexes
	issues.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "ward", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	votes.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "issue", Value: 1}, {Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &Repository{issues: issues, votes: votes}
}

func (r *Repository) Create(ctx context.Context, issue *Issue) error {
	now := time.Now()
	issue.CreatedAt = now
	issue.UpdatedAt = now
	if issue.Status == "" {
		issue.Status = StatusOpen
	}
	if issue.Priority == "" {
		issue.Priority = PriorityMedium
	}
	issue.Upvotes = 0

	result, err := r.issues.InsertOne(ctx, issue)
	if err != nil {
		return err
	}

	issue.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Issue, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var issue Issue
	err = r.issues.FindOne(ctx, bson.M{"_id": objectID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &issue, nil
}

func (r *Repository) List(ctx context.Context, q ListQuery) ([]Issue, error) {
	filter := bson.M{}
	if q.Ward != "" {
		filter["ward"] = q.Ward
	}
	if q.Status != "" && q.Status != "all" {
		filter["status"] = q.Status
	}

	sort := bson.D{{Key: "createdAt", Value: -1}}
	if q.Sort == "oldest" {
		sort = bson.D{{Key: "createdAt", Value: 1}}
	}

	opts := options.Find().SetSort(sort)
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
		if q.Page > 1 {
			opts.SetSkip(int64((q.Page - 1) * q.Limit))
		}
	}

	cursor, err := r.issues.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []Issue
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	if items == nil {
		items = []Issue{}
	}
	return items, nil
}

// Upvote records the user's vote and returns the authoritative count. A
// repeated upvote by the same user does not increment; it returns the current
// count unchanged.
func (r *Repository) Upvote(ctx context.Context, id, userID string) (int64, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrInvalidID
	}

	var issue Issue
	if err := r.issues.FindOne(ctx, bson.M{"_id": objectID}).Decode(&issue); err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, ErrNotFound
		}
		return 0, err
	}

	_, err = r.votes.InsertOne(ctx, Vote{
		Issue:     objectID,
		User:      userID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return issue.Upvotes, nil
		}
		return 0, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated Issue
	err = r.issues.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$inc": bson.M{"upvotes": 1}, "$set": bson.M{"updatedAt": time.Now()}},
		opts,
	).Decode(&updated)
	if err != nil {
		return 0, err
	}

	return updated.Upvotes, nil
}

func (r *Repository) Analytics(ctx context.Context) (*Analytics, error) {
	total, err := r.issues.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	open, err := r.issues.CountDocuments(ctx, bson.M{
		"status": bson.M{"$in": []IssueStatus{StatusOpen, StatusAssigned, StatusInProgress}},
	})
	if err != nil {
		return nil, err
	}

	resolved, err := r.issues.CountDocuments(ctx, bson.M{
		"status": bson.M{"$in": []IssueStatus{StatusResolved, StatusClosed}},
	})
	if err != nil {
		return nil, err
	}

	return &Analytics{Total: total, Open: open, Resolved: resolved}, nil
}
