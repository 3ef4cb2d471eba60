package issues

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueStatus enum. "open" is the initial state; assignment and progress are
// driven by an external moderation process.
type IssueStatus string

const (
	StatusOpen       IssueStatus = "open"
	StatusAssigned   IssueStatus = "assigned"
	StatusInProgress IssueStatus = "in_progress"
	StatusResolved   IssueStatus = "resolved"
	StatusClosed     IssueStatus = "closed"
)

// IssuePriority enum
type IssuePriority string

const (
	PriorityLow    IssuePriority = "low"
	PriorityMedium IssuePriority = "medium"
	PriorityHigh   IssuePriority = "high"
)

// Issue is a citizen-submitted civic complaint.
// @Description Civic issue record with location, status and upvote count
type Issue struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id" example:"507f1f77bcf86cd799439011"`
	Title       string             `bson:"title" json:"title" example:"Overflowing Garbage Bin"`
	Description string             `bson:"description" json:"description" example:"Garbage bin at 4th street is overflowing for 2 days."`
	Category    string             `bson:"category" json:"category" example:"garbage"`
	Lat         *float64           `bson:"lat,omitempty" json:"lat,omitempty" example:"13.0827"`
	Lng         *float64           `bson:"lng,omitempty" json:"lng,omitempty" example:"80.2707"`
	PhotoURL    string             `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	Status      IssueStatus        `bson:"status" json:"status" example:"open" enums:"open,assigned,in_progress,resolved,closed"`
	Priority    IssuePriority      `bson:"priority" json:"priority" example:"medium" enums:"low,medium,high"`
	Upvotes     int64              `bson:"upvotes" json:"upvotes" example:"0"`
	Ward        string             `bson:"ward,omitempty" json:"ward,omitempty" example:"anna-nagar"`
	ReporterID  string             `bson:"reporterId,omitempty" json:"reporterId,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Vote records one user's upvote on one issue. A unique compound index on
// (issue, user) keeps upvotes at most-once per user.
type Vote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Issue     primitive.ObjectID `bson:"issue" json:"issue"`
	User      string             `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// CreateIssueRequest is the JSON body for POST /issues.
// @Description Data required to report a new issue
type CreateIssueRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=100" example:"Overflowing Garbage Bin"`
	Description string   `json:"description" validate:"required,min=5,max=1000"`
	Category    string   `json:"category" validate:"required,min=2,max=50" example:"garbage"`
	Lat         *float64 `json:"lat,omitempty" validate:"omitempty,min=-90,max=90"`
	Lng         *float64 `json:"lng,omitempty" validate:"omitempty,min=-180,max=180"`
	PhotoURL    string   `json:"photoUrl,omitempty" validate:"omitempty,url"`
	Ward        string   `json:"ward,omitempty" validate:"omitempty,max=100"`
	UserID      string   `json:"userId,omitempty"`
}

// ListQuery captures GET /issues query parameters after parsing.
type ListQuery struct {
	Ward   string
	Status string
	Sort   string
	Page   int
	Limit  int
}

// Analytics is the payload of GET /issues/analytics.
type Analytics struct {
	Total    int64 `json:"total"`
	Open     int64 `json:"open"`
	Resolved int64 `json:"resolved"`
}

// UpvoteResponse returns the authoritative upvote count after an upvote.
type UpvoteResponse struct {
	Upvotes int64 `json:"upvotes"`
}
