package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Team struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Owner       primitive.ObjectID   `bson:"owner" json:"owner"`
	Members     []primitive.ObjectID `bson:"members" json:"members"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// HasMember reports whether the given user is in the members set. The
// owner is always written into members at creation, so no separate
// owner check is needed here.
func (t *Team) HasMember(userID primitive.ObjectID) bool {
	for _, m := range t.Members {
		if m == userID {
			return true
		}
	}
	return false
}
