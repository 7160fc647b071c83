package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Task struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name           string               `bson:"name" json:"name"`
	Description    string               `bson:"description,omitempty" json:"description,omitempty"`
	Project        primitive.ObjectID   `bson:"project" json:"project"`
	Team           primitive.ObjectID   `bson:"team" json:"team"`
	Owners         []primitive.ObjectID `bson:"owners" json:"owners"`
	Tags           []string             `bson:"tags,omitempty" json:"tags,omitempty"`
	TimeToComplete int                  `bson:"timeToComplete" json:"timeToComplete"`
	DueDate        time.Time            `bson:"dueDate" json:"dueDate"`
	Status         Status               `bson:"status" json:"status"`
	Priority       Priority             `bson:"priority,omitempty" json:"priority,omitempty"`
	CreatedBy      primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// HasOwner reports whether the given user is assigned to the task.
func (t *Task) HasOwner(userID primitive.ObjectID) bool {
	for _, o := range t.Owners {
		if o == userID {
			return true
		}
	}
	return false
}
