package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	IsAdmin  bool               `bson:"isAdmin" json:"isAdmin"`
}

// PublicUser is the user shape returned by listing endpoints. IsOwner is
// computed from the teams collection, not stored on the user document.
type PublicUser struct {
	ID      primitive.ObjectID `json:"id"`
	Name    string             `json:"name"`
	Email   string             `json:"email"`
	IsAdmin bool               `json:"isAdmin"`
	IsOwner bool               `json:"isOwner"`
}
