// Package repositories wraps MongoDB collections behind per-entity
// store interfaces. Services depend on the interfaces; main wires the
// Mongo implementations.
package repositories

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when a document id does not resolve, or
	// when a delete matched nothing (the record vanished between the
	// caller's read and the write).
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned on a unique-index violation
	// (Team.name, User.email, Tag.name).
	ErrDuplicate = errors.New("duplicate record")

	// ErrHasDependents is returned when a delete is refused because
	// other records still reference the target.
	ErrHasDependents = errors.New("record has dependents")
)

// GroupCount is one bucket of an aggregation grouped by a reference id.
type GroupCount struct {
	ID    primitive.ObjectID `bson:"_id"`
	Count int64              `bson:"count"`
}

func wrapDuplicate(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}
