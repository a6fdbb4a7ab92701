package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// User represents a registered user of the exercise tracker.
// Usernames carry no store-level uniqueness constraint; the service layer
// enforces create-or-fetch semantics with a lookup before insert.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username string             `bson:"username" json:"username"`
}
