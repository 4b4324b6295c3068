package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Container defines a class or course document. The two collections are
// structurally identical: a name and the denormalized member id list.
type Container struct {
	ID      primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name    string               `bson:"name" json:"name"`
	UserIDs []primitive.ObjectID `bson:"user_ids" json:"userIds"`
}

// HasMember reports whether the user id appears in the member list.
func (c *Container) HasMember(userID primitive.ObjectID) bool {
	return containsID(c.UserIDs, userID)
}
