package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment defines the comment document stored in the 'comments' collection.
type Comment struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Text        string               `bson:"text" json:"text"`
	AuthorID    primitive.ObjectID   `bson:"author_id" json:"authorId"`
	PostID      primitive.ObjectID   `bson:"post_id" json:"postId"`
	LikeUserIDs []primitive.ObjectID `bson:"likes_user_ids" json:"likeUserIds"`
	CreatedAt   time.Time            `bson:"created_at" json:"createdAt"`
}

// HasLikeFrom reports whether the user id appears in the comment's like list.
func (c *Comment) HasLikeFrom(userID primitive.ObjectID) bool {
	return containsID(c.LikeUserIDs, userID)
}
