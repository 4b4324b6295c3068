package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post defines the post document stored in the 'posts' collection.
// Exactly one of ClassID/CourseID is set; a post belongs to precisely
// one wall. CommentIDs is a denormalized convenience list; comments can
// always be recovered by querying the 'comments' collection by post_id.
type Post struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Text        string               `bson:"text" json:"text"`
	AuthorID    primitive.ObjectID   `bson:"author_id" json:"authorId"`
	ClassID     *primitive.ObjectID  `bson:"class_id,omitempty" json:"classId,omitempty"`
	CourseID    *primitive.ObjectID  `bson:"course_id,omitempty" json:"courseId,omitempty"`
	LikeUserIDs []primitive.ObjectID `bson:"likes_user_ids" json:"likeUserIds"`
	CommentIDs  []primitive.ObjectID `bson:"comment_ids" json:"commentIds"`
	CreatedAt   time.Time            `bson:"created_at" json:"createdAt"`
}

// Container returns the kind and id of the wall the post belongs to.
func (p *Post) Container() (ContainerKind, primitive.ObjectID) {
	if p.ClassID != nil {
		return KindClass, *p.ClassID
	}
	if p.CourseID != nil {
		return KindCourse, *p.CourseID
	}
	return "", primitive.NilObjectID
}

// HasLikeFrom reports whether the user id appears in the post's like list.
func (p *Post) HasLikeFrom(userID primitive.ObjectID) bool {
	return containsID(p.LikeUserIDs, userID)
}
