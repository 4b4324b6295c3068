package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User defines the user document stored in the 'users' collection.
// Memberships and likes are kept as denormalized id lists; the mirror
// lists live on the associated container/post/comment documents.
type User struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username        string               `bson:"username" json:"username"`
	HashedPassword  string               `bson:"hashed_password" json:"-"`
	IsTeacher       bool                 `bson:"is_teacher" json:"isTeacher"`
	CourseIDs       []primitive.ObjectID `bson:"course_ids" json:"courseIds"`
	ClassIDs        []primitive.ObjectID `bson:"class_ids" json:"classIds"`
	LikedPostIDs    []primitive.ObjectID `bson:"likes_post_ids" json:"-"`
	LikedCommentIDs []primitive.ObjectID `bson:"likes_comment_ids" json:"-"`
}

// IsMemberOf reports whether the user belongs to the given container.
func (u *User) IsMemberOf(kind ContainerKind, containerID primitive.ObjectID) bool {
	switch kind {
	case KindClass:
		return containsID(u.ClassIDs, containerID)
	case KindCourse:
		return containsID(u.CourseIDs, containerID)
	}
	return false
}

// HasLikedPost reports whether the user's like list contains the post.
func (u *User) HasLikedPost(postID primitive.ObjectID) bool {
	return containsID(u.LikedPostIDs, postID)
}

// HasLikedComment reports whether the user's like list contains the comment.
func (u *User) HasLikedComment(commentID primitive.ObjectID) bool {
	return containsID(u.LikedCommentIDs, commentID)
}
