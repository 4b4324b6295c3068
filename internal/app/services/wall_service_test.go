package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	appAuth "github.com/jiripapousek/classwall/internal/app/auth"
	"github.com/jiripapousek/classwall/internal/app/models"
	"github.com/jiripapousek/classwall/internal/pkg/apperrors"
)

type wallFixture struct {
	users      *fakeUserStore
	containers *fakeContainerStore
	posts      *fakePostStore
	comments   *fakeCommentStore
	svc        WallService
}

func newWallFixture() *wallFixture {
	f := &wallFixture{
		users:      newFakeUserStore(),
		containers: newFakeContainerStore(),
		posts:      newFakePostStore(),
		comments:   newFakeCommentStore(),
	}
	f.svc = NewWallService(f.users, f.containers, f.posts, f.comments, appAuth.NewEvaluator(), zerolog.Nop())
	return f
}

func (f *wallFixture) memberOfClass(t *testing.T, username string, classID primitive.ObjectID, isTeacher bool) *models.User {
	t.Helper()
	return f.users.add(&models.User{
		Username:  username,
		IsTeacher: isTeacher,
		ClassIDs:  []primitive.ObjectID{classID},
	})
}

func TestCreatePostRequiresMembership(t *testing.T) {
	f := newWallFixture()
	ctx := context.Background()

	class, err := f.containers.Create(ctx, models.KindClass, "1.B")
	require.NoError(t, err)
	member := f.memberOfClass(t, "member@mail.muni.cz", class.ID, false)
	outsider := f.users.add(&models.User{Username: "outsider@mail.muni.cz"})

	post, err := f.svc.CreatePost(ctx, member.ID, models.KindClass, class.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", post.Text)
	assert.Equal(t, member.ID.Hex(), post.AuthorID)
	assert.Equal(t, class.ID.Hex(), post.ClassID)
	assert.Empty(t, post.CourseID)

	_, err = f.svc.CreatePost(ctx, outsider.ID, models.KindClass, class.ID, "hi")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestCreatePostUnknownContainer(t *testing.T) {
	f := newWallFixture()
	ctx := context.Background()

	user := f.users.add(&models.User{Username: "member@mail.muni.cz"})

	// Existence is checked before membership, so an unknown container is
	// reported as not-found even to a non-member.
	_, err := f.svc.CreatePost(ctx, user.ID, models.KindCourse, primitive.NewObjectID(), "hello")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestGetWallKeepsInsertionOrder(t *testing.T) {
	f := newWallFixture()
	ctx := context.Background()

	class, err := f.containers.Create(ctx, models.KindClass, "1.B")
	require.NoError(t, err)
	member := f.memberOfClass(t, "member@mail.muni.cz", class.ID, false)

	for _, text := range []string{"first", "second", "third"} {
		_, err := f.svc.CreatePost(ctx, member.ID, models.KindClass, class.ID, text)
		require.NoError(t, err)
	}

	wall, err := f.svc.GetWall(ctx, member.ID, models.KindClass, class.ID)
	require.NoError(t, err)
	require.Len(t, wall, 3)
	assert.Equal(t, "first", wall[0].Text)
	assert.Equal(t, "second", wall[1].Text)
	assert.Equal(t, "third", wall[2].Text)
}

func TestGetAggregateWallClassesBeforeCourses(t *testing.T) {
	f := newWallFixture()
	ctx := context.Background()

	class, err := f.containers.Create(ctx, models.KindClass, "1.B")
	require.NoError(t, err)
	course, err := f.containers.Create(ctx, models.KindCourse, "Biology")
	require.NoError(t, err)

	user := f.users.add(&models.User{
		Username:  "member@mail.muni.cz",
		ClassIDs:  []primitive.ObjectID{class.ID},
		CourseIDs: []primitive.ObjectID{course.ID},
	})

	// Interleave the inserts so ordering by container is observable
	_, err = f.svc.CreatePost(ctx, user.ID, models.KindCourse, course.ID, "course post")
	require.NoError(t, err)
	_, err = f.svc.CreatePost(ctx, user.ID, models.KindClass, class.ID, "class post")
	require.NoError(t, err)

	wall, err := f.svc.GetAggregateWall(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, wall, 2)
	assert.Equal(t, "class post", wall[0].Text)
	assert.Equal(t, "course post", wall[1].Text)
}

func TestGetAggregateWallEmptyMemberships(t *testing.T) {
	f := newWallFixture()
	ctx := context.Background()

	user := f.users.add(&models.User{Username: "loner@mail.muni.cz"})

	wall, err := f.svc.GetAggregateWall(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, wall)
}

func TestDeletePostPermissions(t *testing.T) {
	f := newWallFixture()
	ctx := context.Background()

	class, err := f.containers.Create(ctx, models.KindClass, "1.B")
	require.NoError(t, err)
	author := f.memberOfClass(t, "author@mail.muni.cz", class.ID, false)
	peer := f.memberOfClass(t, "peer@mail.muni.cz", class.ID, false)
	teacher := f.memberOfClass(t, "teacher@mail.muni.cz", class.ID, true)

	post, err := f.svc.CreatePost(ctx, author.ID, models.KindClass, class.ID, "hello")
	require.NoError(t, err)
	postID, err := primitive.ObjectIDFromHex(post.ID)
	require.NoError(t, err)

	// Another student may not delete, even as a member
	err = f.svc.DeletePost(ctx, peer.ID, postID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// A teacher member may
	require.NoError(t, f.svc.DeletePost(ctx, teacher.ID, postID))

	_, err = f.posts.GetByID(ctx, postID)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)

	// Deleting again reports not-found, not forbidden
	err = f.svc.DeletePost(ctx, author.ID, postID)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestCommentsRoundTrip(t *testing.T) {
	f := newWallFixture()
	ctx := context.Background()

	class, err := f.containers.Create(ctx, models.KindClass, "1.B")
	require.NoError(t, err)
	author := f.memberOfClass(t, "author@mail.muni.cz", class.ID, false)
	peer := f.memberOfClass(t, "peer@mail.muni.cz", class.ID, false)
	outsider := f.users.add(&models.User{Username: "outsider@mail.muni.cz"})

	post, err := f.svc.CreatePost(ctx, author.ID, models.KindClass, class.ID, "hello")
	require.NoError(t, err)
	postID, err := primitive.ObjectIDFromHex(post.ID)
	require.NoError(t, err)

	comment, err := f.svc.CreateComment(ctx, peer.ID, postID, "nice post")
	require.NoError(t, err)
	assert.Equal(t, peer.ID.Hex(), comment.AuthorID)
	assert.Equal(t, post.ID, comment.PostID)

	_, err = f.svc.CreateComment(ctx, outsider.ID, postID, "let me in")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	comments, err := f.svc.GetComments(ctx, author.ID, postID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice post", comments[0].Text)

	// The parent post's denormalized list picked up the comment id
	parent, err := f.posts.GetByID(ctx, postID)
	require.NoError(t, err)
	require.Len(t, parent.CommentIDs, 1)
	assert.Equal(t, comment.ID, parent.CommentIDs[0].Hex())
}

func TestDeleteCommentWithDeletedParent(t *testing.T) {
	f := newWallFixture()
	ctx := context.Background()

	class, err := f.containers.Create(ctx, models.KindClass, "1.B")
	require.NoError(t, err)
	author := f.memberOfClass(t, "author@mail.muni.cz", class.ID, false)
	commenter := f.memberOfClass(t, "peer@mail.muni.cz", class.ID, false)
	teacher := f.memberOfClass(t, "teacher@mail.muni.cz", class.ID, true)

	post, err := f.svc.CreatePost(ctx, author.ID, models.KindClass, class.ID, "hello")
	require.NoError(t, err)
	postID, err := primitive.ObjectIDFromHex(post.ID)
	require.NoError(t, err)

	comment, err := f.svc.CreateComment(ctx, commenter.ID, postID, "orphan me")
	require.NoError(t, err)
	commentID, err := primitive.ObjectIDFromHex(comment.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeletePost(ctx, author.ID, postID))

	// With the parent gone even a teacher member loses the right
	err = f.svc.DeleteComment(ctx, teacher.ID, commentID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// The author can still clean up the dangling comment
	require.NoError(t, f.svc.DeleteComment(ctx, commenter.ID, commentID))
	_, err = f.comments.GetByID(ctx, commentID)
	assert.ErrorIs(t, err, apperrors.ErrCommentNotFound)
}
