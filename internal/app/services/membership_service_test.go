package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jiripapousek/classwall/internal/app/models"
	"github.com/jiripapousek/classwall/internal/pkg/apperrors"
)

func TestAssociateUserLinksBothSides(t *testing.T) {
	users := newFakeUserStore()
	containers := newFakeContainerStore()
	svc := NewMembershipService(users, containers, zerolog.Nop())
	ctx := context.Background()

	user := users.add(&models.User{Username: "jiri.pap@gmail.com"})
	course, err := containers.Create(ctx, models.KindCourse, "Biology")
	require.NoError(t, err)

	require.NoError(t, svc.AssociateUser(ctx, models.KindCourse, course.ID, user.ID))

	updatedUser, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	updatedCourse, err := containers.GetByID(ctx, models.KindCourse, course.ID)
	require.NoError(t, err)

	assert.True(t, updatedUser.IsMemberOf(models.KindCourse, course.ID))
	assert.True(t, updatedCourse.HasMember(user.ID))
}

func TestAssociateUserIsIdempotent(t *testing.T) {
	users := newFakeUserStore()
	containers := newFakeContainerStore()
	svc := NewMembershipService(users, containers, zerolog.Nop())
	ctx := context.Background()

	user := users.add(&models.User{Username: "jiri.pap@gmail.com"})
	class, err := containers.Create(ctx, models.KindClass, "1.B")
	require.NoError(t, err)

	require.NoError(t, svc.AssociateUser(ctx, models.KindClass, class.ID, user.ID))
	require.NoError(t, svc.AssociateUser(ctx, models.KindClass, class.ID, user.ID))

	updatedUser, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	updatedClass, err := containers.GetByID(ctx, models.KindClass, class.ID)
	require.NoError(t, err)

	assert.Len(t, updatedUser.ClassIDs, 1)
	assert.Len(t, updatedClass.UserIDs, 1)
}

func TestAssociateUserUnknownTargets(t *testing.T) {
	users := newFakeUserStore()
	containers := newFakeContainerStore()
	svc := NewMembershipService(users, containers, zerolog.Nop())
	ctx := context.Background()

	user := users.add(&models.User{Username: "jiri.pap@gmail.com"})
	course, err := containers.Create(ctx, models.KindCourse, "Biology")
	require.NoError(t, err)

	err = svc.AssociateUser(ctx, models.KindCourse, course.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	err = svc.AssociateUser(ctx, models.KindCourse, primitive.NewObjectID(), user.ID)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	// Neither side was touched by the failed attempts
	unchanged, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, unchanged.CourseIDs)
}

func TestListContainersKeepsInsertionOrder(t *testing.T) {
	users := newFakeUserStore()
	containers := newFakeContainerStore()
	svc := NewMembershipService(users, containers, zerolog.Nop())
	ctx := context.Background()

	for _, name := range []string{"Biology", "English", "Mathematics"} {
		_, err := svc.CreateContainer(ctx, models.KindCourse, name)
		require.NoError(t, err)
	}

	listed, err := svc.ListContainers(ctx, models.KindCourse)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "Biology", listed[0].Name)
	assert.Equal(t, "English", listed[1].Name)
	assert.Equal(t, "Mathematics", listed[2].Name)

	// Classes and courses are listed independently
	classes, err := svc.ListContainers(ctx, models.KindClass)
	require.NoError(t, err)
	assert.Empty(t, classes)
}
