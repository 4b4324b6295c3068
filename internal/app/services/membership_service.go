package services

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jiripapousek/classwall/internal/app/models"
	"github.com/jiripapousek/classwall/internal/app/models/dto"
)

// MembershipService defines the interface for class/course operations
type MembershipService interface {
	ListContainers(ctx context.Context, kind models.ContainerKind) ([]dto.ContainerResponse, error)
	CreateContainer(ctx context.Context, kind models.ContainerKind, name string) (*dto.ContainerResponse, error)
	AssociateUser(ctx context.Context, kind models.ContainerKind, containerID, userID primitive.ObjectID) error
}

// membershipServiceImpl implements MembershipService
type membershipServiceImpl struct {
	users      UserStore
	containers ContainerStore
	logger     zerolog.Logger
}

// NewMembershipService creates a new MembershipService
func NewMembershipService(users UserStore, containers ContainerStore, logger zerolog.Logger) MembershipService {
	return &membershipServiceImpl{
		users:      users,
		containers: containers,
		logger:     logger,
	}
}

// ListContainers lists all classes or all courses
func (s *membershipServiceImpl) ListContainers(ctx context.Context, kind models.ContainerKind) ([]dto.ContainerResponse, error) {
	containers, err := s.containers.GetAll(ctx, kind)
	if err != nil {
		return nil, err
	}
	return dto.NewContainerListResponse(containers), nil
}

// CreateContainer creates a new empty class or course
func (s *membershipServiceImpl) CreateContainer(ctx context.Context, kind models.ContainerKind, name string) (*dto.ContainerResponse, error) {
	container, err := s.containers.Create(ctx, kind, name)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("kind", string(kind)).Str("name", name).Str("id", container.ID.Hex()).Msg("Container created")
	resp := dto.NewContainerResponse(container)
	return &resp, nil
}

// AssociateUser links a user and a container on both sides: the container
// id is added to the user's membership list and the user id to the
// container's member list. Both writes use set semantics, so associating
// the same pair twice leaves the lists unchanged.
//
// The two sides are written as separate steps without a cross-document
// transaction; a crash between them can leave the association visible on
// the user side only until the operation is retried.
func (s *membershipServiceImpl) AssociateUser(ctx context.Context, kind models.ContainerKind, containerID, userID primitive.ObjectID) error {
	// Resolve both entities up front so a dangling id fails with not-found
	// before either side is touched.
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	container, err := s.containers.GetByID(ctx, kind, containerID)
	if err != nil {
		return err
	}

	if err := s.users.AddMembership(ctx, user.ID, kind, container.ID); err != nil {
		return err
	}
	if err := s.containers.AddMember(ctx, kind, container.ID, user.ID); err != nil {
		return err
	}

	s.logger.Info().
		Str("kind", string(kind)).
		Str("containerId", container.ID.Hex()).
		Str("userId", user.ID.Hex()).
		Msg("User associated with container")
	return nil
}
