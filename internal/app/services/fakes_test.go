package services

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jiripapousek/classwall/internal/app/models"
	"github.com/jiripapousek/classwall/internal/pkg/apperrors"
)

// In-memory fakes of the store interfaces. They mirror the repository
// semantics: not-found sentinels, set behavior on membership lists and
// the conditional like guards.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (s *fakeUserStore) add(user *models.User) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID] = user
	return user
}

func (s *fakeUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return nil, apperrors.ErrUsernameTaken
		}
	}
	user.ID = primitive.NewObjectID()
	if user.CourseIDs == nil {
		user.CourseIDs = []primitive.ObjectID{}
	}
	if user.ClassIDs == nil {
		user.ClassIDs = []primitive.ObjectID{}
	}
	if user.LikedPostIDs == nil {
		user.LikedPostIDs = []primitive.ObjectID{}
	}
	if user.LikedCommentIDs == nil {
		user.LikedCommentIDs = []primitive.ObjectID{}
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *fakeUserStore) AddMembership(_ context.Context, userID primitive.ObjectID, kind models.ContainerKind, containerID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	switch kind {
	case models.KindClass:
		u.ClassIDs = addToSet(u.ClassIDs, containerID)
	case models.KindCourse:
		u.CourseIDs = addToSet(u.CourseIDs, containerID)
	}
	return nil
}

func (s *fakeUserStore) AddLikedPost(_ context.Context, userID, postID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.LikedPostIDs = addToSet(u.LikedPostIDs, postID)
	return nil
}

func (s *fakeUserStore) RemoveLikedPost(_ context.Context, userID, postID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.LikedPostIDs = removeFromSet(u.LikedPostIDs, postID)
	return nil
}

func (s *fakeUserStore) AddLikedComment(_ context.Context, userID, commentID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.LikedCommentIDs = addToSet(u.LikedCommentIDs, commentID)
	return nil
}

func (s *fakeUserStore) RemoveLikedComment(_ context.Context, userID, commentID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.LikedCommentIDs = removeFromSet(u.LikedCommentIDs, commentID)
	return nil
}

type fakeContainerStore struct {
	mu      sync.Mutex
	classes map[primitive.ObjectID]*models.Container
	courses map[primitive.ObjectID]*models.Container
	order   map[models.ContainerKind][]primitive.ObjectID
}

func newFakeContainerStore() *fakeContainerStore {
	return &fakeContainerStore{
		classes: make(map[primitive.ObjectID]*models.Container),
		courses: make(map[primitive.ObjectID]*models.Container),
		order:   make(map[models.ContainerKind][]primitive.ObjectID),
	}
}

func (s *fakeContainerStore) byKind(kind models.ContainerKind) map[primitive.ObjectID]*models.Container {
	if kind == models.KindClass {
		return s.classes
	}
	return s.courses
}

func (s *fakeContainerStore) notFound(kind models.ContainerKind) error {
	if kind == models.KindClass {
		return apperrors.ErrClassNotFound
	}
	return apperrors.ErrCourseNotFound
}

func (s *fakeContainerStore) GetByID(_ context.Context, kind models.ContainerKind, id primitive.ObjectID) (*models.Container, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.byKind(kind)[id]; ok {
		return c, nil
	}
	return nil, s.notFound(kind)
}

func (s *fakeContainerStore) GetAll(_ context.Context, kind models.ContainerKind) ([]*models.Container, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Container, 0)
	for _, id := range s.order[kind] {
		out = append(out, s.byKind(kind)[id])
	}
	return out, nil
}

func (s *fakeContainerStore) Create(_ context.Context, kind models.ContainerKind, name string) (*models.Container, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &models.Container{
		ID:      primitive.NewObjectID(),
		Name:    name,
		UserIDs: []primitive.ObjectID{},
	}
	s.byKind(kind)[c.ID] = c
	s.order[kind] = append(s.order[kind], c.ID)
	return c, nil
}

func (s *fakeContainerStore) AddMember(_ context.Context, kind models.ContainerKind, containerID, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byKind(kind)[containerID]
	if !ok {
		return s.notFound(kind)
	}
	c.UserIDs = addToSet(c.UserIDs, userID)
	return nil
}

type fakePostStore struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]*models.Post
	order []primitive.ObjectID
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: make(map[primitive.ObjectID]*models.Post)}
}

func (s *fakePostStore) Create(_ context.Context, post *models.Post) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post.ID = primitive.NewObjectID()
	if post.LikeUserIDs == nil {
		post.LikeUserIDs = []primitive.ObjectID{}
	}
	if post.CommentIDs == nil {
		post.CommentIDs = []primitive.ObjectID{}
	}
	s.posts[post.ID] = post
	s.order = append(s.order, post.ID)
	return post, nil
}

func (s *fakePostStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.posts[id]; ok {
		return p, nil
	}
	return nil, apperrors.ErrPostNotFound
}

func (s *fakePostStore) GetByContainer(_ context.Context, kind models.ContainerKind, containerID primitive.ObjectID) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Post, 0)
	for _, id := range s.order {
		p, ok := s.posts[id]
		if !ok {
			continue
		}
		k, cid := p.Container()
		if k == kind && cid == containerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePostStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return apperrors.ErrPostNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *fakePostStore) AddLike(_ context.Context, postID, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return apperrors.ErrPostNotFound
	}
	if containsObjectID(p.LikeUserIDs, userID) {
		return apperrors.ErrAlreadyLiked
	}
	p.LikeUserIDs = append(p.LikeUserIDs, userID)
	return nil
}

func (s *fakePostStore) RemoveLike(_ context.Context, postID, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return apperrors.ErrPostNotFound
	}
	if !containsObjectID(p.LikeUserIDs, userID) {
		return apperrors.ErrNotLiked
	}
	p.LikeUserIDs = removeFromSet(p.LikeUserIDs, userID)
	return nil
}

func (s *fakePostStore) AppendCommentID(_ context.Context, postID, commentID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return apperrors.ErrPostNotFound
	}
	p.CommentIDs = addToSet(p.CommentIDs, commentID)
	return nil
}

type fakeCommentStore struct {
	mu       sync.Mutex
	comments map[primitive.ObjectID]*models.Comment
	order    []primitive.ObjectID
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: make(map[primitive.ObjectID]*models.Comment)}
}

func (s *fakeCommentStore) Create(_ context.Context, comment *models.Comment) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment.ID = primitive.NewObjectID()
	if comment.LikeUserIDs == nil {
		comment.LikeUserIDs = []primitive.ObjectID{}
	}
	s.comments[comment.ID] = comment
	s.order = append(s.order, comment.ID)
	return comment, nil
}

func (s *fakeCommentStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.comments[id]; ok {
		return c, nil
	}
	return nil, apperrors.ErrCommentNotFound
}

func (s *fakeCommentStore) GetByPost(_ context.Context, postID primitive.ObjectID) ([]*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Comment, 0)
	for _, id := range s.order {
		c, ok := s.comments[id]
		if !ok {
			continue
		}
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeCommentStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return apperrors.ErrCommentNotFound
	}
	delete(s.comments, id)
	return nil
}

func (s *fakeCommentStore) AddLike(_ context.Context, commentID, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[commentID]
	if !ok {
		return apperrors.ErrCommentNotFound
	}
	if containsObjectID(c.LikeUserIDs, userID) {
		return apperrors.ErrAlreadyLiked
	}
	c.LikeUserIDs = append(c.LikeUserIDs, userID)
	return nil
}

func (s *fakeCommentStore) RemoveLike(_ context.Context, commentID, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[commentID]
	if !ok {
		return apperrors.ErrCommentNotFound
	}
	if !containsObjectID(c.LikeUserIDs, userID) {
		return apperrors.ErrNotLiked
	}
	c.LikeUserIDs = removeFromSet(c.LikeUserIDs, userID)
	return nil
}

func addToSet(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	if containsObjectID(ids, id) {
		return ids
	}
	return append(ids, id)
}

func removeFromSet(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func containsObjectID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
