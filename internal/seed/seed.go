package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	appModels "github.com/jiripapousek/classwall/internal/app/models"
	appRepos "github.com/jiripapousek/classwall/internal/app/repositories"
	"github.com/jiripapousek/classwall/internal/db"
	"github.com/jiripapousek/classwall/internal/pkg/apperrors"
	pkgAuth "github.com/jiripapousek/classwall/internal/pkg/auth"
)

// CreateDefaultData creates the default classes, courses and demo accounts
// if they don't exist. Every step is idempotent, so re-running the seed on
// an already populated database changes nothing.
func CreateDefaultData(ctx context.Context, database *db.MongoDB, lgr zerolog.Logger) error {
	repos := appRepos.NewRepositories(database)

	lgr.Info().Msg("Checking/Creating default data (classes/courses/users)...")
	var finalErr error // To collect potential errors without stopping the process

	class1B, err := ensureContainer(ctx, repos, appModels.KindClass, "1.B")
	finalErr = errors.Join(finalErr, err)
	class2A, err := ensureContainer(ctx, repos, appModels.KindClass, "2.A")
	finalErr = errors.Join(finalErr, err)

	biology, err := ensureContainer(ctx, repos, appModels.KindCourse, "Biology")
	finalErr = errors.Join(finalErr, err)
	english, err := ensureContainer(ctx, repos, appModels.KindCourse, "English")
	finalErr = errors.Join(finalErr, err)
	mathematics, err := ensureContainer(ctx, repos, appModels.KindCourse, "Mathematics")
	finalErr = errors.Join(finalErr, err)

	student1, err := ensureUser(ctx, repos, lgr, "jiri.pap@gmail.com", "2aoRs2VHXuvPHQ", false)
	finalErr = errors.Join(finalErr, err)
	student2, err := ensureUser(ctx, repos, lgr, "chudovsky@mail.muni.cz", "4aMfcVKkHLAHDA", false)
	finalErr = errors.Join(finalErr, err)
	teacher1, err := ensureUser(ctx, repos, lgr, "gesvindr@mail.muni.cz", "rqB4N2pgVWLAW3", true)
	finalErr = errors.Join(finalErr, err)
	teacher2, err := ensureUser(ctx, repos, lgr, "jevocin@mail.muni.cz", "oZzYb3tN7f8o5D", true)
	finalErr = errors.Join(finalErr, err)

	type link struct {
		user      *appModels.User
		kind      appModels.ContainerKind
		container *appModels.Container
	}
	links := []link{
		{student1, appModels.KindCourse, biology},
		{student1, appModels.KindCourse, english},
		{student1, appModels.KindClass, class1B},

		{student2, appModels.KindCourse, english},
		{student2, appModels.KindCourse, mathematics},
		{student2, appModels.KindClass, class1B},
		{student2, appModels.KindClass, class2A},

		{teacher1, appModels.KindCourse, biology},
		{teacher1, appModels.KindCourse, english},
		{teacher1, appModels.KindClass, class1B},

		{teacher2, appModels.KindCourse, mathematics},
		{teacher2, appModels.KindClass, class2A},
	}

	for _, l := range links {
		if l.user == nil || l.container == nil {
			continue
		}
		if err := associate(ctx, repos, l.kind, l.user, l.container); err != nil {
			lgr.Error().Err(err).
				Str("username", l.user.Username).
				Str("container", l.container.Name).
				Msg("Error associating default user")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data in place.")
	}
	return finalErr
}

// ensureContainer finds a class or course by name, creating it when absent.
// Names are not unique in general; the seed treats them as keys.
func ensureContainer(ctx context.Context, repos *appRepos.Repositories, kind appModels.ContainerKind, name string) (*appModels.Container, error) {
	existing, err := repos.ContainerRepository.GetAll(ctx, kind)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		if c.Name == name {
			return c, nil
		}
	}
	return repos.ContainerRepository.Create(ctx, kind, name)
}

// ensureUser finds a user by username, creating the account when absent
func ensureUser(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger, username, password string, isTeacher bool) (*appModels.User, error) {
	user, err := repos.UserRepository.FindByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := pkgAuth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	created, err := repos.UserRepository.Create(ctx, &appModels.User{
		Username:       username,
		HashedPassword: hashed,
		IsTeacher:      isTeacher,
	})
	if err != nil {
		// Lost a race against a concurrent seed; fetch the winner.
		if errors.Is(err, apperrors.ErrUsernameTaken) {
			return repos.UserRepository.FindByUsername(ctx, username)
		}
		return nil, err
	}

	lgr.Info().Str("username", username).Bool("isTeacher", isTeacher).Msg("Seeded default user")
	return created, nil
}

// associate links a user and a container on both sides with set semantics
func associate(ctx context.Context, repos *appRepos.Repositories, kind appModels.ContainerKind, user *appModels.User, container *appModels.Container) error {
	if err := repos.UserRepository.AddMembership(ctx, user.ID, kind, container.ID); err != nil {
		return err
	}
	return repos.ContainerRepository.AddMember(ctx, kind, container.ID, user.ID)
}
