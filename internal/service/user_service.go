package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"
)

var emailRegexp = regexp.MustCompile(`\S.*@\S.*\..*`)

type UserService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewUserService(repo domain.Repository, logger *zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) AddUser(ctx context.Context, user *models.User) (*models.User, error) {
	if strings.TrimSpace(user.Name) == "" {
		return nil, database.Validationf("name is blank")
	}
	if strings.TrimSpace(user.Email) == "" {
		return nil, database.Validationf("email is blank")
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Debug().Int64("user_id", user.ID).Msg("user created")
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, userID int64, patch models.UserPatch) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil && *patch.Email != user.Email {
		if !emailRegexp.MatchString(*patch.Email) {
			return nil, database.Validationf("incorrect email")
		}
		inUse, err := s.repo.EmailInUse(ctx, *patch.Email, userID)
		if err != nil {
			return nil, err
		}
		if inUse {
			return nil, database.AlreadyUsedf("email %s already used", *patch.Email)
		}
		user.Email = *patch.Email
	}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, database.Validationf("name is blank")
		}
		user.Name = *patch.Name
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Debug().Int64("user_id", userID).Msg("user updated")
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.repo.GetUser(ctx, userID)
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.GetAllUsers(ctx)
}

func (s *UserService) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.CheckUserPresent(ctx, userID); err != nil {
		return err
	}
	if err := s.repo.DeleteUser(ctx, userID); err != nil {
		return err
	}
	s.logger.Debug().Int64("user_id", userID).Msg("user deleted with items and bookings")
	return nil
}

func (s *UserService) CheckUserPresent(ctx context.Context, userID int64) error {
	_, err := s.repo.GetUser(ctx, userID)
	return err
}
