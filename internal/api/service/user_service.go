package service

import (
	"errors"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/permission"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

type UserService interface {
	List(actor permission.Actor, search string, page, pageSize int) (*dto.PaginatedResponse[dto.UserResponse], error)
	Create(actor permission.Actor, in dto.CreateUserDTO) (*dto.UserResponse, error)
	GetByUsername(actor permission.Actor, username string) (*dto.UserResponse, error)
	Update(actor permission.Actor, username string, in dto.UpdateUserDTO) (*dto.UserResponse, error)
	Delete(actor permission.Actor, username string) error
	GetSelf(actor permission.Actor) (*dto.UserResponse, error)
	UpdateSelf(actor permission.Actor, in dto.UpdateSelfDTO) (*dto.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(actor permission.Actor, search string, page, pageSize int) (*dto.PaginatedResponse[dto.UserResponse], error) {
	if !permission.CanManageUsers(actor) {
		return nil, ErrForbidden
	}

	users, total, err := s.userRepo.List(search, page, pageSize)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, dto.UserFromModel(&users[i]))
	}
	return dto.NewPaginatedResponse(resp, int(total), page, pageSize), nil
}

func (s *userService) Create(actor permission.Actor, in dto.CreateUserDTO) (*dto.UserResponse, error) {
	if !permission.CanManageUsers(actor) {
		return nil, ErrForbidden
	}

	if taken, err := s.userRepo.UsernameTaken(in.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameInUse
	}
	if _, err := s.userRepo.FindByEmail(in.Email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := in.ToModel()
	// admin-created accounts skip the confirmation flow
	user.Active = true
	if err := s.userRepo.Create(&user); err != nil {
		// pre-checks can lose a race with a concurrent write
		return nil, translateUserDuplicate(err)
	}

	resp := dto.UserFromModel(&user)
	return &resp, nil
}

func (s *userService) GetByUsername(actor permission.Actor, username string) (*dto.UserResponse, error) {
	if !permission.CanManageUsers(actor) {
		return nil, ErrForbidden
	}
	user, err := s.findUser(username)
	if err != nil {
		return nil, err
	}
	resp := dto.UserFromModel(user)
	return &resp, nil
}

func (s *userService) Update(actor permission.Actor, username string, in dto.UpdateUserDTO) (*dto.UserResponse, error) {
	if !permission.CanManageUsers(actor) {
		return nil, ErrForbidden
	}
	user, err := s.findUser(username)
	if err != nil {
		return nil, err
	}

	if in.Username != nil && *in.Username != user.Username {
		if taken, err := s.userRepo.UsernameTaken(*in.Username); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrUsernameInUse
		}
	}
	if in.Email != nil && *in.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(*in.Email); err == nil {
			return nil, ErrEmailInUse
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	in.ApplyTo(user)
	if err := s.userRepo.Save(user); err != nil {
		return nil, translateUserDuplicate(err)
	}

	resp := dto.UserFromModel(user)
	return &resp, nil
}

// Delete removes a user; their reviews and comments cascade away with
// the account.
func (s *userService) Delete(actor permission.Actor, username string) error {
	if !permission.CanManageUsers(actor) {
		return ErrForbidden
	}
	if err := s.userRepo.Delete(username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *userService) GetSelf(actor permission.Actor) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := dto.UserFromModel(user)
	return &resp, nil
}

// UpdateSelf applies the whitelisted self-service fields. Role and email
// never change here regardless of what the request body carried.
func (s *userService) UpdateSelf(actor permission.Actor, in dto.UpdateSelfDTO) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if in.Username != nil && *in.Username != user.Username {
		if taken, err := s.userRepo.UsernameTaken(*in.Username); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrUsernameInUse
		}
	}

	in.ApplyTo(user)
	if err := s.userRepo.Save(user); err != nil {
		return nil, translateUserDuplicate(err)
	}

	resp := dto.UserFromModel(user)
	return &resp, nil
}

// translateUserDuplicate turns unique-constraint sentinels from the
// repository into the field-specific service errors.
func translateUserDuplicate(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrEmailInUse
	case errors.Is(err, repository.ErrDuplicate):
		return ErrUsernameInUse
	}
	return err
}

func (s *userService) findUser(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
