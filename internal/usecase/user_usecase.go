package usecase

import (
	"context"
	"errors"
	"fmt"

	"catalog_service/internal/domain"
	"catalog_service/internal/dto"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type UserUseCase interface {
	FindAllPaged(ctx context.Context, req domain.PageRequest) (domain.Page[dto.UserDTO], error)
	FindByID(ctx context.Context, id int64) (dto.UserDTO, error)
	Insert(ctx context.Context, user dto.UserInsertDTO) (dto.UserDTO, error)
	Update(ctx context.Context, id int64, user dto.UserDTO) (dto.UserDTO, error)
	Delete(ctx context.Context, id int64) error
}

type userUseCase struct {
	userRepo   domain.UserRepository
	bcryptCost int
	log        *logrus.Logger
}

func NewUserUseCase(repo domain.UserRepository, bcryptCost int, logger *logrus.Logger) UserUseCase {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userUseCase{
		userRepo:   repo,
		bcryptCost: bcryptCost,
		log:        logger,
	}
}

func (uc *userUseCase) FindAllPaged(ctx context.Context, req domain.PageRequest) (domain.Page[dto.UserDTO], error) {
	uc.log.Infof("Use Case: Attempting to list users (page: %d, size: %d, orderBy: %s %s)", req.Page, req.Size, req.OrderBy, req.Direction)

	page, err := uc.userRepo.FindPaged(ctx, req)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list users: %v", err)
		return domain.Page[dto.UserDTO]{}, fmt.Errorf("could not retrieve users: %w", err)
	}

	return domain.MapPage(page, dto.NewUserDTO), nil
}

func (uc *userUseCase) FindByID(ctx context.Context, id int64) (dto.UserDTO, error) {
	uc.log.Infof("Use Case: Attempting to get user with ID %d", id)

	user, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.log.Warnf("Use Case: User ID %d not found", id)
			return dto.UserDTO{}, &ResourceNotFoundError{Msg: fmt.Sprintf("Entity not found: id %d", id), Err: err}
		}
		uc.log.Errorf("Use Case: Repository failed to get user ID %d: %v", id, err)
		return dto.UserDTO{}, fmt.Errorf("could not retrieve user %d: %w", id, err)
	}

	return dto.NewUserDTO(*user), nil
}

// checkEmail rejects an email that already belongs to a user other than ownerID.
func (uc *userUseCase) checkEmail(ctx context.Context, email string, ownerID int64) error {
	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check email existence: %w", err)
	}
	if existing.ID != ownerID {
		uc.log.Warnf("Use Case: Email %s already belongs to user ID %d", email, existing.ID)
		return NewValidationError("email", "Email already exists")
	}
	return nil
}

func (uc *userUseCase) Insert(ctx context.Context, d dto.UserInsertDTO) (dto.UserDTO, error) {
	var entity domain.User
	d.CopyTo(&entity)
	uc.log.Infof("Use Case: Attempting registration for email: %s", entity.Email)

	if err := uc.checkEmail(ctx, entity.Email, 0); err != nil {
		return dto.UserDTO{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(d.Password), uc.bcryptCost)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to hash password for %s: %v", entity.Email, err)
		return dto.UserDTO{}, fmt.Errorf("internal error processing password: %w", err)
	}
	entity.PasswordHash = string(hashedPassword)

	saved, err := uc.userRepo.Save(ctx, &entity)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create user %s: %v", entity.Email, err)
		if errors.Is(err, domain.ErrIntegrityViolation) {
			return dto.UserDTO{}, NewValidationError("email", "Email already exists")
		}
		return dto.UserDTO{}, translateWriteError(err, "user", 0)
	}

	uc.log.Infof("Use Case: User registered successfully. ID: %d, Email: %s", saved.ID, saved.Email)
	return dto.NewUserDTO(*saved), nil
}

// Update overwrites the profile fields; the stored password hash is kept.
func (uc *userUseCase) Update(ctx context.Context, id int64, d dto.UserDTO) (dto.UserDTO, error) {
	entity := domain.User{ID: id}
	d.CopyTo(&entity)
	uc.log.Infof("Use Case: Attempting to update user ID %d", id)

	if err := uc.checkEmail(ctx, entity.Email, id); err != nil {
		return dto.UserDTO{}, err
	}

	saved, err := uc.userRepo.Save(ctx, &entity)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to update user ID %d: %v", id, err)
		if errors.Is(err, domain.ErrIntegrityViolation) {
			return dto.UserDTO{}, NewValidationError("email", "Email already exists")
		}
		return dto.UserDTO{}, translateWriteError(err, "user", id)
	}

	uc.log.Infof("Use Case: User updated successfully for ID %d", saved.ID)
	return dto.NewUserDTO(*saved), nil
}

func (uc *userUseCase) Delete(ctx context.Context, id int64) error {
	uc.log.Infof("Use Case: Attempting to delete user ID %d", id)

	if err := uc.userRepo.DeleteByID(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete user ID %d: %v", id, err)
		return translateWriteError(err, "user", id)
	}
	return nil
}
