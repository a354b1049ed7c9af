package usecase

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"user-panel/internal/data/entity"
	"user-panel/internal/data/repository"
	"user-panel/internal/dto/request"
	"user-panel/internal/dto/response"
	"user-panel/internal/validation"
	"user-panel/pkg/storage"
	"user-panel/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// photoPrefix is the object-store namespace for uploaded user photos.
const photoPrefix = "users/"

type UserService interface {
	ListUsers(ctx context.Context, hobbyFilter string) ([]response.UserResponse, error)
	CreateUser(ctx context.Context, in *request.UserInput, photo *multipart.FileHeader) (*response.UserResponse, error)
	GetUser(ctx context.Context, id uuid.UUID) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, in *request.UserInput, photo *multipart.FileHeader) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in *request.UserInput, photo *multipart.FileHeader) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	store    storage.ObjectStorage
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, store storage.ObjectStorage, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		store:    store,
		log:      log.With(zap.String("service", "user")),
	}
}

// ListUsers returns active, non-admin users, optionally narrowed by a
// substring match against the encoded hobbies blob.
func (us *userService) ListUsers(ctx context.Context, hobbyFilter string) ([]response.UserResponse, error) {
	users, err := us.userRepo.ListActive(ctx, hobbyFilter)
	if err != nil {
		us.log.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to get users")
	}

	return response.UsersToResponse(users), nil
}

func (us *userService) CreateUser(ctx context.Context, in *request.UserInput, photo *multipart.FileHeader) (*response.UserResponse, error) {
	rules := validation.BuildRules(false, nil)
	if err := rules.Validate(ctx, in, photo, us.userRepo); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(*in.Password)
	if err != nil {
		us.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New(),
		Email:        *in.Email,
		PasswordHash: hashed,
		Status:       entity.StatusActive,
		Role:         entity.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.MobileNumber != nil {
		user.MobileNumber = *in.MobileNumber
	}
	if in.Status != nil {
		user.Status = entity.StatusFromInput(*in.Status)
	}
	if err := user.SetHobbies(in.Hobbies); err != nil {
		us.log.Error("Failed to encode hobbies", zap.Error(err))
		return nil, fmt.Errorf("failed to create user")
	}

	if photo != nil {
		url, err := us.storePhoto(ctx, photo)
		if err != nil {
			us.log.Error("Failed to store photo", zap.Error(err))
			return nil, fmt.Errorf("failed to store photo")
		}
		user.PhotoURL = &url
	}

	if err := us.userRepo.Create(ctx, user); err != nil {
		us.log.Error("Failed to create user", zap.Error(err), zap.String("email", user.Email))
		return nil, fmt.Errorf("failed to create user")
	}

	us.log.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetUser(ctx context.Context, id uuid.UUID) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", id.String()))
		return nil, fmt.Errorf("failed to get user")
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateUser(ctx context.Context, id uuid.UUID, in *request.UserInput, photo *multipart.FileHeader) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to find user for update", zap.Error(err), zap.String("user_id", id.String()))
		return nil, fmt.Errorf("failed to get user")
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return us.applyUpdate(ctx, user, in, photo)
}

func (us *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to find user for delete", zap.Error(err), zap.String("user_id", id.String()))
		return fmt.Errorf("failed to get user")
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := us.userRepo.Delete(ctx, id); err != nil {
		us.log.Error("Failed to delete user", zap.Error(err), zap.String("user_id", id.String()))
		return fmt.Errorf("failed to delete user")
	}

	us.log.Info("User deleted",
		zap.String("user_id", id.String()),
		zap.String("email", user.Email))
	return nil
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	return us.GetUser(ctx, userID)
}

// UpdateProfile runs the update engine against the authenticated
// principal's own record; the target is never taken from the request.
func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, in *request.UserInput, photo *multipart.FileHeader) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		us.log.Error("Failed to find profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get profile")
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return us.applyUpdate(ctx, user, in, photo)
}

// applyUpdate validates the sparse input against the update rules and
// writes only the fields actually present onto the record. Nothing is
// persisted when validation fails. The record is saved exactly once,
// even when no recognized field accompanied the request.
func (us *userService) applyUpdate(ctx context.Context, user *entity.User, in *request.UserInput, photo *multipart.FileHeader) (*response.UserResponse, error) {
	rules := validation.BuildRules(true, &user.ID)
	if err := rules.Validate(ctx, in, photo, us.userRepo); err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.MobileNumber != nil {
		user.MobileNumber = *in.MobileNumber
	}
	if in.HasHobbies() {
		if err := user.SetHobbies(in.Hobbies); err != nil {
			us.log.Error("Failed to encode hobbies", zap.Error(err))
			return nil, fmt.Errorf("failed to update user")
		}
	}
	if in.Password != nil {
		hashed, err := utils.HashPassword(*in.Password)
		if err != nil {
			us.log.Error("Failed to hash password", zap.Error(err))
			return nil, fmt.Errorf("failed to process password")
		}
		user.PasswordHash = hashed
	}
	if in.Status != nil {
		user.Status = entity.StatusFromInput(*in.Status)
	}

	if photo != nil {
		url, err := us.storePhoto(ctx, photo)
		if err != nil {
			us.log.Error("Failed to store photo", zap.Error(err))
			return nil, fmt.Errorf("failed to store photo")
		}
		user.PhotoURL = &url
	}

	user.UpdatedAt = time.Now()
	if err := us.userRepo.Update(ctx, user); err != nil {
		us.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to update user")
	}

	us.log.Info("User updated", zap.String("user_id", user.ID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

// storePhoto writes the uploaded image under the users namespace and
// returns its public URL. The key embeds a fresh UUID so re-uploads
// never clash; the previous object is left behind.
func (us *userService) storePhoto(ctx context.Context, photo *multipart.FileHeader) (string, error) {
	file, err := photo.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded photo: %w", err)
	}
	defer file.Close()

	key := photoPrefix + uuid.NewString() + filepath.Ext(photo.Filename)
	contentType := photo.Header.Get("Content-Type")

	if err := us.store.Put(ctx, key, file, photo.Size, contentType); err != nil {
		return "", fmt.Errorf("store photo %s: %w", key, err)
	}

	return us.store.PublicURL(key), nil
}
