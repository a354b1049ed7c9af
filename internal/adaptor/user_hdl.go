package adaptor

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"user-panel/internal/dto/request"
	"user-panel/internal/usecase"
	"user-panel/internal/validation"
	"user-panel/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing;
// larger parts spill to temp files.
const maxUploadMemory = 8 << 20

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// ListUsers handles GET /api/users (admin only)
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	hobbyFilter := r.URL.Query().Get("hobbies")

	users, err := h.service.ListUsers(r.Context(), hobbyFilter)
	if err != nil {
		h.handleServiceError(w, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved successfully.", users)
}

// CreateUser handles POST /api/users (admin only)
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	in, photo, err := parseUserInput(r)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	user, err := h.service.CreateUser(r.Context(), in, photo)
	if err != nil {
		h.handleServiceError(w, err, "create user")
		return
	}

	utils.ResponseCreated(w, "User created successfully.", user)
}

// GetUser handles GET /api/users/{id} (admin only)
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.urlID(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get user")
		return
	}

	utils.ResponseSuccess(w, "User retrieved successfully.", user)
}

// UpdateUser handles PUT/PATCH /api/users/{id} (admin only)
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.urlID(w, r)
	if !ok {
		return
	}

	in, photo, err := parseUserInput(r)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	user, err := h.service.UpdateUser(r.Context(), id, in, photo)
	if err != nil {
		h.handleServiceError(w, err, "update user")
		return
	}

	utils.ResponseSuccess(w, "User updated successfully.", user)
}

// DeleteUser handles DELETE /api/users/{id} (admin only)
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.urlID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "delete user")
		return
	}

	utils.ResponseSuccess(w, "User deleted successfully.", nil)
}

// GetProfile handles GET /api/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved successfully.", profile)
}

// ProfileUpdate handles POST /api/users_profile_update. The target is
// always the authenticated principal, never a path parameter.
func (h *UserHandler) ProfileUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	in, photo, err := parseUserInput(r)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, in, photo)
	if err != nil {
		h.handleServiceError(w, err, "update profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated successfully.", profile)
}

func (h *UserHandler) urlID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		utils.ResponseNotFound(w, "User not found.")
		return uuid.Nil, false
	}

	return id, true
}

// handleServiceError maps service failures onto the response envelope
func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		h.log.Warn(operation+" validation failed", zap.Any("errors", verr.Fields))
		utils.ResponseBadRequest(w, "Validation Error.", verr.Fields)
		return
	}

	if errors.Is(err, usecase.ErrUserNotFound) {
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())
		return
	}

	h.log.Error("Failed to "+operation, zap.Error(err))
	utils.ResponseInternalError(w, "Internal server error")
}

// parseUserInput extracts the sparse field set and optional photo from
// a multipart form or JSON body. A form field is present only when the
// request actually carried it, so absent fields stay nil.
func parseUserInput(r *http.Request) (*request.UserInput, *multipart.FileHeader, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return parseMultipartInput(r)
	}

	in := &request.UserInput{}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(in); err != nil {
			return nil, nil, err
		}
	}
	return in, nil, nil
}

func parseMultipartInput(r *http.Request) (*request.UserInput, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, nil, err
	}

	form := r.MultipartForm
	in := &request.UserInput{
		FirstName:       formValue(form, "first_name"),
		LastName:        formValue(form, "last_name"),
		Email:           formValue(form, "email"),
		MobileNumber:    formValue(form, "mobile_number"),
		Password:        formValue(form, "password"),
		ConfirmPassword: formValue(form, "c_password"),
		Status:          formValue(form, "status"),
	}

	if tags, ok := form.Value["hobbies"]; ok {
		in.Hobbies = tags
	} else if tags, ok := form.Value["hobbies[]"]; ok {
		in.Hobbies = tags
	}

	var photo *multipart.FileHeader
	if files := form.File["user_photo"]; len(files) > 0 {
		photo = files[0]
	}

	return in, photo, nil
}

func formValue(form *multipart.Form, field string) *string {
	values, ok := form.Value[field]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
