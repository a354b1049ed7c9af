package validation

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"

	"user-panel/internal/dto/request"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const maxPhotoBytes = 2048 * 1024

var mobilePattern = regexp.MustCompile(`^[0-9\s\-+()]*$`)

var statusValues = map[string]struct{}{
	"Active":   {},
	"Inactive": {},
	"active":   {},
	"inactive": {},
}

var photoExtensions = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".gif":  {},
	".svg":  {},
}

var photoContentTypes = map[string]struct{}{
	"image/jpeg":    {},
	"image/jpg":     {},
	"image/png":     {},
	"image/gif":     {},
	"image/svg+xml": {},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Pattern check for phone-style input: digits, spaces, dashes,
	// plus signs and parentheses only.
	_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})
	return v
}

// FieldErrors maps a field name to the list of rule violations on it.
type FieldErrors map[string][]string

func (fe FieldErrors) add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Error carries the full per-field violation map for a rejected request.
type Error struct {
	Fields FieldErrors
}

func (e *Error) Error() string {
	return "Validation Error."
}

// UniqueEmailChecker answers whether an email is already taken by a
// record other than excludeID.
type UniqueEmailChecker interface {
	EmailTaken(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)
}

// RuleSet is the field-validation rule set for a create or update
// request. Building one has no side effects; the same (isUpdate,
// excludeID) pair always yields the same rules.
type RuleSet struct {
	isUpdate  bool
	excludeID *uuid.UUID
}

// BuildRules returns the rule set for the operation. On update,
// excludeID identifies the record whose own email is exempt from the
// uniqueness check.
func BuildRules(isUpdate bool, excludeID *uuid.UUID) RuleSet {
	return RuleSet{isUpdate: isUpdate, excludeID: excludeID}
}

// Validate runs every rule against the sparse input and collects all
// violations before returning. A non-nil *Error means the request must
// be rejected without touching the record. Infrastructure failures
// from the uniqueness checker are returned as ordinary errors.
func (rs RuleSet) Validate(ctx context.Context, in *request.UserInput, photo *multipart.FileHeader, emails UniqueEmailChecker) error {
	fields := FieldErrors{}

	rs.checkName(fields, "first_name", in.FirstName)
	rs.checkName(fields, "last_name", in.LastName)
	rs.checkMobile(fields, in.MobileNumber)
	rs.checkStatus(fields, in.Status)
	rs.checkPassword(fields, in.Password, in.ConfirmPassword)
	rs.checkPhoto(fields, photo)

	if err := rs.checkEmail(ctx, fields, in.Email, emails); err != nil {
		return err
	}

	if len(fields) > 0 {
		return &Error{Fields: fields}
	}
	return nil
}

func (rs RuleSet) checkName(fields FieldErrors, field string, value *string) {
	if value == nil {
		return
	}
	if strings.TrimSpace(*value) == "" {
		fields.add(field, "The "+field+" field is required.")
	}
}

func (rs RuleSet) checkMobile(fields FieldErrors, value *string) {
	if value == nil {
		return
	}
	if err := validate.Var(*value, "required,mobile"); err != nil {
		fields.add("mobile_number", "The mobile number format is invalid.")
	}
	if err := validate.Var(*value, "min=10"); err != nil {
		fields.add("mobile_number", "The mobile number must be at least 10 characters.")
	}
}

func (rs RuleSet) checkStatus(fields FieldErrors, value *string) {
	if value == nil {
		return
	}
	if _, ok := statusValues[*value]; !ok {
		fields.add("status", "The selected status is invalid.")
	}
}

func (rs RuleSet) checkPassword(fields FieldErrors, password, confirm *string) {
	if !rs.isUpdate && password == nil {
		fields.add("password", "The password field is required.")
	}
	if password != nil {
		if err := validate.Var(*password, "required,min=6"); err != nil {
			fields.add("password", "The password must be at least 6 characters.")
		}
	}

	// Confirmation is mandatory at creation, and on update whenever a
	// password accompanies the request.
	confirmRequired := !rs.isUpdate || password != nil
	if confirmRequired && confirm == nil {
		fields.add("c_password", "The c_password field is required.")
		return
	}
	if confirm != nil && password != nil && *confirm != *password {
		fields.add("c_password", "The c_password and password must match.")
	}
}

func (rs RuleSet) checkPhoto(fields FieldErrors, photo *multipart.FileHeader) {
	if photo == nil {
		return
	}
	if !allowedImage(photo) {
		fields.add("user_photo", "The user_photo must be an image of type: jpeg, png, jpg, gif, svg.")
	}
	if photo.Size > maxPhotoBytes {
		fields.add("user_photo", "The user_photo must not be greater than 2048 kilobytes.")
	}
}

func (rs RuleSet) checkEmail(ctx context.Context, fields FieldErrors, value *string, emails UniqueEmailChecker) error {
	if value == nil {
		if !rs.isUpdate {
			fields.add("email", "The email field is required.")
		}
		return nil
	}

	if err := validate.Var(*value, "required,email"); err != nil {
		fields.add("email", "The email must be a valid email address.")
		return nil
	}

	if emails == nil {
		return nil
	}
	taken, err := emails.EmailTaken(ctx, *value, rs.excludeID)
	if err != nil {
		return err
	}
	if taken {
		fields.add("email", "The email has already been taken.")
	}
	return nil
}

func allowedImage(photo *multipart.FileHeader) bool {
	if contentType := photo.Header.Get("Content-Type"); contentType != "" {
		_, ok := photoContentTypes[strings.ToLower(contentType)]
		return ok
	}
	ext := strings.ToLower(filepath.Ext(photo.Filename))
	_, ok := photoExtensions[ext]
	return ok
}
