package role

import (
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ContractFlow/ContractFlow-Admin/internal/db/models"
)

const (
	tagRoleColor  = "role_color"
	tagCapability = "capability"
	tagImmutable  = "immutable"
)

var validate = newValidator() //nolint:gochecknoglobals

// Input holds the fields accepted when creating a role.
type Input struct {
	Name        string       `json:"name"        validate:"required,max=100"`
	DisplayName string       `json:"displayName" validate:"required,max=100"`
	Description string       `json:"description" validate:"max=255"`
	Color       models.Color `json:"color"       validate:"role_color"`
	IsSystem    bool         `json:"isSystem"`
	// Permissions overrides single capabilities; unset ones keep their defaults.
	Permissions map[models.Capability]bool `json:"defaultPermissions"`
	CreatedBy   *uint64                    `json:"createdBy"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json names, they are what the admin UI knows about
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0] //nolint:mnd
		if name == "-" {
			return ""
		}

		return name
	})

	_ = v.RegisterValidation(tagRoleColor, func(fl validator.FieldLevel) bool {
		return models.Color(fl.Field().String()).Valid()
	})

	return v
}

// NormalizeName returns the stored form of a role name: trimmed and lowercased.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (in Input) normalized() Input {
	in.Name = NormalizeName(in.Name)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	in.Description = strings.TrimSpace(in.Description)
	in.Color = models.Color(strings.TrimSpace(string(in.Color)))

	return in
}

// check validates in and applies its permission overrides on top of perms.
// perms is left untouched when validation fails.
func (in Input) check(perms *models.Permissions) error {
	var fields []FieldError

	if err := validate.Struct(in); err != nil {
		var errs validator.ValidationErrors
		if !asValidationErrors(err, &errs) {
			return err
		}

		for _, e := range errs {
			fields = append(fields, FieldError{
				Field: e.Field(),
				Tag:   e.Tag(),
				Value: e.Value(),
			})
		}
	}

	unknown := make([]string, 0)

	for c := range in.Permissions {
		if !c.Valid() {
			unknown = append(unknown, string(c))
		}
	}

	sort.Strings(unknown)

	for _, c := range unknown {
		fields = append(fields, FieldError{
			Field: "defaultPermissions." + c,
			Tag:   tagCapability,
			Value: c,
		})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	return perms.Apply(in.Permissions)
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	errs, ok := err.(validator.ValidationErrors) //nolint:errorlint // validator returns the slice unwrapped
	if ok {
		*target = errs
	}

	return ok
}
