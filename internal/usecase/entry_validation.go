package usecase

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wichananm65/entries-backend/internal/domain/entity"
)

var (
	gmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@gmail\.com$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// entryRules mirrors entity.Fields with the rules every stored entry obeys.
type entryRules struct {
	Name    string   `json:"name"    validate:"required,min=2"`
	Email   string   `json:"email"   validate:"required,gmail"`
	Phone   string   `json:"phone"   validate:"required,phone10"`
	Hobbies []string `json:"hobbies" validate:"required,min=1"`
	Place   string   `json:"place"   validate:"required"`
	Gender  string   `json:"gender"  validate:"required,oneof=Male Female Other"`
}

// fieldMessages maps field -> failed tag -> message returned to clients.
var fieldMessages = map[string]map[string]string{
	"name": {
		"required": "Name is required",
		"min":      "Name must be at least 2 characters",
	},
	"email": {
		"required": "Email is required",
		"gmail":    "Please provide a valid Gmail address",
	},
	"phone": {
		"required": "Phone number is required",
		"phone10":  "Phone number must be 10 digits",
	},
	"hobbies": {
		"required": "At least one hobby is required",
		"min":      "At least one hobby is required",
	},
	"place": {
		"required": "Place is required",
	},
	"gender": {
		"required": "Gender is required",
		"oneof":    "Gender must be either Male, Female, or Other",
	},
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("gmail", func(fl validator.FieldLevel) bool {
		return gmailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return v
}

// validateFields checks f and returns a *entity.ValidationError listing
// every violated field in declaration order.
func validateFields(v *validator.Validate, f entity.Fields) error {
	err := v.Struct(entryRules{
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Hobbies: f.Hobbies,
		Place:   f.Place,
		Gender:  string(f.Gender),
	})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &entity.ValidationError{Errors: make([]entity.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Errors = append(out.Errors, entity.FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe.Field(), fe.Tag()),
		})
	}
	return out
}

func messageFor(field, tag string) string {
	if msg, ok := fieldMessages[field][tag]; ok {
		return msg
	}
	return field + " is invalid"
}

// normalizeFields applies the write-side normalization: trimmed name, email
// and place, lowercased email, and a trimmed de-duplicated hobby list.
// Phone and gender are taken as-is.
func normalizeFields(in EntryInput) entity.Fields {
	return entity.Fields{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:   in.Phone,
		Hobbies: normalizeHobbies(in.Hobbies),
		Place:   strings.TrimSpace(in.Place),
		Gender:  entity.Gender(in.Gender),
	}
}

func normalizeHobbies(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, h := range in {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}
