package editsession

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

// NewValidator returns a validator with the tags used by staffer forms:
// basic_email, and numeric checks on decimal.Decimal fields.
func NewValidator() *validator.Validate {
	return newValidator()
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	if err := v.RegisterValidation("basic_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

type profileInput struct {
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Email     string  `json:"email" validate:"required,basic_email"`
	Title     string  `json:"title" validate:"required"`
	Capacity  float64 `json:"capacity" validate:"gt=0,lte=168"`
}

type skillInput struct {
	Status string `json:"status" validate:"oneof=learning competent expert certified"`
}

type rateInput struct {
	CostRate decimal.Decimal `json:"cost_rate" validate:"gte=0"`
	BillRate decimal.Decimal `json:"bill_rate" validate:"gte=0"`
}

type timeOffInput struct {
	StartsAt time.Time `json:"time_off_start_datetime" validate:"required"`
	EndsAt   time.Time `json:"time_off_end_datetime" validate:"required,gtfield=StartsAt"`
	Hours    float64   `json:"time_off_cumulative_hours" validate:"gt=0"`
}

// FieldMessages runs v over input and returns failing fields keyed by prefix+json name.
func FieldMessages(v *validator.Validate, input any, prefix string, into map[string]string) {
	err := v.Struct(input)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		into[strings.TrimSuffix(prefix, ".")] = err.Error()
		return
	}
	for _, fe := range verrs {
		into[prefix+fe.Field()] = message(fe)
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "basic_email":
		return "must look like local@domain.tld"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "gtfield":
		return "end must be after start"
	case "oneof":
		return "must be one of " + fe.Param()
	}
	return "is invalid"
}

// Validate checks the visible profile and every staged record without any I/O.
func (s *Session) Validate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validateLocked()
}

func (s *Session) validateLocked() error {
	fields := map[string]string{}

	profile := s.profileLocked()
	FieldMessages(validate, profileInput{
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Email:     profile.Email,
		Title:     profile.Title,
		Capacity:  profile.Capacity,
	}, "", fields)

	for _, v := range s.visibleSkillsLocked() {
		if !v.Pending && !v.Modified {
			continue
		}
		prefix := fmt.Sprintf("skills[%s].", v.Key)
		FieldMessages(validate, skillInput{Status: string(v.Link.Status)}, prefix, fields)
		s.checkCertification(v.Link, prefix, fields)
	}

	if rate := s.visibleRateLocked(); rate != nil && (rate.Pending || rate.Modified) {
		FieldMessages(validate, rateInput{CostRate: rate.Rate.CostRate, BillRate: rate.Rate.BillRate}, "rate.", fields)
	}

	for _, v := range s.visibleTimeOffLocked() {
		if !v.Pending && !v.Modified {
			continue
		}
		FieldMessages(validate, timeOffInput{
			StartsAt: v.Entry.StartsAt,
			EndsAt:   v.Entry.EndsAt,
			Hours:    v.Entry.CumulativeHours,
		}, fmt.Sprintf("time_off[%s].", v.Key), fields)
	}

	if len(fields) > 0 {
		return errorutil.NewFieldValidationError(fields)
	}
	return nil
}

func (s *Session) checkCertification(link domain.StafferSkill, prefix string, fields map[string]string) {
	if link.CertificationActiveDate == nil && link.CertificationExpiryDate == nil {
		return
	}
	skill := link.Skill
	if skill == nil {
		skill = s.catalogSkill(link.SkillID)
	}
	if skill == nil || !skill.IsCertification {
		fields[prefix+"certification_active_date"] = "certification dates require a certification skill"
		return
	}
	if link.CertificationActiveDate != nil && link.CertificationExpiryDate != nil &&
		!link.CertificationExpiryDate.After(*link.CertificationActiveDate) {
		fields[prefix+"certification_expiry_date"] = "expiry must be after active date"
	}
}
