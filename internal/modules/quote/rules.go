package quote

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"quotelinker/internal/domain"
)

// Field names a single quote-form field. The JSON names double as the keys in
// validation error responses.
type Field string

const (
	FieldFirstName         Field = "firstName"
	FieldLastName          Field = "lastName"
	FieldEmail             Field = "email"
	FieldPhone             Field = "phone"
	FieldAge               Field = "age"
	FieldGender            Field = "gender"
	FieldTobaccoUse        Field = "tobaccoUse"
	FieldCoverageAmount    Field = "coverageAmount"
	FieldBestTimeToContact Field = "bestTimeToContact"
	FieldZipCode           Field = "zipCode"
)

type rule struct {
	tag     string
	message string
}

// fieldRules is the single source of truth for field validation. Step
// validation and whole-record validation both read from here, so a field can
// never pass at step time and fail at submit time (or vice versa).
var fieldRules = map[Field]rule{
	FieldFirstName:         {"required", "First name is required"},
	FieldLastName:          {"required", "Last name is required"},
	FieldEmail:             {"required,email", "Invalid email address"},
	FieldPhone:             {"required,phonedigits", "Phone number must be at least 10 digits"},
	FieldAge:               {"required,agerange", "Age must be between 18 and 85"},
	FieldGender:            {"required,oneof=male female", "Gender is required"},
	FieldTobaccoUse:        {"omitempty,oneof=yes no", "Tobacco use must be yes or no"},
	FieldCoverageAmount:    {"required,coveragetier", "Coverage amount is required"},
	FieldBestTimeToContact: {"omitempty,oneof=morning afternoon evening", "Best time to contact is invalid"},
	FieldZipCode:           {"required,zip5", "Invalid ZIP code"},
}

// stepFields groups fields by form step, matching the three-step layout.
var stepFields = [][]Field{
	{FieldFirstName, FieldLastName, FieldEmail, FieldPhone},
	{FieldAge, FieldGender, FieldTobaccoUse, FieldCoverageAmount},
	{FieldBestTimeToContact, FieldZipCode},
}

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("phonedigits", phoneDigits)
	_ = v.RegisterValidation("agerange", ageRange)
	_ = v.RegisterValidation("coveragetier", coverageTier)
	_ = v.RegisterValidation("zip5", zip5)
	return v
}

// phoneDigits requires at least ten digits after stripping formatting.
func phoneDigits(fl validator.FieldLevel) bool {
	digits := 0
	for _, r := range fl.Field().String() {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 10
}

func ageRange(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
	return err == nil && n >= 18 && n <= 85
}

func coverageTier(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	for _, tier := range domain.CoverageTiers {
		if v == tier {
			return true
		}
	}
	return false
}

func zip5(fl validator.FieldLevel) bool {
	return zipPattern.MatchString(fl.Field().String())
}

func (q *QuoteRequest) fieldValue(f Field) string {
	switch f {
	case FieldFirstName:
		return q.FirstName
	case FieldLastName:
		return q.LastName
	case FieldEmail:
		return q.Email
	case FieldPhone:
		return q.Phone
	case FieldAge:
		return q.Age
	case FieldGender:
		return q.Gender
	case FieldTobaccoUse:
		return q.TobaccoUse
	case FieldCoverageAmount:
		return q.CoverageAmount
	case FieldBestTimeToContact:
		return q.BestTimeToContact
	case FieldZipCode:
		return q.ZipCode
	}
	return ""
}

func checkField(f Field, q *QuoteRequest) (string, bool) {
	r := fieldRules[f]
	if err := validate.Var(q.fieldValue(f), r.tag); err != nil {
		return r.message, false
	}
	return "", true
}

// ValidateStep checks only the fields belonging to the given step and returns
// their error messages, or nil when the step is fully valid. Out-of-range
// steps validate nothing.
func ValidateStep(step int, q *QuoteRequest) FieldErrors {
	if step < 0 || step >= len(stepFields) {
		return nil
	}

	errs := FieldErrors{}
	for _, f := range stepFields[step] {
		if msg, ok := checkField(f, q); !ok {
			errs[string(f)] = msg
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateRecord applies every field's rule, exactly as the per-step checks
// do, and returns the union of failures.
func ValidateRecord(q *QuoteRequest) FieldErrors {
	errs := FieldErrors{}
	for step := range stepFields {
		for f, msg := range ValidateStep(step, q) {
			errs[f] = msg
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
