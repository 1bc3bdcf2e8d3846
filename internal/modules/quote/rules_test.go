package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRequest() QuoteRequest {
	return QuoteRequest{
		FirstName:         "John",
		LastName:          "Smith",
		Email:             "john@example.com",
		Phone:             "5551234567",
		Age:               "35",
		Gender:            "male",
		TobaccoUse:        "no",
		CoverageAmount:    "$100,000",
		BestTimeToContact: "morning",
		ZipCode:           "55305",
	}
}

func TestValidateRecord_ValidRequest(t *testing.T) {
	req := validRequest()
	assert.Nil(t, ValidateRecord(&req))
}

func TestValidateRecord_EmailSyntax(t *testing.T) {
	req := validRequest()

	req.Email = "a@b.com"
	assert.Nil(t, ValidateRecord(&req))

	req.Email = "not-an-email"
	errs := ValidateRecord(&req)
	assert.Contains(t, errs, "email")
	assert.Equal(t, "Invalid email address", errs["email"])
}

func TestValidateRecord_AgeBoundaries(t *testing.T) {
	req := validRequest()

	for _, age := range []string{"18", "85"} {
		req.Age = age
		assert.Nil(t, ValidateRecord(&req), "age %s should be accepted", age)
	}

	for _, age := range []string{"17", "86", "", "abc"} {
		req.Age = age
		errs := ValidateRecord(&req)
		assert.Contains(t, errs, "age", "age %q should be rejected", age)
	}
}

func TestValidateRecord_ZipCode(t *testing.T) {
	req := validRequest()

	for _, zip := range []string{"55305", "55305-1234"} {
		req.ZipCode = zip
		assert.Nil(t, ValidateRecord(&req), "zip %s should be accepted", zip)
	}

	for _, zip := range []string{"5530", "553051234", "abcde", ""} {
		req.ZipCode = zip
		errs := ValidateRecord(&req)
		assert.Contains(t, errs, "zipCode", "zip %q should be rejected", zip)
	}
}

func TestValidateRecord_PhoneDigits(t *testing.T) {
	req := validRequest()

	// formatting characters are stripped before counting
	req.Phone = "(555) 123-4567"
	assert.Nil(t, ValidateRecord(&req))

	req.Phone = "555-1234"
	errs := ValidateRecord(&req)
	assert.Equal(t, "Phone number must be at least 10 digits", errs["phone"])
}

func TestValidateRecord_OptionalEnumsDefault(t *testing.T) {
	req := validRequest()

	// empty values fall back to form defaults downstream
	req.TobaccoUse = ""
	req.BestTimeToContact = ""
	assert.Nil(t, ValidateRecord(&req))

	req.TobaccoUse = "sometimes"
	errs := ValidateRecord(&req)
	assert.Contains(t, errs, "tobaccoUse")
}

func TestValidateRecord_CoverageTier(t *testing.T) {
	req := validRequest()

	req.CoverageAmount = "$1,000,000"
	assert.Nil(t, ValidateRecord(&req))

	req.CoverageAmount = "$75,000"
	errs := ValidateRecord(&req)
	assert.Contains(t, errs, "coverageAmount")
}

func TestValidateStep_OnlyChecksOwnFields(t *testing.T) {
	// step 0 must not complain about later steps' fields
	req := QuoteRequest{
		FirstName: "John",
		LastName:  "Smith",
		Email:     "john@example.com",
		Phone:     "5551234567",
	}
	assert.Nil(t, ValidateStep(0, &req))

	errs := ValidateStep(1, &req)
	assert.Contains(t, errs, "age")
	assert.Contains(t, errs, "gender")
	assert.Contains(t, errs, "coverageAmount")
}

func TestValidateStep_OutOfRange(t *testing.T) {
	req := QuoteRequest{}
	assert.Nil(t, ValidateStep(-1, &req))
	assert.Nil(t, ValidateStep(3, &req))
}

func TestValidateStep_SameRulesAsRecord(t *testing.T) {
	// a field failing at step time must fail identically at submit time
	req := validRequest()
	req.Email = "not-an-email"

	stepErrs := ValidateStep(0, &req)
	recordErrs := ValidateRecord(&req)
	assert.Equal(t, stepErrs["email"], recordErrs["email"])
}
