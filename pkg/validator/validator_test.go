package validator

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	OwnerID int64  `json:"owner_id" validate:"gte=0,lte=1000000"`
}

func TestValidate_Success(t *testing.T) {
	s := storeInput{Name: "Corner Bakery", Email: "bakery@example.com", OwnerID: 3}
	err := Validate(s)
	assert.NoError(t, err)
}

func TestValidate_MissingRequired(t *testing.T) {
	s := storeInput{Email: "bakery@example.com"}
	err := Validate(s)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "name")
	assert.Equal(t, "is required", fields["name"])
}

func TestValidate_InvalidEmail(t *testing.T) {
	s := storeInput{Name: "Corner Bakery", Email: "not-an-email"}
	err := Validate(s)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be a valid email address", valErr.Fields()["email"])
}

func TestValidate_OutOfRange(t *testing.T) {
	s := storeInput{Name: "Corner Bakery", Email: "bakery@example.com", OwnerID: -1}
	err := Validate(s)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields()["owner_id"], "0")
}

func TestValidate_MultipleErrors(t *testing.T) {
	err := Validate(storeInput{})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
}

func TestValidationError_ErrorString(t *testing.T) {
	err := Validate(storeInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'name'")
	assert.Contains(t, err.Error(), "is required")
}

type minMaxStruct struct {
	Short string `json:"short" validate:"min=3"`
	Long  string `json:"long" validate:"max=5"`
}

func TestValidate_MinMax(t *testing.T) {
	err := Validate(minMaxStruct{Short: "ab", Long: "toolongstring"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields["short"], "at least 3")
	assert.Contains(t, fields["long"], "at most 5")
}

type oneofStruct struct {
	Role string `json:"role" validate:"oneof=Admin User StoreOwner"`
}

func TestValidate_OneOf(t *testing.T) {
	err := Validate(oneofStruct{Role: "Guest"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields()["role"], "one of")
}

// ---------------------------------------------------------------------------
// Custom rules
// ---------------------------------------------------------------------------

type customRuleStruct struct {
	Code  string `json:"code" validate:"testupper"`
	Label string `json:"label" validate:"testnodigit"`
}

func registerTestRules(t *testing.T) {
	t.Helper()
	require.NoError(t, RegisterRule("testupper", func(s string) bool {
		for _, r := range s {
			if !unicode.IsUpper(r) {
				return false
			}
		}
		return s != ""
	}, "Code must be upper case."))
	require.NoError(t, RegisterRule("testnodigit", func(s string) bool {
		return !strings.ContainsAny(s, "0123456789")
	}, "Label must not contain digits."))
}

func TestRegisterRule_MessageIsVerbatim(t *testing.T) {
	registerTestRules(t)

	err := Validate(customRuleStruct{Code: "abc", Label: "ok"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Code must be upper case.", valErr.First())
	assert.Equal(t, "Code must be upper case.", valErr.Fields()["code"])
}

func TestRegisterRule_EmptyValueIsChecked(t *testing.T) {
	registerTestRules(t)

	err := Validate(customRuleStruct{Label: "ok"})
	require.Error(t, err)
}

func TestRegisterRule_Passes(t *testing.T) {
	registerTestRules(t)

	assert.NoError(t, Validate(customRuleStruct{Code: "ABC", Label: "label"}))
}

func TestRegisterRule_RejectsEmptyTag(t *testing.T) {
	err := RegisterRule("", func(string) bool { return true }, "x")
	assert.Error(t, err)
}

func TestFirst_FollowsDeclarationOrder(t *testing.T) {
	registerTestRules(t)

	err := Validate(customRuleStruct{Code: "abc", Label: "l4bel"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Code must be upper case.", valErr.First())
	assert.Len(t, valErr.Errors, 2)
}

func TestFirst_Empty(t *testing.T) {
	assert.Equal(t, "", (&ValidationError{}).First())
}
