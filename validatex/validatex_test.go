package validatex

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arest/oauthkit/errx"
)

type providerSettings struct {
	Endpoint string `validatex:"required,url"`
	ClientID string `validatex:"required"`
	Scope    string `validatex:"max=64"`
	Flow     string `validatex:"oneof=code token"`
}

func TestValidatePasses(t *testing.T) {
	err := Validate(providerSettings{
		Endpoint: "https://github.com/login/oauth/authorize",
		ClientID: "gh-client",
		Scope:    "user:email",
		Flow:     "code",
	})
	assert.NoError(t, err)
}

func TestValidateCollectsFailedFields(t *testing.T) {
	err := Validate(providerSettings{
		Endpoint: "/relative",
		Flow:     "code",
	})
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, ErrInvalidStruct))

	var xerr *errx.Error
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, "url", xerr.Details["Endpoint"])
	assert.Equal(t, "required", xerr.Details["ClientID"])
	assert.NotContains(t, xerr.Details, "Scope")
}

func TestValidateOptionalRulesSkipZeroValues(t *testing.T) {
	// Flow is unset: oneof must not fire
	err := Validate(providerSettings{
		Endpoint: "https://example.com/authorize",
		ClientID: "c",
	})
	assert.NoError(t, err)

	err = Validate(providerSettings{
		Endpoint: "https://example.com/authorize",
		ClientID: "c",
		Flow:     "implicit",
	})
	require.Error(t, err)
}

func TestValidateNestedStruct(t *testing.T) {
	type inner struct {
		Email string `validatex:"required,email"`
	}
	type outer struct {
		Name    string `validatex:"required"`
		Contact inner
	}

	err := Validate(outer{Name: "x", Contact: inner{Email: "not-an-email"}})
	require.Error(t, err)

	var xerr *errx.Error
	require.ErrorAs(t, err, &xerr)
	assert.Contains(t, xerr.Details, "Contact.Email")
}

func TestValidateNotStruct(t *testing.T) {
	err := Validate("not a struct")
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, ErrNotStruct))
}

type selfValidating struct{ fail bool }

func (s selfValidating) Validate() error {
	if s.fail {
		return errors.New("custom failure")
	}
	return nil
}

func TestValidatableShortCircuits(t *testing.T) {
	assert.NoError(t, Validate(selfValidating{}))
	assert.EqualError(t, Validate(selfValidating{fail: true}), "custom failure")
}

func TestRegisterValidationFunc(t *testing.T) {
	RegisterValidationFunc("even", func(value any, _ string) bool {
		n, ok := value.(int)
		return ok && n%2 == 0
	})

	type counted struct {
		N int `validatex:"even"`
	}

	assert.NoError(t, Validate(counted{N: 4}))
	assert.Error(t, Validate(counted{N: 3}))
}

func TestBuiltinRules(t *testing.T) {
	cases := []struct {
		name  string
		fn    ValidationFunc
		value any
		param string
		want  bool
	}{
		{"email ok", validateEmail, "a@example.com", "", true},
		{"email bad", validateEmail, "nope", "", false},
		{"url ok", validateURL, "https://example.com/x", "", true},
		{"url no scheme", validateURL, "example.com/x", "", false},
		{"url no host", validateURL, "file:", "", false},
		{"min string", validateMin, "abc", "2", true},
		{"min string short", validateMin, "a", "2", false},
		{"min int", validateMin, 5, "5", true},
		{"max string", validateMax, "abc", "2", false},
		{"max slice", validateMax, []string{"a"}, "2", true},
		{"oneof hit", validateOneOf, "code", "code token", true},
		{"oneof miss", validateOneOf, "implicit", "code token", false},
		{"regex hit", validateRegex, "abc123", `^[a-z]+[0-9]+$`, true},
		{"regex miss", validateRegex, "123abc", `^[a-z]+[0-9]+$`, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.fn(tc.value, tc.param))
		})
	}
}
