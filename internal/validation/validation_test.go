package validation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/case-service/internal/validation"
)

func TestCheckReportsViolationsInRuleOrder(t *testing.T) {
	v := validation.New()

	violations := v.Check(validation.Fields{"email": "nope", "password": "ab"}, validation.SignUpRules)

	require.Equal(t, []validation.Violation{
		{Field: "tenantId", Message: "tenantId should not be empty"},
		{Field: "email", Message: "invalid email"},
		{Field: "password", Message: "password must be between 3 and 12 characters long"},
	}, violations)
	require.Equal(t,
		"tenantId should not be empty, invalid email, password must be between 3 and 12 characters long",
		validation.Join(violations))
}

func TestCheckPasswordBounds(t *testing.T) {
	v := validation.New()
	base := validation.Fields{"tenantId": "t1", "email": "a@x.com"}

	cases := map[string]bool{
		"ab":            false,
		"abc":           true,
		"abcdefghijkl":  true,
		"abcdefghijklm": false,
	}
	for password, ok := range cases {
		fields := validation.Fields{"password": password}
		for k, val := range base {
			fields[k] = val
		}
		require.Equal(t, ok, len(v.Check(fields, validation.SignUpRules)) == 0, password)
	}
}

func TestCheckOptionalRulesSkipAbsentFields(t *testing.T) {
	v := validation.New()

	require.Empty(t, v.Check(validation.Fields{}, validation.CaseUpdateRules))
	require.Empty(t, v.Check(validation.Fields{"status": "in_progress"}, validation.CaseUpdateRules))

	violations := v.Check(validation.Fields{"status": "closed", "licenseNumber": ""}, validation.CaseUpdateRules)
	require.Len(t, violations, 2)
	require.Equal(t, "status", violations[0].Field)
	require.Equal(t, "licenseNumber", violations[1].Field)
}

func TestCheckCaseCreate(t *testing.T) {
	v := validation.New()

	require.Empty(t, v.Check(validation.Fields{
		"licenseNumber": "L1",
		"ownerFullName": "Jane Doe",
		"type":          "sport",
		"date":          "2024-03-01",
	}, validation.CaseCreateRules))

	violations := v.Check(validation.Fields{"type": "boat", "date": "yesterday"}, validation.CaseCreateRules)
	require.Len(t, violations, 4)
}

func TestPublicReportRulesRequireTenant(t *testing.T) {
	v := validation.New()

	violations := v.Check(validation.Fields{
		"licenseNumber": "L1",
		"ownerFullName": "Jane Doe",
		"type":          "general",
	}, validation.PublicReportRules)
	require.Equal(t, []validation.Violation{{Field: "tenantId", Message: "tenantId should not be empty"}}, violations)
}

func TestParseDate(t *testing.T) {
	d, err := validation.ParseDate("2024-03-01")
	require.NoError(t, err)
	require.Equal(t, 2024, d.Year())

	_, err = validation.ParseDate("2024-03-01T10:00:00Z")
	require.NoError(t, err)

	_, err = validation.ParseDate("03/01/2024")
	require.Error(t, err)
}

func TestValidID(t *testing.T) {
	require.True(t, validation.ValidID("0b7f3c1e-8d5a-4f2b-9c6e-1a2b3c4d5e6f"))
	require.False(t, validation.ValidID("123"))
	require.False(t, validation.ValidID("0b7f3c1e8d5a4f2b9c6e1a2b3c4d5e6f"))
	require.False(t, validation.ValidID("zzzzzzzz-8d5a-4f2b-9c6e-1a2b3c4d5e6f"))
}
