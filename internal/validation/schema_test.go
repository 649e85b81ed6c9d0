package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailValidator_AcceptsCoercedDetails(t *testing.T) {
	validator, err := NewDetailValidator()
	require.NoError(t, err)

	err = validator.Validate(map[string]any{
		"location":    "Springdale, Utah",
		"established": 1919,
		"size_acres":  147242,
		"best_time":   "Spring",
	})
	require.NoError(t, err)
}

func TestDetailValidator_ReportsTypeIssues(t *testing.T) {
	validator, err := NewDetailValidator()
	require.NoError(t, err)

	err = validator.Validate(map[string]any{
		"established": "circa 1909",
	})
	require.Error(t, err)
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}

	issues := Issues(err)
	require.Len(t, issues, 1)
	assert.Equal(t, "/established", issues[0].Location)
	assert.Contains(t, err.Error(), "#/established")
}

func TestDetailValidator_CollectsEveryIssue(t *testing.T) {
	validator, err := NewDetailValidator()
	require.NoError(t, err)

	err = validator.Validate(map[string]any{
		"size_acres": -4,
		"location":   "",
	})
	require.Error(t, err)

	locations := map[string]bool{}
	for _, issue := range Issues(err) {
		locations[issue.Location] = true
	}
	assert.True(t, locations["/size_acres"])
	assert.True(t, locations["/location"])
}

func TestDetailValidator_NilAcceptsEverything(t *testing.T) {
	var validator *DetailValidator
	require.NoError(t, validator.Validate(map[string]any{"established": "soon"}))
}

func TestNewValidator_RejectsBrokenSchema(t *testing.T) {
	_, err := NewValidator([]byte(`{"type": 12}`))
	require.ErrorIs(t, err, ErrSchemaInvalid)
}

func TestIssues_FallsBackToMessage(t *testing.T) {
	issues := Issues(errors.New("boom"))
	require.Len(t, issues, 1)
	assert.Equal(t, "boom", issues[0].Message)
	assert.Nil(t, Issues(nil))
}
