// Package errors_test provides table-driven unit tests for the error code
// definitions in pkg/errors/codes.go.
package errors_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slidegrove/analytics-engine/pkg/errors"
)

type codeEntry struct {
	code             errors.Code
	expectedCategory errors.Category
	expectedHTTP     int
	expectedRetry    bool
}

// allCodes enumerates every Code constant defined in codes.go together with
// its expected Category(), HTTPStatus(), and DefaultRetryable() mapping.
var allCodes = []codeEntry{
	{errors.CodeInvalidDataPoints, errors.CategoryValidation, http.StatusBadRequest, true},
	{errors.CodeInvalidLabels, errors.CategoryValidation, http.StatusBadRequest, true},
	{errors.CodeInvalidValues, errors.CategoryValidation, http.StatusBadRequest, true},
	{errors.CodeMismatchedLengths, errors.CategoryValidation, http.StatusBadRequest, true},
	{errors.CodeDuplicateLabels, errors.CategoryValidation, http.StatusBadRequest, true},
	{errors.CodeDataRangeError, errors.CategoryValidation, http.StatusBadRequest, true},
	{errors.CodeEmptyField, errors.CategoryValidation, http.StatusBadRequest, true},
	{errors.CodeInvalidAnalyticsType, errors.CategoryValidation, http.StatusBadRequest, true},
	{errors.CodeInvalidLayout, errors.CategoryValidation, http.StatusBadRequest, true},
	{errors.CodeInvalidChartType, errors.CategoryValidation, http.StatusBadRequest, true},

	{errors.CodeChartGenerationFailed, errors.CategoryProcessing, http.StatusInternalServerError, true},
	{errors.CodeLayoutAssemblyFailed, errors.CategoryProcessing, http.StatusInternalServerError, true},
	{errors.CodeLLMError, errors.CategoryProcessing, http.StatusInternalServerError, true},

	{errors.CodeChartNotFound, errors.CategoryResource, http.StatusNotFound, false},
	{errors.CodePresentationNotFound, errors.CategoryResource, http.StatusNotFound, false},

	{errors.CodeRateLimitExceeded, errors.CategoryRateLimit, http.StatusTooManyRequests, true},

	{errors.CodeUnknownError, errors.CategorySystem, http.StatusInternalServerError, true},
}

func TestCode_Category(t *testing.T) {
	t.Parallel()
	for _, tc := range allCodes {
		tc := tc
		t.Run(string(tc.code), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expectedCategory, tc.code.Category())
		})
	}
}

func TestCode_Category_UnknownFallsBackToSystem(t *testing.T) {
	t.Parallel()
	assert.Equal(t, errors.CategorySystem, errors.Code("SOME_MADE_UP_CODE").Category())
}

func TestCode_HTTPStatus(t *testing.T) {
	t.Parallel()
	for _, tc := range allCodes {
		tc := tc
		t.Run(string(tc.code), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expectedHTTP, tc.code.HTTPStatus())
		})
	}
}

func TestCode_DefaultRetryable(t *testing.T) {
	t.Parallel()
	for _, tc := range allCodes {
		tc := tc
		t.Run(string(tc.code), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expectedRetry, tc.code.DefaultRetryable())
		})
	}
}

// TestCode_AllCodesHaveValidHTTPStatus guards against typos such as 40
// instead of 400 by checking every code maps to a well-known status.
func TestCode_AllCodesHaveValidHTTPStatus(t *testing.T) {
	t.Parallel()

	validStatuses := map[int]bool{
		http.StatusBadRequest:          true,
		http.StatusNotFound:            true,
		http.StatusTooManyRequests:     true,
		http.StatusInternalServerError: true,
	}

	for _, tc := range allCodes {
		tc := tc
		t.Run(string(tc.code), func(t *testing.T) {
			t.Parallel()
			assert.True(t, validStatuses[tc.code.HTTPStatus()],
				"HTTPStatus() for %s returned unexpected status %d", tc.code, tc.code.HTTPStatus())
		})
	}
}
