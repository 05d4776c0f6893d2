package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"

	"github.com/Yquannn/sibbap-admin/internal/models"
)

func TestBindNestedOrFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		key         string
		body        string
		expected    UpdateFiltersRequest
		expectError bool
	}{
		{
			name:     "Nested filters",
			key:      "filters",
			body:     `{"filters": {"loan_id": "7", "status": "active"}}`,
			expected: UpdateFiltersRequest{LoanFilters: models.LoanFilters{LoanID: "7", Status: "active"}},
		},
		{
			name:     "Flat filters",
			key:      "filters",
			body:     `{"search": "regular", "repayment_search": "gcash"}`,
			expected: UpdateFiltersRequest{LoanFilters: models.LoanFilters{Search: "regular", RepaymentSearch: "gcash"}},
		},
		{
			name:     "Flat deposit query with other keys",
			key:      "filters",
			body:     `{"other": "value", "q": "ana"}`,
			expected: UpdateFiltersRequest{Query: "ana"},
		},
		{
			name:        "Wrong field type",
			key:         "filters",
			body:        `{"q": 42}`,
			expectError: true,
		},
		{
			name:        "Nested key with invalid content",
			key:         "filters",
			body:        `{"filters": "some string"}`,
			expectError: true,
		},
		{
			name:        "Empty body",
			key:         "filters",
			body:        ``,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("PATCH", "/screens/x/filters", bytes.NewBufferString(tt.body))

			var req UpdateFiltersRequest
			err := BindNestedOrFlat(c, tt.key, &req)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, req)
		})
	}
}

func TestBindNestedOrFlatKeepsBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/screens/loan-monitor", bytes.NewBufferString(`{"screen": {"member_id": "42"}}`))

	var req MountLoanMonitorRequest
	assert.NoError(t, BindNestedOrFlat(c, "screen", &req))
	assert.Equal(t, "42", req.MemberID)

	var again map[string]interface{}
	assert.NoError(t, c.ShouldBindBodyWith(&again, binding.JSON))
	assert.Contains(t, again, "screen")
}

func TestBindNestedOrFlatValidates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/screens/x/modal", bytes.NewBufferString(`{"modal": {"account_id": "7"}}`))

	var req ModalRequest
	assert.Error(t, BindNestedOrFlat(c, "modal", &req))
	assert.Equal(t, "7", req.AccountID)
}
