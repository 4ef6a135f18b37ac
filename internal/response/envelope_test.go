package response_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-task-manager/backend/internal/response"
)

func TestEnvelope_StatusAgreement(t *testing.T) {
	cases := []struct {
		env     response.Envelope
		status  int
		success bool
	}{
		{response.OK("ok", nil), http.StatusOK, true},
		{response.BadRequest("bad"), http.StatusBadRequest, false},
		{response.NotFound("missing"), http.StatusNotFound, false},
		{response.InternalError("boom"), http.StatusInternalServerError, false},
		{response.Unauthorized("who"), http.StatusUnauthorized, false},
		{response.Forbidden("no"), http.StatusForbidden, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.env.Status(), tc.env.Message)
		assert.Equal(t, tc.status, tc.env.StatusCode, tc.env.Message)
		assert.Equal(t, tc.success, tc.env.Success, tc.env.Message)
		assert.Nil(t, tc.env.Data)
	}
}

func TestEnvelope_JSONShape(t *testing.T) {
	env := response.OK("taskRetrieved", map[string]string{"id": "1"})
	out, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"taskRetrieved","success":true,"statusCode":200,"data":{"id":"1"}}`, string(out))
}

func TestEnvelope_WithMessageCopies(t *testing.T) {
	env := response.NotFound("taskNotFound")
	localized := env.WithMessage("Task not found.")

	assert.Equal(t, "taskNotFound", env.Message)
	assert.Equal(t, "Task not found.", localized.Message)
	assert.Equal(t, env.StatusCode, localized.StatusCode)
}

func TestEnvelope_FailureWithPayload(t *testing.T) {
	details := map[string]string{"field": "title"}

	env := response.BadRequest("titleRequired", details)
	assert.Equal(t, http.StatusBadRequest, env.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, details, env.Data)

	assert.Equal(t, "x", response.NotFound("missing", "x").Data)
	assert.Equal(t, 42, response.InternalError("boom", 42).Data)
	assert.Nil(t, response.Forbidden("no").Data)

	out, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"titleRequired","success":false,"statusCode":400,"data":{"field":"title"}}`, string(out))
}
