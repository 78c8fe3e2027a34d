package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bizportal/internal/apperr"
	"bizportal/internal/auth"
	"bizportal/internal/model"
	"bizportal/internal/service"
)

func TestProjectRoutes_Gate(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, auth.Principal{}, http.MethodGet, "/api/clients/projects", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHENTICATED", decodeError(t, resp).Error.Code)

	resp = env.do(t, root, http.MethodGet, "/api/clients/projects", nil, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	env.projects.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateProject(t *testing.T) {
	env := newTestEnv(t)

	want := service.CreateProjectInput{
		Name:               "Site Revamp",
		Service:            "Software Development",
		Description:        "New marketing site",
		ExpectedCompletion: "2026-06-01",
	}
	env.projects.On("Create", mock.Anything, alice, want).
		Return(&model.Project{ID: uuid.NewString(), ClientID: alice.AccountID, Status: model.StatusSubmitted}, nil).Once()

	// An owner field in the body has no effect; identity comes from the token.
	resp := env.doJSON(t, alice, http.MethodPost, "/api/clients/projects", map[string]string{
		"name":               "Site Revamp",
		"service":            "Software Development",
		"description":        "New marketing site",
		"expectedCompletion": "2026-06-01",
		"clientId":           "c-bob",
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var p model.Project
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	assert.Equal(t, alice.AccountID, p.ClientID)
	env.projects.AssertExpectations(t)
}

func TestListProjects(t *testing.T) {
	env := newTestEnv(t)

	t.Run("success", func(t *testing.T) {
		env.projects.On("List", mock.Anything, alice, 5, 10).
			Return(&service.ListResult[model.Project]{Items: []model.Project{{ID: "p-1"}}, Total: 1, Limit: 5, Offset: 10}, nil).Once()

		resp := env.do(t, alice, http.MethodGet, "/api/clients/projects?limit=5&offset=10", nil, "")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Len(t, body["data"], 1)
		assert.Equal(t, float64(1), body["total"])
	})

	t.Run("invalid limit", func(t *testing.T) {
		resp := env.do(t, alice, http.MethodGet, "/api/clients/projects?limit=abc", nil, "")

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_LIMIT", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid offset", func(t *testing.T) {
		resp := env.do(t, alice, http.MethodGet, "/api/clients/projects?offset=x", nil, "")

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_OFFSET", decodeError(t, resp).Error.Code)
	})
}

func TestGetProject(t *testing.T) {
	env := newTestEnv(t)

	t.Run("success", func(t *testing.T) {
		id := uuid.NewString()
		env.projects.On("Get", mock.Anything, alice, id).Return(&model.Project{ID: id}, nil).Once()

		resp := env.do(t, alice, http.MethodGet, "/api/clients/projects/"+id, nil, "")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.NewString()
		env.projects.On("Get", mock.Anything, alice, id).Return(nil, apperr.NotFound("project not found")).Once()

		resp := env.do(t, alice, http.MethodGet, "/api/clients/projects/"+id, nil, "")

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp := env.do(t, alice, http.MethodGet, "/api/clients/projects/invalid-uuid", nil, "")

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		id := uuid.NewString()
		env.projects.On("Get", mock.Anything, alice, id).Return(nil, sql.ErrConnDone).Once()

		resp := env.do(t, alice, http.MethodGet, "/api/clients/projects/"+id, nil, "")

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestUpdateProject(t *testing.T) {
	env := newTestEnv(t)
	id := uuid.NewString()

	env.projects.On("Update", mock.Anything, alice, id, mock.MatchedBy(func(in service.UpdateProjectInput) bool {
		return in.Status != nil && *in.Status == model.StatusInReview &&
			in.Progress != nil && *in.Progress == 80 &&
			in.Name == nil && in.Timeline == nil
	})).Return(&model.Project{ID: id, Status: model.StatusInReview, Progress: 80}, nil).Once()

	resp := env.doJSON(t, alice, http.MethodPut, "/api/clients/projects/"+id, map[string]any{
		"status":   "In Review",
		"progress": 80,
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	env.projects.AssertExpectations(t)

	bad := uuid.NewString()
	env.projects.On("Update", mock.Anything, alice, bad, mock.Anything).
		Return(nil, apperr.Validation("status must be one of Submitted, In Progress, In Review, Completed")).Once()

	resp = env.doJSON(t, alice, http.MethodPut, "/api/clients/projects/"+bad, map[string]any{"status": "Archived"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, resp).Error.Code)
}

func TestAddProjectUpdate(t *testing.T) {
	env := newTestEnv(t)
	id := uuid.NewString()
	env.projects.On("AppendUpdate", mock.Anything, alice, id, "Design approved").
		Return(&model.Project{ID: id}, nil).Once()

	resp := env.doJSON(t, alice, http.MethodPost, "/api/clients/projects/"+id+"/updates", projectUpdateRequest{Message: "Design approved"})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	env.projects.AssertExpectations(t)
}

func TestDeleteProject(t *testing.T) {
	env := newTestEnv(t)

	t.Run("success", func(t *testing.T) {
		id := uuid.NewString()
		env.projects.On("Delete", mock.Anything, alice, id).Return(nil).Once()

		resp := env.do(t, alice, http.MethodDelete, "/api/clients/projects/"+id, nil, "")

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.NewString()
		env.projects.On("Delete", mock.Anything, alice, id).Return(apperr.NotFound("project not found")).Once()

		resp := env.do(t, alice, http.MethodDelete, "/api/clients/projects/"+id, nil, "")

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	env.projects.AssertExpectations(t)
}
