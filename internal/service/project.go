package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"bizportal/internal/apperr"
	"bizportal/internal/auth"
	"bizportal/internal/model"
	"bizportal/internal/repository"
)

const day = 24 * time.Hour

// CreateProjectInput carries the client-supplied fields of a new project.
// There is deliberately no owner field.
type CreateProjectInput struct {
	Name               string
	Service            string
	Description        string
	ExpectedCompletion string
	Timeline           []model.TimelinePhase
}

// UpdateProjectInput is a patch; nil fields are left unchanged.
type UpdateProjectInput struct {
	Name               *string
	Service            *string
	Description        *string
	Status             *model.ProjectStatus
	Progress           *int
	ExpectedCompletion *string
	Timeline           []model.TimelinePhase
}

// ProjectService defines the ownership-scoped project use cases.
type ProjectService interface {
	Create(ctx context.Context, caller auth.Principal, in CreateProjectInput) (*model.Project, error)
	List(ctx context.Context, caller auth.Principal, limit, offset int) (*ListResult[model.Project], error)
	Get(ctx context.Context, caller auth.Principal, id string) (*model.Project, error)

	// Update applies a patch. Status may be set to any known value from any
	// other value; only membership is checked.
	Update(ctx context.Context, caller auth.Principal, id string, in UpdateProjectInput) (*model.Project, error)

	AppendUpdate(ctx context.Context, caller auth.Principal, id, message string) (*model.Project, error)
	Delete(ctx context.Context, caller auth.Principal, id string) error
}

type projectService struct {
	repo repository.ProjectRepository
	now  func() time.Time
}

// NewProjectService constructs a new ProjectService. A nil now uses time.Now.
func NewProjectService(repo repository.ProjectRepository, now func() time.Time) ProjectService {
	if now == nil {
		now = time.Now
	}
	return &projectService{repo: repo, now: now}
}

// ParseDate accepts RFC 3339 timestamps and YYYY-MM-DD dates (UTC midnight).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.ParseInLocation(time.DateOnly, s, time.UTC)
}

// DefaultTimeline is the plan seeded on every new project without one.
func DefaultTimeline(now, expected time.Time) []model.TimelinePhase {
	return []model.TimelinePhase{
		{Phase: "Project Submitted", Date: now, Status: model.PhaseCompleted},
		{Phase: "Initial Review", Date: now.Add(day), Status: model.PhasePending},
		{Phase: "In Progress", Date: now.Add(3 * day), Status: model.PhasePending},
		{Phase: "Client Review", Date: now.Add(7 * day), Status: model.PhasePending},
		{Phase: "Final Delivery", Date: expected, Status: model.PhasePending},
	}
}

func validateTimeline(phases []model.TimelinePhase) error {
	for i, p := range phases {
		if strings.TrimSpace(p.Phase) == "" {
			return apperr.Validation(fmt.Sprintf("timeline[%d].phase is required", i))
		}
		if !p.Status.Valid() {
			return apperr.Validation(fmt.Sprintf("timeline[%d].status is invalid", i))
		}
	}
	return nil
}

func requireText(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return apperr.Validation(field + " is required")
	}
	return nil
}

func (s *projectService) Create(ctx context.Context, caller auth.Principal, in CreateProjectInput) (*model.Project, error) {
	if err := requireRole(caller, model.RoleClient); err != nil {
		return nil, err
	}
	if err := requireText("name", in.Name); err != nil {
		return nil, err
	}
	if err := requireText("service", in.Service); err != nil {
		return nil, err
	}
	if !model.ValidProjectService(in.Service) {
		return nil, apperr.Validation("service is invalid")
	}
	if err := requireText("description", in.Description); err != nil {
		return nil, err
	}
	if err := requireText("expectedCompletion", in.ExpectedCompletion); err != nil {
		return nil, err
	}
	expected, err := ParseDate(in.ExpectedCompletion)
	if err != nil {
		return nil, apperr.Validation("expectedCompletion must be a date (YYYY-MM-DD or RFC 3339)")
	}

	now := s.now().UTC()
	timeline := in.Timeline
	if len(timeline) == 0 {
		timeline = DefaultTimeline(now, expected)
	} else if err := validateTimeline(timeline); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	p := &model.Project{
		ID:                 uuid.NewString(),
		ClientID:           caller.AccountID,
		Name:               name,
		Service:            in.Service,
		Description:        strings.TrimSpace(in.Description),
		Status:             model.StatusSubmitted,
		Progress:           0,
		SubmissionDate:     now,
		ExpectedCompletion: expected,
		Timeline:           timeline,
		Updates: []model.ProjectUpdate{{
			Date:    now,
			Message: fmt.Sprintf(`Project "%s" has been submitted and is pending review.`, name),
			Author:  caller.Email,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.repo.Create(ctx, p)
}

func (s *projectService) List(ctx context.Context, caller auth.Principal, limit, offset int) (*ListResult[model.Project], error) {
	if err := requireRole(caller, model.RoleClient); err != nil {
		return nil, err
	}
	pq := pageQuery(limit, offset)
	res, err := s.repo.ListByClient(ctx, caller.AccountID, pq)
	if err != nil {
		return nil, err
	}
	return listResult(res, pq), nil
}

func (s *projectService) Get(ctx context.Context, caller auth.Principal, id string) (*model.Project, error) {
	if err := requireRole(caller, model.RoleClient); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	p, err := s.repo.FindForClient(ctx, caller.AccountID, id)
	if err != nil {
		return nil, notFound(err, "project")
	}
	return p, nil
}

func (s *projectService) Update(ctx context.Context, caller auth.Principal, id string, in UpdateProjectInput) (*model.Project, error) {
	p, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if err := requireText("name", *in.Name); err != nil {
			return nil, err
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Service != nil {
		if !model.ValidProjectService(*in.Service) {
			return nil, apperr.Validation("service is invalid")
		}
		p.Service = *in.Service
	}
	if in.Description != nil {
		if err := requireText("description", *in.Description); err != nil {
			return nil, err
		}
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, apperr.Validation("status must be one of Submitted, In Progress, In Review, Completed")
		}
		p.Status = *in.Status
	}
	if in.Progress != nil {
		if *in.Progress < 0 || *in.Progress > 100 {
			return nil, apperr.Validation("progress must be between 0 and 100")
		}
		p.Progress = *in.Progress
	}
	if in.ExpectedCompletion != nil {
		t, err := ParseDate(*in.ExpectedCompletion)
		if err != nil {
			return nil, apperr.Validation("expectedCompletion must be a date (YYYY-MM-DD or RFC 3339)")
		}
		p.ExpectedCompletion = t
	}
	if in.Timeline != nil {
		if err := validateTimeline(in.Timeline); err != nil {
			return nil, err
		}
		p.Timeline = in.Timeline
	}

	// The stored owner is kept; the repository filters on it again.
	p.ClientID = caller.AccountID
	p.UpdatedAt = s.now().UTC()
	out, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, notFound(err, "project")
	}
	return out, nil
}

func (s *projectService) AppendUpdate(ctx context.Context, caller auth.Principal, id, message string) (*model.Project, error) {
	if err := requireRole(caller, model.RoleClient); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := requireText("message", message); err != nil {
		return nil, err
	}
	u := model.ProjectUpdate{
		Date:    s.now().UTC(),
		Message: strings.TrimSpace(message),
		Author:  caller.Email,
	}
	p, err := s.repo.AppendUpdate(ctx, caller.AccountID, id, u)
	if err != nil {
		return nil, notFound(err, "project")
	}
	return p, nil
}

func (s *projectService) Delete(ctx context.Context, caller auth.Principal, id string) error {
	if err := requireRole(caller, model.RoleClient); err != nil {
		return err
	}
	if err := requireID(id); err != nil {
		return err
	}
	return notFound(s.repo.Delete(ctx, caller.AccountID, id), "project")
}
