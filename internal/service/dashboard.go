package service

import (
	"context"
	"math"
	"time"

	"bizportal/internal/auth"
	"bizportal/internal/model"
	"bizportal/internal/repository"
)

const (
	recentWindow   = 30 * day
	monthsInChart  = 6
	recentProjects = 3
)

// DashboardService computes dashboard statistics.
type DashboardService interface {
	// AdminStats aggregates across every tenant. Document totals count the
	// caller's own admin documents plus all client documents.
	AdminStats(ctx context.Context, caller auth.Principal) (*model.AdminStats, error)

	// ClientStats covers only the calling tenant.
	ClientStats(ctx context.Context, caller auth.Principal) (*model.ClientStats, error)
}

type dashboardService struct {
	stats    repository.DashboardRepository
	projects repository.ProjectRepository
	now      func() time.Time
}

// NewDashboardService constructs a new DashboardService. A nil now uses time.Now.
func NewDashboardService(stats repository.DashboardRepository, projects repository.ProjectRepository, now func() time.Time) DashboardService {
	if now == nil {
		now = time.Now
	}
	return &dashboardService{stats: stats, projects: projects, now: now}
}

// growthPercent rounds half up, and is 0 when there is no baseline.
func growthPercent(recent, previous int) int {
	if previous <= 0 {
		return 0
	}
	return int(math.Floor(float64(recent-previous)/float64(previous)*100 + 0.5))
}

func statusDistribution(counts map[model.ProjectStatus]int) ([]model.StatusCount, int) {
	out := make([]model.StatusCount, 0, len(model.ProjectStatuses))
	total := 0
	for _, st := range model.ProjectStatuses {
		out = append(out, model.StatusCount{Status: st, Count: counts[st]})
		total += counts[st]
	}
	return out, total
}

// monthSeries zero-fills the last n calendar months ending with now's month.
func monthSeries(now time.Time, n int, counts []model.MonthCount) []model.MonthCount {
	byMonth := make(map[[2]int]int, len(counts))
	for _, c := range counts {
		byMonth[[2]int{c.Year, c.Month}] = c.Count
	}
	out := make([]model.MonthCount, 0, n)
	start := time.Date(now.Year(), now.Month()-time.Month(n-1), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		m := start.AddDate(0, i, 0)
		out = append(out, model.MonthCount{
			Year:  m.Year(),
			Month: int(m.Month()),
			Label: m.Format("Jan"),
			Count: byMonth[[2]int{m.Year(), int(m.Month())}],
		})
	}
	return out
}

func (s *dashboardService) AdminStats(ctx context.Context, caller auth.Principal) (*model.AdminStats, error) {
	if err := requireRole(caller, model.RoleAdmin); err != nil {
		return nil, err
	}
	now := s.now().UTC()

	totalClients, err := s.stats.CountClients(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	recent, err := s.stats.CountClients(ctx, now.Add(-recentWindow), time.Time{})
	if err != nil {
		return nil, err
	}
	previous, err := s.stats.CountClients(ctx, now.Add(-2*recentWindow), now.Add(-recentWindow))
	if err != nil {
		return nil, err
	}
	counts, err := s.stats.ProjectStatusCounts(ctx, "")
	if err != nil {
		return nil, err
	}
	admins, err := s.stats.CountAdmins(ctx)
	if err != nil {
		return nil, err
	}
	adminDocs, err := s.stats.CountAdminDocuments(ctx, caller.AccountID)
	if err != nil {
		return nil, err
	}
	clientDocs, err := s.stats.CountClientDocuments(ctx, "")
	if err != nil {
		return nil, err
	}
	since := time.Date(now.Year(), now.Month()-time.Month(monthsInChart-1), 1, 0, 0, 0, 0, time.UTC)
	byMonth, err := s.stats.ProjectsByMonth(ctx, since)
	if err != nil {
		return nil, err
	}

	dist, totalProjects := statusDistribution(counts)
	return &model.AdminStats{
		KPI: model.AdminKPI{
			TotalClients:        totalClients,
			RecentClients:       recent,
			ClientGrowthPercent: growthPercent(recent, previous),
			TotalProjects:       totalProjects,
			SubmittedProjects:   counts[model.StatusSubmitted],
			ActiveProjects:      counts[model.StatusInProgress],
			InReviewProjects:    counts[model.StatusInReview],
			CompletedProjects:   counts[model.StatusCompleted],
			TotalTeamMembers:    admins,
			TotalDocuments:      adminDocs + clientDocs,
		},
		StatusDistribution: dist,
		ProjectsByMonth:    monthSeries(now, monthsInChart, byMonth),
	}, nil
}

func (s *dashboardService) ClientStats(ctx context.Context, caller auth.Principal) (*model.ClientStats, error) {
	if err := requireRole(caller, model.RoleClient); err != nil {
		return nil, err
	}
	counts, err := s.stats.ProjectStatusCounts(ctx, caller.AccountID)
	if err != nil {
		return nil, err
	}
	docs, err := s.stats.CountClientDocuments(ctx, caller.AccountID)
	if err != nil {
		return nil, err
	}
	latest, err := s.projects.ListByClient(ctx, caller.AccountID, repository.PageQuery{Limit: recentProjects})
	if err != nil {
		return nil, err
	}

	_, total := statusDistribution(counts)
	return &model.ClientStats{
		KPI: model.ClientKPI{
			TotalProjects:     total,
			SubmittedProjects: counts[model.StatusSubmitted],
			ActiveProjects:    counts[model.StatusInProgress],
			InReviewProjects:  counts[model.StatusInReview],
			CompletedProjects: counts[model.StatusCompleted],
			TotalDocuments:    docs,
		},
		RecentProjects: latest.Items,
	}, nil
}
