package model

// StatusCount is the number of projects in one status.
type StatusCount struct {
	Status ProjectStatus `json:"name"`
	Count  int           `json:"value"`
}

// MonthCount is the number of projects created in one calendar month.
type MonthCount struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// AdminKPI is the headline numbers of the admin dashboard.
type AdminKPI struct {
	TotalClients        int `json:"totalClients"`
	RecentClients       int `json:"recentClients"`
	ClientGrowthPercent int `json:"clientGrowthPercent"`
	TotalProjects       int `json:"totalProjects"`
	SubmittedProjects   int `json:"submittedProjects"`
	ActiveProjects      int `json:"activeProjects"`
	InReviewProjects    int `json:"inReviewProjects"`
	CompletedProjects   int `json:"completedProjects"`
	TotalTeamMembers    int `json:"totalTeamMembers"`
	TotalDocuments      int `json:"totalDocuments"`
}

// AdminStats aggregates across all tenants.
type AdminStats struct {
	KPI                AdminKPI      `json:"kpi"`
	StatusDistribution []StatusCount `json:"projectStatusDistribution"`
	ProjectsByMonth    []MonthCount  `json:"projectsByMonth"`
}

// ClientKPI is the headline numbers of one tenant's dashboard.
type ClientKPI struct {
	TotalProjects     int `json:"totalProjects"`
	SubmittedProjects int `json:"submittedProjects"`
	ActiveProjects    int `json:"activeProjects"`
	InReviewProjects  int `json:"inReviewProjects"`
	CompletedProjects int `json:"completedProjects"`
	TotalDocuments    int `json:"totalDocuments"`
}

// ClientStats is scoped to the calling tenant.
type ClientStats struct {
	KPI            ClientKPI `json:"kpi"`
	RecentProjects []Project `json:"recentProjects"`
}
