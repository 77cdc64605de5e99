package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-deskboard/components/dashboard"
)

type dashboardService interface {
	ResolveDashboard(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.View, error)
}

// DashboardQuery resolves the viewer's board together with provider data.
type DashboardQuery struct {
	service dashboardService
}

// NewDashboardQuery builds the query.
func NewDashboardQuery(service dashboardService) *DashboardQuery {
	return &DashboardQuery{service: service}
}

var _ gocommand.Querier[dashboard.ViewerContext, dashboard.View] = (*DashboardQuery)(nil)

// Query resolves the dashboard for the viewer.
func (q *DashboardQuery) Query(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.View, error) {
	return q.service.ResolveDashboard(ctx, viewer)
}
