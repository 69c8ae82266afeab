package analytics

import "context"

type AnalyticsService interface {
	GetAnalytics(ctx context.Context, req AnalyticsRequest) (AnalyticsResponse, error)
}
