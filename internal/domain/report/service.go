package report

import "context"

type ReportService interface {
	// GenerateUserReport tallies one employee's calendar month
	GenerateUserReport(ctx context.Context, req UserReportRequest) (UserReport, error)

	// GenerateUserRangeReport tallies one employee over an arbitrary span
	GenerateUserRangeReport(ctx context.Context, req UserRangeReportRequest) (UserReport, error)

	// GenerateCompanyReport tallies every employee of the named company
	// over a month or an explicit date span
	GenerateCompanyReport(ctx context.Context, req CompanyReportRequest) (CompanyReport, error)

	// GenerateOverview produces per-company totals across the platform
	// (net admin only)
	GenerateOverview(ctx context.Context, req OverviewRequest) (Overview, error)
}
