package company

import "context"

type CompanyService interface {
	Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	GetByID(ctx context.Context, id string) (CompanyResponse, error)
	GetByUsername(ctx context.Context, username string) (CompanyResponse, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) error

	// List returns every company, optionally only the active ones
	// (net admin only)
	List(ctx context.Context, activeOnly bool) ([]CompanyResponse, error)
}
