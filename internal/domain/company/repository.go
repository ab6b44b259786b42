package company

import "context"

type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (Company, error)
	GetByUsername(ctx context.Context, username string) (Company, error)
	Create(ctx context.Context, newCompany Company) (Company, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) error

	// List retrieves every company, ordered by name
	List(ctx context.Context) ([]Company, error)
}
