package company

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/company"
	"github.com/punchclock-io/punchclock-backend-go/internal/domain/user"
	"github.com/punchclock-io/punchclock-backend-go/internal/pkg/database"
)

type CompanyServiceImpl struct {
	db *database.DB
	company.CompanyRepository
}

func NewCompanyService(db *database.DB, companyRepo company.CompanyRepository) company.CompanyService {
	return &CompanyServiceImpl{db: db, CompanyRepository: companyRepo}
}

func claimsFromContext(ctx context.Context) (companyID string, permission user.Permission, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, _ = claims["company_id"].(string)
	permission, ok := user.PermissionFromClaim(claims["permission"])
	if !ok {
		return "", 0, user.ErrInvalidPermission
	}
	return companyID, permission, nil
}

// Create implements company.CompanyService. Reserved for net admins;
// regular companies come in through registration.
func (s *CompanyServiceImpl) Create(ctx context.Context, req company.CreateCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	_, permission, err := claimsFromContext(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	if !permission.IsNetAdmin() {
		return company.CompanyResponse{}, user.ErrUnauthorized
	}

	taken, err := s.CompanyRepository.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to check company username: %w", err)
	}
	if taken {
		return company.CompanyResponse{}, company.ErrCompanyUsernameExists
	}

	workCapacity := 8.0
	if req.DefaultWorkCapacity != nil {
		workCapacity = *req.DefaultWorkCapacity
	}
	weekendChoice := req.DefaultWeekendChoice
	if len(weekendChoice) == 0 {
		weekendChoice = []string{"saturday", "sunday"}
	}

	created, err := s.CompanyRepository.Create(ctx, company.Company{
		Name:                 req.Name,
		Username:             req.Username,
		Address:              req.Address,
		DefaultWeekendChoice: weekendChoice,
		DefaultWorkCapacity:  workCapacity,
	})
	if err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to create company: %w", err)
	}
	return company.NewCompanyResponse(created), nil
}

// GetByID implements company.CompanyService.
func (s *CompanyServiceImpl) GetByID(ctx context.Context, id string) (company.CompanyResponse, error) {
	callerCompanyID, permission, err := claimsFromContext(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	if !permission.IsNetAdmin() && callerCompanyID != id {
		return company.CompanyResponse{}, user.ErrUnauthorized
	}

	found, err := s.CompanyRepository.GetByID(ctx, id)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return company.NewCompanyResponse(found), nil
}

// GetByUsername implements company.CompanyService.
func (s *CompanyServiceImpl) GetByUsername(ctx context.Context, username string) (company.CompanyResponse, error) {
	callerCompanyID, permission, err := claimsFromContext(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	found, err := s.CompanyRepository.GetByUsername(ctx, username)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	if !permission.IsNetAdmin() && callerCompanyID != found.ID {
		return company.CompanyResponse{}, user.ErrUnauthorized
	}
	return company.NewCompanyResponse(found), nil
}

// List implements company.CompanyService.
func (s *CompanyServiceImpl) List(ctx context.Context, activeOnly bool) ([]company.CompanyResponse, error) {
	_, permission, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !permission.IsNetAdmin() {
		return nil, user.ErrUnauthorized
	}

	companies, err := s.CompanyRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	responses := make([]company.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		if activeOnly && !c.IsActive {
			continue
		}
		responses = append(responses, company.NewCompanyResponse(c))
	}
	return responses, nil
}

// Update implements company.CompanyService.
func (s *CompanyServiceImpl) Update(ctx context.Context, id string, req company.UpdateCompanyRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	callerCompanyID, permission, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}
	allowed := permission.IsNetAdmin() ||
		(permission.IsEmployer() && callerCompanyID == id)
	if !allowed {
		return user.ErrUnauthorized
	}
	// Only the platform operator may suspend or reinstate a company.
	if req.IsActive != nil && !permission.IsNetAdmin() {
		return user.ErrUnauthorized
	}

	return s.CompanyRepository.Update(ctx, id, req)
}
