package user

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/company"
	"github.com/punchclock-io/punchclock-backend-go/internal/domain/user"
	"github.com/punchclock-io/punchclock-backend-go/internal/pkg/database"
)

type UserServiceImpl struct {
	db *database.DB
	user.UserRepository
	company.CompanyRepository
}

func NewUserService(db *database.DB, userRepo user.UserRepository, companyRepo company.CompanyRepository) user.UserService {
	return &UserServiceImpl{
		db:                db,
		UserRepository:    userRepo,
		CompanyRepository: companyRepo,
	}
}

type caller struct {
	Email      string
	CompanyID  string
	Permission user.Permission
}

func callerFromContext(ctx context.Context) (caller, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return caller{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return caller{}, fmt.Errorf("email claim is missing or invalid")
	}
	companyID, _ := claims["company_id"].(string)
	permission, ok := user.PermissionFromClaim(claims["permission"])
	if !ok {
		return caller{}, user.ErrInvalidPermission
	}
	return caller{Email: email, CompanyID: companyID, Permission: permission}, nil
}

func toResponse(u user.User) user.UserResponse {
	resp := user.UserResponse{
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		MobilePhone:     u.MobilePhone,
		CompanyID:       u.CompanyID,
		Role:            u.Role,
		Permission:      int(u.Permission),
		IsActive:        u.IsActive,
		Salary:          u.Salary,
		WorkCapacity:    u.WorkCapacity,
		EmploymentStart: u.EmploymentStart.Format("2006-01-02"),
		WeekendChoice:   u.WeekendChoice,
	}
	if u.EmploymentEnd != nil {
		end := u.EmploymentEnd.Format("2006-01-02")
		resp.EmploymentEnd = &end
	}
	return resp
}

// CreateUser implements user.UserService. Only employers and net admins may
// register accounts; employers only inside their own company.
func (s *UserServiceImpl) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	c, err := callerFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	companyID := req.CompanyID
	switch {
	case c.Permission.IsNetAdmin():
		// net admins may create users anywhere
	case c.Permission.IsEmployer():
		if companyID == "" {
			companyID = c.CompanyID
		}
		if companyID != c.CompanyID {
			return user.UserResponse{}, user.ErrUnauthorized
		}
	default:
		return user.UserResponse{}, user.ErrUnauthorized
	}

	taken, err := s.UserRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return user.UserResponse{}, user.ErrEmailExists
	}

	companyData, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		return user.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	employmentStart := time.Now().UTC()
	if req.EmploymentStart != "" {
		employmentStart, _ = time.Parse("2006-01-02", req.EmploymentStart)
	}

	workCapacity := req.WorkCapacity
	if workCapacity == 0 {
		workCapacity = companyData.DefaultWorkCapacity
	}
	weekendChoice := req.WeekendChoice
	if len(weekendChoice) == 0 {
		weekendChoice = companyData.DefaultWeekendChoice
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		MobilePhone:     req.MobilePhone,
		CompanyID:       companyData.ID,
		Role:            req.Role,
		Permission:      user.Permission(req.Permission),
		PassHash:        string(hash),
		IsActive:        true,
		Salary:          req.Salary,
		WorkCapacity:    workCapacity,
		EmploymentStart: employmentStart,
		WeekendChoice:   weekendChoice,
	})
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}
	return toResponse(created), nil
}

// GetUser implements user.UserService.
func (s *UserServiceImpl) GetUser(ctx context.Context, email string) (user.UserResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	target, err := s.UserRepository.GetByEmail(ctx, email)
	if err != nil {
		return user.UserResponse{}, err
	}

	allowed := c.Permission.IsNetAdmin() ||
		(c.Permission.IsEmployer() && c.CompanyID == target.CompanyID) ||
		c.Email == target.Email
	if !allowed {
		return user.UserResponse{}, user.ErrUnauthorized
	}
	return toResponse(target), nil
}

// UpdateUser implements user.UserService.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	c, err := callerFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	target, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		return user.UserResponse{}, err
	}

	selfEdit := c.Email == target.Email
	managerEdit := c.Permission.IsNetAdmin() ||
		(c.Permission.IsEmployer() && c.CompanyID == target.CompanyID)
	if !selfEdit && !managerEdit {
		return user.UserResponse{}, user.ErrUnauthorized
	}

	// Permission, salary and employment fields stay manager-only.
	if !managerEdit && (req.Permission != nil || req.Salary != nil || req.Role != nil || req.EmploymentEnd != nil || req.IsActive != nil) {
		return user.UserResponse{}, user.ErrUnauthorized
	}

	if req.FirstName != nil {
		target.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		target.LastName = *req.LastName
	}
	if req.MobilePhone != nil {
		target.MobilePhone = req.MobilePhone
	}
	if req.Role != nil {
		target.Role = *req.Role
	}
	if req.Permission != nil {
		target.Permission = user.Permission(*req.Permission)
	}
	if req.IsActive != nil {
		target.IsActive = *req.IsActive
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		target.PassHash = string(hash)
	}
	if req.Salary != nil {
		target.Salary = *req.Salary
	}
	if req.WorkCapacity != nil {
		target.WorkCapacity = *req.WorkCapacity
	}
	if req.EmploymentEnd != nil {
		end, _ := time.Parse("2006-01-02", *req.EmploymentEnd)
		target.EmploymentEnd = &end
	}
	if req.WeekendChoice != nil {
		target.WeekendChoice = *req.WeekendChoice
	}

	if err := s.UserRepository.Update(ctx, target); err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to update user: %w", err)
	}
	return toResponse(target), nil
}

// DeactivateUser implements user.UserService.
func (s *UserServiceImpl) DeactivateUser(ctx context.Context, email string) error {
	c, err := callerFromContext(ctx)
	if err != nil {
		return err
	}

	target, err := s.UserRepository.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	allowed := c.Permission.IsNetAdmin() ||
		(c.Permission.IsEmployer() && c.CompanyID == target.CompanyID)
	if !allowed {
		return user.ErrUnauthorized
	}
	return s.UserRepository.SetActive(ctx, email, false)
}

// ListCompanyUsers implements user.UserService.
func (s *UserServiceImpl) ListCompanyUsers(ctx context.Context, companyID string) ([]user.UserResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if companyID == "" {
		companyID = c.CompanyID
	}
	allowed := c.Permission.IsNetAdmin() ||
		(c.Permission.IsEmployer() && c.CompanyID == companyID)
	if !allowed {
		return nil, user.ErrUnauthorized
	}

	users, err := s.UserRepository.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toResponse(u))
	}
	return responses, nil
}

// ListCompanyAdmins implements user.UserService. Any member may look up the
// admins of their own company.
func (s *UserServiceImpl) ListCompanyAdmins(ctx context.Context, companyID string) ([]user.UserResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if companyID == "" {
		companyID = c.CompanyID
	}
	if !c.Permission.IsNetAdmin() && c.CompanyID != companyID {
		return nil, user.ErrUnauthorized
	}

	users, err := s.UserRepository.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	admins := make([]user.UserResponse, 0)
	for _, u := range users {
		if u.Permission.IsEmployer() {
			admins = append(admins, toResponse(u))
		}
	}
	return admins, nil
}
