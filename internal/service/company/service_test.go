package company

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/company"
	"github.com/punchclock-io/punchclock-backend-go/internal/domain/user"
)

var companyTokenAuth = jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)

func companyContext(t *testing.T, email, companyID string, permission user.Permission) context.Context {
	t.Helper()
	tok, _, err := companyTokenAuth.Encode(map[string]interface{}{
		"email":      email,
		"company_id": companyID,
		"permission": int(permission),
		"type":       "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

type memCompanyRepo struct {
	company.CompanyRepository
	mu        sync.Mutex
	companies map[string]company.Company
}

func newMemCompanyRepo(seed ...company.Company) *memCompanyRepo {
	r := &memCompanyRepo{companies: make(map[string]company.Company)}
	for _, c := range seed {
		r.companies[c.ID] = c
	}
	return r
}

func (r *memCompanyRepo) Create(_ context.Context, c company.Company) (company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = uuid.NewString()
	c.IsActive = true
	r.companies[c.ID] = c
	return c, nil
}

func (r *memCompanyRepo) GetByID(_ context.Context, id string) (company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

func (r *memCompanyRepo) GetByUsername(_ context.Context, username string) (company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.Username == username {
			return c, nil
		}
	}
	return company.Company{}, company.ErrCompanyNotFound
}

func (r *memCompanyRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *memCompanyRepo) List(_ context.Context) ([]company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]company.Company, 0, len(r.companies))
	for _, c := range r.companies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memCompanyRepo) Update(_ context.Context, id string, req company.UpdateCompanyRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return company.ErrCompanyNotFound
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Address != nil {
		c.Address = req.Address
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if req.DefaultWeekendChoice != nil {
		c.DefaultWeekendChoice = req.DefaultWeekendChoice
	}
	if req.DefaultWorkCapacity != nil {
		c.DefaultWorkCapacity = *req.DefaultWorkCapacity
	}
	r.companies[id] = c
	return nil
}

func seededCompany(id, username string) company.Company {
	return company.Company{
		ID:                   id,
		Name:                 "Acme",
		Username:             username,
		IsActive:             true,
		DefaultWeekendChoice: []string{"saturday", "sunday"},
		DefaultWorkCapacity:  8,
	}
}

func TestCompanyService_Create_NetAdminOnly(t *testing.T) {
	t.Parallel()

	repo := newMemCompanyRepo()
	svc := NewCompanyService(nil, repo)

	req := company.CreateCompanyRequest{Name: "Globex", Username: "globex"}

	ctx := companyContext(t, "boss@example.com", "company-1", user.PermissionEmployer)
	_, err := svc.Create(ctx, req)
	assert.ErrorIs(t, err, user.ErrUnauthorized)

	ctx = companyContext(t, "root@example.com", "", user.PermissionNetAdmin)
	created, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Globex", created.Name)
	assert.True(t, created.IsActive)
	assert.Equal(t, []string{"saturday", "sunday"}, created.DefaultWeekendChoice)
	assert.Equal(t, 8.0, created.DefaultWorkCapacity)
}

func TestCompanyService_Create_UsernameTaken(t *testing.T) {
	t.Parallel()

	repo := newMemCompanyRepo(seededCompany("company-1", "acme"))
	svc := NewCompanyService(nil, repo)

	ctx := companyContext(t, "root@example.com", "", user.PermissionNetAdmin)
	_, err := svc.Create(ctx, company.CreateCompanyRequest{Name: "Acme Two", Username: "acme"})

	assert.ErrorIs(t, err, company.ErrCompanyUsernameExists)
}

func TestCompanyService_GetByID_CrossCompanyDenied(t *testing.T) {
	t.Parallel()

	repo := newMemCompanyRepo(seededCompany("company-1", "acme"))
	svc := NewCompanyService(nil, repo)

	ctx := companyContext(t, "worker@example.com", "company-2", user.PermissionEmployee)
	_, err := svc.GetByID(ctx, "company-1")

	assert.ErrorIs(t, err, user.ErrUnauthorized)
}

func TestCompanyService_GetByUsername_OwnCompany(t *testing.T) {
	t.Parallel()

	repo := newMemCompanyRepo(seededCompany("company-1", "acme"))
	svc := NewCompanyService(nil, repo)

	ctx := companyContext(t, "worker@example.com", "company-1", user.PermissionEmployee)
	found, err := svc.GetByUsername(ctx, "acme")
	require.NoError(t, err)

	assert.Equal(t, "company-1", found.ID)
	assert.Equal(t, "Acme", found.Name)
}

func TestCompanyService_Update_EmployerOwnCompany(t *testing.T) {
	t.Parallel()

	repo := newMemCompanyRepo(seededCompany("company-1", "acme"))
	svc := NewCompanyService(nil, repo)

	name := "Acme Renamed"
	ctx := companyContext(t, "boss@example.com", "company-1", user.PermissionEmployer)
	require.NoError(t, svc.Update(ctx, "company-1", company.UpdateCompanyRequest{Name: &name}))

	stored, err := repo.GetByID(context.Background(), "company-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme Renamed", stored.Name)
}

func TestCompanyService_List_NetAdminOnly(t *testing.T) {
	t.Parallel()

	acme := seededCompany("company-1", "acme")
	globex := seededCompany("company-2", "globex")
	globex.Name = "Globex"
	globex.IsActive = false
	repo := newMemCompanyRepo(acme, globex)
	svc := NewCompanyService(nil, repo)

	ctx := companyContext(t, "boss@example.com", "company-1", user.PermissionEmployer)
	_, err := svc.List(ctx, false)
	assert.ErrorIs(t, err, user.ErrUnauthorized)

	ctx = companyContext(t, "root@example.com", "", user.PermissionNetAdmin)
	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "company-1", active[0].ID)
}

func TestCompanyService_Update_SuspendIsNetAdminOnly(t *testing.T) {
	t.Parallel()

	repo := newMemCompanyRepo(seededCompany("company-1", "acme"))
	svc := NewCompanyService(nil, repo)

	inactive := false
	req := company.UpdateCompanyRequest{IsActive: &inactive}

	ctx := companyContext(t, "boss@example.com", "company-1", user.PermissionEmployer)
	assert.ErrorIs(t, svc.Update(ctx, "company-1", req), user.ErrUnauthorized)

	ctx = companyContext(t, "root@example.com", "", user.PermissionNetAdmin)
	require.NoError(t, svc.Update(ctx, "company-1", req))

	stored, err := repo.GetByID(context.Background(), "company-1")
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}
