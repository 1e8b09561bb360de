package repositories

import (
	"context"

	"companyhub/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User, roles []*models.Role) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	AddRole(ctx context.Context, user *models.User, role *models.Role) error
	ClearExpiredLockouts(ctx context.Context) error
}

// RoleRepository defines role repository interface
type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*models.Role, error)
	List(ctx context.Context) ([]*models.Role, error)
}

// PasswordResetRepository defines password reset token repository interface
type PasswordResetRepository interface {
	Create(ctx context.Context, reset *models.PasswordReset) error
	GetLatestByUserID(ctx context.Context, userID string) (*models.PasswordReset, error)
	MarkUsed(ctx context.Context, id uint) error
	InvalidateAllByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) error
}

// CompanyFilter carries list query parameters for companies
type CompanyFilter struct {
	SearchTerm string
	SortBy     string
	SortDir    string
	Offset     int
	Limit      int
}

// CompanyRepository defines company repository interface
type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id uint) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter *CompanyFilter) ([]*models.Company, int64, error)
	ListWithEmployees(ctx context.Context) ([]*models.Company, error)
}

// EmployeeFilter carries list query parameters for employees
type EmployeeFilter struct {
	SearchTerm string
	SortBy     string
	SortDir    string
	Offset     int
	Limit      int
}

// EmployeeRepository defines employee repository interface
type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee, companyIDs, projectIDs []uint) error
	GetByID(ctx context.Context, id uint) (*models.Employee, error)
	Update(ctx context.Context, employee *models.Employee, companyIDs, projectIDs []uint) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter *EmployeeFilter) ([]*models.Employee, int64, error)
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
	AssignProject(ctx context.Context, employee *models.Employee, project *models.Project) error
	RemoveProject(ctx context.Context, employee *models.Employee, project *models.Project) error
	HasProject(ctx context.Context, employeeID, projectID uint) (bool, error)
}

// ProjectFilter carries list query parameters for projects
type ProjectFilter struct {
	SearchTerm string
	SortBy     string
	SortDir    string
	Offset     int
	Limit      int
}

// ProjectRepository defines project repository interface
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter *ProjectFilter) ([]*models.Project, int64, error)
}

// ImageRepository defines image repository interface
type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByID(ctx context.Context, id uint) (*models.Image, error)
	Delete(ctx context.Context, id uint) error
	ListByEmployeeID(ctx context.Context, employeeID uint) ([]*models.Image, error)
}
