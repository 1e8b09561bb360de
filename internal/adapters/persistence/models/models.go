package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth tables
// ============================================================

// User represents the users table. The password column only ever
// holds a bcrypt hash.
type User struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password     string         `gorm:"size:255;not null" json:"-"`
	PhoneNumber  string         `gorm:"size:30" json:"phone_number"`
	FailedLogins int            `gorm:"default:0" json:"-"`
	LockedUntil  *time.Time     `json:"-"`
	Roles        []Role         `gorm:"many2many:user_roles" json:"roles"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// IsLocked reports whether the lockout window is still open.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// RoleNames returns the names of all roles the user holds.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// HasRole reports whether the user holds the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// UserResponse DTO
type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Roles       []string  `json:"roles"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Roles:       u.RoleNames(),
		CreatedAt:   u.CreatedAt,
	}
}

// Role represents the roles table. Rows are seeded at startup and
// treated as static reference data.
type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:30;not null" json:"name"`
}

func (Role) TableName() string {
	return "roles"
}

// Built-in role names
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// PasswordReset represents the password_resets table. A row is
// single-use and time-boxed; only the SHA-256 hash of the token is
// stored.
type PasswordReset struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"index;size:36;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `gorm:"index" json:"used_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (PasswordReset) TableName() string {
	return "password_resets"
}

func (pr *PasswordReset) IsUsed() bool {
	return pr.UsedAt != nil
}

func (pr *PasswordReset) IsExpired() bool {
	return time.Now().After(pr.ExpiresAt)
}

// ============================================================
// Company / Employee / Project tables
// ============================================================

// Company represents the companies table
type Company struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:150;not null" json:"name"`
	Employees []Employee     `gorm:"many2many:company_employees" json:"employees,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Company) TableName() string {
	return "companies"
}

// Employee represents the employees table
type Employee struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	FullName  string         `gorm:"size:150;not null;index" json:"full_name"`
	Position  string         `gorm:"size:100" json:"position"`
	Companies []Company      `gorm:"many2many:company_employees" json:"companies,omitempty"`
	Projects  []Project      `gorm:"many2many:employee_projects" json:"projects,omitempty"`
	Images    []Image        `gorm:"foreignKey:EmployeeID" json:"images,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}

// Project represents the projects table. Duration is stored in minutes.
type Project struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Title           string         `gorm:"size:200;not null" json:"title"`
	DurationMinutes int            `gorm:"not null" json:"duration_minutes"`
	Employees       []Employee     `gorm:"many2many:employee_projects" json:"employees,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Project) TableName() string {
	return "projects"
}

// Image represents the images table (employee photos on local disk)
type Image struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ImagePath  string    `gorm:"size:255;not null" json:"image_path"`
	EmployeeID uint      `gorm:"index;not null" json:"employee_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Image) TableName() string {
	return "images"
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Role{},
		&PasswordReset{},
		&Company{},
		&Employee{},
		&Project{},
		&Image{},
	)
}
