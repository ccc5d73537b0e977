package user

import "time"

// Role 用户角色
type Role string

const (
	RoleUser   Role = "user"
	RoleAuthor Role = "author"
	RoleAdmin  Role = "admin"
)

// Valid 是否为已知角色
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAuthor, RoleAdmin:
		return true
	}
	return false
}

// User 用户模型
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex;comment:邮箱" json:"email"`
	Username     string    `gorm:"type:varchar(50);not null;uniqueIndex;comment:用户名" json:"username"`
	FullName     string    `gorm:"type:varchar(100);comment:全名" json:"full_name"`
	PasswordHash string    `gorm:"type:varchar(255);not null;comment:密码哈希" json:"-"`
	Role         Role      `gorm:"type:varchar(20);not null;comment:角色 user/author/admin" json:"role"`
	IsActive     bool      `gorm:"not null;comment:是否启用" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
