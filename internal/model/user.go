package model

// ==================== 角色常量 ====================

// UserRole 用户角色（封闭枚举，注册时校验）
const (
	RoleClient = "CLIENT" // 买家
	RoleSeller = "SELLER" // 卖家
)

// ValidRole 校验角色取值
func ValidRole(role string) bool {
	return role == RoleClient || role == RoleSeller
}

// ==================== User 用户 ====================

// User 平台用户（买家或卖家）
type User struct {
	BaseModel
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"` // bcrypt 哈希
	Role         string `gorm:"size:20;not null;index"`
	// 不加 default 标签（带 default 的 bool 零值在 Create 时会被忽略），注册时显式赋值
	IsActive     bool

	// 关联
	Products []Product `gorm:"foreignKey:SellerID"`
}

func (User) TableName() string {
	return "users"
}

// IsSeller 是否卖家
func (u *User) IsSeller() bool {
	return u.Role == RoleSeller
}

// IsClient 是否买家
func (u *User) IsClient() bool {
	return u.Role == RoleClient
}
