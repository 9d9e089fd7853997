package entity

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleSeller   UserRole = "seller"
	RoleCustomer UserRole = "customer"
)

// User is the sole domain record. Phone is always present and unique; email is
// optional and unique when set. A user stays inactive and unverified until the
// verification code is confirmed, and VerificationCode is emptied at that point.
type User struct {
	Base
	Username         string   `db:"username"`
	Email            *string  `db:"email"`
	Phone            string   `db:"phone"`
	PasswordHash     string   `db:"password"`
	Role             UserRole `db:"role"`
	Wallet           int64    `db:"wallet"`
	IsActive         bool     `db:"is_active"`
	IsVerified       bool     `db:"is_verified"`
	VerificationCode string   `db:"verification_code"`
}

// Pending reports whether the record is still waiting for code confirmation
func (u *User) Pending() bool {
	return !u.IsActive && !u.IsVerified
}
