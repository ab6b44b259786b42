package user

// Permission is the access level carried in the JWT and checked by services.
// Levels match the values stored with each user record.
type Permission int

const (
	PermissionNetAdmin Permission = iota // platform operator
	PermissionEmployer                   // company administrator
	PermissionEmployee
)

func (p Permission) IsNetAdmin() bool {
	return p == PermissionNetAdmin
}

func (p Permission) IsEmployer() bool {
	return p == PermissionEmployer
}

func (p Permission) IsEmployee() bool {
	return p == PermissionEmployee
}

func (p Permission) Valid() bool {
	return p >= PermissionNetAdmin && p <= PermissionEmployee
}

func (p Permission) String() string {
	switch p {
	case PermissionNetAdmin:
		return "net_admin"
	case PermissionEmployer:
		return "employer"
	case PermissionEmployee:
		return "employee"
	default:
		return "unknown"
	}
}

// PermissionFromClaim converts a raw JWT claim value into a Permission.
// JSON decoding turns numeric claims into float64, so both paths are handled.
func PermissionFromClaim(v interface{}) (Permission, bool) {
	switch value := v.(type) {
	case float64:
		p := Permission(int(value))
		return p, p.Valid()
	case int:
		p := Permission(value)
		return p, p.Valid()
	case int64:
		p := Permission(int(value))
		return p, p.Valid()
	default:
		return 0, false
	}
}
