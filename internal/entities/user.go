package entities

type Role string

const (
	RoleUser     Role = "user"
	RoleDelivery Role = "delivery"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

// Actor пользователь запроса с ролью, прочитанной в рамках этого же запроса.
type Actor struct {
	ID   int64
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) IsDelivery() bool {
	return a.Role == RoleDelivery
}
