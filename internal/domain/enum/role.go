package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// Role represents a user's role on the terminal
type Role string

const (
	RoleCashier Role = "cashier"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

// AtLeast reports whether r carries at least the privileges of other.
func (r Role) AtLeast(other Role) bool {
	rank := map[Role]int{RoleCashier: 0, RoleManager: 1, RoleAdmin: 2}
	return rank[r] >= rank[other]
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCashier, RoleManager, RoleAdmin:
		return true
	}
	return false
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*r = Role(str)
	return nil
}

func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

func (r *Role) Scan(value interface{}) error {
	if value == nil {
		*r = RoleCashier
		return nil
	}
	switch v := value.(type) {
	case string:
		*r = Role(v)
	case []byte:
		*r = Role(string(v))
	}
	return nil
}
