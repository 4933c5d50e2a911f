package domain

// Role identifies the semantic purpose of a column in an uploaded sales table.
type Role string

const (
	RoleDate     Role = "date"
	RoleTime     Role = "time"
	RoleLocation Role = "location"
	RoleCategory Role = "category"
	RoleAmount   Role = "amount"
)

// AllRoles lists every role in resolution order.
var AllRoles = []Role{RoleDate, RoleTime, RoleLocation, RoleCategory, RoleAmount}

// ColumnRoles maps each semantic role to exactly one column name from the
// uploaded table. The resolver guarantees every field is populated, falling
// back to positional columns when no name matches.
type ColumnRoles struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

// Column returns the column name assigned to the given role.
func (r ColumnRoles) Column(role Role) string {
	switch role {
	case RoleDate:
		return r.Date
	case RoleTime:
		return r.Time
	case RoleLocation:
		return r.Location
	case RoleCategory:
		return r.Category
	case RoleAmount:
		return r.Amount
	}
	return ""
}

// SetColumn assigns a column name to the given role.
func (r *ColumnRoles) SetColumn(role Role, column string) {
	switch role {
	case RoleDate:
		r.Date = column
	case RoleTime:
		r.Time = column
	case RoleLocation:
		r.Location = column
	case RoleCategory:
		r.Category = column
	case RoleAmount:
		r.Amount = column
	}
}
