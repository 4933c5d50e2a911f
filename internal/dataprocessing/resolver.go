package dataprocessing

import (
	"log/slog"
	"strings"

	"salesdash/pkg/contracts/domain"
)

// roleRule describes how one semantic role is located in a header row:
// the first column whose lowercased name contains any trigger wins; when no
// column matches, the positional fallback is used instead.
type roleRule struct {
	role     domain.Role
	triggers []string
	// fallback is the column index used when no trigger matches.
	// lastColumn selects the final column of the table.
	fallback int
}

const lastColumn = -1

// roleRules is the declarative resolution table, evaluated in order.
var roleRules = []roleRule{
	{role: domain.RoleDate, triggers: []string{"date"}, fallback: 0},
	{role: domain.RoleTime, triggers: []string{"time"}, fallback: 1},
	{role: domain.RoleLocation, triggers: []string{"location", "store"}, fallback: 2},
	{role: domain.RoleCategory, triggers: []string{"category", "product"}, fallback: 3},
	{role: domain.RoleAmount, triggers: []string{"bill", "total", "amount", "price"}, fallback: lastColumn},
}

// Resolve maps each semantic role to a column name from the header. The
// scan is case-insensitive and left-to-right; the first matching column wins.
// Resolve is total: every role maps to some existing column, falling back
// positionally when no name matches. On an empty header it returns the zero
// mapping.
func Resolve(columns []string) domain.ColumnRoles {
	var roles domain.ColumnRoles
	if len(columns) == 0 {
		return roles
	}

	for _, rule := range roleRules {
		roles.SetColumn(rule.role, resolveRole(columns, rule))
	}

	slog.Debug("resolved column roles",
		slog.String("date", roles.Date),
		slog.String("time", roles.Time),
		slog.String("location", roles.Location),
		slog.String("category", roles.Category),
		slog.String("amount", roles.Amount))

	return roles
}

func resolveRole(columns []string, rule roleRule) string {
	for _, name := range columns {
		lower := strings.ToLower(name)
		for _, trigger := range rule.triggers {
			if strings.Contains(lower, trigger) {
				return name
			}
		}
	}

	idx := rule.fallback
	if idx == lastColumn {
		idx = len(columns) - 1
	}
	if idx >= len(columns) {
		idx = 0
	}
	return columns[idx]
}
