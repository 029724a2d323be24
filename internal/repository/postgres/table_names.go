package postgres

import "fmt"

// TableNames holds dynamically prefixed table names. Each environment
// (dev_/test_/prod_) gets its own set of tables.
type TableNames struct {
	Users      string
	Chats      string
	History    string
	Websites   string
	Files      string
	GuestUsage string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Users:      fmt.Sprintf("%susers", prefix),
		Chats:      fmt.Sprintf("%schats", prefix),
		History:    fmt.Sprintf("%shistory", prefix),
		Websites:   fmt.Sprintf("%swebsites", prefix),
		Files:      fmt.Sprintf("%sfiles", prefix),
		GuestUsage: fmt.Sprintf("%sguest_usage", prefix),
	}
}
