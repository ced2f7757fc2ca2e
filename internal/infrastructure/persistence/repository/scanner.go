package repository

// scanner is satisfied by both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// boolToInt maps flags onto sqlite's 0/1 integer columns
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
