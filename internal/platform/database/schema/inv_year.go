package schema

// InvYearTable represents the 'inv.year' table
type InvYearTable struct {
	Table     string
	ID        string
	GradeID   string
	Value     string
	CreatedAt string
	UpdatedAt string
}

// InvYear is the schema definition for inv.year.
// (value, gradeid) carries a composite unique index.
var InvYear = InvYearTable{
	Table:     "inv.year",
	ID:        "id",
	GradeID:   "gradeid",
	Value:     "value",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
