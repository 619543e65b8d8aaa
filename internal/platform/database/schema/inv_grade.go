package schema

// InvGradeTable represents the 'inv.grade' table
type InvGradeTable struct {
	Table     string
	ID        string
	CarNameID string
	Name      string
	CreatedAt string
	UpdatedAt string
}

// InvGrade is the schema definition for inv.grade.
// (name, carnameid) carries a composite unique index.
var InvGrade = InvGradeTable{
	Table:     "inv.grade",
	ID:        "id",
	CarNameID: "carnameid",
	Name:      "name",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
