package schema

// InvCarNameTable represents the 'inv.carname' table
type InvCarNameTable struct {
	Table     string
	ID        string
	BrandID   string
	Name      string
	CreatedAt string
	UpdatedAt string
}

// InvCarName is the schema definition for inv.carname.
// (name, brandid) carries a composite unique index.
var InvCarName = InvCarNameTable{
	Table:     "inv.carname",
	ID:        "id",
	BrandID:   "brandid",
	Name:      "name",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
