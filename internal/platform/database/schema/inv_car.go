package schema

// InvCarTable represents the 'inv.car' table
type InvCarTable struct {
	Table       string
	ID          string
	BrandID     string
	AgentID     string
	CarNameID   string
	GradeID     string
	YearID      string
	Chassis     string
	Images      string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// InvCar is the schema definition for inv.car.
// Chassis is a JSONB column holding the owned unit collection; Images is a
// text[] column preserving insertion order.
var InvCar = InvCarTable{
	Table:       "inv.car",
	ID:          "id",
	BrandID:     "brandid",
	AgentID:     "agentid",
	CarNameID:   "carnameid",
	GradeID:     "gradeid",
	YearID:      "yearid",
	Chassis:     "chassis",
	Images:      "images",
	Description: "description",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t InvCarTable) Columns() []string {
	return []string{
		t.ID, t.BrandID, t.AgentID, t.CarNameID, t.GradeID, t.YearID,
		t.Chassis, t.Images, t.Description, t.CreatedAt, t.UpdatedAt,
	}
}
