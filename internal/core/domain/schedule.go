package domain

// Schedule describes one recurring showing of a billboard. Start is minutes
// after midnight, Duration and Interval are minutes; Interval zero means the
// showing does not repeat within the day.
type Schedule struct {
	ID            int    `json:"id" bson:"id"`
	BillboardName string `json:"billboard_name" bson:"billboard_name" validate:"required"`
	DayOfWeek     int    `json:"day_of_week" bson:"day_of_week" validate:"min=0,max=6"`
	Start         int    `json:"start" bson:"start" validate:"min=0,max=1439"`
	Duration      int    `json:"duration" bson:"duration" validate:"min=1"`
	Interval      int    `json:"interval" bson:"interval" validate:"min=0"`
}

func (s Schedule) EntityID() int { return s.ID }

func (s Schedule) WithEntityID(id int) Schedule {
	s.ID = id
	return s
}
