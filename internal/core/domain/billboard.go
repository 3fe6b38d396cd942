package domain

// Billboard is a displayable notice managed through the control panel.
// Name is unique across the billboard collection.
type Billboard struct {
	ID              int    `json:"id" bson:"id"`
	Name            string `json:"name" bson:"name" validate:"required"`
	Message         string `json:"message,omitempty" bson:"message,omitempty"`
	BackgroundColor string `json:"background_color,omitempty" bson:"background_color,omitempty"`
	Locked          bool   `json:"locked" bson:"locked"`
}

func (b Billboard) EntityID() int { return b.ID }

func (b Billboard) WithEntityID(id int) Billboard {
	b.ID = id
	return b
}
