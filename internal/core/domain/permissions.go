package domain

// PermissionSet carries the capability flags for one username. Exactly one
// record exists per user and it is deleted together with the user.
type PermissionSet struct {
	ID                   int    `json:"id" bson:"id"`
	Username             string `json:"username" bson:"username"`
	CanCreateBillboard   bool   `json:"can_create_billboard" bson:"can_create_billboard"`
	CanEditBillboard     bool   `json:"can_edit_billboard" bson:"can_edit_billboard"`
	CanScheduleBillboard bool   `json:"can_schedule_billboard" bson:"can_schedule_billboard"`
	CanEditUser          bool   `json:"can_edit_user" bson:"can_edit_user"`
}

func (p PermissionSet) EntityID() int { return p.ID }

func (p PermissionSet) WithEntityID(id int) PermissionSet {
	p.ID = id
	return p
}

// AllPermissions returns a fully-enabled permission set, used when seeding
// the bootstrap administrator.
func AllPermissions(username string) PermissionSet {
	return PermissionSet{
		Username:             username,
		CanCreateBillboard:   true,
		CanEditBillboard:     true,
		CanScheduleBillboard: true,
		CanEditUser:          true,
	}
}
