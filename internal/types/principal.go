package types

// Principal is the authenticated actor attached to the request context by the
// auth middleware. A nil *Principal means an anonymous caller.
type Principal struct {
	ID              uint   `json:"id"`
	Username        string `json:"username"`
	IsStaff         bool   `json:"is_staff"`
	IsSuperuser     bool   `json:"is_superuser"`
	CanBeContacted  bool   `json:"can_be_contacted"`
	CanDataBeShared bool   `json:"can_data_be_shared"`
}
