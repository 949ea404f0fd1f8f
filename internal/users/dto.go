package users

// Roles stored on profile documents. The role field is a free-text lowercase
// tag; only RoleAdmin carries meaning for authorization.
const (
	RoleAdmin     = "admin"
	RoleAssociate = "associate"
)

// InviteUserInput captures the payload needed to invite a user.
type InviteUserInput struct {
	Email     string
	Role      string
	FirstName string
	LastName  string
}

// InviteUserResult is returned to the caller after a successful invite. The
// reset link is handed back for out-of-band delivery; nothing is emailed here.
type InviteUserResult struct {
	OK        bool   `json:"ok"`
	UID       string `json:"uid"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ResetLink string `json:"reset_link"`
}

// DeleteUserInput identifies the target of a delete. Email is optional and
// only used to also clean up the invite document.
type DeleteUserInput struct {
	UID   string
	Email string
}

// DeleteUserResult reports which records were processed.
type DeleteUserResult struct {
	OK    bool   `json:"ok"`
	UID   string `json:"uid"`
	Email string `json:"email"`
}
