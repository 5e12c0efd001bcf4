package models

// Session is what register, login and password change hand back to the
// client: a bearer token for authorization and the base64 FEK the client
// must present in the X-File-Key header of content requests. Token
// verification refreshes the token only and leaves FileKey empty.
type Session struct {
	Token   string `json:"token"`
	FileKey string `json:"file_key,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// ChangePasswordRequest is the body of the password change call.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// DeleteAccountRequest confirms account removal with the current password.
type DeleteAccountRequest struct {
	Password string `json:"password"`
}

// ProfileRequest is the body of the profile update call. Nil fields are
// left unchanged. Password is only decoded to reject it: passwords change
// through the password endpoint, which also rewraps the file key.
type ProfileRequest struct {
	Login    *string `json:"login,omitempty"`
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}
