package model

// User is a resolved directory entry. The core only ever handles the
// identifier; credentials stay inside the directory service.
type User struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}
