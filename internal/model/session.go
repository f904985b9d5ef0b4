package model

// Session is an ephemeral workspace of one user's uploaded documents.
// Atime advances on every chat or upload and drives idle cleanup.
type Session struct {
	ID    string `json:"id"`
	Ctime int64  `json:"ctime"`
	Atime int64  `json:"atime"`
}
