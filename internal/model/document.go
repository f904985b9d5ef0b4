package model

// Document is one uploaded file inside a session. Name is the sanitized
// filename and is unique within the session. StoreKey locates the original
// bytes in the file store.
type Document struct {
	ID          string `json:"id"`
	SessionID   string `json:"session_id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	PageCount   int    `json:"page_count"`
	StoreKey    string `json:"-"`
	Ctime       int64  `json:"ctime"`
}
