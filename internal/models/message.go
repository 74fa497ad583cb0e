package models

import "time"

// MessageType distinguishes regular text from media and system notices.
type MessageType string

const (
	MessageText   MessageType = "text"
	MessageImage  MessageType = "image"
	MessageFile   MessageType = "file"
	MessageSystem MessageType = "system"
)

// DeletedPlaceholder replaces the text of a soft-deleted message.
const DeletedPlaceholder = "[Message deleted]"

// Attachment is a file or image carried by a message.
type Attachment struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	MimeType string `json:"mime_type,omitempty"`
	Size     int64  `json:"size,omitempty"`
}

// ChatMessage is a single message in a room. Identity is fixed after
// creation; only Text, IsEdited, IsDeleted and Reactions mutate in place.
// Reactions maps emoji to the set of user IDs who reacted with it.
type ChatMessage struct {
	ID          string                     `json:"id"`
	Text        string                     `json:"text"`
	User        UserRef                    `json:"user"`
	Timestamp   time.Time                  `json:"timestamp"`
	RoomID      string                     `json:"room_id"`
	Type        MessageType                `json:"type"`
	IsOwn       bool                       `json:"is_own"`
	IsEdited    bool                       `json:"is_edited"`
	IsDeleted   bool                       `json:"is_deleted"`
	Reactions   map[string]map[string]bool `json:"reactions,omitempty"`
	ReplyTo     string                     `json:"reply_to,omitempty"`
	Mentions    []string                   `json:"mentions,omitempty"`
	Attachments []Attachment               `json:"attachments,omitempty"`
	Metadata    map[string]string          `json:"metadata,omitempty"`
	EditedAt    time.Time                  `json:"edited_at"`
	DeletedAt   time.Time                  `json:"deleted_at"`
}
