package models

// RoomStatus describes whether a room accepts new occupants.
type RoomStatus string

const (
	RoomOpen   RoomStatus = "open"
	RoomBusy   RoomStatus = "busy"
	RoomLocked RoomStatus = "locked"
)

// UserRef is the denormalized occupant snapshot stored inside a room.
// It is deliberately independent from presence profiles; the two are
// reconciled only at the presentation boundary.
type UserRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
	Activity string `json:"activity,omitempty"`
}

// Room is a chat/occupancy unit within a house.
type Room struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	MaxOccupants int        `json:"max_occupants"`
	Status       RoomStatus `json:"status"`
	Activity     string     `json:"activity"`
	IsPrivate    bool       `json:"is_private"`
	Thumbnail    string     `json:"thumbnail,omitempty"`
	Users        []UserRef  `json:"users"`
}

// House is a top-level container of rooms, analogous to a workspace.
type House struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Owners    []string `json:"owners"`
	Thumbnail string   `json:"thumbnail,omitempty"`
	Rooms     []Room   `json:"rooms"`
}

// Neighbour is a directory entry pointing at another user's house.
type Neighbour struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Owner     string `json:"owner"`
	Thumbnail string `json:"thumbnail,omitempty"`
	HouseID   string `json:"house_id"`
}
