// Package derive composes the independent store snapshots into read-only
// views for presentation. Nothing here mutates state; every function is a
// pure function of the snapshots it is handed.
package derive

import (
	"fmt"

	"homespace/internal/chat"
	"homespace/internal/models"
	"homespace/internal/presence"
	"homespace/internal/topology"
)

// RoomView is everything a room screen needs in one value: the room and its
// house, occupants joined against presence profiles, the unread counter,
// the most recent messages and who is typing.
type RoomView struct {
	House     models.House
	Room      models.Room
	Occupants []models.UserProfile
	Unread    int
	Recent    []models.ChatMessage
	Typing    []string
}

// RoomOverview builds a RoomView for the given room. Occupants without a
// presence profile are synthesized from their occupancy ref, since room
// occupancy and presence profiles are deliberately independent.
func RoomOverview(ts topology.State, cs chat.State, ps presence.State, houseID, roomID string, recentLimit int) (RoomView, bool) {
	house, ok := topology.FindHouse(ts, houseID)
	if !ok {
		return RoomView{}, false
	}
	room, ok := topology.FindRoom(ts, houseID, roomID)
	if !ok {
		return RoomView{}, false
	}

	occupants := make([]models.UserProfile, 0, len(room.Users))
	for _, ref := range room.Users {
		if profile, known := presence.User(ps, ref.ID); known {
			occupants = append(occupants, profile)
			continue
		}
		occupants = append(occupants, models.UserProfile{
			ID:       ref.ID,
			Name:     ref.Name,
			Avatar:   ref.Avatar,
			Status:   models.UserOffline,
			Activity: ref.Activity,
		})
	}

	msgs := chat.RoomMessages(cs, roomID)
	if recentLimit > 0 && recentLimit < len(msgs) {
		msgs = msgs[len(msgs)-recentLimit:]
	}

	typing := make([]string, 0)
	for _, u := range presence.TypingUsers(ps) {
		typing = append(typing, u.Name)
	}

	return RoomView{
		House:     house,
		Room:      room,
		Occupants: occupants,
		Unread:    chat.UnreadCount(cs, roomID),
		Recent:    msgs,
		Typing:    typing,
	}, true
}

// NeighbourCard pairs a neighbour directory entry with the live occupancy
// of its house, when that house is known locally.
type NeighbourCard struct {
	models.Neighbour
	Occupancy int
}

// NeighbourDirectory builds the neighbours screen listing.
func NeighbourDirectory(ts topology.State) []NeighbourCard {
	out := make([]NeighbourCard, 0, len(ts.Neighbours))
	for _, n := range ts.Neighbours {
		out = append(out, NeighbourCard{
			Neighbour: n,
			Occupancy: HouseOccupancy(ts, n.HouseID),
		})
	}
	return out
}

// HouseOccupancy sums the occupants of every room in the house.
func HouseOccupancy(ts topology.State, houseID string) int {
	house, ok := topology.FindHouse(ts, houseID)
	if !ok {
		return 0
	}
	total := 0
	for _, room := range house.Rooms {
		total += len(room.Users)
	}
	return total
}

// TypingBanner renders the typing indicator line for the user list.
func TypingBanner(ps presence.State) string {
	typing := presence.TypingUsers(ps)
	switch len(typing) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("%s is typing...", typing[0].Name)
	case 2:
		return fmt.Sprintf("%s and %s are typing...", typing[0].Name, typing[1].Name)
	default:
		return "Several people are typing..."
	}
}
