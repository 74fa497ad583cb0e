// Package session coordinates the stores for user-level intents. Each method
// translates one intent into the store actions it implies, so callers never
// have to keep the topology, chat and presence stores in step by hand.
package session

import (
	"fmt"

	"go.uber.org/zap"

	"homespace/internal/appstate"
	"homespace/internal/chat"
	"homespace/internal/models"
	"homespace/internal/presence"
	"homespace/internal/topology"
)

// Session drives the stores on behalf of the local user.
type Session struct {
	houses   *topology.Store
	messages *chat.Store
	users    *presence.Store
	notifier appstate.Notifier
	log      *zap.Logger
}

// New wires a session over the given stores. A nil logger is replaced with a
// no-op one.
func New(houses *topology.Store, messages *chat.Store, users *presence.Store, notifier appstate.Notifier, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		houses:   houses,
		messages: messages,
		users:    users,
		notifier: notifier,
		log:      log,
	}
}

func (s *Session) currentUser() (models.UserProfile, error) {
	user, ok := presence.CurrentUser(s.users.Snapshot())
	if !ok {
		return models.UserProfile{}, fmt.Errorf("no current user selected")
	}
	return user, nil
}

// JoinRoom moves the local user into the room, points both the topology and
// chat cursors at it and records the activity. Moving into the room the user
// already occupies only refocuses the cursors.
func (s *Session) JoinRoom(houseID, roomID string) error {
	user, err := s.currentUser()
	if err != nil {
		return err
	}

	ts := s.houses.Snapshot()
	room, ok := topology.FindRoom(ts, houseID, roomID)
	if !ok {
		s.notifier.Notify(models.Toast{Type: "error", Message: "That room does not exist"})
		return fmt.Errorf("room %s/%s not found", houseID, roomID)
	}
	if room.Status == models.RoomLocked {
		s.notifier.Notify(models.Toast{Type: "warning", Message: room.Name + " is locked"})
		return fmt.Errorf("room %s/%s is locked", houseID, roomID)
	}

	ref := models.UserRef{ID: user.ID, Name: user.Name, Avatar: user.Avatar, Activity: "In " + room.Name}
	s.houses.MoveUserToRoom(ts.CurrentHouseID, ts.CurrentRoomID, houseID, roomID, ref)
	s.houses.SetCurrentHouse(houseID)
	s.houses.SetCurrentRoom(roomID)
	s.messages.SetCurrentRoom(roomID)
	s.users.SetUserActivity(user.ID, "In "+room.Name)

	s.notifier.Notify(models.Toast{Type: "info", Message: "Joined " + room.Name})
	s.log.Info("joined room",
		zap.String("user_id", user.ID),
		zap.String("house_id", houseID),
		zap.String("room_id", roomID),
	)
	return nil
}

// LeaveRoom removes the local user from the currently focused room. The
// cursors stay put so the room can still be observed from outside.
func (s *Session) LeaveRoom() error {
	user, err := s.currentUser()
	if err != nil {
		return err
	}

	ts := s.houses.Snapshot()
	s.houses.RemoveUserFromRoom(ts.CurrentHouseID, ts.CurrentRoomID, user.ID)
	s.users.SetUserActivity(user.ID, "Idle")

	s.log.Info("left room",
		zap.String("user_id", user.ID),
		zap.String("room_id", ts.CurrentRoomID),
	)
	return nil
}

// SendMessage posts text into the focused room as the local user and clears
// any typing state. The assigned message ID is returned.
func (s *Session) SendMessage(text string) (string, error) {
	user, err := s.currentUser()
	if err != nil {
		return "", err
	}

	id := s.messages.AddMessage(models.ChatMessage{
		Text:  text,
		User:  models.UserRef{ID: user.ID, Name: user.Name, Avatar: user.Avatar},
		IsOwn: true,
	}, "")
	s.users.SetUserTyping(user.ID, false)

	s.log.Debug("message sent", zap.String("message_id", id), zap.String("user_id", user.ID))
	return id, nil
}

// SetStatus changes the local user's status and announces it.
func (s *Session) SetStatus(status models.UserStatus) error {
	user, err := s.currentUser()
	if err != nil {
		return err
	}

	s.users.SetUserStatus(user.ID, status)
	s.notifier.Notify(models.Toast{Type: "info", Message: user.Name + " is now " + string(status)})
	return nil
}
