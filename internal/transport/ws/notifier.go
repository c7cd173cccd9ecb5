package ws

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rafthq/raftline/internal/domain"
	"go.uber.org/zap"
)

// MemberLister enumerates a room's members so room-level updates can be
// pushed to each of them even without a live room subscription.
type MemberLister interface {
	ListMembers(ctx context.Context, roomID uuid.UUID) ([]domain.RoomMember, error)
}

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub     *Hub
	members MemberLister
	logger  *zap.Logger
}

func NewHubNotifier(hub *Hub, members MemberLister, logger *zap.Logger) *HubNotifier {
	return &HubNotifier{
		hub:     hub,
		members: members,
		logger:  logger,
	}
}

func (n *HubNotifier) NotifyNewMessage(msg *domain.Message) {
	evt, err := NewEvent(EventTypeMessageNew, &msg.RoomID, MessagePayload{Message: *msg})
	if err != nil {
		n.logger.Warn("ws notifier marshal error", zap.Error(err))
		return
	}
	n.hub.BroadcastToRoom(msg.RoomID, evt)
}

func (n *HubNotifier) NotifyMessageEdited(msg *domain.Message) {
	evt, err := NewEvent(EventTypeMessageEdited, &msg.RoomID, MessagePayload{Message: *msg})
	if err != nil {
		n.logger.Warn("ws notifier marshal error", zap.Error(err))
		return
	}
	n.hub.BroadcastToRoom(msg.RoomID, evt)
}

func (n *HubNotifier) NotifyMessageDeleted(roomID, messageID uuid.UUID) {
	evt, err := NewEvent(EventTypeMessageDeleted, &roomID, MessageDeletedPayload{ID: messageID})
	if err != nil {
		n.logger.Warn("ws notifier marshal error", zap.Error(err))
		return
	}
	n.hub.BroadcastToRoom(roomID, evt)
}

func (n *HubNotifier) NotifyReaction(roomID, messageID uuid.UUID, reactions map[string][]uuid.UUID) {
	evt, err := NewEvent(EventTypeReactionUpdated, &roomID, ReactionPayload{
		MessageID: messageID,
		Reactions: reactions,
	})
	if err != nil {
		n.logger.Warn("ws notifier marshal error", zap.Error(err))
		return
	}
	n.hub.BroadcastToRoom(roomID, evt)
}

// NotifyRoomUpdated pushes the room to every member individually; room-list
// views listen on the user, not on a room subscription.
func (n *HubNotifier) NotifyRoomUpdated(room *domain.Room) {
	evt, err := NewEvent(EventTypeRoomUpdated, &room.ID, RoomPayload{Room: *room})
	if err != nil {
		n.logger.Warn("ws notifier marshal error", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	members, err := n.members.ListMembers(ctx, room.ID)
	if err != nil {
		n.logger.Warn("ws notifier member lookup failed",
			zap.String("room_id", room.ID.String()), zap.Error(err))
		return
	}
	for _, m := range members {
		n.hub.BroadcastToUser(m.UserID, evt)
	}
}

func (n *HubNotifier) NotifyMemberJoined(roomID uuid.UUID, member *domain.RoomMember) {
	evt, err := NewEvent(EventTypeMemberJoined, &roomID, MemberPayload{RoomMember: *member})
	if err != nil {
		n.logger.Warn("ws notifier marshal error", zap.Error(err))
		return
	}
	n.hub.BroadcastToRoom(roomID, evt)
}

func (n *HubNotifier) NotifyMemberLeft(roomID, userID uuid.UUID) {
	evt, err := NewEvent(EventTypeMemberLeft, &roomID, MemberLeftPayload{UserID: userID})
	if err != nil {
		n.logger.Warn("ws notifier marshal error", zap.Error(err))
		return
	}
	n.hub.BroadcastToRoom(roomID, evt)
}
