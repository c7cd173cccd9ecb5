package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type RoomType string

const (
	RoomDeal     RoomType = "deal"
	RoomListing  RoomType = "listing"
	RoomIDO      RoomType = "ido"
	RoomCampaign RoomType = "campaign"
	RoomProposal RoomType = "proposal"
	RoomTeam     RoomType = "team"
	RoomOps      RoomType = "ops"
)

type RoomStatus string

const (
	RoomActive   RoomStatus = "active"
	RoomArchived RoomStatus = "archived"
)

type MemberRole string

const (
	MemberOwner  MemberRole = "owner"
	MemberAdmin  MemberRole = "admin"
	MemberMember MemberRole = "member"
)

// RaftAI is the synthetic identity that narrates room lifecycle events
// (welcome, join/leave, rename). It is an admin member of every room.
var RaftAI = uuid.MustParse("00000000-0000-5000-a000-726166746169")

const RaftAIName = "RaftAI"

// roomNamespace seeds deterministic room ids so repeated acceptance of the
// same (founder, counterpart, project) triple always lands on one room.
var roomNamespace = uuid.MustParse("8b1e6e04-2f43-4b0a-9f3e-1c9d2b7a5e10")

func DeriveRoomID(founderID, counterpartID, projectID uuid.UUID) uuid.UUID {
	name := founderID.String() + ":" + counterpartID.String() + ":" + projectID.String()
	return uuid.NewSHA1(roomNamespace, []byte(name))
}

type RoomSettings struct {
	FilesAllowed bool  `json:"files_allowed"`
	MaxFileSize  int64 `json:"max_file_size"`
}

type Room struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Type            RoomType        `json:"type"`
	Status          RoomStatus      `json:"status"`
	FounderID       uuid.UUID       `json:"founder_id"`
	FounderName     string          `json:"founder_name"`
	FounderLogo     *string         `json:"founder_logo,omitempty"`
	CounterpartID   uuid.UUID       `json:"counterpart_id"`
	CounterpartName string          `json:"counterpart_name"`
	CounterpartRole string          `json:"counterpart_role"`
	CounterpartLogo *string         `json:"counterpart_logo,omitempty"`
	ProjectID       *uuid.UUID      `json:"project_id,omitempty"`
	Settings        RoomSettings    `json:"settings"`
	Memory          json.RawMessage `json:"memory,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	LastActivityAt  time.Time       `json:"last_activity_at"`
	ArchivedAt      *time.Time      `json:"archived_at,omitempty"`
}

type RoomMember struct {
	RoomID   uuid.UUID  `json:"room_id"`
	UserID   uuid.UUID  `json:"user_id"`
	Role     MemberRole `json:"role"`
	Muted    bool       `json:"muted"`
	JoinedAt time.Time  `json:"joined_at"`
	// Joined from users for member listings.
	DisplayName string `json:"display_name,omitempty"`
}

// visibleTypes maps a platform role to the room types it may see.
// Founders and admins see everything they are a member of.
var visibleTypes = map[string][]RoomType{
	RoleVC:         {RoomDeal, RoomOps},
	RoleExchange:   {RoomListing, RoomOps},
	RoleIDO:        {RoomIDO, RoomOps},
	RoleInfluencer: {RoomCampaign, RoomOps},
	RoleAgency:     {RoomCampaign, RoomProposal, RoomOps},
}

// RoleCanSeeRoom reports whether a user with the given platform role may see a
// room of the given type, membership notwithstanding.
func RoleCanSeeRoom(role string, t RoomType) bool {
	if role == RoleFounder || role == RoleAdmin {
		return true
	}
	allowed, ok := visibleTypes[role]
	if !ok {
		return t == RoomOps
	}
	for _, a := range allowed {
		if a == t {
			return true
		}
	}
	return false
}

// RoomTypeForRole is the room type opened when a counterpart with the given
// role accepts a project.
func RoomTypeForRole(role string) RoomType {
	switch role {
	case RoleVC:
		return RoomDeal
	case RoleExchange:
		return RoomListing
	case RoleIDO:
		return RoomIDO
	case RoleInfluencer:
		return RoomCampaign
	case RoleAgency:
		return RoomProposal
	}
	return RoomOps
}

// CanModerate reports whether a member role may rename, pin, or remove members.
func (r MemberRole) CanModerate() bool {
	return r == MemberOwner || r == MemberAdmin
}
