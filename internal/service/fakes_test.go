package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rafthq/raftline/internal/domain"
)

// In-memory repository fakes. Each mirrors the semantics the Postgres
// implementation guarantees (atomic toggles, idempotent redemption) so the
// services can be exercised without a database.

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) SetProfileCompleted(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.ProfileCompleted = true
	}
	return nil
}

func (r *fakeUserRepo) SetVerificationStatus(_ context.Context, id uuid.UUID, track string, status domain.VerificationStatus) error {
	u, ok := r.users[id]
	if !ok {
		return errors.New("no such user")
	}
	if track == "kyb" {
		u.KYBStatus = status
	} else {
		u.KYCStatus = status
	}
	return nil
}

type fakeRoomRepo struct {
	rooms   map[uuid.UUID]*domain.Room
	members map[uuid.UUID]map[uuid.UUID]*domain.RoomMember
	pins    map[uuid.UUID]map[uuid.UUID]bool
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{
		rooms:   make(map[uuid.UUID]*domain.Room),
		members: make(map[uuid.UUID]map[uuid.UUID]*domain.RoomMember),
		pins:    make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (r *fakeRoomRepo) Create(_ context.Context, room *domain.Room) error {
	if _, exists := r.rooms[room.ID]; exists {
		return errors.New("duplicate room id")
	}
	cp := *room
	r.rooms[room.ID] = &cp
	return nil
}

func (r *fakeRoomRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Room, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, nil
	}
	cp := *room
	return &cp, nil
}

func (r *fakeRoomRepo) ListActiveByUser(_ context.Context, userID uuid.UUID) ([]domain.Room, error) {
	var out []domain.Room
	for roomID, members := range r.members {
		if _, ok := members[userID]; !ok {
			continue
		}
		room := r.rooms[roomID]
		if room == nil || room.Status != domain.RoomActive {
			continue
		}
		out = append(out, *room)
	}
	// Most recently active first, like the store's ORDER BY.
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastActivityAt.After(out[j].LastActivityAt)
	})
	return out, nil
}

func (r *fakeRoomRepo) Rename(_ context.Context, id uuid.UUID, name string) error {
	if room, ok := r.rooms[id]; ok {
		room.Name = name
	}
	return nil
}

func (r *fakeRoomRepo) Archive(_ context.Context, id uuid.UUID) error {
	if room, ok := r.rooms[id]; ok {
		now := time.Now()
		room.Status = domain.RoomArchived
		room.ArchivedAt = &now
	}
	return nil
}

func (r *fakeRoomRepo) TouchActivity(_ context.Context, id uuid.UUID) error {
	if room, ok := r.rooms[id]; ok {
		room.LastActivityAt = time.Now()
	}
	return nil
}

func (r *fakeRoomRepo) AddMember(_ context.Context, member *domain.RoomMember) error {
	if r.members[member.RoomID] == nil {
		r.members[member.RoomID] = make(map[uuid.UUID]*domain.RoomMember)
	}
	// ON CONFLICT DO NOTHING
	if _, exists := r.members[member.RoomID][member.UserID]; exists {
		return nil
	}
	cp := *member
	r.members[member.RoomID][member.UserID] = &cp
	return nil
}

func (r *fakeRoomRepo) RemoveMember(_ context.Context, roomID, userID uuid.UUID) error {
	delete(r.members[roomID], userID)
	return nil
}

func (r *fakeRoomRepo) GetMember(_ context.Context, roomID, userID uuid.UUID) (*domain.RoomMember, error) {
	member, ok := r.members[roomID][userID]
	if !ok {
		return nil, nil
	}
	cp := *member
	return &cp, nil
}

func (r *fakeRoomRepo) ListMembers(_ context.Context, roomID uuid.UUID) ([]domain.RoomMember, error) {
	var out []domain.RoomMember
	for _, m := range r.members[roomID] {
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakeRoomRepo) SetMuted(_ context.Context, roomID, userID uuid.UUID, muted bool) error {
	if m, ok := r.members[roomID][userID]; ok {
		m.Muted = muted
	}
	return nil
}

func (r *fakeRoomRepo) TogglePin(_ context.Context, roomID, messageID uuid.UUID) (bool, error) {
	if r.pins[roomID] == nil {
		r.pins[roomID] = make(map[uuid.UUID]bool)
	}
	if r.pins[roomID][messageID] {
		delete(r.pins[roomID], messageID)
		return false, nil
	}
	r.pins[roomID][messageID] = true
	return true, nil
}

func (r *fakeRoomRepo) ListPins(_ context.Context, roomID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for id := range r.pins[roomID] {
		out = append(out, id)
	}
	return out, nil
}

type fakeMessageRepo struct {
	messages  map[uuid.UUID]*domain.Message
	order     []uuid.UUID
	reactions []domain.Reaction
	reads     map[uuid.UUID]map[uuid.UUID]bool
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{
		messages: make(map[uuid.UUID]*domain.Message),
		reads:    make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	cp := *msg
	r.messages[msg.ID] = &cp
	r.order = append(r.order, msg.ID)
	return nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Message, error) {
	msg, ok := r.messages[id]
	if !ok {
		return nil, nil
	}
	cp := *msg
	cp.Reactions = r.reactionsFor(id)
	return &cp, nil
}

func (r *fakeMessageRepo) ListRecent(_ context.Context, roomID uuid.UUID, limit int) ([]domain.Message, error) {
	var out []domain.Message
	for _, id := range r.order {
		msg := r.messages[id]
		if msg.RoomID != roomID || msg.IsDeleted {
			continue
		}
		cp := *msg
		cp.Reactions = r.reactionsFor(id)
		out = append(out, cp)
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (r *fakeMessageRepo) UpdateText(_ context.Context, id uuid.UUID, text string) error {
	msg, ok := r.messages[id]
	if !ok {
		return errors.New("no such message")
	}
	now := time.Now()
	msg.Text = text
	msg.IsEdited = true
	msg.EditedAt = &now
	return nil
}

func (r *fakeMessageRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if msg, ok := r.messages[id]; ok {
		msg.IsDeleted = true
	}
	return nil
}

func (r *fakeMessageRepo) ToggleReaction(_ context.Context, messageID, userID uuid.UUID, emoji string) (bool, error) {
	for i, row := range r.reactions {
		if row.MessageID == messageID && row.UserID == userID && row.Emoji == emoji {
			r.reactions = append(r.reactions[:i], r.reactions[i+1:]...)
			return false, nil
		}
	}
	r.reactions = append(r.reactions, domain.Reaction{MessageID: messageID, UserID: userID, Emoji: emoji})
	return true, nil
}

func (r *fakeMessageRepo) MarkRead(_ context.Context, messageID, userID uuid.UUID) error {
	if r.reads[messageID] == nil {
		r.reads[messageID] = make(map[uuid.UUID]bool)
	}
	r.reads[messageID][userID] = true
	return nil
}

func (r *fakeMessageRepo) reactionsFor(messageID uuid.UUID) map[string][]uuid.UUID {
	var rows []domain.Reaction
	for _, row := range r.reactions {
		if row.MessageID == messageID {
			rows = append(rows, row)
		}
	}
	return domain.BuildReactionMap(rows)
}

// lastByType returns the newest message of the given type in a room.
func (r *fakeMessageRepo) lastByType(roomID uuid.UUID, t domain.MessageType) *domain.Message {
	for i := len(r.order) - 1; i >= 0; i-- {
		msg := r.messages[r.order[i]]
		if msg.RoomID == roomID && msg.Type == t {
			return msg
		}
	}
	return nil
}

type fakeInviteRepo struct {
	invites     map[uuid.UUID]*domain.Invite
	byCode      map[string]uuid.UUID
	redemptions map[uuid.UUID]map[uuid.UUID]bool
}

func newFakeInviteRepo() *fakeInviteRepo {
	return &fakeInviteRepo{
		invites:     make(map[uuid.UUID]*domain.Invite),
		byCode:      make(map[string]uuid.UUID),
		redemptions: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (r *fakeInviteRepo) Create(_ context.Context, invite *domain.Invite) error {
	cp := *invite
	r.invites[invite.ID] = &cp
	r.byCode[invite.Code] = invite.ID
	return nil
}

func (r *fakeInviteRepo) GetByCode(_ context.Context, code string) (*domain.Invite, error) {
	id, ok := r.byCode[code]
	if !ok {
		return nil, nil
	}
	cp := *r.invites[id]
	return &cp, nil
}

func (r *fakeInviteRepo) Redeem(_ context.Context, inviteID, userID uuid.UUID) (domain.RedeemOutcome, error) {
	invite, ok := r.invites[inviteID]
	if !ok {
		return 0, errors.New("no such invite")
	}
	if r.redemptions[inviteID][userID] {
		return domain.RedeemAlreadyUsed, nil
	}
	if invite.UsedCount >= invite.MaxUses || time.Now().After(invite.ExpiresAt) {
		return domain.RedeemRefused, nil
	}
	if r.redemptions[inviteID] == nil {
		r.redemptions[inviteID] = make(map[uuid.UUID]bool)
	}
	r.redemptions[inviteID][userID] = true
	invite.UsedCount++
	return domain.RedeemOK, nil
}

type fakeProjectRepo struct {
	projects map[uuid.UUID]*domain.Project
	accepted map[uuid.UUID]uuid.UUID
}

func newFakeProjectRepo(projects ...*domain.Project) *fakeProjectRepo {
	r := &fakeProjectRepo{
		projects: make(map[uuid.UUID]*domain.Project),
		accepted: make(map[uuid.UUID]uuid.UUID),
	}
	for _, p := range projects {
		r.projects[p.ID] = p
	}
	return r
}

func (r *fakeProjectRepo) Create(_ context.Context, project *domain.Project) error {
	r.projects[project.ID] = project
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Project, error) {
	return r.projects[id], nil
}

func (r *fakeProjectRepo) MarkAccepted(_ context.Context, id, counterpartID uuid.UUID) error {
	r.accepted[id] = counterpartID
	return nil
}

type fakeNotificationRepo struct {
	created []domain.Notification
	failErr error
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.created = append(r.created, *n)
	return nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range r.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id, userID uuid.UUID) error {
	now := time.Now()
	for i := range r.created {
		if r.created[i].ID == id && r.created[i].UserID == userID {
			r.created[i].ReadAt = &now
		}
	}
	return nil
}

type fakeBlogRepo struct {
	posts map[string]*domain.BlogPost
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{posts: make(map[string]*domain.BlogPost)}
}

func (r *fakeBlogRepo) Create(_ context.Context, post *domain.BlogPost) error {
	cp := *post
	r.posts[post.SourceID] = &cp
	return nil
}

func (r *fakeBlogRepo) GetBySourceID(_ context.Context, sourceID string) (*domain.BlogPost, error) {
	post, ok := r.posts[sourceID]
	if !ok {
		return nil, nil
	}
	cp := *post
	return &cp, nil
}

type fakeReportRepo struct {
	reports []domain.Report
	audit   []domain.AuditEntry
}

func (r *fakeReportRepo) CreateReport(_ context.Context, report *domain.Report) error {
	r.reports = append(r.reports, *report)
	return nil
}

func (r *fakeReportRepo) CreateAudit(_ context.Context, entry *domain.AuditEntry) error {
	r.audit = append(r.audit, *entry)
	return nil
}
