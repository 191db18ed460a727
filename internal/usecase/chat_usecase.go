package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"mentorlink/internal/chatsync"
	"mentorlink/internal/domain/entity"
	"mentorlink/internal/domain/repository"
	"mentorlink/internal/infrastructure/cache"
	"mentorlink/internal/infrastructure/ratelimit"
	"mentorlink/pkg/errors"
	"mentorlink/pkg/logger"
)

type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	groupRepo   repository.GroupRepository
	userRepo    repository.UserRepository
	profiles    *cache.ProfileCache
	receipts    *chatsync.ReceiptTracker
	rateLimiter *ratelimit.RateLimiter
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	profiles *cache.ProfileCache,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:    chatRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		profiles:    profiles,
		receipts:    chatsync.NewReceiptTracker(chatRepo),
		rateLimiter: ratelimit.NewRateLimiter(),
	}
}

// ChatSummary is one row of the chat list: the conversation plus the
// counterpart's resolved display identity and last-activity fields.
type ChatSummary struct {
	ConversationID  string    `json:"conversation_id"`
	OtherID         string    `json:"other_id"`
	OtherUsername   string    `json:"other_username"`
	OtherName       string    `json:"other_name"`
	OtherAvatarURL  string    `json:"other_avatar_url,omitempty"`
	LastMessage     string    `json:"last_message"`
	LastMessageTime time.Time `json:"last_message_time"`
}

// ChatList is everything the chat sidebar shows, both filtered by one
// search term.
type ChatList struct {
	Chats  []ChatSummary   `json:"chats"`
	Groups []*entity.Group `json:"groups"`
}

// OpenConversation returns the thread between the actor and the named
// counterpart, creating it empty on first open. Only learner↔guide
// pairings exist; the counterpart is looked up in the opposite role's
// collection.
func (uc *ChatUseCase) OpenConversation(ctx context.Context, actor *entity.User, otherUsername string) (*entity.Conversation, error) {
	if actor.Role != entity.RoleLearner && actor.Role != entity.RoleGuide {
		return nil, errors.Forbidden("Only learners and guides have direct conversations", nil)
	}
	if otherUsername == actor.Username {
		return nil, errors.BadRequest("You cannot open a conversation with yourself", nil)
	}

	otherRole := entity.CounterpartRole(actor.Role)
	other, err := uc.userRepo.GetByUsername(ctx, otherRole, otherUsername)
	if err != nil {
		return nil, err
	}

	id := entity.ConversationKey(actor.Role, actor.Username, other.Username)

	conv, err := uc.chatRepo.GetConversation(ctx, id)
	if err == nil {
		return conv, nil
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}

	// First contact: the thread is created empty. A concurrent first
	// open from the other side derives the identical key, so the upsert
	// converges on one document.
	conv = &entity.Conversation{
		ID:                   id,
		Participant1ID:       actor.ID,
		Participant2ID:       other.ID,
		Participant1Username: actor.Username,
		Participant2Username: other.Username,
		Participant1Role:     actor.Role,
		Participant2Role:     otherRole,
		Messages:             []entity.Message{},
		LastMessageAt:        time.Now(),
	}

	if err := uc.chatRepo.UpsertConversation(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// SendMessage appends to the conversation's embedded sequence with a
// full read-modify-write. Two senders racing between the read and the
// write lose one message to the other's replace; the forced fetch after
// send is what lets the loser notice. A failed send changes nothing
// locally, so the caller's draft survives for a manual retry.
func (uc *ChatUseCase) SendMessage(ctx context.Context, actor *entity.User, conversationID, body string) (*entity.Conversation, error) {
	if allowed, _ := uc.rateLimiter.Allow(actor.ID, "send_message"); !allowed {
		return nil, errors.TooManyRequests("Too many messages, slow down")
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, errors.BadRequest("Message body is empty", nil)
	}

	conv, err := uc.chatRepo.GetConversation(ctx, conversationID)
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, err
		}
		conv, err = uc.conversationFromKey(ctx, actor, conversationID)
		if err != nil {
			return nil, err
		}
	}

	if !conv.HasParticipant(actor.ID) {
		return nil, errors.Forbidden("You are not part of this conversation", nil)
	}

	now := time.Now()
	conv.Messages = append(conv.Messages, entity.Message{
		ID:             now.UnixNano(),
		SenderID:       actor.ID,
		SenderUsername: actor.Username,
		SenderName:     actor.Name,
		Body:           body,
		CreatedAt:      now,
		Seen:           false,
	})
	conv.LastMessageAt = now

	if err := uc.chatRepo.UpsertConversation(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// counterpartFromKey validates the actor against a key before any
// document exists. The actor's username must occupy their role's slot,
// otherwise a stranger named nowhere in the key, or a guide squatting in
// the learner slot, could mint another pair's thread.
func counterpartFromKey(actor *entity.User, conversationID string) (string, error) {
	otherUsername := entity.CounterpartUsername(conversationID, actor.Username)
	if otherUsername == "" || entity.ConversationKey(actor.Role, actor.Username, otherUsername) != conversationID {
		return "", errors.Forbidden("You are not part of this conversation", nil)
	}
	return otherUsername, nil
}

// conversationFromKey rebuilds a missing conversation document from its
// key, for a send that raced the lazy creation.
func (uc *ChatUseCase) conversationFromKey(ctx context.Context, actor *entity.User, conversationID string) (*entity.Conversation, error) {
	otherUsername, err := counterpartFromKey(actor, conversationID)
	if err != nil {
		return nil, err
	}

	otherRole := entity.CounterpartRole(actor.Role)
	other, err := uc.userRepo.GetByUsername(ctx, otherRole, otherUsername)
	if err != nil {
		return nil, err
	}

	return &entity.Conversation{
		ID:                   conversationID,
		Participant1ID:       actor.ID,
		Participant2ID:       other.ID,
		Participant1Username: actor.Username,
		Participant2Username: other.Username,
		Participant1Role:     actor.Role,
		Participant2Role:     otherRole,
		Messages:             []entity.Message{},
		LastMessageAt:        time.Now(),
	}, nil
}

// FetchConversation is the polling read: the full current sequence, with
// the receipt catch-up run after a successful fetch, exactly as the
// sync loop does it. A thread that was never written reads as empty.
func (uc *ChatUseCase) FetchConversation(ctx context.Context, actor *entity.User, conversationID string) (*entity.Conversation, error) {
	conv, err := uc.chatRepo.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.IsNotFound(err) {
			// The empty read is only for the pair the key names.
			if _, kerr := counterpartFromKey(actor, conversationID); kerr != nil {
				return nil, kerr
			}
			return &entity.Conversation{ID: conversationID, Messages: []entity.Message{}}, nil
		}
		return nil, err
	}

	if !conv.HasParticipant(actor.ID) {
		return nil, errors.Forbidden("You are not part of this conversation", nil)
	}

	if _, err := uc.receipts.CatchUp(ctx, conv, actor.ID); err != nil {
		// The read still succeeded; the flags catch up on a later fetch.
		logger.Warn("Receipt catch-up failed for %s: %v", conversationID, err)
	}

	return conv, nil
}

// Recipient resolves the counterpart's profile for the chat header.
func (uc *ChatUseCase) Recipient(ctx context.Context, actor *entity.User, conversationID string) (*entity.User, error) {
	otherUsername, err := counterpartFromKey(actor, conversationID)
	if err != nil {
		return nil, err
	}
	return uc.userRepo.GetByUsername(ctx, entity.CounterpartRole(actor.Role), otherUsername)
}

// ListChats builds the sidebar: every conversation the actor is part of
// with the counterpart's display identity resolved, plus the groups the
// actor belongs to. Conversations sort by most recent activity, using
// the conversation-level timestamp when the thread is empty. The search
// term filters both lists by case-insensitive substring.
func (uc *ChatUseCase) ListChats(ctx context.Context, actor *entity.User, search string) (*ChatList, error) {
	convs, err := uc.chatRepo.ListConversationsByParticipant(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ChatSummary, 0, len(convs))
	for _, conv := range convs {
		otherID, otherUsername, otherRole := conv.Counterpart(actor.ID)

		summary := ChatSummary{
			ConversationID:  conv.ID,
			OtherID:         otherID,
			OtherUsername:   otherUsername,
			OtherName:       otherUsername,
			LastMessageTime: conv.ActivityTime(),
		}
		if last := conv.LastMessage(); last != nil {
			summary.LastMessage = last.Body
		}

		if profile := uc.lookupProfile(ctx, otherRole, otherID); profile != nil {
			summary.OtherName = profile.Name
			summary.OtherAvatarURL = profile.AvatarURL
		}

		summaries = append(summaries, summary)
	}

	sortSummaries(summaries)

	groups, err := uc.groupRepo.ListByMember(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if search != "" {
		term := strings.ToLower(search)

		filtered := summaries[:0]
		for _, s := range summaries {
			if strings.Contains(strings.ToLower(s.OtherName), term) {
				filtered = append(filtered, s)
			}
		}
		summaries = filtered

		filteredGroups := groups[:0]
		for _, g := range groups {
			if strings.Contains(strings.ToLower(g.Name), term) {
				filteredGroups = append(filteredGroups, g)
			}
		}
		groups = filteredGroups
	}

	return &ChatList{Chats: summaries, Groups: groups}, nil
}

func (uc *ChatUseCase) lookupProfile(ctx context.Context, kind, id string) *entity.ProfileSummary {
	if profile := uc.profiles.Get(ctx, kind, id); profile != nil {
		return profile
	}

	profile, err := uc.userRepo.GetProfileSummary(ctx, kind, id)
	if err != nil {
		logger.Warn("Profile lookup failed for %s %s: %v", kind, id, err)
		return nil
	}

	uc.profiles.Set(ctx, kind, profile)
	return profile
}

func sortSummaries(summaries []ChatSummary) {
	// Repo order is by the conversation-level timestamp; re-sort on the
	// last message time with that timestamp as the empty-thread fallback.
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].LastMessageTime.After(summaries[j].LastMessageTime)
	})
}

// SessionConfig assembles the sync-loop wiring for an activated target.
func (uc *ChatUseCase) SessionConfig(actor *entity.User, target chatsync.Target, interval time.Duration) chatsync.Config {
	cfg := chatsync.Config{
		Target:   target,
		ViewerID: actor.ID,
		Repo:     uc.chatRepo,
		Interval: interval,
	}
	if _, ok := target.(chatsync.DirectTarget); ok {
		cfg.Receipts = uc.receipts
	}
	return cfg
}
