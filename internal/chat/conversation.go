// Package chat holds the pure presentation transforms for the messaging
// subsystem, kept free of storage and UI concerns so they can be tested
// in isolation.
package chat

import (
	"sort"

	"github.com/carelink/carelink-go/pkg/model"
)

// Group folds a flat message list into one summary per conversation
// partner. For each partner it keeps the most recent message (either
// direction) and counts the partner's messages to the current user that
// are still unread. Summaries are ordered by last-message time, newest
// first; ties break on partner id for a stable order.
//
// Messages where the current user is neither sender nor receiver are
// ignored, as are self-addressed messages.
func Group(messages []model.Message, currentUserID int64) []model.ConversationSummary {
	byPartner := make(map[int64]*model.ConversationSummary)

	for _, msg := range messages {
		var partnerID int64
		var partnerName string

		switch {
		case msg.SenderID == currentUserID && msg.ReceiverID != currentUserID:
			partnerID = msg.ReceiverID
			partnerName = msg.ReceiverName
		case msg.ReceiverID == currentUserID && msg.SenderID != currentUserID:
			partnerID = msg.SenderID
			partnerName = msg.SenderName
		default:
			continue
		}

		summary, ok := byPartner[partnerID]
		if !ok {
			summary = &model.ConversationSummary{PartnerID: partnerID}
			byPartner[partnerID] = summary
		}

		if partnerName != "" {
			summary.PartnerName = partnerName
		}

		if msg.Timestamp.After(summary.LastMessageTime) {
			summary.LastMessage = msg.Content
			summary.LastMessageTime = msg.Timestamp
		}

		if msg.ReceiverID == currentUserID && !msg.IsRead {
			summary.UnreadCount++
		}
	}

	summaries := make([]model.ConversationSummary, 0, len(byPartner))
	for _, summary := range byPartner {
		summaries = append(summaries, *summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].LastMessageTime.Equal(summaries[j].LastMessageTime) {
			return summaries[i].LastMessageTime.After(summaries[j].LastMessageTime)
		}
		return summaries[i].PartnerID < summaries[j].PartnerID
	})

	return summaries
}
