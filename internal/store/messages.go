package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/carelink/carelink-go/pkg/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ErrMessageNotFound marks a lookup for an unknown message id
var ErrMessageNotFound = errors.New("message not found")

// MessageStore is the authoritative datastore for chat messages. The
// is_read flag only ever moves false to true; opening a conversation
// flips the whole inbound history from that sender in one bulk update.
type MessageStore struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewMessageStore creates a new MessageStore
func NewMessageStore(db *pgxpool.Pool, logger *zap.Logger) *MessageStore {
	return &MessageStore{
		db:     db,
		logger: logger,
	}
}

// Save persists a new message row
func (s *MessageStore) Save(ctx context.Context, msg *model.Message) error {
	query := `
		INSERT INTO messages (id, sender_id, receiver_id, content, timestamp, is_read, attachment)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.db.Exec(ctx, query,
		msg.ID,
		msg.SenderID,
		msg.ReceiverID,
		msg.Content,
		msg.Timestamp,
		msg.IsRead,
		msg.Attachment,
	)

	if err != nil {
		s.logger.Error("failed to save message",
			zap.Error(err),
			zap.String("message_id", msg.ID),
			zap.Int64("sender_id", msg.SenderID),
		)
		return fmt.Errorf("failed to save message: %w", err)
	}

	return nil
}

// FindByID retrieves a message by id
func (s *MessageStore) FindByID(ctx context.Context, messageID string) (*model.Message, error) {
	query := `
		SELECT id, sender_id, receiver_id, content, timestamp, is_read, attachment
		FROM messages
		WHERE id = $1
	`

	var msg model.Message
	err := s.db.QueryRow(ctx, query, messageID).Scan(
		&msg.ID,
		&msg.SenderID,
		&msg.ReceiverID,
		&msg.Content,
		&msg.Timestamp,
		&msg.IsRead,
		&msg.Attachment,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", ErrMessageNotFound, messageID)
		}
		s.logger.Error("failed to find message", zap.Error(err), zap.String("message_id", messageID))
		return nil, fmt.Errorf("failed to find message: %w", err)
	}

	return &msg, nil
}

// FindByParticipant retrieves every message the user sent or received,
// newest first
func (s *MessageStore) FindByParticipant(ctx context.Context, userID int64) ([]model.Message, error) {
	query := `
		SELECT id, sender_id, receiver_id, content, timestamp, is_read, attachment
		FROM messages
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY timestamp DESC
	`

	return s.queryMessages(ctx, query, userID)
}

// FindConversation retrieves both directions of traffic between two
// users, oldest first, ready for chat rendering
func (s *MessageStore) FindConversation(ctx context.Context, userA, userB int64) ([]model.Message, error) {
	query := `
		SELECT id, sender_id, receiver_id, content, timestamp, is_read, attachment
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY timestamp ASC
	`

	return s.queryMessages(ctx, query, userA, userB)
}

// MarkConversationRead flips is_read for all currently unread messages
// from sender to receiver. Returns the number of rows updated.
func (s *MessageStore) MarkConversationRead(ctx context.Context, receiverID, senderID int64) (int64, error) {
	query := `
		UPDATE messages
		SET is_read = TRUE
		WHERE receiver_id = $1 AND sender_id = $2 AND NOT is_read
	`

	result, err := s.db.Exec(ctx, query, receiverID, senderID)
	if err != nil {
		s.logger.Error("failed to mark conversation read",
			zap.Error(err),
			zap.Int64("receiver_id", receiverID),
			zap.Int64("sender_id", senderID),
		)
		return 0, fmt.Errorf("failed to mark conversation read: %w", err)
	}

	return result.RowsAffected(), nil
}

// UnreadCount returns how many messages addressed to the user are unread
func (s *MessageStore) UnreadCount(ctx context.Context, receiverID int64) (int, error) {
	query := `SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND NOT is_read`

	var count int
	if err := s.db.QueryRow(ctx, query, receiverID).Scan(&count); err != nil {
		s.logger.Error("failed to count unread messages", zap.Error(err), zap.Int64("receiver_id", receiverID))
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}

	return count, nil
}

// UnreadSenders returns the distinct users with unread messages waiting
// for the receiver
func (s *MessageStore) UnreadSenders(ctx context.Context, receiverID int64) ([]int64, error) {
	query := `
		SELECT DISTINCT sender_id
		FROM messages
		WHERE receiver_id = $1 AND NOT is_read
	`

	rows, err := s.db.Query(ctx, query, receiverID)
	if err != nil {
		s.logger.Error("failed to list unread senders", zap.Error(err), zap.Int64("receiver_id", receiverID))
		return nil, fmt.Errorf("failed to list unread senders: %w", err)
	}
	defer rows.Close()

	var senders []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			s.logger.Error("failed to scan sender id", zap.Error(err))
			continue
		}
		senders = append(senders, id)
	}

	if err := rows.Err(); err != nil {
		s.logger.Error("error iterating unread senders", zap.Error(err))
		return nil, fmt.Errorf("error iterating unread senders: %w", err)
	}

	return senders, nil
}

func (s *MessageStore) queryMessages(ctx context.Context, query string, args ...any) ([]model.Message, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		s.logger.Error("failed to query messages", zap.Error(err))
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var msg model.Message
		err := rows.Scan(
			&msg.ID,
			&msg.SenderID,
			&msg.ReceiverID,
			&msg.Content,
			&msg.Timestamp,
			&msg.IsRead,
			&msg.Attachment,
		)
		if err != nil {
			s.logger.Error("failed to scan message", zap.Error(err))
			continue
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		s.logger.Error("error iterating messages", zap.Error(err))
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}
