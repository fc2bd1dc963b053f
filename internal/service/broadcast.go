package service

import (
	"context"
	"errors"
	"time"

	"relaybot/internal/domain"
	"relaybot/internal/metrics"
	"relaybot/internal/repository"

	"go.uber.org/zap"
)

// ErrNotOperator is returned when a non-operator calls an operator-only action
var ErrNotOperator = errors.New("caller is not the operator")

// BroadcastService fans one payload out to many chats and keeps cumulative stats
type BroadcastService struct {
	groups     repository.GroupRepository
	users      repository.UserRepository
	stats      repository.StatsRepository
	messenger  Messenger
	operatorID int64
	delay      time.Duration
	logger     *zap.Logger
}

// NewBroadcastService creates a new broadcast service. delay is the pause
// between two consecutive sends of one run.
func NewBroadcastService(
	groups repository.GroupRepository,
	users repository.UserRepository,
	stats repository.StatsRepository,
	messenger Messenger,
	operatorID int64,
	delay time.Duration,
	logger *zap.Logger,
) *BroadcastService {
	return &BroadcastService{
		groups:     groups,
		users:      users,
		stats:      stats,
		messenger:  messenger,
		operatorID: operatorID,
		delay:      delay,
		logger:     logger,
	}
}

// IsOperator reports whether userID may use broadcast actions
func (s *BroadcastService) IsOperator(userID int64) bool {
	return userID == s.operatorID
}

// BroadcastToOne delivers the payload to a single chat. The tally counts as a group delivery.
func (s *BroadcastService) BroadcastToOne(ctx context.Context, callerID, chatID int64, payload domain.Payload) (domain.BroadcastResult, error) {
	if !s.IsOperator(callerID) {
		return domain.BroadcastResult{}, ErrNotOperator
	}
	return s.run(ctx, domain.AudienceGroups, []int64{chatID}, payload), nil
}

// BroadcastToAll delivers the payload to every known group
func (s *BroadcastService) BroadcastToAll(ctx context.Context, callerID int64, payload domain.Payload) (domain.BroadcastResult, error) {
	if !s.IsOperator(callerID) {
		return domain.BroadcastResult{}, ErrNotOperator
	}

	groups, err := s.groups.ListGroups()
	if err != nil {
		s.logger.Error("Failed to load groups, broadcasting to none", zap.Error(err))
		groups = nil
	}
	return s.run(ctx, domain.AudienceGroups, groups, payload), nil
}

// BroadcastToUsers delivers the payload to every known user
func (s *BroadcastService) BroadcastToUsers(ctx context.Context, callerID int64, payload domain.Payload) (domain.BroadcastResult, error) {
	if !s.IsOperator(callerID) {
		return domain.BroadcastResult{}, ErrNotOperator
	}

	users, err := s.users.ListUsers()
	if err != nil {
		s.logger.Error("Failed to load users, broadcasting to none", zap.Error(err))
		users = nil
	}
	return s.run(ctx, domain.AudienceUsers, users, payload), nil
}

// Summary is the operator's view of the stored state
type Summary struct {
	Users  int
	Groups int
	Stats  domain.BroadcastStats
}

// Summary reports known users, groups and cumulative counters. Storage
// failures degrade to zero values.
func (s *BroadcastService) Summary(callerID int64) (Summary, error) {
	if !s.IsOperator(callerID) {
		return Summary{}, ErrNotOperator
	}

	var sum Summary
	if users, err := s.users.ListUsers(); err != nil {
		s.logger.Error("Failed to load users", zap.Error(err))
	} else {
		sum.Users = len(users)
	}
	if groups, err := s.groups.ListGroups(); err != nil {
		s.logger.Error("Failed to load groups", zap.Error(err))
	} else {
		sum.Groups = len(groups)
	}
	if stats, err := s.stats.GetStats(); err != nil {
		s.logger.Error("Failed to load broadcast stats", zap.Error(err))
	} else {
		sum.Stats = stats
	}
	return sum, nil
}

// run sends to every destination sequentially; a failed destination never
// aborts the run. Cancelling ctx stops before the next destination and the
// tally so far is still recorded.
func (s *BroadcastService) run(ctx context.Context, audience domain.Audience, chatIDs []int64, payload domain.Payload) domain.BroadcastResult {
	s.logger.Info("Starting broadcast",
		zap.String("audience", string(audience)),
		zap.Int("destinations", len(chatIDs)),
		zap.Bool("media", payload.IsMedia()),
	)

	var res domain.BroadcastResult
	for i, chatID := range chatIDs {
		if i > 0 && s.delay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(s.delay):
			}
		}
		if ctx.Err() != nil {
			s.logger.Warn("Broadcast interrupted",
				zap.String("audience", string(audience)),
				zap.Int("remaining", len(chatIDs)-i),
				zap.Error(ctx.Err()),
			)
			break
		}
		if err := s.deliver(chatID, payload); err != nil {
			s.logger.Warn("Failed to deliver broadcast",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			res.Failed++
			continue
		}
		res.Sent++
	}

	metrics.AddBroadcast(string(audience), res.Sent, res.Failed)

	if _, err := s.stats.AddStats(audience.Delta(res)); err != nil {
		s.logger.Error("Failed to update broadcast stats",
			zap.Int("sent", res.Sent),
			zap.Int("failed", res.Failed),
			zap.Error(err),
		)
	}

	s.logger.Info("Broadcast finished",
		zap.String("audience", string(audience)),
		zap.Int("sent", res.Sent),
		zap.Int("failed", res.Failed),
	)
	return res
}

func (s *BroadcastService) deliver(chatID int64, payload domain.Payload) error {
	if payload.IsMedia() {
		_, err := s.messenger.SendPhoto(chatID, payload.MediaURL, payload.Text, domain.ParsePlain)
		return err
	}
	_, err := s.messenger.SendText(chatID, payload.Text, domain.ParsePlain)
	return err
}
