package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"campuscare/internal/models"
	"campuscare/internal/notify"
	"campuscare/internal/repository"
)

// LostFoundService manages lost-item reports. Claiming is handled offline
// between students; the system only tracks the Unclaimed/Collected state.
type LostFoundService struct {
	items      repository.LostItemRepository
	users      repository.UserRepository
	dispatcher Dispatcher
	log        zerolog.Logger
}

func NewLostFoundService(items repository.LostItemRepository, users repository.UserRepository, dispatcher Dispatcher, log zerolog.Logger) *LostFoundService {
	return &LostFoundService{items: items, users: users, dispatcher: dispatcher, log: log}
}

type LostItemInput struct {
	ItemName      string
	Description   string
	LocationFound string
	ContactInfo   string
	ImagePath     string
}

// Report files a lost-item report and broadcasts it to every student,
// best-effort, one log row per recipient.
func (s *LostFoundService) Report(ctx context.Context, actor Actor, in LostItemInput) (*models.LostItem, error) {
	if actor.Role != models.RoleStudent {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(in.ItemName) == "" || strings.TrimSpace(in.Description) == "" ||
		strings.TrimSpace(in.LocationFound) == "" || strings.TrimSpace(in.ContactInfo) == "" {
		return nil, ErrInvalidInput
	}

	item := &models.LostItem{
		StudentID:     actor.ID,
		ItemName:      strings.TrimSpace(in.ItemName),
		Description:   strings.TrimSpace(in.Description),
		LocationFound: strings.TrimSpace(in.LocationFound),
		ContactInfo:   strings.TrimSpace(in.ContactInfo),
		ImagePath:     in.ImagePath,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	students, err := s.users.ListByRole(ctx, models.RoleStudent)
	if err != nil {
		// The report itself is committed; the broadcast is best-effort.
		s.log.Error().Err(err).Msg("lost-item broadcast: list students")
		return item, nil
	}
	for _, st := range students {
		s.dispatcher.Dispatch(ctx, 0, notify.LostItemBroadcast(item, st))
	}
	return item, nil
}

func (s *LostFoundService) List(ctx context.Context) ([]models.LostItem, error) {
	return s.items.List(ctx)
}

// MarkCollected flips a report to Collected. Only the reporter may do this,
// and only once: collected items are immutable.
func (s *LostFoundService) MarkCollected(ctx context.Context, actor Actor, itemID int64) error {
	item, err := s.ownItem(ctx, actor, itemID)
	if err != nil {
		return err
	}
	if item.Status == models.ItemCollected {
		return ErrCollected
	}
	return s.items.MarkCollected(ctx, itemID)
}

// Delete removes a report. Only the reporter may delete, and only while the
// item is unclaimed.
func (s *LostFoundService) Delete(ctx context.Context, actor Actor, itemID int64) error {
	item, err := s.ownItem(ctx, actor, itemID)
	if err != nil {
		return err
	}
	if item.Status == models.ItemCollected {
		return ErrCollected
	}
	return s.items.Delete(ctx, itemID)
}

func (s *LostFoundService) ownItem(ctx context.Context, actor Actor, itemID int64) (*models.LostItem, error) {
	if actor.Role != models.RoleStudent {
		return nil, ErrForbidden
	}
	item, err := s.items.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	if item.StudentID != actor.ID {
		return nil, ErrForbidden
	}
	return item, nil
}
