package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"publishing-backend/internal/domains/article/model"
)

// resolveTagIDs parses, dedupes and validates a desired tag set.
// Every id must resolve to a live tag or the whole set is rejected.
func (s *articleService) resolveTagIDs(ctx context.Context, raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	seen := make(map[uuid.UUID]bool, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", model.ErrTagNotFound, r)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	live, err := s.repo.LiveTagIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(live) != len(ids) {
		return nil, model.ErrTagNotFound
	}

	return ids, nil
}

// syncTags reconciles the stored tag set toward the desired one by
// delta, so re-sending the same set touches nothing. Add and remove
// apply in one transaction or not at all.
func (s *articleService) syncTags(ctx context.Context, articleID uuid.UUID, desired []uuid.UUID) error {
	current, err := s.repo.TagIDsForArticle(ctx, articleID)
	if err != nil {
		return err
	}

	currentSet := make(map[uuid.UUID]bool, len(current))
	for _, id := range current {
		currentSet[id] = true
	}
	desiredSet := make(map[uuid.UUID]bool, len(desired))
	for _, id := range desired {
		desiredSet[id] = true
	}

	var add []uuid.UUID
	for _, id := range desired {
		if !currentSet[id] {
			add = append(add, id)
		}
	}

	var remove []uuid.UUID
	for _, id := range current {
		if !desiredSet[id] {
			remove = append(remove, id)
		}
	}

	if len(add) == 0 && len(remove) == 0 {
		return nil
	}

	return s.repo.ApplyTagDelta(ctx, articleID, add, remove)
}
