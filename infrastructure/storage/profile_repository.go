//go:generate go run go.uber.org/mock/mockgen -source=profile_repository.go -destination=../../mocks/mock_profile_repository.go -package=mocks
package storage

import (
	"clinic-chat/domain/chat"
	"clinic-chat/errors"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

// IProfileDirectory resolves display profiles for one account category.
// GetProfilesByIDs omits unknown IDs instead of failing.
type IProfileDirectory interface {
	GetProfileByID(ctx context.Context, accountID string) (chat.Profile, error)
	GetProfilesByIDs(ctx context.Context, accountIDs []string) (map[string]chat.Profile, error)
}

type ProfileRepository struct {
	db       *badger.DB
	category chat.Category
	log      *slog.Logger
}

func NewProfileRepository(db *badger.DB, category chat.Category, log *slog.Logger) *ProfileRepository {
	return &ProfileRepository{db: db, category: category, log: log}
}

func profileKey(category chat.Category, accountID string) []byte {
	return []byte(fmt.Sprintf("profile:%s:%s", category, accountID))
}

func (p *ProfileRepository) SaveProfile(profile chat.Profile) error {
	if profile.Category != p.category {
		return fmt.Errorf("%w: profile %s is a %s, directory holds %s",
			errors.ErrInvalidInput, profile.ID, profile.Category, p.category)
	}
	data, err := encode(fromProfile(profile))
	if err != nil {
		return err
	}
	return p.db.Update(func(txn *badger.Txn) error {
		return txn.Set(profileKey(p.category, profile.ID), data)
	})
}

func (p *ProfileRepository) GetProfileByID(ctx context.Context, accountID string) (chat.Profile, error) {
	profiles, err := p.GetProfilesByIDs(ctx, []string{accountID})
	if err != nil {
		return chat.Profile{}, err
	}
	profile, ok := profiles[accountID]
	if !ok {
		return chat.Profile{}, fmt.Errorf("%w: %s profile %s", errors.ErrNotFound, p.category, accountID)
	}
	return profile, nil
}

func (p *ProfileRepository) GetProfilesByIDs(ctx context.Context, accountIDs []string) (map[string]chat.Profile, error) {
	profiles := make(map[string]chat.Profile, len(accountIDs))
	err := p.db.View(func(txn *badger.Txn) error {
		for _, id := range lo.Uniq(accountIDs) {
			if err := ctx.Err(); err != nil {
				return err
			}
			item, err := txn.Get(profileKey(p.category, id))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			err = item.Value(func(val []byte) error {
				doc, err := decode[profileDocument](val)
				if err != nil {
					return err
				}
				profiles[id] = toProfile(doc)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error during %s profiles fetch: %w", p.category, err)
	}
	return profiles, nil
}
