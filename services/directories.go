package services

import (
	"clinic-chat/domain/chat"
	"clinic-chat/infrastructure/storage"
	"clinic-chat/observability"
	"context"
	"log/slog"

	"github.com/samber/lo"
)

// Directories routes profile lookups to the directory of each account category.
type Directories struct {
	log        *slog.Logger
	monitoring *observability.MonitoringManager
	byCategory map[chat.Category]storage.IProfileDirectory
}

func NewDirectories(log *slog.Logger, monitoring *observability.MonitoringManager,
	patients, providers storage.IProfileDirectory) *Directories {
	return &Directories{
		log:        log,
		monitoring: monitoring,
		byCategory: map[chat.Category]storage.IProfileDirectory{
			chat.CategoryPatient:  patients,
			chat.CategoryProvider: providers,
		},
	}
}

// Resolve returns one profile per account, querying each directory once.
// An account its directory cannot resolve gets a placeholder profile.
func (d *Directories) Resolve(ctx context.Context, accounts []chat.Account) map[chat.Account]chat.Profile {
	profiles := make(map[chat.Account]chat.Profile, len(accounts))
	for category, members := range lo.GroupBy(lo.Uniq(accounts), func(a chat.Account) chat.Category { return a.Category }) {
		ids := lo.Map(members, func(a chat.Account, _ int) string { return a.ID })

		var found map[string]chat.Profile
		directory, ok := d.byCategory[category]
		if ok {
			var err error
			found, err = directory.GetProfilesByIDs(ctx, ids)
			if err != nil {
				d.log.Warn("Profile directory lookup failed, using placeholders",
					"category", category.String(), "count", len(ids), "error", err)
				found = nil
			}
		}

		for _, account := range members {
			profile, ok := found[account.ID]
			if !ok {
				d.monitoring.IncrProfileFallbacks()
				profile = chat.PlaceholderProfile(account)
			}
			profiles[account] = profile
		}
	}
	return profiles
}
