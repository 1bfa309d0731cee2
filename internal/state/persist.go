package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/huangang/teamboard/internal/datastore"
	"github.com/huangang/teamboard/internal/metrics"
	"github.com/huangang/teamboard/internal/models"
	"github.com/huangang/teamboard/internal/persistence"
	"github.com/huangang/teamboard/pkg/logger"
)

type persistedItems[T any] struct {
	Items []T `json:"items"`
}

type persistedUI struct {
	Theme            string                `json:"theme"`
	SidebarCollapsed bool                  `json:"sidebarCollapsed"`
	GlobalSearch     string                `json:"globalSearch"`
	Notifications    []models.Notification `json:"notifications"`
}

// Persisted is the JSON blob written under the storage key.
type Persisted struct {
	Auth     AuthState                      `json:"auth"`
	Users    persistedItems[models.User]    `json:"users"`
	Projects persistedItems[models.Project] `json:"projects"`
	Tasks    persistedItems[models.Task]    `json:"tasks"`
	UI       persistedUI                    `json:"ui"`
}

// Persist extracts the persisted shape from st.
func Persist(st State) Persisted {
	return Persisted{
		Auth:     st.Auth,
		Users:    persistedItems[models.User]{Items: st.Users.Items},
		Projects: persistedItems[models.Project]{Items: st.Projects.Items},
		Tasks:    persistedItems[models.Task]{Items: st.Tasks.Items},
		UI: persistedUI{
			Theme:            st.UI.Theme,
			SidebarCollapsed: st.UI.SidebarCollapsed,
			GlobalSearch:     st.UI.GlobalSearch,
			Notifications:    st.UI.Notifications,
		},
	}
}

// PersistTo returns a subscriber writing a full snapshot after every
// commit. Write failures are logged and counted; the state change stands.
func PersistTo(adapter persistence.Adapter, timeout time.Duration) Subscriber {
	log := logger.Component("persist")
	return func(st State, a Action) {
		data, err := json.Marshal(Persist(st))
		if err != nil {
			metrics.PersistFailures.Inc()
			log.Error().Err(err).Str("action", a.String()).Msg("encode snapshot")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := adapter.Save(ctx, data); err != nil {
			metrics.PersistFailures.Inc()
			log.Error().Err(err).Str("action", a.String()).Msg("save snapshot")
		}
	}
}

// Restore loads the stored snapshot, hydrates ds with its collections and
// returns the state a session should start from. A missing or unreadable
// snapshot yields Initial() and leaves ds on its seed data.
func Restore(ctx context.Context, adapter persistence.Adapter, ds *datastore.Store) (State, error) {
	st := Initial()

	data, err := adapter.Load(ctx)
	if errors.Is(err, persistence.ErrNotFound) {
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("load snapshot: %w", err)
	}

	var p Persisted
	if err := json.Unmarshal(data, &p); err != nil {
		logger.Warn().Err(err).Msg("discarding unreadable snapshot")
		return st, nil
	}

	ds.Hydrate(datastore.Snapshot{
		Users:    p.Users.Items,
		Projects: p.Projects.Items,
		Tasks:    p.Tasks.Items,
	})

	// in-flight statuses do not survive a reload
	st.Auth.User = models.ClonePtr(p.Auth.User)
	st.Auth.OriginalUser = models.ClonePtr(p.Auth.OriginalUser)
	if len(p.Users.Items) > 0 {
		st.Users.Items = p.Users.Items
	}
	if len(p.Projects.Items) > 0 {
		st.Projects.Items = p.Projects.Items
	}
	if len(p.Tasks.Items) > 0 {
		st.Tasks.Items = p.Tasks.Items
	}
	if p.UI.Theme == "light" || p.UI.Theme == "dark" {
		st.UI.Theme = p.UI.Theme
	}
	st.UI.SidebarCollapsed = p.UI.SidebarCollapsed
	st.UI.GlobalSearch = p.UI.GlobalSearch
	if p.UI.Notifications != nil {
		st.UI.Notifications = p.UI.Notifications
	}
	return st, nil
}
