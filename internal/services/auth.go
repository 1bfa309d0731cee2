package services

import (
	"context"

	"github.com/huangang/teamboard/internal/datastore"
	"github.com/huangang/teamboard/internal/models"
)

// Login returns the user whose email matches (ignoring case) and whose
// password matches exactly.
func (f *Facade) Login(ctx context.Context, email, password string) (models.User, error) {
	return invoke(ctx, f, "login", func() (models.User, error) {
		var (
			found models.User
			ok    bool
		)
		f.store.View(func(data *datastore.Snapshot) {
			for _, u := range data.Users {
				if u.EmailMatches(email) && u.Password == password {
					found, ok = u, true
					return
				}
			}
		})
		if !ok {
			return models.User{}, &Error{Kind: KindInvalidCredentials, Message: msgInvalidCredentials}
		}
		return found, nil
	})
}

// Impersonate looks up the user an admin wants to browse as.
func (f *Facade) Impersonate(ctx context.Context, userID string) (models.User, error) {
	return invoke(ctx, f, "impersonate", func() (models.User, error) {
		u, ok := f.findUser(userID)
		if !ok {
			return models.User{}, notFound(msgUserNotFound)
		}
		return u, nil
	})
}

func (f *Facade) findUser(id string) (models.User, bool) {
	var (
		found models.User
		ok    bool
	)
	f.store.View(func(data *datastore.Snapshot) {
		for _, u := range data.Users {
			if u.ID == id {
				found, ok = u, true
				return
			}
		}
	})
	return found, ok
}
