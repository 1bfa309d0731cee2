package services

import (
	"context"

	"github.com/huangang/teamboard/internal/datastore"
	"github.com/huangang/teamboard/internal/models"
)

func (f *Facade) FetchUsers(ctx context.Context) ([]models.User, error) {
	return invoke(ctx, f, "fetch_users", func() ([]models.User, error) {
		return f.store.Users(), nil
	})
}

// UpdateRole changes a user's role and returns the updated user.
func (f *Facade) UpdateRole(ctx context.Context, userID string, role models.Role) (models.User, error) {
	return invoke(ctx, f, "update_role", func() (models.User, error) {
		if !role.Valid() {
			return models.User{}, failed("Invalid role: " + string(role))
		}
		var updated models.User
		err := f.store.Update(func(tx *datastore.Snapshot) error {
			for i := range tx.Users {
				if tx.Users[i].ID == userID {
					tx.Users[i].Role = role
					updated = tx.Users[i]
					return nil
				}
			}
			return notFound(msgUserNotFound)
		})
		return updated, err
	})
}
