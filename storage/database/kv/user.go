package kvdb

import (
	"time"

	"github.com/duotask/duotask/core"
	"github.com/duotask/duotask/core/user"
	"github.com/duotask/duotask/storage/kvstore"
)

type userRepository struct {
	db kvstore.Store
}

func NewUserRepository(db kvstore.Store) user.Repository {
	return &userRepository{db: db}
}

// dbUser is the stored shape of a user. user.User never serializes its
// password hash, so the repository keeps its own record type.
type dbUser struct {
	ID           string    `json:"id"`
	Nombre       string    `json:"nombre"`
	Apellido     string    `json:"apellido"`
	Username     string    `json:"username"`
	Email        string    `json:"correoElectronico"`
	Telefono     string    `json:"numeroTelefono,omitempty"`
	IsActive     bool      `json:"isActive"`
	PasswordHash []byte    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	LastLogin    time.Time `json:"lastLogin"`
}

func toDB(usr user.User) dbUser {
	return dbUser{
		ID:           usr.ID,
		Nombre:       usr.Nombre,
		Apellido:     usr.Apellido,
		Username:     usr.Username,
		Email:        usr.Email,
		Telefono:     usr.Telefono,
		IsActive:     usr.IsActive,
		PasswordHash: usr.PasswordHash,
		CreatedAt:    usr.CreatedAt,
		UpdatedAt:    usr.UpdatedAt,
		LastLogin:    usr.LastLogin,
	}
}

func fromDB(rec dbUser) user.User {
	return user.User{
		ID:           rec.ID,
		Nombre:       rec.Nombre,
		Apellido:     rec.Apellido,
		Username:     rec.Username,
		Email:        rec.Email,
		Telefono:     rec.Telefono,
		IsActive:     rec.IsActive,
		PasswordHash: rec.PasswordHash,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
		LastLogin:    rec.LastLogin,
	}
}

func (repo *userRepository) CheckUsernameUniqueness(username, email string, excludedUsers ...user.User) error {
	return repo.db.View(func(tx kvstore.Tx) error {
		var users []dbUser
		if err := tx.Load(usersKey, &users); err != nil {
			return err
		}
		for _, rec := range users {
			if isExcluded(rec.ID, excludedUsers) {
				continue
			}
			if rec.Username == username {
				return user.ErrUsernameExists
			}
			if rec.Email == email {
				return user.ErrEmailExists
			}
		}
		return nil
	})
}

func isExcluded(id string, excludedUsers []user.User) bool {
	for _, usr := range excludedUsers {
		if usr.ID == id {
			return true
		}
	}
	return false
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	usr.ID = core.NewID()
	err := repo.db.Update(func(tx kvstore.Tx) error {
		var users []dbUser
		if err := tx.Load(usersKey, &users); err != nil {
			return err
		}
		return tx.Save(usersKey, append(users, toDB(usr)))
	})
	if err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	var all []user.User
	err := repo.db.View(func(tx kvstore.Tx) error {
		var users []dbUser
		if err := tx.Load(usersKey, &users); err != nil {
			return err
		}
		all = make([]user.User, 0, len(users))
		for _, rec := range users {
			all = append(all, fromDB(rec))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

func (repo *userRepository) getUser(match func(dbUser) bool) (user.User, error) {
	var found user.User
	err := repo.db.View(func(tx kvstore.Tx) error {
		var users []dbUser
		if err := tx.Load(usersKey, &users); err != nil {
			return err
		}
		for _, rec := range users {
			if match(rec) {
				found = fromDB(rec)
				return nil
			}
		}
		return user.ErrNotFound
	})
	if err != nil {
		return user.User{}, err
	}
	return found, nil
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	return repo.getUser(func(rec dbUser) bool { return rec.ID == id })
}

func (repo *userRepository) GetUserByUsername(username string) (user.User, error) {
	return repo.getUser(func(rec dbUser) bool { return rec.Username == username })
}

func (repo *userRepository) GetUserByUsernameOrEmail(username string) (user.User, error) {
	return repo.getUser(func(rec dbUser) bool { return rec.Username == username || rec.Email == username })
}

func (repo *userRepository) UpdateUser(usr user.User, isActive *bool) (user.User, error) {
	var updated user.User
	err := repo.db.Update(func(tx kvstore.Tx) error {
		var users []dbUser
		if err := tx.Load(usersKey, &users); err != nil {
			return err
		}
		for i, rec := range users {
			if rec.ID != usr.ID {
				continue
			}
			if usr.Nombre != "" {
				rec.Nombre = usr.Nombre
			}
			if usr.Apellido != "" {
				rec.Apellido = usr.Apellido
			}
			if usr.Username != "" {
				rec.Username = usr.Username
			}
			if usr.Email != "" {
				rec.Email = usr.Email
			}
			if usr.Telefono != "" {
				rec.Telefono = usr.Telefono
			}
			if usr.PasswordHash != nil {
				rec.PasswordHash = usr.PasswordHash
			}
			if isActive != nil {
				rec.IsActive = *isActive
			}
			if !usr.LastLogin.IsZero() {
				rec.LastLogin = usr.LastLogin
			}
			rec.UpdatedAt = usr.UpdatedAt
			users[i] = rec
			updated = fromDB(rec)
			return tx.Save(usersKey, users)
		}
		return user.ErrNotFound
	})
	if err != nil {
		return user.User{}, err
	}
	return updated, nil
}

func (repo *userRepository) DeleteUsersByID(ids ...string) error {
	return repo.db.Update(func(tx kvstore.Tx) error {
		var users []dbUser
		if err := tx.Load(usersKey, &users); err != nil {
			return err
		}
		kept := users[:0]
		for _, rec := range users {
			if !containsID(ids, rec.ID) {
				kept = append(kept, rec)
			}
		}
		if len(kept) == len(users) {
			return user.ErrNotFound
		}
		return tx.Save(usersKey, kept)
	})
}
