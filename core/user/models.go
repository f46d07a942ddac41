package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/duotask/duotask/core"
)

type User struct {
	ID           string    `json:"id"`
	Nombre       string    `json:"nombre"`
	Apellido     string    `json:"apellido"`
	Username     string    `json:"username"`
	Email        string    `json:"correoElectronico"`
	Telefono     string    `json:"numeroTelefono,omitempty"`
	IsActive     bool      `json:"isActive"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"` // UTC
	UpdatedAt    time.Time `json:"updatedAt"` // UTC
	LastLogin    time.Time `json:"lastLogin"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

// NewUser contains information needed to register a new User.
type NewUser struct {
	Nombre          string `json:"nombre" validate:"required"`
	Apellido        string `json:"apellido" validate:"required"`
	Username        string `json:"username" validate:"required,min=4,alphanum_"`
	Email           string `json:"correoElectronico" validate:"required,email"`
	Telefono        string `json:"numeroTelefono" validate:"omitempty,numeric"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

func (nu *NewUser) Validate(svc *Service) error {
	nu.Nombre = core.CleanString(nu.Nombre)
	nu.Apellido = core.CleanString(nu.Apellido)
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Telefono = core.CleanString(nu.Telefono)

	if err := core.Validate.Struct(nu); err != nil {
		return err
	}
	return svc.checkUniqueness(nu.Username, nu.Email)
}
