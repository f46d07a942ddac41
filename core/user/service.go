package user

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/duotask/duotask/core"
)

var (
	// errors
	ErrNotFound       = errors.New("usuario no encontrado")
	ErrEmailExists    = errors.New("el correo ya está registrado")
	ErrUsernameExists = errors.New("el usuario ya está registrado")
)

type (
	Repository interface {
		CheckUsernameUniqueness(username, email string, excludedUsers ...User) error
		CreateUser(usr User) (User, error)
		QueryAllUsers() ([]User, error)
		GetUserByID(id string) (User, error)
		GetUserByUsername(username string) (User, error)
		GetUserByUsernameOrEmail(username string) (User, error)
		UpdateUser(usr User, isActive *bool) (User, error)
		DeleteUsersByID(ids ...string) error
	}

	Service struct {
		conf    *core.Config
		repo    Repository
		mailSvc core.EmailService
	}
)

func NewService(conf *core.Config, repo Repository, mailSvc core.EmailService) *Service {
	return &Service{conf: conf, repo: repo, mailSvc: mailSvc}
}

func (svc *Service) checkUniqueness(uname, email string, exclUsers ...User) error {
	if err := svc.repo.CheckUsernameUniqueness(uname, email, exclUsers...); err != nil {
		var field string
		switch err {
		case ErrUsernameExists:
			field = "username"
		case ErrEmailExists:
			field = "correoElectronico"
		default:
			return err
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return nil
}

// Register creates the account and sends the welcome email.
func (svc *Service) Register(nu NewUser) (User, error) {
	now := time.Now().UTC()
	usr := User{
		Nombre:    nu.Nombre,
		Apellido:  nu.Apellido,
		Username:  nu.Username,
		Email:     nu.Email,
		Telefono:  nu.Telefono,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}
	usr, err := svc.repo.CreateUser(usr)
	if err != nil {
		return User{}, err
	}
	svc.sendWelcomeEmail(usr)
	return usr, nil
}

func (svc *Service) QueryAll() ([]User, error) {
	return svc.repo.QueryAllUsers()
}

func (svc *Service) GetByID(id string) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *Service) GetByUsername(uname string) (User, error) {
	return svc.repo.GetUserByUsername(core.CleanString(uname, true /* lower */))
}

func (svc *Service) GetByUsernameOrEmail(uname string) (User, error) {
	return svc.repo.GetUserByUsernameOrEmail(core.CleanString(uname, true /* lower */))
}

// SetLastLogin stamps a successful authentication.
func (svc *Service) SetLastLogin(usr User) (User, error) {
	usr.LastLogin = time.Now().UTC()
	usr.UpdatedAt = usr.LastLogin
	return svc.repo.UpdateUser(usr, nil)
}

// SetPassword replaces the user's password. Used by the admin CLI.
func (svc *Service) SetPassword(usr User, pwd string) (User, error) {
	if err := usr.SetPassword(pwd); err != nil {
		return User{}, err
	}
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(usr, nil)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteUsersByID(ids...)
}

func (svc *Service) sendWelcomeEmail(usr User) {
	msg := &core.EmailMessage{
		To:      []mail.Address{{Name: usr.Nombre + " " + usr.Apellido, Address: usr.Email}},
		Subject: fmt.Sprintf("Bienvenido a %s", svc.conf.AppName),
		BodyStr: fmt.Sprintf(
			"Hola %s,\n\nTu cuenta %q ha sido creada. Ya puedes iniciar sesión en %s.\n",
			usr.Nombre, usr.Username, svc.conf.FrontendBaseURL,
		),
	}
	svc.mailSvc.SendMessages(msg)
}
