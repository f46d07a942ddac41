package user_test

import (
	"errors"
	"net/mail"
	"strings"
	"testing"

	"github.com/duotask/duotask/core"
	"github.com/duotask/duotask/core/user"
	emailsvc "github.com/duotask/duotask/services/email"
	kvdb "github.com/duotask/duotask/storage/database/kv"
	testutil "github.com/duotask/duotask/tests"
)

func TestMain(m *testing.M) {
	testutil.InitValidation()
	m.Run()
}

func setup(t *testing.T) *user.Service {
	t.Helper()
	conf := &core.Config{
		AppName:          "DuoTask",
		FrontendBaseURL:  "http://localhost:3000",
		DefaultFromEmail: mail.Address{Name: "DuoTask", Address: "noreply@localhost"},
	}
	db := testutil.NewTestDB(t)
	return user.NewService(conf, kvdb.NewUserRepository(db), emailsvc.NewConsoleServiceMock(conf))
}

func newUser(uname, email string) user.NewUser {
	return user.NewUser{
		Nombre:          "Ana",
		Apellido:        "García",
		Username:        uname,
		Email:           email,
		Password:        "Sup3rSecret",
		PasswordConfirm: "Sup3rSecret",
	}
}

func Test_Service_Register(t *testing.T) {
	svc := setup(t)
	sentBefore := len(emailsvc.SentMessages)

	nu := newUser("anagarcia", "ana@test.cd")
	if err := nu.Validate(svc); err != nil {
		t.Fatalf("Validate() failed, %v", err)
	}
	usr, err := svc.Register(nu)
	if err != nil {
		t.Fatalf("Register() failed, %v", err)
	}
	if usr.ID == "" || !usr.IsActive {
		t.Errorf("Register() = %+v; want an active user with an id", usr)
	}
	if err := usr.CheckPassword("Sup3rSecret"); err != nil {
		t.Errorf("CheckPassword() failed, %v", err)
	}
	if err := usr.CheckPassword("wrong"); err == nil {
		t.Error("CheckPassword() accepted a wrong password")
	}

	// welcome email
	if len(emailsvc.SentMessages) != sentBefore+1 {
		t.Fatalf("sent %d emails; want 1", len(emailsvc.SentMessages)-sentBefore)
	}
	msg := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
	if len(msg.To) != 1 || msg.To[0].Address != "ana@test.cd" {
		t.Errorf("welcome email To = %v; want ana@test.cd", msg.To)
	}
	if !strings.Contains(msg.TextContent, "anagarcia") {
		t.Errorf("welcome email body %q does not mention the username", msg.TextContent)
	}
}

func Test_Service_Register_uniqueness(t *testing.T) {
	svc := setup(t)

	nu := newUser("anagarcia", "ana@test.cd")
	if err := nu.Validate(svc); err != nil {
		t.Fatalf("Validate() failed, %v", err)
	}
	if _, err := svc.Register(nu); err != nil {
		t.Fatalf("Register() failed, %v", err)
	}

	tests := []struct {
		name      string
		nu        user.NewUser
		wantField string
	}{
		{name: "username taken", nu: newUser("anagarcia", "other@test.cd"), wantField: "username"},
		{name: "email taken", nu: newUser("otheruser", "ana@test.cd"), wantField: "correoElectronico"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.nu.Validate(svc)
			var vErr *core.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Validate() = %v; want ValidationError", err)
			}
			if len(vErr.Fields) != 1 || vErr.Fields[0].Field != tt.wantField {
				t.Errorf("ValidationError.Fields = %+v; want one error on %s", vErr.Fields, tt.wantField)
			}
		})
	}
}

func Test_NewUser_Validate(t *testing.T) {
	svc := setup(t)

	tests := []struct {
		name string
		mod  func(*user.NewUser)
	}{
		{name: "short username", mod: func(nu *user.NewUser) { nu.Username = "ana" }},
		{name: "bad email", mod: func(nu *user.NewUser) { nu.Email = "not-an-email" }},
		{name: "password mismatch", mod: func(nu *user.NewUser) { nu.PasswordConfirm = "different" }},
		{name: "short password", mod: func(nu *user.NewUser) { nu.Password = "short"; nu.PasswordConfirm = "short" }},
		{name: "bad phone", mod: func(nu *user.NewUser) { nu.Telefono = "not-a-number" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nu := newUser("anagarcia", "ana@test.cd")
			tt.mod(&nu)
			if err := nu.Validate(svc); err == nil {
				t.Error("Validate() succeeded; want error")
			}
		})
	}
}

func Test_Service_GetByUsernameOrEmail(t *testing.T) {
	svc := setup(t)

	nu := newUser("anagarcia", "ana@test.cd")
	if err := nu.Validate(svc); err != nil {
		t.Fatalf("Validate() failed, %v", err)
	}
	usr, err := svc.Register(nu)
	if err != nil {
		t.Fatalf("Register() failed, %v", err)
	}

	for _, key := range []string{"anagarcia", "ana@test.cd", "Anagarcia "} {
		got, err := svc.GetByUsernameOrEmail(key)
		if err != nil {
			t.Fatalf("GetByUsernameOrEmail(%q) failed, %v", key, err)
		}
		if got.ID != usr.ID {
			t.Errorf("GetByUsernameOrEmail(%q) = %q; want %q", key, got.ID, usr.ID)
		}
	}

	if _, err := svc.GetByUsernameOrEmail("nope"); !errors.Is(err, user.ErrNotFound) {
		t.Errorf("GetByUsernameOrEmail(nope) = %v; want ErrNotFound", err)
	}
}

func Test_Service_SetLastLoginAndPassword(t *testing.T) {
	svc := setup(t)

	nu := newUser("anagarcia", "ana@test.cd")
	if err := nu.Validate(svc); err != nil {
		t.Fatalf("Validate() failed, %v", err)
	}
	usr, err := svc.Register(nu)
	if err != nil {
		t.Fatalf("Register() failed, %v", err)
	}

	usr, err = svc.SetLastLogin(usr)
	if err != nil {
		t.Fatalf("SetLastLogin() failed, %v", err)
	}
	if usr.LastLogin.IsZero() {
		t.Error("SetLastLogin() did not stamp LastLogin")
	}

	usr, err = svc.SetPassword(usr, "N3wPassword")
	if err != nil {
		t.Fatalf("SetPassword() failed, %v", err)
	}
	got, err := svc.GetByUsername("anagarcia")
	if err != nil {
		t.Fatalf("GetByUsername() failed, %v", err)
	}
	if err := got.CheckPassword("N3wPassword"); err != nil {
		t.Errorf("CheckPassword() failed after reset, %v", err)
	}
}
