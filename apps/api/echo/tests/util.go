package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/duotask/duotask/apps/api/echo"
	"github.com/duotask/duotask/core"
	"github.com/duotask/duotask/core/attendance"
	"github.com/duotask/duotask/core/event"
	"github.com/duotask/duotask/core/group"
	"github.com/duotask/duotask/core/student"
	"github.com/duotask/duotask/core/task"
	"github.com/duotask/duotask/core/user"
	emailsvc "github.com/duotask/duotask/services/email"
	kvdb "github.com/duotask/duotask/storage/database/kv"
	testutil "github.com/duotask/duotask/tests"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type repos struct {
	grp group.Repository
	std student.Repository
	tsk task.Repository
	att attendance.Repository
	evt event.Repository
	usr user.Repository
}

// nopLogger discards everything; API tests assert on responses, not logs.
type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func testConfig() *core.Config {
	conf := &core.Config{
		AppName:          "DuoTask",
		Env:              "TEST",
		Debug:            true,
		TestMode:         true,
		SecretKey:        []byte("s3cret-t3st-k3y"),
		FrontendBaseURL:  "http://localhost:3000",
		DefaultFromEmail: mail.Address{Name: "DuoTask", Address: "noreply@localhost"},
	}
	conf.Server.JWTExpirationDelta = 4 * time.Hour
	conf.Server.JWTRefreshExpirationDelta = 7 * 24 * time.Hour
	return conf
}

func setup(t *testing.T) (*Server, repos) {
	t.Helper()

	conf := testConfig()
	db := testutil.NewTestDB(t)
	rps := repos{
		grp: kvdb.NewGroupRepository(db),
		std: kvdb.NewStudentRepository(db),
		tsk: kvdb.NewTaskRepository(db),
		att: kvdb.NewAttendanceRepository(db),
		evt: kvdb.NewEventRepository(db),
		usr: kvdb.NewUserRepository(db),
	}

	mailSvc := emailsvc.NewConsoleServiceMock(conf)

	app := NewServer(ServerDeps{
		Conf:           conf,
		Logger:         nopLogger{},
		GroupSvc:       group.NewService(rps.grp),
		StudentSvc:     student.NewService(rps.std, rps.grp),
		TaskSvc:        task.NewService(rps.tsk),
		AttendanceSvc:  attendance.NewService(rps.att),
		EventSvc:       event.NewService(rps.evt),
		UserSvc:        user.NewService(conf, rps.usr, mailSvc),
		DisableReqLogs: true,
	})
	return app, rps
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
