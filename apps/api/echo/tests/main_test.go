package tests

import (
	"os"
	"testing"

	testutil "github.com/duotask/duotask/tests"
)

func TestMain(m *testing.M) {
	testutil.InitValidation()
	os.Exit(m.Run())
}
