package cli

import (
	"bytes"
	"context"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/followup/internal/api"
	"github.com/alexanderramin/followup/internal/repository"
	"github.com/alexanderramin/followup/internal/session"
	"github.com/alexanderramin/followup/internal/testutil"
)

// testNow is the fixed clock used by every cli test.
var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// newTestApp wires an App to a fake backend and an in-memory session.
// A non-empty identity starts the session logged in.
func newTestApp(t *testing.T, identity string) (*App, *testutil.FakeBackend) {
	t.Helper()
	database := testutil.NewTestDB(t)
	sess := session.New(repository.NewSQLiteLocalStore(database), testutil.NewTestUoW(database))
	require.NoError(t, sess.Init(context.Background()))
	if identity != "" {
		require.NoError(t, sess.SetIdentity(context.Background(), identity))
	}

	fb := testutil.NewFakeBackend(t)
	app := &App{
		Session: sess,
		API:     api.NewClient(api.Config{BaseURL: fb.BaseURL()}, sess, nil),
		Now:     func() time.Time { return testNow },
	}
	return app, fb
}

// executeCmd runs the root command with args and returns what it printed.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// plain strips terminal styling from rendered output.
func plain(s string) string { return ansiSeq.ReplaceAllString(s, "") }

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

func idPath(base string, id int64) string {
	return base + "/" + idString(id)
}
