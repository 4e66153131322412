package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerrise/careerctl/internal/admin"
	"github.com/careerrise/careerctl/internal/api"
	"github.com/careerrise/careerctl/internal/logging"
	"github.com/careerrise/careerctl/internal/models"
	"github.com/careerrise/careerctl/internal/session"
)

// stubInputs swaps the interactive input helpers for canned values.
func stubInputs(t *testing.T, text string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return text, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return append([]byte(nil), password...), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

// ---- fakes ----

type fakeCreds struct {
	mu    sync.Mutex
	token string
}

func (f *fakeCreds) LoadToken(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, nil
}

func (f *fakeCreds) SaveToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
	return nil
}

func (f *fakeCreds) DeleteToken(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	return nil
}

type fakeAPI struct {
	signInToken string
	signInErr   error
	signUpErr   error
	profile     *models.Profile
	meErr       error

	adminCheckErr error

	signInUser      string
	signInPass      string
	blockCalls      int
	listCalls       int
	adminCheckCalls int
}

func (f *fakeAPI) SignIn(_ context.Context, email string, password []byte) (string, error) {
	f.signInUser, f.signInPass = email, string(password)
	return f.signInToken, f.signInErr
}

func (f *fakeAPI) SignUp(context.Context, *api.SignupRequest) error { return f.signUpErr }

func (f *fakeAPI) Me(context.Context) (*models.Profile, error) { return f.profile, f.meErr }

func (f *fakeAPI) UpdateProfile(context.Context, *models.ProfileUpdate) (string, error) {
	return "", nil
}

func (f *fakeAPI) UploadResume(context.Context, string, io.Reader) (string, error) {
	return "", nil
}

func (f *fakeAPI) AdminCheck(context.Context) error {
	f.adminCheckCalls++
	return f.adminCheckErr
}

func (f *fakeAPI) ListUsers(context.Context) ([]models.UserRecord, error) {
	f.listCalls++
	return nil, nil
}

func (f *fakeAPI) BlockUser(context.Context, string) (string, error) {
	f.blockCalls++
	return "", nil
}

func (f *fakeAPI) UnblockUser(context.Context, string) (string, error) { return "", nil }
func (f *fakeAPI) RemoveUser(context.Context, string) (string, error)  { return "", nil }

func newTestApp(t *testing.T, client *fakeAPI) (*App, *fakeCreds) {
	t.Helper()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	creds := &fakeCreds{}
	sess := session.NewStore(client, creds, log)

	a := &App{
		log:    log,
		api:    client,
		sess:   sess,
		reader: bufio.NewReader(io.MultiReader()),
	}
	a.registry = admin.NewRegistry(client, log, func(string) bool { return true })
	return a, creds
}

// ---- tests ----

func TestSignIn_Success(t *testing.T) {
	client := &fakeAPI{
		signInToken: "tok-1",
		profile:     &models.Profile{Email: "a@x.com", Name: "Alice", Role: models.RoleApplicant},
	}
	a, creds := newTestApp(t, client)
	stubInputs(t, "a@x.com", []byte("secret123"))

	require.NoError(t, a.SignIn(context.Background()))

	assert.Equal(t, "a@x.com", client.signInUser)
	assert.Equal(t, "secret123", client.signInPass)
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "tok-1", creds.token)
}

func TestSignIn_BadCredentials(t *testing.T) {
	client := &fakeAPI{signInErr: &api.RequestError{Status: 400, Detail: "Invalid email or password"}}
	a, creds := newTestApp(t, client)
	stubInputs(t, "a@x.com", []byte("wrong"))

	require.Error(t, a.SignIn(context.Background()))

	assert.False(t, a.isLoggedIn())
	assert.Empty(t, creds.token)
}

func TestSignIn_ProfileFetchFailureFailsClosed(t *testing.T) {
	client := &fakeAPI{signInToken: "tok-1", meErr: api.ErrUnauthorized}
	a, creds := newTestApp(t, client)
	stubInputs(t, "a@x.com", []byte("secret123"))

	require.Error(t, a.SignIn(context.Background()))

	assert.False(t, a.isLoggedIn())
	assert.Empty(t, creds.token, "unverifiable token must not stay persisted")
}

func TestLogout_ClearsSession(t *testing.T) {
	client := &fakeAPI{}
	a, creds := newTestApp(t, client)
	a.sess.Login(context.Background(), &models.Profile{Email: "a@x.com", Role: models.RoleApplicant}, "tok-1")

	require.NoError(t, a.Logout(context.Background()))

	assert.False(t, a.isLoggedIn())
	assert.Empty(t, creds.token)
}

func TestModeration_GuardedWhenLoggedOut(t *testing.T) {
	client := &fakeAPI{}
	a, _ := newTestApp(t, client)

	require.NoError(t, a.BlockUser(context.Background(), "a@x.com"))
	assert.Zero(t, client.blockCalls, "logged-out caller never reaches the registry")
}

func TestModeration_GuardedForApplicants(t *testing.T) {
	client := &fakeAPI{}
	a, _ := newTestApp(t, client)
	a.sess.Login(context.Background(), &models.Profile{Email: "a@x.com", Role: models.RoleApplicant}, "tok-1")

	require.NoError(t, a.BlockUser(context.Background(), "b@x.com"))
	assert.Zero(t, client.blockCalls)
}

func TestModeration_AdminAllowed(t *testing.T) {
	client := &fakeAPI{}
	a, _ := newTestApp(t, client)
	a.sess.Login(context.Background(), &models.Profile{Email: "root@x.com", Role: models.RoleAdmin}, "tok-1")

	require.NoError(t, a.BlockUser(context.Background(), "b@x.com"))
	assert.Equal(t, 1, client.blockCalls)
}

func TestRenderAdmin_VerifiesWithServerBeforeListing(t *testing.T) {
	client := &fakeAPI{}
	a, _ := newTestApp(t, client)
	a.sess.Login(context.Background(), &models.Profile{Email: "root@x.com", Role: models.RoleAdmin}, "tok-1")

	a.renderAdmin(context.Background())

	assert.Equal(t, 1, client.adminCheckCalls)
	assert.Equal(t, 1, client.listCalls)
}

func TestRenderAdmin_ServerDeniedAdminAccess(t *testing.T) {
	client := &fakeAPI{adminCheckErr: &api.RequestError{Status: 403, Detail: "Not authorized"}}
	a, _ := newTestApp(t, client)
	a.sess.Login(context.Background(), &models.Profile{Email: "root@x.com", Role: models.RoleAdmin}, "tok-1")

	a.renderAdmin(context.Background())

	assert.Equal(t, 1, client.adminCheckCalls)
	assert.Zero(t, client.listCalls, "a server-side denial must stop the panel before the list is fetched")
}
