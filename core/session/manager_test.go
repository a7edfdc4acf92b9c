package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shiftkerja/shiftclient/core/session"
)

type mockAuthenticator struct {
	mock.Mock
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, creds session.Credentials) (session.Session, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(session.Session), args.Error(1)
}

type mockNavigator struct {
	mock.Mock
}

func (m *mockNavigator) Redirect(ctx context.Context, path string) {
	m.Called(ctx, path)
}

type failingStorage struct {
	session.MemoryStorage
	loadErr, saveErr, clearErr error
}

func (f *failingStorage) Load(ctx context.Context) (session.Session, error) {
	if f.loadErr != nil {
		return session.Session{}, f.loadErr
	}
	return f.MemoryStorage.Load(ctx)
}

func (f *failingStorage) Save(ctx context.Context, s session.Session) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.MemoryStorage.Save(ctx, s)
}

func (f *failingStorage) Clear(ctx context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	return f.MemoryStorage.Clear(ctx)
}

var (
	creds  = session.Credentials{Email: "u@x.com", Password: "pw"}
	worker = session.Session{Token: "abc123", Role: session.RoleWorker}
)

func TestManager_Hydrate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("reflects durable copy", func(t *testing.T) {
		t.Parallel()

		st := session.NewMemoryStorage(map[string]string{"token": "abc123", "role": "worker"})
		mgr := session.NewManager(st, &mockAuthenticator{})
		assert.Equal(t, session.Session{}, mgr.Current())

		require.NoError(t, mgr.Hydrate(ctx))
		assert.Equal(t, worker, mgr.Current())
	})

	t.Run("read failure leaves session empty", func(t *testing.T) {
		t.Parallel()

		st := &failingStorage{loadErr: errors.New("disk gone")}
		mgr := session.NewManager(st, &mockAuthenticator{})

		err := mgr.Hydrate(ctx)
		require.Error(t, err)
		assert.Equal(t, session.Session{}, mgr.Current())
	})
}

func TestManager_Login(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success persists and updates memory", func(t *testing.T) {
		t.Parallel()

		auth := &mockAuthenticator{}
		auth.On("Authenticate", ctx, creds).Return(worker, nil)
		st := session.NewMemoryStorage(nil)
		mgr := session.NewManager(st, auth)

		require.True(t, mgr.Login(ctx, creds))

		assert.Equal(t, worker, mgr.Current())
		assert.Equal(t, map[string]string{"token": "abc123", "role": "worker"}, st.Entries())
		auth.AssertExpectations(t)
	})

	t.Run("endpoint failure changes nothing", func(t *testing.T) {
		t.Parallel()

		prior := session.Session{Token: "old", Role: session.RoleBusiness}
		auth := &mockAuthenticator{}
		auth.On("Authenticate", ctx, creds).Return(session.Session{}, errors.New("401 unauthorized"))
		st := session.NewMemoryStorage(map[string]string{"token": "old", "role": "business"})
		mgr := session.NewManager(st, auth)
		require.NoError(t, mgr.Hydrate(ctx))

		assert.False(t, mgr.Login(ctx, creds))
		assert.False(t, mgr.Login(ctx, creds))

		assert.Equal(t, prior, mgr.Current())
		assert.Equal(t, map[string]string{"token": "old", "role": "business"}, st.Entries())
	})

	t.Run("incomplete response is a failure", func(t *testing.T) {
		t.Parallel()

		auth := &mockAuthenticator{}
		auth.On("Authenticate", ctx, creds).Return(session.Session{Token: "abc123"}, nil)
		st := session.NewMemoryStorage(nil)
		mgr := session.NewManager(st, auth)

		assert.False(t, mgr.Login(ctx, creds))
		assert.Equal(t, session.Session{}, mgr.Current())
		assert.Empty(t, st.Entries())
	})

	t.Run("storage failure is a failure", func(t *testing.T) {
		t.Parallel()

		auth := &mockAuthenticator{}
		auth.On("Authenticate", ctx, creds).Return(worker, nil)
		st := &failingStorage{saveErr: errors.New("read-only")}
		mgr := session.NewManager(st, auth)

		assert.False(t, mgr.Login(ctx, creds))
		assert.Equal(t, session.Session{}, mgr.Current())
	})
}

func TestManager_Logout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("clears memory and storage then redirects", func(t *testing.T) {
		t.Parallel()

		nav := &mockNavigator{}
		nav.On("Redirect", ctx, "/login").Return().Twice()
		st := session.NewMemoryStorage(map[string]string{"token": "abc123", "role": "worker"})
		mgr := session.NewManager(st, &mockAuthenticator{}, session.WithNavigator(nav))
		require.NoError(t, mgr.Hydrate(ctx))

		mgr.Logout(ctx)
		assert.Equal(t, session.Session{}, mgr.Current())
		assert.Empty(t, st.Entries())

		mgr.Logout(ctx)
		assert.Equal(t, session.Session{}, mgr.Current())
		assert.Empty(t, st.Entries())

		nav.AssertExpectations(t)
	})

	t.Run("clears memory even when storage fails", func(t *testing.T) {
		t.Parallel()

		auth := &mockAuthenticator{}
		auth.On("Authenticate", ctx, creds).Return(worker, nil)
		st := &failingStorage{clearErr: errors.New("locked")}
		mgr := session.NewManager(st, auth)
		require.True(t, mgr.Login(ctx, creds))

		mgr.Logout(ctx)
		assert.Equal(t, session.Session{}, mgr.Current())
	})

	t.Run("custom login route and late navigator", func(t *testing.T) {
		t.Parallel()

		var got string
		mgr := session.NewFromConfig(
			session.Config{LoginRoute: "/signin"},
			session.NewMemoryStorage(nil),
			&mockAuthenticator{},
		)
		mgr.SetNavigator(session.NavigatorFunc(func(_ context.Context, path string) { got = path }))

		mgr.Logout(ctx)
		assert.Equal(t, "/signin", got)
		assert.Equal(t, "/signin", mgr.LoginRoute())
	})
}

func TestManager_Subscribe(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	auth := &mockAuthenticator{}
	auth.On("Authenticate", mock.Anything, creds).Return(worker, nil)
	mgr := session.NewManager(session.NewMemoryStorage(nil), auth)
	defer mgr.Close()

	changes := mgr.Subscribe(ctx)

	require.True(t, mgr.Login(ctx, creds))
	mgr.Logout(ctx)

	next := func() session.Session {
		select {
		case s := <-changes:
			return s
		case <-time.After(time.Second):
			t.Fatal("no session change delivered")
			return session.Session{}
		}
	}
	assert.Equal(t, worker, next())
	assert.Equal(t, session.Session{}, next())

	require.NoError(t, mgr.Close())
	require.Eventually(t, func() bool {
		_, ok := <-changes
		return !ok
	}, time.Second, 5*time.Millisecond)
}
