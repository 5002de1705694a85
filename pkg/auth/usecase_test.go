package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/artem13815/trello/pkg/security/jwt"
	"github.com/artem13815/trello/pkg/security/password"
)

// memRepo is an in-memory UserRepository with a unique email index.
type memRepo struct {
	mu      sync.Mutex
	nextID  int64
	byID    map[int64]User
	byEmail map[string]int64
	failErr error
}

func newMemRepo() *memRepo {
	return &memRepo{byID: map[int64]User{}, byEmail: map[string]int64{}}
}

func (r *memRepo) Create(_ context.Context, u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return User{}, r.failErr
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return User{}, ErrUserAlreadyExists
	}
	r.nextID++
	u.ID = r.nextID
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return u, nil
}

func (r *memRepo) GetByEmail(_ context.Context, email string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return User{}, r.failErr
	}
	id, ok := r.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return r.byID[id], nil
}

func (r *memRepo) GetByID(_ context.Context, id int64) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *memRepo) delete(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byEmail, r.byID[id].Email)
	delete(r.byID, id)
}

func (r *memRepo) countEmail(email string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.byID {
		if u.Email == email {
			n++
		}
	}
	return n
}

type fixture struct {
	repo   *memRepo
	tokens *jwt.Service
	uc     AuthUseCase
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	repo := newMemRepo()
	hasher, err := password.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)
	tokens, err := jwt.NewService("test-secret", "trello")
	require.NoError(t, err)
	return fixture{repo: repo, tokens: tokens, uc: NewAuthService(repo, hasher, tokens)}
}

func TestRegisterLoginAuthorize(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.uc.Register(ctx, "a@x.com", "pw", "A")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "A", u.Name)
	assert.Equal(t, "a@x.com", u.Email)
	assert.False(t, u.IsAdmin)

	stored, err := f.repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", stored.PasswordHash)

	res, err := f.uc.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", res.Email)
	assert.False(t, res.IsAdmin)
	require.NotEmpty(t, res.Token)

	subject, err := f.tokens.Validate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, subject)

	isAdmin, err := f.uc.Authorize(ctx, res.Token)
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.uc.Register(ctx, "  Mixed@Case.COM ", "pw", "")
	require.NoError(t, err)
	assert.Equal(t, "mixed@case.com", u.Email)

	_, err = f.uc.Login(ctx, "MIXED@case.com", "pw")
	require.NoError(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Register(ctx, "a@x.com", "pw", "A")
	require.NoError(t, err)

	_, err = f.uc.Register(ctx, "a@x.com", "other", "B")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	assert.Equal(t, 1, f.repo.countEmail("a@x.com"))
}

func TestRegisterRejectsEmptyInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Register(ctx, "", "pw", "A")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.uc.Register(ctx, "a@x.com", "", "A")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterStoreFailureIsNotConflict(t *testing.T) {
	f := newFixture(t)
	f.repo.failErr = errors.New("connection refused")

	_, err := f.uc.Register(context.Background(), "a@x.com", "pw", "A")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Register(ctx, "a@x.com", "pw", "A")
	require.NoError(t, err)

	_, wrongPassword := f.uc.Login(ctx, "a@x.com", "nope")
	_, unknownEmail := f.uc.Login(ctx, "b@x.com", "pw")

	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLoginStoreFailure(t *testing.T) {
	f := newFixture(t)
	f.repo.failErr = errors.New("connection refused")

	_, err := f.uc.Login(context.Background(), "a@x.com", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthorizeRejectsBadTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Authorize(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = f.uc.Authorize(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)

	expired, err := f.tokens.WithClock(func() time.Time {
		return time.Now().Add(-48 * time.Hour)
	}).Issue(1, TokenTTL)
	require.NoError(t, err)
	_, err = f.uc.Authorize(ctx, expired)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthorizeDeletedUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.uc.Register(ctx, "a@x.com", "pw", "A")
	require.NoError(t, err)
	res, err := f.uc.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)

	f.repo.delete(u.ID)

	_, err = f.uc.Authorize(ctx, res.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRequireAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Register(ctx, "user@x.com", "pw", "U")
	require.NoError(t, err)
	admin, err := f.uc.EnsureAdmin(ctx, "root@x.com", "pw", "Root")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	userLogin, err := f.uc.Login(ctx, "user@x.com", "pw")
	require.NoError(t, err)
	adminLogin, err := f.uc.Login(ctx, "root@x.com", "pw")
	require.NoError(t, err)
	assert.True(t, adminLogin.IsAdmin)

	assert.ErrorIs(t, f.uc.RequireAdmin(ctx, userLogin.Token), ErrForbidden)
	assert.NoError(t, f.uc.RequireAdmin(ctx, adminLogin.Token))
	assert.ErrorIs(t, f.uc.RequireAdmin(ctx, "garbage"), ErrUnauthorized)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.uc.EnsureAdmin(ctx, "root@x.com", "pw", "Root")
	require.NoError(t, err)
	second, err := f.uc.EnsureAdmin(ctx, "ROOT@x.com", "other", "Root")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, f.repo.countEmail("root@x.com"))
}

func TestPublicOmitsHash(t *testing.T) {
	u := User{ID: 1, Name: "A", Email: "a@x.com", PasswordHash: "secret", IsAdmin: true}
	assert.Equal(t, PublicUser{ID: 1, Name: "A", Email: "a@x.com", IsAdmin: true}, u.Public())
}
