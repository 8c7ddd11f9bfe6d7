package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"undangan.link/models"
	"undangan.link/pkg/testdb"
	"undangan.link/repositories"
	"undangan.link/services"
	"undangan.link/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guardFixture struct {
	app   *fiber.App
	auth  *services.AuthService
	users repositories.IUserRepository
}

func newGuardFixture(t *testing.T) guardFixture {
	t.Helper()
	db := testdb.Open(t)
	users := repositories.NewUserRepositoryTx(db)
	auth := services.NewAuthServiceWith(users, "middleware-secret", time.Hour, nil)
	userService := services.NewUserServiceWithDB(db)

	app := fiber.New()
	app.Use(LoadSession(auth))
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/panel", AuthMiddleware, StatusMiddleware(userService), RequireUser(), ok)
	app.Get("/dashboard", AuthMiddleware, StatusMiddleware(userService), RequireAdmin(), ok)
	app.Get("/login", GuestMiddleware, ok)
	return guardFixture{app: app, auth: auth, users: users}
}

func (f guardFixture) signIn(t *testing.T, email string, role models.Role) string {
	t.Helper()
	ctx := t.Context()
	user, err := f.auth.SignUp(ctx, services.SignUpInput{FullName: "Tester", Email: email, Password: "rahasia123"})
	require.NoError(t, err)
	if role != models.RoleUser {
		require.NoError(t, f.users.UpdateFields(ctx, user.ID, map[string]interface{}{"role": role}))
	}
	result, err := f.auth.SignIn(ctx, email, "rahasia123")
	require.NoError(t, err)
	return result.Token
}

func (f guardFixture) get(t *testing.T, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: utils.AuthCookieName, Value: token})
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAnonymousRequestsAreRedirectedToLogin(t *testing.T) {
	f := newGuardFixture(t)

	resp := f.get(t, "/panel", "")
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get(fiber.HeaderLocation))

	resp = f.get(t, "/panel", "not-a-token")
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	assert.Equal(t, fiber.StatusOK, f.get(t, "/login", "").StatusCode)
}

func TestRoleGuards(t *testing.T) {
	f := newGuardFixture(t)
	userToken := f.signIn(t, "couple@example.com", models.RoleUser)
	adminToken := f.signIn(t, "admin@example.com", models.RoleSuperAdmin)

	assert.Equal(t, fiber.StatusOK, f.get(t, "/panel", userToken).StatusCode)
	resp := f.get(t, "/dashboard", userToken)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/panel/home", resp.Header.Get(fiber.HeaderLocation))

	assert.Equal(t, fiber.StatusOK, f.get(t, "/dashboard", adminToken).StatusCode)
	resp = f.get(t, "/panel", adminToken)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard/home", resp.Header.Get(fiber.HeaderLocation))

	resp = f.get(t, "/login", userToken)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
}

func TestDeactivatedAccountIsSignedOut(t *testing.T) {
	f := newGuardFixture(t)
	token := f.signIn(t, "couple@example.com", models.RoleUser)
	user, err := f.users.FindByEmail(t.Context(), "couple@example.com")
	require.NoError(t, err)
	require.NoError(t, f.users.UpdateFields(t.Context(), user.ID, map[string]interface{}{"is_active": false}))

	resp := f.get(t, "/panel", token)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get(fiber.HeaderLocation))
}
