package http_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	accounthttp "memberhub/internal/accounts/adapter/http"
	"memberhub/internal/accounts/domain/model"
	"memberhub/internal/accounts/usecase"
	"memberhub/internal/shared/logger"
	"memberhub/views"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testCookieName = "memberhub_sid"

type AccountHTTPTestSuite struct {
	suite.Suite
	app         *fiber.App
	mockUsecase *mockAccountUsecase
}

func (suite *AccountHTTPTestSuite) SetupTest() {
	suite.mockUsecase = &mockAccountUsecase{}

	log := logger.NewLogger()
	handler := accounthttp.NewAccountHTTPHandler(
		suite.mockUsecase, log,
		testCookieName, "/", "", 3600, false, true, "Lax")
	middleware := accounthttp.NewAuthMiddleware(suite.mockUsecase, testCookieName, log)

	suite.app = fiber.New(fiber.Config{
		Views: views.Engine(),
	})
	handler.SetupRoutesWithMiddleware(suite.app, middleware)
}

func (suite *AccountHTTPTestSuite) formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func (suite *AccountHTTPTestSuite) withSession(req *http.Request, session *model.Session) *http.Request {
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "cookie-token"})
	suite.mockUsecase.On("CurrentSession", mock.Anything, "cookie-token").Return(session, nil)
	return req
}

func (suite *AccountHTTPTestSuite) body(resp *http.Response) string {
	data, err := io.ReadAll(resp.Body)
	require.NoError(suite.T(), err)
	return string(data)
}

func memberSession() *model.Session {
	return &model.Session{
		ID: "session-1",
		Data: model.SessionData{
			Name:  "Alice",
			Email: "alice@example.com",
		},
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func adminSession() *model.Session {
	s := memberSession()
	s.Data.Admin = true
	return s
}

func (suite *AccountHTTPTestSuite) TestHome_Anonymous() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), fiber.StatusOK, resp.StatusCode)

	body := suite.body(resp)
	assert.Contains(suite.T(), body, "Sign up")
	assert.Contains(suite.T(), body, "Log in")
}

func (suite *AccountHTTPTestSuite) TestHome_Authenticated() {
	req := suite.withSession(httptest.NewRequest(http.MethodGet, "/", nil), memberSession())

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), fiber.StatusOK, resp.StatusCode)
	assert.Contains(suite.T(), suite.body(resp), "Log out")
}

func (suite *AccountHTTPTestSuite) TestSignupForm_Renders() {
	req := httptest.NewRequest(http.MethodGet, "/signup", nil)

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), fiber.StatusOK, resp.StatusCode)
	assert.Contains(suite.T(), suite.body(resp), `action="/signupSubmit"`)
}

func (suite *AccountHTTPTestSuite) TestSignupSubmit_Success() {
	session := memberSession()
	suite.mockUsecase.On("SignUp", mock.Anything, usecase.SignupForm{
		Name: "Alice", Email: "alice@example.com", Password: "secret",
	}).Return(session, "signed-token", nil)

	req := suite.formRequest("/signupSubmit", url.Values{
		"name":     {"Alice"},
		"email":    {"alice@example.com"},
		"password": {"secret"},
	})

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(suite.T(), "/members", resp.Header.Get("Location"))

	cookies := resp.Cookies()
	require.Len(suite.T(), cookies, 1)
	assert.Equal(suite.T(), testCookieName, cookies[0].Name)
	assert.Equal(suite.T(), "signed-token", cookies[0].Value)
	assert.True(suite.T(), cookies[0].HttpOnly)
}

func (suite *AccountHTTPTestSuite) TestSignupSubmit_ValidationFailureRerenders() {
	req := suite.formRequest("/signupSubmit", url.Values{
		"name":     {"Alice Smith"}, // spaces are not allowed
		"email":    {"alice@example.com"},
		"password": {"secret"},
	})

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), fiber.StatusOK, resp.StatusCode)

	body := suite.body(resp)
	assert.Contains(suite.T(), body, "name")
	// The rejected input is kept in the form
	assert.Contains(suite.T(), body, "alice@example.com")

	suite.mockUsecase.AssertNotCalled(suite.T(), "SignUp", mock.Anything, mock.Anything)
}

func (suite *AccountHTTPTestSuite) TestSignupSubmit_EmailTakenRerenders() {
	suite.mockUsecase.On("SignUp", mock.Anything, mock.Anything).
		Return(nil, "", usecase.ErrEmailTaken)

	req := suite.formRequest("/signupSubmit", url.Values{
		"name":     {"Alice"},
		"email":    {"taken@example.com"},
		"password": {"secret"},
	})

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), fiber.StatusOK, resp.StatusCode)
	assert.Contains(suite.T(), suite.body(resp), "already registered")
	assert.Empty(suite.T(), resp.Cookies())
}

func (suite *AccountHTTPTestSuite) TestLoginSubmit_Success() {
	session := memberSession()
	suite.mockUsecase.On("Login", mock.Anything, usecase.LoginForm{
		Email: "alice@example.com", Password: "secret",
	}).Return(session, "signed-token", nil)

	req := suite.formRequest("/loginSubmit", url.Values{
		"email":    {"alice@example.com"},
		"password": {"secret"},
	})

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(suite.T(), "/members", resp.Header.Get("Location"))

	cookies := resp.Cookies()
	require.Len(suite.T(), cookies, 1)
	assert.Equal(suite.T(), "signed-token", cookies[0].Value)
}

func (suite *AccountHTTPTestSuite) TestLoginSubmit_BadCredentialsShareOneMessage() {
	// Unknown email and wrong password produce the identical response body.
	suite.mockUsecase.On("Login", mock.Anything, mock.Anything).
		Return(nil, "", usecase.ErrInvalidCredentials)

	form := url.Values{"email": {"ghost@example.com"}, "password": {"nope"}}

	first, err := suite.app.Test(suite.formRequest("/loginSubmit", form))
	require.NoError(suite.T(), err)
	second, err := suite.app.Test(suite.formRequest("/loginSubmit", form))
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), fiber.StatusOK, first.StatusCode)
	assert.Equal(suite.T(), fiber.StatusOK, second.StatusCode)

	firstBody := suite.body(first)
	assert.Contains(suite.T(), firstBody, "Invalid email or password.")
	assert.Equal(suite.T(), firstBody, suite.body(second))
	assert.Empty(suite.T(), first.Cookies())
}

func (suite *AccountHTTPTestSuite) TestMembers_AnonymousRedirectsHome() {
	req := httptest.NewRequest(http.MethodGet, "/members", nil)

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), fiber.StatusFound, resp.StatusCode)
	assert.Equal(suite.T(), "/", resp.Header.Get("Location"))
}

func (suite *AccountHTTPTestSuite) TestMembers_Authenticated() {
	req := suite.withSession(httptest.NewRequest(http.MethodGet, "/members", nil), memberSession())

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), fiber.StatusOK, resp.StatusCode)
	assert.Contains(suite.T(), suite.body(resp), "Alice")
}

func (suite *AccountHTTPTestSuite) TestLogout_DestroysSessionAndClearsCookie() {
	suite.mockUsecase.On("Logout", mock.Anything, "cookie-token").Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "cookie-token"})
	// LoadSession resolves the cookie before the handler runs
	suite.mockUsecase.On("CurrentSession", mock.Anything, "cookie-token").
		Return(memberSession(), nil)

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), fiber.StatusFound, resp.StatusCode)
	assert.Equal(suite.T(), "/", resp.Header.Get("Location"))

	cookies := resp.Cookies()
	require.Len(suite.T(), cookies, 1)
	assert.Empty(suite.T(), cookies[0].Value)
	assert.True(suite.T(), cookies[0].Expires.Before(time.Now()))

	suite.mockUsecase.AssertCalled(suite.T(), "Logout", mock.Anything, "cookie-token")
}

func (suite *AccountHTTPTestSuite) TestLogout_StoreFailureStillClearsCookie() {
	// Even when the session store refuses the destroy, the browser's cookie
	// is cleared; logging out locally always succeeds.
	suite.mockUsecase.On("CurrentSession", mock.Anything, "cookie-token").
		Return(memberSession(), nil)
	suite.mockUsecase.On("Logout", mock.Anything, "cookie-token").
		Return(errors.New("redis unreachable"))

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "cookie-token"})

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), fiber.StatusInternalServerError, resp.StatusCode)

	cookies := resp.Cookies()
	require.Len(suite.T(), cookies, 1)
	assert.Empty(suite.T(), cookies[0].Value)
	assert.True(suite.T(), cookies[0].Expires.Before(time.Now()))
}

func (suite *AccountHTTPTestSuite) TestLogout_Anonymous() {
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), fiber.StatusFound, resp.StatusCode)
	suite.mockUsecase.AssertNotCalled(suite.T(), "Logout", mock.Anything, mock.Anything)
}

func (suite *AccountHTTPTestSuite) TestAdmin_AnonymousRedirectsHome() {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), fiber.StatusFound, resp.StatusCode)
	assert.Equal(suite.T(), "/", resp.Header.Get("Location"))
}

func (suite *AccountHTTPTestSuite) TestAdmin_NonAdminGetsForbiddenPage() {
	req := suite.withSession(httptest.NewRequest(http.MethodGet, "/admin", nil), memberSession())

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(suite.T(), suite.body(resp), "Not authorized")
	suite.mockUsecase.AssertNotCalled(suite.T(), "ListUsers", mock.Anything)
}

func (suite *AccountHTTPTestSuite) TestAdmin_ListsUsers() {
	suite.mockUsecase.On("ListUsers", mock.Anything).Return([]model.User{
		{Name: "Alice", Email: "alice@example.com", Admin: true},
		{Name: "Bob", Email: "bob@example.com"},
	}, nil)

	req := suite.withSession(httptest.NewRequest(http.MethodGet, "/admin", nil), adminSession())

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), fiber.StatusOK, resp.StatusCode)

	body := suite.body(resp)
	assert.Contains(suite.T(), body, "alice@example.com")
	assert.Contains(suite.T(), body, "bob@example.com")
}

func (suite *AccountHTTPTestSuite) TestPromoteUser_AsAdmin() {
	suite.mockUsecase.On("PromoteUser", mock.Anything, "bob@example.com").Return(nil)

	req := suite.withSession(
		httptest.NewRequest(http.MethodPost, "/admin/promoteUser/bob%40example.com", nil),
		adminSession())

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(suite.T(), "/admin", resp.Header.Get("Location"))

	suite.mockUsecase.AssertCalled(suite.T(), "PromoteUser", mock.Anything, "bob@example.com")
}

func (suite *AccountHTTPTestSuite) TestDemoteUser_AsAdmin() {
	suite.mockUsecase.On("DemoteUser", mock.Anything, "bob@example.com").Return(nil)

	req := suite.withSession(
		httptest.NewRequest(http.MethodPost, "/admin/demoteUser/bob%40example.com", nil),
		adminSession())

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(suite.T(), "/admin", resp.Header.Get("Location"))
}

func (suite *AccountHTTPTestSuite) TestPromoteUser_AsNonAdminForbidden() {
	req := suite.withSession(
		httptest.NewRequest(http.MethodPost, "/admin/promoteUser/bob%40example.com", nil),
		memberSession())

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), fiber.StatusForbidden, resp.StatusCode)
	suite.mockUsecase.AssertNotCalled(suite.T(), "PromoteUser", mock.Anything, mock.Anything)
}

func (suite *AccountHTTPTestSuite) TestUnknownRouteRenders404() {
	req := httptest.NewRequest(http.MethodGet, "/no-such-page", nil)

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(suite.T(), suite.body(resp), "Page not found")
}

func TestAccountHTTPTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHTTPTestSuite))
}
