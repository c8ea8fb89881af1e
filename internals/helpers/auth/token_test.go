package helper

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseAccessToken(t *testing.T) {
	in := Claims{
		UserID:    uuid.New(),
		SchoolID:  uuid.New(),
		Role:      "student",
		Name:      "Asha",
		StudentID: uuid.New(),
		Timezone:  "Asia/Jakarta",
	}
	tok, exp, err := IssueAccessToken("s3cret", time.Hour, in)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	out, gotExp, err := ParseAccessToken("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Equal(t, exp.Unix(), gotExp.Unix())
}

func TestParseAccessToken_Rejects(t *testing.T) {
	cl := Claims{UserID: uuid.New(), SchoolID: uuid.New(), Role: "admin"}

	tok, _, err := IssueAccessToken("s3cret", time.Hour, cl)
	require.NoError(t, err)
	_, _, err = ParseAccessToken("other", tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, _, err := IssueAccessToken("s3cret", -time.Minute, cl)
	require.NoError(t, err)
	_, _, err = ParseAccessToken("s3cret", expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, _, err = ParseAccessToken("s3cret", "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, _, err = IssueAccessToken("", time.Hour, cl)
	assert.Error(t, err)
}

func TestExtractToken(t *testing.T) {
	var header, cookie string
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		header = ExtractToken(c, false)
		cookie = ExtractToken(c, true)
		return nil
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "from-cookie"})
	_, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Empty(t, header)
	assert.Equal(t, "from-cookie", cookie)

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer abc.def")
	_, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc.def", header)
}

func TestHashToken(t *testing.T) {
	a := HashToken("tok", "k1")
	assert.Len(t, a, 64)
	assert.Equal(t, a, HashToken("tok", "k1"))
	assert.NotEqual(t, a, HashToken("tok", "k2"))
}
