package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khlab/cocktail-lab/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func mojitoPayload() gin.H {
	return gin.H{
		"cocktailNo":        101,
		"cocktailName":      "Mojito",
		"description":       "클래식",
		"ingredients":       []string{"화이트 럼 2oz", "라임"},
		"instructions":      "잘 저어주세요",
		"cocktailImagePath": "/images/mojito.png",
		"memberNo":          7,
		"likeCount":         3,
		"isLiked":           true,
		"createdAt":         "2025-06-01T10:30:00",
	}
}

func TestListCocktails(t *testing.T) {
	router := gin.New()
	var gotHeader string
	router.GET("/api/cocktails", func(c *gin.Context) {
		gotHeader = c.GetHeader("X-Member-No")
		c.JSON(http.StatusOK, gin.H{"success": true, "data": []gin.H{mojitoPayload()}})
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	client := NewClient(srv.URL, func() string { return "7" })
	cocktails, err := client.ListCocktails(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "7", gotHeader)
	require.Len(t, cocktails, 1)
	c := cocktails[0]
	// Numeric wire ids arrive as canonical strings.
	assert.Equal(t, models.ID("101"), c.ID)
	assert.Equal(t, models.ID("7"), c.OwnerID)
	assert.Equal(t, "Mojito", c.Name)
	assert.Equal(t, 3, c.LikeCount)
	assert.True(t, c.IsLiked)
	assert.False(t, c.CreatedAt.IsZero())
	assert.Nil(t, c.UpdatedAt)
}

func TestListCocktailsOmitsHeaderWhenAnonymous(t *testing.T) {
	router := gin.New()
	var headerPresent bool
	router.GET("/api/cocktails", func(c *gin.Context) {
		_, headerPresent = c.Request.Header["X-Member-No"]
		c.JSON(http.StatusOK, gin.H{"success": true, "data": []gin.H{}})
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.ListCocktails(context.Background())
	require.NoError(t, err)
	assert.False(t, headerPresent)
}

func TestCreateCocktail(t *testing.T) {
	router := gin.New()
	var gotBody cocktailRequest
	router.POST("/api/cocktails", func(c *gin.Context) {
		require.NoError(t, c.ShouldBindJSON(&gotBody))
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": mojitoPayload()})
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	client := NewClient(srv.URL, func() string { return "7" })
	created, err := client.CreateCocktail(context.Background(), models.CocktailDraft{
		Name:        "Mojito",
		Ingredients: []string{"화이트 럼 2oz", "라임"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Mojito", gotBody.CocktailName)
	assert.Equal(t, []string{"화이트 럼 2oz", "라임"}, gotBody.Ingredients)
	assert.Equal(t, models.ID("101"), created.ID)
}

func TestCreateCocktailRejectsEmptyIngredientsBeforeCall(t *testing.T) {
	called := false
	router := gin.New()
	router.POST("/api/cocktails", func(c *gin.Context) {
		called = true
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": mojitoPayload()})
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.CreateCocktail(context.Background(), models.CocktailDraft{Name: "Mojito"})

	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.False(t, called, "no request may be made for an invalid draft")
}

func TestToggleLike(t *testing.T) {
	router := gin.New()
	router.POST("/api/cocktails/:id/likes", func(c *gin.Context) {
		assert.Equal(t, "101", c.Param("id"))
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"likeCount": 4, "isLiked": true}})
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	client := NewClient(srv.URL, func() string { return "7" })
	result, err := client.ToggleLike(context.Background(), "101")
	require.NoError(t, err)
	assert.Equal(t, 4, result.LikeCount)
	assert.True(t, result.IsLiked)
}

func TestServiceFailureBecomesTransportError(t *testing.T) {
	router := gin.New()
	router.POST("/api/members/login", func(c *gin.Context) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "아이디 또는 비밀번호가 올바르지 않습니다."})
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.Login(context.Background(), "alice", "wrong")

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusUnauthorized, transportErr.Status)
	assert.Contains(t, transportErr.Message, "올바르지")
}

func TestSuccessFalseWithOKStatusIsStillAFailure(t *testing.T) {
	router := gin.New()
	router.DELETE("/api/cocktails/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "권한이 없습니다."})
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	err := client.DeleteCocktail(context.Background(), "101")

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestNetworkFailureBecomesTransportError(t *testing.T) {
	srv := httptest.NewServer(gin.New())
	srv.Close() // connection refused from here on

	client := NewClient(srv.URL, nil)
	_, err := client.ListCocktails(context.Background())

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Error(t, transportErr.Unwrap())
}

func TestSignupAndLogin(t *testing.T) {
	router := gin.New()
	router.POST("/api/members", func(c *gin.Context) {
		var req signupRequest
		require.NoError(t, c.ShouldBindJSON(&req))
		assert.Equal(t, "alice", req.MemberID)
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{
			"memberNo": 7, "memberId": "alice", "nickname": "Alice",
		}})
	})
	router.POST("/api/members/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"memberNo": 7, "memberId": "alice", "nickname": "Alice",
		}})
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	client := NewClient(srv.URL, nil)

	user, err := client.Signup(context.Background(), "alice", "secret", "Alice", "")
	require.NoError(t, err)
	assert.Equal(t, models.ID("7"), user.ID)
	assert.Equal(t, "alice", user.Username)

	user, err = client.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Nickname)
}

func TestCheckUsernameExists(t *testing.T) {
	router := gin.New()
	router.GET("/api/members/check-memberId", func(c *gin.Context) {
		available := c.Query("memberId") != "alice"
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"available": available}})
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	client := NewClient(srv.URL, nil)

	exists, err := client.CheckUsernameExists(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = client.CheckUsernameExists(context.Background(), "bob")
	require.NoError(t, err)
	assert.False(t, exists)
}
