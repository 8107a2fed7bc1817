package api

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

const testCookie = "connect.sid=session-1"

// fakeServer is a minimal stand-in for the task server
type fakeServer struct {
	mu sync.Mutex

	loginStatus    int
	tasksStatus    int
	tasksBody      string
	projectsStatus int
	projectsBody   string
	tagsStatus     int
	tagsBody       string
	patchStatus    int
	createStatus   int

	logins       int
	tasksQuery   map[string]string
	patchedPaths []string
	patched      []map[string]any
	created      []map[string]any
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		loginStatus:    http.StatusOK,
		tasksStatus:    http.StatusOK,
		tasksBody:      `[]`,
		projectsStatus: http.StatusOK,
		projectsBody:   `[]`,
		tagsStatus:     http.StatusOK,
		tagsBody:       `[]`,
		patchStatus:    http.StatusOK,
		createStatus:   http.StatusCreated,
	}
}

func (f *fakeServer) router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.POST("/api/login", func(c *gin.Context) {
		f.mu.Lock()
		f.logins++
		f.mu.Unlock()

		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
			c.Status(http.StatusBadRequest)
			return
		}
		if f.loginStatus != http.StatusOK {
			c.Status(f.loginStatus)
			return
		}
		c.SetCookie("connect.sid", "session-1", 3600, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"user": gin.H{"email": req.Email}})
	})

	api := r.Group("/api", f.requireSession)
	api.GET("/tasks", func(c *gin.Context) {
		f.mu.Lock()
		f.tasksQuery = map[string]string{
			"type":                  c.Query("type"),
			"client_side_filtering": c.Query("client_side_filtering"),
		}
		f.mu.Unlock()
		c.Data(f.tasksStatus, "application/json", []byte(f.tasksBody))
	})
	api.GET("/projects", func(c *gin.Context) {
		c.Data(f.projectsStatus, "application/json", []byte(f.projectsBody))
	})
	api.GET("/tags", func(c *gin.Context) {
		c.Data(f.tagsStatus, "application/json", []byte(f.tagsBody))
	})
	api.PATCH("/task/:id", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.patchedPaths = append(f.patchedPaths, c.Request.URL.Path)
		f.patched = append(f.patched, body)
		f.mu.Unlock()
		c.Status(f.patchStatus)
	})
	api.POST("/task", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.created = append(f.created, body)
		f.mu.Unlock()
		c.Status(f.createStatus)
	})

	return r
}

func (f *fakeServer) requireSession(c *gin.Context) {
	if c.GetHeader("Cookie") != testCookie {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.Next()
}

// start serves f and returns a client pointed at it
func (f *fakeServer) start(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(f.router())
	t.Cleanup(srv.Close)

	return NewClient(Credentials{
		Endpoint: srv.URL + "/",
		Email:    "me@example.com",
		Password: "secret",
	}, WithHTTPClient(srv.Client()))
}

func (f *fakeServer) loginCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logins
}
