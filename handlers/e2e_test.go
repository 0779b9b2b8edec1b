package handlers_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tempobudget/budget-api/auth"
	"github.com/tempobudget/budget-api/config"
	"github.com/tempobudget/budget-api/middleware"
	"github.com/tempobudget/budget-api/routes"
)

var (
	testDB     *sql.DB
	testRouter *gin.Engine
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("failed to get connection string: %v", err)
	}

	testDB, err = sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	if err := config.RunMigrations(testDB); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	codec := auth.NewCodec("test-secret")

	gin.SetMode(gin.TestMode)
	testRouter = gin.New()
	api := testRouter.Group("/api")
	routes.SetupAuthRoutes(api, testDB, codec)
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(codec))
	routes.SetupBudgetRoutes(protected, testDB)
	routes.SetupInvitationRoutes(protected, testDB)
	routes.SetupCategoryRoutes(protected, testDB)
	routes.SetupTransactionRoutes(protected, testDB)

	code := m.Run()

	testDB.Close()
	pgContainer.Terminate(ctx)
	os.Exit(code)
}

func doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, email, name string) (token, userID string) {
	t.Helper()

	w := doJSON(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    email,
		"name":     name,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token, resp.User.ID
}

func TestRegisterAndLogin(t *testing.T) {
	registerUser(t, "login-test@example.com", "Login Test")

	w := doJSON(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "login-test@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "login-test@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "login-test@example.com",
		"name":     "Dup",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	w := doJSON(t, http.MethodGet, "/api/budgets", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInviteRoleValidation(t *testing.T) {
	ownerToken, _ := registerUser(t, "role-owner@example.com", "Owner")
	registerUser(t, "role-invitee@example.com", "Invitee")

	w := doJSON(t, http.MethodPost, "/api/budgets", ownerToken, gin.H{
		"name":        "Household",
		"budget_type": "group",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var budget struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &budget))

	// the owner role can never be granted through an invitation
	w = doJSON(t, http.MethodPost, "/api/budgets/"+budget.ID+"/members", ownerToken, gin.H{
		"email": "role-invitee@example.com",
		"role":  "owner",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestInvitationFlow walks the whole lifecycle: the owner creates a group
// budget, invites carol as admin, carol sees and accepts the invitation,
// and the member list reflects her new role.
func TestInvitationFlow(t *testing.T) {
	ownerToken, ownerID := registerUser(t, "flow-owner@example.com", "Owner")
	carolToken, carolID := registerUser(t, "flow-carol@example.com", "Carol")

	w := doJSON(t, http.MethodPost, "/api/budgets", ownerToken, gin.H{
		"name":        "Household",
		"budget_type": "group",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var budget struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &budget))

	// owner membership was created with the budget
	w = doJSON(t, http.MethodGet, "/api/budgets/"+budget.ID+"/members", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var memberList []struct {
		ID     string `json:"id"`
		UserID string `json:"user_id"`
		Role   string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &memberList))
	require.Len(t, memberList, 1)
	assert.Equal(t, ownerID, memberList[0].UserID)
	assert.Equal(t, "owner", memberList[0].Role)

	// carol cannot see the member list yet
	w = doJSON(t, http.MethodGet, "/api/budgets/"+budget.ID+"/members", carolToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// carol cannot invite either
	w = doJSON(t, http.MethodPost, "/api/budgets/"+budget.ID+"/members", carolToken, gin.H{
		"email": "flow-owner@example.com",
		"role":  "member",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// the owner invites carol as admin
	w = doJSON(t, http.MethodPost, "/api/budgets/"+budget.ID+"/members", ownerToken, gin.H{
		"email": "flow-carol@example.com",
		"role":  "admin",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var invitation struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &invitation))

	// carol sees it pending
	w = doJSON(t, http.MethodGet, "/api/invitations", carolToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var pending []struct {
		ID         string `json:"id"`
		BudgetName string `json:"budget_name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, invitation.ID, pending[0].ID)
	assert.Equal(t, "Household", pending[0].BudgetName)

	// the owner cannot accept on carol's behalf
	w = doJSON(t, http.MethodPost, "/api/invitations/"+invitation.ID+"/accept", ownerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// carol accepts
	w = doJSON(t, http.MethodPost, "/api/invitations/"+invitation.ID+"/accept", carolToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// she now appears as admin
	w = doJSON(t, http.MethodGet, "/api/budgets/"+budget.ID+"/members", carolToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &memberList))
	require.Len(t, memberList, 2)
	assert.Equal(t, carolID, memberList[1].UserID)
	assert.Equal(t, "admin", memberList[1].Role)

	// the invitation left her pending list
	w = doJSON(t, http.MethodGet, "/api/invitations", carolToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	assert.Empty(t, pending)

	// accepting again is a bad request: the state is terminal
	w = doJSON(t, http.MethodPost, "/api/invitations/"+invitation.ID+"/accept", carolToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// carol is an admin, not an owner: she cannot remove members
	w = doJSON(t, http.MethodDelete, "/api/budgets/"+budget.ID+"/members/"+memberList[0].ID, carolToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// the owner removes carol
	w = doJSON(t, http.MethodDelete, "/api/budgets/"+budget.ID+"/members/"+memberList[1].ID, ownerToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCategoryAccessControl(t *testing.T) {
	ownerToken, _ := registerUser(t, "cat-owner@example.com", "Owner")
	strangerToken, _ := registerUser(t, "cat-stranger@example.com", "Stranger")

	w := doJSON(t, http.MethodPost, "/api/budgets", ownerToken, gin.H{
		"name":        "Personal",
		"budget_type": "personal",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var budget struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &budget))

	w = doJSON(t, http.MethodPost, "/api/budgets/"+budget.ID+"/categories", ownerToken, gin.H{
		"name":   "Groceries",
		"amount": 400.0,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, http.MethodGet, "/api/budgets/"+budget.ID+"/categories", strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, http.MethodGet, "/api/budgets/"+budget.ID+"/categories", ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
