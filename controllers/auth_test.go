package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"kissan-konnect-api/middleware"
	"kissan-konnect-api/models"
	"kissan-konnect-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type fakeRefreshRepo struct {
	users     map[int]*models.User
	tokens    []*models.UserToken
	nextID    int
	rotateErr error
}

func newFakeRefreshRepo() *fakeRefreshRepo {
	return &fakeRefreshRepo{users: map[int]*models.User{}, nextID: 1}
}

func (r *fakeRefreshRepo) UserByID(id int) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRefreshRepo) ActiveRefreshToken(token string) (*models.UserToken, error) {
	for _, row := range r.tokens {
		if row.Token == token && row.TokenType == models.TokenTypeRefresh && !row.Revoked {
			copied := *row
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRefreshRepo) CreateRefreshToken(row *models.UserToken) error {
	row.TokenID = r.nextID
	r.nextID++
	copied := *row
	r.tokens = append(r.tokens, &copied)
	return nil
}

func (r *fakeRefreshRepo) RotateRefreshToken(oldTokenID int, newRow *models.UserToken, now time.Time) error {
	if r.rotateErr != nil {
		return r.rotateErr
	}
	for _, row := range r.tokens {
		if row.TokenID == oldTokenID {
			row.Revoked = true
			row.UpdatedAt = now
		}
	}
	return r.CreateRefreshToken(newRow)
}

func setupRefresh(t *testing.T) *fakeRefreshRepo {
	t.Helper()
	gin.SetMode(gin.TestMode)

	prevRepo := refreshTokenRepo
	prevTokens := middleware.Tokens

	repo := newFakeRefreshRepo()
	refreshTokenRepo = repo
	middleware.Tokens = utils.NewTokenService(utils.TokenConfig{
		Secret:     "test-secret",
		AccessTTL:  time.Hour,
		RefreshTTL: 7 * 24 * time.Hour,
	})

	t.Cleanup(func() {
		refreshTokenRepo = prevRepo
		middleware.Tokens = prevTokens
	})
	return repo
}

func seedRefreshToken(t *testing.T, repo *fakeRefreshRepo, userID int) string {
	t.Helper()
	token, expiresAt, err := middleware.Tokens.IssueRefreshToken(userID)
	if err != nil {
		t.Fatalf("issue refresh token: %v", err)
	}
	repo.tokens = append(repo.tokens, &models.UserToken{
		TokenID:   repo.nextID,
		UserID:    userID,
		TokenType: models.TokenTypeRefresh,
		Token:     token,
		ExpiresAt: expiresAt,
	})
	repo.nextID++
	return token
}

func TestRefreshTokenRotatesPair(t *testing.T) {
	repo := setupRefresh(t)
	repo.users[5] = &models.User{UserID: 5, Email: "farmer@example.com", Role: models.RoleFarmer}
	presented := seedRefreshToken(t, repo, 5)

	recorder := postJSON(t, RefreshToken, gin.H{"refresh_token": presented})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var resp TokenResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected a full token pair")
	}
	if resp.RefreshToken == presented {
		t.Fatal("rotation must issue a new refresh token")
	}

	if _, err := repo.ActiveRefreshToken(presented); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatal("presented token must be revoked after rotation")
	}
	if _, err := repo.ActiveRefreshToken(resp.RefreshToken); err != nil {
		t.Fatalf("new refresh token must be stored active: %v", err)
	}
}

func TestRefreshTokenRejectsReuse(t *testing.T) {
	repo := setupRefresh(t)
	repo.users[5] = &models.User{UserID: 5, Email: "farmer@example.com", Role: models.RoleFarmer}
	presented := seedRefreshToken(t, repo, 5)

	if recorder := postJSON(t, RefreshToken, gin.H{"refresh_token": presented}); recorder.Code != http.StatusOK {
		t.Fatalf("first redemption failed: %d", recorder.Code)
	}

	recorder := postJSON(t, RefreshToken, gin.H{"refresh_token": presented})
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("a redeemed token must be rejected on reuse, got %d", recorder.Code)
	}
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	repo := setupRefresh(t)
	repo.users[5] = &models.User{UserID: 5, Role: models.RoleFarmer}

	access, err := middleware.Tokens.IssueAccessToken(5, models.RoleFarmer)
	if err != nil {
		t.Fatalf("issue access token: %v", err)
	}

	recorder := postJSON(t, RefreshToken, gin.H{"refresh_token": access})
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("an access token must not pass as a refresh token, got %d", recorder.Code)
	}
}

func TestRefreshTokenRejectsUnknownToken(t *testing.T) {
	repo := setupRefresh(t)
	repo.users[5] = &models.User{UserID: 5, Role: models.RoleFarmer}

	stray, _, err := middleware.Tokens.IssueRefreshToken(5)
	if err != nil {
		t.Fatalf("issue refresh token: %v", err)
	}

	// Validly signed but never stored, e.g. already rotated away elsewhere.
	recorder := postJSON(t, RefreshToken, gin.H{"refresh_token": stray})
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown token, got %d", recorder.Code)
	}
}

func TestRefreshTokenFailedRotationLeavesTokenUsable(t *testing.T) {
	repo := setupRefresh(t)
	repo.users[5] = &models.User{UserID: 5, Role: models.RoleFarmer}
	presented := seedRefreshToken(t, repo, 5)

	repo.rotateErr = errors.New("connection lost")
	recorder := postJSON(t, RefreshToken, gin.H{"refresh_token": presented})
	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on rotation failure, got %d", recorder.Code)
	}
	if _, err := repo.ActiveRefreshToken(presented); err != nil {
		t.Fatalf("a failed rotation must not burn the presented token: %v", err)
	}

	repo.rotateErr = nil
	if recorder := postJSON(t, RefreshToken, gin.H{"refresh_token": presented}); recorder.Code != http.StatusOK {
		t.Fatalf("token should remain redeemable after a failed rotation, got %d", recorder.Code)
	}
}
