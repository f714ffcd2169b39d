package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"golang.org/x/crypto/bcrypt"

	"github.com/neonglow/neonglow-backend-go/database"
)

func postAdminLogin(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := AdminLogin(c); err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	return rec
}

func TestAdminLoginRejectsWrongPassword(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("wrong password", func(mt *mtest.T) {
		mt.Setenv("JWT_SECRET", "test-secret")
		database.DB = mt.DB

		hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
		if err != nil {
			mt.Fatalf("bcrypt: %v", err)
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "neonglow.admins", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "username", Value: "boss"},
			{Key: "email", Value: "boss@neonglow.test"},
			{Key: "password", Value: string(hash)},
		}))

		rec := postAdminLogin(mt.T, `{"email":"boss@neonglow.test","password":"wrong-password"}`)
		if rec.Code != http.StatusUnauthorized {
			mt.Errorf("status = %d, want 401", rec.Code)
		}

		var body map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			mt.Fatalf("decode body: %v", err)
		}
		if _, ok := body["token"]; ok {
			mt.Error("response carries a token despite the wrong password")
		}
		if body["error"] != "Invalid credentials" {
			mt.Errorf("error = %v, want Invalid credentials", body["error"])
		}
	})

	mt.Run("unknown account", func(mt *mtest.T) {
		mt.Setenv("JWT_SECRET", "test-secret")
		database.DB = mt.DB

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "neonglow.admins", mtest.FirstBatch))

		rec := postAdminLogin(mt.T, `{"email":"nobody@neonglow.test","password":"whatever"}`)
		if rec.Code != http.StatusUnauthorized {
			mt.Errorf("status = %d, want 401", rec.Code)
		}
	})
}
