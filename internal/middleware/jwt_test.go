package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/pochitasw/vetclinic/internal/model"
    "github.com/pochitasw/vetclinic/internal/utils"
)

const testSecret = "test-secret"

func doAuthed(t *testing.T, header string) (*httptest.ResponseRecorder, echo.Context) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    if header != "" {
        req.Header.Set("Authorization", header)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    var captured echo.Context
    h := JWTAuth(testSecret)(func(c echo.Context) error {
        captured = c
        return c.NoContent(http.StatusOK)
    })
    if err := h(c); err != nil {
        t.Fatalf("handler returned error: %v", err)
    }
    return rec, captured
}

func TestJWTAuthMissingHeader(t *testing.T) {
    rec, _ := doAuthed(t, "")
    if rec.Code != http.StatusUnauthorized {
        t.Fatalf("expected 401, got %d", rec.Code)
    }
}

func TestJWTAuthMalformedToken(t *testing.T) {
    rec, _ := doAuthed(t, "Bearer not-a-jwt")
    if rec.Code != http.StatusUnauthorized {
        t.Fatalf("expected 401, got %d", rec.Code)
    }
}

func TestJWTAuthWrongSecret(t *testing.T) {
    tok, err := utils.NewAccessToken("other-secret", 7, model.RoleVet, 15)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }
    rec, _ := doAuthed(t, "Bearer "+tok.Token)
    if rec.Code != http.StatusUnauthorized {
        t.Fatalf("expected 401, got %d", rec.Code)
    }
}

func TestJWTAuthValidTokenSetsIdentity(t *testing.T) {
    tok, err := utils.NewAccessToken(testSecret, 42, model.RoleReceptionist, 15)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }
    rec, c := doAuthed(t, "Bearer "+tok.Token)
    if rec.Code != http.StatusOK {
        t.Fatalf("expected 200, got %d", rec.Code)
    }
    if got := UserID(c); got != 42 {
        t.Fatalf("UserID = %d, want 42", got)
    }
    if got := Role(c); got != model.RoleReceptionist {
        t.Fatalf("Role = %q, want %q", got, model.RoleReceptionist)
    }
}

func TestJWTAuthUnknownRoleDemotedToClient(t *testing.T) {
    tok, err := utils.NewAccessToken(testSecret, 9, model.Role("SUPERUSER"), 15)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }
    rec, c := doAuthed(t, "Bearer "+tok.Token)
    if rec.Code != http.StatusOK {
        t.Fatalf("expected 200, got %d", rec.Code)
    }
    if got := Role(c); got != model.RoleClient {
        t.Fatalf("Role = %q, want %q", got, model.RoleClient)
    }
}
