package handler

import (
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/ekaraca/carmarket/internal/config"
    "github.com/ekaraca/carmarket/internal/logger"
    "github.com/ekaraca/carmarket/internal/model"
    "github.com/ekaraca/carmarket/internal/repository"
    "github.com/ekaraca/carmarket/internal/utils"
)

// UserHandler bundles dependencies for registration, login and profile
// management endpoints.
type UserHandler struct {
    Cfg   config.Config
    Users *repository.UserRepo
    Audit *logger.FileLogger
}

func NewUserHandler(cfg config.Config, users *repository.UserRepo, audit *logger.FileLogger) *UserHandler {
    return &UserHandler{Cfg: cfg, Users: users, Audit: audit}
}

// ----- DTOs -----

type registerReq struct {
    Username string `json:"username"`
    Password string `json:"password"`
    Email    string `json:"email"`
    Phone    string `json:"phone"`
    Location string `json:"location"`
}

type loginReq struct {
    Username string `json:"username"`
    Password string `json:"password"`
}

type tokenPart struct {
    Token   string    `json:"token"`
    Expires time.Time `json:"expires"`
}

type authResp struct {
    User   model.User `json:"user"`
    Access tokenPart  `json:"access"`
}

func roleOf(u model.User) string {
    if u.IsAdmin {
        return utils.RoleAdmin
    }
    return utils.RoleUser
}

// Register creates an account and logs the new user straight in, returning
// the same shape as Login so the client needs no second round trip.
func (h *UserHandler) Register(c echo.Context) error {
    var req registerReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Username = strings.TrimSpace(req.Username)
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    req.Phone = strings.TrimSpace(req.Phone)
    if req.Username == "" || req.Password == "" || req.Email == "" || req.Phone == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "username, password, email and phone are required"})
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    u := model.User{
        Username: req.Username,
        Email:    req.Email,
        Phone:    req.Phone,
        Location: strings.TrimSpace(req.Location),
    }
    if err := h.Users.Create(ctx, &u, req.Password, h.Cfg.BcryptCost); err != nil {
        return writeRepoErr(c, err, "create user failed")
    }

    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.Username, u.ID, roleOf(u), h.Cfg.TokenTTLHours)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
    }

    h.Audit.Logf("User #%d (%s) registered", u.ID, u.Username)
    return c.JSON(http.StatusCreated, authResp{
        User:   u,
        Access: tokenPart{Token: access.Token, Expires: access.Exp},
    })
}

// Login verifies credentials and issues an access token.  A wrong password
// and a deactivated account answer with the same body and status so the
// response leaks nothing about which check failed; the file log records the
// real reason for operators.
func (h *UserHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Username = strings.TrimSpace(req.Username)
    if req.Username == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    rejected := func(reason string) error {
        h.Audit.Logf("Login rejected for %q: %s", req.Username, reason)
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid username or password"})
    }

    u, err := h.Users.GetByUsername(ctx, req.Username)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return rejected("unknown username")
        }
        c.Logger().Errorf("login lookup failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
    }
    if !utils.VerifyPassword(u.PasswordHash, req.Password) {
        return rejected("wrong password")
    }
    if !u.IsActive {
        return rejected("account deactivated")
    }

    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.Username, u.ID, roleOf(u), h.Cfg.TokenTTLHours)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
    }

    h.Audit.Logf("User #%d (%s) logged in", u.ID, u.Username)
    return c.JSON(http.StatusOK, authResp{
        User:   u,
        Access: tokenPart{Token: access.Token, Expires: access.Exp},
    })
}

// Profile returns a user's public profile.  Callers can only read their own
// profile unless they are admins.
func (h *UserHandler) Profile(c echo.Context) error {
    id, err := paramID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
    }
    if !sameCaller(c, id) {
        return forbidden(c)
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    u, err := h.Users.GetByID(ctx, id)
    if err != nil {
        return writeRepoErr(c, err, "load profile failed")
    }
    return c.JSON(http.StatusOK, u)
}

// Edit updates email, phone, location and optionally the password.  A
// password change requires the current password to verify first.
func (h *UserHandler) Edit(c echo.Context) error {
    id, err := paramID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
    }
    if !sameCaller(c, id) {
        return forbidden(c)
    }

    var upd model.UserUpdate
    if err := c.Bind(&upd); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    upd.Email = strings.ToLower(strings.TrimSpace(upd.Email))
    upd.Phone = strings.TrimSpace(upd.Phone)
    if upd.Email == "" || upd.Phone == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and phone are required"})
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    var newHash string
    if upd.Password != "" {
        u, err := h.Users.GetByID(ctx, id)
        if err != nil {
            return writeRepoErr(c, err, "load profile failed")
        }
        if !utils.VerifyPassword(u.PasswordHash, upd.OldPassword) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "current password is wrong"})
        }
        newHash, err = utils.HashPassword(upd.Password, h.Cfg.BcryptCost)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update profile failed"})
        }
    }

    if err := h.Users.Update(ctx, id, upd, newHash); err != nil {
        return writeRepoErr(c, err, "update profile failed")
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "profile updated"})
}

// ListAll returns every account; the route is admin-only.
func (h *UserHandler) ListAll(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    users, err := h.Users.List(ctx)
    if err != nil {
        return writeRepoErr(c, err, "list users failed")
    }
    return c.JSON(http.StatusOK, users)
}

// Activate re-enables login for an account; admin-only.
func (h *UserHandler) Activate(c echo.Context) error {
    return h.setActive(c, true)
}

// Deactivate blocks login without deleting anything; admin-only.
func (h *UserHandler) Deactivate(c echo.Context) error {
    return h.setActive(c, false)
}

func (h *UserHandler) setActive(c echo.Context, active bool) error {
    id, err := paramID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Users.SetActive(ctx, id, active); err != nil {
        return writeRepoErr(c, err, "update account status failed")
    }

    verb := "deactivated"
    if active {
        verb = "activated"
    }
    h.Audit.Logf("User #%d %s by admin #%d", id, verb, currentUserID(c))
    return c.JSON(http.StatusOK, echo.Map{"message": "account " + verb})
}
