package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/credchain/credential-registry/internal/config"
	"github.com/credchain/credential-registry/internal/model"
	"github.com/credchain/credential-registry/internal/repository"
)

// DefaultStudentPassword is assigned to every student account provisioned
// through the add-student flow. A shared guessable default is a known weak
// point of the design; it is kept because the registry has no password
// rotation flow to pair a generated secret with.
const DefaultStudentPassword = "student123"

// StudentHandler bundles dependencies for university-driven student
// provisioning.
type StudentHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewStudentHandler(cfg config.Config, u *repository.UserRepo) *StudentHandler {
	return &StudentHandler{Cfg: cfg, Users: u}
}

type addStudentReq struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// Add provisions a student account with the documented default password.
// The email uniqueness constraint guarantees no second row is created when
// two universities race on the same address.
func (h *StudentHandler) Add(c echo.Context) error {
	var req addStudentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and email are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Name, req.Email, DefaultStudentPassword, model.RoleStudent, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "user with this email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error creating student"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "student added successfully",
		"student": userPart{ID: uid, Name: req.Name, Email: req.Email, Role: model.RoleStudent},
	})
}

// List returns every student account, newest first.
func (h *StudentHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	students, err := h.Users.ListStudents(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]model.PublicUser, 0, len(students))
	for _, s := range students {
		out = append(out, s.Public())
	}
	return c.JSON(http.StatusOK, echo.Map{"students": out})
}
