package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/credchain/credential-registry/internal/config"
	"github.com/credchain/credential-registry/internal/model"
	"github.com/credchain/credential-registry/internal/queue"
	"github.com/credchain/credential-registry/internal/repository"
	queue_publisher "github.com/credchain/credential-registry/internal/service"
)

// CredentialHandler bundles dependencies for credential issuance, listing
// and verification. RDB may be nil; the verify dedupe guard then degrades
// to always recording.
type CredentialHandler struct {
	Cfg           config.Config
	Credentials   *repository.CredentialRepo
	Users         *repository.UserRepo
	Verifications *repository.VerificationRepo
	RDB           *redis.Client
}

func NewCredentialHandler(cfg config.Config, creds *repository.CredentialRepo, users *repository.UserRepo, ver *repository.VerificationRepo, rdb *redis.Client) *CredentialHandler {
	if creds == nil || users == nil || ver == nil {
		panic("nil repository passed to NewCredentialHandler")
	}
	return &CredentialHandler{Cfg: cfg, Credentials: creds, Users: users, Verifications: ver, RDB: rdb}
}

// ----- DTOs -----

type issueReq struct {
	StudentID   uint64 `json:"student_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	IssueDate   string `json:"issue_date" validate:"required"`
}

// credentialItem is the JSON projection of a credential. The name fields are
// populated depending on which listing produced the item.
type credentialItem struct {
	ID             uint64    `json:"id"`
	StudentID      uint64    `json:"student_id"`
	UniversityID   uint64    `json:"university_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	IssueDate      string    `json:"issue_date"`
	BlockchainHash string    `json:"blockchain_hash"`
	CreatedAt      time.Time `json:"created_at"`
	StudentName    string    `json:"student_name,omitempty"`
	StudentEmail   string    `json:"student_email,omitempty"`
	UniversityName string    `json:"university_name,omitempty"`
}

func credentialItemFrom(v model.CredentialView) credentialItem {
	return credentialItem{
		ID:             v.ID,
		StudentID:      v.StudentID,
		UniversityID:   v.UniversityID,
		Title:          v.Title,
		Description:    v.Description,
		IssueDate:      v.IssueDate.Format("2006-01-02"),
		BlockchainHash: v.BlockchainHash,
		CreatedAt:      v.CreatedAt,
		StudentName:    v.StudentName,
		StudentEmail:   v.StudentEmail,
		UniversityName: v.UniversityName,
	}
}

func credentialItems(views []model.CredentialView) []credentialItem {
	out := make([]credentialItem, 0, len(views))
	for _, v := range views {
		out = append(out, credentialItemFrom(v))
	}
	return out
}

// Issue creates a credential for a student. The issuing university is the
// authenticated caller; the route is gated to role=university and the
// handler re-checks so the policy holds even if wiring changes.
func (h *CredentialHandler) Issue(c echo.Context) error {
	role, ok := actorRole(c)
	if !ok || role != model.RoleUniversity {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only universities can issue credentials"})
	}
	universityID, err := actorID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req issueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "student id, title, and issue date are required"})
	}
	issueDate, err := time.Parse("2006-01-02", req.IssueDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "issue_date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	id, hash, err := h.Credentials.Create(ctx, req.StudentID, universityID, req.Title, req.Description, issueDate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error issuing credential"})
	}

	// Best-effort domain event; issuance already succeeded.
	_ = queue_publisher.PublishCredentialIssued(ctx, queue.CredentialIssuedEvent{
		CredentialID:   id,
		StudentID:      req.StudentID,
		UniversityID:   universityID,
		Title:          req.Title,
		IssueDate:      req.IssueDate,
		BlockchainHash: hash,
		IssuedAt:       time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "credential issued successfully",
		"credential": echo.Map{
			"id":              id,
			"blockchain_hash": hash,
		},
	})
}

// ListStudent returns the caller's own credentials, newest issue date first.
// An empty list is a normal response, not an error.
func (h *CredentialHandler) ListStudent(c echo.Context) error {
	uid, err := actorID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	views, err := h.Credentials.ListByStudent(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error fetching credentials"})
	}
	return c.JSON(http.StatusOK, echo.Map{"credentials": credentialItems(views)})
}

// ListUniversity returns the credentials the calling university has issued.
func (h *CredentialHandler) ListUniversity(c echo.Context) error {
	uid, err := actorID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	views, err := h.Credentials.ListByUniversity(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error fetching credentials"})
	}
	return c.JSON(http.StatusOK, echo.Map{"credentials": credentialItems(views)})
}

// ListAll returns every credential in the registry. Any university-role
// actor may call this; the grant is intentionally broad.
func (h *CredentialHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	views, err := h.Credentials.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error fetching credentials"})
	}
	return c.JSON(http.StatusOK, echo.Map{"credentials": credentialItems(views)})
}

// verificationItem is the JSON projection of one audit record.
type verificationItem struct {
	ID            uint64    `json:"id"`
	CredentialID  uint64    `json:"credential_id"`
	VerifierEmail string    `json:"verifier_email"`
	VerifierType  string    `json:"verifier_type"`
	Status        string    `json:"status"`
	VerifiedAt    time.Time `json:"verified_at"`
}

// ListVerifications returns the audit history of one credential.
func (h *CredentialHandler) ListVerifications(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Credentials.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "credential not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	recs, err := h.Verifications.ListByCredential(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error fetching verifications"})
	}
	out := make([]verificationItem, 0, len(recs))
	for _, r := range recs {
		out = append(out, verificationItem{
			ID:            r.ID,
			CredentialID:  r.CredentialID,
			VerifierEmail: r.VerifierEmail,
			VerifierType:  string(r.VerifierType),
			Status:        r.Status,
			VerifiedAt:    r.VerifiedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"verifications": out})
}
