package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/credchain/credential-registry/internal/model"
	"github.com/credchain/credential-registry/internal/queue"
	"github.com/credchain/credential-registry/internal/repository"
	queue_publisher "github.com/credchain/credential-registry/internal/service"
)

// dedupeWindow bounds how many audit rows a burst of identical verify calls
// (client retries, double-clicks) can create: within the window, at most one
// row per credential and verifier. Distinct verification attempts further
// apart are always recorded.
const dedupeWindow = 2 * time.Second

// Verify resolves a credential by its blockchain hash. The route is public;
// an Authorization header is honored when present but never required. The
// flow is: resolve credential (404 on miss, no audit row), resolve the
// verifier identity (degrading to the anonymous verifier if the caller's
// user record cannot be loaded), append one audit row best-effort, publish a
// best-effort event, and return the credential with verifier metadata and a
// correlation id.
func (h *CredentialHandler) Verify(c echo.Context) error {
	hash := c.Param("hash")
	requestID := uuid.NewString()

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	cred, err := h.Credentials.FindByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "credential not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error verifying credential"})
	}

	// Resolve the verifier. The token's snapshot is not trusted: the user
	// record is re-read so a stale token cannot impersonate a changed
	// account. If the lookup fails the attempt is still recorded, just as
	// anonymous.
	verifierEmail := model.AnonymousVerifierEmail
	verifierType := model.VerifierPublic
	if uid, idErr := actorID(c); idErr == nil {
		u, uerr := h.Users.GetByID(ctx, uid)
		if uerr != nil {
			c.Logger().Warnf("verify %s: user %d unresolved, degrading to public verifier: %v", requestID, uid, uerr)
		} else {
			verifierEmail = u.Email
			verifierType = model.VerifierTypeForRole(u.Role)
		}
	}

	// Audit append. Failure is reported to logs but masked from the caller:
	// the verification result was established by the lookup above, not by
	// audit-log durability.
	if h.shouldRecord(ctx, cred.ID, verifierEmail) {
		if _, aerr := h.Verifications.Create(ctx, cred.ID, verifierEmail, verifierType, model.VerificationStatusVerified); aerr != nil {
			c.Logger().Errorf("verify %s: recording verification of credential %d failed: %v", requestID, cred.ID, aerr)
		}
	}

	_ = queue_publisher.PublishCredentialVerified(ctx, queue.CredentialVerifiedEvent{
		CredentialID:   cred.ID,
		BlockchainHash: cred.BlockchainHash,
		Title:          cred.Title,
		VerifierEmail:  verifierEmail,
		VerifierType:   string(verifierType),
		Status:         model.VerificationStatusVerified,
		RequestID:      requestID,
		VerifiedAt:     time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"verified":      true,
		"credential":    credentialItemFrom(cred),
		"message":       "credential verified successfully",
		"verified_by":   verifierEmail,
		"verifier_type": verifierType,
		"request_id":    requestID,
	})
}

// shouldRecord is the dedupe guard in front of the audit append. It takes a
// short-lived SETNX lock keyed by credential and verifier; the loser of a
// concurrent race skips its insert. Without Redis every attempt is recorded,
// which the at-least-once audit contract allows.
func (h *CredentialHandler) shouldRecord(ctx context.Context, credentialID uint64, verifierEmail string) bool {
	if h.RDB == nil {
		return true
	}
	key := fmt.Sprintf("verify:seen:%d:%s", credentialID, verifierEmail)
	ok, err := h.RDB.SetNX(ctx, key, 1, dedupeWindow).Result()
	if err != nil {
		return true
	}
	return ok
}
