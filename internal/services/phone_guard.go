package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/staffdesk/employee-directory-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// PhoneHashSource provides the stored phone hashes for the duplicate scan
type PhoneHashSource interface {
	ListPhoneHashes() ([]models.PhoneHashRecord, error)
}

// PhoneGuard enforces phone uniqueness over one-way hashed storage. Because
// bcrypt salts every hash, equality cannot be checked with a store query;
// every stored hash must be verified against the candidate plaintext. The
// scan is O(n) per check and runs before every insert and phone update.
type PhoneGuard struct {
	source PhoneHashSource
	cost   int
}

// NewPhoneGuard creates a phone guard. Costs outside bcrypt's supported
// range fall back to the default cost.
func NewPhoneGuard(source PhoneHashSource, cost int) *PhoneGuard {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PhoneGuard{
		source: source,
		cost:   cost,
	}
}

// Hash returns the bcrypt hash of a plaintext phone number
func (g *PhoneGuard) Hash(phone string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(phone), g.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash phone number: %w", err)
	}
	return string(hash), nil
}

// IsDuplicate reports whether any stored employee already uses the given
// phone number
func (g *PhoneGuard) IsDuplicate(phone string) (bool, error) {
	return g.IsDuplicateExcluding(phone, uuid.Nil)
}

// IsDuplicateExcluding reports whether any employee other than exclude uses
// the given phone number. Updates pass the record's own id so re-submitting
// an unchanged phone is not a conflict.
func (g *PhoneGuard) IsDuplicateExcluding(phone string, exclude uuid.UUID) (bool, error) {
	records, err := g.source.ListPhoneHashes()
	if err != nil {
		return false, fmt.Errorf("failed to load phone hashes: %w", err)
	}

	for _, rec := range records {
		if rec.ID == exclude {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(rec.PhoneHash), []byte(phone)) == nil {
			return true, nil
		}
	}

	return false, nil
}
