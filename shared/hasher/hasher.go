package hasher

import (
	"agenda/config"
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost matches the work factor used for every stored patient and doctor field.
	DefaultCost = 10

	visibleDigits = 4
)

var (
	ErrHashingValue = errors.New("error hashing value")

	nonDigit = regexp.MustCompile(`\D`)
)

// Hasher is the one-way transform applied to identifying fields before they are persisted.
// Empty input yields an empty hash so optional fields stay NULL.
type Hasher interface {
	HashName(name string) (string, error)
	HashPhone(phone string) (string, error)
	HashEmail(email string) (string, error)
	HashPhonePartial(phone string) (string, error)
	Compare(value, hash string) bool
}

type bcryptHasher struct {
	cost int
}

func New(cfg *config.Config) Hasher {
	return NewWithCost(cfg.Security.HashCost)
}

func NewWithCost(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}

	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) hash(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(value), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingValue, err)
	}

	return string(bytes), nil
}

func (h *bcryptHasher) HashName(name string) (string, error) {
	return h.hash(name)
}

func (h *bcryptHasher) HashPhone(phone string) (string, error) {
	return h.hash(phone)
}

func (h *bcryptHasher) HashEmail(email string) (string, error) {
	return h.hash(email)
}

// HashPhonePartial hashes everything but the last four digits and appends them
// in clear, so staff can disambiguate callers without storing the number.
func (h *bcryptHasher) HashPhonePartial(phone string) (string, error) {
	digits := nonDigit.ReplaceAllString(phone, "")
	if len(digits) < visibleDigits {
		return h.hash(phone)
	}

	hashed, err := h.hash(digits[:len(digits)-visibleDigits])
	if err != nil || hashed == "" {
		return hashed, err
	}

	return hashed + ":" + digits[len(digits)-visibleDigits:], nil
}

func (h *bcryptHasher) Compare(value, hash string) bool {
	if value == "" || hash == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(value)) == nil
}
