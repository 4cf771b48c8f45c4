package credential

import (
	"classroom/biz/infrastructure/consts"
	"context"

	"golang.org/x/crypto/bcrypt"
)

type BcryptVerifier struct {
	cost int
}

func NewBcryptVerifier(cost int) *BcryptVerifier {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptVerifier{cost: cost}
}

func (v *BcryptVerifier) Hash(_ context.Context, password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (v *BcryptVerifier) Verify(_ context.Context, _, password, storedHash string) error {
	if storedHash == "" {
		return consts.ErrSignIn
	}
	if bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) != nil {
		return consts.ErrSignIn
	}
	return nil
}
