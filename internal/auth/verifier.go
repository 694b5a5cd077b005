package auth

import (
	"context"
	"errors"
)

const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

var ErrInvalidCredential = errors.New("invalid credential")

// Principal is a verified caller. Key is the opaque cart owner id.
type Principal struct {
	Key      string `json:"key"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Provider string `json:"provider"`
}

type Verifier interface {
	Verify(ctx context.Context, token string) (Principal, error)
}

// Chain tries each verifier in order; the first success wins.
type Chain []Verifier

func (c Chain) Verify(ctx context.Context, token string) (Principal, error) {
	for _, v := range c {
		if p, err := v.Verify(ctx, token); err == nil {
			return p, nil
		}
	}
	return Principal{}, ErrInvalidCredential
}

// LocalVerifier accepts tokens issued by this server's /login.
type LocalVerifier struct {
	Tokens *TokenMaker
}

func (v LocalVerifier) Verify(_ context.Context, token string) (Principal, error) {
	c, err := v.Tokens.Parse(token)
	if err != nil {
		return Principal{}, err
	}
	return Principal{
		Key:      ProviderLocal + ":" + c.Email,
		Email:    c.Email,
		Username: c.Username,
		Provider: ProviderLocal,
	}, nil
}
