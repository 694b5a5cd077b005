package auth

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/api/idtoken"
)

type validateFunc func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// GoogleVerifier accepts Google-signed ID tokens issued for ClientID.
type GoogleVerifier struct {
	clientID string
	validate validateFunc
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID, validate: idtoken.Validate}
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string) (Principal, error) {
	if v.clientID == "" {
		return Principal{}, errors.New("google sign-in not configured")
	}

	payload, err := v.validate(ctx, token, v.clientID)
	if err != nil {
		return Principal{}, err
	}
	if payload.Subject == "" {
		return Principal{}, errors.New("google token without subject")
	}

	email, _ := payload.Claims["email"].(string)
	username, _ := payload.Claims["name"].(string)
	if username == "" {
		username, _, _ = strings.Cut(email, "@")
	}

	return Principal{
		Key:      ProviderGoogle + ":" + payload.Subject,
		Email:    email,
		Username: username,
		Provider: ProviderGoogle,
	}, nil
}
