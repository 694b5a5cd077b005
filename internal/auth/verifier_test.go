package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

type verifierFunc func(ctx context.Context, token string) (Principal, error)

func (f verifierFunc) Verify(ctx context.Context, token string) (Principal, error) {
	return f(ctx, token)
}

func fakeGoogle(clientID string, payload *idtoken.Payload, err error) *GoogleVerifier {
	return &GoogleVerifier{
		clientID: clientID,
		validate: func(_ context.Context, _, audience string) (*idtoken.Payload, error) {
			if audience != clientID {
				return nil, errors.New("audience mismatch")
			}
			return payload, err
		},
	}
}

func TestLocalVerifier(t *testing.T) {
	tm := NewTokenMaker("s3cret")
	tok, err := tm.New("alan@test.com", "Alan", time.Hour)
	require.NoError(t, err)

	p, err := LocalVerifier{Tokens: tm}.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, Principal{Key: "local:alan@test.com", Email: "alan@test.com", Username: "Alan", Provider: ProviderLocal}, p)
}

func TestGoogleVerifier(t *testing.T) {
	payload := &idtoken.Payload{
		Subject: "10987",
		Claims:  map[string]any{"email": "fan@gmail.com"},
	}

	p, err := fakeGoogle("client-1", payload, nil).Verify(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, "google:10987", p.Key)
	assert.Equal(t, "fan", p.Username, "username falls back to the email local part")
	assert.Equal(t, ProviderGoogle, p.Provider)

	_, err = fakeGoogle("client-1", nil, errors.New("bad signature")).Verify(context.Background(), "id-token")
	assert.Error(t, err)

	_, err = fakeGoogle("client-1", &idtoken.Payload{}, nil).Verify(context.Background(), "id-token")
	assert.Error(t, err)

	_, err = NewGoogleVerifier("").Verify(context.Background(), "id-token")
	assert.Error(t, err)
}

func TestChain_FirstSuccessWins(t *testing.T) {
	var calls []string
	reject := verifierFunc(func(context.Context, string) (Principal, error) {
		calls = append(calls, "reject")
		return Principal{}, errors.New("nope")
	})
	accept := func(key string) Verifier {
		return verifierFunc(func(context.Context, string) (Principal, error) {
			calls = append(calls, key)
			return Principal{Key: key}, nil
		})
	}

	p, err := Chain{reject, accept("second"), accept("third")}.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "second", p.Key)
	assert.Equal(t, []string{"reject", "second"}, calls)

	_, err = Chain{reject, reject}.Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = Chain{}.Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestChain_LocalThenGoogle(t *testing.T) {
	tm := NewTokenMaker("s3cret")
	chain := Chain{
		LocalVerifier{Tokens: tm},
		fakeGoogle("client-1", &idtoken.Payload{Subject: "77", Claims: map[string]any{"name": "Fan", "email": "fan@gmail.com"}}, nil),
	}

	local, err := tm.New("demo@test.com", "Admin", time.Hour)
	require.NoError(t, err)

	p, err := chain.Verify(context.Background(), local)
	require.NoError(t, err)
	assert.Equal(t, "local:demo@test.com", p.Key)

	p, err = chain.Verify(context.Background(), "google-id-token")
	require.NoError(t, err)
	assert.Equal(t, "google:77", p.Key)
	assert.Equal(t, "Fan", p.Username)
}
