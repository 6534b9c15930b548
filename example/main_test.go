package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/blind-sig/pkg/blind"
	"github.com/taurusgroup/blind-sig/pkg/protocol"
)

func TestRun(t *testing.T) {
	require.NoError(t, run(zerolog.Nop()))
}

func TestCollect(t *testing.T) {
	scheme := blind.NewScheme(blind.Config{})
	key, err := scheme.GenerateKeyPair()
	require.NoError(t, err)
	signer := protocol.NewSigner(scheme, key)

	items, err := collect(context.Background(), scheme, signer, []string{"a", "b"}, zerolog.Nop())
	require.NoError(t, err)
	valid, err := scheme.VerifyBatch(nil, items)
	require.NoError(t, err)
	assert.True(t, blind.AllValid(valid))
	assert.Equal(t, 0, signer.Pending())
}

func TestCollect_SignerFailure(t *testing.T) {
	scheme := blind.NewScheme(blind.Config{})
	key, err := scheme.GenerateKeyPair()
	require.NoError(t, err)
	// the signer cannot draw nonces, so its first Commit fails
	broken := blind.NewScheme(blind.Config{Rand: bytes.NewReader(nil)})
	signer := protocol.NewSigner(broken, key)

	_, err = collect(context.Background(), scheme, signer, []string{"a", "b", "c"}, zerolog.Nop())
	require.Error(t, err)
	assert.NotErrorIs(t, err, context.Canceled)
}

func TestRunRequester_Cancelled(t *testing.T) {
	scheme := blind.NewScheme(blind.Config{})
	key, err := scheme.GenerateKeyPair()
	require.NoError(t, err)
	signer := protocol.NewSigner(scheme, key)

	// nobody answers on this network
	n := NewNetwork("a", signerID)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runRequester(ctx, "a", n, scheme, signer, []byte("test"), zerolog.Nop())
	assert.ErrorIs(t, err, context.Canceled)
}
