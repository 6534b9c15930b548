package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/taurusgroup/blind-sig/pkg/blind"
	"github.com/taurusgroup/blind-sig/pkg/pool"
	"github.com/taurusgroup/blind-sig/pkg/protocol"
)

const requesters = 4

func main() {
	log := zerolog.New(zerolog.NewConsoleWriter()).Level(zerolog.DebugLevel).With().
		Timestamp().
		Str("protocol", "blind-sig").
		Logger()
	if err := run(log); err != nil {
		log.Error().Err(err).Msg("failed")
		os.Exit(1)
	}
}

func run(log zerolog.Logger) error {
	scheme := blind.NewScheme(blind.Config{Rand: pool.NewLockedReader(rand.Reader)})
	key, err := scheme.GenerateKeyPair()
	if err != nil {
		return err
	}
	signer := protocol.NewSigner(scheme, key)
	signer.Log = log.With().Str("party", signerID).Logger()

	ids := make([]string, requesters)
	for i := range ids {
		ids[i] = fmt.Sprintf("requester-%d", i)
	}
	items, err := collect(context.Background(), scheme, signer, ids, log)
	if err != nil {
		return err
	}

	pl := pool.NewPool(0)
	defer pl.TearDown()
	valid, err := scheme.VerifyBatch(pl, items)
	if err != nil {
		return err
	}
	if !blind.AllValid(valid) {
		return fmt.Errorf("batch verification failed: %v", valid)
	}
	for _, item := range items {
		encoded, err := item.Signature.MarshalBinary()
		if err != nil {
			return err
		}
		log.Info().Bytes("message", item.Message).Hex("signature", encoded).Msg("verified")
	}
	return nil
}
