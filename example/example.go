package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/taurusgroup/blind-sig/pkg/blind"
	"github.com/taurusgroup/blind-sig/pkg/protocol"
	"golang.org/x/sync/errgroup"
)

const signerID = "signer"

// runSigner answers requesters until ctx is done.
func runSigner(ctx context.Context, n Network, signer *protocol.Signer) error {
	for {
		var data []byte
		select {
		case <-ctx.Done():
			return nil
		case data = <-n.Next(signerID):
		}
		in, err := receive(data)
		if err != nil {
			return err
		}
		out := envelope{From: signerID, To: in.From}
		switch in.Kind {
		case kindHello:
			commitment, err := signer.Commit()
			if err != nil {
				return err
			}
			if out.Payload, err = protocol.Encode(commitment); err != nil {
				return err
			}
			out.Kind = kindCommitment
		case kindRequest:
			var request protocol.BlindedRequestMessage
			if err = protocol.Decode(in.Payload, &request); err != nil {
				return err
			}
			answer, err := signer.Sign(&request)
			if err != nil {
				return err
			}
			if out.Payload, err = protocol.Encode(answer); err != nil {
				return err
			}
			out.Kind = kindSignature
		default:
			return fmt.Errorf("signer: unexpected message kind %d from %s", in.Kind, in.From)
		}
		if err = send(n, out); err != nil {
			return err
		}
	}
}

// next waits for the next envelope addressed to id.
func next(ctx context.Context, n Network, id string) (envelope, error) {
	select {
	case <-ctx.Done():
		return envelope{}, ctx.Err()
	case data := <-n.Next(id):
		return receive(data)
	}
}

// runRequester obtains a blind signature on message.
//
// It gives up when ctx is done, which happens when the signer stops.
func runRequester(ctx context.Context, id string, n Network, scheme *blind.Scheme, signer *protocol.Signer, message []byte, log zerolog.Logger) (blind.Signature, error) {
	if err := send(n, envelope{From: id, To: signerID, Kind: kindHello}); err != nil {
		return blind.Signature{}, err
	}
	in, err := next(ctx, n, id)
	if err != nil {
		return blind.Signature{}, err
	}
	var commitment protocol.CommitmentMessage
	if err = protocol.Decode(in.Payload, &commitment); err != nil {
		return blind.Signature{}, err
	}

	requester, err := protocol.NewRequester(scheme, signer.PublicKey(), &commitment, message)
	if err != nil {
		return blind.Signature{}, err
	}
	requester.Log = log.With().Str("party", id).Logger()

	request, err := requester.Blind()
	if err != nil {
		return blind.Signature{}, err
	}
	payload, err := protocol.Encode(request)
	if err != nil {
		return blind.Signature{}, err
	}
	if err = send(n, envelope{From: id, To: signerID, Kind: kindRequest, Payload: payload}); err != nil {
		return blind.Signature{}, err
	}

	if in, err = next(ctx, n, id); err != nil {
		return blind.Signature{}, err
	}
	var answer protocol.BlindSignatureMessage
	if err = protocol.Decode(in.Payload, &answer); err != nil {
		return blind.Signature{}, err
	}
	return requester.Finalize(&answer)
}

// collect runs the signer and one requester per id, and returns the signatures.
//
// The first error from either side stops all of them.
func collect(ctx context.Context, scheme *blind.Scheme, signer *protocol.Signer, ids []string, log zerolog.Logger) ([]blind.BatchItem, error) {
	n := NewNetwork(append(append([]string(nil), ids...), signerID)...)

	g, ctx := errgroup.WithContext(ctx)
	signerCtx, stopSigner := context.WithCancel(ctx)
	defer stopSigner()
	g.Go(func() error {
		return runSigner(signerCtx, n, signer)
	})

	items := make([]blind.BatchItem, len(ids))
	requesters, requesterCtx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		requesters.Go(func() error {
			message := []byte("vote from " + id)
			sig, err := runRequester(requesterCtx, id, n, scheme, signer, message, log)
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			items[i] = blind.BatchItem{Signature: sig, Message: message, PublicKey: signer.PublicKey()}
			return nil
		})
	}
	g.Go(func() error {
		defer stopSigner()
		return requesters.Wait()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}
