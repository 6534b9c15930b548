package main

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

type kind uint8

const (
	kindHello kind = iota + 1
	kindCommitment
	kindRequest
	kindSignature
)

// envelope is what travels over the network: a session message, already
// encoded, tagged with its sender and kind.
type envelope struct {
	From    string `cbor:"1,keyasint"`
	To      string `cbor:"2,keyasint"`
	Kind    kind   `cbor:"3,keyasint"`
	Payload []byte `cbor:"4,keyasint,omitempty"`
}

// Network delivers encoded envelopes between named parties.
type Network interface {
	Send(to string, data []byte)
	Next(id string) <-chan []byte
}

type chanNetwork struct {
	listenChannels map[string]chan []byte
}

func NewNetwork(ids ...string) Network {
	lc := make(map[string]chan []byte, len(ids))
	for _, id := range ids {
		lc[id] = make(chan []byte, 2*len(ids))
	}
	return &chanNetwork{listenChannels: lc}
}

func (c *chanNetwork) Next(id string) <-chan []byte {
	return c.listenChannels[id]
}

func (c *chanNetwork) Send(to string, data []byte) {
	c.listenChannels[to] <- data
}

func send(n Network, e envelope) error {
	data, err := cbor.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	n.Send(e.To, data)
	return nil
}

func receive(data []byte) (envelope, error) {
	var e envelope
	if err := cbor.Unmarshal(data, &e); err != nil {
		return envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return e, nil
}
