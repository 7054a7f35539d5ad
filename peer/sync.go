package peer

import (
	"fmt"

	"github.com/bitfsorg/spvpeer-go/chain"
	"github.com/bitfsorg/spvpeer-go/wire"
)

// Syncer drives header/block download against one peer: it requests
// blocks beyond the local chain head and feeds whatever arrives into the
// chain engine, which in turn drives wallet notifications (spec §4.7/§4.8).
type Syncer struct {
	engine *chain.Engine
	store  chain.BlockStore

	progress ProgressListener
}

// ProgressListener is notified as blocks are downloaded and connected,
// mirroring the chain-download subscription point named in spec §9.
type ProgressListener interface {
	ChainDownloadProgress(height, bestHeight uint32)
}

// NewSyncer builds a Syncer over engine and the BlockStore it was
// constructed with — the two share state so the syncer can read the
// current chain head without engine exposing its internals.
func NewSyncer(engine *chain.Engine, store chain.BlockStore) *Syncer {
	return &Syncer{engine: engine, store: store}
}

// SetProgressListener registers the listener notified after each block
// this syncer connects.
func (s *Syncer) SetProgressListener(l ProgressListener) { s.progress = l }

// Start requests everything the peer has beyond our chain head.
func (s *Syncer) Start(p *Peer) error {
	locator, err := s.locator()
	if err != nil {
		return err
	}
	return p.SendGetBlocks(locator)
}

// locator builds a getblocks locator from the current chain head. This
// client keeps a single header store with no branch pruning, so a
// one-hash locator (the tip) is sufficient — the peer walks its own best
// chain forward from the first locator hash it recognizes.
func (s *Syncer) locator() (wire.GetBlocksMessage, error) {
	head, err := s.store.GetChainHead()
	if err != nil {
		return wire.GetBlocksMessage{}, fmt.Errorf("peer: locator: %w", err)
	}
	return wire.GetBlocksMessage{
		Version:       uint32(ProtocolVersion),
		LocatorHashes: [][]byte{head.Header.Hash},
		HashStop:      make([]byte, chain.HashSize),
	}, nil
}

// Handle is a peer.Handler: it dispatches "inv" (fetching announced
// blocks), "block" (feeding them to the chain engine), and ignores
// everything else. Unknown commands are, per spec §4.2, not errors.
func (s *Syncer) Handle(p *Peer, msg wire.Message) {
	switch msg.Command {
	case "inv":
		s.handleInv(p, msg)
	case "block":
		s.handleBlock(p, msg)
	default:
		_ = wire.AsUnknown(msg)
	}
}

func (s *Syncer) handleInv(p *Peer, msg wire.Message) {
	inv, err := wire.DecodeInvMessage(msg.Payload)
	if err != nil {
		return
	}
	var want []wire.InvVect
	for _, item := range inv.Items {
		if item.Type == wire.InvTypeBlock {
			want = append(want, item)
		}
	}
	if len(want) > 0 {
		_ = p.SendGetData(want)
	}
}

func (s *Syncer) handleBlock(p *Peer, msg wire.Message) {
	block, err := chain.DeserializeBlock(msg.Payload)
	if err != nil {
		return
	}

	connected, err := s.engine.Add(block)
	if err != nil || !connected {
		return
	}

	if s.progress != nil {
		head, err := s.store.GetChainHead()
		if err == nil {
			sb, err := s.store.Get(block.Header.Hash)
			if err == nil {
				s.progress.ChainDownloadProgress(sb.Height, head.Height)
			}
		}
	}
}
