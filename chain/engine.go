package chain

import (
	"bytes"
	"fmt"
	"sync"
)

// ConnectKind distinguishes a block that extended the best chain from one
// that only extended a side chain, per spec §4.7/§4.8.
type ConnectKind int

const (
	// BestChain marks a block connected to (or replayed onto) the current
	// best chain.
	BestChain ConnectKind = iota
	// SideChain marks a block that extends a chain other than the current
	// best chain.
	SideChain
)

// BlockListener receives chain-engine notifications. The wallet is the
// production implementation (spec §4.8 Receive/Disconnect/Connect); it is
// expressed here as an interface so the engine does not depend on the
// wallet package.
type BlockListener interface {
	// Connect notifies the listener that block has been connected with
	// the given kind (BestChain or SideChain).
	Connect(block *Block, kind ConnectKind)

	// Disconnect notifies the listener that block has been removed from
	// the best chain during a reorganization.
	Disconnect(block *Block)
}

// Engine is the block-chain engine: header/PoW/difficulty verification,
// fork detection, and reorganization, per spec §4.7.
type Engine struct {
	mu       sync.Mutex
	store    BlockStore
	params   NetworkParams
	listener BlockListener

	// orphans maps a missing parent hash to blocks waiting on it.
	orphans map[string][]*Block
}

// NewEngine creates a chain engine over store using params for difficulty
// validation. listener may be nil if no one needs notifications.
func NewEngine(store BlockStore, params NetworkParams, listener BlockListener) *Engine {
	return &Engine{
		store:    store,
		params:   params,
		listener: listener,
		orphans:  make(map[string][]*Block),
	}
}

// Genesis seeds the store with block as height 0 and makes it the chain
// head. It bypasses the usual parent lookup since a genesis block
// references no prior block.
func (e *Engine) Genesis(block *Block) error {
	if block == nil || block.Header == nil {
		return fmt.Errorf("%w: genesis block", ErrNilParam)
	}
	if len(block.Header.Hash) == 0 {
		block.Header.Hash = ComputeHeaderHash(block.Header)
	}

	sb := &StoredBlock{
		Header:    block.Header,
		ChainWork: WorkForTarget(block.Header.Bits),
		Height:    0,
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.SetChainHead(sb)
}

// Add implements spec §4.7's public add(Block) -> bool. It returns true
// if the block extended a chain (best or side) or was already known,
// false if it is an orphan (its parent is unknown — orphans are accepted
// but not stored). A non-nil error means a verification failure; the
// chain and store are left unchanged in that case.
func (e *Engine) Add(block *Block) (bool, error) {
	if block == nil || block.Header == nil {
		return false, fmt.Errorf("%w: block", ErrNilParam)
	}
	if len(block.Header.Hash) == 0 {
		block.Header.Hash = ComputeHeaderHash(block.Header)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.add(block)
}

func (e *Engine) add(block *Block) (bool, error) {
	if _, err := e.store.Get(block.Header.Hash); err == nil {
		return true, nil // idempotent
	}

	if err := block.Verify(e.params); err != nil {
		return false, err
	}

	prev, err := e.store.Get(block.Header.PrevBlock)
	if err != nil {
		e.orphans[hashKey(block.Header.PrevBlock)] = append(e.orphans[hashKey(block.Header.PrevBlock)], block)
		return false, nil
	}

	newStored := prev.Build(block.Header)
	newStored.Header.Height = newStored.Height

	if err := e.checkDifficulty(prev, newStored); err != nil {
		return false, err
	}

	if err := e.store.Put(newStored); err != nil {
		return false, err
	}

	currentHead, err := e.store.GetChainHead()
	if err != nil {
		// No head yet: treat this as establishing the chain.
		if err := e.store.SetChainHead(newStored); err != nil {
			return false, err
		}
		e.notifyConnect(block, BestChain)
	} else if bytes.Equal(prev.Header.Hash, currentHead.Header.Hash) {
		if err := e.store.SetChainHead(newStored); err != nil {
			return false, err
		}
		e.notifyConnect(block, BestChain)
	} else if newStored.ChainWork.Cmp(currentHead.ChainWork) > 0 {
		if err := e.reorganize(currentHead, newStored); err != nil {
			return false, err
		}
	} else {
		e.notifyConnect(block, SideChain)
	}

	e.connectOrphans(block.Header.Hash)

	return true, nil
}

// checkDifficulty validates the retarget rule in spec §4.7 step 5: at a
// retarget boundary the new block's bits must equal the windowed-average
// recomputation; elsewhere bits must be unchanged from prev.
func (e *Engine) checkDifficulty(prev, newStored *StoredBlock) error {
	if !IsRetargetBoundary(newStored.Height, e.params) {
		if newStored.Header.Bits != prev.Header.Bits {
			return fmt.Errorf("%w: unexpected change in difficulty", ErrBadDifficulty)
		}
		return nil
	}

	windowStart, err := e.ancestorAt(prev, e.params.Interval-1)
	if err != nil {
		return err
	}

	expected := ComputeRetarget(prev.Header.Bits, windowStart.Header.Timestamp, newStored.Header.Timestamp, e.params)
	if newStored.Header.Bits != expected {
		return fmt.Errorf("%w: unexpected change in difficulty", ErrBadDifficulty)
	}
	return nil
}

// ancestorAt walks back steps blocks from start via PrevBlock pointers.
func (e *Engine) ancestorAt(start *StoredBlock, steps uint32) (*StoredBlock, error) {
	cur := start
	for i := uint32(0); i < steps; i++ {
		parent, err := e.store.Get(cur.Header.PrevBlock)
		if err != nil {
			return nil, fmt.Errorf("%w: retarget window", ErrUnknownHeader)
		}
		cur = parent
	}
	return cur, nil
}

// reorganize performs the branch-swap in spec §4.7.1: find the common
// ancestor of oldHead and newHead, disconnect the old branch tip-to-fork,
// connect the new branch fork-to-tip, then move the chain-head pointer.
func (e *Engine) reorganize(oldHead, newHead *StoredBlock) error {
	oldBranch, newBranch, err := e.divergentBranches(oldHead, newHead)
	if err != nil {
		return err
	}

	for i := len(oldBranch) - 1; i >= 0; i-- {
		e.notifyDisconnect(oldBranch[i])
	}
	for _, sb := range newBranch {
		e.notifyConnect(&Block{Header: sb.Header}, BestChain)
	}

	return e.store.SetChainHead(newHead)
}

// divergentBranches walks both chains back to their common ancestor,
// returning oldBranch ordered fork+1..oldHead and newBranch ordered
// fork+1..newHead.
func (e *Engine) divergentBranches(oldHead, newHead *StoredBlock) (oldBranch, newBranch []*StoredBlock, err error) {
	oldChain, err := e.collectToGenesis(oldHead)
	if err != nil {
		return nil, nil, err
	}
	newChain, err := e.collectToGenesis(newHead)
	if err != nil {
		return nil, nil, err
	}

	oldSeen := make(map[string]int, len(oldChain))
	for i, sb := range oldChain {
		oldSeen[hashKey(sb.Header.Hash)] = i
	}

	forkIdxInNew := -1
	forkIdxInOld := -1
	for i, sb := range newChain {
		if idx, ok := oldSeen[hashKey(sb.Header.Hash)]; ok {
			forkIdxInNew = i
			forkIdxInOld = idx
			break
		}
	}
	if forkIdxInNew < 0 {
		return nil, nil, fmt.Errorf("%w: no common ancestor", ErrChainBroken)
	}

	// oldChain/newChain are ordered tip-first; reverse the fork+1..tip
	// slices of both to get fork-to-tip order.
	oldTail := oldChain[:forkIdxInOld]
	for i := len(oldTail) - 1; i >= 0; i-- {
		oldBranch = append(oldBranch, oldTail[i])
	}
	newTail := newChain[:forkIdxInNew]
	for i := len(newTail) - 1; i >= 0; i-- {
		newBranch = append(newBranch, newTail[i])
	}

	return oldBranch, newBranch, nil
}

// collectToGenesis walks back-pointers from head to height 0, returning
// the chain tip-first.
func (e *Engine) collectToGenesis(head *StoredBlock) ([]*StoredBlock, error) {
	chain := []*StoredBlock{head}
	cur := head
	for cur.Height > 0 {
		parent, err := e.store.Get(cur.Header.PrevBlock)
		if err != nil {
			return nil, fmt.Errorf("%w: ancestor walk", ErrUnknownHeader)
		}
		chain = append(chain, parent)
		cur = parent
	}
	return chain, nil
}

// connectOrphans attempts to connect any block waiting on parentHash,
// tail-recursively (spec §4.7 step 8).
func (e *Engine) connectOrphans(parentHash []byte) {
	key := hashKey(parentHash)
	waiting := e.orphans[key]
	if len(waiting) == 0 {
		return
	}
	delete(e.orphans, key)

	for _, orphan := range waiting {
		// Errors connecting a previously-orphaned block are not
		// propagated: the original Add call already succeeded for its
		// own block, and a now-invalid orphan is simply dropped.
		_, _ = e.add(orphan)
	}
}

func (e *Engine) notifyConnect(block *Block, kind ConnectKind) {
	if e.listener != nil {
		e.listener.Connect(block, kind)
	}
}

func (e *Engine) notifyDisconnect(sb *StoredBlock) {
	if e.listener != nil {
		e.listener.Disconnect(&Block{Header: sb.Header})
	}
}
