package flow

import (
	"github.com/vango-dev/declarative/internal/errors"
	"github.com/vango-dev/declarative/pkg/reactive"
	"github.com/vango-dev/declarative/pkg/vdom"
)

// ErrMalformedBranchSet matches errors returned for invalid If block lists.
var ErrMalformedBranchSet = errors.New("D002")

type blockKind uint8

const (
	blockThen blockKind = iota + 1
	blockElseIf
	blockElse
)

func (k blockKind) String() string {
	switch k {
	case blockThen:
		return "Then"
	case blockElseIf:
		return "ElseIf"
	case blockElse:
		return "Else"
	default:
		return "unknown"
	}
}

// Block is one branch of an If: Then, ElseIf or Else.
type Block struct {
	kind   blockKind
	cond   reactive.Reader[bool]
	render Renderer
}

// Then is shown when the If condition is true. It must be the first block.
func Then(render Renderer) Block {
	return Block{kind: blockThen, render: render}
}

// ElseIf is shown when the If condition and every earlier ElseIf are false
// and cond is true. The condition is memoized.
func ElseIf(cond reactive.Reader[bool], render Renderer) Block {
	b := Block{kind: blockElseIf, render: render}
	if cond != nil {
		b.cond = reactive.NewMemo(cond.Get)
	}
	return b
}

// Else is shown when every condition is false. It must be the last block.
func Else(render Renderer) Block {
	return Block{kind: blockElse, render: render}
}

// If renders exactly one of its blocks. It implements vdom.Component.
type If struct {
	selector

	cond   *reactive.Memo[bool]
	blocks []Block
}

// NewIf builds an If. The block list must hold exactly one Then as its first
// element and at most one Else as its last; otherwise the returned error
// matches ErrMalformedBranchSet.
func NewIf(cond reactive.Reader[bool], blocks []Block, opts ...Option) (*If, error) {
	if cond == nil {
		return nil, errors.New("D002").WithDetail("If has no condition")
	}
	if err := validateBlocks(blocks); err != nil {
		return nil, err
	}
	b := &If{
		selector: newSelector(buildOptions("if", opts)),
		cond:     reactive.NewMemo(cond.Get),
		blocks:   append([]Block(nil), blocks...),
	}
	reactive.OnCleanup(b.release)
	return b, nil
}

// release runs when the owner the If was built under is disposed. It drops
// the active block's owner and the condition subscriptions.
func (b *If) release() {
	b.dropScope()
	b.cond.Dispose()
	for _, blk := range b.blocks {
		if m, ok := blk.cond.(*reactive.Memo[bool]); ok {
			m.Dispose()
		}
	}
}

// MustIf is NewIf taking blocks variadically. It panics on a malformed
// block list.
func MustIf(cond reactive.Reader[bool], blocks ...Block) *If {
	b, err := NewIf(cond, blocks)
	if err != nil {
		panic(err)
	}
	return b
}

// Show is an If with a Then block and, when fallback is non-nil, an Else.
func Show(cond reactive.Reader[bool], render, fallback Renderer, opts ...Option) *If {
	blocks := []Block{Then(render)}
	if fallback != nil {
		blocks = append(blocks, Else(fallback))
	}
	b, err := NewIf(cond, blocks, append([]Option{WithName("show")}, opts...)...)
	if err != nil {
		// Then + optional Else is always well formed; only a nil cond fails.
		panic(err)
	}
	return b
}

func validateBlocks(blocks []Block) error {
	if len(blocks) == 0 {
		return errors.New("D002").WithDetail("If needs a Then block")
	}
	if blocks[0].kind != blockThen {
		return errors.New("D002").WithDetailf("Then must be the first block, found %s", blocks[0].kind)
	}

	thens, elses := 0, 0
	for i, b := range blocks {
		switch b.kind {
		case blockThen:
			thens++
		case blockElseIf:
			if b.cond == nil {
				return errors.New("D002").WithDetailf("ElseIf at position %d has no condition", i)
			}
		case blockElse:
			elses++
			if i != len(blocks)-1 {
				return errors.New("D002").WithDetailf("Else must be the last block, found at position %d of %d", i, len(blocks))
			}
		default:
			return errors.New("D002").WithDetailf("block at position %d is not a Then, ElseIf or Else", i)
		}
	}
	if thens > 1 {
		return errors.New("D002").WithDetailf("only one Then block is allowed, found %d", thens)
	}
	if elses > 1 {
		return errors.New("D002").WithDetailf("only one Else block is allowed, found %d", elses)
	}
	return nil
}

// Render selects the active block and returns its content.
func (b *If) Render() *vdom.VNode {
	// Every ElseIf is read so the caller subscribes to all of them.
	truth := make([]bool, len(b.blocks))
	for i, blk := range b.blocks {
		if blk.kind == blockElseIf {
			truth[i] = blk.cond.Get()
		}
	}

	idx := -1
	if b.cond.Get() {
		idx = 0
	} else {
		for i, blk := range b.blocks[1:] {
			if blk.kind == blockElse || truth[i+1] {
				idx = i + 1
				break
			}
		}
	}

	var render Renderer
	if idx >= 0 {
		render = b.blocks[idx].render
	}
	return b.pick(idx, render)
}

var _ vdom.Component = (*If)(nil)
