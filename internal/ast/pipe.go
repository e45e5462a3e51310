package ast

import "fmt"

// DesugarPipe folds a pipe chain into the FuncCall it denotes, per
// spec.md §4.2's shared pipe-desugaring utility: for each step vk, if vk
// is an Ident, the result is Call(name=vk, args=[prev]); if vk is a
// FuncCall(name, args), the result is Call(name, args++[prev]). The
// checker and both backends call this so pipe semantics are defined in
// exactly one place.
//
// A chain with no further links (head.Next == nil) isn't actually a pipe;
// DesugarPipe returns head.Value unchanged.
func DesugarPipe(head *PipeOp) (Node, error) {
	if head.Next == nil {
		return head.Value, nil
	}
	prev := head.Value
	link := head.Next
	for link != nil {
		next, err := desugarStep(prev, link.Value)
		if err != nil {
			return nil, err
		}
		prev = next
		link = link.Next
	}
	return prev, nil
}

func desugarStep(prev, target Node) (Node, error) {
	switch t := target.(type) {
	case *Ident:
		return NewFuncCall(t.Pos(), t.Name, []Node{prev}), nil
	case *FuncCall:
		args := make([]Node, 0, len(t.Args)+1)
		args = append(args, t.Args...)
		args = append(args, prev)
		return NewFuncCall(t.Pos(), t.Name, args), nil
	default:
		return nil, fmt.Errorf("%s: invalid pipe target: expected an identifier or call", target.Pos())
	}
}
