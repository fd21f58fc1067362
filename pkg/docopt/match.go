package docopt

// match reconciles the still-unconsumed argv leaves in left against this
// node. It returns whether the node matched, the leaves left over, and the
// leaves collected so far. A failed match returns the inputs untouched.
func (p *Pattern) match(left, collected []*Pattern) (bool, []*Pattern, []*Pattern) {
	switch p.Kind {
	case KindRequired:
		return p.matchRequired(left, collected)
	case KindOptional, KindOptionsShortcut:
		return p.matchOptional(left, collected)
	case KindOneOrMore:
		return p.matchOneOrMore(left, collected)
	case KindEither:
		return p.matchEither(left, collected)
	default:
		return p.matchLeaf(left, collected)
	}
}

func (p *Pattern) matchRequired(left, collected []*Pattern) (bool, []*Pattern, []*Pattern) {
	l, c := left, collected
	for _, child := range p.Children {
		var ok bool
		ok, l, c = child.match(l, c)
		if !ok {
			return false, left, collected
		}
	}
	return true, l, c
}

func (p *Pattern) matchOptional(left, collected []*Pattern) (bool, []*Pattern, []*Pattern) {
	for _, child := range p.Children {
		_, left, collected = child.match(left, collected)
	}
	return true, left, collected
}

func (p *Pattern) matchOneOrMore(left, collected []*Pattern) (bool, []*Pattern, []*Pattern) {
	l, c := left, collected
	times := 0
	prev := -1
	for {
		var ok bool
		ok, l, c = p.Children[0].match(l, c)
		if ok {
			times++
		}
		// stop once an iteration makes no progress
		if prev == len(l) {
			break
		}
		prev = len(l)
		if !ok {
			break
		}
	}
	if times >= 1 {
		return true, l, c
	}
	return false, left, collected
}

// matchEither tries every alternative against the original state and keeps
// the one that leaves the fewest tokens unconsumed. Ties go to the
// earliest alternative, which keeps matching deterministic.
func (p *Pattern) matchEither(left, collected []*Pattern) (bool, []*Pattern, []*Pattern) {
	found := false
	var bestLeft, bestCollected []*Pattern
	best := -1
	for _, child := range p.Children {
		ok, l, c := child.match(left, collected)
		if !ok {
			continue
		}
		if !found || len(l) < best {
			found = true
			best = len(l)
			bestLeft, bestCollected = l, c
		}
	}
	if !found {
		return false, left, collected
	}
	return true, bestLeft, bestCollected
}

func (p *Pattern) matchLeaf(left, collected []*Pattern) (bool, []*Pattern, []*Pattern) {
	pos, match := p.singleMatch(left)
	if match == nil {
		return false, left, collected
	}
	rest := make([]*Pattern, 0, len(left)-1)
	rest = append(rest, left[:pos]...)
	rest = append(rest, left[pos+1:]...)

	var sameName *Pattern
	for _, c := range collected {
		if c.Name == p.Name {
			sameName = c
			break
		}
	}

	switch p.Value.Kind() {
	case IntKind:
		if sameName == nil {
			match.Value = IntValue(1)
			return true, rest, appendCollected(collected, match)
		}
		sameName.Value = IntValue(sameName.Value.Int() + 1)
		return true, rest, collected
	case ListKind:
		var increment Value
		if match.Value.Kind() == StringKind {
			increment = ListValue(match.Value)
		} else {
			increment = match.Value
		}
		if sameName == nil {
			match.Value = increment
			return true, rest, appendCollected(collected, match)
		}
		sameName.Value = ListValue(append(sameName.Value.List(), increment.List()...)...)
		return true, rest, collected
	}
	return true, rest, appendCollected(collected, match)
}

// singleMatch scans left for the first leaf this pattern can consume,
// returning its index and the leaf to collect, or (-1, nil) on a miss.
func (p *Pattern) singleMatch(left []*Pattern) (int, *Pattern) {
	switch p.Kind {
	case KindArgument:
		for i, l := range left {
			if l.Kind == KindArgument {
				return i, NewArgument(p.Name, l.Value)
			}
		}
	case KindCommand:
		// only the first positional is considered; a mismatch there is
		// final, not an invitation to look further
		for i, l := range left {
			if l.Kind == KindArgument {
				if l.Value.Kind() == StringKind && l.Value.Str() == p.Name {
					return i, NewCommand(p.Name, BoolValue(true))
				}
				break
			}
		}
	case KindOption:
		for i, l := range left {
			if l.Name == p.Name {
				return i, l
			}
		}
	}
	return -1, nil
}

func appendCollected(collected []*Pattern, match *Pattern) []*Pattern {
	result := make([]*Pattern, 0, len(collected)+1)
	result = append(result, collected...)
	return append(result, match)
}
