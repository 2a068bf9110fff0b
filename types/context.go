package types

// Context holds the memo tables of emptiness checks for structural types.
// A Context must only be used by one goroutine at a time, and must be
// discarded if a query on it panics
type Context struct {
	env          *Env
	listMemo     bddMemoTable
	mappingMemo  bddMemoTable
	functionMemo bddMemoTable
	// memoStack holds the memos of the checks in progress, outermost first
	memoStack []*bddMemo
}

func NewContext(env *Env) *Context {
	return &Context{
		env:          env,
		listMemo:     make(bddMemoTable),
		mappingMemo:  make(bddMemoTable),
		functionMemo: make(bddMemoTable),
	}
}

func (cx *Context) Env() *Env { return cx.env }

type memoStatus uint8

const (
	// memoNull means the result is unknown and must be computed
	memoNull memoStatus = iota
	// memoProvisional means the check is in progress: meeting it again is a
	// cycle, which is assumed empty
	memoProvisional
	// memoTentative means the check found the bdd empty while assuming some
	// enclosing check in progress was empty
	memoTentative
	memoEmpty
	memoNonEmpty
)

type bddMemo struct {
	bdd    bdd
	status memoStatus
}

type bddMemoTable map[uint64][]*bddMemo

func (t bddMemoTable) get(b bdd) *bddMemo {
	for _, m := range t[b.bddHash()] {
		if bddEqual(m.bdd, b) {
			return m
		}
	}
	return nil
}

func (t bddMemoTable) add(b bdd) *bddMemo {
	m := &bddMemo{bdd: b}
	t[b.bddHash()] = append(t[b.bddHash()], m)
	return m
}

// memoSubtypeIsEmpty runs isEmpty on b unless the answer is known.
//
// Types are inductive, so a bdd met again while its own check is in progress
// is assumed empty. A result that relies on that assumption is kept
// tentative until the outermost check finishes: if the check it relied on
// turns out non-empty, tentative results are forgotten
func (cx *Context) memoSubtypeIsEmpty(table bddMemoTable, isEmpty func(*Context, bdd) bool, b bdd) bool {
	m := table.get(b)
	if m == nil {
		m = table.add(b)
	}
	switch m.status {
	case memoProvisional, memoTentative, memoEmpty:
		return true
	case memoNonEmpty:
		return false
	}
	m.status = memoProvisional
	depth := len(cx.memoStack)
	cx.memoStack = append(cx.memoStack, m)
	empty := isEmpty(cx, b)
	if !empty || depth == 0 {
		for _, inner := range cx.memoStack[depth+1:] {
			if inner.status == memoProvisional || inner.status == memoTentative {
				if empty {
					inner.status = memoEmpty
				} else {
					inner.status = memoNull
				}
			}
		}
		cx.memoStack = cx.memoStack[:depth]
	}
	switch {
	case !empty:
		m.status = memoNonEmpty
	case depth == 0:
		m.status = memoEmpty
	default:
		m.status = memoTentative
	}
	return empty
}

func (cx *Context) listAtomType(a atom) *ListAtomicType {
	return cx.env.listAtomType(a)
}

func (cx *Context) mappingAtomType(a atom) *MappingAtomicType {
	return cx.env.mappingAtomType(a)
}

func (cx *Context) functionAtomType(a atom) *FunctionAtomicType {
	return cx.env.functionAtomType(a)
}
