package types

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/cottand/semtype/internal/log"
	"github.com/cottand/semtype/util"
)

type EnvSettings struct {
	// Logger defaults to log.DefaultLogger
	Logger *slog.Logger
	// DisableVerdictCache makes every IsSubtype query recompute its verdict
	DisableVerdictCache bool
}

// Env owns everything that is shared by the types of one run: the atoms that
// structural types are built from, the table complex types are interned in,
// recursive placeholders and cached subtype verdicts.
//
// An Env is safe for concurrent use. Types from different Envs must not be mixed
type Env struct {
	logger              *slog.Logger
	defineLogger        *slog.Logger
	disableVerdictCache bool

	mu               sync.RWMutex
	listAtoms        []*ListAtomicType
	recListAtoms     []*ListAtomicType
	mappingAtoms     []*MappingAtomicType
	recMappingAtoms  []*MappingAtomicType
	functionAtoms    []*FunctionAtomicType
	recFunctionAtoms []*FunctionAtomicType
	atomTable        map[uint64][]atom
	internTable      map[uint64][]*ComplexSemType

	placeholderMu sync.Mutex
	placeholders  map[string]*placeholder

	// verdicts maps a util.Pair of interned types to the IsSubtype result
	verdicts sync.Map
}

func NewEnv(settings EnvSettings) *Env {
	logger := settings.Logger
	if logger == nil {
		logger = log.DefaultLogger
	}
	return &Env{
		logger:              logger.With("section", "semtype.env"),
		defineLogger:        logger.With("section", "semtype.define"),
		disableVerdictCache: settings.DisableVerdictCache,
		atomTable:           make(map[uint64][]atom),
		internTable:         make(map[uint64][]*ComplexSemType),
		placeholders:        make(map[string]*placeholder),
	}
}

type atomicType[T any] interface {
	hash() uint64
	equal(other T) bool
}

// internAtom returns the atom of t in arena, adding t if no equal atomic type is there yet.
// env.mu must be held for writing
func internAtom[T atomicType[T]](env *Env, kind atomKind, arena *[]T, t T) atom {
	h := t.hash()
	for _, a := range env.atomTable[h] {
		if a.kind == kind && (*arena)[a.index].equal(t) {
			return a
		}
	}
	a := atom{kind: kind, index: len(*arena)}
	*arena = append(*arena, t)
	env.atomTable[h] = append(env.atomTable[h], a)
	env.logger.Debug("new atom", "atom", a, "type", t)
	return a
}

func (env *Env) listAtom(t *ListAtomicType) atom {
	env.mu.Lock()
	defer env.mu.Unlock()
	return internAtom(env, listAtomKind, &env.listAtoms, t)
}

func (env *Env) mappingAtom(t *MappingAtomicType) atom {
	env.mu.Lock()
	defer env.mu.Unlock()
	return internAtom(env, mappingAtomKind, &env.mappingAtoms, t)
}

func (env *Env) functionAtom(t *FunctionAtomicType) atom {
	env.mu.Lock()
	defer env.mu.Unlock()
	return internAtom(env, functionAtomKind, &env.functionAtoms, t)
}

// recAtom reserves a slot for an atomic type that is not known yet
func (env *Env) recAtom(kind atomKind) atom {
	env.mu.Lock()
	defer env.mu.Unlock()
	a := atom{kind: kind, rec: true}
	switch kind {
	case listAtomKind:
		a.index = len(env.recListAtoms)
		env.recListAtoms = append(env.recListAtoms, nil)
	case mappingAtomKind:
		a.index = len(env.recMappingAtoms)
		env.recMappingAtoms = append(env.recMappingAtoms, nil)
	case functionAtomKind:
		a.index = len(env.recFunctionAtoms)
		env.recFunctionAtoms = append(env.recFunctionAtoms, nil)
	}
	return a
}

func (env *Env) setRecListAtomType(a atom, t *ListAtomicType) {
	env.mu.Lock()
	defer env.mu.Unlock()
	env.recListAtoms[a.index] = t
}

func (env *Env) setRecMappingAtomType(a atom, t *MappingAtomicType) {
	env.mu.Lock()
	defer env.mu.Unlock()
	env.recMappingAtoms[a.index] = t
}

func (env *Env) setRecFunctionAtomType(a atom, t *FunctionAtomicType) {
	env.mu.Lock()
	defer env.mu.Unlock()
	env.recFunctionAtoms[a.index] = t
}

func lookupAtom[T any](a atom, atoms, recAtoms []*T) *T {
	if !a.rec {
		return atoms[a.index]
	}
	t := recAtoms[a.index]
	if t == nil {
		panic(fmt.Sprintf("recursive %s type %s used before it was defined", a.kind.code(), a))
	}
	return t
}

func (env *Env) listAtomType(a atom) *ListAtomicType {
	env.mu.RLock()
	defer env.mu.RUnlock()
	return lookupAtom(a, env.listAtoms, env.recListAtoms)
}

func (env *Env) mappingAtomType(a atom) *MappingAtomicType {
	env.mu.RLock()
	defer env.mu.RUnlock()
	return lookupAtom(a, env.mappingAtoms, env.recMappingAtoms)
}

func (env *Env) functionAtomType(a atom) *FunctionAtomicType {
	env.mu.RLock()
	defer env.mu.RUnlock()
	return lookupAtom(a, env.functionAtoms, env.recFunctionAtoms)
}

// intern returns the canonical instance of t, so that structurally equal
// complex types share one pointer
func (env *Env) intern(t SemType) SemType {
	c, ok := t.(*ComplexSemType)
	if !ok {
		return t
	}
	env.mu.Lock()
	defer env.mu.Unlock()
	for _, existing := range env.internTable[c.hash] {
		if Equal(existing, c) {
			return existing
		}
	}
	env.internTable[c.hash] = append(env.internTable[c.hash], c)
	return c
}

// Intern returns the instance of t that the env already holds, if any.
// Types built by env are always interned; this is for types built with NewComplexSemType
func (env *Env) Intern(t SemType) SemType {
	return env.intern(t)
}

func (env *Env) cachedVerdict(t1, t2 SemType) (isSubtype, ok bool) {
	if env.disableVerdictCache {
		return false, false
	}
	v, ok := env.verdicts.Load(util.NewPair(t1, t2))
	if !ok {
		return false, false
	}
	return v.(bool), true
}

func (env *Env) storeVerdict(t1, t2 SemType, isSubtype bool) {
	if env.disableVerdictCache {
		return
	}
	env.verdicts.Store(util.NewPair(t1, t2), isSubtype)
}
