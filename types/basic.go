package types

// BasicTypeCode identifies one of the disjoint categories that partition all values.
// Codes are dense from 0 so that a code is also a bit position in a UniformTypeBitSet
type BasicTypeCode uint8

const (
	CodeNil BasicTypeCode = iota
	CodeBoolean
	CodeInt
	CodeFloat
	CodeDecimal
	CodeString
	CodeError
	CodeTypedesc
	CodeHandle
	CodeFunction
	CodeFuture
	CodeStream
	CodeList
	CodeMapping
	CodeTable
	CodeXML
	CodeObject
)

// CodeCount is the number of basic categories
const CodeCount = int(CodeObject) + 1

var codeNames = [CodeCount]string{
	CodeNil:      "nil",
	CodeBoolean:  "boolean",
	CodeInt:      "int",
	CodeFloat:    "float",
	CodeDecimal:  "decimal",
	CodeString:   "string",
	CodeError:    "error",
	CodeTypedesc: "typedesc",
	CodeHandle:   "handle",
	CodeFunction: "function",
	CodeFuture:   "future",
	CodeStream:   "stream",
	CodeList:     "list",
	CodeMapping:  "mapping",
	CodeTable:    "table",
	CodeXML:      "xml",
	CodeObject:   "object",
}

var codesByName = func() map[string]BasicTypeCode {
	m := make(map[string]BasicTypeCode, CodeCount)
	for i, name := range codeNames {
		m[name] = BasicTypeCode(i)
	}
	return m
}()

func (c BasicTypeCode) String() string {
	if int(c) >= CodeCount {
		return "unknown"
	}
	return codeNames[c]
}

// CodeOf looks a category up by name
func CodeOf(name string) (BasicTypeCode, bool) {
	code, ok := codesByName[name]
	return code, ok
}

// AllBasicCodes returns every code in ascending order
func AllBasicCodes() []BasicTypeCode {
	codes := make([]BasicTypeCode, CodeCount)
	for i := range codes {
		codes[i] = BasicTypeCode(i)
	}
	return codes
}

// Uniform is the type containing every value of the category code
func Uniform(code BasicTypeCode) SemType {
	return Singleton(code)
}

var (
	Never    SemType = UniformTypeBitSet(0)
	Nil              = Uniform(CodeNil)
	Boolean          = Uniform(CodeBoolean)
	Int              = Uniform(CodeInt)
	Float            = Uniform(CodeFloat)
	Decimal          = Uniform(CodeDecimal)
	String           = Uniform(CodeString)
	Error            = Uniform(CodeError)
	Typedesc         = Uniform(CodeTypedesc)
	Handle           = Uniform(CodeHandle)
	Function         = Uniform(CodeFunction)
	Future           = Uniform(CodeFuture)
	Stream           = Uniform(CodeStream)
	List             = Uniform(CodeList)
	Mapping          = Uniform(CodeMapping)
	Table            = Uniform(CodeTable)
	XML              = Uniform(CodeXML)
	Object           = Uniform(CodeObject)
	Any      SemType = AllBits

	Number SemType = Singleton(CodeInt) | Singleton(CodeFloat) | Singleton(CodeDecimal)
)
