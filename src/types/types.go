package types

// Type is the name of the kind of a value as seen from a program.
type Type uint8

const (
	// TypeNil is the type of nil and of absent values.
	TypeNil Type = iota
	// TypeBool is the type of true and false.
	TypeBool
	// TypeNumber is the type of all numbers.
	TypeNumber
	// TypeString is the type of strings.
	TypeString
	// TypeTable is the type of tables.
	TypeTable
	// TypeFunction is the type of function pointers and native functions.
	TypeFunction
)

const (
	// NameNil is a label for the nil type.
	NameNil = "nil"
	// NameBool is a label for the bool type.
	NameBool = "bool"
	// NameNumber is a label for the number type.
	NameNumber = "number"
	// NameString is a label for the string type.
	NameString = "string"
	// NameTable is a label for the table type.
	NameTable = "table"
	// NameFunction is a label for the function type.
	NameFunction = "function"
)

var typeNames = [...]string{
	TypeNil:      NameNil,
	TypeBool:     NameBool,
	TypeNumber:   NameNumber,
	TypeString:   NameString,
	TypeTable:    NameTable,
	TypeFunction: NameFunction,
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// IsPrimitive is true for the types that a Primitive can hold.
func (t Type) IsPrimitive() bool {
	return t <= TypeString
}
