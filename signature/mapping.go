package signature

// Tables in this file are initialized once and only ever read.

const primitiveDescriptors = "ZBCSIJFD"

const (
	UnitType  = "kotlin.Unit"
	ArrayType = "kotlin.Array"
)

var javaToKotlin = map[string]string{
	"java.lang.Object":                "kotlin.Any",
	"java.lang.String":                "kotlin.String",
	"java.lang.CharSequence":          "kotlin.CharSequence",
	"java.lang.Number":                "kotlin.Number",
	"java.lang.Comparable":            "kotlin.Comparable",
	"java.lang.Integer":               "kotlin.Int",
	"java.lang.Boolean":               "kotlin.Boolean",
	"java.lang.Long":                  "kotlin.Long",
	"java.lang.Float":                 "kotlin.Float",
	"java.lang.Double":                "kotlin.Double",
	"java.lang.Short":                 "kotlin.Short",
	"java.lang.Byte":                  "kotlin.Byte",
	"java.lang.Character":             "kotlin.Char",
	"java.lang.Throwable":             "kotlin.Throwable",
	"java.lang.Enum":                  "kotlin.Enum",
	"java.lang.Iterable":              "kotlin.collections.Iterable",
	"java.util.Collection":            "kotlin.collections.Collection",
	"java.util.List":                  "kotlin.collections.List",
	"java.util.Set":                   "kotlin.collections.Set",
	"java.util.Map":                   "kotlin.collections.Map",
	"java.util.Map.Entry":             "kotlin.collections.Map.Entry",
	"java.lang.annotation.Annotation": "kotlin.Annotation",
}

var primitiveNames = map[byte]string{
	'Z': "kotlin.Boolean",
	'B': "kotlin.Byte",
	'C': "kotlin.Char",
	'S': "kotlin.Short",
	'I': "kotlin.Int",
	'J': "kotlin.Long",
	'F': "kotlin.Float",
	'D': "kotlin.Double",
	'V': UnitType,
}

var primitiveArrayNames = map[byte]string{
	'Z': "kotlin.BooleanArray",
	'B': "kotlin.ByteArray",
	'C': "kotlin.CharArray",
	'S': "kotlin.ShortArray",
	'I': "kotlin.IntArray",
	'J': "kotlin.LongArray",
	'F': "kotlin.FloatArray",
	'D': "kotlin.DoubleArray",
}

var primitiveDefaults = map[string]string{
	"kotlin.Boolean": "false",
	"kotlin.Byte":    "0",
	"kotlin.Char":    `'\u0000'`,
	"kotlin.Short":   "0",
	"kotlin.Int":     "0",
	"kotlin.Long":    "0",
	"kotlin.Float":   "0.0f",
	"kotlin.Double":  "0.0",
	UnitType:         "",
}

// MapClassName rewrites a qualified Java class name to its Kotlin
// counterpart; unknown names are returned unchanged.
func MapClassName(qualified string) string {
	if mapped, ok := javaToKotlin[qualified]; ok {
		return mapped
	}
	return qualified
}
