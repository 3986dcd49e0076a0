package catalog

// Choice is one entry of an enumerated select field.
type Choice struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
}

// Choices is an ordered option list; the first entry is the default.
type Choices []Choice

// FirstKey returns the key of the first choice, or "" for an empty list.
func FirstKey(c Choices) string {
	if len(c) == 0 {
		return ""
	}
	return c[0].Key
}

// Has reports whether key is one of the choices.
func (c Choices) Has(key string) bool {
	for _, ch := range c {
		if ch.Key == key {
			return true
		}
	}
	return false
}

// Keys returns the choice keys in order.
func (c Choices) Keys() []string {
	keys := make([]string, len(c))
	for i, ch := range c {
		keys[i] = ch.Key
	}
	return keys
}

// Data options.
const (
	DataManual     = "manual"
	DataDynamic    = "dynamic"
	DataFirebase   = "firebase"
	DataForminator = "forminator"
)

// Dynamic data sub options.
const (
	DynamicCSV        = "csv"
	DynamicRemoteCSV  = "remote-csv"
	DynamicSheet      = "google-sheet"
	DynamicAPI        = "api"
	DynamicSQLBuilder = "sql-builder"
	DynamicDatabase   = "database"
)

// Database vendors accepted by the external connection feature.
const (
	VendorMysql      = "mysql"
	VendorClickhouse = "clickhouse"
)

// DataOptions is the data source select.
var DataOptions = Choices{
	{DataManual, "Manual"},
	{DataDynamic, "Dynamic"},
	{DataFirebase, "Firebase"},
	{DataForminator, "Forminator"},
}

// DynamicOptions is the dynamic provider select.
var DynamicOptions = Choices{
	{DynamicCSV, "CSV"},
	{DynamicRemoteCSV, "Remote CSV"},
	{DynamicSheet, "Spreadsheet"},
	{DynamicAPI, "API"},
	{DynamicSQLBuilder, "SQL Builder"},
	{DynamicDatabase, "External Database"},
}

// Vendors lists the supported external database vendors.
var Vendors = Choices{
	{VendorMysql, "MySQL"},
	{VendorClickhouse, "ClickHouse"},
}

var LegendPositions = Choices{
	{"bottom", "Bottom"},
	{"top", "Top"},
	{"left", "Left"},
	{"right", "Right"},
}

var LegendAlign = Choices{
	{"center", "Center"},
	{"left", "Left"},
	{"right", "Right"},
}

var StrokeCurves = Choices{
	{"smooth", "Smooth"},
	{"straight", "Straight"},
	{"stepline", "Stepline"},
}

var FillTypes = Choices{
	{"classic", "Classic"},
	{"gradient", "Gradient"},
	{"pattern", "Pattern"},
}

var PatternStyles = Choices{
	{"verticalLines", "Vertical Lines"},
	{"squares", "Squares"},
	{"horizontalLines", "Horizontal Lines"},
	{"circles", "Circles"},
	{"slantedLines", "Slanted Lines"},
}

var GradientTypes = Choices{
	{"vertical", "Vertical"},
	{"horizontal", "Horizontal"},
	{"diagonal1", "Diagonal 1"},
	{"diagonal2", "Diagonal 2"},
}

var FontWeights = Choices{
	{"normal", "Normal"},
	{"bold", "Bold"},
	{"300", "300"},
	{"500", "500"},
	{"600", "600"},
	{"700", "700"},
	{"800", "800"},
}

var TooltipThemes = Choices{
	{"light", "Light"},
	{"dark", "Dark"},
}

var XaxisPositions = Choices{
	{"bottom", "Bottom"},
	{"top", "Top"},
}

var DataLabelPositions = Choices{
	{"top", "Top"},
	{"center", "Center"},
	{"bottom", "Bottom"},
}

var RestrictionTypes = Choices{
	{"none", "None"},
	{"password", "Password"},
}

var AnimationEasings = Choices{
	{"easeinout", "Ease In Out"},
	{"linear", "Linear"},
	{"easein", "Ease In"},
	{"easeout", "Ease Out"},
}

var DashStyles = Choices{
	{"0", "Solid"},
	{"3", "Dotted"},
	{"8", "Dashed"},
}

var MixedSeriesTypes = Choices{
	{"bar", "Column"},
	{"line", "Line"},
	{"area", "Area"},
}
