package catalog

// Palette is the default series color cycle.
var Palette = [40]string{
	"#449DD1", "#F86624", "#EA3546", "#662E9B", "#C5D86D",
	"#D7263D", "#1B998B", "#2E294E", "#F46036", "#E2C044",
	"#662E9B", "#F86624", "#F9C80E", "#EA3546", "#43BCCD",
	"#5C4742", "#A5978B", "#8D5B4C", "#5A2A27", "#C4BBAF",
	"#A300D6", "#7D02EB", "#5653FE", "#2983FF", "#00B1F2",
	"#03A9F4", "#33B2DF", "#546E7A", "#D4526E", "#13D8AA",
	"#A5978B", "#4ECDC4", "#C7F464", "#81D4FA", "#FD6A6A",
	"#2B908F", "#F9A3A4", "#90EE7E", "#FA4443", "#69D2E7",
}

// GradientPalette holds the default "gradient-to" color per series.
var GradientPalette = [40]string{
	"#2E294E", "#D7263D", "#1B998B", "#F46036", "#E2C044",
	"#449DD1", "#F86624", "#EA3546", "#662E9B", "#C5D86D",
	"#43BCCD", "#F9C80E", "#5C4742", "#A5978B", "#8D5B4C",
	"#5A2A27", "#C4BBAF", "#A300D6", "#7D02EB", "#5653FE",
	"#2983FF", "#00B1F2", "#03A9F4", "#33B2DF", "#546E7A",
	"#D4526E", "#13D8AA", "#4ECDC4", "#C7F464", "#81D4FA",
	"#FD6A6A", "#2B908F", "#F9A3A4", "#90EE7E", "#FA4443",
	"#69D2E7", "#449DD1", "#F86624", "#EA3546", "#662E9B",
}

// ColorAt returns the palette color for series i, cycling past the end.
func ColorAt(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// GradientAt returns the default gradient-to color for series i.
func GradientAt(i int) string {
	if i < 0 {
		i = -i
	}
	return GradientPalette[i%len(GradientPalette)]
}
