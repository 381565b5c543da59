package colors

type themed struct{ light, dark string }

// namedColors is the dashboard palette. Each name resolves to a slightly
// different shade on light and dark themes.
var namedColors = map[string]themed{
	"dark-red":          {"#AD0317", "#C4162A"},
	"semi-dark-red":     {"#C4162A", "#E02F44"},
	"red":               {"#E02F44", "#F2495C"},
	"light-red":         {"#F2495C", "#FF7383"},
	"dark-orange":       {"#E55400", "#FA6400"},
	"semi-dark-orange":  {"#FA6400", "#FF780A"},
	"orange":            {"#FF780A", "#FF9830"},
	"light-orange":      {"#FF9830", "#FFB357"},
	"dark-yellow":       {"#CC9D00", "#E0B400"},
	"semi-dark-yellow":  {"#E0B400", "#F2CC0C"},
	"yellow":            {"#F2CC0C", "#FADE2A"},
	"light-yellow":      {"#FADE2A", "#FFEE52"},
	"dark-green":        {"#1A7311", "#19730E"},
	"semi-dark-green":   {"#2A7D1F", "#37872D"},
	"green":             {"#56A64B", "#73BF69"},
	"light-green":       {"#73BF69", "#96D98D"},
	"dark-blue":         {"#1250B0", "#1F60C4"},
	"semi-dark-blue":    {"#1F60C4", "#3274D9"},
	"blue":              {"#3274D9", "#5794F2"},
	"light-blue":        {"#5794F2", "#8AB8FF"},
	"dark-purple":       {"#701F9C", "#7C2EA3"},
	"semi-dark-purple":  {"#7C2EA3", "#8F3BB8"},
	"purple":            {"#A352CC", "#B877D9"},
	"light-purple":      {"#B877D9", "#CA95E5"},
	"super-light-green": {"#96D98D", "#C8F2C2"},
}

// cssColors covers the CSS keywords used by the panel styles and the most
// common ones found in dashboard configs.
var cssColors = map[string]string{
	"white":       "#ffffff",
	"black":       "#000000",
	"gray":        "#808080",
	"grey":        "#808080",
	"silver":      "#c0c0c0",
	"transparent": "#000000",
	"red":         "#ff0000",
	"green":       "#008000",
	"blue":        "#0000ff",
	"yellow":      "#ffff00",
	"orange":      "#ffa500",
	"purple":      "#800080",
}
